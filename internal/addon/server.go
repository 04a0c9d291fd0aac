// Package addon exposes the Stremio addon HTTP surface. The meta and
// subtitles resources are (ab)used purely as watch-detection hooks: every
// request emits a content ref on the events channel and always settles with
// a well-formed response, whatever happens downstream.
package addon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"stremcord/internal/domain"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server is the addon HTTP server and the domain.Intake implementation
type Server struct {
	logger  *zap.Logger
	posters domain.PosterResolver
	events  chan domain.ContentRef
	srv     *http.Server
}

// NewServer creates the addon server bound to the configured address
func NewServer(logger *zap.Logger, cfg domain.Config, posters domain.PosterResolver) *Server {
	s := &Server{
		logger:  logger,
		posters: posters,
		events:  make(chan domain.ContentRef, 10),
	}
	s.srv = &http.Server{
		Addr:              cfg.GetListenAddr(),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Routes builds the addon router
func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.HandleFunc("/manifest.json", s.handleManifest).Methods(http.MethodGet)
	r.HandleFunc("/catalog/{type}/{id}.json", s.handleCatalog).Methods(http.MethodGet)
	r.HandleFunc("/stream/{type}/{id}.json", s.handleStream).Methods(http.MethodGet)
	r.HandleFunc("/meta/{type}/{id}.json", s.handleMeta).Methods(http.MethodGet)
	r.HandleFunc("/subtitles/{type}/{id}.json", s.handleSubtitles).Methods(http.MethodGet)
	r.HandleFunc("/subtitles/{type}/{id}/{extra}.json", s.handleSubtitles).Methods(http.MethodGet)
	return r
}

// Events returns the watch-event channel consumed by the engine
func (s *Server) Events() <-chan domain.ContentRef {
	return s.events
}

// Start launches the HTTP listener in a goroutine
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Addon server starting", zap.String("addr", s.srv.Addr))

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Addon server failed", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the HTTP listener down gracefully
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Addon server stopping")
	return s.srv.Shutdown(ctx)
}

// emit hands a watch event to the engine without ever blocking a handler.
// Bursts beyond the channel buffer are dropped; the next request for the same
// content will re-trigger resolution anyway.
func (s *Server) emit(ref domain.ContentRef) {
	select {
	case s.events <- ref:
		s.logger.Debug("Watch event emitted",
			zap.String("family", string(ref.Family)),
			zap.String("baseId", ref.BaseID))
	default:
		s.logger.Warn("Events channel full, dropping watch event",
			zap.String("baseId", ref.BaseID))
	}
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, manifest)
}

// handleMeta always resolves with a metadata object matching the id; the
// host player contract forbids failing the request
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	ctype := vars["type"]

	ref := domain.ParseContentRef(id)
	s.emit(ref)

	baseID := strings.SplitN(id, ":", 2)[0]
	if ref.Family == domain.FamilyVideoPlatform {
		baseID = id
	}
	meta := MetaPreview{ID: baseID, Type: ctype, Name: baseID}

	known := false
	for _, e := range dataset {
		if strings.SplitN(e.id, ":", 2)[0] == baseID {
			meta = metaPreview(e, baseID)
			known = true
			break
		}
	}

	// Non-dataset ids still get artwork when a lookup can supply it; a miss
	// leaves the minimal object untouched
	if !known {
		if poster, err := s.posters.ResolvePoster(r.Context(), id); err == nil {
			meta.Poster = poster
		}
	}

	writeJSON(w, map[string]MetaPreview{"meta": meta})
}

// handleStream serves the playable source for a dataset item. The stream
// request is the strongest watch signal the host player gives us, so it
// emits an event like meta/subtitles; unknown ids settle with an empty list.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.emit(domain.ParseContentRef(id))

	streams := []Stream{}
	for _, e := range dataset {
		if e.id == id {
			streams = append(streams, stream(e))
			break
		}
	}

	writeJSON(w, map[string][]Stream{"streams": streams})
}

// handleSubtitles always resolves with an empty list; the request exists only
// to signal that playback started
func (s *Server) handleSubtitles(w http.ResponseWriter, r *http.Request) {
	s.emit(domain.ParseContentRef(mux.Vars(r)["id"]))
	writeJSON(w, map[string][]MetaPreview{"subtitles": {}})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	ctype := mux.Vars(r)["type"]

	metas := []MetaPreview{}
	for _, e := range dataset {
		if e.ctype == ctype {
			metas = append(metas, metaPreview(e, strings.SplitN(e.id, ":", 2)[0]))
		}
	}

	writeJSON(w, map[string][]MetaPreview{"metas": metas})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// corsMiddleware adds the permissive CORS headers the Stremio web UI requires
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		next.ServeHTTP(w, r)
	})
}
