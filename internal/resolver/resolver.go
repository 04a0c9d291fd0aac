// Package resolver turns opaque content ids into display-ready metadata by
// querying the TMDB catalog and the YouTube Data API. Every lookup is
// best-effort: no caching, no retries, and any transport failure collapses
// into domain.ErrNotFound after being logged.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"stremcord/internal/domain"

	"go.uber.org/zap"
)

// Service implements domain.Resolver on top of the two API clients
type Service struct {
	logger *zap.Logger
	tmdb   *tmdbClient
	yt     *ytClient
}

// NewService creates a resolver from the configured API keys
func NewService(logger *zap.Logger, cfg domain.Config) *Service {
	return &Service{
		logger: logger,
		tmdb:   newTMDBClient(cfg.GetTMDBKey(), nil),
		yt:     newYTClient(cfg.GetYouTubeKey(), nil),
	}
}

// Resolve returns metadata for the ref or domain.ErrNotFound
func (s *Service) Resolve(ctx context.Context, ref domain.ContentRef) (*domain.ResolvedMetadata, error) {
	if ref.Family == domain.FamilyVideoPlatform {
		return s.resolveVideo(ctx, ref)
	}
	return s.resolveCatalog(ctx, ref)
}

// resolveVideo looks up a hosted video and attributes it to its channel
func (s *Service) resolveVideo(ctx context.Context, ref domain.ContentRef) (*domain.ResolvedMetadata, error) {
	snippet, err := s.yt.video(ctx, ref.BaseID)
	if err != nil {
		s.logger.Warn("Video platform lookup failed",
			zap.String("videoId", ref.BaseID),
			zap.Error(err))
		return nil, domain.ErrNotFound
	}
	if snippet == nil {
		return nil, domain.ErrNotFound
	}

	return &domain.ResolvedMetadata{
		Title:    snippet.Title,
		Category: domain.CategoryChannel,
		ImageRef: snippet.Thumbnails.High.URL,
		Creator:  snippet.ChannelTitle,
	}, nil
}

// resolveCatalog looks up an IMDb id, preferring the episode path when the
// ref carries a season/episode suffix and TMDB knows the id as a series
func (s *Service) resolveCatalog(ctx context.Context, ref domain.ContentRef) (*domain.ResolvedMetadata, error) {
	find, err := s.tmdb.findByIMDB(ctx, ref.BaseID)
	if err != nil {
		s.logger.Warn("Catalog lookup failed",
			zap.String("imdbId", ref.BaseID),
			zap.Error(err))
		return nil, domain.ErrNotFound
	}

	if len(find.TVResults) > 0 && ref.IsEpisode() {
		return s.resolveEpisode(ctx, find.TVResults[0], ref)
	}

	if len(find.MovieResults) > 0 {
		movie := find.MovieResults[0]
		image := posterURL(movie.PosterPath)
		if image == "" {
			image = domain.StremioLogoURL
		}
		return &domain.ResolvedMetadata{
			Title:    movie.Title,
			Category: domain.CategoryMovie,
			ImageRef: image,
		}, nil
	}

	return nil, domain.ErrNotFound
}

func (s *Service) resolveEpisode(ctx context.Context, show tmdbTVResult, ref domain.ContentRef) (*domain.ResolvedMetadata, error) {
	ep, err := s.tmdb.episode(ctx, show.ID, ref.Season, ref.Episode)
	if err != nil {
		s.logger.Warn("Episode lookup failed",
			zap.String("series", show.Name),
			zap.Int("season", ref.Season),
			zap.Int("episode", ref.Episode),
			zap.Error(err))
		return nil, domain.ErrNotFound
	}

	// Prefer the episode still, fall back to the series poster
	image := posterURL(ep.StillPath)
	if image == "" {
		image = posterURL(show.PosterPath)
	}

	return &domain.ResolvedMetadata{
		Title:    fmt.Sprintf("%s - %s", show.Name, ep.Name),
		Category: domain.CategorySeries,
		ImageRef: image,
		Season:   ref.Season,
		Episode:  ref.Episode,
	}, nil
}

// ResolvePoster returns a poster/thumbnail URL for a bare content id.
// Video-platform ids are answered without a network call; anything else goes
// through the catalog find lookup.
func (s *Service) ResolvePoster(ctx context.Context, id string) (string, error) {
	if videoID, ok := strings.CutPrefix(id, "yt:"); ok {
		return ytThumbnailURL(videoID), nil
	}

	find, err := s.tmdb.findByIMDB(ctx, id)
	if err != nil {
		s.logger.Warn("Poster lookup failed", zap.String("id", id), zap.Error(err))
		return "", domain.ErrNotFound
	}

	if len(find.MovieResults) > 0 {
		if image := posterURL(find.MovieResults[0].PosterPath); image != "" {
			return image, nil
		}
	}
	return "", domain.ErrNotFound
}
