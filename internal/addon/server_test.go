package addon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stremcord/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakePosters answers every poster lookup with a fixed URL, or ErrNotFound
// when left zero-valued
type fakePosters struct {
	poster string
}

func (f fakePosters) ResolvePoster(_ context.Context, _ string) (string, error) {
	if f.poster == "" {
		return "", domain.ErrNotFound
	}
	return f.poster, nil
}

type testConfig struct{}

func (testConfig) GetDiscordClientID() string       { return "" }
func (testConfig) GetTMDBKey() string               { return "" }
func (testConfig) GetYouTubeKey() string            { return "" }
func (testConfig) GetListenAddr() string            { return "127.0.0.1:0" }
func (testConfig) GetSilenceTimeout() time.Duration { return 30 * time.Second }

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func expectEvent(t *testing.T, s *Server) domain.ContentRef {
	t.Helper()
	select {
	case ref := <-s.Events():
		return ref
	case <-time.After(time.Second):
		t.Fatal("no watch event emitted")
		return domain.ContentRef{}
	}
}

func TestManifest(t *testing.T) {
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{})

	rec := doRequest(t, s, "/manifest.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var m Manifest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, "org.stremio.discordpresence", m.ID)
	assert.Contains(t, m.Resources, "stream")
	assert.Contains(t, m.Resources, "meta")
	assert.Contains(t, m.Resources, "subtitles")
	assert.ElementsMatch(t, []string{"tt", "yt"}, m.IDPrefixes)
}

func TestMetaEmitsWatchEvent(t *testing.T) {
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{})

	rec := doRequest(t, s, "/meta/series/tt1748166:1:1.json")
	require.Equal(t, http.StatusOK, rec.Code)

	ref := expectEvent(t, s)
	assert.Equal(t, domain.FamilyCatalog, ref.Family)
	assert.Equal(t, "tt1748166", ref.BaseID)
	assert.Equal(t, 1, ref.Season)
	assert.Equal(t, 1, ref.Episode)

	var body struct {
		Meta MetaPreview `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tt1748166", body.Meta.ID)
	assert.Equal(t, "Pioneer One", body.Meta.Name)
	assert.Equal(t, "https://images.metahub.space/poster/medium/tt1748166/img", body.Meta.Poster)
}

func TestMetaUnknownIdStillResolves(t *testing.T) {
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{})

	rec := doRequest(t, s, "/meta/movie/tt0111161.json")
	require.Equal(t, http.StatusOK, rec.Code)

	expectEvent(t, s)

	var body struct {
		Meta MetaPreview `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "tt0111161", body.Meta.ID)
	assert.Equal(t, "movie", body.Meta.Type)
	assert.NotEmpty(t, body.Meta.Name)
	assert.Empty(t, body.Meta.Poster, "a failed poster lookup leaves the minimal object untouched")
}

func TestMetaUnknownIdGetsResolvedPoster(t *testing.T) {
	poster := "https://image.tmdb.org/t/p/w500/abc.jpg"
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{poster: poster})

	rec := doRequest(t, s, "/meta/movie/tt0111161.json")
	require.Equal(t, http.StatusOK, rec.Code)

	expectEvent(t, s)

	var body struct {
		Meta MetaPreview `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, poster, body.Meta.Poster)
}

func TestStreamServesDatasetSource(t *testing.T) {
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{})

	rec := doRequest(t, s, "/stream/series/tt1748166:1:1.json")
	require.Equal(t, http.StatusOK, rec.Code)

	ref := expectEvent(t, s)
	assert.Equal(t, "tt1748166", ref.BaseID)
	assert.Equal(t, 1, ref.Season)
	assert.Equal(t, 1, ref.Episode)

	var body struct {
		Streams []Stream `json:"streams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Streams, 1)
	assert.Equal(t, "Pioneer One", body.Streams[0].Name)
	assert.Equal(t, "07a9de9750158471c3302e4e95edb1107f980fa6", body.Streams[0].InfoHash)

	// Hosted-video transport
	rec = doRequest(t, s, "/stream/movie/tt0031051.json")
	expectEvent(t, s)
	body.Streams = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Streams, 1)
	assert.Equal(t, "m3BKVSpP80s", body.Streams[0].YtID)
	assert.Empty(t, body.Streams[0].InfoHash)
}

func TestStreamUnknownIdSettlesEmpty(t *testing.T) {
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{})

	rec := doRequest(t, s, "/stream/movie/tt0111161.json")
	require.Equal(t, http.StatusOK, rec.Code)

	expectEvent(t, s)

	var body struct {
		Streams []Stream `json:"streams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Streams)
}

func TestSubtitlesAlwaysEmpty(t *testing.T) {
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{})

	for _, path := range []string{
		"/subtitles/movie/tt0111161.json",
		"/subtitles/series/tt0944947:1:1/videoHash=abc.json",
	} {
		rec := doRequest(t, s, path)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var body struct {
			Subtitles []MetaPreview `json:"subtitles"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Empty(t, body.Subtitles, path)

		expectEvent(t, s)
	}
}

func TestSubtitlesVideoPlatformId(t *testing.T) {
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{})

	rec := doRequest(t, s, "/subtitles/movie/yt:dQw4w9WgXcQ.json")
	require.Equal(t, http.StatusOK, rec.Code)

	ref := expectEvent(t, s)
	assert.Equal(t, domain.FamilyVideoPlatform, ref.Family)
	assert.Equal(t, "dQw4w9WgXcQ", ref.BaseID)
}

func TestCatalogFiltersByType(t *testing.T) {
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{})

	rec := doRequest(t, s, "/catalog/movie/discordmovies.json")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Metas []MetaPreview `json:"metas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Metas, 4)
	for _, m := range body.Metas {
		assert.Equal(t, "movie", m.Type)
		assert.Contains(t, m.Poster, metahubURL)
	}

	rec = doRequest(t, s, "/catalog/series/discordseries.json")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Metas, 1)
	assert.Equal(t, "Pioneer One", body.Metas[0].Name)
}

func TestHandlersNeverBlockOnFullChannel(t *testing.T) {
	s := NewServer(zap.NewNop(), testConfig{}, fakePosters{})

	// Nobody draining the channel; handlers must keep settling
	for i := 0; i < 30; i++ {
		rec := doRequest(t, s, "/meta/movie/tt0111161.json")
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
