package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p"
	// w500 is plenty for the presence artwork thumbnail
	tmdbPosterSize = "w500"
)

// tmdbClient is a minimal TMDB v3 API client covering the two lookups the
// resolver needs: find-by-external-id and single-episode details.
type tmdbClient struct {
	apiKey string
	httpc  *http.Client
}

func newTMDBClient(apiKey string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &tmdbClient{
		apiKey: strings.TrimSpace(apiKey),
		httpc:  httpc,
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

type tmdbMovieResult struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

type tmdbTVResult struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PosterPath string `json:"poster_path"`
}

type tmdbFindResponse struct {
	MovieResults []tmdbMovieResult `json:"movie_results"`
	TVResults    []tmdbTVResult    `json:"tv_results"`
}

type tmdbEpisode struct {
	Name      string `json:"name"`
	StillPath string `json:"still_path"`
}

// findByIMDB resolves an IMDb id to its TMDB movie/TV matches
func (c *tmdbClient) findByIMDB(ctx context.Context, imdbID string) (*tmdbFindResponse, error) {
	if !c.isConfigured() {
		return nil, fmt.Errorf("tmdb api key not configured")
	}

	endpoint, err := url.JoinPath(tmdbBaseURL, "find", imdbID)
	if err != nil {
		return nil, err
	}

	var out tmdbFindResponse
	if err := c.doGET(ctx, endpoint, url.Values{"external_source": {"imdb_id"}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// episode fetches details for one episode of a TMDB series
func (c *tmdbClient) episode(ctx context.Context, seriesID int64, season, episode int) (*tmdbEpisode, error) {
	if !c.isConfigured() {
		return nil, fmt.Errorf("tmdb api key not configured")
	}

	endpoint, err := url.JoinPath(tmdbBaseURL,
		"tv", strconv.FormatInt(seriesID, 10),
		"season", strconv.Itoa(season),
		"episode", strconv.Itoa(episode))
	if err != nil {
		return nil, err
	}

	var out tmdbEpisode
	if err := c.doGET(ctx, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) doGET(ctx context.Context, endpoint string, query url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	q := req.URL.Query()
	for key, values := range query {
		for _, value := range values {
			q.Add(key, value)
		}
	}
	q.Set("api_key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb request failed: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// posterURL builds a full image URL from a TMDB image path.
// Returns "" for an empty path.
func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return tmdbImageBaseURL + "/" + tmdbPosterSize + path
}
