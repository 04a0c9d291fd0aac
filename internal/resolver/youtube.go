package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	ytAPIBaseURL = "https://www.googleapis.com/youtube/v3"
	// Thumbnails can be synthesized from a video id without an API call
	ytThumbnailFormat = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
)

// ytClient is a minimal YouTube Data API v3 client covering the single
// videos.list lookup the resolver needs.
type ytClient struct {
	apiKey string
	httpc  *http.Client
}

func newYTClient(apiKey string, httpc *http.Client) *ytClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &ytClient{
		apiKey: strings.TrimSpace(apiKey),
		httpc:  httpc,
	}
}

func (c *ytClient) isConfigured() bool {
	return c != nil && c.apiKey != ""
}

type ytSnippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnails   struct {
		High struct {
			URL string `json:"url"`
		} `json:"high"`
	} `json:"thumbnails"`
}

type ytVideosResponse struct {
	Items []struct {
		Snippet ytSnippet `json:"snippet"`
	} `json:"items"`
}

// video fetches the snippet for a single video id.
// An empty result set yields (nil, nil); the caller decides what that means.
func (c *ytClient) video(ctx context.Context, videoID string) (*ytSnippet, error) {
	if !c.isConfigured() {
		return nil, fmt.Errorf("youtube api key not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ytAPIBaseURL+"/videos", nil)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube request failed: %s", resp.Status)
	}

	var out ytVideosResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	if len(out.Items) == 0 {
		return nil, nil
	}
	return &out.Items[0].Snippet, nil
}

// ytThumbnailURL synthesizes the high-res thumbnail URL for a video id
func ytThumbnailURL(videoID string) string {
	return fmt.Sprintf(ytThumbnailFormat, videoID)
}
