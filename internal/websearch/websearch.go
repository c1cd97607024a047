// Package websearch fetches ranked web snippets for a query, either
// from the Google Custom Search JSON API or from a deterministic
// offline simulation when no provider key is configured.
package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// Result is one ranked snippet.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher returns ranked snippets for a query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// GoogleClient talks to the Custom Search JSON API.
type GoogleClient struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
}

func NewGoogleClient(apiKey, engineID string) *GoogleClient {
	return &GoogleClient{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  defaultBaseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// SetTestTransport redirects requests to a test server.
func (c *GoogleClient) SetTestTransport(baseURL string) {
	c.baseURL = baseURL
}

func (c *GoogleClient) Search(ctx context.Context, query string) ([]Result, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", query)
	q.Set("num", "5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search error %d: %s", resp.StatusCode, string(body))
	}

	var results []Result
	gjson.GetBytes(body, "items").ForEach(func(_, item gjson.Result) bool {
		results = append(results, Result{
			Title:   item.Get("title").String(),
			URL:     item.Get("link").String(),
			Snippet: item.Get("snippet").String(),
		})
		return true
	})
	return results, nil
}
