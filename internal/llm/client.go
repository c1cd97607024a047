// Package llm is the gateway to the Gemini generateContent endpoint.
// One attempt per logical call; callers own the fallback policy.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// ErrUpstream covers every gateway failure mode: bad status, malformed
// payload and transport faults. Callers check it with errors.Is.
var ErrUpstream = errors.New("upstream generation failed")

type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
}

type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// SetTestTransport redirects requests to a test server.
func (c *Client) SetTestTransport(baseURL string) {
	c.baseURL = baseURL
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type request struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// Generate sends one prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if opts.MaxOutputTokens == 0 {
		opts.MaxOutputTokens = 2048
	}

	reqBody := request{
		Contents:         []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{Temperature: opts.Temperature, MaxOutputTokens: opts.MaxOutputTokens},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: api call: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		if msg := gjson.GetBytes(respBody, "error.message"); msg.Exists() {
			return "", fmt.Errorf("%w: api error %d: %s", ErrUpstream, resp.StatusCode, msg.String())
		}
		return "", fmt.Errorf("%w: api error %d: %s", ErrUpstream, resp.StatusCode, string(respBody))
	}

	text := gjson.GetBytes(respBody, "candidates.0.content.parts.0.text")
	if !text.Exists() || text.String() == "" {
		return "", fmt.Errorf("%w: no candidate text in response", ErrUpstream)
	}

	return text.String(), nil
}
