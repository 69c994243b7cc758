// Package tts calls the external text-to-speech rendering service.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mixdown/internal/services"
)

const defaultHTTPTimeout = 60 * time.Second

// Client wraps the TTS HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient constructs a TTS client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Request describes one synthesis call.
type Request struct {
	Text     string  `json:"text"`
	Provider string  `json:"provider"`
	Voice    string  `json:"voice"`
	Speed    float64 `json:"speed"`
}

// Result is the rendered audio locator and its measured duration.
type Result struct {
	AudioURL string  `json:"audio_url"`
	Duration float64 `json:"duration"`
}

// Synthesize renders one piece of text to audio.
func (c *Client) Synthesize(ctx context.Context, req Request) (Result, error) {
	var empty Result
	if strings.TrimSpace(req.Text) == "" {
		return empty, services.Wrap(services.ErrValidation, "tts", "synthesize", "text required", nil)
	}
	if strings.TrimSpace(req.Voice) == "" {
		return empty, services.Wrap(services.ErrValidation, "tts", "synthesize", "voice required", nil)
	}
	if c.baseURL == "" {
		return empty, services.Wrap(services.ErrConfiguration, "tts", "synthesize", "service URL not configured", nil)
	}
	if req.Speed <= 0 {
		req.Speed = 1.0
	}

	endpoint, err := url.JoinPath(c.baseURL, "/synthesize")
	if err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "build url", err)
	}
	encoded, err := json.Marshal(req)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "encode request", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "read response", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		detail := fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return empty, services.Wrap(services.ErrExternalTool, "tts", "synthesize", detail, nil)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "decode response", err)
	}
	if result.AudioURL == "" {
		return empty, services.Wrap(services.ErrExternalTool, "tts", "synthesize", "response carried no audio locator", nil)
	}
	return result, nil
}
