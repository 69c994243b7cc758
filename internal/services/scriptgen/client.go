// Package scriptgen calls the external script generation service.
package scriptgen

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

const defaultHTTPTimeout = 30 * time.Second

// Client wraps the script generation HTTP API.
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

// NewClient constructs a script generation client for the given base URL.
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

// Request describes one script generation call.
type Request struct {
	Prompt        string `json:"prompt"`
	Mode          string `json:"mode"`
	SpeakersCount int    `json:"speakers_count"`
	Style         string `json:"style"`
}

// Result is the service response: exactly one of Script, FilePath, or JobID
// is set. A JobID means the caller must Poll until the job settles.
type Result struct {
	Script   string `json:"script,omitempty"`
	FilePath string `json:"file_path,omitempty"`
	JobID    string `json:"job_id,omitempty"`
}

// Job status values reported by the service.
const (
	JobCompleted = "completed"
	JobFailed    = "failed"
)

// JobStatus is the state of an asynchronous generation job.
type JobStatus struct {
	Status string `json:"status"`
	Result
	Error string `json:"error,omitempty"`
}

// Generate submits a generation request.
func (c *Client) Generate(ctx context.Context, req Request) (Result, error) {
	var empty Result
	if strings.TrimSpace(req.Prompt) == "" {
		return empty, services.Wrap(services.ErrValidation, "scriptgen", "generate", "prompt required", nil)
	}
	if c.baseURL == "" {
		return empty, services.Wrap(services.ErrConfiguration, "scriptgen", "generate", "service URL not configured", nil)
	}

	var result Result
	if err := c.postJSON(ctx, "/generate", req, &result); err != nil {
		return empty, err
	}
	if result.Script == "" && result.FilePath == "" && result.JobID == "" {
		return empty, services.Wrap(services.ErrExternalTool, "scriptgen", "generate", "response carried no script, file, or job", nil)
	}
	return result, nil
}

// Poll fetches the status of an asynchronous generation job.
func (c *Client) Poll(ctx context.Context, jobID string) (JobStatus, error) {
	var empty JobStatus
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return empty, services.Wrap(services.ErrValidation, "scriptgen", "poll", "job id required", nil)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/jobs", jobID)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "scriptgen", "poll", "build url", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalTool, "scriptgen", "poll", "build request", err)
	}

	var status JobStatus
	if err := c.do(req, "poll", &status); err != nil {
		return empty, err
	}
	return status, nil
}

// Await polls a job until it settles. A completed job yields its result; a
// failed job surfaces the service's error message. The interval paces the
// polling loop and the context bounds the overall wait.
func (c *Client) Await(ctx context.Context, jobID string, interval time.Duration) (Result, error) {
	var empty Result
	if interval <= 0 {
		interval = time.Second
	}
	for {
		status, err := c.Poll(ctx, jobID)
		if err != nil {
			return empty, err
		}
		switch status.Status {
		case JobCompleted:
			return status.Result, nil
		case JobFailed:
			return empty, services.Wrap(services.ErrExternalTool, "scriptgen", "await", "generation job failed: "+status.Error, nil)
		}
		select {
		case <-ctx.Done():
			return empty, services.Wrap(services.ErrTimeout, "scriptgen", "await", "gave up waiting for job "+jobID, ctx.Err())
		case <-time.After(interval):
		}
	}
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "scriptgen", "generate", "build url", err)
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "scriptgen", "generate", "encode request", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "scriptgen", "generate", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, "generate", out)
}

func (c *Client) do(req *http.Request, operation string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "scriptgen", operation, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "scriptgen", operation, "read response", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		detail := fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return services.Wrap(services.ErrExternalTool, "scriptgen", operation, detail, nil)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return services.Wrap(services.ErrExternalTool, "scriptgen", operation, "decode response", err)
	}
	return nil
}
