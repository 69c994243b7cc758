package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mixdown/internal/config"
)

const userAgent = "Mixdown-Go/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifyProduceStarted(ctx context.Context, title string, tracks int) error
	NotifyProduceStep(ctx context.Context, step int, total int, name string) error
	NotifyProduceCompleted(ctx context.Context, title string, duration time.Duration) error
	NotifyProduceFailed(ctx context.Context, title string, err error) error
	NotifyExportCompleted(ctx context.Context, title, artifactPath string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyProduceStarted(ctx context.Context, title string, tracks int) error {
	title = strings.TrimSpace(title)
	data := payload{
		title:   "Mixdown - Production Started",
		message: fmt.Sprintf("Started producing %s (%d tracks)", title, tracks),
		tags:    []string{"mixdown", "produce", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyProduceStep(ctx context.Context, step int, total int, name string) error {
	data := payload{
		title:    "Mixdown - Production Progress",
		message:  fmt.Sprintf("Step %d/%d: %s", step, total, strings.TrimSpace(name)),
		tags:     []string{"mixdown", "produce", "progress"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyProduceCompleted(ctx context.Context, title string, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	data := payload{
		title:    "Mixdown - Production Complete",
		message:  fmt.Sprintf("Finished producing %s in %s", strings.TrimSpace(title), duration),
		tags:     []string{"mixdown", "produce", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyProduceFailed(ctx context.Context, title string, err error) error {
	message := fmt.Sprintf("Production of %s failed", strings.TrimSpace(title))
	if err != nil {
		message = fmt.Sprintf("%s: %s", message, strings.TrimSpace(err.Error()))
	}
	data := payload{
		title:    "Mixdown - Production Failed",
		message:  message,
		tags:     []string{"mixdown", "produce", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyExportCompleted(ctx context.Context, title, artifactPath string) error {
	title = strings.TrimSpace(title)
	artifactPath = strings.TrimSpace(artifactPath)
	message := fmt.Sprintf("Export complete: %s", title)
	if artifactPath != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, artifactPath)
	}
	data := payload{
		title:   "Mixdown - Export Complete",
		message: message,
		tags:    []string{"mixdown", "export", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Mixdown - Error",
		message:  builder.String(),
		tags:     []string{"mixdown", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Mixdown - Test",
		message:  "Notification system test",
		tags:     []string{"mixdown", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyProduceStarted(context.Context, string, int) error             { return nil }
func (noopService) NotifyProduceStep(context.Context, int, int, string) error           { return nil }
func (noopService) NotifyProduceCompleted(context.Context, string, time.Duration) error { return nil }
func (noopService) NotifyProduceFailed(context.Context, string, error) error            { return nil }
func (noopService) NotifyExportCompleted(context.Context, string, string) error         { return nil }
func (noopService) NotifyError(context.Context, error, string) error                    { return nil }
func (noopService) TestNotification(context.Context) error                              { return nil }
