package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mixdown/internal/config"
	"mixdown/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyProduceStarted(context.Background(), "Episode 1", 4); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		notify         func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "produce started",
			notify: func(svc notifications.Service) error {
				return svc.NotifyProduceStarted(context.Background(), "Episode 12", 5)
			},
			expectTitle:   "Mixdown - Production Started",
			expectMessage: "Started producing Episode 12 (5 tracks)",
			expectTags:    "mixdown,produce,started",
		},
		{
			name: "produce step",
			notify: func(svc notifications.Service) error {
				return svc.NotifyProduceStep(context.Background(), 3, 8, "Generating ducking automation")
			},
			expectTitle:    "Mixdown - Production Progress",
			expectMessage:  "Step 3/8: Generating ducking automation",
			expectTags:     "mixdown,produce,progress",
			expectPriority: "low",
		},
		{
			name: "produce completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyProduceCompleted(context.Background(), "Episode 12", 90*time.Second)
			},
			expectTitle:    "Mixdown - Production Complete",
			expectMessage:  "Finished producing Episode 12 in 1m30s",
			expectTags:     "mixdown,produce,completed",
			expectPriority: "high",
		},
		{
			name: "export completed",
			notify: func(svc notifications.Service) error {
				return svc.NotifyExportCompleted(context.Background(), "Episode 12", "/exports/ep12.wav")
			},
			expectTitle:   "Mixdown - Export Complete",
			expectMessage: "Export complete: Episode 12\nFile: /exports/ep12.wav",
			expectTags:    "mixdown,export,completed",
		},
		{
			name: "error",
			notify: func(svc notifications.Service) error {
				return svc.NotifyError(context.Background(), errors.New("tts service unreachable"), "produce")
			},
			expectTitle:    "Mixdown - Error",
			expectMessage:  "Error with produce: tts service unreachable",
			expectTags:     "mixdown,error,alert",
			expectPriority: "high",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Fatalf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Fatalf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.notify(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "topic rejected", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
