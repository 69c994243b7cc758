package scriptgen_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mixdown/internal/services"
	"mixdown/internal/services/scriptgen"
)

func TestGenerateReturnsInlineScript(t *testing.T) {
	var captured scriptgen.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/generate" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"script": `<SPEAKER name="Anna" voice_type="female_warm">Hallo!</SPEAKER>`,
		})
	}))
	defer server.Close()

	client := scriptgen.NewClient(server.URL)
	result, err := client.Generate(context.Background(), scriptgen.Request{
		Prompt:        "Ein Gespräch über Kaffee",
		Mode:          "dialog",
		SpeakersCount: 2,
		Style:         "casual",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Script == "" || result.JobID != "" {
		t.Fatalf("expected inline script, got %#v", result)
	}
	if captured.SpeakersCount != 2 || captured.Mode != "dialog" {
		t.Fatalf("request not forwarded faithfully: %#v", captured)
	}
}

func TestGenerateRequiresPrompt(t *testing.T) {
	client := scriptgen.NewClient("http://unused.invalid")
	_, err := client.Generate(context.Background(), scriptgen.Request{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGenerateWrapsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := scriptgen.NewClient(server.URL)
	_, err := client.Generate(context.Background(), scriptgen.Request{Prompt: "x"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestPollReportsJobStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/jobs/job-7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "completed",
			"script": "fertig",
		})
	}))
	defer server.Close()

	client := scriptgen.NewClient(server.URL)
	status, err := client.Poll(context.Background(), "job-7")
	if err != nil {
		t.Fatalf("Poll failed: %v", err)
	}
	if status.Status != "completed" || status.Script != "fertig" {
		t.Fatalf("unexpected status: %#v", status)
	}
}

func TestPollRequiresJobID(t *testing.T) {
	client := scriptgen.NewClient("http://unused.invalid")
	if _, err := client.Poll(context.Background(), "  "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAwaitPollsUntilCompleted(t *testing.T) {
	var polls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls++
		status := map[string]string{"status": "running"}
		if polls >= 3 {
			status = map[string]string{"status": "completed", "script": "fertig"}
		}
		_ = json.NewEncoder(w).Encode(status)
	}))
	defer server.Close()

	client := scriptgen.NewClient(server.URL)
	result, err := client.Await(context.Background(), "job-7", time.Millisecond)
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if result.Script != "fertig" {
		t.Fatalf("unexpected result: %#v", result)
	}
	if polls < 3 {
		t.Fatalf("expected at least 3 polls, got %d", polls)
	}
}

func TestAwaitSurfacesJobFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "failed", "error": "model refused"})
	}))
	defer server.Close()

	client := scriptgen.NewClient(server.URL)
	_, err := client.Await(context.Background(), "job-7", time.Millisecond)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestAwaitStopsOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "running"})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := scriptgen.NewClient(server.URL)
	_, err := client.Await(ctx, "job-7", 5*time.Millisecond)
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}
