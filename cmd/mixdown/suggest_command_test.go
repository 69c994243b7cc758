package main

import (
	"encoding/json"
	"os"
	"testing"

	"mixdown/internal/timeline"
)

func TestSuggestListsMissingProductionElements(t *testing.T) {
	base := t.TempDir()
	configPath := writeCLIConfig(t, base)
	project := importProject(t, configPath, base)

	out, _, err := runCLI(t, configPath, "suggest", project)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	requireContains(t, out, "Add intro music")
	requireContains(t, out, "Add outro music")
	requireContains(t, out, "--apply")
}

func TestSuggestApplyAllSavesProject(t *testing.T) {
	base := t.TempDir()
	configPath := writeCLIConfig(t, base)
	project := importProject(t, configPath, base)

	out, _, err := runCLI(t, configPath, "suggest", project, "--apply-all")
	if err != nil {
		t.Fatalf("suggest --apply-all: %v", err)
	}
	requireContains(t, out, "Applied")

	data, err := os.ReadFile(project)
	if err != nil {
		t.Fatalf("read project: %v", err)
	}
	var tl timeline.Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		t.Fatalf("parse project: %v", err)
	}
	// Intro and outro suggestions land on a music track the import never had.
	if len(tl.Tracks) <= 2 {
		t.Fatalf("expected applied suggestions to add tracks, got %d", len(tl.Tracks))
	}
}

func TestSuggestApplyUnknownID(t *testing.T) {
	base := t.TempDir()
	configPath := writeCLIConfig(t, base)
	project := importProject(t, configPath, base)

	_, _, err := runCLI(t, configPath, "suggest", project, "--apply", "ffffffff")
	if err == nil {
		t.Fatal("expected unknown suggestion id to fail")
	}
	requireContains(t, err.Error(), "no suggestion")
}
