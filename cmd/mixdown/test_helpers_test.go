package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeCLIConfig writes a minimal config file with all paths under base and
// progress pacing disabled so produce runs instantly.
func writeCLIConfig(t *testing.T, base string) string {
	t.Helper()
	return writeCLIConfigServices(t, base, "", "")
}

// writeCLIConfigServices is writeCLIConfig with the external service URLs
// pointed at test servers.
func writeCLIConfigServices(t *testing.T, base, scriptgenURL, ttsURL string) string {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[production]
step_delay_ms = 0

[services]
scriptgen_url = %q
tts_url = %q
request_timeout = 5
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		scriptgenURL,
		ttsURL,
	)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeScript drops a SPEAKER-tagged script file into dir and returns its path.
func writeScript(t *testing.T, dir string) string {
	t.Helper()
	script := strings.Join([]string{
		`<SPEAKER name="Anna" voice_type="female">Willkommen zu unserer Show über Technologie und Software.</SPEAKER>`,
		`<SPEAKER name="Tom" voice_type="male">Das klingt fantastisch, ich freue mich sehr darauf.</SPEAKER>`,
	}, "\n")
	path := filepath.Join(dir, "episode.txt")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func importProject(t *testing.T, configPath, dir string) string {
	t.Helper()
	project := filepath.Join(dir, "project.json")
	script := writeScript(t, dir)
	if _, _, err := runCLI(t, configPath, "import", script, "--output", project); err != nil {
		t.Fatalf("import: %v", err)
	}
	return project
}

func writeEmptyProject(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(`{"tracks":[]}`), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
