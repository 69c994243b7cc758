package testsupport

import (
	"testing"

	"mixdown/internal/config"
	"mixdown/internal/exportjob"
)

// MustOpenStore opens an exportjob.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *exportjob.Store {
	t.Helper()

	store, err := exportjob.Open(cfg)
	if err != nil {
		t.Fatalf("open export store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close export store: %v", err)
		}
	})
	return store
}
