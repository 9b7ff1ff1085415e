package testsupport

import (
	"testing"

	"sifter/internal/config"
	"sifter/internal/history"
	"sifter/internal/reviewqueue"
)

// MustOpenQueue opens a review queue store for tests and registers cleanup.
func MustOpenQueue(t testing.TB, cfg *config.Config) *reviewqueue.Store {
	t.Helper()

	store, err := reviewqueue.Open(cfg)
	if err != nil {
		t.Fatalf("reviewqueue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenHistory opens a verified-pattern store for tests and registers
// cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
