package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/darideveloper/cotiza/pkg/domain"
)

// RunStateStoreContract is a reusable suite verifying that an adapter
// complies with StateStore. Every store implementation runs it.
func RunStateStoreContract(t *testing.T, store StateStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing-session")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Save_Load_RoundTrip", func(t *testing.T) {
		state := domain.NewFormState("daridev")
		state.CurrentStep = 3
		state.SelectedFeatures = []string{"domain", "hosting"}
		state.SelectedSections = []string{"hero"}
		state.Currency = domain.CurrencyMXN
		state.TotalPrice = 880

		if err := store.Save(ctx, "s1", state); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := store.Load(ctx, "s1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded.CurrentStep != 3 {
			t.Errorf("step mismatch: got %d, want 3", loaded.CurrentStep)
		}
		if len(loaded.SelectedFeatures) != 2 || loaded.SelectedFeatures[0] != "domain" {
			t.Errorf("features mismatch: %v", loaded.SelectedFeatures)
		}
		if loaded.Currency != domain.CurrencyMXN {
			t.Errorf("currency mismatch: %v", loaded.Currency)
		}
		if loaded.TotalPrice != 880 {
			t.Errorf("total mismatch: %v", loaded.TotalPrice)
		}
	})

	t.Run("Load_Isolation", func(t *testing.T) {
		loaded, err := store.Load(ctx, "s1")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		// Mutating a loaded copy must not leak into the store.
		loaded.SelectedFeatures = append(loaded.SelectedFeatures, "ecommerce")
		loaded.CurrentStep = 5

		again, err := store.Load(ctx, "s1")
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if len(again.SelectedFeatures) != 2 || again.CurrentStep != 3 {
			t.Errorf("store state leaked caller mutation: %+v", again)
		}
	})

	t.Run("List", func(t *testing.T) {
		if err := store.Save(ctx, "s2", domain.NewFormState("3s")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		lookup := make(map[string]bool, len(ids))
		for _, id := range ids {
			lookup[id] = true
		}
		if !lookup["s1"] || !lookup["s2"] {
			t.Errorf("expected s1 and s2 in list, got %v", ids)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "s1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		_, err := store.Load(ctx, "s1")
		if !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
		}
		// Deleting a missing session is not an error.
		if err := store.Delete(ctx, "s1"); err != nil {
			t.Fatalf("second delete failed: %v", err)
		}
	})
}
