package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/contentstack/pkg/content"
	"github.com/matzehuels/contentstack/pkg/errors"
	"github.com/matzehuels/contentstack/pkg/state"
)

func sampleState() state.State {
	st := state.Initial()
	st.Feeds.Loaded = true
	st.Spocs.Loaded = true
	st.Spocs.Blocked = []string{"https://example.com/blocked"}
	st.Feeds.Data["https://feeds.example.com/stories"] = content.Feed{
		Loaded: true,
		Data:   content.FeedData{Recommendations: []content.Item{{ID: "a", URL: "https://example.com/a"}}},
	}
	return st
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	snap := New("baseline", sampleState())
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if diff := cmp.Diff(snap.State, got.State); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
	if got.Name != "baseline" {
		t.Errorf("Name = %q", got.Name)
	}

	if err := store.Delete(ctx, snap.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, snap.ID); !errors.Is(err, errors.ErrCodeSnapshotNotFound) {
		t.Errorf("Get after Delete error = %v, want %s", err, errors.ErrCodeSnapshotNotFound)
	}
	if err := store.Delete(ctx, snap.ID); err != nil {
		t.Errorf("Delete of missing snapshot: %v", err)
	}
}

func TestFileStoreList(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	older := New("older", state.Initial())
	if err := store.Save(ctx, older); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	newer := New("newer", state.Initial())
	if err := store.Save(ctx, newer); err != nil {
		t.Fatal(err)
	}
	// Stray files are ignored.
	_ = os.WriteFile(filepath.Join(store.Path(), "notes.txt"), []byte("x"), 0o600)

	list, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, s := range list {
		names = append(names, s.Name)
	}
	if diff := cmp.Diff([]string{"newer", "older"}, names); diff != "" {
		t.Errorf("List order (-want +got):\n%s", diff)
	}
}

func TestFileStoreRejectsBadIDs(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []string{"../../etc/passwd", "", "not-a-uuid"} {
		if _, err := store.Get(ctx, id); !errors.IsValidation(err) {
			t.Errorf("Get(%q) error = %v, want validation error", id, err)
		}
	}
	if err := store.Save(ctx, &Snapshot{ID: "../x"}); !errors.IsValidation(err) {
		t.Errorf("Save with bad ID error = %v, want validation error", err)
	}
}

func TestNewAssignsUUID(t *testing.T) {
	a, b := New("", state.Initial()), New("", state.Initial())
	if a.ID == b.ID {
		t.Error("New should assign unique IDs")
	}
	if err := errors.ValidateSnapshotID(a.ID); err != nil {
		t.Errorf("generated ID %q invalid: %v", a.ID, err)
	}
}
