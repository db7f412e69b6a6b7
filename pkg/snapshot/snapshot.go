// Package snapshot persists named copies of the content state.
//
// A snapshot captures a full [state.State] so a page can be re-resolved
// later, shared, or replayed with more events. Two backends implement
// [Store]:
//   - [FileStore]: JSON files for CLI use (~/.config/contentstack/snapshots/)
//   - [MongoStore]: a MongoDB collection for the API server
//
// # Usage
//
//	store, err := snapshot.NewFileStore("")
//	snap := snapshot.New("before-block", st)
//	if err := store.Save(ctx, snap); err != nil {
//	    return err
//	}
//	later, err := store.Get(ctx, snap.ID)
package snapshot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/contentstack/pkg/errors"
	"github.com/matzehuels/contentstack/pkg/state"
)

// Snapshot is a named, timestamped copy of the content state.
type Snapshot struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name,omitempty" bson:"name,omitempty"`
	State     state.State `json:"state" bson:"state"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// Summary describes a snapshot without its state.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Summary returns the snapshot's metadata.
func (s *Snapshot) Summary() Summary {
	return Summary{ID: s.ID, Name: s.Name, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Get retrieves a snapshot by ID.
	// Returns a SNAPSHOT_NOT_FOUND error if it doesn't exist.
	Get(ctx context.Context, id string) (*Snapshot, error)

	// Save creates or replaces a snapshot and stamps UpdatedAt.
	Save(ctx context.Context, snap *Snapshot) error

	// Delete removes a snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context, id string) error

	// List returns all snapshots, most recently updated first.
	List(ctx context.Context) ([]Summary, error)

	// Close releases the backend's resources.
	Close() error
}

// New creates a snapshot of st with a fresh ID.
func New(name string, st state.State) *Snapshot {
	now := time.Now().UTC()
	return &Snapshot{
		ID:        uuid.NewString(),
		Name:      name,
		State:     st,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
}

// touch validates snap for saving and stamps UpdatedAt.
func touch(snap *Snapshot) error {
	if err := errors.ValidateSnapshotID(snap.ID); err != nil {
		return err
	}
	now := time.Now().UTC()
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = now
	}
	snap.UpdatedAt = now
	return nil
}
