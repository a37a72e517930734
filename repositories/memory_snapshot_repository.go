package repositories

import (
	"context"
	"sync"

	"github.com/Dosada05/match-tagger/models"
)

// MemorySnapshotRepository keeps the encoded entries in process memory. It goes through the
// same encoding as the database stores, so round-trips behave identically.
type MemorySnapshotRepository struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemorySnapshotRepository() *MemorySnapshotRepository {
	return &MemorySnapshotRepository{entries: make(map[string]string)}
}

func (r *MemorySnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return decodeSnapshot(r.entries)
}

func (r *MemorySnapshotRepository) Save(ctx context.Context, snapshot *models.Snapshot) error {
	entries, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = entries
	return nil
}

// Entries returns a copy of the raw stored values.
func (r *MemorySnapshotRepository) Entries() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out
}
