package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/match-tagger/models"
)

// Keys of the snapshot entries. Each value is a JSON document.
const (
	KeyTeams       = "teams"
	KeyActionTypes = "action_types"
	KeySavedGames  = "saved_games"
)

var snapshotKeys = []string{KeyTeams, KeyActionTypes, KeySavedGames}

var ErrSnapshotCorrupt = errors.New("snapshot entry is corrupt")

// SnapshotRepository persists the durable state as opaque key/value text. A Load from an
// empty store returns a Snapshot whose ActionTypes is nil, so callers can seed defaults.
type SnapshotRepository interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snapshot *models.Snapshot) error
}

func encodeSnapshot(s *models.Snapshot) (map[string]string, error) {
	values := map[string]any{
		KeyTeams:       nonNil(s.Teams),
		KeyActionTypes: nonNil(s.ActionTypes),
		KeySavedGames:  nonNil(s.SavedGames),
	}

	entries := make(map[string]string, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode snapshot entry %q: %w", key, err)
		}
		entries[key] = string(raw)
	}
	return entries, nil
}

func decodeSnapshot(entries map[string]string) (*models.Snapshot, error) {
	s := &models.Snapshot{}
	targets := map[string]any{
		KeyTeams:       &s.Teams,
		KeyActionTypes: &s.ActionTypes,
		KeySavedGames:  &s.SavedGames,
	}
	for key, dst := range targets {
		raw, ok := entries[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return nil, fmt.Errorf("%w (key: %s): %w", ErrSnapshotCorrupt, key, err)
		}
	}
	return s, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
