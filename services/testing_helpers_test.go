package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/match-tagger/models"
	"github.com/Dosada05/match-tagger/repositories"
)

func str(s string) *string { return &s }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTeams() (*models.Team, *models.Team) {
	a := &models.Team{
		ID:     "a",
		Name:   "Alpha FC",
		Colors: models.TeamColors{Primary: "#FF0000", Secondary: "#990000"},
		Players: []models.Player{
			{ID: "a9", Number: 9, Name: "Ana", Position: "Forward"},
			{ID: "a4", Number: 4, Name: "Bia", Position: "Defender"},
		},
	}
	b := &models.Team{
		ID:     "b",
		Name:   "Beta United",
		Colors: models.TeamColors{Primary: "#0000FF", Secondary: "#000099"},
		Players: []models.Player{
			{ID: "b1", Number: 1, Name: "Caio", Position: "Goalkeeper"},
		},
	}
	return a, b
}

// flakyRepo wraps the in-memory repository and fails saves on demand.
type flakyRepo struct {
	*repositories.MemorySnapshotRepository
	mu    sync.Mutex
	fail  bool
	saves int
}

var errDiskFull = errors.New("disk full")

func (r *flakyRepo) setFail(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = v
}

func (r *flakyRepo) Save(ctx context.Context, s *models.Snapshot) error {
	r.mu.Lock()
	fail := r.fail
	r.saves++
	r.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return r.MemorySnapshotRepository.Save(ctx, s)
}

// recorder collects published events.
type recorder struct {
	mu     sync.Mutex
	events []SessionEvent
}

func (r *recorder) Publish(e SessionEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recorder) last() EventType {
	types := r.types()
	if len(types) == 0 {
		return ""
	}
	return types[len(types)-1]
}

// newTestSession returns a loaded session with the two test teams in its roster.
func newTestSession(t *testing.T) (*Session, *flakyRepo, *recorder) {
	t.Helper()
	a, b := testTeams()
	repo := &flakyRepo{MemorySnapshotRepository: repositories.NewMemorySnapshotRepository()}
	if err := repo.MemorySnapshotRepository.Save(context.Background(), &models.Snapshot{
		Teams:       []models.Team{*a, *b},
		ActionTypes: models.DefaultActionTypes(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := &recorder{}
	s := NewSession(repo, rec, discardLogger())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC) }
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, repo, rec
}
