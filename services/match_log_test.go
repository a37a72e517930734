package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/match-tagger/models"
)

func liveLog(t *testing.T, possession string) (*MatchLog, *Catalog) {
	t.Helper()
	a, b := testTeams()
	l := NewMatchLog()
	if _, err := l.Start(a, b, time.Now()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if possession != "" {
		if err := l.SetPossession(possession); err != nil {
			t.Fatalf("SetPossession: %v", err)
		}
	}
	return l, NewCatalog(models.DefaultActionTypes())
}

func TestMatchLogStartValidation(t *testing.T) {
	a, b := testTeams()

	tests := []struct {
		name  string
		teamA *models.Team
		teamB *models.Team
		want  error
	}{
		{"missing team", a, nil, ErrInvalidTeamSelection},
		{"same team twice", a, a, ErrInvalidTeamSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewMatchLog()
			if _, err := l.Start(tt.teamA, tt.teamB, time.Now()); !errors.Is(err, tt.want) {
				t.Fatalf("Start error = %v, want %v", err, tt.want)
			}
			if l.Phase() != PhaseNoMatch {
				t.Fatalf("phase = %s, want %s", l.Phase(), PhaseNoMatch)
			}
		})
	}

	l := NewMatchLog()
	if _, err := l.Start(a, b, time.Now()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := l.Start(a, b, time.Now()); !errors.Is(err, ErrMatchAlreadyLive) {
		t.Fatalf("second Start error = %v, want ErrMatchAlreadyLive", err)
	}
}

func TestMatchLogStartCopiesTeams(t *testing.T) {
	a, b := testTeams()
	l := NewMatchLog()
	if _, err := l.Start(a, b, time.Now()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	a.Name = "Renamed"
	a.Players[0].Name = "Someone else"

	m := l.Current()
	if m.TeamA.Name != "Alpha FC" || m.TeamA.Players[0].Name != "Ana" {
		t.Fatalf("match team aliases the roster: %+v", m.TeamA)
	}
}

func TestRecordZoneTapRequiresPossession(t *testing.T) {
	l, _ := liveLog(t, "")
	if _, err := l.RecordZoneTap(models.Zone{Row: 1, Col: 1}); !errors.Is(err, ErrNoPossessionSelected) {
		t.Fatalf("error = %v, want ErrNoPossessionSelected", err)
	}
	if n := len(l.Current().Actions); n != 0 {
		t.Fatalf("log has %d entries, want 0", n)
	}
}

func TestRecordZoneTap(t *testing.T) {
	l, _ := liveLog(t, "b")
	if err := l.Tick(42); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	action, err := l.RecordZoneTap(models.Zone{Row: 4, Col: 0})
	if err != nil {
		t.Fatalf("RecordZoneTap: %v", err)
	}
	if action.Type != models.ActionKindPossession || action.TeamID != "b" || action.Timestamp != 42 {
		t.Fatalf("unexpected entry %+v", action)
	}
	if action.PlayerID != nil || action.ActionName != nil {
		t.Fatalf("possession entry must not carry player or name: %+v", action)
	}

	if _, err := l.RecordZoneTap(models.Zone{Row: 5, Col: 0}); !errors.Is(err, ErrInvalidZone) {
		t.Fatalf("out-of-grid error = %v, want ErrInvalidZone", err)
	}
	if n := len(l.Current().Actions); n != 1 {
		t.Fatalf("log has %d entries, want 1", n)
	}
}

func TestRecordSpecificActionWithCounter(t *testing.T) {
	l, catalog := liveLog(t, "a")
	_ = l.Tick(300)

	recorded, err := l.RecordSpecificAction(catalog, "Falta Cometida", str("a9"), models.Zone{Row: 2, Col: 3})
	if err != nil {
		t.Fatalf("RecordSpecificAction: %v", err)
	}
	if len(recorded) != 2 {
		t.Fatalf("recorded %d entries, want 2", len(recorded))
	}

	foul, suffered := recorded[0], recorded[1]
	if foul.TeamID != "a" || foul.PlayerID == nil || *foul.PlayerID != "a9" || *foul.ActionName != "Falta Cometida" || *foul.ActionTypeID != "3" {
		t.Errorf("primary entry = %+v", foul)
	}
	if suffered.TeamID != "b" || suffered.PlayerID != nil || *suffered.ActionName != "Falta Sofrida" {
		t.Errorf("counter entry = %+v", suffered)
	}
	if foul.Timestamp != 300 || suffered.Timestamp != 300 || suffered.Zone != foul.Zone {
		t.Errorf("entries must share timestamp and zone: %+v / %+v", foul, suffered)
	}
	if foul.ID == suffered.ID {
		t.Error("entries share an id")
	}
}

func TestRecordReverseActionCreditsOpponent(t *testing.T) {
	l, catalog := liveLog(t, "a")

	recorded, err := l.RecordSpecificAction(catalog, "12", str("b1"), models.CenterZone)
	if err != nil {
		t.Fatalf("RecordSpecificAction: %v", err)
	}
	if len(recorded) != 1 || recorded[0].TeamID != "b" || *recorded[0].PlayerID != "b1" {
		t.Fatalf("own goal recorded as %+v, want a single entry for team b", recorded)
	}

	if _, err := l.RecordSpecificAction(catalog, "12", str("a9"), models.CenterZone); !errors.Is(err, ErrPlayerNotOnTeam) {
		t.Fatalf("error = %v, want ErrPlayerNotOnTeam", err)
	}
	if n := len(l.Current().Actions); n != 1 {
		t.Fatalf("failed call changed the log: %d entries", n)
	}
}

func TestReverseActionCounterMirrorsPrimary(t *testing.T) {
	l, catalog := liveLog(t, "a")
	if _, err := catalog.Add(CreateActionTypeInput{
		ID:            "15",
		Name:          "Penalti Contra",
		ReverseAction: true,
		CounterAction: str("14"),
	}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := l.Tick(42); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	recorded, err := l.RecordSpecificAction(catalog, "15", nil, models.Zone{Row: 3, Col: 1})
	if err != nil {
		t.Fatalf("RecordSpecificAction: %v", err)
	}
	if len(recorded) != 2 {
		t.Fatalf("recorded %d entries, want 2", len(recorded))
	}
	primary, counter := recorded[0], recorded[1]
	if primary.TeamID != "b" || *primary.ActionName != "Penalti Contra" {
		t.Errorf("primary entry = %+v, want team b", primary)
	}
	if counter.TeamID != "a" || *counter.ActionName != "Falta Sofrida" || counter.PlayerID != nil {
		t.Errorf("counter entry = %+v, want team a without player", counter)
	}
	if primary.Timestamp != 42 || counter.Timestamp != 42 || counter.Zone != primary.Zone {
		t.Errorf("entries must share timestamp and zone: %+v / %+v", primary, counter)
	}
}

func TestRecordSpecificActionErrors(t *testing.T) {
	l, catalog := liveLog(t, "a")

	tests := []struct {
		name     string
		action   string
		playerID *string
		want     error
	}{
		{"unknown type", "Bicycle Kick", nil, ErrActionTypeNotFound},
		{"player missing", "Escanteio", nil, ErrPlayerRequired},
		{"player from other team", "Escanteio", str("b1"), ErrPlayerNotOnTeam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := l.RecordSpecificAction(catalog, tt.action, tt.playerID, models.CenterZone); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
	if n := len(l.Current().Actions); n != 0 {
		t.Fatalf("failed calls left %d entries", n)
	}
}

func TestDanglingCounterIsSkipped(t *testing.T) {
	l, catalog := liveLog(t, "a")
	if err := catalog.Remove("14"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	recorded, err := l.RecordSpecificAction(catalog, "3", str("a4"), models.CenterZone)
	if err != nil {
		t.Fatalf("RecordSpecificAction: %v", err)
	}
	if len(recorded) != 1 {
		t.Fatalf("recorded %d entries, want only the primary", len(recorded))
	}
}

func TestTwoPhaseSelection(t *testing.T) {
	l, catalog := liveLog(t, "a")

	pending, recorded, err := l.BeginAction(catalog, "Chute no Alvo", models.Zone{Row: 0, Col: 2})
	if err != nil {
		t.Fatalf("BeginAction: %v", err)
	}
	if recorded != nil || pending == nil {
		t.Fatalf("expected a pending selection, got %v / %v", pending, recorded)
	}
	if pending.TargetTeamID != "a" || len(pending.Candidates) != 2 {
		t.Fatalf("pending = %+v", pending)
	}

	if _, err := l.CompleteAction(catalog, "b1"); !errors.Is(err, ErrPlayerNotOnTeam) {
		t.Fatalf("complete with wrong player: %v", err)
	}
	if l.Pending() == nil {
		t.Fatal("failed completion dropped the pending selection")
	}

	recorded, err = l.CompleteAction(catalog, "a9")
	if err != nil {
		t.Fatalf("CompleteAction: %v", err)
	}
	if len(recorded) != 1 || recorded[0].Zone != (models.Zone{Row: 0, Col: 2}) {
		t.Fatalf("recorded = %+v", recorded)
	}
	if l.Pending() != nil {
		t.Fatal("pending selection not cleared")
	}
	if _, err := l.CompleteAction(catalog, "a9"); !errors.Is(err, ErrNoPendingAction) {
		t.Fatalf("second completion: %v", err)
	}
}

func TestTwoPhaseCancelAndPossessionChange(t *testing.T) {
	l, catalog := liveLog(t, "a")

	if _, _, err := l.BeginAction(catalog, "7", models.CenterZone); err != nil {
		t.Fatalf("BeginAction: %v", err)
	}
	if err := l.CancelAction(); err != nil {
		t.Fatalf("CancelAction: %v", err)
	}
	if err := l.CancelAction(); !errors.Is(err, ErrNoPendingAction) {
		t.Fatalf("second cancel: %v", err)
	}

	if _, _, err := l.BeginAction(catalog, "7", models.CenterZone); err != nil {
		t.Fatalf("BeginAction: %v", err)
	}
	_ = l.SetPossession("b")
	if l.Pending() != nil {
		t.Fatal("possession change must drop the pending selection")
	}
	if n := len(l.Current().Actions); n != 0 {
		t.Fatalf("log has %d entries, want 0", n)
	}
}

func TestBeginActionWithoutPlayerRecordsImmediately(t *testing.T) {
	l, catalog := liveLog(t, "b")

	pending, recorded, err := l.BeginAction(catalog, "Falta Sofrida", models.CenterZone)
	if err != nil {
		t.Fatalf("BeginAction: %v", err)
	}
	if pending != nil || len(recorded) != 1 || recorded[0].TeamID != "b" {
		t.Fatalf("pending=%v recorded=%+v", pending, recorded)
	}
}

func TestTickAndToggle(t *testing.T) {
	l, _ := liveLog(t, "")

	if err := l.Tick(-1); !errors.Is(err, ErrInvalidClock) {
		t.Fatalf("Tick(-1) = %v, want ErrInvalidClock", err)
	}
	playing, _ := l.TogglePlay()
	if !playing {
		t.Fatal("first toggle should start play")
	}
	playing, _ = l.TogglePlay()
	if playing {
		t.Fatal("second toggle should pause")
	}

	idle := NewMatchLog()
	if err := idle.Tick(1); !errors.Is(err, ErrNoLiveMatch) {
		t.Fatalf("Tick without match = %v", err)
	}
	if _, err := idle.TogglePlay(); !errors.Is(err, ErrNoLiveMatch) {
		t.Fatalf("TogglePlay without match = %v", err)
	}
}

func TestEndAndResume(t *testing.T) {
	l, _ := liveLog(t, "a")
	_ = l.Tick(95)
	_, _ = l.RecordZoneTap(models.Zone{Row: 1, Col: 1})
	id := l.Current().ID

	end := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	game, err := l.End(end)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if game.ID != id || game.Duration != 95 || !game.EndTime.Equal(end) || len(game.Actions) != 1 {
		t.Fatalf("saved game = %+v", game)
	}
	if l.Phase() != PhaseNoMatch {
		t.Fatal("log should be back to no match")
	}
	if _, err := l.End(end); !errors.Is(err, ErrNoLiveMatch) {
		t.Fatalf("second End = %v", err)
	}

	m, err := l.Resume(game)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if m.ID != id || m.CurrentTime != 95 || m.IsPlaying || m.CurrentPossession != nil {
		t.Fatalf("resumed match = %+v", m)
	}

	game.Actions[0].TeamID = "mutated"
	if l.Current().Actions[0].TeamID != "a" {
		t.Fatal("resumed match aliases the saved game")
	}
}

func TestAbandon(t *testing.T) {
	l, _ := liveLog(t, "a")
	if err := l.Abandon(); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if l.Current() != nil {
		t.Fatal("match not discarded")
	}
	if err := l.Abandon(); !errors.Is(err, ErrNoLiveMatch) {
		t.Fatalf("second Abandon = %v", err)
	}
}
