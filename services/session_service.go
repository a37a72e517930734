package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/match-tagger/models"
	"github.com/Dosada05/match-tagger/repositories"
	"github.com/Dosada05/match-tagger/stats"
)

type EventType string

const (
	EventRosterUpdated   EventType = "ROSTER_UPDATED"
	EventCatalogUpdated  EventType = "CATALOG_UPDATED"
	EventMatchStarted    EventType = "MATCH_STARTED"
	EventMatchUpdated    EventType = "MATCH_UPDATED"
	EventActionsRecorded EventType = "ACTIONS_RECORDED"
	EventClockTicked     EventType = "CLOCK_TICKED"
	EventMatchEnded      EventType = "MATCH_ENDED"
	EventMatchAbandoned  EventType = "MATCH_ABANDONED"
	EventArchiveUpdated  EventType = "ARCHIVE_UPDATED"
	EventDataCleared     EventType = "DATA_CLEARED"
)

type SessionEvent struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// Notifier receives an event after every committed change. Implementations must not block.
type Notifier interface {
	Publish(event SessionEvent)
}

type nopNotifier struct{}

func (nopNotifier) Publish(SessionEvent) {}

// MatchView is what the UI renders for the live screen.
type MatchView struct {
	Phase   MatchPhase        `json:"phase"`
	Match   *models.Match     `json:"match,omitempty"`
	Pending *PendingSelection `json:"pending,omitempty"`
}

type HeatMapsView struct {
	Combined models.HeatMap     `json:"combined"`
	TeamA    models.TeamHeatMap `json:"team_a"`
	TeamB    models.TeamHeatMap `json:"team_b"`
}

// Session is the single writer over roster, catalog, archive and the live match. Each
// public method is atomic: it applies completely (and is persisted when it touches durable
// state) or leaves everything as it was.
type Session struct {
	mu       sync.Mutex
	roster   *Roster
	catalog  *Catalog
	games    []models.SavedGame
	live     *MatchLog
	repo     repositories.SnapshotRepository
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewSession(repo repositories.SnapshotRepository, notifier Notifier, logger *slog.Logger) *Session {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		roster:   NewRoster(nil),
		catalog:  NewCatalog(models.DefaultActionTypes()),
		live:     NewMatchLog(),
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Load replaces the durable state with the stored snapshot. A store without a catalog
// yields the default action types.
func (s *Session) Load(ctx context.Context) error {
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot.ActionTypes == nil {
		snapshot.ActionTypes = models.DefaultActionTypes()
	}
	s.restoreLocked(snapshot)
	s.logger.Info("session state loaded",
		slog.Int("teams", len(snapshot.Teams)),
		slog.Int("action_types", len(snapshot.ActionTypes)),
		slog.Int("saved_games", len(snapshot.SavedGames)))
	return nil
}

// --- Roster ---

func (s *Session) ListTeams() []models.Team {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.ListTeams()
}

func (s *Session) GetTeam(id string) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.GetTeam(id)
}

func (s *Session) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var team *models.Team
	err := s.commitLocked(ctx, func() (err error) {
		team, err = s.roster.AddTeam(input)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(SessionEvent{Type: EventRosterUpdated, Payload: team})
	return team, nil
}

func (s *Session) UpdateTeam(ctx context.Context, id string, input UpdateTeamInput) (*models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var team *models.Team
	err := s.commitLocked(ctx, func() (err error) {
		team, err = s.roster.UpdateTeam(id, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(SessionEvent{Type: EventRosterUpdated, Payload: team})
	return team, nil
}

func (s *Session) DeleteTeam(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commitLocked(ctx, func() error { return s.roster.DeleteTeam(id) }); err != nil {
		return err
	}
	s.notifier.Publish(SessionEvent{Type: EventRosterUpdated, Payload: map[string]string{"deleted_team_id": id}})
	return nil
}

func (s *Session) AddPlayer(ctx context.Context, teamID string, input PlayerInput) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var player *models.Player
	err := s.commitLocked(ctx, func() (err error) {
		player, err = s.roster.AddPlayer(teamID, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishTeamLocked(teamID)
	return player, nil
}

func (s *Session) UpdatePlayer(ctx context.Context, teamID, playerID string, input UpdatePlayerInput) (*models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var player *models.Player
	err := s.commitLocked(ctx, func() (err error) {
		player, err = s.roster.UpdatePlayer(teamID, playerID, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publishTeamLocked(teamID)
	return player, nil
}

func (s *Session) DeletePlayer(ctx context.Context, teamID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commitLocked(ctx, func() error { return s.roster.DeletePlayer(teamID, playerID) }); err != nil {
		return err
	}
	s.publishTeamLocked(teamID)
	return nil
}

// ImportPlayers replaces the team's roster; see ParsePlayerList for the line format.
func (s *Session) ImportPlayers(ctx context.Context, teamID, text string) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result ImportResult
	err := s.commitLocked(ctx, func() (err error) {
		result, err = s.roster.ImportPlayers(teamID, text)
		return err
	})
	if err != nil {
		return ImportResult{}, err
	}
	if len(result.DuplicateNumbers) > 0 {
		s.logger.Warn("roster import accepted duplicate squad numbers",
			slog.String("team_id", teamID), slog.Any("numbers", result.DuplicateNumbers))
	}
	s.publishTeamLocked(teamID)
	return result, nil
}

// --- Catalog ---

func (s *Session) ListActionTypes() []models.ActionType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.List()
}

func (s *Session) CreateActionType(ctx context.Context, input CreateActionTypeInput) (models.ActionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var at models.ActionType
	err := s.commitLocked(ctx, func() (err error) {
		at, err = s.catalog.Add(input)
		return err
	})
	if err != nil {
		return models.ActionType{}, err
	}
	s.notifier.Publish(SessionEvent{Type: EventCatalogUpdated, Payload: s.catalog.List()})
	return at, nil
}

func (s *Session) UpdateActionType(ctx context.Context, id string, input UpdateActionTypeInput) (models.ActionType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var at models.ActionType
	err := s.commitLocked(ctx, func() (err error) {
		at, err = s.catalog.Update(id, input)
		return err
	})
	if err != nil {
		return models.ActionType{}, err
	}
	s.notifier.Publish(SessionEvent{Type: EventCatalogUpdated, Payload: s.catalog.List()})
	return at, nil
}

func (s *Session) DeleteActionType(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commitLocked(ctx, func() error { return s.catalog.Remove(id) }); err != nil {
		return err
	}
	s.notifier.Publish(SessionEvent{Type: EventCatalogUpdated, Payload: s.catalog.List()})
	return nil
}

// --- Live match ---

func (s *Session) CurrentMatch() MatchView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) StartMatch(teamAID, teamBID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if teamAID == "" || teamBID == "" || teamAID == teamBID {
		return nil, ErrInvalidTeamSelection
	}
	teamA, errA := s.roster.GetTeam(teamAID)
	teamB, errB := s.roster.GetTeam(teamBID)
	if errA != nil || errB != nil {
		return nil, ErrInvalidTeamSelection
	}

	match, err := s.live.Start(teamA, teamB, s.now())
	if err != nil {
		return nil, err
	}
	s.logger.Info("match started", slog.String("match_id", match.ID),
		slog.String("team_a", teamA.Name), slog.String("team_b", teamB.Name))
	s.notifier.Publish(SessionEvent{Type: EventMatchStarted, Payload: s.viewLocked()})
	return match, nil
}

// ResumeGame reopens an archived game as the live match.
func (s *Session) ResumeGame(gameID string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.gameIndexLocked(gameID)
	if i < 0 {
		return nil, ErrGameNotFound
	}
	match, err := s.live.Resume(&s.games[i])
	if err != nil {
		return nil, err
	}
	s.logger.Info("archived game resumed", slog.String("match_id", match.ID), slog.Int("elapsed", match.CurrentTime))
	s.notifier.Publish(SessionEvent{Type: EventMatchStarted, Payload: s.viewLocked()})
	return match, nil
}

// SetPossession only accepts one of the two teams of the live match.
func (s *Session) SetPossession(teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := s.live.Current()
	if match == nil {
		return ErrNoLiveMatch
	}
	if match.TeamByID(teamID) == nil {
		return ErrTeamNotInMatch
	}
	if err := s.live.SetPossession(teamID); err != nil {
		return err
	}
	s.notifier.Publish(SessionEvent{Type: EventMatchUpdated, Payload: s.viewLocked()})
	return nil
}

func (s *Session) RecordZoneTap(zone models.Zone) (models.GameAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, err := s.live.RecordZoneTap(zone)
	if err != nil {
		return models.GameAction{}, err
	}
	s.notifier.Publish(SessionEvent{Type: EventActionsRecorded, Payload: []models.GameAction{action}})
	return action, nil
}

func (s *Session) RecordSpecificAction(idOrName string, playerID *string, zone models.Zone) ([]models.GameAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded, err := s.live.RecordSpecificAction(s.catalog, idOrName, playerID, zone)
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(SessionEvent{Type: EventActionsRecorded, Payload: recorded})
	return recorded, nil
}

func (s *Session) BeginAction(idOrName string, zone models.Zone) (*PendingSelection, []models.GameAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, recorded, err := s.live.BeginAction(s.catalog, idOrName, zone)
	if err != nil {
		return nil, nil, err
	}
	if len(recorded) > 0 {
		s.notifier.Publish(SessionEvent{Type: EventActionsRecorded, Payload: recorded})
	} else {
		s.notifier.Publish(SessionEvent{Type: EventMatchUpdated, Payload: s.viewLocked()})
	}
	return pending, recorded, nil
}

func (s *Session) CompleteAction(playerID string) ([]models.GameAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recorded, err := s.live.CompleteAction(s.catalog, playerID)
	if err != nil {
		return nil, err
	}
	s.notifier.Publish(SessionEvent{Type: EventActionsRecorded, Payload: recorded})
	return recorded, nil
}

func (s *Session) CancelAction() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live.CancelAction(); err != nil {
		return err
	}
	s.notifier.Publish(SessionEvent{Type: EventMatchUpdated, Payload: s.viewLocked()})
	return nil
}

func (s *Session) Tick(seconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live.Tick(seconds); err != nil {
		return err
	}
	s.notifier.Publish(SessionEvent{Type: EventClockTicked, Payload: map[string]int{"current_time": seconds}})
	return nil
}

// AdvanceClock moves a playing match forward by one second. It reports whether the clock
// moved; a paused or missing match is not an error.
func (s *Session) AdvanceClock() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := s.live.Current()
	if match == nil || !match.IsPlaying {
		return false
	}
	next := match.CurrentTime + 1
	if err := s.live.Tick(next); err != nil {
		return false
	}
	s.notifier.Publish(SessionEvent{Type: EventClockTicked, Payload: map[string]int{"current_time": next}})
	return true
}

func (s *Session) TogglePlay() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	playing, err := s.live.TogglePlay()
	if err != nil {
		return false, err
	}
	s.notifier.Publish(SessionEvent{Type: EventMatchUpdated, Payload: s.viewLocked()})
	return playing, nil
}

// EndMatch archives the live match. An archive entry with the same id (a resumed game) is
// replaced in place.
func (s *Session) EndMatch(ctx context.Context) (*models.SavedGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	liveBefore := s.live.state()
	var game *models.SavedGame
	err := s.commitLocked(ctx, func() (err error) {
		game, err = s.live.End(s.now())
		if err != nil {
			return err
		}
		if i := s.gameIndexLocked(game.ID); i >= 0 {
			s.games[i] = *game.Clone()
		} else {
			s.games = append(s.games, *game.Clone())
		}
		return nil
	})
	if err != nil {
		s.live.restore(liveBefore)
		return nil, err
	}

	s.logger.Info("match ended", slog.String("game_id", game.ID),
		slog.Int("actions", len(game.Actions)), slog.Int("duration", game.Duration))
	s.notifier.Publish(SessionEvent{Type: EventMatchEnded, Payload: game})
	return game, nil
}

// AbandonMatch discards the live match without producing a saved game.
func (s *Session) AbandonMatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.live.Abandon(); err != nil {
		return err
	}
	s.logger.Info("live match abandoned")
	s.notifier.Publish(SessionEvent{Type: EventMatchAbandoned})
	return nil
}

func (s *Session) LiveStats() (models.GameStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := s.live.Current()
	if match == nil {
		return models.GameStats{}, ErrNoLiveMatch
	}
	return stats.Compute(match.Actions, match.TeamA, match.TeamB, s.catalog.List()), nil
}

func (s *Session) LiveHeatMaps() (HeatMapsView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match := s.live.Current()
	if match == nil {
		return HeatMapsView{}, ErrNoLiveMatch
	}
	return heatMaps(match.Actions, match.TeamA, match.TeamB), nil
}

// ClearAllData wipes teams and the archive, restores the default catalog and drops any
// live match.
func (s *Session) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	liveBefore := s.live.state()
	err := s.commitLocked(ctx, func() error {
		s.restoreLocked(&models.Snapshot{ActionTypes: models.DefaultActionTypes()})
		s.live.restore(matchLogState{})
		return nil
	})
	if err != nil {
		s.live.restore(liveBefore)
		return err
	}
	s.logger.Warn("all data cleared")
	s.notifier.Publish(SessionEvent{Type: EventDataCleared})
	return nil
}

func (s *Session) viewLocked() MatchView {
	return MatchView{Phase: s.live.Phase(), Match: s.live.Current(), Pending: s.live.Pending()}
}

func (s *Session) publishTeamLocked(teamID string) {
	if team, err := s.roster.GetTeam(teamID); err == nil {
		s.notifier.Publish(SessionEvent{Type: EventRosterUpdated, Payload: team})
	}
}

// commitLocked applies fn and persists the durable state. If fn or the save fails the
// durable collections are rolled back to their previous contents.
func (s *Session) commitLocked(ctx context.Context, fn func() error) error {
	before := s.snapshotLocked()
	if err := fn(); err != nil {
		s.restoreLocked(before)
		return err
	}
	if err := s.repo.Save(ctx, s.snapshotLocked()); err != nil {
		s.restoreLocked(before)
		s.logger.Error("failed to persist session state", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrSnapshotSaveFailed, err)
	}
	return nil
}

func (s *Session) snapshotLocked() *models.Snapshot {
	games := make([]models.SavedGame, len(s.games))
	for i := range s.games {
		games[i] = *s.games[i].Clone()
	}
	return &models.Snapshot{
		Teams:       s.roster.Snapshot(),
		ActionTypes: s.catalog.Snapshot(),
		SavedGames:  games,
	}
}

func (s *Session) restoreLocked(snapshot *models.Snapshot) {
	s.roster.Restore(snapshot.Teams)
	s.catalog.Restore(snapshot.ActionTypes)
	s.games = make([]models.SavedGame, len(snapshot.SavedGames))
	for i := range snapshot.SavedGames {
		s.games[i] = *snapshot.SavedGames[i].Clone()
	}
}

func heatMaps(actions []models.GameAction, teamA, teamB *models.Team) HeatMapsView {
	return HeatMapsView{
		Combined: stats.HeatMap(actions, teamA, teamB),
		TeamA:    stats.TeamHeatMap(actions, teamA.ID),
		TeamB:    stats.TeamHeatMap(actions, teamB.ID),
	}
}
