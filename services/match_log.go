package services

import (
	"time"

	"github.com/Dosada05/match-tagger/models"
	"github.com/google/uuid"
)

type MatchPhase string

const (
	PhaseNoMatch MatchPhase = "no_match"
	PhaseLive    MatchPhase = "live"
)

// PendingSelection is the first half of a player-requiring action: the operator picked the
// action and must now pick a player out of Candidates (the target team's roster).
type PendingSelection struct {
	ActionType       models.ActionType `json:"action_type"`
	PossessingTeamID string            `json:"possessing_team_id"`
	TargetTeamID     string            `json:"target_team_id"`
	Zone             models.Zone       `json:"zone"`
	Candidates       []models.Player   `json:"candidates"`
}

// MatchLog owns the live match: the action list, possession pointer and clock. Recording
// operations either append all their entries or fail without touching the log.
type MatchLog struct {
	match   *models.Match
	pending *PendingSelection
	newID   func() string
}

func NewMatchLog() *MatchLog {
	return &MatchLog{newID: func() string { return uuid.New().String() }}
}

func (l *MatchLog) Phase() MatchPhase {
	if l.match == nil {
		return PhaseNoMatch
	}
	return PhaseLive
}

// Current returns a copy of the live match, or nil.
func (l *MatchLog) Current() *models.Match {
	return l.match.Clone()
}

func (l *MatchLog) Pending() *PendingSelection {
	if l.pending == nil {
		return nil
	}
	p := *l.pending
	p.ActionType = l.pending.ActionType.Clone()
	p.Candidates = append([]models.Player(nil), l.pending.Candidates...)
	return &p
}

func (l *MatchLog) Start(teamA, teamB *models.Team, now time.Time) (*models.Match, error) {
	if l.match != nil {
		return nil, ErrMatchAlreadyLive
	}
	if teamA == nil || teamB == nil || teamA.ID == teamB.ID {
		return nil, ErrInvalidTeamSelection
	}

	l.match = &models.Match{
		ID:        l.newID(),
		TeamA:     teamA.Clone(),
		TeamB:     teamB.Clone(),
		Actions:   []models.GameAction{},
		StartTime: now,
	}
	l.pending = nil
	return l.match.Clone(), nil
}

// Resume re-opens an archived game. The clock continues from the archived duration and
// the game keeps its id so that ending it again overwrites the archive entry.
func (l *MatchLog) Resume(game *models.SavedGame) (*models.Match, error) {
	if l.match != nil {
		return nil, ErrMatchAlreadyLive
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	l.match = &models.Match{
		ID:          game.ID,
		TeamA:       game.TeamA.Clone(),
		TeamB:       game.TeamB.Clone(),
		Actions:     models.CloneActions(game.Actions),
		StartTime:   game.StartTime,
		CurrentTime: game.Duration,
	}
	l.pending = nil
	return l.match.Clone(), nil
}

// SetPossession does not check that teamID plays in the match; Session does.
func (l *MatchLog) SetPossession(teamID string) error {
	if l.match == nil {
		return ErrNoLiveMatch
	}
	id := teamID
	l.match.CurrentPossession = &id
	l.pending = nil
	return nil
}

func (l *MatchLog) RecordZoneTap(zone models.Zone) (models.GameAction, error) {
	possessing, err := l.possession()
	if err != nil {
		return models.GameAction{}, err
	}
	if !zone.Valid() {
		return models.GameAction{}, ErrInvalidZone
	}

	action := models.GameAction{
		ID:        l.newID(),
		Type:      models.ActionKindPossession,
		TeamID:    possessing,
		Zone:      zone,
		Timestamp: l.match.CurrentTime,
	}
	l.match.Actions = append(l.match.Actions, action)
	return action.Clone(), nil
}

// RecordSpecificAction records a named action in one call. Player-requiring types need a
// playerID from the target team.
func (l *MatchLog) RecordSpecificAction(catalog *Catalog, idOrName string, playerID *string, zone models.Zone) ([]models.GameAction, error) {
	possessing, err := l.possession()
	if err != nil {
		return nil, err
	}
	if !zone.Valid() {
		return nil, ErrInvalidZone
	}
	at, ok := catalog.Resolve(idOrName)
	if !ok {
		return nil, ErrActionTypeNotFound
	}

	target := l.targetTeam(at, possessing)
	if at.RequiresPlayer && (playerID == nil || *playerID == "") {
		return nil, ErrPlayerRequired
	}
	return l.appendSpecific(catalog, at, target, playerID, zone)
}

// BeginAction starts the two-phase protocol. Types that need no player are recorded right
// away and returned; otherwise a PendingSelection is stored and returned.
func (l *MatchLog) BeginAction(catalog *Catalog, idOrName string, zone models.Zone) (*PendingSelection, []models.GameAction, error) {
	possessing, err := l.possession()
	if err != nil {
		return nil, nil, err
	}
	if !zone.Valid() {
		return nil, nil, ErrInvalidZone
	}
	at, ok := catalog.Resolve(idOrName)
	if !ok {
		return nil, nil, ErrActionTypeNotFound
	}

	target := l.targetTeam(at, possessing)
	if !at.RequiresPlayer {
		recorded, err := l.appendSpecific(catalog, at, target, nil, zone)
		if err != nil {
			return nil, nil, err
		}
		l.pending = nil
		return nil, recorded, nil
	}

	var candidates []models.Player
	if team := l.match.TeamByID(target); team != nil {
		candidates = team.Clone().Players
	}
	l.pending = &PendingSelection{
		ActionType:       at,
		PossessingTeamID: possessing,
		TargetTeamID:     target,
		Zone:             zone,
		Candidates:       candidates,
	}
	return l.Pending(), nil, nil
}

func (l *MatchLog) CompleteAction(catalog *Catalog, playerID string) ([]models.GameAction, error) {
	if l.match == nil {
		return nil, ErrNoLiveMatch
	}
	if l.pending == nil {
		return nil, ErrNoPendingAction
	}
	if playerID == "" {
		return nil, ErrPlayerRequired
	}

	p := l.pending
	recorded, err := l.appendSpecific(catalog, p.ActionType, p.TargetTeamID, &playerID, p.Zone)
	if err != nil {
		return nil, err
	}
	l.pending = nil
	return recorded, nil
}

func (l *MatchLog) CancelAction() error {
	if l.match == nil {
		return ErrNoLiveMatch
	}
	if l.pending == nil {
		return ErrNoPendingAction
	}
	l.pending = nil
	return nil
}

// Tick sets the match clock to a value supplied by the external ticker.
func (l *MatchLog) Tick(seconds int) error {
	if l.match == nil {
		return ErrNoLiveMatch
	}
	if seconds < 0 {
		return ErrInvalidClock
	}
	l.match.CurrentTime = seconds
	return nil
}

// TogglePlay flips the play flag and returns the new value. The clock itself is driven
// from outside.
func (l *MatchLog) TogglePlay() (bool, error) {
	if l.match == nil {
		return false, ErrNoLiveMatch
	}
	l.match.IsPlaying = !l.match.IsPlaying
	return l.match.IsPlaying, nil
}

// End freezes the live match into a SavedGame and returns the log to NoMatch.
func (l *MatchLog) End(now time.Time) (*models.SavedGame, error) {
	if l.match == nil {
		return nil, ErrNoLiveMatch
	}
	m := l.match
	game := &models.SavedGame{
		ID:        m.ID,
		TeamA:     m.TeamA.Clone(),
		TeamB:     m.TeamB.Clone(),
		Actions:   models.CloneActions(m.Actions),
		StartTime: m.StartTime,
		EndTime:   now,
		Duration:  m.CurrentTime,
	}
	l.match = nil
	l.pending = nil
	return game, nil
}

// Abandon discards the live match without archiving it.
func (l *MatchLog) Abandon() error {
	if l.match == nil {
		return ErrNoLiveMatch
	}
	l.match = nil
	l.pending = nil
	return nil
}

func (l *MatchLog) possession() (string, error) {
	if l.match == nil {
		return "", ErrNoLiveMatch
	}
	if l.match.CurrentPossession == nil {
		return "", ErrNoPossessionSelected
	}
	return *l.match.CurrentPossession, nil
}

func (l *MatchLog) targetTeam(at models.ActionType, possessing string) string {
	if at.ReverseAction {
		return l.match.Opponent(possessing)
	}
	return possessing
}

// appendSpecific adds the primary entry and, when the counter-action still resolves, a
// second entry for the opponent of the primary's team. Both share the current timestamp.
func (l *MatchLog) appendSpecific(catalog *Catalog, at models.ActionType, target string, playerID *string, zone models.Zone) ([]models.GameAction, error) {
	var player *string
	if playerID != nil && *playerID != "" {
		team := l.match.TeamByID(target)
		if team == nil {
			return nil, ErrPlayerNotOnTeam
		}
		if _, ok := team.FindPlayer(*playerID); !ok {
			return nil, ErrPlayerNotOnTeam
		}
		id := *playerID
		player = &id
	}

	now := l.match.CurrentTime
	name, typeID := at.Name, at.ID
	recorded := []models.GameAction{{
		ID:           l.newID(),
		Type:         models.ActionKindSpecific,
		TeamID:       target,
		PlayerID:     player,
		Zone:         zone,
		Timestamp:    now,
		ActionName:   &name,
		ActionTypeID: &typeID,
	}}

	if at.CounterAction != nil {
		if counter, ok := catalog.Get(*at.CounterAction); ok {
			counterName, counterID := counter.Name, counter.ID
			recorded = append(recorded, models.GameAction{
				ID:           l.newID(),
				Type:         models.ActionKindSpecific,
				TeamID:       l.match.Opponent(target),
				Zone:         zone,
				Timestamp:    now,
				ActionName:   &counterName,
				ActionTypeID: &counterID,
			})
		}
	}

	l.match.Actions = append(l.match.Actions, recorded...)
	return models.CloneActions(recorded), nil
}

type matchLogState struct {
	match   *models.Match
	pending *PendingSelection
}

func (l *MatchLog) state() matchLogState {
	return matchLogState{match: l.match.Clone(), pending: l.Pending()}
}

func (l *MatchLog) restore(st matchLogState) {
	l.match = st.match
	l.pending = st.pending
}
