package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/match-tagger/models"
	"github.com/Dosada05/match-tagger/stats"
)

// Архив сыгранных матчей. Операции с неизвестным id ничего не меняют и не считаются ошибкой.

func (s *Session) ListGames() []models.SavedGame {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := make([]models.SavedGame, len(s.games))
	for i := range s.games {
		games[i] = *s.games[i].Clone()
	}
	return games
}

func (s *Session) GetGame(gameID string) (*models.SavedGame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.gameIndexLocked(gameID)
	if i < 0 {
		return nil, false
	}
	return s.games[i].Clone(), true
}

// DeleteGame reports whether a game was removed.
func (s *Session) DeleteGame(ctx context.Context, gameID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.gameIndexLocked(gameID)
	if i < 0 {
		return false, nil
	}
	err := s.commitLocked(ctx, func() error {
		s.games = append(s.games[:i], s.games[i+1:]...)
		return nil
	})
	if err != nil {
		return false, err
	}
	s.logger.Info("archived game deleted", slog.String("game_id", gameID))
	s.notifier.Publish(SessionEvent{Type: EventArchiveUpdated, Payload: map[string]string{"deleted_game_id": gameID}})
	return true, nil
}

// EditAction merges patch into one action of an archived game. A missing game yields
// (nil, false); a missing action leaves the game untouched and is returned as is.
// A new action name is re-resolved against the catalog so stats follow the relabel.
func (s *Session) EditAction(ctx context.Context, gameID, actionID string, patch models.GameActionPatch) (*models.SavedGame, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gi := s.gameIndexLocked(gameID)
	if gi < 0 {
		return nil, false, nil
	}
	ai := actionIndex(s.games[gi].Actions, actionID)
	if ai < 0 {
		return s.games[gi].Clone(), true, nil
	}

	err := s.commitLocked(ctx, func() error {
		action := &s.games[gi].Actions[ai]
		patch.Apply(action)
		if patch.ActionName != nil {
			action.ActionTypeID = nil
			if at, ok := s.catalog.FindByName(*patch.ActionName); ok {
				id := at.ID
				action.ActionTypeID = &id
			}
		}
		return nil
	})
	if err != nil {
		return nil, true, err
	}
	game := s.games[gi].Clone()
	s.notifier.Publish(SessionEvent{Type: EventArchiveUpdated, Payload: game})
	return game, true, nil
}

func (s *Session) DeleteAction(ctx context.Context, gameID, actionID string) (*models.SavedGame, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gi := s.gameIndexLocked(gameID)
	if gi < 0 {
		return nil, false, nil
	}
	ai := actionIndex(s.games[gi].Actions, actionID)
	if ai < 0 {
		return s.games[gi].Clone(), true, nil
	}

	err := s.commitLocked(ctx, func() error {
		actions := s.games[gi].Actions
		s.games[gi].Actions = append(actions[:ai:ai], actions[ai+1:]...)
		return nil
	})
	if err != nil {
		return nil, true, err
	}
	game := s.games[gi].Clone()
	s.notifier.Publish(SessionEvent{Type: EventArchiveUpdated, Payload: game})
	return game, true, nil
}

func (s *Session) GameStats(gameID string) (models.GameStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.gameIndexLocked(gameID)
	if i < 0 {
		return models.GameStats{}, ErrGameNotFound
	}
	g := &s.games[i]
	return stats.Compute(g.Actions, g.TeamA, g.TeamB, s.catalog.List()), nil
}

func (s *Session) HeatMaps(gameID string) (HeatMapsView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.gameIndexLocked(gameID)
	if i < 0 {
		return HeatMapsView{}, ErrGameNotFound
	}
	g := &s.games[i]
	return heatMaps(g.Actions, g.TeamA, g.TeamB), nil
}

// GameReport is an archived game with everything derived from it, read in one step.
type GameReport struct {
	Game     *models.SavedGame
	Stats    models.GameStats
	HeatMaps HeatMapsView
	Catalog  []models.ActionType
}

// GameReport returns the game, its stats, heat maps and the catalog under a single lock so
// the text and image exports agree.
func (s *Session) GameReport(gameID string) (*GameReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.gameIndexLocked(gameID)
	if i < 0 {
		return nil, ErrGameNotFound
	}
	g := &s.games[i]
	catalog := s.catalog.List()
	return &GameReport{
		Game:     g.Clone(),
		Stats:    stats.Compute(g.Actions, g.TeamA, g.TeamB, catalog),
		HeatMaps: heatMaps(g.Actions, g.TeamA, g.TeamB),
		Catalog:  catalog,
	}, nil
}

func (s *Session) gameIndexLocked(gameID string) int {
	for i := range s.games {
		if s.games[i].ID == gameID {
			return i
		}
	}
	return -1
}

func actionIndex(actions []models.GameAction, actionID string) int {
	for i := range actions {
		if actions[i].ID == actionID {
			return i
		}
	}
	return -1
}
