package models

import "time"

type Match struct {
	ID                string       `json:"id"`
	TeamA             *Team        `json:"team_a"`
	TeamB             *Team        `json:"team_b"`
	Actions           []GameAction `json:"actions"`
	StartTime         time.Time    `json:"start_time"`
	CurrentTime       int          `json:"current_time"`
	IsPlaying         bool         `json:"is_playing"`
	CurrentPossession *string      `json:"current_possession"`
}

// Opponent returns the id of the match team that is not teamID.
func (m *Match) Opponent(teamID string) string {
	if teamID == m.TeamA.ID {
		return m.TeamB.ID
	}
	return m.TeamA.ID
}

func (m *Match) TeamByID(teamID string) *Team {
	switch teamID {
	case m.TeamA.ID:
		return m.TeamA
	case m.TeamB.ID:
		return m.TeamB
	}
	return nil
}

func (m *Match) Clone() *Match {
	if m == nil {
		return nil
	}
	c := *m
	c.TeamA = m.TeamA.Clone()
	c.TeamB = m.TeamB.Clone()
	c.Actions = CloneActions(m.Actions)
	if m.CurrentPossession != nil {
		p := *m.CurrentPossession
		c.CurrentPossession = &p
	}
	return &c
}

type SavedGame struct {
	ID        string       `json:"id"`
	TeamA     *Team        `json:"team_a"`
	TeamB     *Team        `json:"team_b"`
	Actions   []GameAction `json:"actions"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Duration  int          `json:"duration"` // seconds
}

func (g *SavedGame) Clone() *SavedGame {
	if g == nil {
		return nil
	}
	c := *g
	c.TeamA = g.TeamA.Clone()
	c.TeamB = g.TeamB.Clone()
	c.Actions = CloneActions(g.Actions)
	return &c
}

// Snapshot is the durable state: roster, catalog and archived games. A live match is never part of it.
type Snapshot struct {
	Teams       []Team       `json:"teams"`
	ActionTypes []ActionType `json:"action_types"`
	SavedGames  []SavedGame  `json:"saved_games"`
}
