package models

import "sort"

type TeamColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type Player struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type Team struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Logo    *string    `json:"logo,omitempty"`
	Colors  TeamColors `json:"colors"`
	Players []Player   `json:"players"`
}

// Clone returns a deep copy of the team, players and logo included.
func (t *Team) Clone() *Team {
	if t == nil {
		return nil
	}
	c := *t
	if t.Logo != nil {
		logo := *t.Logo
		c.Logo = &logo
	}
	c.Players = make([]Player, len(t.Players))
	copy(c.Players, t.Players)
	return &c
}

// SortPlayers orders the roster by squad number, keeping insertion order for equal numbers.
func (t *Team) SortPlayers() {
	sort.SliceStable(t.Players, func(i, j int) bool {
		return t.Players[i].Number < t.Players[j].Number
	})
}

func (t *Team) FindPlayer(playerID string) (*Player, bool) {
	for i := range t.Players {
		if t.Players[i].ID == playerID {
			return &t.Players[i], true
		}
	}
	return nil, false
}
