package services

import (
	"fmt"
	"strings"

	"github.com/Dosada05/match-tagger/models"
	"github.com/google/uuid"
)

const (
	defaultPrimaryColor   = "#3B82F6"
	defaultSecondaryColor = "#1E40AF"
)

type PlayerInput struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type CreateTeamInput struct {
	Name    string             `json:"name"`
	Logo    *string            `json:"logo,omitempty"`
	Colors  *models.TeamColors `json:"colors,omitempty"`
	Players []PlayerInput      `json:"players,omitempty"`
}

type UpdateTeamInput struct {
	Name    *string            `json:"name,omitempty"`
	Logo    *string            `json:"logo,omitempty"`
	Colors  *models.TeamColors `json:"colors,omitempty"`
	Players *[]PlayerInput     `json:"players,omitempty"` // replaces the whole roster
}

type UpdatePlayerInput struct {
	Number   *int    `json:"number,omitempty"`
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
}

// Roster is the registry of teams and their players. Like Catalog it relies on the Session
// for serialisation.
type Roster struct {
	teams []models.Team
}

func NewRoster(teams []models.Team) *Roster {
	r := &Roster{}
	r.Restore(teams)
	return r
}

func (r *Roster) ListTeams() []models.Team {
	return r.Snapshot()
}

func (r *Roster) GetTeam(id string) (*models.Team, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrTeamNotFound
	}
	return r.teams[i].Clone(), nil
}

func (r *Roster) AddTeam(input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	team := models.Team{
		ID:     uuid.New().String(),
		Name:   name,
		Logo:   input.Logo,
		Colors: models.TeamColors{Primary: defaultPrimaryColor, Secondary: defaultSecondaryColor},
	}
	if input.Colors != nil {
		team.Colors = *input.Colors
	}

	players, err := buildPlayers(input.Players)
	if err != nil {
		return nil, err
	}
	team.Players = players
	team.SortPlayers()

	r.teams = append(r.teams, team)
	return team.Clone(), nil
}

func (r *Roster) UpdateTeam(id string, input UpdateTeamInput) (*models.Team, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrTeamNotFound
	}
	team := r.teams[i].Clone()

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = name
	}
	if input.Logo != nil {
		if *input.Logo == "" {
			team.Logo = nil
		} else {
			logo := *input.Logo
			team.Logo = &logo
		}
	}
	if input.Colors != nil {
		team.Colors = *input.Colors
	}
	if input.Players != nil {
		players, err := buildPlayers(*input.Players)
		if err != nil {
			return nil, err
		}
		team.Players = players
		team.SortPlayers()
	}

	r.teams[i] = *team
	return team.Clone(), nil
}

func (r *Roster) DeleteTeam(id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return ErrTeamNotFound
	}
	r.teams = append(r.teams[:i], r.teams[i+1:]...)
	return nil
}

func (r *Roster) AddPlayer(teamID string, input PlayerInput) (*models.Player, error) {
	i := r.indexOf(teamID)
	if i < 0 {
		return nil, ErrTeamNotFound
	}
	if err := validatePlayer(input); err != nil {
		return nil, err
	}
	team := &r.teams[i]
	if numberTaken(team.Players, input.Number, "") {
		return nil, fmt.Errorf("%w: #%d", ErrDuplicateSquadNumber, input.Number)
	}

	player := newPlayer(input)
	team.Players = append(team.Players, player)
	team.SortPlayers()
	return &player, nil
}

func (r *Roster) UpdatePlayer(teamID, playerID string, input UpdatePlayerInput) (*models.Player, error) {
	i := r.indexOf(teamID)
	if i < 0 {
		return nil, ErrTeamNotFound
	}
	team := &r.teams[i]
	existing, ok := team.FindPlayer(playerID)
	if !ok {
		return nil, ErrPlayerNotFound
	}

	updated := *existing
	if input.Number != nil {
		updated.Number = *input.Number
	}
	if input.Name != nil {
		updated.Name = strings.TrimSpace(*input.Name)
	}
	if input.Position != nil {
		updated.Position = *input.Position
	}
	if err := validatePlayer(PlayerInput{Number: updated.Number, Name: updated.Name}); err != nil {
		return nil, err
	}
	if numberTaken(team.Players, updated.Number, playerID) {
		return nil, fmt.Errorf("%w: #%d", ErrDuplicateSquadNumber, updated.Number)
	}

	*existing = updated
	team.SortPlayers()
	return &updated, nil
}

func (r *Roster) DeletePlayer(teamID, playerID string) error {
	i := r.indexOf(teamID)
	if i < 0 {
		return ErrTeamNotFound
	}
	team := &r.teams[i]
	for j := range team.Players {
		if team.Players[j].ID == playerID {
			team.Players = append(team.Players[:j], team.Players[j+1:]...)
			return nil
		}
	}
	return ErrPlayerNotFound
}

// ImportPlayers replaces the team's whole roster with the players parsed from text.
// Duplicate numbers are accepted and reported back to the caller.
func (r *Roster) ImportPlayers(teamID, text string) (ImportResult, error) {
	i := r.indexOf(teamID)
	if i < 0 {
		return ImportResult{}, ErrTeamNotFound
	}

	result := ParsePlayerList(text)
	team := &r.teams[i]
	team.Players = make([]models.Player, len(result.Players))
	copy(team.Players, result.Players)
	team.SortPlayers()
	return result, nil
}

func (r *Roster) Snapshot() []models.Team {
	out := make([]models.Team, len(r.teams))
	for i := range r.teams {
		out[i] = *r.teams[i].Clone()
	}
	return out
}

func (r *Roster) Restore(teams []models.Team) {
	r.teams = make([]models.Team, len(teams))
	for i := range teams {
		r.teams[i] = *teams[i].Clone()
	}
}

func (r *Roster) indexOf(id string) int {
	for i := range r.teams {
		if r.teams[i].ID == id {
			return i
		}
	}
	return -1
}

func buildPlayers(inputs []PlayerInput) ([]models.Player, error) {
	players := make([]models.Player, 0, len(inputs))
	for _, in := range inputs {
		if err := validatePlayer(in); err != nil {
			return nil, err
		}
		if numberTaken(players, in.Number, "") {
			return nil, fmt.Errorf("%w: #%d", ErrDuplicateSquadNumber, in.Number)
		}
		players = append(players, newPlayer(in))
	}
	return players, nil
}

func validatePlayer(in PlayerInput) error {
	if in.Number <= 0 {
		return ErrInvalidSquadNumber
	}
	if strings.TrimSpace(in.Name) == "" {
		return ErrPlayerNameRequired
	}
	return nil
}

func newPlayer(in PlayerInput) models.Player {
	position := strings.TrimSpace(in.Position)
	if position == "" {
		position = DefaultPosition
	}
	return models.Player{
		ID:       uuid.New().String(),
		Number:   in.Number,
		Name:     strings.TrimSpace(in.Name),
		Position: position,
	}
}

func numberTaken(players []models.Player, number int, exceptID string) bool {
	for _, p := range players {
		if p.Number == number && p.ID != exceptID {
			return true
		}
	}
	return false
}
