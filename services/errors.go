package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Roster
	ErrTeamNotFound         = errors.New("team not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrTeamNameRequired     = errors.New("team name is required")
	ErrPlayerNameRequired   = errors.New("player name is required")
	ErrInvalidSquadNumber   = errors.New("squad number must be positive")
	ErrDuplicateSquadNumber = errors.New("squad number already taken in this team")

	// Catalog
	ErrActionTypeNotFound         = errors.New("action type not found")
	ErrActionTypeNameRequired     = errors.New("action type name is required")
	ErrActionTypeIDTaken          = errors.New("action type id already exists")
	ErrCounterActionSelfReference = errors.New("counter action cannot reference the action itself")
	ErrCounterActionNotFound      = errors.New("counter action references an unknown action type")

	// Match event log
	ErrInvalidTeamSelection = errors.New("two distinct existing teams are required to start a match")
	ErrNoPossessionSelected = errors.New("select the team in possession before recording events")
	ErrNoLiveMatch          = errors.New("no match is in progress")
	ErrMatchAlreadyLive     = errors.New("a match is already in progress")
	ErrTeamNotInMatch       = errors.New("team is not playing in the current match")
	ErrInvalidZone          = errors.New("zone is outside the field grid")
	ErrInvalidClock         = errors.New("elapsed seconds cannot be negative")
	ErrPlayerRequired       = errors.New("this action requires a player")
	ErrPlayerNotOnTeam      = errors.New("player is not on the acting team")
	ErrNoPendingAction      = errors.New("no action is waiting for a player")

	// Archive
	ErrGameNotFound = errors.New("saved game not found")

	// Auth
	ErrAuthInvalidCredentials = errors.New("invalid operator password")
	ErrAuthDisabled           = errors.New("operator authentication is not configured")

	// Persistence
	ErrSnapshotSaveFailed = errors.New("failed to persist state")
	ErrExportFailed       = errors.New("failed to export game")
)
