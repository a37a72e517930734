package models

// GridSize is the number of rows and columns of the zone overlay on the field.
const GridSize = 5

type ActionKind string

const (
	ActionKindPossession ActionKind = "possession"
	ActionKindSpecific   ActionKind = "specific"
)

type Zone struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (z Zone) Valid() bool {
	return z.Row >= 0 && z.Row < GridSize && z.Col >= 0 && z.Col < GridSize
}

// CenterZone is used when an action is tagged without a field position.
var CenterZone = Zone{Row: 2, Col: 2}

type GameAction struct {
	ID        string     `json:"id"`
	Type      ActionKind `json:"type"`
	TeamID    string     `json:"team_id"`
	PlayerID  *string    `json:"player_id,omitempty"`
	Zone      Zone       `json:"zone"`
	Timestamp int        `json:"timestamp"` // elapsed match seconds

	// ActionName is the catalog display name captured when the action was recorded.
	ActionName   *string `json:"action_name,omitempty"`
	ActionTypeID *string `json:"action_type_id,omitempty"`
}

func (a GameAction) Clone() GameAction {
	if a.PlayerID != nil {
		v := *a.PlayerID
		a.PlayerID = &v
	}
	if a.ActionName != nil {
		v := *a.ActionName
		a.ActionName = &v
	}
	if a.ActionTypeID != nil {
		v := *a.ActionTypeID
		a.ActionTypeID = &v
	}
	return a
}

func CloneActions(actions []GameAction) []GameAction {
	out := make([]GameAction, len(actions))
	for i, a := range actions {
		out[i] = a.Clone()
	}
	return out
}

// GameActionPatch carries the fields the archive editor may overwrite.
type GameActionPatch struct {
	Type       *ActionKind `json:"type,omitempty"`
	TeamID     *string     `json:"team_id,omitempty"`
	PlayerID   *string     `json:"player_id,omitempty"`
	Zone       *Zone       `json:"zone,omitempty"`
	Timestamp  *int        `json:"timestamp,omitempty"`
	ActionName *string     `json:"action_name,omitempty"`
}

// Apply merges the non-nil fields of the patch into a.
func (p GameActionPatch) Apply(a *GameAction) {
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.TeamID != nil {
		a.TeamID = *p.TeamID
	}
	if p.PlayerID != nil {
		v := *p.PlayerID
		if v == "" {
			a.PlayerID = nil
		} else {
			a.PlayerID = &v
		}
	}
	if p.Zone != nil {
		a.Zone = *p.Zone
	}
	if p.Timestamp != nil {
		a.Timestamp = *p.Timestamp
	}
	if p.ActionName != nil {
		v := *p.ActionName
		a.ActionName = &v
	}
}
