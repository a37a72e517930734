package models

type TeamPair struct {
	TeamA int `json:"team_a"`
	TeamB int `json:"team_b"`
}

type GameStats struct {
	Possession      TeamPair            `json:"possession"` // percent
	Actions         TeamPair            `json:"actions"`
	SpecificActions map[string]TeamPair `json:"specific_actions"`
}

type HeatCell struct {
	TeamA     int     `json:"team_a"`
	TeamB     int     `json:"team_b"`
	Total     int     `json:"total"`
	Dominant  string  `json:"dominant"`  // team id with more entries; team A on ties
	Intensity float64 `json:"intensity"` // Total / max total in the grid
	Level     int     `json:"level"`     // 0..4 colour bucket
}

type HeatMap struct {
	Cells [GridSize][GridSize]HeatCell `json:"cells"`
	Max   int                          `json:"max"`
}

type TeamHeatCell struct {
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"`
	Level     int     `json:"level"`
}

type TeamHeatMap struct {
	TeamID string                           `json:"team_id"`
	Cells  [GridSize][GridSize]TeamHeatCell `json:"cells"`
	Max    int                              `json:"max"`
	Total  int                              `json:"total"`
}
