package models

// ActionType describes a named action an operator can tag during a match.
type ActionType struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Icon           string  `json:"icon"`
	RequiresPlayer bool    `json:"requires_player"`
	CounterAction  *string `json:"counter_action,omitempty"` // ID of the action auto-recorded for the opposing team
	ReverseAction  bool    `json:"reverse_action,omitempty"` // primary entry goes to the non-possessing team
}

func (a ActionType) Clone() ActionType {
	if a.CounterAction != nil {
		counter := *a.CounterAction
		a.CounterAction = &counter
	}
	return a
}

func strPtr(s string) *string { return &s }

// DefaultActionTypes is the catalog a fresh installation starts with.
func DefaultActionTypes() []ActionType {
	return []ActionType{
		{ID: "1", Name: "Chute no Alvo", RequiresPlayer: true, Icon: "⚽"},
		{ID: "2", Name: "Chute Fora do Alvo", RequiresPlayer: true, Icon: "🥅"},
		{ID: "3", Name: "Falta Cometida", RequiresPlayer: true, Icon: "🟨", CounterAction: strPtr("14")},
		{ID: "4", Name: "Cartão Amarelo", RequiresPlayer: true, Icon: "🟨"},
		{ID: "5", Name: "Cartão Vermelho", RequiresPlayer: true, Icon: "🟥"},
		{ID: "6", Name: "Cartão Vermelho Direto", RequiresPlayer: true, Icon: "🔴"},
		{ID: "7", Name: "Escanteio", RequiresPlayer: true, Icon: "🏁"},
		{ID: "8", Name: "Impedimento", RequiresPlayer: true, Icon: "🚩"},
		{ID: "9", Name: "Lateral", RequiresPlayer: true, Icon: "↔️"},
		{ID: "10", Name: "Desarme", RequiresPlayer: true, Icon: "🦵"},
		{ID: "11", Name: "Chute Bloqueado", RequiresPlayer: true, Icon: "🛡️"},
		{ID: "12", Name: "Gol Contra", RequiresPlayer: true, Icon: "😵", ReverseAction: true},
		{ID: "13", Name: "Mão na Bola", RequiresPlayer: true, Icon: "✋"},
		{ID: "14", Name: "Falta Sofrida", RequiresPlayer: false, Icon: "🚑"},
	}
}
