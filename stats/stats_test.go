package stats

import (
	"testing"

	"github.com/Dosada05/match-tagger/models"
)

var (
	teamA = &models.Team{ID: "a", Name: "Alpha"}
	teamB = &models.Team{ID: "b", Name: "Bravo"}
)

func str(s string) *string { return &s }

func tap(team string, row, col int) models.GameAction {
	return models.GameAction{Type: models.ActionKindPossession, TeamID: team, Zone: models.Zone{Row: row, Col: col}}
}

func specific(team, name string, typeID *string) models.GameAction {
	return models.GameAction{Type: models.ActionKindSpecific, TeamID: team, Zone: models.CenterZone, ActionName: str(name), ActionTypeID: typeID}
}

func TestComputeEmptyLog(t *testing.T) {
	got := Compute(nil, teamA, teamB, models.DefaultActionTypes())

	if got.Possession != (models.TeamPair{}) {
		t.Fatalf("possession = %+v, want zeros", got.Possession)
	}
	if got.Actions != (models.TeamPair{}) {
		t.Fatalf("actions = %+v, want zeros", got.Actions)
	}
	if len(got.SpecificActions) != len(models.DefaultActionTypes()) {
		t.Fatalf("specific entries = %d, want %d", len(got.SpecificActions), len(models.DefaultActionTypes()))
	}
	for name, pair := range got.SpecificActions {
		if pair != (models.TeamPair{}) {
			t.Errorf("%s = %+v, want zeros", name, pair)
		}
	}
}

func TestComputePossessionRounding(t *testing.T) {
	tests := []struct {
		name         string
		a, b         int
		wantA, wantB int
	}{
		{name: "even split", a: 2, b: 2, wantA: 50, wantB: 50},
		{name: "thirds", a: 1, b: 2, wantA: 33, wantB: 67},
		{name: "one sided", a: 3, b: 0, wantA: 100, wantB: 0},
		{name: "half rounds up", a: 1, b: 7, wantA: 13, wantB: 88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log []models.GameAction
			for i := 0; i < tt.a; i++ {
				log = append(log, tap("a", 0, 0))
			}
			for i := 0; i < tt.b; i++ {
				log = append(log, tap("b", 0, 0))
			}

			got := Compute(log, teamA, teamB, nil)
			if got.Possession.TeamA != tt.wantA || got.Possession.TeamB != tt.wantB {
				t.Fatalf("possession = %+v, want %d/%d", got.Possession, tt.wantA, tt.wantB)
			}
			sum := got.Possession.TeamA + got.Possession.TeamB
			if sum < 99 || sum > 101 {
				t.Fatalf("possession sum = %d, want 100±1", sum)
			}
			if got.Actions.TeamA != tt.a || got.Actions.TeamB != tt.b {
				t.Fatalf("actions = %+v, want %d/%d", got.Actions, tt.a, tt.b)
			}
		})
	}
}

func TestComputeBreakdownByNameAndID(t *testing.T) {
	catalog := []models.ActionType{
		{ID: "3", Name: "Falta Cometida"},
		{ID: "14", Name: "Falta Sofrida"},
	}
	log := []models.GameAction{
		specific("a", "Falta Cometida", str("3")),
		specific("b", "Falta Sofrida", str("14")),
		specific("b", "Falta Cometida", nil),      // legacy entry without id
		specific("a", "Old Name", str("3")),       // renamed type, still resolves by id
		specific("a", "Falta Sofrida", str("99")), // id gone, falls back to name
	}

	got := Compute(log, teamA, teamB, catalog)

	if want := (models.TeamPair{TeamA: 2, TeamB: 1}); got.SpecificActions["Falta Cometida"] != want {
		t.Errorf("Falta Cometida = %+v, want %+v", got.SpecificActions["Falta Cometida"], want)
	}
	if want := (models.TeamPair{TeamA: 1, TeamB: 1}); got.SpecificActions["Falta Sofrida"] != want {
		t.Errorf("Falta Sofrida = %+v, want %+v", got.SpecificActions["Falta Sofrida"], want)
	}
	if _, ok := got.SpecificActions["Old Name"]; ok {
		t.Errorf("breakdown should only carry current catalog names")
	}
}

func TestHeatMapCountsPossessionTapsOnly(t *testing.T) {
	log := []models.GameAction{
		tap("a", 0, 0),
		tap("a", 0, 0),
		tap("b", 0, 0),
		tap("b", 4, 4),
		tap("b", 4, 4),
		tap("a", 2, 2),
		tap("b", 2, 2),
		specific("a", "Escanteio", nil), // centre zone, ignored
		tap("a", 5, 0),                  // out of range
		tap("b", -1, 3),                 // out of range
	}

	hm := HeatMap(log, teamA, teamB)

	if hm.Max != 3 {
		t.Fatalf("max = %d, want 3", hm.Max)
	}
	corner := hm.Cells[0][0]
	if corner.TeamA != 2 || corner.TeamB != 1 || corner.Total != 3 || corner.Dominant != "a" || corner.Level != 4 {
		t.Errorf("cell[0][0] = %+v", corner)
	}
	if hm.Cells[4][4].Dominant != "b" {
		t.Errorf("cell[4][4] dominant = %s, want b", hm.Cells[4][4].Dominant)
	}
	centre := hm.Cells[2][2]
	if centre.Total != 2 || centre.Dominant != "a" {
		t.Errorf("tie should default to team A, got %+v", centre)
	}
	if hm.Cells[1][1].Level != 0 || hm.Cells[1][1].Intensity != 0 {
		t.Errorf("empty cell = %+v, want placeholder", hm.Cells[1][1])
	}
}

func TestHeatMapEmpty(t *testing.T) {
	hm := HeatMap(nil, teamA, teamB)
	if hm.Max != 0 {
		t.Fatalf("max = %d, want 0", hm.Max)
	}
	if hm.Cells[0][0].Dominant != "a" {
		t.Fatalf("empty cell dominant = %q, want team A", hm.Cells[0][0].Dominant)
	}
}

func TestTeamHeatMapUsesOwnMaximum(t *testing.T) {
	log := []models.GameAction{
		tap("a", 1, 1), tap("a", 1, 1), tap("a", 1, 1), tap("a", 1, 1),
		tap("b", 1, 1),
		tap("b", 3, 3), tap("b", 3, 3),
	}

	shared := HeatMap(log, teamA, teamB)
	own := TeamHeatMap(log, "b")

	if own.Max != 2 || own.Total != 3 {
		t.Fatalf("team map max/total = %d/%d, want 2/3", own.Max, own.Total)
	}
	if own.Cells[3][3].Level != 4 {
		t.Errorf("own busiest zone level = %d, want 4", own.Cells[3][3].Level)
	}
	if shared.Cells[3][3].Level != 2 {
		t.Errorf("shared level for same zone = %d, want 2", shared.Cells[3][3].Level)
	}
	if own.Cells[1][1].Intensity != 0.5 {
		t.Errorf("intensity = %v, want 0.5", own.Cells[1][1].Intensity)
	}
}

func TestLevelColorClamps(t *testing.T) {
	if LevelColor(-3) != LevelColor(0) {
		t.Error("negative level should clamp to placeholder")
	}
	if LevelColor(42) != LevelColor(4) {
		t.Error("large level should clamp to highest bucket")
	}
}
