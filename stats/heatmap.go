package stats

import (
	"image/color"

	"github.com/Dosada05/match-tagger/models"
)

// HeatMap aggregates possession taps of both teams on the zone grid. Entries outside the
// grid are ignored.
func HeatMap(actions []models.GameAction, teamA, teamB *models.Team) models.HeatMap {
	var hm models.HeatMap

	for _, a := range actions {
		if a.Type != models.ActionKindPossession || !a.Zone.Valid() {
			continue
		}
		cell := &hm.Cells[a.Zone.Row][a.Zone.Col]
		switch a.TeamID {
		case teamA.ID:
			cell.TeamA++
		case teamB.ID:
			cell.TeamB++
		default:
			continue
		}
		cell.Total++
	}

	for r := range hm.Cells {
		for c := range hm.Cells[r] {
			if hm.Cells[r][c].Total > hm.Max {
				hm.Max = hm.Cells[r][c].Total
			}
		}
	}

	for r := range hm.Cells {
		for c := range hm.Cells[r] {
			cell := &hm.Cells[r][c]
			cell.Dominant = teamA.ID
			if cell.TeamB > cell.TeamA {
				cell.Dominant = teamB.ID
			}
			cell.Intensity, cell.Level = normalize(cell.Total, hm.Max)
		}
	}
	return hm
}

// TeamHeatMap is the single-team view, normalised against the team's own busiest zone.
func TeamHeatMap(actions []models.GameAction, teamID string) models.TeamHeatMap {
	hm := models.TeamHeatMap{TeamID: teamID}

	for _, a := range actions {
		if a.TeamID != teamID || a.Type != models.ActionKindPossession || !a.Zone.Valid() {
			continue
		}
		hm.Cells[a.Zone.Row][a.Zone.Col].Count++
		hm.Total++
	}

	for r := range hm.Cells {
		for c := range hm.Cells[r] {
			if hm.Cells[r][c].Count > hm.Max {
				hm.Max = hm.Cells[r][c].Count
			}
		}
	}
	for r := range hm.Cells {
		for c := range hm.Cells[r] {
			cell := &hm.Cells[r][c]
			cell.Intensity, cell.Level = normalize(cell.Count, hm.Max)
		}
	}
	return hm
}

func normalize(count, max int) (float64, int) {
	if max == 0 || count == 0 {
		return 0, 0
	}
	n := float64(count) / float64(max)
	switch {
	case n <= 0.25:
		return n, 1
	case n <= 0.5:
		return n, 2
	case n <= 0.75:
		return n, 3
	default:
		return n, 4
	}
}

var levelColors = [...]color.NRGBA{
	{R: 255, G: 255, B: 0, A: 26},  // placeholder
	{R: 255, G: 255, B: 0, A: 102}, // low
	{R: 255, G: 200, B: 0, A: 153},
	{R: 255, G: 100, B: 0, A: 204},
	{R: 255, G: 0, B: 0, A: 230}, // high
}

// LevelColor maps a heat level to its display colour. Out-of-range levels clamp.
func LevelColor(level int) color.NRGBA {
	if level < 0 {
		level = 0
	}
	if level >= len(levelColors) {
		level = len(levelColors) - 1
	}
	return levelColors[level]
}
