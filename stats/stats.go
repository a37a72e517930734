// Package stats folds a recorded action log into possession, action totals and heat maps.
// All functions are pure and safe to call on live or archived logs.
package stats

import (
	"math"

	"github.com/Dosada05/match-tagger/models"
)

// Compute builds the GameStats of a log. Events belonging to neither team count towards
// the total only. The breakdown has one entry per catalog type, keyed by its current name.
func Compute(actions []models.GameAction, teamA, teamB *models.Team, catalog []models.ActionType) models.GameStats {
	result := models.GameStats{
		SpecificActions: make(map[string]models.TeamPair, len(catalog)),
	}

	for _, a := range actions {
		switch a.TeamID {
		case teamA.ID:
			result.Actions.TeamA++
		case teamB.ID:
			result.Actions.TeamB++
		}
	}

	total := len(actions)
	result.Possession.TeamA = percent(result.Actions.TeamA, total)
	result.Possession.TeamB = percent(result.Actions.TeamB, total)

	known := make(map[string]bool, len(catalog))
	for _, at := range catalog {
		known[at.ID] = true
	}

	// Catalog names are not unique; name-matched actions count once per name.
	nameClaimed := make(map[string]bool, len(catalog))
	for _, at := range catalog {
		pair := result.SpecificActions[at.Name]
		byName := !nameClaimed[at.Name]
		nameClaimed[at.Name] = true
		for _, a := range actions {
			if !matchesType(a, at, known, byName) {
				continue
			}
			switch a.TeamID {
			case teamA.ID:
				pair.TeamA++
			case teamB.ID:
				pair.TeamB++
			}
		}
		result.SpecificActions[at.Name] = pair
	}

	return result
}

// matchesType resolves an action against a catalog entry by id when the recorded id still
// exists, falling back to the captured display name otherwise.
func matchesType(a models.GameAction, at models.ActionType, known map[string]bool, byName bool) bool {
	if a.ActionTypeID != nil && known[*a.ActionTypeID] {
		return *a.ActionTypeID == at.ID
	}
	return byName && a.ActionName != nil && *a.ActionName == at.Name
}

// percent rounds half away from zero, the way a UI rounding of n/total*100 does.
func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(n)/float64(total)*100 + 0.5))
}
