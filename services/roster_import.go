package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/match-tagger/models"
	"github.com/google/uuid"
)

// DefaultPosition is assigned when a roster line or form carries no position.
const DefaultPosition = "Field"

type ImportResult struct {
	Players          []models.Player `json:"players"`
	DuplicateNumbers []int           `json:"duplicate_numbers,omitempty"`
}

// ParsePlayerList reads one player per non-blank line.
//
//	"10 Pele"                  -> #10 Pele, Field
//	"7 Ana Silva Winger"       -> #7 "Ana Silva", Winger
//	"10 Center Forward"        -> #10 "Center", Forward
//
// Lines with fewer than three tokens use the rest of the line as the name; longer lines
// take the last token as position. A number that is missing or zero falls back to the
// 1-based line index.
func ParsePlayerList(text string) ImportResult {
	var result ImportResult
	seen := make(map[int]bool)
	reported := make(map[int]bool)

	index := 0
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		index++

		number := leadingInt(parts[0])
		if number == 0 {
			number = index
		}

		var name, position string
		if len(parts) < 3 {
			name = strings.Join(parts[1:], " ")
			position = DefaultPosition
		} else {
			name = strings.Join(parts[1:len(parts)-1], " ")
			position = parts[len(parts)-1]
		}
		if name == "" {
			name = fmt.Sprintf("Player %d", number)
		}

		if seen[number] && !reported[number] {
			result.DuplicateNumbers = append(result.DuplicateNumbers, number)
			reported[number] = true
		}
		seen[number] = true

		result.Players = append(result.Players, models.Player{
			ID:       uuid.New().String(),
			Number:   number,
			Name:     name,
			Position: position,
		})
	}
	return result
}

// leadingInt parses the optional sign and digits at the start of s ("12a" -> 12) and
// returns 0 when there are none.
func leadingInt(s string) int {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
