package domain

import (
	"math"
	"sort"
	"strconv"
)

// GameStats is the team-perspective win/loss summary of one game.
type GameStats struct {
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// ComputeGameStats tallies the game from the given side's own roster.
// A pin is a win when the face-off winner belongs to that roster, a loss
// when a winner is recorded, known, and belongs to someone else. Both
// teams are computed symmetrically; the legacy shortcut of flipping team
// A's numbers for team B miscounts unknown-participant pins.
func ComputeGameStats(game *Game, side TeamSide) GameStats {
	roster := make(map[string]bool)
	for _, id := range game.RosterPlayerIDs(side) {
		roster[id] = true
	}

	var stats GameStats
	for _, pin := range game.Pins {
		winner := pin.FaceoffWinnerID
		if winner == "" || winner == UnknownPlayerID {
			continue
		}
		if roster[winner] {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}

	stats.Total = stats.Wins + stats.Losses
	stats.Percentage = roundPercent(stats.Wins, stats.Total)
	return stats
}

// PlayerStatLine is one roster player's face-off and clamp tally for a
// game, with the converted-possession adjustment applied.
type PlayerStatLine struct {
	Player Player   `json:"player"`
	Side   TeamSide `json:"team"`

	FOWins          int `json:"foWins"`
	FOLosses        int `json:"foLosses"`
	ClampWins       int `json:"clampWins"`
	ClampLosses     int `json:"clampLosses"`
	ConvertedLosses int `json:"convertedLosses"`
	ConvertedWins   int `json:"convertedWins"`

	FOPercentage    float64 `json:"foPercentage"`
	AdjFOPercentage float64 `json:"adjFoPercentage"`
	ClampPercentage float64 `json:"clampPercentage"`
}

// AdjustedWins shifts the numerator for possessions that changed hands
// right after the draw. The denominator of the adjusted percentage stays
// the raw face-off total: the number of contested draws does not change.
func (s PlayerStatLine) AdjustedWins() int {
	return s.FOWins - s.ConvertedLosses + s.ConvertedWins
}

// PlayerLookup resolves a player ID against the player collection.
type PlayerLookup func(playerID string) (Player, bool)

// ComputePlayerStats scans the game's pins once and tallies every roster
// player. Attribution follows the pin's two participants: the face-off
// winner gains a win and the opposite participant a loss; pins whose
// winner is neither participant count for nobody. Clamp outcomes are only
// tallied on pins where a clamp actually happened. Results are grouped by
// side, then sorted by ascending numeric jersey; non-numeric numbers sort
// last.
func ComputePlayerStats(game *Game, lookup PlayerLookup) []PlayerStatLine {
	byID := make(map[string]*PlayerStatLine, len(game.Roster))
	for _, entry := range game.Roster {
		player, ok := lookup(entry.PlayerID)
		if !ok {
			continue
		}
		byID[entry.PlayerID] = &PlayerStatLine{Player: player, Side: entry.Side}
	}

	for _, pin := range game.Pins {
		tallyFaceoff(byID, pin)
		tallyConversion(byID, pin)
		tallyClamp(byID, pin)
	}

	lines := make([]PlayerStatLine, 0, len(byID))
	for _, line := range byID {
		foTotal := line.FOWins + line.FOLosses
		clampTotal := line.ClampWins + line.ClampLosses
		line.FOPercentage = roundPercent1(line.FOWins, foTotal)
		line.AdjFOPercentage = roundPercent1(line.AdjustedWins(), foTotal)
		line.ClampPercentage = roundPercent1(line.ClampWins, clampTotal)
		lines = append(lines, *line)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Side != lines[j].Side {
			return lines[i].Side < lines[j].Side
		}
		return jerseySortKey(lines[i].Player.Number) < jerseySortKey(lines[j].Player.Number)
	})

	return lines
}

func tallyFaceoff(byID map[string]*PlayerStatLine, pin Pin) {
	switch pin.FaceoffWinnerID {
	case pin.TeamAPlayerID:
		creditWin(byID, pin.TeamAPlayerID)
		creditLoss(byID, pin.TeamBPlayerID)
	case pin.TeamBPlayerID:
		creditWin(byID, pin.TeamBPlayerID)
		creditLoss(byID, pin.TeamAPlayerID)
	}
}

func tallyConversion(byID map[string]*PlayerStatLine, pin Pin) {
	if !pin.IsConvertedLoss || pin.FaceoffWinnerID == "" {
		return
	}
	if line, ok := byID[pin.FaceoffWinnerID]; ok {
		line.ConvertedLosses++
	}
	loserID := pin.TeamAPlayerID
	if pin.FaceoffWinnerID == pin.TeamAPlayerID {
		loserID = pin.TeamBPlayerID
	}
	if line, ok := byID[loserID]; ok {
		line.ConvertedWins++
	}
}

func tallyClamp(byID map[string]*PlayerStatLine, pin Pin) {
	if pin.IsWhistleViolation || pin.ClampWinnerID == "" {
		return
	}
	switch pin.ClampWinnerID {
	case pin.TeamAPlayerID:
		creditClampWin(byID, pin.TeamAPlayerID)
		creditClampLoss(byID, pin.TeamBPlayerID)
	case pin.TeamBPlayerID:
		creditClampWin(byID, pin.TeamBPlayerID)
		creditClampLoss(byID, pin.TeamAPlayerID)
	}
}

func creditWin(byID map[string]*PlayerStatLine, playerID string) {
	if line, ok := byID[playerID]; ok {
		line.FOWins++
	}
}

func creditLoss(byID map[string]*PlayerStatLine, playerID string) {
	if line, ok := byID[playerID]; ok {
		line.FOLosses++
	}
}

func creditClampWin(byID map[string]*PlayerStatLine, playerID string) {
	if line, ok := byID[playerID]; ok {
		line.ClampWins++
	}
}

func creditClampLoss(byID map[string]*PlayerStatLine, playerID string) {
	if line, ok := byID[playerID]; ok {
		line.ClampLosses++
	}
}

// TeamTotals sums a side's player lines with the same percentage rules.
type TeamTotals struct {
	Side TeamSide `json:"team"`

	FOWins          int `json:"foWins"`
	FOLosses        int `json:"foLosses"`
	ClampWins       int `json:"clampWins"`
	ClampLosses     int `json:"clampLosses"`
	ConvertedLosses int `json:"convertedLosses"`
	ConvertedWins   int `json:"convertedWins"`

	FOPercentage    float64 `json:"foPercentage"`
	AdjFOPercentage float64 `json:"adjFoPercentage"`
	ClampPercentage float64 `json:"clampPercentage"`
}

func ComputeTeamTotals(lines []PlayerStatLine, side TeamSide) TeamTotals {
	totals := TeamTotals{Side: side}
	for _, line := range lines {
		if line.Side != side {
			continue
		}
		totals.FOWins += line.FOWins
		totals.FOLosses += line.FOLosses
		totals.ClampWins += line.ClampWins
		totals.ClampLosses += line.ClampLosses
		totals.ConvertedLosses += line.ConvertedLosses
		totals.ConvertedWins += line.ConvertedWins
	}

	foTotal := totals.FOWins + totals.FOLosses
	clampTotal := totals.ClampWins + totals.ClampLosses
	adjWins := totals.FOWins - totals.ConvertedLosses + totals.ConvertedWins
	totals.FOPercentage = roundPercent1(totals.FOWins, foTotal)
	totals.AdjFOPercentage = roundPercent1(adjWins, foTotal)
	totals.ClampPercentage = roundPercent1(totals.ClampWins, clampTotal)
	return totals
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func roundPercent1(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// SortPlayersByJersey orders players by jersey number for display.
func SortPlayersByJersey(players []Player) {
	sort.Slice(players, func(i, j int) bool {
		return jerseySortKey(players[i].Number) < jerseySortKey(players[j].Number)
	})
}

// jerseySortKey parses a jersey number for display ordering. Missing or
// non-numeric numbers sort after every real number.
func jerseySortKey(number string) int {
	n, err := strconv.Atoi(number)
	if err != nil || n < 0 {
		return 999
	}
	return n
}
