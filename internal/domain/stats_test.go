package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLookup(players ...Player) PlayerLookup {
	byID := make(map[string]Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return func(id string) (Player, bool) {
		p, ok := byID[id]
		return p, ok
	}
}

func statGame(t *testing.T, pins ...Pin) *Game {
	t.Helper()
	game := &Game{ID: "g1", Kind: GameKindRegular}
	game.Roster = []RosterEntry{
		{PlayerID: "a1", Side: TeamSideA},
		{PlayerID: "b1", Side: TeamSideB},
	}
	for _, pin := range pins {
		require.NoError(t, game.AddPin(pin))
	}
	return game
}

func TestComputeGameStats(t *testing.T) {
	game := statGame(t,
		mustPin(t, "a1", "b1", "a1"),
		mustPin(t, "a1", "b1", "a1"),
		mustPin(t, "a1", "b1", "b1"),
	)

	statsA := ComputeGameStats(game, TeamSideA)
	assert.Equal(t, GameStats{Wins: 2, Losses: 1, Total: 3, Percentage: 67}, statsA)

	statsB := ComputeGameStats(game, TeamSideB)
	assert.Equal(t, GameStats{Wins: 1, Losses: 2, Total: 3, Percentage: 33}, statsB)
}

func TestComputeGameStatsSkipsUnknownWinner(t *testing.T) {
	// A pin against an unidentified opponent that the opponent won has no
	// known winner and counts for neither side.
	pin, err := NewPin(0.5, 0.5, "a1", "", UnknownPlayerID, "a1", false, false, false, 0)
	require.NoError(t, err)

	game := statGame(t, pin, mustPin(t, "a1", "b1", "a1"))

	statsA := ComputeGameStats(game, TeamSideA)
	assert.Equal(t, 1, statsA.Total, "unknown-winner pin is excluded")

	statsB := ComputeGameStats(game, TeamSideB)
	assert.Equal(t, 1, statsB.Total)
	assert.Equal(t, 1, statsB.Losses)
}

func TestComputePlayerStatsAdjustedPercentage(t *testing.T) {
	// 5 wins, 2 losses, one win converted away: raw 5/7 = 71.4%, adjusted
	// (5-1)/7 = 57.1%. The denominator stays the raw total.
	var pins []Pin
	for i := 0; i < 4; i++ {
		pins = append(pins, mustPin(t, "a1", "b1", "a1"))
	}
	converted, err := NewPin(0.5, 0.5, "a1", "b1", "a1", "a1", false, false, true, 0)
	require.NoError(t, err)
	pins = append(pins, converted)
	for i := 0; i < 2; i++ {
		pins = append(pins, mustPin(t, "a1", "b1", "b1"))
	}

	game := statGame(t, pins...)
	lines := ComputePlayerStats(game, testLookup(
		Player{ID: "a1", Number: "10"},
		Player{ID: "b1", Number: "22"},
	))
	require.Len(t, lines, 2)

	a1 := lines[0]
	require.Equal(t, "a1", a1.Player.ID)
	assert.Equal(t, 5, a1.FOWins)
	assert.Equal(t, 2, a1.FOLosses)
	assert.Equal(t, 1, a1.ConvertedLosses)
	assert.InDelta(t, 71.4, a1.FOPercentage, 0.001)
	assert.InDelta(t, 57.1, a1.AdjFOPercentage, 0.001)

	// The opponent gains the converted possession.
	b1 := lines[1]
	require.Equal(t, "b1", b1.Player.ID)
	assert.Equal(t, 1, b1.ConvertedWins)
	assert.InDelta(t, 28.6, b1.FOPercentage, 0.001)
	assert.InDelta(t, 42.9, b1.AdjFOPercentage, 0.001)
}

func TestComputePlayerStatsClampSkipsViolations(t *testing.T) {
	whistle, err := NewPin(0.5, 0.5, "a1", "b1", "b1", "", true, false, false, 0)
	require.NoError(t, err)

	game := statGame(t,
		mustPin(t, "a1", "b1", "a1"),
		whistle,
	)
	lines := ComputePlayerStats(game, testLookup(
		Player{ID: "a1", Number: "10"},
		Player{ID: "b1", Number: "22"},
	))
	require.Len(t, lines, 2)

	assert.Equal(t, 1, lines[0].ClampWins, "only the contested pin has a clamp outcome")
	assert.Equal(t, 1, lines[1].ClampLosses)
	assert.InDelta(t, 100.0, lines[0].ClampPercentage, 0.001)
}

func TestComputePlayerStatsOrdering(t *testing.T) {
	game := &Game{
		ID:   "g1",
		Kind: GameKindRegular,
		Roster: []RosterEntry{
			{PlayerID: "b1", Side: TeamSideB},
			{PlayerID: "a3", Side: TeamSideA},
			{PlayerID: "a2", Side: TeamSideA},
			{PlayerID: "a1", Side: TeamSideA},
		},
	}
	lines := ComputePlayerStats(game, testLookup(
		Player{ID: "a1", Number: "7"},
		Player{ID: "a2", Number: "23"},
		Player{ID: "a3", Number: "TBD"},
		Player{ID: "b1", Number: "4"},
	))
	require.Len(t, lines, 4)

	// Side A first, ascending jersey, non-numeric last.
	assert.Equal(t, "a1", lines[0].Player.ID)
	assert.Equal(t, "a2", lines[1].Player.ID)
	assert.Equal(t, "a3", lines[2].Player.ID)
	assert.Equal(t, "b1", lines[3].Player.ID)
}

func TestComputeTeamTotals(t *testing.T) {
	game := &Game{
		ID:   "g1",
		Kind: GameKindRegular,
		Roster: []RosterEntry{
			{PlayerID: "a1", Side: TeamSideA},
			{PlayerID: "a2", Side: TeamSideA},
			{PlayerID: "b1", Side: TeamSideB},
		},
	}
	require.NoError(t, game.AddPin(mustPin(t, "a1", "b1", "a1")))
	require.NoError(t, game.AddPin(mustPin(t, "a2", "b1", "b1")))

	lines := ComputePlayerStats(game, testLookup(
		Player{ID: "a1", Number: "1"},
		Player{ID: "a2", Number: "2"},
		Player{ID: "b1", Number: "3"},
	))

	totalsA := ComputeTeamTotals(lines, TeamSideA)
	assert.Equal(t, 1, totalsA.FOWins)
	assert.Equal(t, 1, totalsA.FOLosses)
	assert.InDelta(t, 50.0, totalsA.FOPercentage, 0.001)

	totalsB := ComputeTeamTotals(lines, TeamSideB)
	assert.Equal(t, 1, totalsB.FOWins)
	assert.Equal(t, 1, totalsB.FOLosses)
}
