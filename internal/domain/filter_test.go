package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterGame(t *testing.T) *Game {
	t.Helper()
	game := &Game{ID: "g1", Kind: GameKindRegular}
	require.NoError(t, game.AddPin(mustPin(t, "a1", "b1", "a1")))
	require.NoError(t, game.AddPin(mustPin(t, "a2", "b1", "b1")))
	require.NoError(t, game.AddPin(mustPin(t, "a1", "b2", "a1")))

	whistle, err := NewPin(0.5, 0.5, "a1", "b1", "b1", "", true, false, false, 0)
	require.NoError(t, err)
	require.NoError(t, game.AddPin(whistle))
	return game
}

func TestVisiblePinsEmptyFilterShowsAll(t *testing.T) {
	game := filterGame(t)

	visible := VisiblePins(game, NewPinFilter(nil, nil))
	assert.Len(t, visible, len(game.Pins))
}

func TestVisiblePinsBySide(t *testing.T) {
	game := filterGame(t)

	onlyA1 := VisiblePins(game, NewPinFilter([]string{"a1"}, nil))
	assert.Len(t, onlyA1, 3)

	// Both sides selected: conjunction.
	both := VisiblePins(game, NewPinFilter([]string{"a1"}, []string{"b2"}))
	assert.Len(t, both, 1)

	none := VisiblePins(game, NewPinFilter([]string{"a2"}, []string{"b2"}))
	assert.Empty(t, none)
}

func TestVisiblePinsComplementPartition(t *testing.T) {
	// Single-side selections of a player and of everyone else split the
	// pin set exactly in two.
	game := filterGame(t)

	selected := VisiblePins(game, NewPinFilter([]string{"a1"}, nil))
	complement := VisiblePins(game, NewPinFilter([]string{"a2"}, nil))
	assert.Equal(t, len(game.Pins), len(selected)+len(complement))
}

func TestHeatmapPinsDropWhistleViolations(t *testing.T) {
	game := filterGame(t)

	heatmap := HeatmapPins(game, NewPinFilter(nil, nil))
	assert.Len(t, heatmap, 3)
	for _, pin := range heatmap {
		assert.False(t, pin.IsWhistleViolation)
	}
}

func TestHeatmapPinsKeepPostWhistleViolations(t *testing.T) {
	game := &Game{ID: "g1", Kind: GameKindRegular}
	postWhistle, err := NewPin(0.3, 0.3, "a1", "b1", "b1", "a1", false, true, false, 0)
	require.NoError(t, err)
	require.NoError(t, game.AddPin(postWhistle))

	heatmap := HeatmapPins(game, NewPinFilter(nil, nil))
	assert.Len(t, heatmap, 1)
}

func TestFilterEligiblePlayers(t *testing.T) {
	game := filterGame(t)
	unknownOpponent, err := NewPin(0.5, 0.5, "a3", "", "a3", "a3", false, false, false, 0)
	require.NoError(t, err)
	require.NoError(t, game.AddPin(unknownOpponent))

	lookup := testLookup(
		Player{ID: "a1", Number: "24"},
		Player{ID: "a2", Number: "3"},
		Player{ID: "a3", Number: "12"},
		Player{ID: "b1", Number: "1"},
		Player{ID: "b2", Number: "2"},
		Player{ID: "c1", Number: "99"},
	)

	sideA := FilterEligiblePlayers(game, TeamSideA, lookup)
	require.Len(t, sideA, 3)
	// Sorted by jersey, participation-based: c1 never took a draw.
	assert.Equal(t, "a2", sideA[0].ID)
	assert.Equal(t, "a3", sideA[1].ID)
	assert.Equal(t, "a1", sideA[2].ID)

	sideB := FilterEligiblePlayers(game, TeamSideB, lookup)
	require.Len(t, sideB, 2, "the unknown opponent is not selectable")
	assert.Equal(t, "b1", sideB[0].ID)
	assert.Equal(t, "b2", sideB[1].ID)
}
