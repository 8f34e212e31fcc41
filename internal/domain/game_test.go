package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPin(t *testing.T, teamA, teamB, winner string) Pin {
	t.Helper()
	pin, err := NewPin(0.5, 0.5, teamA, teamB, winner, winner, false, false, false, 0)
	require.NoError(t, err)
	return pin
}

func TestGameEditability(t *testing.T) {
	aggregate := &Game{ID: CumulativeGameID("folder_x"), Kind: GameKindFolderAggregate}

	assert.ErrorIs(t, aggregate.AddPin(Pin{}), ErrGameReadOnly)
	assert.ErrorIs(t, aggregate.ClearPins(), ErrGameReadOnly)

	_, err := aggregate.RemoveLastPin()
	assert.ErrorIs(t, err, ErrGameReadOnly)

	_, err = aggregate.AddRosterEntry("a1", TeamSideA)
	assert.ErrorIs(t, err, ErrGameReadOnly)
}

func TestGameRemoveLastPin(t *testing.T) {
	game := &Game{ID: "g1", Kind: GameKindRegular}
	require.NoError(t, game.AddPin(mustPin(t, "a1", "b1", "a1")))

	removed, err := game.RemoveLastPin()
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, game.Pins)

	// Undo on an empty game is a no-op, not an error.
	removed, err = game.RemoveLastPin()
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestGameStripPlayer(t *testing.T) {
	game := &Game{ID: "g1", Kind: GameKindRegular}
	require.NoError(t, game.AddPin(mustPin(t, "a1", "b1", "a1")))
	require.NoError(t, game.AddPin(mustPin(t, "a2", "b1", "b1")))
	require.NoError(t, game.AddPin(mustPin(t, "a2", "b2", "a2")))

	assert.True(t, game.StripPlayer("a1"))
	assert.Len(t, game.Pins, 2)

	// Also strips pins where the player is only the opposing participant.
	assert.True(t, game.StripPlayer("b1"))
	assert.Len(t, game.Pins, 1)

	assert.False(t, game.StripPlayer("a1"))
}

func TestGameRosterEntries(t *testing.T) {
	game := &Game{ID: "g1", Kind: GameKindRegular}

	added, err := game.AddRosterEntry("a1", TeamSideA)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = game.AddRosterEntry("a1", TeamSideA)
	require.NoError(t, err)
	assert.False(t, added, "duplicate entries are ignored")

	_, err = game.AddRosterEntry("b1", TeamSideB)
	require.NoError(t, err)

	assert.Equal(t, []string{"a1"}, game.RosterPlayerIDs(TeamSideA))
	assert.Equal(t, []string{"b1"}, game.RosterPlayerIDs(TeamSideB))

	require.NoError(t, game.AddPin(mustPin(t, "a1", "b1", "a1")))

	changed, err := game.RemoveRosterEntry("a1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, game.RosterPlayerIDs(TeamSideA))
	assert.Empty(t, game.Pins, "removing a roster entry drops the player's pins")
}
