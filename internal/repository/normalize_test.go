package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotracker/fotracker/internal/domain"
	"github.com/fotracker/fotracker/internal/repository/dao"
)

func TestNormalizeGameKinds(t *testing.T) {
	t.Run("regular by default", func(t *testing.T) {
		game := normalizeGame("g1", dao.GameData{TeamA: "Tigers"})
		assert.Equal(t, domain.GameKindRegular, game.Kind)
	})

	t.Run("cumulative flag", func(t *testing.T) {
		game := normalizeGame("cumulative_folder_x", dao.GameData{IsCumulativeFolder: true})
		assert.Equal(t, domain.GameKindFolderAggregate, game.Kind)
	})

	t.Run("season total flag", func(t *testing.T) {
		game := normalizeGame("g2", dao.GameData{IsSeasonTotal: true})
		assert.Equal(t, domain.GameKindSeasonTotal, game.Kind)
	})

	t.Run("season total by reserved doc ID", func(t *testing.T) {
		// Old documents carried no kind flags at all.
		game := normalizeGame(domain.SeasonTotalID, dao.GameData{})
		assert.Equal(t, domain.GameKindSeasonTotal, game.Kind)
	})
}

func TestNormalizeGameOpponentNaming(t *testing.T) {
	game := normalizeGame("g1", dao.GameData{Opponent: "Owls"})
	assert.Equal(t, "Home Team", game.TeamA)
	assert.Equal(t, "Owls", game.TeamB)

	// Canonical names win over a leftover opponent field.
	game = normalizeGame("g2", dao.GameData{TeamA: "Tigers", TeamB: "Bears", Opponent: "Owls"})
	assert.Equal(t, "Tigers", game.TeamA)
	assert.Equal(t, "Bears", game.TeamB)
}

func TestNormalizeGameRosterSides(t *testing.T) {
	game := normalizeGame("g1", dao.GameData{Roster: []dao.RosterEntryData{
		{PlayerID: "p1", Team: "A"},
		{PlayerID: "p2", Team: "B"},
		{PlayerID: "p3"}, // legacy bare-ID entry decoded without a side
	}})

	require.Len(t, game.Roster, 3)
	assert.Equal(t, domain.TeamSideA, game.Roster[0].Side)
	assert.Equal(t, domain.TeamSideB, game.Roster[1].Side)
	assert.Equal(t, domain.TeamSideA, game.Roster[2].Side)
}

func TestNormalizePinLegacyRoleFields(t *testing.T) {
	t.Run("player1Id and player2Id", func(t *testing.T) {
		pin := normalizePin(dao.PinData{Player1ID: "p1", Player2ID: "p2", FaceoffWinnerID: "p1", ClampWinnerID: "p1"})
		assert.Equal(t, "p1", pin.TeamAPlayerID)
		assert.Equal(t, "p2", pin.TeamBPlayerID)
	})

	t.Run("oldest playerId spelling", func(t *testing.T) {
		pin := normalizePin(dao.PinData{PlayerID: "p1", FaceoffWinnerID: "p1", ClampWinnerID: "p1"})
		assert.Equal(t, "p1", pin.TeamAPlayerID)
		assert.Equal(t, domain.UnknownPlayerID, pin.TeamBPlayerID)
	})

	t.Run("canonical fields untouched", func(t *testing.T) {
		pin := normalizePin(dao.PinData{TeamAPlayerID: "a", TeamBPlayerID: "b", Player1ID: "old", FaceoffWinnerID: "a", ClampWinnerID: "a"})
		assert.Equal(t, "a", pin.TeamAPlayerID)
		assert.Equal(t, "b", pin.TeamBPlayerID)
	})
}

func TestNormalizePinLegacyResults(t *testing.T) {
	t.Run("loss credits the opponent", func(t *testing.T) {
		pin := normalizePin(dao.PinData{Player1ID: "p1", Player2ID: "p2", FaceoffResult: "loss", ClampWinnerID: "p1"})
		assert.Equal(t, "p2", pin.FaceoffWinnerID)
	})

	t.Run("win credits the tracked player", func(t *testing.T) {
		pin := normalizePin(dao.PinData{Player1ID: "p1", Player2ID: "p2", FaceoffResult: "win", ClampWinnerID: "p1"})
		assert.Equal(t, "p1", pin.FaceoffWinnerID)
	})

	t.Run("type is the older result spelling", func(t *testing.T) {
		pin := normalizePin(dao.PinData{PlayerID: "p1", LegacyType: "loss", ClampWinnerID: "p1"})
		assert.Equal(t, domain.UnknownPlayerID, pin.FaceoffWinnerID)
	})

	t.Run("winner ID wins over a leftover result", func(t *testing.T) {
		pin := normalizePin(dao.PinData{TeamAPlayerID: "a", TeamBPlayerID: "b", FaceoffWinnerID: "b", FaceoffResult: "win", ClampWinnerID: "b"})
		assert.Equal(t, "b", pin.FaceoffWinnerID)
	})
}

func TestNormalizePinReassertsWhistleInvariants(t *testing.T) {
	// Pre-validation documents could carry a clamp winner or conversion
	// flags on a whistle violation.
	pin := normalizePin(dao.PinData{
		TeamAPlayerID:          "a",
		TeamBPlayerID:          "b",
		FaceoffWinnerID:        "b",
		ClampWinnerID:          "a",
		IsWhistleViolation:     true,
		IsPostWhistleViolation: true,
		IsConvertedLoss:        true,
	})

	assert.Empty(t, pin.ClampWinnerID)
	assert.False(t, pin.IsPostWhistleViolation)
	assert.False(t, pin.IsConvertedLoss)
	assert.True(t, pin.IsWhistleViolation)
}

func TestGameToDataWritesCanonicalFieldsOnly(t *testing.T) {
	loaded := normalizeGame("g1", dao.GameData{
		Opponent: "Owls",
		Pins: []dao.PinData{
			{Player1ID: "p1", Player2ID: "p2", FaceoffResult: "loss", ClampWinnerID: "p2"},
		},
		Roster: []dao.RosterEntryData{{PlayerID: "p1"}},
	})

	data := gameToData(loaded)

	assert.Equal(t, "Home Team", data.TeamA)
	assert.Equal(t, "Owls", data.TeamB)
	assert.Empty(t, data.Opponent)

	require.Len(t, data.Pins, 1)
	written := data.Pins[0]
	assert.Equal(t, "p1", written.TeamAPlayerID)
	assert.Equal(t, "p2", written.TeamBPlayerID)
	assert.Equal(t, "p2", written.FaceoffWinnerID)
	assert.Empty(t, written.Player1ID)
	assert.Empty(t, written.Player2ID)
	assert.Empty(t, written.PlayerID)
	assert.Empty(t, written.FaceoffResult)
	assert.Empty(t, written.LegacyType)

	require.Len(t, data.Roster, 1)
	assert.Equal(t, "A", data.Roster[0].Team)
}

func TestGameRoundTrip(t *testing.T) {
	created := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	game := &domain.Game{
		ID:        "g1",
		Kind:      domain.GameKindFolderAggregate,
		TeamA:     "Total",
		TeamB:     "Tracker",
		Date:      "2026-04-02",
		Notes:     "Aggregated pins from: Spring",
		FolderID:  "folder_x",
		CreatedAt: created,
		Pins: []domain.Pin{
			{X: 0.25, Y: 0.75, TeamAPlayerID: "p1", TeamBPlayerID: "p2", FaceoffWinnerID: "p1", ClampWinnerID: "p1", Timestamp: 1700000000000},
		},
		Roster: []domain.RosterEntry{{PlayerID: "p1", Side: domain.TeamSideA}},
	}

	assert.Equal(t, game, normalizeGame("g1", gameToData(game)))
}
