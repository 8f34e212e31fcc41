package dao

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterEntryDataUnmarshal(t *testing.T) {
	t.Run("modern object", func(t *testing.T) {
		var entry RosterEntryData
		require.NoError(t, json.Unmarshal([]byte(`{"playerId":"p1","team":"B"}`), &entry))
		assert.Equal(t, RosterEntryData{PlayerID: "p1", Team: "B"}, entry)
	})

	t.Run("legacy bare ID string", func(t *testing.T) {
		var entry RosterEntryData
		require.NoError(t, json.Unmarshal([]byte(`"p1"`), &entry))
		assert.Equal(t, RosterEntryData{PlayerID: "p1", Team: "A"}, entry)
	})

	t.Run("mixed roster array", func(t *testing.T) {
		var roster []RosterEntryData
		require.NoError(t, json.Unmarshal([]byte(`["p1",{"playerId":"p2","team":"B"}]`), &roster))
		require.Len(t, roster, 2)
		assert.Equal(t, "A", roster[0].Team)
		assert.Equal(t, "B", roster[1].Team)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var entry RosterEntryData
		assert.Error(t, json.Unmarshal([]byte(`42`), &entry))
	})
}

func TestPinDataKeepsLegacyFieldsOnRead(t *testing.T) {
	raw := []byte(`{"x":10,"y":20,"player1Id":"p1","player2Id":"p2","faceoffResult":"loss"}`)

	var pin PinData
	require.NoError(t, json.Unmarshal(raw, &pin))
	assert.Equal(t, "p1", pin.Player1ID)
	assert.Equal(t, "p2", pin.Player2ID)
	assert.Equal(t, "loss", pin.FaceoffResult)

	// Written documents omit the untouched legacy fields entirely.
	out, err := json.Marshal(PinData{X: 10, Y: 20, TeamAPlayerID: "p1", FaceoffWinnerID: "p1", ClampWinnerID: "p1"})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "player1Id")
	assert.NotContains(t, string(out), "faceoffResult")
	assert.NotContains(t, string(out), "type")
}
