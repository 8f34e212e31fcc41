package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddPinRequestValidate(t *testing.T) {
	t.Run("accepts render-space pixel coordinates", func(t *testing.T) {
		req := AddPinRequest{
			X:               412.5,
			Y:               287.0,
			TeamAPlayerID:   "p1",
			FaceoffWinnerID: "p1",
			ClampWinnerID:   "p1",
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("accepts the origin", func(t *testing.T) {
		req := AddPinRequest{TeamAPlayerID: "p1"}
		assert.NoError(t, req.Validate())
	})

	t.Run("rejects negative coordinates", func(t *testing.T) {
		req := AddPinRequest{X: -1, Y: 10, TeamAPlayerID: "p1"}
		assert.Error(t, req.Validate())
	})

	t.Run("requires the tracked player", func(t *testing.T) {
		req := AddPinRequest{X: 10, Y: 10}
		assert.Error(t, req.Validate())
	})
}
