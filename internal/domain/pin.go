package domain

import "errors"

var (
	ErrWhistleViolationConflict = errors.New("whistle violation and post-whistle violation are mutually exclusive")
	ErrClampOnWhistleViolation  = errors.New("clamp winner must be empty on a whistle violation")
	ErrMissingClampWinner       = errors.New("clamp winner required unless the pin is a whistle violation")
	ErrConvertedLossOnViolation = errors.New("converted loss cannot be recorded on a whistle violation")
)

// Pin records a single face-off event at a field position. Pins are
// immutable once created; the only removals are undo-last and clear-all.
type Pin struct {
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	TeamAPlayerID string  `json:"teamAPlayerId"`
	TeamBPlayerID string  `json:"teamBPlayerId"`

	FaceoffWinnerID string `json:"faceoffWinnerId"`
	// ClampWinnerID is empty exactly when the pin is a whistle violation,
	// since no clamp battle occurred.
	ClampWinnerID string `json:"clampWinnerId,omitempty"`

	IsWhistleViolation     bool `json:"isWhistleViolation"`
	IsPostWhistleViolation bool `json:"isPostWhistleViolation"`
	IsConvertedLoss        bool `json:"isConvertedLoss"`

	Timestamp int64 `json:"timestamp"`
}

// NewPin validates the face-off flags against each other and returns the
// canonical pin. Violations are rejected here so no inconsistent pin can
// ever enter a game or a folder aggregate.
func NewPin(x, y float64, teamAPlayerID, teamBPlayerID, faceoffWinnerID, clampWinnerID string,
	whistleViolation, postWhistleViolation, convertedLoss bool, timestamp int64) (Pin, error) {
	if whistleViolation && postWhistleViolation {
		return Pin{}, ErrWhistleViolationConflict
	}
	if whistleViolation && clampWinnerID != "" {
		return Pin{}, ErrClampOnWhistleViolation
	}
	if !whistleViolation && clampWinnerID == "" {
		return Pin{}, ErrMissingClampWinner
	}
	if whistleViolation && convertedLoss {
		return Pin{}, ErrConvertedLossOnViolation
	}

	if teamBPlayerID == "" {
		teamBPlayerID = UnknownPlayerID
	}

	return Pin{
		X:                      x,
		Y:                      y,
		TeamAPlayerID:          teamAPlayerID,
		TeamBPlayerID:          teamBPlayerID,
		FaceoffWinnerID:        faceoffWinnerID,
		ClampWinnerID:          clampWinnerID,
		IsWhistleViolation:     whistleViolation,
		IsPostWhistleViolation: postWhistleViolation,
		IsConvertedLoss:        convertedLoss,
		Timestamp:              timestamp,
	}, nil
}

// References reports whether the pin credits the player in any role.
func (p Pin) References(playerID string) bool {
	return p.TeamAPlayerID == playerID ||
		p.TeamBPlayerID == playerID ||
		p.FaceoffWinnerID == playerID ||
		p.ClampWinnerID == playerID
}
