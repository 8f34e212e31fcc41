package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateGameRequest struct {
	TeamA    string `json:"teamA"`
	TeamB    string `json:"teamB"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
	FolderID string `json:"folderId"`
}

func (req *CreateGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TeamA, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.TeamB, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Date, validation.Required),
	)
}

type SetCurrentGameRequest struct {
	GameID string `json:"gameId"`
}

func (req *SetCurrentGameRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GameID, validation.Required),
	)
}

type MoveGameRequest struct {
	FolderID string `json:"folderId"`
}

type AddPinRequest struct {
	X                      float64 `json:"x"`
	Y                      float64 `json:"y"`
	TeamAPlayerID          string  `json:"teamAPlayerId"`
	TeamBPlayerID          string  `json:"teamBPlayerId"`
	FaceoffWinnerID        string  `json:"faceoffWinnerId"`
	ClampWinnerID          string  `json:"clampWinnerId"`
	IsWhistleViolation     bool    `json:"isWhistleViolation"`
	IsPostWhistleViolation bool    `json:"isPostWhistleViolation"`
	IsConvertedLoss        bool    `json:"isConvertedLoss"`
	Timestamp              int64   `json:"timestamp"`
}

// Coordinates are client render-space positions; clients scale them to
// whatever field diagram they draw, so no upper bound applies here.
func (req *AddPinRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.X, validation.Min(0.0)),
		validation.Field(&req.Y, validation.Min(0.0)),
		validation.Field(&req.TeamAPlayerID, validation.Required),
	)
}

type CreateFolderRequest struct {
	Name                 string `json:"name"`
	HasCumulativeTracker bool   `json:"hasCumulativeTracker"`
}

func (req *CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
}

type RenameFolderRequest struct {
	Name string `json:"name"`
}

func (req *RenameFolderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
}

type CreatePlayerRequest struct {
	Name     string `json:"name"`
	Number   string `json:"number"`
	Team     string `json:"team"`
	Position string `json:"position"`
}

func (req *CreatePlayerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Team, validation.Required, validation.Length(1, 100)),
	)
}

type AddRosterEntryRequest struct {
	PlayerID string `json:"playerId"`
	Side     string `json:"side"`
}

func (req *AddRosterEntryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.PlayerID, validation.Required),
		validation.Field(&req.Side, validation.Required, validation.In("A", "B")),
	)
}
