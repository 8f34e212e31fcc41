package dao

import (
	"encoding/json"
	"time"
)

// Document payloads are stored as JSON so the same DAO runs on postgres
// (cloud store) and sqlite (local store). The payload structs accept
// every historical field spelling; normalization to the canonical shape
// happens once at load time in the repository layer.

// PinData carries both the canonical pin fields and the legacy role
// fields (player1Id/player2Id/playerId, faceoffResult/type) written by
// old clients. Legacy fields are read, never written back.
type PinData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	TeamAPlayerID          string `json:"teamAPlayerId,omitempty"`
	TeamBPlayerID          string `json:"teamBPlayerId,omitempty"`
	FaceoffWinnerID        string `json:"faceoffWinnerId,omitempty"`
	ClampWinnerID          string `json:"clampWinnerId,omitempty"`
	IsWhistleViolation     bool   `json:"isWhistleViolation,omitempty"`
	IsPostWhistleViolation bool   `json:"isPostWhistleViolation,omitempty"`
	IsConvertedLoss        bool   `json:"isConvertedLoss,omitempty"`
	Timestamp              int64  `json:"timestamp,omitempty"`

	Player1ID     string `json:"player1Id,omitempty"`
	Player2ID     string `json:"player2Id,omitempty"`
	PlayerID      string `json:"playerId,omitempty"`
	FaceoffResult string `json:"faceoffResult,omitempty"`
	LegacyType    string `json:"type,omitempty"`
}

// RosterEntryData decodes either the modern {playerId, team} object or
// the legacy bare player-ID string.
type RosterEntryData struct {
	PlayerID string `json:"playerId"`
	Team     string `json:"team"`
}

func (r *RosterEntryData) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		// Legacy entries were bare IDs, all on team A.
		r.PlayerID = id
		r.Team = "A"
		return nil
	}

	type plain RosterEntryData
	var entry plain
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}
	*r = RosterEntryData(entry)
	return nil
}

type GameData struct {
	ID    string `json:"id"`
	TeamA string `json:"teamA,omitempty"`
	TeamB string `json:"teamB,omitempty"`
	// Opponent is the pre-teamA/teamB name of the away team.
	Opponent string `json:"opponent,omitempty"`
	Date     string `json:"date,omitempty"`
	Notes    string `json:"notes,omitempty"`

	Pins   []PinData         `json:"pins"`
	Roster []RosterEntryData `json:"roster,omitempty"`

	FolderID           string `json:"folderId,omitempty"`
	IsCumulativeFolder bool   `json:"isCumulativeFolder,omitempty"`
	IsSeasonTotal      bool   `json:"isSeasonTotal,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type PlayerData struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number,omitempty"`
	Team      string    `json:"team,omitempty"`
	Position  string    `json:"position,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type FolderData struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	HasCumulativeTracker bool      `json:"hasCumulativeTracker,omitempty"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
	UpdatedAt            time.Time `json:"updatedAt,omitempty"`
}

type GameDocument struct {
	UserID uint   `gorm:"primaryKey;autoIncrement:false"`
	DocID  string `gorm:"primaryKey"`

	Data GameData `gorm:"serializer:json"`

	UpdatedAt time.Time `gorm:"not null"`
}

type PlayerDocument struct {
	UserID uint   `gorm:"primaryKey;autoIncrement:false"`
	DocID  string `gorm:"primaryKey"`

	Data PlayerData `gorm:"serializer:json"`

	UpdatedAt time.Time `gorm:"not null"`
}

type FolderDocument struct {
	UserID uint   `gorm:"primaryKey;autoIncrement:false"`
	DocID  string `gorm:"primaryKey"`

	Data FolderData `gorm:"serializer:json"`

	UpdatedAt time.Time `gorm:"not null"`
}

// Settings is the per-user scalar row holding the current game pointer
// and the one-time local-to-cloud migration flag.
type Settings struct {
	UserID uint `gorm:"primaryKey;autoIncrement:false"`

	CurrentGameID string
	Migrated      bool

	UpdatedAt time.Time `gorm:"not null"`
}
