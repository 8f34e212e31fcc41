package response

import (
	"github.com/fotracker/fotracker/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// SessionResponse is the full snapshot a client needs to render the
// tracker: every game, player, and folder plus the current-game pointer.
type SessionResponse struct {
	Games          []domain.Game   `json:"games"`
	Players        []domain.Player `json:"players"`
	Folders        []domain.Folder `json:"folders"`
	Teams          []string        `json:"teams"`
	CurrentGameID  string          `json:"currentGameId"`
	UnsavedChanges bool            `json:"unsavedChanges"`
}

type GameStatsResponse struct {
	TeamA domain.GameStats `json:"teamA"`
	TeamB domain.GameStats `json:"teamB"`
}

type PlayerStatsResponse struct {
	Players     []domain.PlayerStatLine `json:"players"`
	TotalsTeamA domain.TeamTotals       `json:"totalsTeamA"`
	TotalsTeamB domain.TeamTotals       `json:"totalsTeamB"`
}

type PinsResponse struct {
	Pins []domain.Pin `json:"pins"`
}

type RosterImportResponse struct {
	Added []domain.Player `json:"added"`
}

type SaveResponse struct {
	Saved bool `json:"saved"`
}

type MigrateResponse struct {
	Migrated bool `json:"migrated"`
}
