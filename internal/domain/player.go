package domain

import "time"

// UnknownPlayerID is the sentinel used when the opposing face-off
// participant was never identified.
const UnknownPlayerID = "unknown"

type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	Team      string    `json:"team"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// IsFaceOffSpecialist reports whether the player's position marks a
// face-off specialist. Both spellings occur in imported rosters.
func (p Player) IsFaceOffSpecialist() bool {
	return p.Position == "FOGO" || p.Position == "FO"
}
