package domain

import (
	"errors"
	"time"
)

const (
	// SeasonTotalID is the reserved ID of the deprecated season-total
	// rollup. It is still honored when loading old data but never created.
	SeasonTotalID = "season_total"

	FolderIDPrefix     = "folder_"
	CumulativeIDPrefix = "cumulative_"
)

var (
	ErrGameReadOnly = errors.New("game is a derived rollup and cannot be edited")
)

type GameKind int

const (
	GameKindRegular GameKind = iota
	// GameKindFolderAggregate marks the synthetic read-only game holding a
	// folder's cumulative pins. Its pin sequence is always recomputed from
	// the folder's member games, never hand-edited.
	GameKindFolderAggregate
	// GameKindSeasonTotal is the deprecated all-games rollup, kept only so
	// old stored data loads cleanly.
	GameKindSeasonTotal
)

type TeamSide string

const (
	TeamSideA TeamSide = "A"
	TeamSideB TeamSide = "B"
)

type RosterEntry struct {
	PlayerID string   `json:"playerId"`
	Side     TeamSide `json:"team"`
}

type Game struct {
	ID       string        `json:"id"`
	Kind     GameKind      `json:"kind"`
	TeamA    string        `json:"teamA"`
	TeamB    string        `json:"teamB"`
	Date     string        `json:"date"`
	Notes    string        `json:"notes"`
	Pins     []Pin         `json:"pins"`
	Roster   []RosterEntry `json:"roster"`
	FolderID string        `json:"folderId,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// IsEditable reports whether pins and roster entries may be mutated.
// Only regular games are editable; rollups are derived state.
func (g *Game) IsEditable() bool {
	return g.Kind == GameKindRegular
}

// AddPin appends a pin in insertion order.
func (g *Game) AddPin(pin Pin) error {
	if !g.IsEditable() {
		return ErrGameReadOnly
	}
	g.Pins = append(g.Pins, pin)
	return nil
}

// RemoveLastPin removes the most recently added pin. It reports whether a
// pin was removed.
func (g *Game) RemoveLastPin() (bool, error) {
	if !g.IsEditable() {
		return false, ErrGameReadOnly
	}
	if len(g.Pins) == 0 {
		return false, nil
	}
	g.Pins = g.Pins[:len(g.Pins)-1]
	return true, nil
}

func (g *Game) ClearPins() error {
	if !g.IsEditable() {
		return ErrGameReadOnly
	}
	g.Pins = nil
	return nil
}

// StripPlayer removes every pin referencing the player in any role.
// It reports whether the pin sequence changed.
func (g *Game) StripPlayer(playerID string) bool {
	kept := g.Pins[:0]
	for _, pin := range g.Pins {
		if !pin.References(playerID) {
			kept = append(kept, pin)
		}
	}
	changed := len(kept) != len(g.Pins)
	g.Pins = kept
	return changed
}

// HasRosterEntry reports whether the player is already on the roster.
func (g *Game) HasRosterEntry(playerID string) bool {
	for _, entry := range g.Roster {
		if entry.PlayerID == playerID {
			return true
		}
	}
	return false
}

// AddRosterEntry adds the player to the given side, deduplicating by
// player ID. It reports whether an entry was added.
func (g *Game) AddRosterEntry(playerID string, side TeamSide) (bool, error) {
	if !g.IsEditable() {
		return false, ErrGameReadOnly
	}
	if g.HasRosterEntry(playerID) {
		return false, nil
	}
	g.Roster = append(g.Roster, RosterEntry{PlayerID: playerID, Side: side})
	return true, nil
}

// RemoveRosterEntry drops the player from the roster and strips their
// pins from the game. It reports whether anything changed.
func (g *Game) RemoveRosterEntry(playerID string) (bool, error) {
	if !g.IsEditable() {
		return false, ErrGameReadOnly
	}

	kept := g.Roster[:0]
	for _, entry := range g.Roster {
		if entry.PlayerID != playerID {
			kept = append(kept, entry)
		}
	}
	changed := len(kept) != len(g.Roster)
	g.Roster = kept

	if g.StripPlayer(playerID) {
		changed = true
	}

	return changed, nil
}

// RosterPlayerIDs returns the IDs of roster entries assigned to the side.
func (g *Game) RosterPlayerIDs(side TeamSide) []string {
	var ids []string
	for _, entry := range g.Roster {
		if entry.Side == side {
			ids = append(ids, entry.PlayerID)
		}
	}
	return ids
}

// CumulativeGameID derives the deterministic aggregate game ID owned by a
// folder.
func CumulativeGameID(folderID string) string {
	return CumulativeIDPrefix + folderID
}
