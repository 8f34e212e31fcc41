package domain

import "sort"

// PinFilter selects pins by participant. An empty selection on a side
// means "no filter" for that side, never "hide everything": a fresh
// session with no checkboxes ticked must still show the whole field.
type PinFilter struct {
	TeamAPlayerIDs map[string]bool
	TeamBPlayerIDs map[string]bool
}

func NewPinFilter(teamAPlayerIDs, teamBPlayerIDs []string) PinFilter {
	return PinFilter{
		TeamAPlayerIDs: toSet(teamAPlayerIDs),
		TeamBPlayerIDs: toSet(teamBPlayerIDs),
	}
}

func (f PinFilter) Matches(pin Pin) bool {
	teamAMatch := len(f.TeamAPlayerIDs) == 0 || f.TeamAPlayerIDs[pin.TeamAPlayerID]
	teamBMatch := len(f.TeamBPlayerIDs) == 0 || f.TeamBPlayerIDs[pin.TeamBPlayerID]
	return teamAMatch && teamBMatch
}

// VisiblePins returns the pins passing the filter, in insertion order.
func VisiblePins(game *Game, filter PinFilter) []Pin {
	visible := make([]Pin, 0, len(game.Pins))
	for _, pin := range game.Pins {
		if filter.Matches(pin) {
			visible = append(visible, pin)
		}
	}
	return visible
}

// HeatmapPins additionally drops whistle-violation pins: no face-off
// happened, so there is no geometry to plot. Post-whistle violations
// keep their position.
func HeatmapPins(game *Game, filter PinFilter) []Pin {
	visible := make([]Pin, 0, len(game.Pins))
	for _, pin := range game.Pins {
		if pin.IsWhistleViolation {
			continue
		}
		if filter.Matches(pin) {
			visible = append(visible, pin)
		}
	}
	return visible
}

// FilterEligiblePlayers lists the players offered in a side's filter UI.
// Eligibility comes from actual pin participation, not roster membership:
// a rostered player with no face-offs yet has nothing to filter by.
func FilterEligiblePlayers(game *Game, side TeamSide, lookup PlayerLookup) []Player {
	seen := make(map[string]bool)
	for _, pin := range game.Pins {
		id := pin.TeamAPlayerID
		if side == TeamSideB {
			id = pin.TeamBPlayerID
		}
		if id == "" || id == UnknownPlayerID {
			continue
		}
		seen[id] = true
	}

	players := make([]Player, 0, len(seen))
	for id := range seen {
		if player, ok := lookup(id); ok {
			players = append(players, player)
		}
	}

	sort.Slice(players, func(i, j int) bool {
		return jerseySortKey(players[i].Number) < jerseySortKey(players[j].Number)
	})

	return players
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
