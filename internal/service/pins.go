package service

import (
	"github.com/fotracker/fotracker/internal/domain"
)

// AddPin records a face-off on an editable game. Pin edits are
// deferred-tier: the game and its folder rollup are marked dirty.
func (s *TrackerService) AddPin(gameID string, pin domain.Pin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if err := game.AddPin(pin); err != nil {
		return err
	}
	s.dirty[game.ID] = true
	s.markAggregateDirty(game.FolderID)
	return nil
}

// RemoveLastPin undoes the most recent face-off. Returns false without
// error when the game has no pins.
func (s *TrackerService) RemoveLastPin(gameID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return false, ErrGameNotFound
	}
	removed, err := game.RemoveLastPin()
	if err != nil {
		return false, err
	}
	if removed {
		s.dirty[game.ID] = true
		s.markAggregateDirty(game.FolderID)
	}
	return removed, nil
}

// ClearPins wipes every pin from an editable game.
func (s *TrackerService) ClearPins(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if err := game.ClearPins(); err != nil {
		return err
	}
	s.dirty[game.ID] = true
	s.markAggregateDirty(game.FolderID)
	return nil
}

// GameStats computes the win/loss summary for one side of a game.
func (s *TrackerService) GameStats(gameID string, side domain.TeamSide) (domain.GameStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return domain.GameStats{}, ErrGameNotFound
	}
	return domain.ComputeGameStats(game, side), nil
}

// PlayerStats computes the per-player stat table for a game along with
// both teams' totals.
func (s *TrackerService) PlayerStats(gameID string) ([]domain.PlayerStatLine, domain.TeamTotals, domain.TeamTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, domain.TeamTotals{}, domain.TeamTotals{}, ErrGameNotFound
	}
	lines := domain.ComputePlayerStats(game, s.playerByID)
	totalsA := domain.ComputeTeamTotals(lines, domain.TeamSideA)
	totalsB := domain.ComputeTeamTotals(lines, domain.TeamSideB)
	return lines, totalsA, totalsB, nil
}

// FolderStats computes the win/loss summary over a folder's rollup.
// Folders without a cumulative tracker aggregate on the fly.
func (s *TrackerService) FolderStats(folderID string, side domain.TeamSide) (domain.GameStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[folderID]
	if !ok {
		return domain.GameStats{}, ErrFolderNotFound
	}

	if folder.HasCumulativeTracker {
		if aggregate, ok := s.games[domain.CumulativeGameID(folderID)]; ok {
			return domain.ComputeGameStats(aggregate, side), nil
		}
	}

	scratch := &domain.Game{ID: domain.CumulativeGameID(folderID), Kind: domain.GameKindFolderAggregate}
	for _, member := range s.memberGames(folderID) {
		scratch.Pins = append(scratch.Pins, member.Pins...)
		scratch.Roster = append(scratch.Roster, member.Roster...)
	}
	return domain.ComputeGameStats(scratch, side), nil
}

// VisiblePins applies a roster filter to a game's pins.
func (s *TrackerService) VisiblePins(gameID string, filter domain.PinFilter) ([]domain.Pin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return domain.VisiblePins(game, filter), nil
}

// HeatmapPins returns the filtered pins that count toward the heatmap;
// whistle violations never do.
func (s *TrackerService) HeatmapPins(gameID string, filter domain.PinFilter) ([]domain.Pin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return domain.HeatmapPins(game, filter), nil
}

// FilterEligiblePlayers lists the players on one side that appear in at
// least one of the game's pins, so the filter UI only offers players
// that can change the view.
func (s *TrackerService) FilterEligiblePlayers(gameID string, side domain.TeamSide) ([]domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return domain.FilterEligiblePlayers(game, side, s.playerByID), nil
}
