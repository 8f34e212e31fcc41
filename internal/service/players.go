package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fotracker/fotracker/internal/domain"
)

// AddPlayer registers a player and persists immediately.
func (s *TrackerService) AddPlayer(ctx context.Context, name, number, team, position string) (domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := domain.Player{
		ID:        uuid.NewString(),
		Name:      name,
		Number:    number,
		Team:      team,
		Position:  position,
		CreatedAt: time.Now(),
	}
	s.players = append(s.players, player)

	if err := s.store.SavePlayer(ctx, s.userID, player); err != nil {
		return player, fmt.Errorf("s.store.SavePlayer -> %w", err)
	}
	return player, nil
}

// DeletePlayer removes a player and cascades: every regular game loses
// the player's roster entries and every pin the player took part in,
// then any affected cumulative rollup is rebuilt. The player record is
// deleted immediately; the touched games wait for the next Save.
func (s *TrackerService) DeletePlayer(ctx context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.players {
		if s.players[i].ID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrPlayerNotFound
	}
	s.players = append(s.players[:idx], s.players[idx+1:]...)

	touchedFolders := map[string]bool{}
	for _, game := range s.games {
		if game.Kind != domain.GameKindRegular {
			continue
		}
		changed, _ := game.RemoveRosterEntry(playerID)
		if changed {
			s.dirty[game.ID] = true
			touchedFolders[game.FolderID] = true
		}
	}
	for folderID := range touchedFolders {
		s.markAggregateDirty(folderID)
	}

	if err := s.store.DeletePlayer(ctx, s.userID, playerID); err != nil {
		return fmt.Errorf("s.store.DeletePlayer -> %w", err)
	}
	return nil
}

// AddPlayerToRoster puts a player on one side of a game's roster.
// Roster edits are deferred-tier: the game is marked dirty, not saved.
func (s *TrackerService) AddPlayerToRoster(gameID, playerID string, side domain.TeamSide) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if !game.IsEditable() {
		return ErrGameReadOnly
	}
	if _, ok := s.playerByID(playerID); !ok {
		return ErrPlayerNotFound
	}

	added, err := game.AddRosterEntry(playerID, side)
	if err != nil {
		return err
	}
	if added {
		s.dirty[game.ID] = true
	}
	return nil
}

// RemovePlayerFromRoster drops a roster entry and, with it, every pin
// in the game referencing the player.
func (s *TrackerService) RemovePlayerFromRoster(gameID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if !game.IsEditable() {
		return ErrGameReadOnly
	}

	changed, err := game.RemoveRosterEntry(playerID)
	if err != nil {
		return err
	}
	if changed {
		s.dirty[game.ID] = true
		s.markAggregateDirty(game.FolderID)
	}
	return nil
}

// GameRoster resolves a game's roster entries for one side into player
// records, skipping entries whose player has since been deleted, sorted
// by jersey number.
func (s *TrackerService) GameRoster(gameID string, side domain.TeamSide) ([]domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}

	var roster []domain.Player
	for _, id := range game.RosterPlayerIDs(side) {
		if p, ok := s.playerByID(id); ok {
			roster = append(roster, p)
		}
	}
	domain.SortPlayersByJersey(roster)
	return roster, nil
}

// AutoFillRoster adds every face-off specialist whose team name matches
// one of the game's teams to the corresponding side. Existing entries
// are kept; the game is marked dirty only when something changed.
func (s *TrackerService) AutoFillRoster(gameID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return 0, ErrGameNotFound
	}
	if !game.IsEditable() {
		return 0, ErrGameReadOnly
	}

	added := 0
	for _, p := range s.players {
		if !p.IsFaceOffSpecialist() {
			continue
		}
		var side domain.TeamSide
		switch p.Team {
		case game.TeamA:
			side = domain.TeamSideA
		case game.TeamB:
			side = domain.TeamSideB
		default:
			continue
		}
		ok, err := game.AddRosterEntry(p.ID, side)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	if added > 0 {
		s.dirty[game.ID] = true
	}
	return added, nil
}

type rosterImportPlayer struct {
	Name      string `json:"name"`
	Number    string `json:"number"`
	Position  string `json:"position"`
	ClassYear string `json:"classYear"`
}

type rosterImportFile struct {
	Team    string               `json:"team"`
	Players []rosterImportPlayer `json:"players"`
}

// ImportRoster ingests a JSON roster export. Players already known by
// the same name, number and team are skipped; the rest are created and
// persisted immediately. Returns the players actually added.
func (s *TrackerService) ImportRoster(ctx context.Context, raw []byte) ([]domain.Player, error) {
	var file rosterImportFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRosterFile, err)
	}
	if file.Team == "" {
		return nil, fmt.Errorf("%w: missing team name", ErrInvalidRosterFile)
	}
	if len(file.Players) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrInvalidRosterFile)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := map[string]bool{}
	for _, p := range s.players {
		existing[p.Name+"\x00"+p.Number+"\x00"+p.Team] = true
	}

	var added []domain.Player
	for _, entry := range file.Players {
		if entry.Name == "" {
			continue
		}
		key := entry.Name + "\x00" + entry.Number + "\x00" + file.Team
		if existing[key] {
			continue
		}
		existing[key] = true

		player := domain.Player{
			ID:        uuid.NewString(),
			Name:      entry.Name,
			Number:    entry.Number,
			Team:      file.Team,
			Position:  entry.Position,
			CreatedAt: time.Now(),
		}
		s.players = append(s.players, player)
		added = append(added, player)

		if err := s.store.SavePlayer(ctx, s.userID, player); err != nil {
			return added, fmt.Errorf("s.store.SavePlayer -> %w", err)
		}
	}
	return added, nil
}
