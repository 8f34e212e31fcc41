package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fotracker/fotracker/internal/domain"
)

// CreateGame allocates a regular game with empty pins and roster and
// makes it the current game. Structural change: persisted immediately.
func (s *TrackerService) CreateGame(ctx context.Context, teamA, teamB, date, notes, folderID string) (domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if folderID != "" {
		if _, ok := s.folders[folderID]; !ok {
			return domain.Game{}, ErrFolderNotFound
		}
	}

	game := &domain.Game{
		ID:        uuid.NewString(),
		Kind:      domain.GameKindRegular,
		TeamA:     teamA,
		TeamB:     teamB,
		Date:      date,
		Notes:     notes,
		FolderID:  folderID,
		CreatedAt: time.Now(),
	}
	s.games[game.ID] = game
	s.currentGameID = game.ID

	if err := s.store.SaveGame(ctx, s.userID, game); err != nil {
		return copyGame(game), fmt.Errorf("s.store.SaveGame -> %w", err)
	}
	if err := s.store.SaveCurrentGameID(ctx, s.userID, game.ID); err != nil {
		return copyGame(game), fmt.Errorf("s.store.SaveCurrentGameID -> %w", err)
	}

	if err := s.rebuildAndSaveAggregate(ctx, folderID); err != nil {
		return copyGame(game), err
	}

	return copyGame(game), nil
}

// DeleteGame removes a regular game. Rollup games cannot be deleted
// directly; a folder aggregate goes away with its folder.
func (s *TrackerService) DeleteGame(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if game.Kind != domain.GameKindRegular {
		return ErrGameReadOnly
	}

	folderID := game.FolderID
	delete(s.games, gameID)
	delete(s.dirty, gameID)

	if s.currentGameID == gameID {
		s.currentGameID = s.firstGameID()
	}

	if err := s.store.DeleteGame(ctx, s.userID, gameID); err != nil {
		return fmt.Errorf("s.store.DeleteGame -> %w", err)
	}
	if err := s.store.SaveCurrentGameID(ctx, s.userID, s.currentGameID); err != nil {
		return fmt.Errorf("s.store.SaveCurrentGameID -> %w", err)
	}

	return s.rebuildAndSaveAggregate(ctx, folderID)
}

// MoveGameToFolder re-files a game. Both the old and the new folder's
// aggregates are rebuilt: pins leaving a rollup must leave its totals.
func (s *TrackerService) MoveGameToFolder(ctx context.Context, gameID, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return ErrGameNotFound
	}
	if game.Kind != domain.GameKindRegular {
		return ErrGameReadOnly
	}
	if folderID != "" {
		if _, ok := s.folders[folderID]; !ok {
			return ErrFolderNotFound
		}
	}

	oldFolderID := game.FolderID
	game.FolderID = folderID

	if err := s.rebuildAndSaveAggregate(ctx, oldFolderID); err != nil {
		return err
	}
	if err := s.rebuildAndSaveAggregate(ctx, folderID); err != nil {
		return err
	}

	if err := s.store.SaveGame(ctx, s.userID, game); err != nil {
		return fmt.Errorf("s.store.SaveGame -> %w", err)
	}
	return nil
}

// CreateFolder allocates a folder and, when cumulative tracking is
// requested, its aggregate game seeded by an initial (empty) rebuild.
func (s *TrackerService) CreateFolder(ctx context.Context, name string, hasCumulativeTracker bool) (domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	folder := &domain.Folder{
		ID:                   domain.FolderIDPrefix + uuid.NewString(),
		Name:                 name,
		HasCumulativeTracker: hasCumulativeTracker,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	s.folders[folder.ID] = folder

	if hasCumulativeTracker {
		aggregate := &domain.Game{
			ID:        domain.CumulativeGameID(folder.ID),
			Kind:      domain.GameKindFolderAggregate,
			TeamA:     "Total",
			TeamB:     "Tracker",
			Date:      now.Format(time.RFC3339),
			Notes:     domain.AggregateNotes(name),
			FolderID:  folder.ID,
			CreatedAt: now,
		}
		s.games[aggregate.ID] = aggregate
		s.rebuildCumulativeFolder(folder.ID)

		if err := s.store.SaveGame(ctx, s.userID, aggregate); err != nil {
			return *folder, fmt.Errorf("s.store.SaveGame -> %w", err)
		}
	}

	if err := s.store.SaveFolder(ctx, s.userID, folder); err != nil {
		return *folder, fmt.Errorf("s.store.SaveFolder -> %w", err)
	}

	return *folder, nil
}

// RenameFolder also rewrites the aggregate game's notes so the rollup
// keeps naming its folder.
func (s *TrackerService) RenameFolder(ctx context.Context, folderID, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[folderID]
	if !ok {
		return ErrFolderNotFound
	}

	folder.Name = newName
	folder.UpdatedAt = time.Now()

	if aggregate, ok := s.games[domain.CumulativeGameID(folderID)]; ok {
		aggregate.Notes = domain.AggregateNotes(newName)
		if err := s.store.SaveGame(ctx, s.userID, aggregate); err != nil {
			return fmt.Errorf("s.store.SaveGame -> %w", err)
		}
	}

	if err := s.store.SaveFolder(ctx, s.userID, folder); err != nil {
		return fmt.Errorf("s.store.SaveFolder -> %w", err)
	}
	return nil
}

// DeleteFolder unfiles every member game, removes the aggregate game if
// present, and deletes the folder record.
func (s *TrackerService) DeleteFolder(ctx context.Context, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[folderID]; !ok {
		return ErrFolderNotFound
	}

	for _, game := range s.games {
		if game.FolderID == folderID && game.Kind == domain.GameKindRegular {
			game.FolderID = ""
			if err := s.store.SaveGame(ctx, s.userID, game); err != nil {
				return fmt.Errorf("s.store.SaveGame -> %w", err)
			}
		}
	}

	aggregateID := domain.CumulativeGameID(folderID)
	if _, ok := s.games[aggregateID]; ok {
		delete(s.games, aggregateID)
		delete(s.dirty, aggregateID)
		if err := s.store.DeleteGame(ctx, s.userID, aggregateID); err != nil {
			return fmt.Errorf("s.store.DeleteGame -> %w", err)
		}
		if s.currentGameID == aggregateID {
			s.currentGameID = s.firstGameID()
			if err := s.store.SaveCurrentGameID(ctx, s.userID, s.currentGameID); err != nil {
				return fmt.Errorf("s.store.SaveCurrentGameID -> %w", err)
			}
		}
	}

	delete(s.folders, folderID)
	if err := s.store.DeleteFolder(ctx, s.userID, folderID); err != nil {
		return fmt.Errorf("s.store.DeleteFolder -> %w", err)
	}
	return nil
}

func (s *TrackerService) Folder(folderID string) (domain.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder, ok := s.folders[folderID]
	if !ok {
		return domain.Folder{}, ErrFolderNotFound
	}
	return *folder, nil
}

// rebuildAndSaveAggregate rebuilds and immediately persists the folder's
// aggregate game, if the folder tracks one. No-op for an empty folder ID.
// Callers must hold s.mu.
func (s *TrackerService) rebuildAndSaveAggregate(ctx context.Context, folderID string) error {
	if folderID == "" {
		return nil
	}
	folder, ok := s.folders[folderID]
	if !ok || !folder.HasCumulativeTracker {
		return nil
	}

	s.rebuildCumulativeFolder(folderID)

	aggregate, ok := s.games[domain.CumulativeGameID(folderID)]
	if !ok {
		return nil
	}
	if err := s.store.SaveGame(ctx, s.userID, aggregate); err != nil {
		return fmt.Errorf("s.store.SaveGame -> %w", err)
	}
	return nil
}

// markAggregateDirty rebuilds the aggregate in memory but defers its
// write to the next Save, matching the deferred tier of the operation
// that triggered it. Callers must hold s.mu.
func (s *TrackerService) markAggregateDirty(folderID string) {
	if folderID == "" {
		return
	}
	folder, ok := s.folders[folderID]
	if !ok || !folder.HasCumulativeTracker {
		return
	}
	s.rebuildCumulativeFolder(folderID)
	if _, ok := s.games[domain.CumulativeGameID(folderID)]; ok {
		s.dirty[domain.CumulativeGameID(folderID)] = true
	}
}
