package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// MigrationService copies a user's data from one store to another,
// once. The destination's migrated flag is the guard: after a
// successful copy it is set and later calls become no-ops, so a user
// who keeps both a local and a cloud deployment never has the local
// snapshot clobber cloud edits twice.
type MigrationService struct {
	source StoreGateway
	dest   StoreGateway
}

func NewMigrationService(source, dest StoreGateway) *MigrationService {
	return &MigrationService{
		source: source,
		dest:   dest,
	}
}

// Migrate copies every game, player, and folder document plus the
// current-game pointer. Returns true when a copy actually ran.
func (s *MigrationService) Migrate(ctx context.Context, userID uint) (bool, error) {
	migrated, err := s.dest.IsMigrated(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("s.dest.IsMigrated -> %w", err)
	}
	if migrated {
		return false, nil
	}

	games, err := s.source.GetAllGames(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("s.source.GetAllGames -> %w", err)
	}
	players, err := s.source.GetAllPlayers(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("s.source.GetAllPlayers -> %w", err)
	}
	folders, err := s.source.GetAllFolders(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("s.source.GetAllFolders -> %w", err)
	}
	currentGameID, err := s.source.GetCurrentGameID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("s.source.GetCurrentGameID -> %w", err)
	}

	for _, game := range games {
		if err := s.dest.SaveGame(ctx, userID, game); err != nil {
			return false, fmt.Errorf("s.dest.SaveGame -> %w", err)
		}
	}
	for _, player := range players {
		if err := s.dest.SavePlayer(ctx, userID, player); err != nil {
			return false, fmt.Errorf("s.dest.SavePlayer -> %w", err)
		}
	}
	for _, folder := range folders {
		if err := s.dest.SaveFolder(ctx, userID, folder); err != nil {
			return false, fmt.Errorf("s.dest.SaveFolder -> %w", err)
		}
	}
	if currentGameID != "" {
		if err := s.dest.SaveCurrentGameID(ctx, userID, currentGameID); err != nil {
			return false, fmt.Errorf("s.dest.SaveCurrentGameID -> %w", err)
		}
	}

	if err := s.dest.MarkMigrated(ctx, userID); err != nil {
		return false, fmt.Errorf("s.dest.MarkMigrated -> %w", err)
	}

	zap.L().Info("store migration completed",
		zap.Uint("user_id", userID),
		zap.Int("games", len(games)),
		zap.Int("players", len(players)),
		zap.Int("folders", len(folders)),
	)

	return true, nil
}
