package repository

import (
	"context"
	"fmt"

	"github.com/fotracker/fotracker/internal/domain"
	"github.com/fotracker/fotracker/internal/repository/dao"
)

// StoreDAO is implemented by dao.StoreDAO on either the postgres (cloud)
// or the sqlite (local) database.
type StoreDAO interface {
	GetAllGames(ctx context.Context, userID uint) ([]dao.GameDocument, error)
	UpsertGame(ctx context.Context, userID uint, docID string, data dao.GameData) error
	DeleteGame(ctx context.Context, userID uint, docID string) error
	GetAllPlayers(ctx context.Context, userID uint) ([]dao.PlayerDocument, error)
	UpsertPlayer(ctx context.Context, userID uint, docID string, data dao.PlayerData) error
	DeletePlayer(ctx context.Context, userID uint, docID string) error
	GetAllFolders(ctx context.Context, userID uint) ([]dao.FolderDocument, error)
	UpsertFolder(ctx context.Context, userID uint, docID string, data dao.FolderData) error
	DeleteFolder(ctx context.Context, userID uint, docID string) error
	GetSettings(ctx context.Context, userID uint) (dao.Settings, error)
	SaveCurrentGameID(ctx context.Context, userID uint, gameID string) error
	MarkMigrated(ctx context.Context, userID uint) error
}

// StoreRepository is the persistence gateway. Reads are bulk snapshots
// taken at session start; writes are per-document upserts and deletes.
// Legacy document schemas are normalized to the canonical domain shape
// here, once, so nothing downstream ever branches on historical formats.
type StoreRepository struct {
	dao StoreDAO
}

func NewStoreRepository(dao StoreDAO) *StoreRepository {
	return &StoreRepository{
		dao: dao,
	}
}

func (r *StoreRepository) GetAllGames(ctx context.Context, userID uint) (map[string]*domain.Game, error) {
	docs, err := r.dao.GetAllGames(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.GetAllGames -> %w", err)
	}

	games := make(map[string]*domain.Game, len(docs))
	for _, doc := range docs {
		game := normalizeGame(doc.DocID, doc.Data)
		games[game.ID] = game
	}
	return games, nil
}

func (r *StoreRepository) SaveGame(ctx context.Context, userID uint, game *domain.Game) error {
	if err := r.dao.UpsertGame(ctx, userID, game.ID, gameToData(game)); err != nil {
		return fmt.Errorf("r.dao.UpsertGame -> %w", err)
	}
	return nil
}

func (r *StoreRepository) DeleteGame(ctx context.Context, userID uint, gameID string) error {
	if err := r.dao.DeleteGame(ctx, userID, gameID); err != nil {
		return fmt.Errorf("r.dao.DeleteGame -> %w", err)
	}
	return nil
}

func (r *StoreRepository) GetAllPlayers(ctx context.Context, userID uint) ([]domain.Player, error) {
	docs, err := r.dao.GetAllPlayers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.GetAllPlayers -> %w", err)
	}

	players := make([]domain.Player, 0, len(docs))
	for _, doc := range docs {
		players = append(players, playerToDomain(doc.DocID, doc.Data))
	}
	return players, nil
}

func (r *StoreRepository) SavePlayer(ctx context.Context, userID uint, player domain.Player) error {
	if err := r.dao.UpsertPlayer(ctx, userID, player.ID, playerToData(player)); err != nil {
		return fmt.Errorf("r.dao.UpsertPlayer -> %w", err)
	}
	return nil
}

func (r *StoreRepository) DeletePlayer(ctx context.Context, userID uint, playerID string) error {
	if err := r.dao.DeletePlayer(ctx, userID, playerID); err != nil {
		return fmt.Errorf("r.dao.DeletePlayer -> %w", err)
	}
	return nil
}

func (r *StoreRepository) GetAllFolders(ctx context.Context, userID uint) (map[string]*domain.Folder, error) {
	docs, err := r.dao.GetAllFolders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.GetAllFolders -> %w", err)
	}

	folders := make(map[string]*domain.Folder, len(docs))
	for _, doc := range docs {
		folder := folderToDomain(doc.DocID, doc.Data)
		folders[folder.ID] = folder
	}
	return folders, nil
}

func (r *StoreRepository) SaveFolder(ctx context.Context, userID uint, folder *domain.Folder) error {
	if err := r.dao.UpsertFolder(ctx, userID, folder.ID, folderToData(folder)); err != nil {
		return fmt.Errorf("r.dao.UpsertFolder -> %w", err)
	}
	return nil
}

func (r *StoreRepository) DeleteFolder(ctx context.Context, userID uint, folderID string) error {
	if err := r.dao.DeleteFolder(ctx, userID, folderID); err != nil {
		return fmt.Errorf("r.dao.DeleteFolder -> %w", err)
	}
	return nil
}

func (r *StoreRepository) GetCurrentGameID(ctx context.Context, userID uint) (string, error) {
	settings, err := r.dao.GetSettings(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("r.dao.GetSettings -> %w", err)
	}
	return settings.CurrentGameID, nil
}

func (r *StoreRepository) SaveCurrentGameID(ctx context.Context, userID uint, gameID string) error {
	if err := r.dao.SaveCurrentGameID(ctx, userID, gameID); err != nil {
		return fmt.Errorf("r.dao.SaveCurrentGameID -> %w", err)
	}
	return nil
}

func (r *StoreRepository) IsMigrated(ctx context.Context, userID uint) (bool, error) {
	settings, err := r.dao.GetSettings(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.GetSettings -> %w", err)
	}
	return settings.Migrated, nil
}

func (r *StoreRepository) MarkMigrated(ctx context.Context, userID uint) error {
	if err := r.dao.MarkMigrated(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.MarkMigrated -> %w", err)
	}
	return nil
}
