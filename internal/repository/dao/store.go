package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreDAO is the document-store access layer behind the persistence
// gateway: three per-user collections (games, players, folders) plus the
// settings scalar row. Every method is scoped by userID.
type StoreDAO struct {
	db *gorm.DB
}

func NewStoreDAO(db *gorm.DB) *StoreDAO {
	return &StoreDAO{
		db: db,
	}
}

func upsertClause() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "doc_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}
}

func (d *StoreDAO) GetAllGames(ctx context.Context, userID uint) ([]GameDocument, error) {
	var docs []GameDocument
	result := d.db.WithContext(ctx).Where("user_id = ?", userID).Find(&docs)
	if result.Error != nil {
		return nil, result.Error
	}
	return docs, nil
}

func (d *StoreDAO) UpsertGame(ctx context.Context, userID uint, docID string, data GameData) error {
	doc := GameDocument{
		UserID:    userID,
		DocID:     docID,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	return d.db.WithContext(ctx).Clauses(upsertClause()).Create(&doc).Error
}

func (d *StoreDAO) DeleteGame(ctx context.Context, userID uint, docID string) error {
	return d.db.WithContext(ctx).
		Where("user_id = ? AND doc_id = ?", userID, docID).
		Delete(&GameDocument{}).Error
}

func (d *StoreDAO) GetAllPlayers(ctx context.Context, userID uint) ([]PlayerDocument, error) {
	var docs []PlayerDocument
	result := d.db.WithContext(ctx).Where("user_id = ?", userID).Find(&docs)
	if result.Error != nil {
		return nil, result.Error
	}
	return docs, nil
}

func (d *StoreDAO) UpsertPlayer(ctx context.Context, userID uint, docID string, data PlayerData) error {
	doc := PlayerDocument{
		UserID:    userID,
		DocID:     docID,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	return d.db.WithContext(ctx).Clauses(upsertClause()).Create(&doc).Error
}

func (d *StoreDAO) DeletePlayer(ctx context.Context, userID uint, docID string) error {
	return d.db.WithContext(ctx).
		Where("user_id = ? AND doc_id = ?", userID, docID).
		Delete(&PlayerDocument{}).Error
}

func (d *StoreDAO) GetAllFolders(ctx context.Context, userID uint) ([]FolderDocument, error) {
	var docs []FolderDocument
	result := d.db.WithContext(ctx).Where("user_id = ?", userID).Find(&docs)
	if result.Error != nil {
		return nil, result.Error
	}
	return docs, nil
}

func (d *StoreDAO) UpsertFolder(ctx context.Context, userID uint, docID string, data FolderData) error {
	doc := FolderDocument{
		UserID:    userID,
		DocID:     docID,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	return d.db.WithContext(ctx).Clauses(upsertClause()).Create(&doc).Error
}

func (d *StoreDAO) DeleteFolder(ctx context.Context, userID uint, docID string) error {
	return d.db.WithContext(ctx).
		Where("user_id = ? AND doc_id = ?", userID, docID).
		Delete(&FolderDocument{}).Error
}

// GetSettings returns the zero value when no settings row exists yet; a
// fresh user simply has no current game and no migration done.
func (d *StoreDAO) GetSettings(ctx context.Context, userID uint) (Settings, error) {
	var settings Settings
	result := d.db.WithContext(ctx).First(&settings, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Settings{UserID: userID}, nil
		}
		return Settings{}, result.Error
	}
	return settings, nil
}

func (d *StoreDAO) SaveCurrentGameID(ctx context.Context, userID uint, gameID string) error {
	settings := Settings{
		UserID:        userID,
		CurrentGameID: gameID,
		UpdatedAt:     time.Now(),
	}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"current_game_id", "updated_at"}),
	}).Create(&settings).Error
}

func (d *StoreDAO) MarkMigrated(ctx context.Context, userID uint) error {
	settings := Settings{
		UserID:    userID,
		Migrated:  true,
		UpdatedAt: time.Now(),
	}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"migrated", "updated_at"}),
	}).Create(&settings).Error
}
