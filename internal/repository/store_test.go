package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fotracker/fotracker/internal/db"
	"github.com/fotracker/fotracker/internal/domain"
	"github.com/fotracker/fotracker/internal/repository/dao"
)

func newTestRepository(t *testing.T) (*StoreRepository, *dao.StoreDAO) {
	t.Helper()
	gormDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	storeDAO := dao.NewStoreDAO(gormDB)
	return NewStoreRepository(storeDAO), storeDAO
}

func TestStoreRepositoryGameRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	game := &domain.Game{
		ID:        "g1",
		Kind:      domain.GameKindRegular,
		TeamA:     "Tigers",
		TeamB:     "Owls",
		Date:      "2026-04-02",
		Notes:     "rivalry game",
		FolderID:  "folder_x",
		CreatedAt: time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC),
		Pins: []domain.Pin{
			{X: 0.4, Y: 0.6, TeamAPlayerID: "p1", TeamBPlayerID: "p2", FaceoffWinnerID: "p1", ClampWinnerID: "p1", Timestamp: 1700000000000},
		},
		Roster: []domain.RosterEntry{
			{PlayerID: "p1", Side: domain.TeamSideA},
			{PlayerID: "p2", Side: domain.TeamSideB},
		},
	}
	require.NoError(t, repo.SaveGame(ctx, 1, game))

	games, err := repo.GetAllGames(ctx, 1)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, game, games["g1"])

	// Upserts replace, not duplicate.
	game.Notes = "updated"
	require.NoError(t, repo.SaveGame(ctx, 1, game))
	games, err = repo.GetAllGames(ctx, 1)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "updated", games["g1"].Notes)

	require.NoError(t, repo.DeleteGame(ctx, 1, "g1"))
	games, err = repo.GetAllGames(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestStoreRepositoryNormalizesLegacyDocuments(t *testing.T) {
	ctx := context.Background()
	repo, storeDAO := newTestRepository(t)

	// A document as an old client would have written it: opponent-only
	// naming, bare-ID roster, result-based pin roles.
	require.NoError(t, storeDAO.UpsertGame(ctx, 1, "g-legacy", dao.GameData{
		Opponent: "Owls",
		Pins: []dao.PinData{
			{X: 0.2, Y: 0.8, Player1ID: "p1", Player2ID: "p2", FaceoffResult: "loss", ClampWinnerID: "p2"},
		},
		Roster: []dao.RosterEntryData{{PlayerID: "p1", Team: "A"}},
	}))

	games, err := repo.GetAllGames(ctx, 1)
	require.NoError(t, err)
	loaded := games["g-legacy"]
	require.NotNil(t, loaded)

	assert.Equal(t, "Home Team", loaded.TeamA)
	assert.Equal(t, "Owls", loaded.TeamB)
	require.Len(t, loaded.Pins, 1)
	assert.Equal(t, "p1", loaded.Pins[0].TeamAPlayerID)
	assert.Equal(t, "p2", loaded.Pins[0].TeamBPlayerID)
	assert.Equal(t, "p2", loaded.Pins[0].FaceoffWinnerID)

	// One save rewrites the document in canonical form.
	require.NoError(t, repo.SaveGame(ctx, 1, loaded))
	docs, err := storeDAO.GetAllGames(ctx, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].Data.Opponent)
	assert.Equal(t, "Home Team", docs[0].Data.TeamA)
	assert.Empty(t, docs[0].Data.Pins[0].Player1ID)
	assert.Empty(t, docs[0].Data.Pins[0].FaceoffResult)
}

func TestStoreRepositoryScopesByUser(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	require.NoError(t, repo.SaveGame(ctx, 1, &domain.Game{ID: "g1", Kind: domain.GameKindRegular}))
	require.NoError(t, repo.SavePlayer(ctx, 1, domain.Player{ID: "p1", Name: "Sam"}))
	require.NoError(t, repo.SaveFolder(ctx, 1, &domain.Folder{ID: "folder_x", Name: "Spring"}))

	games, err := repo.GetAllGames(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, games)
	players, err := repo.GetAllPlayers(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, players)
	folders, err := repo.GetAllFolders(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, folders)

	// Same doc ID under another user is a distinct document.
	require.NoError(t, repo.SaveGame(ctx, 2, &domain.Game{ID: "g1", Kind: domain.GameKindRegular, Notes: "other user"}))
	games, err = repo.GetAllGames(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, games["g1"].Notes)
}

func TestStoreRepositoryPlayersAndFolders(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	player := domain.Player{
		ID:        "p1",
		Name:      "Sam Carter",
		Number:    "7",
		Team:      "Tigers",
		Position:  "FOGO",
		CreatedAt: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SavePlayer(ctx, 1, player))

	players, err := repo.GetAllPlayers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, player, players[0])

	require.NoError(t, repo.DeletePlayer(ctx, 1, "p1"))
	players, err = repo.GetAllPlayers(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, players)

	folder := &domain.Folder{
		ID:                   "folder_x",
		Name:                 "Spring",
		HasCumulativeTracker: true,
		CreatedAt:            time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		UpdatedAt:            time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SaveFolder(ctx, 1, folder))

	folders, err := repo.GetAllFolders(ctx, 1)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, folder, folders["folder_x"])

	require.NoError(t, repo.DeleteFolder(ctx, 1, "folder_x"))
	folders, err = repo.GetAllFolders(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestStoreRepositorySettings(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	// Fresh users have no settings row yet.
	current, err := repo.GetCurrentGameID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, current)
	migrated, err := repo.IsMigrated(ctx, 1)
	require.NoError(t, err)
	assert.False(t, migrated)

	require.NoError(t, repo.SaveCurrentGameID(ctx, 1, "g1"))
	current, err = repo.GetCurrentGameID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "g1", current)

	// The migration flag updates in place without clobbering the pointer.
	require.NoError(t, repo.MarkMigrated(ctx, 1))
	migrated, err = repo.IsMigrated(ctx, 1)
	require.NoError(t, err)
	assert.True(t, migrated)
	current, err = repo.GetCurrentGameID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "g1", current)

	// Per-user rows.
	migrated, err = repo.IsMigrated(ctx, 2)
	require.NoError(t, err)
	assert.False(t, migrated)
}
