package repository

import (
	"github.com/fotracker/fotracker/internal/domain"
	"github.com/fotracker/fotracker/internal/repository/dao"
)

// normalizeGame folds every historical document schema into the canonical
// game shape: the opponent-only naming, roster entries stored as bare ID
// strings, and the three generations of pin role fields. Saved documents
// always carry the canonical fields, so normalization converges after one
// load/save cycle.
func normalizeGame(docID string, data dao.GameData) *domain.Game {
	game := &domain.Game{
		ID:        docID,
		TeamA:     data.TeamA,
		TeamB:     data.TeamB,
		Date:      data.Date,
		Notes:     data.Notes,
		FolderID:  data.FolderID,
		CreatedAt: data.CreatedAt,
	}

	switch {
	case data.IsCumulativeFolder:
		game.Kind = domain.GameKindFolderAggregate
	case data.IsSeasonTotal || docID == domain.SeasonTotalID:
		game.Kind = domain.GameKindSeasonTotal
	default:
		game.Kind = domain.GameKindRegular
	}

	if game.TeamA == "" && data.Opponent != "" {
		game.TeamA = "Home Team"
		game.TeamB = data.Opponent
	}

	for _, entry := range data.Roster {
		side := domain.TeamSide(entry.Team)
		if side != domain.TeamSideB {
			side = domain.TeamSideA
		}
		game.Roster = append(game.Roster, domain.RosterEntry{
			PlayerID: entry.PlayerID,
			Side:     side,
		})
	}

	for _, pin := range data.Pins {
		game.Pins = append(game.Pins, normalizePin(pin))
	}

	return game
}

func normalizePin(data dao.PinData) domain.Pin {
	pin := domain.Pin{
		X:                      data.X,
		Y:                      data.Y,
		TeamAPlayerID:          data.TeamAPlayerID,
		TeamBPlayerID:          data.TeamBPlayerID,
		FaceoffWinnerID:        data.FaceoffWinnerID,
		ClampWinnerID:          data.ClampWinnerID,
		IsWhistleViolation:     data.IsWhistleViolation,
		IsPostWhistleViolation: data.IsPostWhistleViolation,
		IsConvertedLoss:        data.IsConvertedLoss,
		Timestamp:              data.Timestamp,
	}

	if pin.TeamAPlayerID == "" {
		if data.Player1ID != "" {
			pin.TeamAPlayerID = data.Player1ID
		} else {
			pin.TeamAPlayerID = data.PlayerID
		}
	}
	if pin.TeamBPlayerID == "" {
		if data.Player2ID != "" {
			pin.TeamBPlayerID = data.Player2ID
		} else {
			pin.TeamBPlayerID = domain.UnknownPlayerID
		}
	}

	// Legacy pins recorded a win/loss result instead of a winner ID.
	if pin.FaceoffWinnerID == "" {
		result := data.FaceoffResult
		if result == "" {
			result = data.LegacyType
		}
		if result == "loss" {
			pin.FaceoffWinnerID = pin.TeamBPlayerID
		} else {
			pin.FaceoffWinnerID = pin.TeamAPlayerID
		}
	}

	// Re-assert the whistle-violation invariants on data written before
	// they were enforced.
	if pin.IsWhistleViolation {
		pin.ClampWinnerID = ""
		pin.IsPostWhistleViolation = false
		pin.IsConvertedLoss = false
	}

	return pin
}

func gameToData(game *domain.Game) dao.GameData {
	data := dao.GameData{
		ID:                 game.ID,
		TeamA:              game.TeamA,
		TeamB:              game.TeamB,
		Date:               game.Date,
		Notes:              game.Notes,
		FolderID:           game.FolderID,
		IsCumulativeFolder: game.Kind == domain.GameKindFolderAggregate,
		IsSeasonTotal:      game.Kind == domain.GameKindSeasonTotal,
		CreatedAt:          game.CreatedAt,
		Pins:               make([]dao.PinData, 0, len(game.Pins)),
	}

	for _, pin := range game.Pins {
		data.Pins = append(data.Pins, dao.PinData{
			X:                      pin.X,
			Y:                      pin.Y,
			TeamAPlayerID:          pin.TeamAPlayerID,
			TeamBPlayerID:          pin.TeamBPlayerID,
			FaceoffWinnerID:        pin.FaceoffWinnerID,
			ClampWinnerID:          pin.ClampWinnerID,
			IsWhistleViolation:     pin.IsWhistleViolation,
			IsPostWhistleViolation: pin.IsPostWhistleViolation,
			IsConvertedLoss:        pin.IsConvertedLoss,
			Timestamp:              pin.Timestamp,
		})
	}

	for _, entry := range game.Roster {
		data.Roster = append(data.Roster, dao.RosterEntryData{
			PlayerID: entry.PlayerID,
			Team:     string(entry.Side),
		})
	}

	return data
}

func playerToDomain(docID string, data dao.PlayerData) domain.Player {
	return domain.Player{
		ID:        docID,
		Name:      data.Name,
		Number:    data.Number,
		Team:      data.Team,
		Position:  data.Position,
		CreatedAt: data.CreatedAt,
	}
}

func playerToData(player domain.Player) dao.PlayerData {
	return dao.PlayerData{
		ID:        player.ID,
		Name:      player.Name,
		Number:    player.Number,
		Team:      player.Team,
		Position:  player.Position,
		CreatedAt: player.CreatedAt,
	}
}

func folderToDomain(docID string, data dao.FolderData) *domain.Folder {
	return &domain.Folder{
		ID:                   docID,
		Name:                 data.Name,
		HasCumulativeTracker: data.HasCumulativeTracker,
		CreatedAt:            data.CreatedAt,
		UpdatedAt:            data.UpdatedAt,
	}
}

func folderToData(folder *domain.Folder) dao.FolderData {
	return dao.FolderData{
		ID:                   folder.ID,
		Name:                 folder.Name,
		HasCumulativeTracker: folder.HasCumulativeTracker,
		CreatedAt:            folder.CreatedAt,
		UpdatedAt:            folder.UpdatedAt,
	}
}
