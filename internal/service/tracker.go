package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/fotracker/fotracker/internal/domain"
)

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrNoCurrentGame  = errors.New("no game selected")

	ErrInvalidRosterFile = errors.New("invalid roster file")

	ErrGameReadOnly = domain.ErrGameReadOnly
)

// StoreGateway is the persistence boundary consumed by the tracker. All
// reads are bulk snapshots; all writes are per-document upserts/deletes
// scoped to the owning user.
type StoreGateway interface {
	GetAllGames(ctx context.Context, userID uint) (map[string]*domain.Game, error)
	SaveGame(ctx context.Context, userID uint, game *domain.Game) error
	DeleteGame(ctx context.Context, userID uint, gameID string) error
	GetAllPlayers(ctx context.Context, userID uint) ([]domain.Player, error)
	SavePlayer(ctx context.Context, userID uint, player domain.Player) error
	DeletePlayer(ctx context.Context, userID uint, playerID string) error
	GetAllFolders(ctx context.Context, userID uint) (map[string]*domain.Folder, error)
	SaveFolder(ctx context.Context, userID uint, folder *domain.Folder) error
	DeleteFolder(ctx context.Context, userID uint, folderID string) error
	GetCurrentGameID(ctx context.Context, userID uint) (string, error)
	SaveCurrentGameID(ctx context.Context, userID uint, gameID string) error
	IsMigrated(ctx context.Context, userID uint) (bool, error)
	MarkMigrated(ctx context.Context, userID uint) error
}

// TrackerService holds one user's in-memory session model: the games,
// players, and folders loaded as a snapshot from the gateway, plus the
// current-game pointer. Every mutation goes through this type so the
// folder aggregates it maintains can never be forgotten by a call site.
//
// Persistence runs in two tiers to respect the remote store's write
// quota: structural operations (create/delete/move/rename of games,
// folders, players) write through immediately, while high-frequency pin
// and roster edits only mark their game dirty until Save flushes them.
// In-memory state is mutated before the durable write and is never
// rolled back on a write failure; the caller retries the save.
type TrackerService struct {
	mu     sync.Mutex
	userID uint
	store  StoreGateway

	games   map[string]*domain.Game
	players []domain.Player
	folders map[string]*domain.Folder

	currentGameID string
	dirty         map[string]bool
}

func NewTrackerService(store StoreGateway, userID uint) *TrackerService {
	return &TrackerService{
		userID:  userID,
		store:   store,
		games:   make(map[string]*domain.Game),
		folders: make(map[string]*domain.Folder),
		dirty:   make(map[string]bool),
	}
}

// Load replaces the in-memory model with a fresh gateway snapshot. It is
// a full replace, never a merge: the store is the source of truth across
// sessions.
func (s *TrackerService) Load(ctx context.Context) error {
	games, err := s.store.GetAllGames(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("s.store.GetAllGames -> %w", err)
	}
	players, err := s.store.GetAllPlayers(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("s.store.GetAllPlayers -> %w", err)
	}
	folders, err := s.store.GetAllFolders(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("s.store.GetAllFolders -> %w", err)
	}
	currentGameID, err := s.store.GetCurrentGameID(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("s.store.GetCurrentGameID -> %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = games
	s.players = players
	s.folders = folders
	s.currentGameID = currentGameID
	s.dirty = make(map[string]bool)

	// Fall back to an arbitrary game when the stored pointer is stale.
	if _, ok := s.games[s.currentGameID]; !ok || s.currentGameID == "" {
		s.currentGameID = s.firstGameID()
		if s.currentGameID != currentGameID {
			if err := s.store.SaveCurrentGameID(ctx, s.userID, s.currentGameID); err != nil {
				zap.L().Warn("failed to persist current game pointer",
					zap.Uint("userID", s.userID), zap.Error(err))
			}
		}
	}

	return nil
}

func (s *TrackerService) firstGameID() string {
	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ""
	}
	sort.Strings(ids)
	return ids[0]
}

// Save flushes every dirty game to the gateway. Games that fail to write
// stay dirty so a retry picks them up again.
func (s *TrackerService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for id := range s.dirty {
		game, ok := s.games[id]
		if !ok {
			delete(s.dirty, id)
			continue
		}
		if err := s.store.SaveGame(ctx, s.userID, game); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("s.store.SaveGame(%s) -> %w", id, err)
			}
			continue
		}
		delete(s.dirty, id)
	}

	return firstErr
}

func (s *TrackerService) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dirty) > 0
}

func (s *TrackerService) SetCurrentGame(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return ErrGameNotFound
	}
	s.currentGameID = gameID

	if err := s.store.SaveCurrentGameID(ctx, s.userID, gameID); err != nil {
		return fmt.Errorf("s.store.SaveCurrentGameID -> %w", err)
	}
	return nil
}

func (s *TrackerService) CurrentGameID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentGameID
}

// CurrentGame returns a copy of the current game.
func (s *TrackerService) CurrentGame() (domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[s.currentGameID]
	if !ok {
		return domain.Game{}, ErrNoCurrentGame
	}
	return copyGame(game), nil
}

func (s *TrackerService) Game(gameID string) (domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return domain.Game{}, ErrGameNotFound
	}
	return copyGame(game), nil
}

// Games returns copies of every game, sorted by creation time then ID so
// listings are stable across sessions.
func (s *TrackerService) Games() []domain.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := make([]domain.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, copyGame(game))
	}
	sort.Slice(games, func(i, j int) bool {
		if !games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].CreatedAt.Before(games[j].CreatedAt)
		}
		return games[i].ID < games[j].ID
	})
	return games
}

func (s *TrackerService) Players() []domain.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Player(nil), s.players...)
}

func (s *TrackerService) Folders() []domain.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders := make([]domain.Folder, 0, len(s.folders))
	for _, folder := range s.folders {
		folders = append(folders, *folder)
	}
	sort.Slice(folders, func(i, j int) bool {
		if !folders[i].CreatedAt.Equal(folders[j].CreatedAt) {
			return folders[i].CreatedAt.Before(folders[j].CreatedAt)
		}
		return folders[i].ID < folders[j].ID
	})
	return folders
}

// Teams lists the distinct team names across the player collection.
func (s *TrackerService) Teams() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for _, player := range s.players {
		if player.Team != "" {
			seen[player.Team] = true
		}
	}
	teams := make([]string, 0, len(seen))
	for team := range seen {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	return teams
}

// rebuildCumulativeFolder recomputes the folder's aggregate game from
// scratch: pins are the concatenation of deep-copied pins from every
// regular member game, member order fixed by creation time so repeated
// rebuilds agree, and the roster is the deduplicated union of member
// rosters so stats over the rollup attribute wins the same way the
// member games do. Callers must hold s.mu. The rebuild itself never
// persists; the triggering operation decides whether the aggregate
// write is immediate or deferred.
func (s *TrackerService) rebuildCumulativeFolder(folderID string) {
	aggregate, ok := s.games[domain.CumulativeGameID(folderID)]
	if !ok {
		return
	}

	var pins []domain.Pin
	var roster []domain.RosterEntry
	seen := make(map[domain.RosterEntry]bool)
	for _, member := range s.memberGames(folderID) {
		pins = append(pins, member.Pins...)
		for _, entry := range member.Roster {
			if !seen[entry] {
				seen[entry] = true
				roster = append(roster, entry)
			}
		}
	}
	aggregate.Pins = pins
	aggregate.Roster = roster
}

// memberGames returns the folder's regular games ordered by creation
// time, ties broken by ID. Callers must hold s.mu.
func (s *TrackerService) memberGames(folderID string) []*domain.Game {
	members := make([]*domain.Game, 0)
	for _, game := range s.games {
		if game.FolderID == folderID && game.Kind == domain.GameKindRegular {
			members = append(members, game)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		if !members[i].CreatedAt.Equal(members[j].CreatedAt) {
			return members[i].CreatedAt.Before(members[j].CreatedAt)
		}
		return members[i].ID < members[j].ID
	})
	return members
}

func (s *TrackerService) playerByID(playerID string) (domain.Player, bool) {
	for _, player := range s.players {
		if player.ID == playerID {
			return player, true
		}
	}
	return domain.Player{}, false
}

func copyGame(game *domain.Game) domain.Game {
	copied := *game
	copied.Pins = append([]domain.Pin(nil), game.Pins...)
	copied.Roster = append([]domain.RosterEntry(nil), game.Roster...)
	return copied
}
