package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fotracker/fotracker/internal/api/handler/v1/request"
	"github.com/fotracker/fotracker/internal/api/handler/v1/response"
	"github.com/fotracker/fotracker/internal/domain"
	"github.com/fotracker/fotracker/internal/service"
)

type TrackerHandler struct {
	sessions *service.SessionManager
	migrator *service.MigrationService
}

// NewTrackerHandler wires the session manager; migrator may be nil when
// no secondary store is configured.
func NewTrackerHandler(sessions *service.SessionManager, migrator *service.MigrationService) *TrackerHandler {
	return &TrackerHandler{
		sessions: sessions,
		migrator: migrator,
	}
}

// trackerSession resolves the caller's tracker session, loading the
// user's snapshot on first use.
func trackerSession(ctx *gin.Context, sessions *service.SessionManager) (*service.TrackerService, *response.Err) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		return nil, respErr
	}

	tracker, err := sessions.Session(ctx.Request.Context(), userID)
	if err != nil {
		return nil, response.ErrInternalServerError(fmt.Errorf("sessions.Session -> %w", err))
	}

	return tracker, nil
}

// renderTrackerErr maps service and domain errors onto the HTTP error
// taxonomy: missing resources are 404, read-only rollups are 409, pin
// invariant violations are 400, anything else is a wrapped 500.
func renderTrackerErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		response.RenderErr(ctx, response.ErrNotFound("game", "ID", ctx.Param("gameID")))
	case errors.Is(err, service.ErrFolderNotFound):
		response.RenderErr(ctx, response.ErrNotFound("folder", "ID", ctx.Param("folderID")))
	case errors.Is(err, service.ErrPlayerNotFound):
		response.RenderErr(ctx, response.ErrNotFound("player", "ID", ctx.Param("playerID")))
	case errors.Is(err, service.ErrGameReadOnly):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, domain.ErrWhistleViolationConflict),
		errors.Is(err, domain.ErrClampOnWhistleViolation),
		errors.Is(err, domain.ErrMissingClampWinner),
		errors.Is(err, domain.ErrConvertedLossOnViolation),
		errors.Is(err, service.ErrInvalidRosterFile):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}

// HandleGetSession godoc
// @Summary      Get the full tracker session snapshot
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.SessionResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /session [get]
// @Security     BearerAuth
func (h *TrackerHandler) HandleGetSession(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, response.SessionResponse{
		Games:          tracker.Games(),
		Players:        tracker.Players(),
		Folders:        tracker.Folders(),
		Teams:          tracker.Teams(),
		CurrentGameID:  tracker.CurrentGameID(),
		UnsavedChanges: tracker.HasUnsavedChanges(),
	})
}

// HandleSave godoc
// @Summary      Flush unsaved pin and roster edits to the store
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.SaveResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /session/save [post]
// @Security     BearerAuth
func (h *TrackerHandler) HandleSave(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := tracker.Save(ctx.Request.Context()); err != nil {
		renderTrackerErr(ctx, "v1.HandleSave -> tracker.Save", err)
		return
	}

	ctx.JSON(http.StatusOK, response.SaveResponse{Saved: true})
}

// HandleSetCurrentGame godoc
// @Summary      Switch the current game
// @Tags         session
// @Produce      json
// @Param        request  body      request.SetCurrentGameRequest true "request body"
// @Success      200      {object}  domain.Game
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /session/current-game [put]
// @Security     BearerAuth
func (h *TrackerHandler) HandleSetCurrentGame(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SetCurrentGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := tracker.SetCurrentGame(ctx.Request.Context(), req.GameID); err != nil {
		renderTrackerErr(ctx, "v1.HandleSetCurrentGame -> tracker.SetCurrentGame", err)
		return
	}

	game, err := tracker.Game(req.GameID)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleSetCurrentGame -> tracker.Game", err)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// HandleMigrate godoc
// @Summary      Copy local store data into the hosted store, once
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.MigrateResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /session/migrate [post]
// @Security     BearerAuth
func (h *TrackerHandler) HandleMigrate(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if h.migrator == nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("no migration source configured")))
		return
	}

	migrated, err := h.migrator.Migrate(ctx.Request.Context(), userID)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleMigrate -> h.migrator.Migrate", err)
		return
	}

	if migrated {
		// The session predates the copied documents.
		h.sessions.Evict(userID)
	}

	ctx.JSON(http.StatusOK, response.MigrateResponse{Migrated: migrated})
}

// HandleListGames godoc
// @Summary      List all games
// @Tags         games
// @Produce      json
// @Success      200  {array}   domain.Game
// @Failure      401  {object}  response.Err
// @Router       /games [get]
// @Security     BearerAuth
func (h *TrackerHandler) HandleListGames(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, tracker.Games())
}

// HandleCreateGame godoc
// @Summary      Create a new game
// @Tags         games
// @Produce      json
// @Param        request  body      request.CreateGameRequest true "request body"
// @Success      201      {object}  domain.Game
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /games [post]
// @Security     BearerAuth
func (h *TrackerHandler) HandleCreateGame(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	game, err := tracker.CreateGame(ctx.Request.Context(), req.TeamA, req.TeamB, req.Date, req.Notes, req.FolderID)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleCreateGame -> tracker.CreateGame", err)
		return
	}

	ctx.JSON(http.StatusCreated, game)
}

// HandleGetGame godoc
// @Summary      Get a game by ID
// @Tags         games
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Success      200      {object}  domain.Game
// @Failure      404      {object}  response.Err
// @Router       /games/{gameID} [get]
// @Security     BearerAuth
func (h *TrackerHandler) HandleGetGame(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	game, err := tracker.Game(ctx.Param("gameID"))
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleGetGame -> tracker.Game", err)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// HandleDeleteGame godoc
// @Summary      Delete a game
// @Tags         games
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Success      204
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /games/{gameID} [delete]
// @Security     BearerAuth
func (h *TrackerHandler) HandleDeleteGame(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := tracker.DeleteGame(ctx.Request.Context(), ctx.Param("gameID")); err != nil {
		renderTrackerErr(ctx, "v1.HandleDeleteGame -> tracker.DeleteGame", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleMoveGame godoc
// @Summary      Move a game into (or out of) a folder
// @Tags         games
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Param        request  body      request.MoveGameRequest true "request body"
// @Success      200      {object}  domain.Game
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /games/{gameID}/folder [post]
// @Security     BearerAuth
func (h *TrackerHandler) HandleMoveGame(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.MoveGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	gameID := ctx.Param("gameID")
	if err := tracker.MoveGameToFolder(ctx.Request.Context(), gameID, req.FolderID); err != nil {
		renderTrackerErr(ctx, "v1.HandleMoveGame -> tracker.MoveGameToFolder", err)
		return
	}

	game, err := tracker.Game(gameID)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleMoveGame -> tracker.Game", err)
		return
	}

	ctx.JSON(http.StatusOK, game)
}

// HandleAddPin godoc
// @Summary      Record a face-off pin on a game
// @Tags         pins
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Param        request  body      request.AddPinRequest true "request body"
// @Success      201      {object}  domain.Pin
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /games/{gameID}/pins [post]
// @Security     BearerAuth
func (h *TrackerHandler) HandleAddPin(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddPinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	pin, err := domain.NewPin(req.X, req.Y,
		req.TeamAPlayerID, req.TeamBPlayerID, req.FaceoffWinnerID, req.ClampWinnerID,
		req.IsWhistleViolation, req.IsPostWhistleViolation, req.IsConvertedLoss, req.Timestamp)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := tracker.AddPin(ctx.Param("gameID"), pin); err != nil {
		renderTrackerErr(ctx, "v1.HandleAddPin -> tracker.AddPin", err)
		return
	}

	ctx.JSON(http.StatusCreated, pin)
}

// HandleRemoveLastPin godoc
// @Summary      Undo the most recent pin on a game
// @Tags         pins
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Success      204
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /games/{gameID}/pins/last [delete]
// @Security     BearerAuth
func (h *TrackerHandler) HandleRemoveLastPin(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if _, err := tracker.RemoveLastPin(ctx.Param("gameID")); err != nil {
		renderTrackerErr(ctx, "v1.HandleRemoveLastPin -> tracker.RemoveLastPin", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleClearPins godoc
// @Summary      Remove every pin from a game
// @Tags         pins
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Success      204
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /games/{gameID}/pins [delete]
// @Security     BearerAuth
func (h *TrackerHandler) HandleClearPins(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := tracker.ClearPins(ctx.Param("gameID")); err != nil {
		renderTrackerErr(ctx, "v1.HandleClearPins -> tracker.ClearPins", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetPins godoc
// @Summary      Get a game's pins, optionally filtered by players
// @Description  Repeatable teamA/teamB query params select players; an empty selection shows every pin. heatmap=true drops whistle violations.
// @Tags         pins
// @Produce      json
// @Param        gameID   path      string   true  "game ID"
// @Param        teamA    query     []string false "team A player IDs"
// @Param        teamB    query     []string false "team B player IDs"
// @Param        heatmap  query     bool     false "heatmap projection"
// @Success      200      {object}  response.PinsResponse
// @Failure      404      {object}  response.Err
// @Router       /games/{gameID}/pins [get]
// @Security     BearerAuth
func (h *TrackerHandler) HandleGetPins(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	filter := domain.NewPinFilter(ctx.QueryArray("teamA"), ctx.QueryArray("teamB"))

	var (
		pins []domain.Pin
		err  error
	)
	if ctx.Query("heatmap") == "true" {
		pins, err = tracker.HeatmapPins(ctx.Param("gameID"), filter)
	} else {
		pins, err = tracker.VisiblePins(ctx.Param("gameID"), filter)
	}
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleGetPins -> tracker pins", err)
		return
	}

	ctx.JSON(http.StatusOK, response.PinsResponse{Pins: pins})
}

// HandleGameStats godoc
// @Summary      Get win/loss summaries for both teams of a game
// @Tags         stats
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Success      200      {object}  response.GameStatsResponse
// @Failure      404      {object}  response.Err
// @Router       /games/{gameID}/stats [get]
// @Security     BearerAuth
func (h *TrackerHandler) HandleGameStats(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gameID := ctx.Param("gameID")
	statsA, err := tracker.GameStats(gameID, domain.TeamSideA)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleGameStats -> tracker.GameStats", err)
		return
	}
	statsB, err := tracker.GameStats(gameID, domain.TeamSideB)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleGameStats -> tracker.GameStats", err)
		return
	}

	ctx.JSON(http.StatusOK, response.GameStatsResponse{
		TeamA: statsA,
		TeamB: statsB,
	})
}

// HandlePlayerStats godoc
// @Summary      Get the per-player stat table for a game
// @Tags         stats
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Success      200      {object}  response.PlayerStatsResponse
// @Failure      404      {object}  response.Err
// @Router       /games/{gameID}/player-stats [get]
// @Security     BearerAuth
func (h *TrackerHandler) HandlePlayerStats(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	lines, totalsA, totalsB, err := tracker.PlayerStats(ctx.Param("gameID"))
	if err != nil {
		renderTrackerErr(ctx, "v1.HandlePlayerStats -> tracker.PlayerStats", err)
		return
	}

	ctx.JSON(http.StatusOK, response.PlayerStatsResponse{
		Players:     lines,
		TotalsTeamA: totalsA,
		TotalsTeamB: totalsB,
	})
}

// HandleFilterPlayers godoc
// @Summary      List the players selectable in the pin filter for a game
// @Tags         stats
// @Produce      json
// @Param        gameID   path      string true  "game ID"
// @Param        side     query     string false "team side (A or B), defaults to A"
// @Success      200      {array}   domain.Player
// @Failure      404      {object}  response.Err
// @Router       /games/{gameID}/filter-players [get]
// @Security     BearerAuth
func (h *TrackerHandler) HandleFilterPlayers(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	side := domain.TeamSideA
	if ctx.Query("side") == "B" {
		side = domain.TeamSideB
	}

	players, err := tracker.FilterEligiblePlayers(ctx.Param("gameID"), side)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleFilterPlayers -> tracker.FilterEligiblePlayers", err)
		return
	}

	ctx.JSON(http.StatusOK, players)
}
