package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fotracker/fotracker/internal/api/handler/v1/request"
	"github.com/fotracker/fotracker/internal/api/handler/v1/response"
	"github.com/fotracker/fotracker/internal/domain"
	"github.com/fotracker/fotracker/internal/service"
)

type RosterHandler struct {
	sessions *service.SessionManager
}

func NewRosterHandler(sessions *service.SessionManager) *RosterHandler {
	return &RosterHandler{
		sessions: sessions,
	}
}

// HandleListPlayers godoc
// @Summary      List all players
// @Tags         players
// @Produce      json
// @Success      200  {array}   domain.Player
// @Failure      401  {object}  response.Err
// @Router       /players [get]
// @Security     BearerAuth
func (h *RosterHandler) HandleListPlayers(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, tracker.Players())
}

// HandleCreatePlayer godoc
// @Summary      Create a player
// @Tags         players
// @Produce      json
// @Param        request  body      request.CreatePlayerRequest true "request body"
// @Success      201      {object}  domain.Player
// @Failure      400      {object}  response.Err
// @Router       /players [post]
// @Security     BearerAuth
func (h *RosterHandler) HandleCreatePlayer(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreatePlayerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	player, err := tracker.AddPlayer(ctx.Request.Context(), req.Name, req.Number, req.Team, req.Position)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleCreatePlayer -> tracker.AddPlayer", err)
		return
	}

	ctx.JSON(http.StatusCreated, player)
}

// HandleDeletePlayer godoc
// @Summary      Delete a player and scrub them from every game
// @Tags         players
// @Produce      json
// @Param        playerID path      string true "player ID"
// @Success      204
// @Failure      404      {object}  response.Err
// @Router       /players/{playerID} [delete]
// @Security     BearerAuth
func (h *RosterHandler) HandleDeletePlayer(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := tracker.DeletePlayer(ctx.Request.Context(), ctx.Param("playerID")); err != nil {
		renderTrackerErr(ctx, "v1.HandleDeletePlayer -> tracker.DeletePlayer", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetRoster godoc
// @Summary      Get a game's roster for one side
// @Tags         roster
// @Produce      json
// @Param        gameID   path      string true  "game ID"
// @Param        side     query     string false "team side (A or B), defaults to A"
// @Success      200      {array}   domain.Player
// @Failure      404      {object}  response.Err
// @Router       /games/{gameID}/roster [get]
// @Security     BearerAuth
func (h *RosterHandler) HandleGetRoster(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	side := domain.TeamSideA
	if ctx.Query("side") == "B" {
		side = domain.TeamSideB
	}

	roster, err := tracker.GameRoster(ctx.Param("gameID"), side)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleGetRoster -> tracker.GameRoster", err)
		return
	}

	ctx.JSON(http.StatusOK, roster)
}

// HandleAddRosterEntry godoc
// @Summary      Add a player to a game's roster
// @Tags         roster
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Param        request  body      request.AddRosterEntryRequest true "request body"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /games/{gameID}/roster [post]
// @Security     BearerAuth
func (h *RosterHandler) HandleAddRosterEntry(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddRosterEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := tracker.AddPlayerToRoster(ctx.Param("gameID"), req.PlayerID, domain.TeamSide(req.Side)); err != nil {
		renderTrackerErr(ctx, "v1.HandleAddRosterEntry -> tracker.AddPlayerToRoster", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRemoveRosterEntry godoc
// @Summary      Remove a player from a game's roster, dropping their pins
// @Tags         roster
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Param        playerID path      string true "player ID"
// @Success      204
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Router       /games/{gameID}/roster/{playerID} [delete]
// @Security     BearerAuth
func (h *RosterHandler) HandleRemoveRosterEntry(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := tracker.RemovePlayerFromRoster(ctx.Param("gameID"), ctx.Param("playerID")); err != nil {
		renderTrackerErr(ctx, "v1.HandleRemoveRosterEntry -> tracker.RemovePlayerFromRoster", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleImportRoster godoc
// @Summary      Import a JSON roster file and auto-fill the game's roster
// @Description  Creates any players the file names that don't exist yet, then adds face-off specialists to the game's roster by team name.
// @Tags         roster
// @Accept       json
// @Produce      json
// @Param        gameID   path      string true "game ID"
// @Success      200      {object}  response.RosterImportResponse
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /games/{gameID}/roster/import [post]
// @Security     BearerAuth
func (h *RosterHandler) HandleImportRoster(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	raw, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	added, err := tracker.ImportRoster(ctx.Request.Context(), raw)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleImportRoster -> tracker.ImportRoster", err)
		return
	}

	if _, err := tracker.AutoFillRoster(ctx.Param("gameID")); err != nil {
		renderTrackerErr(ctx, "v1.HandleImportRoster -> tracker.AutoFillRoster", err)
		return
	}

	ctx.JSON(http.StatusOK, response.RosterImportResponse{Added: added})
}
