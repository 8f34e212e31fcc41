package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fotracker/fotracker/internal/api/handler/v1/request"
	"github.com/fotracker/fotracker/internal/api/handler/v1/response"
	"github.com/fotracker/fotracker/internal/domain"
	"github.com/fotracker/fotracker/internal/service"
)

type FolderHandler struct {
	sessions *service.SessionManager
}

func NewFolderHandler(sessions *service.SessionManager) *FolderHandler {
	return &FolderHandler{
		sessions: sessions,
	}
}

// HandleListFolders godoc
// @Summary      List all folders
// @Tags         folders
// @Produce      json
// @Success      200  {array}   domain.Folder
// @Failure      401  {object}  response.Err
// @Router       /folders [get]
// @Security     BearerAuth
func (h *FolderHandler) HandleListFolders(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, tracker.Folders())
}

// HandleCreateFolder godoc
// @Summary      Create a folder, optionally with a cumulative tracker
// @Tags         folders
// @Produce      json
// @Param        request  body      request.CreateFolderRequest true "request body"
// @Success      201      {object}  domain.Folder
// @Failure      400      {object}  response.Err
// @Router       /folders [post]
// @Security     BearerAuth
func (h *FolderHandler) HandleCreateFolder(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateFolderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	folder, err := tracker.CreateFolder(ctx.Request.Context(), req.Name, req.HasCumulativeTracker)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleCreateFolder -> tracker.CreateFolder", err)
		return
	}

	ctx.JSON(http.StatusCreated, folder)
}

// HandleRenameFolder godoc
// @Summary      Rename a folder
// @Tags         folders
// @Produce      json
// @Param        folderID path      string true "folder ID"
// @Param        request  body      request.RenameFolderRequest true "request body"
// @Success      200      {object}  domain.Folder
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Router       /folders/{folderID} [patch]
// @Security     BearerAuth
func (h *FolderHandler) HandleRenameFolder(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RenameFolderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	folderID := ctx.Param("folderID")
	if err := tracker.RenameFolder(ctx.Request.Context(), folderID, req.Name); err != nil {
		renderTrackerErr(ctx, "v1.HandleRenameFolder -> tracker.RenameFolder", err)
		return
	}

	folder, err := tracker.Folder(folderID)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleRenameFolder -> tracker.Folder", err)
		return
	}

	ctx.JSON(http.StatusOK, folder)
}

// HandleDeleteFolder godoc
// @Summary      Delete a folder, unfiling its games
// @Tags         folders
// @Produce      json
// @Param        folderID path      string true "folder ID"
// @Success      204
// @Failure      404      {object}  response.Err
// @Router       /folders/{folderID} [delete]
// @Security     BearerAuth
func (h *FolderHandler) HandleDeleteFolder(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := tracker.DeleteFolder(ctx.Request.Context(), ctx.Param("folderID")); err != nil {
		renderTrackerErr(ctx, "v1.HandleDeleteFolder -> tracker.DeleteFolder", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleFolderStats godoc
// @Summary      Get win/loss summaries over every game in a folder
// @Tags         folders
// @Produce      json
// @Param        folderID path      string true "folder ID"
// @Success      200      {object}  response.GameStatsResponse
// @Failure      404      {object}  response.Err
// @Router       /folders/{folderID}/stats [get]
// @Security     BearerAuth
func (h *FolderHandler) HandleFolderStats(ctx *gin.Context) {
	tracker, respErr := trackerSession(ctx, h.sessions)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	folderID := ctx.Param("folderID")
	statsA, err := tracker.FolderStats(folderID, domain.TeamSideA)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleFolderStats -> tracker.FolderStats", err)
		return
	}
	statsB, err := tracker.FolderStats(folderID, domain.TeamSideB)
	if err != nil {
		renderTrackerErr(ctx, "v1.HandleFolderStats -> tracker.FolderStats", err)
		return
	}

	ctx.JSON(http.StatusOK, response.GameStatsResponse{
		TeamA: statsA,
		TeamB: statsB,
	})
}
