package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hazaribi/google-drive-clone-backend-secure/services"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

type ShareController struct {
	shareService *services.ShareService
}

func NewShareController(shareService *services.ShareService) *ShareController {
	return &ShareController{shareService: shareService}
}

// IssueLink handles POST /files/:id/share
func (sc *ShareController) IssueLink(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	fileID, ok := parseObjectIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid file ID format", "")
		return
	}

	link, err := sc.shareService.IssueLink(c.Request.Context(), fileID, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Share link created", link)
}

// RevokeLink handles DELETE /files/:id/share
func (sc *ShareController) RevokeLink(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	fileID, ok := parseObjectIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid file ID format", "")
		return
	}

	if err := sc.shareService.RevokeLink(c.Request.Context(), fileID, caller); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Share link revoked", gin.H{"file_id": fileID})
}

// PublicFileMeta handles GET /share/public/:token. No authentication.
func (sc *ShareController) PublicFileMeta(c *gin.Context) {
	view, err := sc.shareService.ResolveToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Shared file", view)
}

// PublicFileDownload handles GET /share/public/:token/download. No
// authentication; returns a short-lived signed URL.
func (sc *ShareController) PublicFileDownload(c *gin.Context) {
	url, err := sc.shareService.PublicDownloadURL(c.Request.Context(), c.Param("token"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "URL generated", gin.H{"url": url})
}
