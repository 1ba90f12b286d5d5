package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hazaribi/google-drive-clone-backend-secure/models"
	"github.com/hazaribi/google-drive-clone-backend-secure/services"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

type TrashController struct {
	trashService *services.TrashService
}

func NewTrashController(trashService *services.TrashService) *TrashController {
	return &TrashController{trashService: trashService}
}

// SoftDelete handles DELETE /files/:id and DELETE /folders/:id.
func (tc *TrashController) SoftDelete(resourceType models.ResourceType) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := callerID(c)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
			return
		}

		resourceID, ok := parseObjectIDParam(c, "id")
		if !ok {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resource ID format", "")
			return
		}

		if err := tc.trashService.SoftDelete(c.Request.Context(), resourceType, resourceID, caller); err != nil {
			utils.HandleServiceError(c, err)
			return
		}

		utils.SuccessResponse(c, "Moved to trash", gin.H{"id": resourceID, "type": resourceType})
	}
}

// Restore handles POST /trash/:type/:id/restore
func (tc *TrashController) Restore(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	resourceType, ok := models.ParseResourceType(c.Param("type"))
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resource type", "")
		return
	}

	resourceID, ok := parseObjectIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resource ID format", "")
		return
	}

	if err := tc.trashService.Restore(c.Request.Context(), resourceType, resourceID, caller); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Restored from trash", gin.H{"id": resourceID, "type": resourceType})
}

// Purge handles DELETE /trash/:type/:id. Permanent and irreversible.
func (tc *TrashController) Purge(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	resourceType, ok := models.ParseResourceType(c.Param("type"))
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resource type", "")
		return
	}

	resourceID, ok := parseObjectIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resource ID format", "")
		return
	}

	if err := tc.trashService.Purge(c.Request.Context(), resourceType, resourceID, caller); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Permanently deleted", gin.H{"id": resourceID, "type": resourceType})
}

// ListTrash handles GET /trash?type=files|folders&limit=&offset=
func (tc *TrashController) ListTrash(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	itemType := c.Query("type")
	if itemType != "" && itemType != "files" && itemType != "folders" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid type filter", "")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	items, err := tc.trashService.ListTrash(c.Request.Context(), caller, itemType, limit, offset)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Trash items retrieved", items)
}
