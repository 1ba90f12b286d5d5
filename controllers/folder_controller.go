package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hazaribi/google-drive-clone-backend-secure/services"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

type FolderController struct {
	folderService *services.FolderService
}

func NewFolderController(folderService *services.FolderService) *FolderController {
	return &FolderController{folderService: folderService}
}

// CreateFolder handles POST /folders
func (fc *FolderController) CreateFolder(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	var req struct {
		Name     string  `json:"name" binding:"required"`
		ParentID *string `json:"parent_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	var parentID *primitive.ObjectID
	if req.ParentID != nil && *req.ParentID != "" {
		objID, err := primitive.ObjectIDFromHex(*req.ParentID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid parent folder ID format", "")
			return
		}
		parentID = &objID
	}

	folder, err := fc.folderService.CreateFolder(c.Request.Context(), req.Name, parentID, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Folder created successfully", folder)
}

// ListFolders handles GET /folders?parent_id=<id|root>
func (fc *FolderController) ListFolders(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	var parentID *primitive.ObjectID
	parentSet := false
	if raw, ok := c.GetQuery("parent_id"); ok {
		parentSet = true
		if raw != "" && raw != "root" {
			objID, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, "Invalid parent folder ID format", "")
				return
			}
			parentID = &objID
		}
	}

	folders, err := fc.folderService.ListFolders(c.Request.Context(), caller, parentID, parentSet)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folders retrieved", folders)
}

// GetFolder handles GET /folders/:id
func (fc *FolderController) GetFolder(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	folderID, ok := parseObjectIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid folder ID format", "")
		return
	}

	folder, err := fc.folderService.GetFolder(c.Request.Context(), folderID, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder retrieved", folder)
}

// RenameFolder handles PATCH /folders/:id/rename
func (fc *FolderController) RenameFolder(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	folderID, ok := parseObjectIDParam(c, "id")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid folder ID format", "")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	folder, err := fc.folderService.RenameFolder(c.Request.Context(), folderID, req.Name, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Folder renamed successfully", folder)
}
