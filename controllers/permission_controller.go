package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hazaribi/google-drive-clone-backend-secure/models"
	"github.com/hazaribi/google-drive-clone-backend-secure/services"
	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

type PermissionController struct {
	permissionService *services.PermissionService
}

func NewPermissionController(permissionService *services.PermissionService) *PermissionController {
	return &PermissionController{permissionService: permissionService}
}

type grantRequest struct {
	ResourceID   string `json:"resource_id" binding:"required"`
	ResourceType string `json:"resource_type" binding:"required,oneof=file folder"`
	UserID       string `json:"user_id,omitempty"`
	Email        string `json:"email,omitempty"`
	Level        string `json:"level" binding:"required,oneof=view edit owner"`
}

// Grant handles POST /permissions. Creates or overwrites a grant.
func (pc *PermissionController) Grant(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", "")
		return
	}

	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	resourceID, err := primitive.ObjectIDFromHex(req.ResourceID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid resource ID format", "")
		return
	}
	resourceType, _ := models.ParseResourceType(req.ResourceType)
	level, _ := models.ParsePermissionLevel(req.Level)

	granteeID, err := pc.resolveGrantee(c, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	grant, err := pc.permissionService.Grant(c.Request.Context(), resourceType, resourceID, granteeID, level, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, "Permission granted", grant)
}

func (pc *PermissionController) resolveGrantee(c *gin.Context, req grantRequest) (primitive.ObjectID, error) {
	if req.UserID != "" {
		objID, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			return primitive.NilObjectID, utils.ErrInvalidArgument
		}
		return objID, nil
	}
	if req.Email != "" {
		user, err := pc.permissionService.UserByEmail(c.Request.Context(), req.Email)
		if err != nil {
			return primitive.NilObjectID, err
		}
		return user.ID, nil
	}
	return primitive.NilObjectID, utils.ErrInvalidArgument
}

// Revoke handles DELETE /permissions/:type/:id/:userId
func (pc *PermissionController) Revoke(c *gin.Context) {
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

	granteeID, ok := parseObjectIDParam(c, "userId")
	if !ok {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID format", "")
		return
	}

	if err := pc.permissionService.Revoke(c.Request.Context(), resourceType, resourceID, granteeID, caller); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Permission revoked", gin.H{"resource_id": resourceID, "user_id": granteeID})
}

// ListGrants handles GET /permissions/:type/:id
func (pc *PermissionController) ListGrants(c *gin.Context) {
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

	grants, err := pc.permissionService.ListGrants(c.Request.Context(), resourceType, resourceID, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, "Permissions retrieved", grants)
}
