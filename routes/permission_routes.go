package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hazaribi/google-drive-clone-backend-secure/controllers"
)

func RegisterPermissionRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	permissionController := controllers.NewPermissionController(container.PermissionService)

	permissions := rg.Group("/permissions")
	{
		permissions.POST("", permissionController.Grant)
		permissions.GET("/:type/:id", permissionController.ListGrants)
		permissions.DELETE("/:type/:id/:userId", permissionController.Revoke)
	}
}
