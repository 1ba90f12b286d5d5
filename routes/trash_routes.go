package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hazaribi/google-drive-clone-backend-secure/controllers"
)

func RegisterTrashRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	trashController := controllers.NewTrashController(container.TrashService)

	trash := rg.Group("/trash")
	{
		trash.GET("", trashController.ListTrash)
		trash.POST("/:type/:id/restore", trashController.Restore)
		trash.DELETE("/:type/:id", trashController.Purge)
	}
}
