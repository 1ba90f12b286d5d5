package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hazaribi/google-drive-clone-backend-secure/controllers"
	"github.com/hazaribi/google-drive-clone-backend-secure/models"
)

func RegisterFolderRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	folderController := controllers.NewFolderController(container.FolderService)
	trashController := controllers.NewTrashController(container.TrashService)

	folders := rg.Group("/folders")
	{
		folders.POST("", folderController.CreateFolder)
		folders.GET("", folderController.ListFolders)
		folders.GET("/:id", folderController.GetFolder)
		folders.PATCH("/:id/rename", folderController.RenameFolder)
		folders.DELETE("/:id", trashController.SoftDelete(models.ResourceTypeFolder))
	}
}
