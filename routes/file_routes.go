package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hazaribi/google-drive-clone-backend-secure/controllers"
	"github.com/hazaribi/google-drive-clone-backend-secure/models"
)

func RegisterFileRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	fileController := controllers.NewFileController(container.FileService, container.MaxFileSize)
	trashController := controllers.NewTrashController(container.TrashService)

	files := rg.Group("/files")
	{
		files.POST("/upload", fileController.UploadFile)
		files.GET("", fileController.ListFiles)
		files.GET("/:id", fileController.GetFile)
		files.PATCH("/:id/rename", fileController.RenameFile)
		files.GET("/:id/download", fileController.DownloadFile)
		files.GET("/:id/preview", fileController.PreviewFile)
		files.DELETE("/:id", trashController.SoftDelete(models.ResourceTypeFile))
	}
}
