package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hazaribi/google-drive-clone-backend-secure/controllers"
)

// RegisterShareRoutes covers the owner-facing link management surface.
func RegisterShareRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	shareController := controllers.NewShareController(container.ShareService)

	rg.POST("/files/:id/share", shareController.IssueLink)
	rg.DELETE("/files/:id/share", shareController.RevokeLink)
}

// RegisterPublicShareRoutes covers token-gated anonymous access. These
// routes carry no auth middleware; the token is the capability.
func RegisterPublicShareRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	shareController := controllers.NewShareController(container.ShareService)

	public := rg.Group("/share/public")
	{
		public.GET("/:token", shareController.PublicFileMeta)
		public.GET("/:token/download", shareController.PublicFileDownload)
	}
}
