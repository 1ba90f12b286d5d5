package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hazaribi/google-drive-clone-backend-secure/controllers"
)

func RegisterSearchRoutes(rg *gin.RouterGroup, container *ServiceContainer) {
	searchController := controllers.NewSearchController(container.SearchService)

	search := rg.Group("/search")
	{
		search.GET("", searchController.Search)
		search.GET("/advanced", searchController.AdvancedSearch)
	}
}
