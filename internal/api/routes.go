package api

import (
	"github.com/gin-gonic/gin"

	"media-gallery-api/internal/api/handlers"
	"media-gallery-api/internal/auth"
	"media-gallery-api/internal/config"
)

// SetupRoutes configures all application routes. Identity resolution runs on
// every request; role checks happen inside the admin handlers so failures
// come back in the gallery error envelope.
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	router.GET("/health", handlers.HealthCheck)

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware(cfg))
	{
		v1.POST("/auth/token", handlers.IssueToken)

		// Gallery routes
		media := v1.Group("/media")
		{
			media.POST("/query", handlers.QueryMedia)
			media.POST("/update", handlers.UpdateMedia)
			media.POST("/people", handlers.PeopleList)
			media.POST("", handlers.IngestMedia)
			media.DELETE("/:id", handlers.DeleteMedia)
			media.GET("/files/:kind/:name", handlers.ServeMediaFile)
		}

		// Gallery chrome routes
		v1.GET("/menus", handlers.ListMenus)
		albums := v1.Group("/albums")
		{
			albums.GET("", handlers.ListAlbums)
			albums.POST("", handlers.CreateAlbum)
			albums.DELETE("/:id", handlers.DeleteAlbum)
		}

		// Export routes
		export := v1.Group("/export")
		{
			export.GET("/csv", handlers.ExportCSV)
			export.GET("/json", handlers.ExportJSON)
		}
	}
}
