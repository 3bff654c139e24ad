package routes

import (
	"catalog-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every HTTP endpoint of the service.
func RegisterRoutes(r *gin.Engine, catalog *controllers.CatalogController, status *controllers.StatusController) {
	r.GET("/", status.Root)
	r.GET("/test", status.Test)
	r.GET("/health", status.Health)
	r.GET("/ready", status.Ready)
	r.NoRoute(status.NotFound)

	api := r.Group("/api")
	{
		api.GET("/hello", status.Hello)
		api.GET("/categories", catalog.GetCategories)
		api.GET("/products", catalog.GetProducts)
		api.GET("/products/featured", catalog.GetFeaturedProducts)
	}
}
