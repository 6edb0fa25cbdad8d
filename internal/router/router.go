package router

import (
	"github.com/gin-gonic/gin"

	"github.com/tastebook/backend/internal/api"
	"github.com/tastebook/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	importHandler *api.ImportHandler,
	validator middleware.TokenValidator,
	importLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Public read access to recipes and the import source hint list.
	v1.GET("/recipes", recipeHandler.ListRecipes)
	v1.GET("/recipes/import/sources", importHandler.ListSources)
	v1.GET("/recipes/:id", recipeHandler.GetRecipe)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		recipes := protected.Group("/recipes")
		{
			recipes.POST("", recipeHandler.CreateRecipe)
			recipes.PUT("/:id", recipeHandler.UpdateRecipe)
			recipes.DELETE("/:id", recipeHandler.DeleteRecipe)
			recipes.POST("/:id/favorite", recipeHandler.FavoriteRecipe)
			recipes.DELETE("/:id/favorite", recipeHandler.UnfavoriteRecipe)
		}

		importRoute := protected.Group("/recipes/import")
		if importLimiter != nil {
			importRoute.Use(importLimiter.Middleware())
		}
		importRoute.POST("", importHandler.ImportRecipe)
		importRoute.POST("/preview", importHandler.PreviewImport)
	}

	return router
}
