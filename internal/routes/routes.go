package routes

import (
	"net/http"

	"github.com/DapP256/trabajo-final-uai/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every HTTP route under /api.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UsuarioHandler.RegisterRoutes(api)
		appHandlers.AvisoHandler.RegisterRoutes(api)
		appHandlers.PostulacionHandler.RegisterRoutes(api)
		appHandlers.ReclamoHandler.RegisterRoutes(api)
	}
}
