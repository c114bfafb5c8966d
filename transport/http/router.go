package http

import (
	"github.com/gin-gonic/gin"

	"github.com/chainpost/vouch/ports"
	"github.com/chainpost/vouch/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(authService *service.AuthService, identities ports.IdentityRepository) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(authService, identities)
	authRequired := AuthMiddleware(authService)

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/challenge", handlers.Challenge)
		auth.POST("/wallet-login", handlers.WalletLogin)
		auth.GET("/verify", authRequired, handlers.Verify)
	}

	// Protected API routes
	api := router.Group("/api")
	api.Use(authRequired)
	{
		api.GET("/me", handlers.Me)
	}

	return router
}
