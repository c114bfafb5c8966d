package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chainpost/vouch/core"
	"github.com/chainpost/vouch/service"
)

// Context keys set by AuthMiddleware for downstream handlers
const (
	ContextIdentityID    = "identityID"
	ContextWalletAddress = "walletAddress"
	ContextWalletChain   = "walletChain"
)

// AuthMiddleware creates middleware that validates bearer session tokens
// and attaches the authenticated identity to the request context.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == "" || token == auth {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Missing authorization token"})
			return
		}

		credential, err := authService.ValidateToken(token)
		if err != nil {
			if errors.Is(err, core.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Token expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid token"})
			}
			return
		}

		c.Set(ContextIdentityID, credential.IdentityID)
		c.Set(ContextWalletAddress, credential.WalletAddress)
		c.Set(ContextWalletChain, credential.Chain.String())

		c.Next()
	}
}
