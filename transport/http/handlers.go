package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chainpost/vouch/core"
	"github.com/chainpost/vouch/ports"
	"github.com/chainpost/vouch/service"
)

// AuthHandlers contains HTTP handlers for auth endpoints
type AuthHandlers struct {
	authService *service.AuthService
	identities  ports.IdentityRepository
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authService *service.AuthService, identities ports.IdentityRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		identities:  identities,
	}
}

// Challenge handles the challenge request
func (h *AuthHandlers) Challenge(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"wallet_address" binding:"required"`
		ChainType     string `json:"chain_type" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
		return
	}

	chain, err := core.ParseChain(req.ChainType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Unsupported chain type"})
		return
	}

	challenge, err := h.authService.CreateChallenge(c.Request.Context(), req.WalletAddress, chain)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to create challenge"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"challenge_id": challenge.ID,
		"nonce":        challenge.Nonce,
		"message":      challenge.Message(),
		"expires_at":   challenge.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// WalletLogin handles the login request
func (h *AuthHandlers) WalletLogin(c *gin.Context) {
	var req struct {
		WalletAddress string `json:"wallet_address" binding:"required"`
		ChainType     string `json:"chain_type" binding:"required"`
		ChallengeID   string `json:"challenge_id" binding:"required"`
		Signature     string `json:"signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request"})
		return
	}

	chain, err := core.ParseChain(req.ChainType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Unsupported chain type"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.WalletAddress, chain, req.ChallengeID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrUnsupportedChain):
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Unsupported chain type"})
		case errors.Is(err, core.ErrAuthentication):
			// One generic message for every auth failure so callers can't
			// probe which check rejected them.
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Signature verification failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":          result.Token,
		"user_id":        result.Identity.ID,
		"wallet_address": result.Identity.WalletAddress,
		"chain_type":     result.Identity.Chain.String(),
		"is_new_user":    result.IsNewUser,
	})
}

// Verify reports that the bearer token is valid. The auth middleware has
// already rejected the request otherwise.
func (h *AuthHandlers) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Me returns the authenticated user's identity
func (h *AuthHandlers) Me(c *gin.Context) {
	identityID, exists := c.Get(ContextIdentityID)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "User not found in context"})
		return
	}

	identity, err := h.identities.FindByID(c.Request.Context(), identityID.(string))
	if err != nil {
		if errors.Is(err, core.ErrIdentityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":        identity.ID,
		"wallet_address": identity.WalletAddress,
		"chain_type":     identity.Chain.String(),
		"display_name":   identity.DisplayName,
		"avatar_cid":     identity.AvatarCID,
		"created_at":     identity.CreatedAt.UTC().Format(time.RFC3339),
	})
}
