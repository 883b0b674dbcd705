package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"media-gallery-api/internal/auth"
	"media-gallery-api/internal/config"
)

// IssueToken exchanges the admin password for a local bearer token carrying
// the admin role. Used for development and scripting when the platform
// identity header is not available.
func IssueToken(c *gin.Context) {
	var input struct {
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		apiError(c, http.StatusBadRequest, "Password is required")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Configuration unavailable")
		return
	}
	if cfg.Auth.JWTSecret == "" || cfg.Auth.AdminPasswordHash == "" {
		apiError(c, http.StatusNotFound, "Local tokens are not enabled")
		return
	}

	if !auth.CheckPassword(cfg.Auth.AdminPasswordHash, input.Password) {
		log.Warn().Str("remote", c.ClientIP()).Msg("Rejected admin token request")
		apiError(c, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := auth.GenerateToken("local-admin", []string{cfg.Auth.AdminRole}, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// HealthCheck reports process liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
