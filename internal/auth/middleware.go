package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"media-gallery-api/internal/config"
)

const identityKey = "auth_identity"

// Middleware resolves the caller's identity once per request and stores it in
// the gin context. Requests without usable credentials proceed as anonymous;
// authorization decisions belong to the handlers.
func Middleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, identify(c.Request, cfg))
		c.Next()
	}
}

// identify builds the identity for one request. The platform principal header
// wins when present; a bearer token is the local fallback. Malformed
// credentials degrade to anonymous with a warning, never an error response.
func identify(r *http.Request, cfg *config.Config) Identity {
	if encoded := r.Header.Get(PrincipalHeader); encoded != "" {
		principal, err := ParsePrincipal(encoded)
		if err != nil {
			log.Warn().Err(err).Msg("Rejecting unreadable client principal header")
			return Identity{}
		}
		return principal.Identity()
	}

	if token := bearerToken(r); token != "" && cfg.Auth.JWTSecret != "" {
		id, err := VerifyToken(token, cfg.Auth.JWTSecret)
		if err != nil {
			log.Warn().Err(err).Msg("Rejecting invalid bearer token")
			return Identity{}
		}
		return id
	}

	return Identity{}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// IdentityFrom returns the identity stored by Middleware, or the anonymous
// identity when the middleware did not run.
func IdentityFrom(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}

// UserAuthorizedForRole reports whether the caller holds the named role,
// along with the caller's display name. Anonymous callers yield (false, "").
func UserAuthorizedForRole(c *gin.Context, role string) (bool, string) {
	id := IdentityFrom(c)
	if !id.Authenticated {
		return false, ""
	}
	return id.HasRole(role), id.Name
}
