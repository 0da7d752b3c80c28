package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hahn-software/backend/internal/config"
	"github.com/hahn-software/backend/internal/model"
	"github.com/hahn-software/backend/internal/service"
)

const (
	principalKey   = "auth_principal"
	accessTokenKey = "auth_access_token"
)

// AuthMiddleware resolves the bearer access token into a principal. Tokens
// whose record was revoked or expired are rejected like invalid ones.
func AuthMiddleware(svc SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token, ok := service.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			writeMessage(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}

		principal, err := svc.ResolvePrincipal(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnavailable) {
				writeMessage(c, http.StatusServiceUnavailable, "service unavailable")
			} else {
				writeMessage(c, http.StatusUnauthorized, "unauthorized")
			}
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Set(accessTokenKey, token)
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) *model.Principal {
	if value, ok := c.Get(principalKey); ok {
		if principal, ok := value.(*model.Principal); ok {
			return principal
		}
	}
	return nil
}

func GetAccessToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}

// RequireAction lets the request through only when the principal's role
// allows action. It must run after AuthMiddleware.
func RequireAction(action model.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			writeMessage(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		if !model.Allows(principal.Role, action) {
			writeMessage(c, http.StatusForbidden, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if _, ok := originMap[origin]; ok && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			if cfg.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
