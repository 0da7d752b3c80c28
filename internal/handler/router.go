package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hahn-software/backend/docs"
	"github.com/hahn-software/backend/internal/config"
	"github.com/hahn-software/backend/internal/model"
)

type RouterConfig struct {
	StrictStatus bool
	CORS         config.CORSConfig
}

// NewRouter wires every HTTP route of the service.
func NewRouter(svc SessionService, cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware(cfg.CORS))

	router.GET("/ping", Ping)
	router.GET("/", Root)
	router.GET("/openapi.json", OpenAPIDoc)

	authHandler := NewAuthHandler(svc, cfg.StrictStatus)
	userHandler := NewUserHandler(svc, cfg.StrictStatus)
	requireAuth := AuthMiddleware(svc)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.GET("/config", authHandler.Config)
	auth.POST("/register", authHandler.Register)
	auth.POST("/authenticate", authHandler.Authenticate)
	auth.POST("/refresh-token", authHandler.RefreshToken)
	auth.POST("/google", authHandler.Google)
	auth.POST("/google/code", authHandler.GoogleCode)
	auth.POST("/logout", requireAuth, authHandler.Logout)

	users := v1.Group("/users", requireAuth)
	users.GET("/whoami", userHandler.WhoAmI)
	users.PATCH("/change-password", userHandler.ChangePassword)

	admin := v1.Group("/admin", requireAuth, RequireAction(model.ActionUserProvision))
	admin.POST("/users", userHandler.ProvisionUser)

	return router
}

// OpenAPIDoc serves the swag document registered by package docs.
func OpenAPIDoc(c *gin.Context) {
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(docs.SwaggerInfo.ReadDoc()))
}
