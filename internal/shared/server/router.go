package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/auth"
	"docvault-backend/internal/documents"
	"docvault-backend/internal/ingestion"
	sharedauth "docvault-backend/internal/shared/auth"
	"docvault-backend/internal/shared/config"
	"docvault-backend/internal/shared/metrics"
	"docvault-backend/internal/shared/server/middleware"
	"docvault-backend/internal/shared/server/respond"
	"docvault-backend/internal/users"
)

// RouterDeps carries everything the router needs to register routes.
type RouterDeps struct {
	Config           config.Config
	Tokens           *sharedauth.TokenService
	AuthHandler      *auth.Handler
	UserHandler      *users.Handler
	DocumentHandler  *documents.Handler
	IngestionHandler *ingestion.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Tokens, "/auth/", "/health", "/metrics"),
	)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	root := r.Group("")

	authGroup := root.Group("")
	authLimiter := middleware.NewRateLimiter(deps.Config.AuthRateLimit, deps.Config.AuthRateBurst)
	authGroup.Use(middleware.RateLimit(authLimiter))
	deps.AuthHandler.RegisterRoutes(authGroup)

	deps.UserHandler.RegisterRoutes(root)
	deps.DocumentHandler.RegisterRoutes(root)
	deps.IngestionHandler.RegisterRoutes(root)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
