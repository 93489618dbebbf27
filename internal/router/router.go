package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/classpad-app/classpad-backend/internal/config"
	"github.com/classpad-app/classpad-backend/internal/handler"
	"github.com/classpad-app/classpad-backend/internal/middleware"
	"github.com/classpad-app/classpad-backend/internal/response"
	"github.com/classpad-app/classpad-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Class       *handler.ClassHandler
	Group       *handler.GroupHandler
	Invite      *handler.InviteHandler
	Maintenance *handler.MaintenanceHandler
	WS          *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for login and invite lookups (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
	}

	// ─── 2. Invite Group (JWT, Rate Limited) ───────────────────────────
	// Invite codes are short and guessable, so lookups are throttled.
	inviteAPI := router.Group("/api/v1/invites")
	inviteAPI.Use(
		middleware.RequireUserJWT(authService),
		authLimiter.Middleware(),
	)
	{
		inviteAPI.GET("/:code", handlers.Invite.ResolveInvite)
	}

	// ─── 3. Class Group (User JWT) ─────────────────────────────────────
	classAPI := router.Group("/api/v1/classes")
	classAPI.Use(middleware.RequireUserJWT(authService))
	{
		classAPI.POST("", handlers.Class.CreateClass)
		classAPI.GET("/:class_id", handlers.Class.GetClass)
		classAPI.POST("/:class_id/join", authLimiter.Middleware(), handlers.Class.JoinClass)
		classAPI.POST("/:class_id/quiz-history", handlers.Class.RecordQuizResult)

		classAPI.POST("/:class_id/groups/:group_name/members", handlers.Group.AddMember)
		classAPI.DELETE("/:class_id/groups/:group_name/members/:user_id", handlers.Group.RemoveMember)
	}

	// ─── 4. WebSocket Group (User WS Auth) ─────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/classes/:class_id/scoreboard", handlers.WS.ScoreboardStream)
	}

	// ─── 5. Admin Group (Admin JWT) ────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.POST("/maintenance/migrate-schema", handlers.Maintenance.MigrateSchema)
	}

	return router
}
