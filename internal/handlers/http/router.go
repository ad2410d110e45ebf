package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/biabrauna/econsciente-api/internal/domain/entities"
	"github.com/biabrauna/econsciente-api/internal/domain/ports"
	"github.com/biabrauna/econsciente-api/internal/handlers/dto"
	"github.com/biabrauna/econsciente-api/internal/handlers/middleware"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/i18n"
	"github.com/biabrauna/econsciente-api/internal/services"
)

// Services agrupa os serviços expostos pela API
type Services struct {
	Auth         *services.AuthService
	Sessions     *services.SessionService
	Users        *services.UserService
	Achievements *services.AchievementService
	Onboarding   *services.OnboardingService
	Follows      *services.FollowService
	Posts        *services.PostService
	Comments     *services.CommentService
	ProfilePics  *services.ProfilePicService
	Challenges   *services.ChallengeService
	Notify       *services.NotificationService
}

// RouterConfig contém a infraestrutura usada pelo roteador
type RouterConfig struct {
	Env            string
	BaseURL        string
	AllowedOrigins []string
	Logger         ports.Logger
	I18n           *i18n.Service
	AuthLimiter    *middleware.RateLimiter // opcional
	Stream         NotificationStream
	Metrics        MetricsExporter // opcional
	HealthCheck    func(ctx context.Context) error
}

// MetricsExporter instrumenta as rotas e expõe /metrics
type MetricsExporter interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

// NewRouter monta o gin.Engine com middlewares globais e rotas /api/v1
func NewRouter(cfg RouterConfig, svc Services) *gin.Engine {
	dto.SetupValidator()

	router := gin.New()
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Base URL usada nas URIs RFC 7807
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.BaseURL)
		c.Next()
	})
	router.Use(middleware.NewI18nMiddleware(cfg.I18n).DetectLanguage())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", healthHandler(cfg))

	auth := middleware.NewAuthenticator(svc.Auth).RequireAuth()

	authHandler := NewAuthHandler(svc.Auth, svc.Sessions)
	userHandler := NewUserHandler(svc.Users)
	achievementHandler := NewAchievementHandler(svc.Achievements)
	onboardingHandler := NewOnboardingHandler(svc.Onboarding)
	followHandler := NewFollowHandler(svc.Follows)
	postHandler := NewPostHandler(svc.Posts, svc.Comments)
	profilePicHandler := NewProfilePicHandler(svc.ProfilePics)
	challengeHandler := NewChallengeHandler(svc.Challenges)
	notificationHandler := NewNotificationHandler(svc.Notify, cfg.Stream)

	v1 := router.Group("/api/v1")
	{
		// Auth
		authGroup := v1.Group("/auth")
		if cfg.AuthLimiter != nil {
			authGroup.Use(cfg.AuthLimiter.Middleware())
		}
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", auth, authHandler.Logout)
			authGroup.GET("/me", auth, authHandler.Me)
		}

		sessions := v1.Group("/sessions", auth)
		{
			sessions.GET("", authHandler.ListSessions)
			sessions.DELETE("/current", authHandler.RevokeCurrentSession)
			sessions.DELETE("", authHandler.RevokeAllSessions)
		}

		// Users
		users := v1.Group("/usuarios", auth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Gamification
		achievements := v1.Group("/conquistas", auth)
		{
			achievements.GET("", achievementHandler.List)
			achievements.GET("/minhas", achievementHandler.Mine)
			achievements.GET("/user/:userId", achievementHandler.ForUser)
			achievements.POST("", middleware.RequirePermission(entities.PermissionAchievementWrite), achievementHandler.Create)
			achievements.POST("/seed", middleware.RequirePermission(entities.PermissionAchievementWrite), achievementHandler.Seed)
		}

		onboarding := v1.Group("/onboarding", auth)
		{
			onboarding.GET("/status", onboardingHandler.Status)
			onboarding.POST("/complete-step", onboardingHandler.CompleteStep)
		}

		// Social
		follow := v1.Group("/follow", auth)
		{
			follow.POST("/:id", followHandler.Follow)
			follow.DELETE("/:id", followHandler.Unfollow)
			follow.GET("/:id/status", followHandler.Status)
			follow.GET("/:id/followers", followHandler.Followers)
			follow.GET("/:id/following", followHandler.Following)
		}

		notifications := v1.Group("/notificacoes", auth)
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/count", notificationHandler.CountUnread)
			notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
			notifications.PATCH("/read-all", notificationHandler.MarkAllAsRead)
			notifications.GET("/stream", notificationHandler.Stream)
		}

		// Content
		posts := v1.Group("/posts", auth)
		{
			posts.POST("", postHandler.Create)
			posts.GET("", postHandler.List)
			posts.GET("/:id", postHandler.Get)
			posts.POST("/:id/like", postHandler.Like)
			posts.DELETE("/:id/like", postHandler.Unlike)
			posts.GET("/:id/comentarios", postHandler.ListComments)
			posts.GET("/:id/comentarios/count", postHandler.CountComments)
			posts.POST("/:id/comentarios", postHandler.CreateComment)
		}

		v1.DELETE("/comentarios/:id", auth, postHandler.RemoveComment)

		profilePic := v1.Group("/profile-pic", auth)
		{
			profilePic.POST("", profilePicHandler.Upload)
			profilePic.GET("", profilePicHandler.Get)
		}

		challenges := v1.Group("/desafios", auth)
		{
			challenges.GET("", challengeHandler.List)
			challenges.GET("/search", challengeHandler.Search)
			challenges.GET("/concluidos", challengeHandler.Completed)
			challenges.POST("", middleware.RequirePermission(entities.PermissionChallengeWrite), challengeHandler.Create)
			challenges.POST("/:id/concluir", challengeHandler.Complete)
		}
	}

	return router
}

func healthHandler(cfg RouterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if cfg.HealthCheck != nil {
			if err := cfg.HealthCheck(c.Request.Context()); err != nil {
				cfg.Logger.Error("health check failed", "error", err)
				status, code = "unavailable", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status": status,
			"env":    cfg.Env,
		})
	}
}
