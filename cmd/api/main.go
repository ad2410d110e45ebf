package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	httphandlers "github.com/biabrauna/econsciente-api/internal/handlers/http"
	"github.com/biabrauna/econsciente-api/internal/handlers/middleware"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/cache"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/config"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/events"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/i18n"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/logging"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/metrics"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/persistence/postgres"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/realtime"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/scheduler"
	"github.com/biabrauna/econsciente-api/internal/infrastructure/security"
	"github.com/biabrauna/econsciente-api/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: "econsciente-api",
		Env:     cfg.Env,
	})
	logger.Info("starting econsciente api", "version", "dev")

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Inicializar i18n
	var i18nService *i18n.Service
	if cfg.I18n.LocalesDir != "" {
		i18nService, err = i18n.NewService(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
	} else {
		i18nService, err = i18n.NewEmbeddedService(cfg.I18n.DefaultLanguage)
	}
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)
	for _, lang := range i18nService.GetSupportedLanguages() {
		if missing := i18nService.MissingKeys(lang); len(missing) > 0 {
			logger.Warn("locale is missing translations", "language", lang, "keys", missing)
		}
	}

	// Infraestrutura
	appMetrics := metrics.New()
	origins := cfg.CORS.Origins()
	hub := realtime.NewHub(logger, appMetrics, origins)
	dispatcher := events.NewDispatcher(events.Options{
		Workers:     cfg.Tasks.Workers,
		QueueSize:   cfg.Tasks.QueueSize,
		MaxAttempts: cfg.Tasks.MaxAttempts,
		Backoff:     cfg.Tasks.Backoff,
		TaskTimeout: 30 * time.Second,
	}, logger, appMetrics)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	followRepo := postgres.NewFollowRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	unlockRepo := postgres.NewAchievementUnlockRepository(db)
	challengeRepo := postgres.NewChallengeRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	profilePicRepo := postgres.NewProfilePicRepository(db)
	uow := postgres.NewUnitOfWork(db)

	achievementRepo, err := cache.NewAchievementCatalog(
		postgres.NewAchievementRepository(db),
		cfg.Gamification.CatalogCacheSize,
		cfg.Gamification.CatalogCacheTTL,
	)
	if err != nil {
		logger.Error("failed to create achievement cache", "error", err)
		log.Fatal(err)
	}

	// Inicializar services
	points := services.PointValues{
		Post:       cfg.Gamification.PointsPost,
		ProfilePic: cfg.Gamification.PointsProfilePic,
		FirstBio:   cfg.Gamification.PointsFirstBio,
	}
	rewards := services.OnboardingRewards{
		ProfilePic:     cfg.Gamification.OnboardingProfilePic,
		Bio:            cfg.Gamification.OnboardingBio,
		FirstChallenge: cfg.Gamification.OnboardingChallenge,
		Bonus:          cfg.Gamification.OnboardingBonus,
	}

	notificationService := services.NewNotificationService(notificationRepo, hub, appMetrics, logger).
		WithRetention(cfg.Cleanup.NotificationMaxAge)
	achievementService := services.NewAchievementService(
		achievementRepo, unlockRepo, userRepo, challengeRepo, postRepo, profilePicRepo,
		notificationService, uow, appMetrics, logger,
	)
	onboardingService := services.NewOnboardingService(
		userRepo, profilePicRepo, challengeRepo, notificationService, uow, rewards, appMetrics, logger,
	)
	progress := services.NewProgressTracker(dispatcher, achievementService, onboardingService, logger)

	sessionService := services.NewSessionService(sessionRepo, cfg.Session.TTL, logger)
	authService := services.NewAuthService(
		userRepo, sessionService,
		security.NewBcryptHasher(security.DefaultBcryptCost),
		security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer),
		logger,
	)
	svc := httphandlers.Services{
		Auth:         authService,
		Sessions:     sessionService,
		Users:        services.NewUserService(userRepo, followRepo, sessionRepo, progress, uow, points, appMetrics, logger),
		Achievements: achievementService,
		Onboarding:   onboardingService,
		Follows:      services.NewFollowService(userRepo, followRepo, notificationService, progress, uow, logger),
		Posts:        services.NewPostService(postRepo, userRepo, notificationService, progress, uow, points, appMetrics, logger),
		Comments:     services.NewCommentService(commentRepo, postRepo, userRepo, notificationService, progress, logger),
		ProfilePics:  services.NewProfilePicService(profilePicRepo, userRepo, progress, uow, points, appMetrics, logger),
		Challenges:   services.NewChallengeService(challengeRepo, userRepo, progress, uow, appMetrics, logger),
		Notify:       notificationService,
	}

	if created, err := achievementService.SeedCatalog(context.Background()); err != nil {
		logger.Error("failed to seed achievement catalog", "error", err)
	} else if created > 0 {
		logger.Info("achievement catalog seeded", "created", created)
	}

	// Rotinas de manutenção
	jobs := scheduler.New(logger, appMetrics)
	for _, job := range []scheduler.Job{
		{
			Name:    "notifications.cleanup",
			Spec:    cfg.Cleanup.NotificationsSpec,
			Timeout: 5 * time.Minute,
			Run: func(ctx context.Context) error {
				_, err := notificationService.CleanOld(ctx, time.Now())
				return err
			},
		},
		{
			Name:    "sessions.cleanup",
			Spec:    cfg.Cleanup.SessionsSpec,
			Timeout: time.Minute,
			Run: func(ctx context.Context) error {
				_, err := sessionService.CleanupExpired(ctx, time.Now())
				return err
			},
		},
		{
			Name:    "follows.reconcile",
			Spec:    cfg.Cleanup.ReconcileSpec,
			Timeout: 15 * time.Minute,
			Run: func(ctx context.Context) error {
				_, err := svc.Follows.ReconcileCounters(ctx)
				return err
			},
		},
	} {
		if err := jobs.Add(job); err != nil {
			logger.Error("failed to schedule job", "job", job.Name, "error", err)
			log.Fatal(err)
		}
	}
	jobs.Start()

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Env:            cfg.Env,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: origins,
		Logger:         logger,
		I18n:           i18nService,
		AuthLimiter:    middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		Stream:         hub,
		Metrics:        appMetrics,
		HealthCheck:    sqlDB.PingContext,
	}, svc)

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	hub.Close()
	if err := jobs.Stop(ctx); err != nil {
		logger.Error("scheduler did not stop in time", "error", err)
	}
	if err := dispatcher.Close(ctx); err != nil {
		logger.Error("task queue did not drain in time", "error", err)
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
	}

	logger.Info("server exited")
}
