package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/internal/blob"
	"github.com/connectsphere/backend/internal/handlers"
	"github.com/connectsphere/backend/internal/middleware"
	"github.com/connectsphere/backend/internal/notify"
	"github.com/connectsphere/backend/internal/safety"
	"github.com/connectsphere/backend/internal/services"
	"github.com/connectsphere/backend/internal/store"
	"github.com/connectsphere/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, logger *zap.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
	logger.Info("Global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, st store.Store, logger *zap.Logger) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize shared infrastructure ---
	fanout := notify.New(logger)
	safetyChecker := safety.New(safety.Config{
		APIURL:     cfg.ModerationAPIURL,
		APIKey:     cfg.ModerationAPIKey,
		Strictness: cfg.ModerationStrictness,
	}, logger)

	var blobStore blob.Store
	if cfg.S3Bucket != "" {
		blobStore = blob.NewS3Store(blob.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.PublicMediaBaseURL,
		})
	} else {
		blobStore = blob.NewLocalStore(cfg.MediaDir, cfg.PublicMediaBaseURL)
	}

	// --- Initialize services ---
	userService := services.NewUserService(st, cfg.AdminEmails, logger)
	followService := services.NewFollowService(st, fanout, logger)
	postService := services.NewPostService(st, fanout, cfg.AdminEmails, logger)
	pollService := services.NewPollService(st, cfg.AdminEmails, logger)
	eventService := services.NewEventService(st, cfg.AdminEmails, logger)
	slideshowService := services.NewSlideshowService(st, cfg.AdminEmails, logger)
	audioService := services.NewAudioService(st, cfg.AdminEmails, logger)
	storyService := services.NewStoryService(st, logger)
	reactionService := services.NewReactionService(st, fanout, logger)
	commentService := services.NewCommentService(st, fanout, cfg.AdminEmails, logger)
	notificationService := services.NewNotificationService(st, logger)
	reportService := services.NewReportService(st, cfg.AdminEmails, logger)
	tagService := services.NewTagService(st)
	feedService := services.NewFeedService(postService, pollService, eventService, slideshowService, audioService)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	handlers.NewUserHandler(userService).RegisterUserRoutes(api)
	handlers.NewFollowHandler(followService).RegisterFollowRoutes(api)
	handlers.NewPostHandler(postService).RegisterPostRoutes(api)
	handlers.NewPollHandler(pollService).RegisterPollRoutes(api)
	handlers.NewEventHandler(eventService).RegisterEventRoutes(api)
	handlers.NewSlideshowHandler(slideshowService).RegisterSlideshowRoutes(api)
	handlers.NewAudioHandler(audioService).RegisterAudioRoutes(api)
	handlers.NewStoryHandler(storyService).RegisterStoryRoutes(api)
	handlers.NewReactionHandler(reactionService).RegisterReactionRoutes(api)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notificationService).RegisterNotificationRoutes(api)
	handlers.NewReportHandler(reportService).RegisterReportRoutes(api)
	handlers.NewTagHandler(tagService).RegisterTagRoutes(api)
	handlers.NewFeedHandler(feedService).RegisterFeedRoutes(api)
	handlers.NewUploadHandler(blobStore, safetyChecker, cfg.MaxUploadBytes).RegisterUploadRoutes(api)

	logger.Info("All routes configured")
}
