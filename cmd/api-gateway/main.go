package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/school-spotlight/events-api/api/swagger"
	"github.com/school-spotlight/events-api/internal/handler"
	"github.com/school-spotlight/events-api/internal/middleware"
	"github.com/school-spotlight/events-api/internal/models"
	"github.com/school-spotlight/events-api/internal/repository"
	"github.com/school-spotlight/events-api/internal/service"
	"github.com/school-spotlight/events-api/pkg/broker"
	"github.com/school-spotlight/events-api/pkg/cache"
	"github.com/school-spotlight/events-api/pkg/config"
	"github.com/school-spotlight/events-api/pkg/database"
	"github.com/school-spotlight/events-api/pkg/logger"
	corsmiddleware "github.com/school-spotlight/events-api/pkg/middleware/cors"
	reqidmiddleware "github.com/school-spotlight/events-api/pkg/middleware/requestid"
	"github.com/school-spotlight/events-api/pkg/storage"
)

// @title School Event Spotlight API
// @version 1.0.0
// @description Event submission, draft persistence and review portal
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, drafts fall back to session tier", "error", err)
		redisClient = nil
	}

	var localStore *storage.LocalStorage
	var images storage.ObjectStorage
	switch cfg.Uploads.Driver {
	case "s3":
		s3Store, err := storage.NewS3Storage(context.Background(), cfg.Uploads)
		if err != nil {
			logr.Sugar().Fatalw("failed to init s3 storage", "error", err)
		}
		images = s3Store
	default:
		localStore, err = storage.NewLocalStorage(cfg.Uploads.StorageDir, cfg.Uploads.PublicBaseURL)
		if err != nil {
			logr.Sugar().Fatalw("failed to init local storage", "error", err)
		}
		images = localStore
	}

	var notifier *broker.Publisher
	if cfg.Broker.Enabled {
		notifier, err = broker.NewPublisher(cfg.Broker)
		if err != nil {
			logr.Sugar().Warnw("broker unavailable, event notifications disabled", "error", err)
			notifier = nil
		} else {
			defer notifier.Close() //nolint:errcheck
		}
	}

	metricsService := service.NewMetricsService()
	validate := validator.New()

	eventRepo := repository.NewEventRepository(db)
	contentRepo := repository.NewContentTemplateRepository(db)
	userRepo := repository.NewUserRepository(db)

	draftStore := repository.NewMirroredDraftStore(
		repository.NewRedisDraftStore(redisClient, cfg.Drafts.TTL),
		repository.NewMemoryDraftStore(cfg.Drafts.SessionTTL),
		logr,
	)

	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		Audience:          []string{"spotlight-dashboard"},
	})
	var contentNotifier service.ContentNotifier
	if notifier != nil {
		contentNotifier = notifier
	}
	submissionService := service.NewSubmissionService(
		eventRepo,
		draftStore,
		images,
		service.NewSubmissionGuard(),
		contentNotifier,
		metricsService,
		service.SubmissionPolicy{
			DuplicateCheck:   cfg.Submissions.DuplicateCheck,
			DefaultTimeRange: cfg.Submissions.DefaultTimeRange,
			MaxImageBytes:    cfg.Uploads.MaxFileSizeBytes,
			AllowedMIMEs:     cfg.Uploads.AllowedMIMEs,
		},
		validate,
		logr,
	)
	draftService := service.NewDraftService(draftStore, metricsService, logr)
	eventService := service.NewEventService(eventRepo, metricsService, logr)
	contentService := service.NewContentService(contentRepo, validate, logr)
	exportService := service.NewExportService(eventRepo, nil, nil, logr)

	authHandler := handler.NewAuthHandler(authService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	draftHandler := handler.NewDraftHandler(draftService)
	eventHandler := handler.NewEventHandler(eventService)
	contentHandler := handler.NewContentHandler(contentService)
	exportHandler := handler.NewExportHandler(exportService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		api.POST("/events", submissionHandler.Submit)
		api.POST("/events/validate", submissionHandler.Validate)

		drafts := api.Group("/drafts")
		{
			drafts.GET("/:sessionID", draftHandler.Get)
			drafts.PUT("/:sessionID", draftHandler.Save)
			drafts.DELETE("/:sessionID", draftHandler.Clear)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.JWT(authService))
		{
			admin.GET("/me", authHandler.Me)

			events := admin.Group("/events")
			events.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				events.GET("", eventHandler.List)
				events.GET("/:id", eventHandler.Get)
				events.PATCH("/:id/status", eventHandler.UpdateStatus)
				events.DELETE("/:id", eventHandler.Delete)
			}

			content := admin.Group("/content")
			content.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleReviewer))
			{
				content.GET("/pending", contentHandler.ListPending)
				content.POST("/:id/review", contentHandler.Review)
			}
			admin.GET("/events/:id/content",
				middleware.RequireRoles(models.RoleAdmin, models.RoleReviewer),
				contentHandler.GetForEvent)

			if cfg.Exports.Enabled {
				exports := admin.Group("/exports")
				exports.Use(middleware.RequireRoles(models.RoleAdmin))
				{
					exports.GET("/events.csv", exportHandler.ExportCSV)
					exports.GET("/events.pdf", exportHandler.ExportPDF)
				}
			}

			if localStore != nil {
				signer := storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)
				uploadHandler := handler.NewUploadHandler(eventService, localStore, signer, cfg.Uploads.PublicBaseURL)
				admin.GET("/events/:id/image-link",
					middleware.RequireRoles(models.RoleAdmin),
					uploadHandler.SignImageLink)
				r.GET("/downloads/:token", uploadHandler.Download)
			}
		}
	}

	if localStore != nil {
		r.Static("/uploads", localStore.Dir())
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
