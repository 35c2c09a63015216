package app

import (
	"database/sql"
	"fmt"
	"time"

	"onboarding_backend/internal/config"
	"onboarding_backend/internal/handlers"
	"onboarding_backend/internal/logger"
	"onboarding_backend/internal/middleware"
	"onboarding_backend/internal/models"
	"onboarding_backend/internal/observability/metrics"
	"onboarding_backend/internal/repositories"
	"onboarding_backend/internal/routes"
	"onboarding_backend/internal/services"
	"onboarding_backend/internal/services/dto"
	"onboarding_backend/internal/storage"
	"onboarding_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(&models.Applicant{}, &models.Document{}); err != nil {
		logger.Fatal("Failed to migrate schema", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires storage, services and handlers onto a gin engine. The
// test harness calls this directly against a test database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		UseSSL:     cfg.Storage.UseSSL,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serverMetrics := metrics.NewHTTPServerMetrics("onboarding")

	serviceContainer := initializeServices(cfg, storageInstance, serverMetrics)
	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance, serverMetrics)

	ginRouter := initializeGinRouter(gormDB, serverMetrics)
	routes.RegisterRoutes(ginRouter, appHandlers, serverMetrics)

	return ginRouter
}

func initializeServices(cfg *config.Config, storageInstance storage.Storage, m *metrics.HTTPServerMetrics) *services.ServiceContainer {
	applicantRepo := repositories.NewApplicantRepository()
	documentRepo := repositories.NewDocumentRepository()

	notifierService := services.NewNotifierService(
		cfg.Webhook.URL,
		time.Duration(cfg.Webhook.TimeoutSeconds)*time.Second,
		func(status string) { m.RecordWebhookDelivery("onboarding", status) },
	)

	uploadConfig := &services.UploadConfig{
		MaxFileSize:     cfg.Upload.MaxSize,
		AdditionalSlots: cfg.Upload.AdditionalSlots,
		FormVariant:     dto.FormVariant(cfg.Form.Variant),
		StorageProvider: cfg.Storage.Type,
	}

	sessionService := services.NewSessionService(applicantRepo)
	uploadService := services.NewUploadService(applicantRepo, documentRepo, storageInstance, notifierService, uploadConfig)

	return &services.ServiceContainer{
		SessionService:  sessionService,
		UploadService:   uploadService,
		NotifierService: notifierService,
	}
}

func initializeHandlers(cfg *config.Config, serviceContainer *services.ServiceContainer, storageInstance storage.Storage, m *metrics.HTTPServerMetrics) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	documentRepo := repositories.NewDocumentRepository()

	return &handlers.AppHandlers{
		SessionHandler: handlers.NewSessionHandler(baseHandler, serviceContainer.SessionService, m),
		UploadHandler: handlers.NewUploadHandler(
			baseHandler,
			serviceContainer.UploadService,
			dto.FormVariant(cfg.Form.Variant),
			cfg.Upload.AdditionalSlots,
			m,
		),
		AdvertHandler: handlers.NewAdvertHandler(baseHandler, cfg),
		FileHandler:   handlers.NewFileHandler(baseHandler, storageInstance, documentRepo),
	}
}

func initializeGinRouter(db *gorm.DB, m *metrics.HTTPServerMetrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(m.Middleware("onboarding"))
	router.Use(middleware.DBMiddleware(db))
	return router
}
