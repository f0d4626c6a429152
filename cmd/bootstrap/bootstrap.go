package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"eventplanner/config"
	deliveryHttp "eventplanner/internal/delivery/http"
	"eventplanner/internal/delivery/http/handler"
	"eventplanner/internal/delivery/http/middleware"
	"eventplanner/internal/domain/entity"
	"eventplanner/internal/infrastructure/cache"
	"eventplanner/internal/infrastructure/database"
	"eventplanner/internal/infrastructure/storage"
	"eventplanner/internal/repository"
	"eventplanner/internal/service"
	"eventplanner/internal/usecase"
	"eventplanner/pkg/jwt"
	"eventplanner/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Storage     storage.Storage
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logrus.Info("Database migrated successfully")
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize object storage
	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.Storage = store
	logrus.Infof("Storage driver %q ready", cfg.Storage.Driver)

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient, store)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	if cfg.IsProduction() {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, store storage.Storage) *http.Server {
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	eventRepo := repository.NewEventRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	attendeeRepo := repository.NewCrudRepository[entity.EventAttendee](repository.AttendeeResource)
	attendeeViews := repository.NewViewRepository[entity.AttendeeView](repository.AttendeeViewResource)
	taskRepo := repository.NewCrudRepository[entity.AttendeeTask](repository.AttendeeTaskResource)
	feedbackRepo := repository.NewCrudRepository[entity.Feedback](repository.FeedbackResource)
	feedbackViews := repository.NewViewRepository[entity.FeedbackView](repository.FeedbackViewResource)
	reportRepo := repository.NewCrudRepository[entity.Report](repository.ReportResource)
	reportViews := repository.NewViewRepository[entity.ReportView](repository.ReportViewResource)
	blockRepo := repository.NewCrudRepository[entity.BlockUser](repository.BlockResource)
	blockViews := repository.NewViewRepository[entity.BlockView](repository.BlockViewResource)
	questionTypeRepo := repository.NewCrudRepository[entity.QuestionType](repository.QuestionTypeResource)
	questionResponseRepo := repository.NewCrudRepository[entity.QuestionTypeResponse](repository.QuestionResponseResource)
	categoryRepo := repository.NewCrudRepository[entity.Category](repository.CategoryResource)
	notificationTypeRepo := repository.NewCrudRepository[entity.NotificationType](repository.NotificationTypeResource)
	suggestedItemRepo := repository.NewCrudRepository[entity.SuggestedItem](repository.SuggestedItemResource)
	notificationRepo := repository.NewCrudRepository[entity.Notification](repository.NotificationResource)
	notificationViews := repository.NewViewRepository[entity.NotificationView](repository.NotificationViewResource)
	faqRepo := repository.NewCrudRepository[entity.FAQ](repository.FAQResource)
	uploadRepo := repository.NewCrudRepository[entity.Upload](repository.UploadResource)

	// Initialize services
	tokenStore := service.NewTokenStore(redisClient)
	otpStore := service.NewOTPStore(redisClient, cfg.OTP.Expiry, cfg.OTP.MaxAttempts)
	mailer := service.NewLogMailer(cfg.Mail.From, log)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, tokenStore, otpStore, mailer, auditService)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, uploadRepo, tokenStore, auditService)
	eventUsecase := usecase.NewEventUsecase(db, log, eventRepo, attendeeRepo, attendeeViews, uploadRepo, auditService)
	taskUsecase := usecase.NewAttendeeTaskUsecase(db, log, taskRepo, eventRepo, userRepo)
	feedbackUsecase := usecase.NewFeedbackUsecase(db, log, feedbackRepo, feedbackViews, auditService)
	reportUsecase := usecase.NewReportUsecase(db, log, reportRepo, reportViews, userRepo, auditService)
	blockUsecase := usecase.NewBlockUsecase(db, log, blockRepo, blockViews, userRepo, auditService)
	questionUsecase := usecase.NewQuestionUsecase(db, log, questionTypeRepo, questionResponseRepo, auditService)
	categoryUsecase := usecase.NewCategoryUsecase(db, log, categoryRepo)
	notificationTypeUsecase := usecase.NewNotificationTypeUsecase(db, log, notificationTypeRepo)
	suggestedItemUsecase := usecase.NewSuggestedItemUsecase(db, log, suggestedItemRepo)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo, notificationViews, notificationTypeRepo, auditService)
	faqUsecase := usecase.NewFAQUsecase(db, log, faqRepo, auditService)
	uploadUsecase := usecase.NewUploadUsecase(db, log, uploadRepo, store)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:             handler.NewAuthHandler(authUsecase, customValidator),
		User:             handler.NewUserHandler(userUsecase, customValidator),
		Event:            handler.NewEventHandler(eventUsecase, customValidator),
		AttendeeTask:     handler.NewAttendeeTaskHandler(taskUsecase, customValidator),
		Feedback:         handler.NewFeedbackHandler(feedbackUsecase, customValidator),
		Report:           handler.NewReportHandler(reportUsecase, customValidator),
		Block:            handler.NewBlockHandler(blockUsecase, customValidator),
		Question:         handler.NewQuestionHandler(questionUsecase, customValidator),
		Category:         handler.NewCatalogHandler(categoryUsecase, customValidator, "Category"),
		NotificationType: handler.NewCatalogHandler(notificationTypeUsecase, customValidator, "Notification type"),
		SuggestedItem:    handler.NewSuggestedItemHandler(suggestedItemUsecase, customValidator),
		Notification:     handler.NewNotificationHandler(notificationUsecase, customValidator),
		FAQ:              handler.NewFAQHandler(faqUsecase, customValidator),
		Upload:           handler.NewUploadHandler(uploadUsecase, cfg.Storage.MaxUploadSize),
		AuditLog:         handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigin)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	options := deliveryHttp.Options{MetricsEnabled: cfg.Metrics.Enabled}
	// Local files are served by the API itself when their public URL is a path.
	if strings.EqualFold(cfg.Storage.Driver, storage.DriverLocal) && strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		options.StaticPrefix = cfg.Storage.PublicBaseURL
		options.StaticDir = cfg.Storage.LocalDir
	}

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, loggingMiddleware, options)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
