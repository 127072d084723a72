package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"his-backend/config"
	deliveryHttp "his-backend/internal/delivery/http"
	"his-backend/internal/delivery/http/handler"
	"his-backend/internal/delivery/http/middleware"
	"his-backend/internal/infrastructure/cache"
	"his-backend/internal/infrastructure/database"
	"his-backend/internal/infrastructure/storage"
	"his-backend/internal/repository"
	"his-backend/internal/usecase"
	"his-backend/pkg/password"
	"his-backend/pkg/token"
	"his-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const migrationsDir = "db/migrations"

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.RunMigrations(db, migrationsDir); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize object storage
	minioClient, err := storage.NewMinioClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := minioClient.EnsureBucket(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure storage bucket: %w", err)
	}

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient, minioClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, minioClient *storage.MinioClient) (*http.Server, error) {
	// Initialize token codec and password hasher
	codec, err := token.NewCodec(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	hasher := password.NewHasher(0)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	profileRepo := repository.NewProfileRepository()
	sessionRepo := repository.NewSessionRepository()
	visitRepo := repository.NewVisitRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	labRepo := repository.NewLabOrderRepository()
	invoiceRepo := repository.NewInvoiceRepository()
	referralRepo := repository.NewReferralRepository()
	wearableRepo := repository.NewWearableRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize usecases
	resolver := usecase.NewProfileResolver(profileRepo)
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, profileRepo, sessionRepo, resolver, codec, hasher)
	userCreationUsecase := usecase.NewUserCreationUsecase(db, log, userRepo, profileRepo, hasher)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, profileRepo, minioClient)
	visitUsecase := usecase.NewVisitUsecase(db, log, visitRepo, profileRepo)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, visitRepo)
	labUsecase := usecase.NewLabUsecase(db, log, labRepo, visitRepo)
	invoiceUsecase := usecase.NewInvoiceUsecase(db, log, invoiceRepo, visitRepo)
	referralUsecase := usecase.NewReferralUsecase(db, log, referralRepo, visitRepo)
	wearableUsecase := usecase.NewWearableUsecase(db, log, wearableRepo, profileRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userCreationUsecase, customValidator)
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator)
	visitHandler := handler.NewVisitHandler(visitUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)
	labHandler := handler.NewLabHandler(labUsecase, customValidator)
	invoiceHandler := handler.NewInvoiceHandler(invoiceUsecase, customValidator)
	referralHandler := handler.NewReferralHandler(referralUsecase, customValidator)
	wearableHandler := handler.NewWearableHandler(wearableUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUsecase)
	corsMiddleware := middleware.NewCORSMiddleware()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, log, cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginWindow)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		profileHandler,
		visitHandler,
		prescriptionHandler,
		labHandler,
		invoiceHandler,
		referralHandler,
		wearableHandler,
		authMiddleware,
		corsMiddleware,
		rateLimitMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
