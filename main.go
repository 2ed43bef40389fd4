// Package main provides the main entry point for the LinkDeck link-in-bio service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkdeck/linkdeck/app/handlers"
	"github.com/linkdeck/linkdeck/app/middleware"
	"github.com/linkdeck/linkdeck/app/router"
	"github.com/linkdeck/linkdeck/app/services"
	businessflow "github.com/linkdeck/linkdeck/business_flow"
	"github.com/linkdeck/linkdeck/config"
	"github.com/linkdeck/linkdeck/models"
	"github.com/linkdeck/linkdeck/repository"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v3"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting LinkDeck application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initializeLogging(cfg.Logging)

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// initializeLogging routes the standard logger according to configuration.
// File output rotates through lumberjack.
func initializeLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" || cfg.FilePath == "" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		log.SetOutput(rotator)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.SocialLink{},
		&models.Document{},
		&models.LinkClick{},
		&models.ProfileView{},
	); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	// Override DB if provided in config
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeStorage builds the configured file storage backend
func initializeStorage(cfg config.StorageConfig) (services.StorageService, error) {
	switch cfg.Provider {
	case "s3":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return services.NewS3StorageService(ctx, services.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessKeySecret,
			UsePathStyle:    cfg.S3UsePathStyle,
			PublicBaseURL:   cfg.PublicBaseURL,
		})
	default:
		return services.NewLocalStorageService(cfg.UploadDir, cfg.PublicBaseURL)
	}
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	if rc != nil {
		cancel := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
		stopFuncs = append(stopFuncs, cancel)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	linkRepo := repository.NewSocialLinkRepository(db)
	docRepo := repository.NewDocumentRepository(db)
	clickRepo := repository.NewLinkClickRepository(db)
	viewRepo := repository.NewProfileViewRepository(db)

	// Initialize services
	storageService, err := initializeStorage(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	captchaService, err := services.NewCaptchaService(cfg.Captcha.ChallengeTTL, cfg.Captcha.AnglePadding, cfg.Captcha.ImageSizePx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize captcha service: %w", err)
	}

	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.RefreshTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Initialize flows
	resolveFlow := businessflow.NewResolveFlow(userRepo, docRepo, linkRepo, storageService, rc)
	analyticsFlow := businessflow.NewAnalyticsFlow(linkRepo, clickRepo, viewRepo)
	signupFlow := businessflow.NewSignupFlow(userRepo, tokenService, captchaService, storageService, db)
	loginFlow := businessflow.NewLoginFlow(userRepo, tokenService, storageService)
	profileFlow := businessflow.NewProfileFlow(userRepo, linkRepo, docRepo, storageService, db)
	linkFlow := businessflow.NewLinkFlow(linkRepo, db)
	documentFlow := businessflow.NewDocumentFlow(docRepo, storageService, cfg.Storage.MaxUploadSize, db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(signupFlow, loginFlow, captchaService)
	profileHandler := handlers.NewProfileHandler(profileFlow, analyticsFlow)
	linkHandler := handlers.NewLinkHandler(linkFlow)
	documentHandler := handlers.NewDocumentHandler(documentFlow)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsFlow)
	redirectHandler := handlers.NewRedirectHandler(resolveFlow, analyticsFlow, cfg.Redirect.Delay)

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	appRouter := router.NewFiberRouter(
		router.Config{
			AppName:            "LinkDeck",
			CORSAllowedOrigins: cfg.Security.AllowedOrigins,
			BodyLimit:          cfg.Server.BodyLimit,
			MetricsEnabled:     cfg.Metrics.Enabled,
		},
		authMiddleware,
		authHandler,
		profileHandler,
		linkHandler,
		documentHandler,
		analyticsHandler,
		redirectHandler,
	)

	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
