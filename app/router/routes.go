// Package router provides HTTP routing, middleware configuration, and server setup for the web application
package router

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/compress"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linkdeck/linkdeck/app/dto"
	"github.com/linkdeck/linkdeck/app/handlers"
	"github.com/linkdeck/linkdeck/app/middleware"
	"github.com/linkdeck/linkdeck/utils"
)

// Router interface for HTTP routing
type Router interface {
	SetupRoutes()
	Start(address string) error
	GetApp() *fiber.App
}

// Config carries the router's environment-dependent settings
type Config struct {
	AppName            string
	CORSAllowedOrigins []string
	BodyLimit          int
	MetricsEnabled     bool
}

// FiberRouter implements Router using Fiber v3
type FiberRouter struct {
	app              *fiber.App
	config           Config
	authMiddleware   *middleware.AuthMiddleware
	authHandler      handlers.AuthHandlerInterface
	profileHandler   handlers.ProfileHandlerInterface
	linkHandler      handlers.LinkHandlerInterface
	documentHandler  handlers.DocumentHandlerInterface
	analyticsHandler handlers.AnalyticsHandlerInterface
	redirectHandler  handlers.RedirectHandlerInterface
}

// NewFiberRouter creates a new Fiber router
func NewFiberRouter(
	config Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler handlers.AuthHandlerInterface,
	profileHandler handlers.ProfileHandlerInterface,
	linkHandler handlers.LinkHandlerInterface,
	documentHandler handlers.DocumentHandlerInterface,
	analyticsHandler handlers.AnalyticsHandlerInterface,
	redirectHandler handlers.RedirectHandlerInterface,
) Router {
	bodyLimit := config.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = 16 * 1024 * 1024 // document uploads
	}

	app := fiber.New(fiber.Config{
		AppName:      config.AppName,
		ServerHeader: "LinkDeck",
		ErrorHandler: errorHandler,
		BodyLimit:    bodyLimit,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	return &FiberRouter{
		app:              app,
		config:           config,
		authMiddleware:   authMiddleware,
		authHandler:      authHandler,
		profileHandler:   profileHandler,
		linkHandler:      linkHandler,
		documentHandler:  documentHandler,
		analyticsHandler: analyticsHandler,
		redirectHandler:  redirectHandler,
	}
}

// SetupRoutes configures all application routes
func (r *FiberRouter) SetupRoutes() {
	log.Println("Setting up routes...")

	r.setupMiddleware()

	if r.config.MetricsEnabled {
		r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := r.app.Group("/api/v1")

	// Health check route (no rate limiting)
	api.Get("/health", r.healthCheck)

	// General rate limiting for all API routes
	api.Use(limiter.New(limiter.Config{
		Max:        2000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	// Public resolution and profile surface
	api.Get("/resolve/:username/:identifier", r.redirectHandler.Resolve)
	api.Get("/profiles/:username", r.profileHandler.GetPublicProfile)

	// Auth routes with stricter rate limiting
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: rateLimitReached,
	}))

	auth.Get("/captcha", r.authHandler.GetCaptcha)
	auth.Post("/signup", r.authHandler.Signup)
	auth.Post("/login", r.authHandler.Login)
	auth.Post("/refresh", r.authHandler.RefreshToken)

	// Authenticated dashboard routes
	authed := api.Group("", r.authMiddleware.Authenticate())

	authed.Get("/profile", r.profileHandler.GetMyProfile)
	authed.Put("/profile", r.profileHandler.UpdateProfile)
	authed.Post("/profile/avatar", r.profileHandler.UploadAvatar)

	authed.Get("/links", r.linkHandler.ListLinks)
	authed.Post("/links", r.linkHandler.CreateLink)
	authed.Put("/links/reorder", r.linkHandler.ReorderLinks)
	authed.Put("/links/:id", r.linkHandler.UpdateLink)
	authed.Delete("/links/:id", r.linkHandler.DeleteLink)

	authed.Get("/documents", r.documentHandler.ListDocuments)
	authed.Post("/documents", r.documentHandler.UploadDocument)
	authed.Put("/documents/:id", r.documentHandler.UpdateDocument)
	authed.Delete("/documents/:id", r.documentHandler.DeleteDocument)

	authed.Get("/analytics", r.analyticsHandler.GetAnalytics)
	authed.Get("/analytics/export", r.analyticsHandler.ExportClicks)

	// The public redirect surface is registered last so every other route
	// keeps precedence over /:username/:identifier
	r.app.Get("/:username/:identifier", r.redirectHandler.Visit)

	// Not found handler
	r.app.Use(r.notFoundHandler)

	log.Println("Routes configured successfully")
}

// setupMiddleware configures global middleware
func (r *FiberRouter) setupMiddleware() {
	// Request ID middleware - must be first
	r.app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return generateRequestID()
		},
	}))

	// Security headers middleware
	r.app.Use(helmet.New(helmet.Config{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		XDNSPrefetchControl:   "off",
		XDownloadOptions:      "noopen",
		XPermittedCrossDomain: "none",
	}))

	r.app.Use(cors.New(cors.Config{
		AllowOrigins: r.config.CORSAllowedOrigins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			"X-Request-ID",
			"Cache-Control",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	r.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
		Next: func(c fiber.Ctx) bool {
			contentType := c.Get("Content-Type")
			return utils.ContainsAny(contentType, "image/", "video/", "audio/")
		},
	}))

	// Structured request logging
	r.app.Use(logger.New(logger.Config{
		Format:     `{"time":"${time}","pid":"${pid}","request_id":"${locals:requestid}","level":"info","method":"${method}","path":"${path}","protocol":"${protocol}","ip":"${ip}","user_agent":"${ua}","status":${status},"latency":"${latency}","bytes_in":${bytesReceived},"bytes_out":${bytesSent},"referer":"${referer}"}` + "\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "UTC",
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/api/v1/health"
		},
	}))

	if r.config.MetricsEnabled {
		r.app.Use(middleware.Metrics())
	}

	// Recovery middleware with panic logging
	r.app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			log.Printf(`{"time":"%s","level":"error","request_id":"%s","event":"panic","error":"%v","path":"%s","method":"%s","ip":"%s"}`,
				utils.UTCNow().Format(time.RFC3339),
				c.Locals("requestid"),
				e,
				c.Path(),
				c.Method(),
				c.IP(),
			)
		},
	}))
}

// Start starts the HTTP server
func (r *FiberRouter) Start(address string) error {
	log.Printf("Starting server on %s", address)
	return r.app.Listen(address)
}

// GetApp returns the Fiber app instance
func (r *FiberRouter) GetApp() *fiber.App {
	return r.app
}

// Health check endpoint
func (r *FiberRouter) healthCheck(c fiber.Ctx) error {
	return c.JSON(dto.APIResponse{
		Success: true,
		Message: "Service is healthy",
		Data: fiber.Map{
			"status":    "healthy",
			"timestamp": utils.UTCNow().Unix(),
		},
	})
}

func (r *FiberRouter) notFoundHandler(c fiber.Ctx) error {
	requestID := c.Locals("requestid")

	return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{
		Success: false,
		Message: "The requested resource was not found",
		Error: dto.ErrorDetail{
			Code: "NOT_FOUND",
			Details: fiber.Map{
				"path":       c.Path(),
				"method":     c.Method(),
				"request_id": requestID,
			},
		},
	})
}

func rateLimitReached(c fiber.Ctx) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{
		Success: false,
		Message: "Too many requests. Please try again later.",
		Error: dto.ErrorDetail{
			Code: "RATE_LIMIT_EXCEEDED",
		},
	})
}

// Global error handler
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	log.Printf("Error %d: %v", code, err)

	requestID := c.Locals("requestid")

	return c.Status(code).JSON(dto.APIResponse{
		Success: false,
		Message: "An internal server error occurred",
		Error: dto.ErrorDetail{
			Code: "INTERNAL_ERROR",
			Details: fiber.Map{
				"timestamp":  utils.UTCNow().Unix(),
				"request_id": requestID,
			},
		},
	})
}

// generateRequestID creates a unique request ID
func generateRequestID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
