// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	articleRepo    repository.ArticleRepository
	commentRepo    repository.CommentRepository
	likeRepo       repository.LikeRepository
	userService    *service.UserService
	articleService *service.ArticleService
	commentService *service.CommentService
	likeService    *service.LikeService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Used by tests and by bootstrap layers that establish DB/Redis themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("inkwell-api"),
		userRepo:       repository.NewUserRepository(db),
		articleRepo:    repository.NewArticleRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
	}

	server.userService = service.NewUserService(server.userRepo)
	server.articleService = service.NewArticleService(server.articleRepo, server.userService.IsAdmin)
	server.commentService = service.NewCommentService(server.commentRepo, server.articleRepo, server.userService.IsAdmin)
	server.likeService = service.NewLikeService(server.likeRepo, server.articleRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// After requestid and context middleware so log lines carry the request ID.
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP).
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Inkwell Metrics Dashboard",
	}))

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public article routes. OptionalAuth resolves the principal for the
	// per-user liked flag without requiring a token.
	articles := api.Group("/articles", middleware.OptionalAuth)
	articles.Get("/", s.ListArticles)
	articles.Get("/:id/comments", s.ListComments)
	articles.Get("/:id", s.GetArticle)

	api.Get("/comments/:id", middleware.OptionalAuth, s.GetComment)

	// Public user routes
	users := api.Group("/users")
	users.Get("/:username", s.GetUserProfile)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	me := protected.Group("/me")
	me.Get("/", s.GetMyProfile)
	me.Put("/", s.UpdateMyProfile)
	me.Get("/comments", s.GetMyComments)
	me.Get("/likes", s.GetMyLikes)

	authored := protected.Group("/articles")
	authored.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_article"), s.CreateArticle)
	// Specific /:id/:resource routes before the generic /:id routes.
	authored.Post("/:id/comments", middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	authored.Post("/:id/like", s.LikeArticle)
	authored.Post("/:id/toggle-like", s.ToggleLike)
	authored.Put("/:id", s.UpdateArticle)
	authored.Patch("/:id", s.UpdateArticle)
	authored.Delete("/:id", s.DeleteArticle)

	comments := protected.Group("/comments")
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	likes := protected.Group("/likes")
	likes.Delete("/:id", s.DeleteLike)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/articles", s.AdminListArticles)
	admin.Post("/articles/:id/restore", s.RestoreArticle)
	admin.Delete("/articles/:id/purge", s.PurgeArticle)
	admin.Post("/comments/:id/restore", s.RestoreComment)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades gracefully without Redis; readiness only reports it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases server-owned resources. The Fiber app itself is shut
// down by the caller.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userID is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("userID").(uint)

		admin, err := s.userService.IsAdmin(c.Context(), userID)
		if err != nil {
			return models.RespondWithError(c, models.NewInternalError(err))
		}
		if !admin {
			return models.RespondWithError(c, models.NewForbiddenError("Admin access required"))
		}

		return c.Next()
	}
}
