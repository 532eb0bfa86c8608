package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/spot-discovery/internal/config"
	"github.com/spot-discovery/internal/delivery/http/handler"
	"github.com/spot-discovery/internal/delivery/http/middleware"
	"github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/pkg/utils"
)

// Handlers groups the HTTP handlers mounted by the server.
type Handlers struct {
	Spot    *handler.SpotHandler
	Review  *handler.ReviewHandler
	Profile *handler.ProfileHandler
	Health  *handler.HealthHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Spot Discovery",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the underlying fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.UserContext())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	if s.config.RateLimit.Max > 0 {
		s.app.Use(middleware.RateLimit(s.config.RateLimit.Max, s.config.RateLimit.Window))
	}
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")
	auth := middleware.RequireUser()

	api.Get("/health", s.handlers.Health.Health)

	// Spots
	api.Get("/spots", s.handlers.Spot.FindSpots)
	api.Post("/spots", auth, s.handlers.Spot.CreateSpot)
	api.Get("/spots/:id", s.handlers.Spot.GetSpot)
	api.Patch("/spots/:id", auth, s.handlers.Spot.UpdateSpot)
	api.Post("/spots/:id/verify", auth, s.handlers.Spot.VerifySpot)

	// Reviews and aggregates
	api.Get("/spots/:id/reviews", s.handlers.Review.ListReviews)
	api.Post("/spots/:id/reviews", auth, s.handlers.Review.SubmitReview)
	api.Get("/spots/:id/stats", s.handlers.Review.GetReviewStats)
	api.Post("/spots/:id/ratings/recompute", s.handlers.Review.RecomputeRatings)
	api.Post("/reviews/:id/helpful", auth, s.handlers.Review.VoteHelpful)

	// Current user's profile
	api.Get("/profile", auth, s.handlers.Profile.GetMyProfile)
	api.Post("/profile", auth, s.handlers.Profile.CreateProfile)
	api.Patch("/profile", auth, s.handlers.Profile.UpdateProfile)

	// Trust & badges
	users := api.Group("/users/:user_id")
	users.Get("/profile", s.handlers.Profile.GetProfile)
	users.Post("/trust-score", s.handlers.Profile.CalculateTrustScore)
	users.Post("/badges/evaluate", s.handlers.Profile.EvaluateBadges)
	users.Get("/badges", s.handlers.Profile.ListBadges)
	users.Post("/vouch", auth, s.handlers.Profile.Vouch)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные в хендлерах (404 маршрута,
// 405, ошибки fiber), в едином формате
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			code := errors.CodeInternal
			switch {
			case e.Code == fiber.StatusNotFound:
				code = errors.CodeNotFound
			case e.Code < fiber.StatusInternalServerError:
				code = errors.CodeValidation
			}
			return utils.SendError(c, errors.New(code, e.Message, e.Code))
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
