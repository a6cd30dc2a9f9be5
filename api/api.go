package api

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"

	"github.com/papercomputeco/crucible/pkg/resolver"
	"github.com/papercomputeco/crucible/pkg/storage"
)

// Server is the API server for resolving and querying element combinations.
type Server struct {
	config   Config
	resolver *resolver.Resolver
	storer   storage.Driver
	logger   *slog.Logger
	app      *fiber.App
}

// NewServer creates a new API server.
// The storer is injected to allow sharing with other components; the
// resolver owns the generate-clean-dedup-store pipeline behind
// /get_combination.
func NewServer(config Config, res *resolver.Resolver, storer storage.Driver, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s := &Server{
		config:   config,
		resolver: res,
		storer:   storer,
		logger:   logger,
		app:      app,
	}

	// Browser clients call this API directly, so CORS is wide open.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, OPTIONS",
		AllowHeaders: "Content-Type",
		MaxAge:       3600,
	}))
	app.Use(s.requestID)
	app.Use(s.requestLog)

	app.Get("/ping", s.handlePing)
	app.Get("/get_combination", s.handleGetCombination)
	app.Get("/stats", s.handleStats)
	app.Post("/submit-score", s.handleSubmitScore)

	return s
}

// requestID tags every request with a UUID for log correlation.
func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get("X-Request-Id")
	if id == "" {
		id = uuid.NewString()
	}
	c.Locals("request_id", id)
	c.Set("X-Request-Id", id)
	return c.Next()
}

// requestLog logs one line per completed request.
func (s *Server) requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	s.logger.Info("request",
		"request_id", c.Locals("request_id"),
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)

	return err
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		"listen", s.config.ListenAddr,
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
