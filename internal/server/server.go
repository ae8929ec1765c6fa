package server

import (
	"log"

	"ai-estimator-be/internal/bootstrap"
	"ai-estimator-be/internal/config"
	"ai-estimator-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api")

	// Websocket endpoint verifies its own token (browsers cannot set
	// headers on upgrade requests, so the token arrives as a query param).
	c.NotificationHandler.RegisterRoutes(api)

	protected := api.Group("", serverutils.NewJwtMiddleware(cfg.Supabase.JWTSecret))

	c.AuthController.RegisterRoutes(protected)
	c.OrganizationController.RegisterRoutes(protected)
	c.ProfileController.RegisterRoutes(protected)
	c.DocumentController.RegisterRoutes(protected)
	c.ChatController.RegisterRoutes(protected)
	c.PricingController.RegisterRoutes(protected)
	c.SkillController.RegisterRoutes(protected)
}
