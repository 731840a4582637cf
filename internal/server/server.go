package server

import (
	"backend-stravamap/internal/cache"
	"backend-stravamap/internal/config"
	"backend-stravamap/internal/mapdata"
	"backend-stravamap/internal/strava"
	"backend-stravamap/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	App   *fiber.App
	Cfg   config.Config
	Store cache.Store
	Hub   *stream.Hub
}

func NewServer(cfg config.Config, store cache.Store, api strava.API, hub *stream.Hub) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	s := &Server{
		App:   app,
		Cfg:   cfg,
		Store: store,
		Hub:   hub,
	}

	registerRoutes(s, api)
	return s
}

func registerRoutes(s *Server, api strava.API) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	mapdata.RegisterRoutes(s.App.Group("/strava"), mapdata.NewService(s.Cfg, s.Store, api))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Hub)

	if s.Cfg.StaticDir != "" {
		s.App.Static("/", s.Cfg.StaticDir)
	}
}
