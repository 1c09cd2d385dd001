package server

import (
	"github.com/TomPannier1/Twist/internal/auth"
	"github.com/TomPannier1/Twist/internal/cache"
	"github.com/TomPannier1/Twist/internal/config"
	"github.com/TomPannier1/Twist/internal/notification"
	"github.com/TomPannier1/Twist/internal/social"
	"github.com/TomPannier1/Twist/internal/stream"
	"github.com/TomPannier1/Twist/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

// Close releases what the server itself started.
func (s *Server) Close() error {
	return s.Stream.Close()
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authSvc := auth.NewService(s.Cfg.JWTSecret)
	session := auth.SessionMiddleware(authSvc)
	jwtMiddleware := auth.JWTMiddleware(authSvc)

	users := user.NewService(s.DB)
	notifications := notification.NewService(s.DB, s.Stream)
	posts := social.NewService(s.DB, notifications, cache.New(s.Redis, s.Cfg.PageCacheKey))

	auth.RegisterRoutes(s.App.Group("/auth"), authSvc)
	user.RegisterRoutes(s.App.Group("/users"), users, session)
	social.RegisterRoutes(s.App.Group("/social"), posts, users, session)
	notification.RegisterRoutes(s.App.Group("/notifications"), notifications, users, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, users, jwtMiddleware)
}
