package config

import (
	"fmt"
	"os"

	"github.com/nassim127/seniorvoice-ai/database/postgres"
	commandHandler "github.com/nassim127/seniorvoice-ai/internal/api/command/handler"
	commandRepository "github.com/nassim127/seniorvoice-ai/internal/api/command/repository"
	commandService "github.com/nassim127/seniorvoice-ai/internal/api/command/service"
	"github.com/nassim127/seniorvoice-ai/internal/middleware"
	"github.com/nassim127/seniorvoice-ai/pkg/audio"
	"github.com/nassim127/seniorvoice-ai/pkg/nlp"
	"github.com/nassim127/seniorvoice-ai/pkg/redis"
	"github.com/nassim127/seniorvoice-ai/pkg/s3"
	"github.com/nassim127/seniorvoice-ai/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	s3Client    s3.ItfS3
	transcriber audio.ITranscriber
	nlpConfig   *nlp.Config
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithTranscriber() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before transcriber")
		}
		cfg := s.nlpConfig
		if cfg == nil {
			cfg = nlp.DefaultConfig()
		}
		s.transcriber = audio.NewTranscriber(s.log, cfg.Fillers)
		return nil
	}
}

func WithNLPConfig(cfg *nlp.Config) ServerOption {
	return func(s *Server) error {
		s.nlpConfig = cfg
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	commandRepo := commandRepository.New(s.db, s.log)
	commandServices := commandService.New(s.log, commandRepo, s.redisServer, s.s3Client, s.transcriber, s.nlpConfig, s.utils)
	commandHandlers := commandHandler.New(s.log, s.validator, s.middleware, commandServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, commandHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
