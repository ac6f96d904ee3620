package config

import (
	"LeadReceptionist/database/postgres"
	"LeadReceptionist/internal/api/lead"
	leadHandler "LeadReceptionist/internal/api/lead/handler"
	leadRepository "LeadReceptionist/internal/api/lead/repository"
	leadService "LeadReceptionist/internal/api/lead/service"
	"LeadReceptionist/internal/middleware"
	"LeadReceptionist/pkg/crm"
	"LeadReceptionist/pkg/extraction"
	"LeadReceptionist/pkg/gemini"
	chatGPT "LeadReceptionist/pkg/openai"
	"LeadReceptionist/pkg/pubsub"
	"LeadReceptionist/pkg/redis"
	"LeadReceptionist/pkg/sms"
	"LeadReceptionist/pkg/utils"
	"LeadReceptionist/pkg/whatsapp"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	leadConfig     lead.Config
	redisServer    redis.IRedis
	publisher      pubsub.Publisher
	extractor      extraction.IExtractor
	messenger      leadService.IMessenger
	whatsappClient whatsapp.IWhatsappSender
	crmClient      crm.ICRM
	leadHandler    *leadHandler.LeadHandler
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
	if server.extractor == nil {
		return nil, fmt.Errorf("extractor is required")
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

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithLeadConfig() ServerOption {
	return func(s *Server) error {
		if s.validator == nil {
			return fmt.Errorf("validator must be initialized before lead config")
		}
		cfg, err := lead.LoadConfig(s.validator)
		if err != nil {
			return err
		}
		s.leadConfig = cfg
		return nil
	}
}

// WithDatabase connects only when a component needs Postgres.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if crmDriver() != "postgres" {
			return nil
		}
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithPublisher() ServerOption {
	return func(s *Server) error {
		publisher, err := pubsub.NewFromEnv(s.log)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP: %w", err)
		}
		s.publisher = publisher
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

func WithExtractor() ServerOption {
	return func(s *Server) error {
		switch provider := strings.ToLower(os.Getenv("EXTRACTOR_PROVIDER")); provider {
		case "", "openai":
			s.extractor = chatGPT.NewChatGPT()
		case "gemini":
			client, err := gemini.NewGeminiClient()
			if err != nil {
				return fmt.Errorf("failed to create Gemini client: %w", err)
			}
			s.extractor = client
		default:
			return fmt.Errorf("unknown EXTRACTOR_PROVIDER %q", provider)
		}
		return nil
	}
}

func WithMessenger() ServerOption {
	return func(s *Server) error {
		switch driver := strings.ToLower(os.Getenv("MESSAGING_DRIVER")); driver {
		case "", "sms":
			s.messenger = sms.New(sms.ConfigFromEnv())
		case "whatsapp":
			client, err := whatsapp.New()
			if err != nil {
				if s.log != nil {
					s.log.Errorf("Failed to initialize WhatsApp client: %v", err)
				}
				return fmt.Errorf("failed to create WhatsApp client: %w", err)
			}
			s.whatsappClient = client
			s.messenger = client
		default:
			return fmt.Errorf("unknown MESSAGING_DRIVER %q", driver)
		}
		return nil
	}
}

func WithCRM() ServerOption {
	return func(s *Server) error {
		switch driver := crmDriver(); driver {
		case "http":
			s.crmClient = crm.NewHTTP()
		case "postgres":
			if s.db == nil {
				return fmt.Errorf("database must be initialized before the postgres CRM")
			}
			if s.utils == nil {
				s.utils = utils.New()
			}
			s.crmClient = crm.NewPostgres(s.db, s.log, s.utils)
		default:
			return fmt.Errorf("unknown CRM_DRIVER %q", driver)
		}
		return nil
	}
}

func crmDriver() string {
	driver := strings.ToLower(os.Getenv("CRM_DRIVER"))
	if driver == "" {
		return "http"
	}
	return driver
}

func (s *Server) RegisterHandler() {
	if s.utils == nil {
		s.utils = utils.New()
	}
	if s.validator == nil {
		s.validator = NewValidator()
	}
	if s.middleware == nil {
		s.middleware = middleware.New(s.log)
	}
	if s.leadConfig.HistoryWindow == 0 {
		s.leadConfig = lead.DefaultConfig()
	}

	// Lead domain
	leadRepo := leadRepository.New(s.log)
	leadServices := leadService.NewLeadService(
		s.log,
		leadRepo,
		s.extractor,
		s.messenger,
		s.crmClient,
		s.redisServer,
		s.publisher,
		s.utils,
		s.leadConfig,
	)
	s.leadHandler = leadHandler.New(s.log, s.validator, s.middleware, leadServices)

	s.handlers = append(s.handlers, s.leadHandler)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	s.leadHandler.StartWebhook(s.engine)

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "10000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	err := s.engine.Shutdown()

	if closer, ok := s.extractor.(interface{ Close() }); ok {
		closer.Close()
	}
	if s.whatsappClient != nil {
		s.whatsappClient.Disconnect()
	}
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.db != nil {
		s.db.Close()
	}

	return err
}
