package leadHandler

import (
	leadService "LeadReceptionist/internal/api/lead/service"
	"LeadReceptionist/internal/middleware"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// turnTimeout bounds a whole turn: extraction, CRM and delivery run in sequence.
const turnTimeout = 60 * time.Second

type LeadHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	leadService leadService.ILeadService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ls leadService.ILeadService,
) *LeadHandler {
	return &LeadHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		leadService: ls,
	}
}

// StartWebhook mounts the provider-facing routes outside the versioned API.
func (h *LeadHandler) StartWebhook(app fiber.Router) {
	app.Get("/", h.Health)
	app.Post("/webhook", h.middleware.NewRateLimiter, h.ReceiveWebhook)
}

func (h *LeadHandler) Start(srv fiber.Router) {
	leads := srv.Group("/leads")

	leads.Post("/inbound", h.middleware.NewRateLimiter, h.ReceiveInbound)

	// Operator endpoints
	leads.Get("/sessions/:identity", h.middleware.NewTokenMiddleware, h.GetSession)
	leads.Get("/recovery", h.middleware.NewTokenMiddleware, h.ListRecovery)
}
