package leadHandler

import (
	"LeadReceptionist/internal/api/lead"
	contextPkg "LeadReceptionist/pkg/context"
	"LeadReceptionist/pkg/handlerUtil"
	"LeadReceptionist/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *LeadHandler) Health(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).SendString("AI Receptionist is running")
}

// ReceiveWebhook accepts raw provider payloads. Unresolvable payloads are
// acknowledged without side effects.
func (h *LeadHandler) ReceiveWebhook(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	msg := lead.ParseInbound(string(ctx.Request().Header.ContentType()), ctx.Body())

	h.log.WithFields(log.Fields{
		"request_id":   requestID,
		"path":         ctx.Path(),
		"has_identity": msg.Identity != "",
		"has_text":     msg.Text != "",
	}).Debug("Webhook received")

	if msg.Identity == "" || msg.Text == "" {
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"status": "ignored"})
	}

	return h.processTurn(ctx, requestID, msg)
}

// ReceiveInbound accepts the already-normalised pair as JSON.
func (h *LeadHandler) ReceiveInbound(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var req lead.InboundMessage
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}
	// Whitespace passes the required tag but normalises to nothing.
	if n := lead.NormalizeInbound(req); n.Identity == "" || n.Text == "" {
		return errHandler.Handle(ctx, requestID, lead.ErrInvalidInbound, ctx.Path(), "receive_inbound")
	}

	return h.processTurn(ctx, requestID, req)
}

func (h *LeadHandler) processTurn(ctx *fiber.Ctx, requestID string, msg lead.InboundMessage) error {
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), turnTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	result, err := h.leadService.ProcessInbound(c, msg)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_inbound")
	}

	if result.Ignored {
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{"status": "ignored"})
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"status": "processed",
		"result": result,
	})
}
