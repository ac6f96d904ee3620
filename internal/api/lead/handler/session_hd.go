package leadHandler

import (
	contextPkg "LeadReceptionist/pkg/context"
	"LeadReceptionist/pkg/handlerUtil"
	jwtPkg "LeadReceptionist/pkg/jwt"
	"LeadReceptionist/pkg/log"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *LeadHandler) GetSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	identity, err := url.PathUnescape(ctx.Params("identity"))
	if err != nil || identity == "" {
		return errHandler.HandleValidationError(ctx, requestID, errors.New("identity is required"), ctx.Path())
	}

	operator, _ := jwtPkg.GetOperatorLoginData(ctx)
	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"identity":    identity,
		"operator_id": operator.ID,
	}).Info("Operator fetched lead session")

	session, err := h.leadService.GetSession(c, identity)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_session")
	}

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, session)
}

func (h *LeadHandler) ListRecovery(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 5*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	limit, err := strconv.ParseInt(ctx.Query("limit", "50"), 10, 64)
	if err != nil || limit <= 0 || limit > 500 {
		return errHandler.HandleValidationError(ctx, requestID, errors.New("limit must be between 1 and 500"), ctx.Path())
	}

	records, err := h.leadService.ListRecovery(c, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_recovery")
	}

	operator, _ := jwtPkg.GetOperatorLoginData(ctx)
	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"operator_id": operator.ID,
		"count":       len(records),
	}).Info("Operator listed recovery queue")

	return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
		"records": records,
		"count":   len(records),
	})
}
