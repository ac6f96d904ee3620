package handlerUtil

import (
	"LeadReceptionist/internal/api/lead"
	"LeadReceptionist/pkg/log"
	"LeadReceptionist/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle maps domain errors to responses. Only the domain message is
// returned; wrapped collaborator causes stay in the logs.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	switch {
	case errors.Is(err, lead.ErrMalformedExtraction):
		h.logger.WithFields(fields).Error("Extraction returned an unparseable proposal")
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: lead.ErrMalformedExtraction.Error(),
			Code:  "MALFORMED_EXTRACTION",
		})

	case errors.Is(err, lead.ErrExtractionFailed):
		h.logger.WithFields(fields).Error("Extraction call failed")
		return c.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
			Error: lead.ErrExtractionFailed.Error(),
			Code:  "EXTRACTION_FAILED",
		})

	case errors.Is(err, lead.ErrSessionNotFound):
		h.logger.WithFields(fields).Warn("Session not found")
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: lead.ErrSessionNotFound.Error(),
			Code:  "SESSION_NOT_FOUND",
		})

	case errors.Is(err, lead.ErrSessionBusy):
		h.logger.WithFields(fields).Warn("Gave up waiting for session lock")
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error: lead.ErrSessionBusy.Error(),
			Code:  "SESSION_BUSY",
		})
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(fields).WithField("code", respErr.Code).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(ErrorResponse{Error: respErr.Error()})
	}

	traceID := log.ErrorWithTraceID(fields, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "An unexpected error occurred",
		TraceID: traceID,
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
