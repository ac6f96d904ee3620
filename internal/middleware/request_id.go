package middleware

import (
	"LeadReceptionist/pkg/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

const RequestIDKey = "X-Request-ID"

// Providers that retry deliveries send their own idempotency header; reusing
// it keeps retries correlated in the logs.
var providerRequestIDHeaders = []string{"I-Twilio-Idempotency-Token", "X-Idempotency-Key"}

func NewRequestIDMiddleware() fiber.Handler {
	utilsInstance := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(RequestIDKey)

		for _, header := range providerRequestIDHeaders {
			if requestID != "" {
				break
			}
			requestID = c.Get(header)
		}

		if requestID == "" || len(requestID) > 128 {
			requestID, _ = utilsInstance.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(RequestIDKey, requestID)
		c.Set(RequestIDKey, requestID)

		return c.Next()
	}
}
