package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewRequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		id, _ := c.Locals(RequestIDKey).(string)
		return c.SendString(id)
	})

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "explicit header", headers: map[string]string{RequestIDKey: "req-1"}, want: "req-1"},
		{name: "provider idempotency token", headers: map[string]string{"I-Twilio-Idempotency-Token": "tw-42"}, want: "tw-42"},
		{name: "explicit wins over provider", headers: map[string]string{RequestIDKey: "req-2", "X-Idempotency-Key": "k"}, want: "req-2"},
		{name: "generated", headers: nil, want: ""},
		{name: "oversized is replaced", headers: map[string]string{RequestIDKey: strings.Repeat("a", 200)}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			got := resp.Header.Get(RequestIDKey)

			if tt.want != "" {
				if got != tt.want {
					t.Errorf("request id = %q, want %q", got, tt.want)
				}
				return
			}
			// ULIDs are 26 characters.
			if len(got) != 26 {
				t.Errorf("generated request id = %q", got)
			}
		})
	}
}
