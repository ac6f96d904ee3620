package log

import (
	contextPkg "LeadReceptionist/pkg/context"
	"context"
	"testing"
)

func TestErrorWithTraceID(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	if got := ErrorWithTraceID(Fields{RequestIDKey: "req-1"}, "boom"); got != "req-1" {
		t.Errorf("trace id = %q, want request id", got)
	}

	generated := ErrorWithTraceID(Fields{RequestIDKey: "unknown"}, "boom")
	if generated == "" || generated == "unknown" {
		t.Errorf("trace id = %q, want generated id", generated)
	}

	if got := ErrorWithTraceID(nil, "boom"); got == "" {
		t.Error("nil fields should still yield a trace id")
	}
}

func TestWithRequestID(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	ctx := contextPkg.WithRequestID(context.Background(), "req-9")
	if got := WithRequestID(ctx).Data[RequestIDKey]; got != "req-9" {
		t.Errorf("request_id = %v, want req-9", got)
	}
	if got := WithRequestID(context.Background()).Data[RequestIDKey]; got != "unknown" {
		t.Errorf("request_id = %v, want unknown", got)
	}
}
