package lead

import "LeadReceptionist/pkg/response"

var (
	ErrMalformedExtraction = response.NewError(502, "extraction result could not be parsed")
	ErrExtractionFailed    = response.NewError(502, "extraction call failed")
	ErrSessionNotFound     = response.NewError(404, "session not found")
	ErrSessionBusy         = response.NewError(409, "session is busy")
	ErrInvalidInbound      = response.NewError(400, "invalid inbound message")
	ErrRecoveryDisabled    = response.NewError(503, "lead recovery queue is not configured")
)
