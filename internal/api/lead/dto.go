package lead

import (
	"LeadReceptionist/internal/entity"
	"time"
)

// InboundMessage is the normalised pair every provider payload is reduced to.
type InboundMessage struct {
	Identity string `json:"identity" validate:"required,max=64"`
	Text     string `json:"text" validate:"required,max=2000"`
}

type DeliveryResult struct {
	Attempted bool   `json:"attempted"`
	Delivered bool   `json:"delivered"`
	Error     string `json:"error,omitempty"`
}

// TurnResult reports the turn outcome and, separately, the delivery outcome.
type TurnResult struct {
	Ignored   bool             `json:"ignored"`
	Identity  string           `json:"identity,omitempty"`
	Reply     string           `json:"reply,omitempty"`
	State     entity.LeadState `json:"state,omitempty"`
	Finalized bool             `json:"finalized"`
	Delivery  DeliveryResult   `json:"delivery"`
}

type SessionResponse struct {
	Identity     string              `json:"identity"`
	State        entity.LeadState    `json:"state"`
	Fields       map[string]*string  `json:"fields"`
	Turns        []entity.TurnRecord `json:"turns"`
	CreatedAt    time.Time           `json:"created_at"`
	LastActivity time.Time           `json:"last_activity"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
}

func NewSessionResponse(s entity.LeadSession) SessionResponse {
	return SessionResponse{
		Identity:     s.Identity,
		State:        s.State(),
		Fields:       s.Fields.Strings(),
		Turns:        s.Turns,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
		CompletedAt:  s.CompletedAt,
	}
}
