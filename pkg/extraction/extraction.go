package extraction

import (
	"LeadReceptionist/internal/entity"
	"context"
	"errors"
)

var (
	ErrMalformedProposal = errors.New("malformed extraction proposal")
	ErrNotConfigured     = errors.New("extraction provider is not configured")
	ErrEmptyResponse     = errors.New("extraction provider returned no content")
)

type IExtractor interface {
	Extract(ctx context.Context, req Request) (*Proposal, error)
}

type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Request is everything the model sees for one turn.
type Request struct {
	Fields        map[string]*string `json:"current_fields"`
	RequiredSlots []string           `json:"required_fields"`
	Conversation  []Turn             `json:"conversation"`
}

type Proposal struct {
	Fields       entity.FieldSet
	NextQuestion string
	// IsComplete is nil when the model made no completeness claim.
	IsComplete *bool
}

func NewRequest(fields entity.FieldSet, turns []entity.TurnRecord) Request {
	req := Request{
		Fields:        fields.Strings(),
		RequiredSlots: make([]string, 0, len(entity.RequiredSlots)),
		Conversation:  make([]Turn, 0, len(turns)),
	}
	for _, s := range entity.RequiredSlots {
		req.RequiredSlots = append(req.RequiredSlots, string(s))
	}
	for _, t := range turns {
		req.Conversation = append(req.Conversation, Turn{Speaker: string(t.Role), Text: t.Text})
	}
	return req
}
