package extraction

import (
	"LeadReceptionist/internal/entity"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ParseProposal decodes a model reply into a Proposal. Any shape mismatch is
// reported as ErrMalformedProposal; nothing is defaulted except absent keys.
func ParseProposal(content string) (*Proposal, error) {
	content = stripCodeFence(strings.TrimSpace(content))
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrMalformedProposal)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProposal, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", ErrMalformedProposal)
	}

	proposal := &Proposal{Fields: entity.FieldSet{}}

	switch fields := raw["updated_fields"].(type) {
	case nil:
	case map[string]interface{}:
		for key, value := range fields {
			slot := entity.Slot(key)
			if !slot.Valid() {
				continue
			}
			switch v := value.(type) {
			case nil:
			case string:
				proposal.Fields.Set(slot, v)
			default:
				return nil, fmt.Errorf("%w: updated_fields.%s has type %T", ErrMalformedProposal, key, value)
			}
		}
	default:
		return nil, fmt.Errorf("%w: updated_fields has type %T", ErrMalformedProposal, fields)
	}

	switch q := raw["next_question"].(type) {
	case nil:
	case string:
		proposal.NextQuestion = strings.TrimSpace(q)
	default:
		return nil, fmt.Errorf("%w: next_question has type %T", ErrMalformedProposal, q)
	}

	switch c := raw["is_complete"].(type) {
	case nil:
	case bool:
		proposal.IsComplete = &c
	default:
		return nil, fmt.Errorf("%w: is_complete has type %T", ErrMalformedProposal, c)
	}

	return proposal, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
