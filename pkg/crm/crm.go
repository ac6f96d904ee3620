package crm

import (
	"LeadReceptionist/internal/entity"
	"context"
	"errors"
)

var ErrNotConfigured = errors.New("crm is not configured")

type ICRM interface {
	CreateLead(ctx context.Context, identity string, fields entity.FieldSet) error
}

// Lead is the record shape both drivers write.
type Lead struct {
	Phone              string `json:"phone" db:"phone"`
	FullName           string `json:"full_name" db:"full_name"`
	Vehicle            string `json:"vehicle" db:"vehicle"`
	ServiceInterest    string `json:"service_interest" db:"service_interest"`
	PreferredTimeframe string `json:"preferred_timeframe" db:"preferred_timeframe"`
	BestContactMethod  string `json:"best_contact_method" db:"best_contact_method"`
	Notes              string `json:"notes" db:"notes"`
	Source             string `json:"source" db:"source"`
}

func NewLead(identity string, fields entity.FieldSet) Lead {
	return Lead{
		Phone:              identity,
		FullName:           fields.Get(entity.SlotFullName),
		Vehicle:            fields.Get(entity.SlotVehicle),
		ServiceInterest:    fields.Get(entity.SlotServiceInterest),
		PreferredTimeframe: fields.Get(entity.SlotPreferredTimeframe),
		BestContactMethod:  fields.Get(entity.SlotBestContactMethod),
		Notes:              fields.Get(entity.SlotNotes),
		Source:             "sms",
	}
}
