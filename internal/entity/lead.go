package entity

import (
	"strings"
	"time"
)

type Slot string

const (
	SlotFullName           Slot = "full_name"
	SlotVehicle            Slot = "vehicle"
	SlotServiceInterest    Slot = "service_interest"
	SlotPreferredTimeframe Slot = "preferred_timeframe"
	SlotBestContactMethod  Slot = "best_contact_method"
	SlotNotes              Slot = "notes"
)

const DefaultContactMethod = "text"

// RequiredSlots is the fixed enumeration that must be filled before a lead is complete.
var RequiredSlots = []Slot{
	SlotFullName,
	SlotVehicle,
	SlotServiceInterest,
	SlotPreferredTimeframe,
	SlotBestContactMethod,
}

// SlotDescriptions is handed to the extraction model alongside the slot names.
var SlotDescriptions = map[Slot]string{
	SlotFullName:           "customer's full name",
	SlotVehicle:            "year, make and model of the vehicle",
	SlotServiceInterest:    "service or product the customer is asking about",
	SlotPreferredTimeframe: "when the customer wants the service done",
	SlotBestContactMethod:  "how the customer prefers to be contacted (text, call, email)",
	SlotNotes:              "free-text context such as refusals or side remarks",
}

func (s Slot) Valid() bool {
	if s == SlotNotes {
		return true
	}
	for _, r := range RequiredSlots {
		if r == s {
			return true
		}
	}
	return false
}

func AllSlots() []Slot {
	out := make([]Slot, 0, len(RequiredSlots)+1)
	out = append(out, RequiredSlots...)
	return append(out, SlotNotes)
}

// FieldValue is an optional slot value. nil and blank strings are both empty.
type FieldValue *string

func Value(s string) FieldValue {
	return &s
}

func IsEmpty(v FieldValue) bool {
	return v == nil || strings.TrimSpace(*v) == ""
}

// FieldSet maps slots to optional values. Only valid slots are ever stored.
type FieldSet map[Slot]FieldValue

func NewFieldSet() FieldSet {
	fields := make(FieldSet, len(RequiredSlots)+1)
	for _, s := range AllSlots() {
		fields[s] = nil
	}
	fields[SlotBestContactMethod] = Value(DefaultContactMethod)
	return fields
}

func (f FieldSet) Get(s Slot) string {
	v := f[s]
	if IsEmpty(v) {
		return ""
	}
	return *v
}

func (f FieldSet) Has(s Slot) bool {
	return !IsEmpty(f[s])
}

func (f FieldSet) Set(s Slot, value string) {
	if !s.Valid() {
		return
	}
	f[s] = Value(value)
}

func (f FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(f))
	for k, v := range f {
		if v == nil {
			out[k] = nil
			continue
		}
		out[k] = Value(*v)
	}
	return out
}

// Strings renders the set with empty slots as nil, the shape sent to collaborators.
func (f FieldSet) Strings() map[string]*string {
	out := make(map[string]*string, len(f))
	for _, s := range AllSlots() {
		if IsEmpty(f[s]) {
			out[string(s)] = nil
			continue
		}
		v := *f[s]
		out[string(s)] = &v
	}
	return out
}

type TurnRole string

const (
	TurnRoleCustomer  TurnRole = "customer"
	TurnRoleAssistant TurnRole = "assistant"
)

type TurnRecord struct {
	ID        string    `json:"id"`
	Role      TurnRole  `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type LeadState string

const (
	LeadStateAwaitingInfo LeadState = "AWAITING_INFO"
	LeadStateComplete     LeadState = "COMPLETE"
)

type LeadSession struct {
	Identity     string       `json:"identity"`
	Fields       FieldSet     `json:"fields"`
	Turns        []TurnRecord `json:"turns"`
	Complete     bool         `json:"complete"`
	CreatedAt    time.Time    `json:"created_at"`
	LastActivity time.Time    `json:"last_activity"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
}

func NewLeadSession(identity string, now time.Time) LeadSession {
	return LeadSession{
		Identity:     identity,
		Fields:       NewFieldSet(),
		Turns:        []TurnRecord{},
		CreatedAt:    now,
		LastActivity: now,
	}
}

func (s LeadSession) State() LeadState {
	if s.Complete {
		return LeadStateComplete
	}
	return LeadStateAwaitingInfo
}

// RecentTurns returns at most n of the latest turn records, oldest first.
func (s LeadSession) RecentTurns(n int) []TurnRecord {
	if n <= 0 || len(s.Turns) <= n {
		return append([]TurnRecord(nil), s.Turns...)
	}
	return append([]TurnRecord(nil), s.Turns[len(s.Turns)-n:]...)
}

func (s LeadSession) Clone() LeadSession {
	out := s
	out.Fields = s.Fields.Clone()
	out.Turns = append(make([]TurnRecord, 0, len(s.Turns)), s.Turns...)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

// OperatorLoginData is set on the fiber context by the token middleware.
type OperatorLoginData struct {
	ID       string
	Email    string
	Username string
}
