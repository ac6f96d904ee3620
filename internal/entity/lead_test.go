package entity

import (
	"testing"
	"time"
)

func TestNewFieldSet(t *testing.T) {
	fields := NewFieldSet()

	if len(fields) != len(AllSlots()) {
		t.Fatalf("slots = %d, want %d", len(fields), len(AllSlots()))
	}
	for _, s := range AllSlots() {
		if s == SlotBestContactMethod {
			continue
		}
		if fields[s] != nil {
			t.Errorf("slot %s = %q, want nil", s, *fields[s])
		}
	}
	if got := fields.Get(SlotBestContactMethod); got != DefaultContactMethod {
		t.Errorf("best_contact_method = %q, want %q", got, DefaultContactMethod)
	}
}

func TestFieldSetSetIgnoresUnknownSlots(t *testing.T) {
	fields := FieldSet{}
	fields.Set(Slot("budget"), "500")
	fields.Set(SlotVehicle, "Civic")

	if _, ok := fields[Slot("budget")]; ok {
		t.Error("unknown slot was stored")
	}
	if !fields.Has(SlotVehicle) {
		t.Error("vehicle should be set")
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		v    FieldValue
		want bool
	}{
		{name: "nil", v: nil, want: true},
		{name: "empty", v: Value(""), want: true},
		{name: "whitespace", v: Value(" \t\n"), want: true},
		{name: "value", v: Value("Jane"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsEmpty(tt.v); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLeadSessionClone(t *testing.T) {
	now := time.Now()
	s := NewLeadSession("+15550001111", now)
	s.Fields.Set(SlotFullName, "Jane Doe")
	s.Turns = append(s.Turns, TurnRecord{ID: "1", Role: TurnRoleCustomer, Text: "hi"})
	s.CompletedAt = &now

	c := s.Clone()
	*c.Fields[SlotFullName] = "Changed"
	c.Turns[0].Text = "changed"
	*c.CompletedAt = now.Add(time.Hour)

	if s.Fields.Get(SlotFullName) != "Jane Doe" {
		t.Error("clone shares field values")
	}
	if s.Turns[0].Text != "hi" {
		t.Error("clone shares turn history")
	}
	if !s.CompletedAt.Equal(now) {
		t.Error("clone shares completed_at")
	}
}

func TestRecentTurns(t *testing.T) {
	s := NewLeadSession("+15550001111", time.Now())
	for _, text := range []string{"a", "b", "c", "d"} {
		s.Turns = append(s.Turns, TurnRecord{Text: text})
	}

	got := s.RecentTurns(2)
	if len(got) != 2 || got[0].Text != "c" || got[1].Text != "d" {
		t.Errorf("RecentTurns(2) = %+v", got)
	}
	if all := s.RecentTurns(10); len(all) != 4 {
		t.Errorf("RecentTurns(10) = %d turns, want 4", len(all))
	}
}

func TestLeadSessionState(t *testing.T) {
	s := NewLeadSession("+15550001111", time.Now())
	if s.State() != LeadStateAwaitingInfo {
		t.Errorf("state = %s", s.State())
	}
	s.Complete = true
	if s.State() != LeadStateComplete {
		t.Errorf("state = %s", s.State())
	}
}
