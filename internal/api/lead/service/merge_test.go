package leadService_test

import (
	leadService "LeadReceptionist/internal/api/lead/service"
	"LeadReceptionist/internal/entity"
	"testing"
)

func TestMergeFields(t *testing.T) {
	tests := []struct {
		name     string
		current  entity.FieldSet
		proposed entity.FieldSet
		want     map[entity.Slot]string
	}{
		{
			name:     "empty proposal keeps everything",
			current:  fields(map[entity.Slot]string{entity.SlotFullName: "Jane Doe"}),
			proposed: entity.FieldSet{},
			want:     map[entity.Slot]string{entity.SlotFullName: "Jane Doe"},
		},
		{
			name:     "nil and blank values never clear a slot",
			current:  fields(map[entity.Slot]string{entity.SlotVehicle: "Civic"}),
			proposed: entity.FieldSet{entity.SlotVehicle: entity.Value("   "), entity.SlotFullName: nil},
			want:     map[entity.Slot]string{entity.SlotVehicle: "Civic"},
		},
		{
			name:     "non-notes slot is overwritten",
			current:  fields(map[entity.Slot]string{entity.SlotVehicle: "Civic"}),
			proposed: fields(map[entity.Slot]string{entity.SlotVehicle: "Accord"}),
			want:     map[entity.Slot]string{entity.SlotVehicle: "Accord"},
		},
		{
			name:     "notes accumulate",
			current:  fields(map[entity.Slot]string{entity.SlotNotes: "A"}),
			proposed: fields(map[entity.Slot]string{entity.SlotNotes: "B"}),
			want:     map[entity.Slot]string{entity.SlotNotes: "A B"},
		},
		{
			name:     "first note is trimmed",
			current:  entity.NewFieldSet(),
			proposed: fields(map[entity.Slot]string{entity.SlotNotes: "  prefers mornings "}),
			want: map[entity.Slot]string{
				entity.SlotNotes:             "prefers mornings",
				entity.SlotBestContactMethod: "text",
			},
		},
		{
			name:     "unknown slots are dropped",
			current:  entity.FieldSet{},
			proposed: entity.FieldSet{entity.Slot("budget"): entity.Value("500")},
			want:     map[entity.Slot]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leadService.MergeFields(tt.current, tt.proposed)
			for _, slot := range entity.AllSlots() {
				if got.Get(slot) != tt.want[slot] {
					t.Errorf("slot %s = %q, want %q", slot, got.Get(slot), tt.want[slot])
				}
			}
			if _, ok := got[entity.Slot("budget")]; ok {
				t.Error("unknown slot leaked into merged set")
			}
		})
	}
}

func TestMergeFieldsDoesNotMutateInputs(t *testing.T) {
	current := fields(map[entity.Slot]string{entity.SlotVehicle: "Civic", entity.SlotNotes: "A"})
	proposed := fields(map[entity.Slot]string{entity.SlotVehicle: "Accord", entity.SlotNotes: "B"})

	_ = leadService.MergeFields(current, proposed)

	if current.Get(entity.SlotVehicle) != "Civic" || current.Get(entity.SlotNotes) != "A" {
		t.Errorf("current was mutated: %v", current.Strings())
	}
	if proposed.Get(entity.SlotVehicle) != "Accord" || proposed.Get(entity.SlotNotes) != "B" {
		t.Errorf("proposed was mutated: %v", proposed.Strings())
	}
}

func TestMergeFieldsIdempotentWithoutNotes(t *testing.T) {
	current := entity.NewFieldSet()
	proposed := fields(map[entity.Slot]string{
		entity.SlotFullName:        "Jane Doe",
		entity.SlotServiceInterest: "oil change",
	})

	once := leadService.MergeFields(current, proposed)
	twice := leadService.MergeFields(once, proposed)

	for _, slot := range entity.AllSlots() {
		if once.Get(slot) != twice.Get(slot) {
			t.Errorf("slot %s changed on second merge: %q -> %q", slot, once.Get(slot), twice.Get(slot))
		}
	}
}

func TestAppendNote(t *testing.T) {
	fs := entity.NewFieldSet()

	leadService.AppendNote(fs, "first")
	leadService.AppendNote(fs, "[CRM sync failed: timeout]")

	if got, want := fs.Get(entity.SlotNotes), "first [CRM sync failed: timeout]"; got != want {
		t.Errorf("notes = %q, want %q", got, want)
	}
}

func TestAppendNoteNilSet(t *testing.T) {
	var fs entity.FieldSet
	leadService.AppendNote(fs, "ignored")
	if fs != nil {
		t.Error("nil set should stay nil")
	}
}
