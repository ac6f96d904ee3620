package leadService

import (
	"LeadReceptionist/internal/entity"
	"strings"
)

// MergeFields folds a proposal into the current set and returns a new set.
// Empty proposed values never clear a slot. Notes accumulate; every other
// slot takes the newest non-empty value.
func MergeFields(current, proposed entity.FieldSet) entity.FieldSet {
	merged := current.Clone()
	if merged == nil {
		merged = entity.FieldSet{}
	}

	for _, slot := range entity.AllSlots() {
		value := proposed[slot]
		if entity.IsEmpty(value) {
			continue
		}
		next := strings.TrimSpace(*value)

		if slot == entity.SlotNotes && merged.Has(entity.SlotNotes) {
			next = strings.TrimSpace(merged.Get(entity.SlotNotes) + " " + next)
		}
		merged.Set(slot, next)
	}

	return merged
}

// AppendNote adds text to the notes slot using the same accumulation rule.
// A nil set is left alone.
func AppendNote(fields entity.FieldSet, note string) {
	if fields == nil {
		return
	}
	merged := MergeFields(fields, entity.FieldSet{entity.SlotNotes: entity.Value(note)})
	fields[entity.SlotNotes] = merged[entity.SlotNotes]
}
