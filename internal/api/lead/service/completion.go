package leadService

import "LeadReceptionist/internal/entity"

// IsComplete reports whether every required slot holds a value. Notes do not count.
func IsComplete(fields entity.FieldSet) bool {
	for _, slot := range entity.RequiredSlots {
		if !fields.Has(slot) {
			return false
		}
	}
	return true
}

// EvaluateCompletion lets the model's completeness claim win when it made one.
func EvaluateCompletion(fields entity.FieldSet, claim *bool) bool {
	if claim != nil {
		return *claim
	}
	return IsComplete(fields)
}
