package allocator

import "slices"

// SequenceByPriority orders tasks Critical > High > Medium > Low. Tasks of the
// same tier keep their relative order and unknown tiers rank with Low.
// The input slice is not modified.
func SequenceByPriority(matches []TaskMatches) []TaskMatches {
	sequenced := slices.Clone(matches)
	slices.SortStableFunc(sequenced, func(a, b TaskMatches) int {
		return b.Task.Priority.Urgency() - a.Task.Priority.Urgency()
	})
	return sequenced
}
