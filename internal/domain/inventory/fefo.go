package inventory

import (
	"bytes"
	"sort"
)

// PrioritizedBatch returns the batch that should be consumed next under
// first-expires-first-out: among batches with available stock, the one with
// the earliest expiration date wins, batches without an expiration date come
// last, and ties break on the lowest batch id so the choice is deterministic.
// Returns nil when no batch has stock.
func PrioritizedBatch(batches []Batch) *Batch {
	candidates := make([]*Batch, 0, len(batches))
	for i := range batches {
		if batches[i].HasStock() {
			candidates = append(candidates, &batches[i])
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return batchBefore(candidates[i], candidates[j])
	})
	return candidates[0]
}

// batchBefore orders two batches by FEFO priority.
func batchBefore(a, b *Batch) bool {
	switch {
	case a.ExpirationDate == nil && b.ExpirationDate == nil:
		// fall through to the id tie-break
	case a.ExpirationDate == nil:
		return false
	case b.ExpirationDate == nil:
		return true
	case !a.ExpirationDate.Equal(*b.ExpirationDate):
		return a.ExpirationDate.Before(*b.ExpirationDate)
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}
