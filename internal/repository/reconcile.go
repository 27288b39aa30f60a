package repository

import "giftly-be/internal/entities"

// staleGiftIDs returns the persisted gift ids that are absent from the
// submitted list. Omission means removal: an empty submitted keep set
// marks every existing gift stale. Pure function, kept separate from
// the transaction that applies it.
func staleGiftIDs(existing []int64, submitted []entities.Gift) []int64 {
	kept := make(map[int64]struct{}, len(submitted))
	for _, g := range submitted {
		if g.ID > 0 {
			kept[g.ID] = struct{}{}
		}
	}

	var stale []int64
	for _, id := range existing {
		if _, ok := kept[id]; !ok {
			stale = append(stale, id)
		}
	}
	return stale
}
