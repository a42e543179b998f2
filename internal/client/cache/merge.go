package cache

import (
	"sort"

	"github.com/iudanet/moodkeeper/internal/models"
)

// MergeRecords returns the union of local and remote without duplicate ids.
// A remote record replaces a local one with the same id. The result is
// ordered by CreatedAt descending, then ID ascending, so
// MergeRecords(MergeRecords(a, b), b) equals MergeRecords(a, b).
func MergeRecords(local, remote []*models.Record) []*models.Record {
	byID := make(map[string]*models.Record, len(local)+len(remote))
	for _, rec := range local {
		if rec == nil {
			continue
		}
		byID[rec.ID] = rec
	}
	// remote wins
	for _, rec := range remote {
		if rec == nil {
			continue
		}
		byID[rec.ID] = rec
	}

	merged := make([]*models.Record, 0, len(byID))
	for _, rec := range byID {
		merged = append(merged, rec)
	}
	sortRecords(merged)
	return merged
}

func sortRecords(records []*models.Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
