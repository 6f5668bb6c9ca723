package geo

import (
	"sort"

	"github.com/mealbridge/mealcli/internal/models"
)

// SortByDistance returns items ordered by ascending distance from ref.
// The sort is stable: items at equal or unknown distance keep their
// original relative order, and unknown-distance items go last.
//
// When enabled is false or ref is nil the input order is returned
// untouched. Proximity sorting is an explicit user choice ("Near Me");
// it must never happen silently.
func SortByDistance[T models.Locatable](items []T, ref *models.Coordinate, enabled bool) []T {
	out := make([]T, len(items))
	copy(out, items)

	if !enabled || ref == nil {
		return out
	}

	type ranked struct {
		item T
		dist float64
	}
	rs := make([]ranked, len(out))
	for i, it := range out {
		rs[i] = ranked{item: it, dist: Distance(it.Coord(), ref)}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		return rs[i].dist < rs[j].dist
	})

	for i, r := range rs {
		out[i] = r.item
	}
	return out
}
