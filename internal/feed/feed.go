// Package feed composes the category filter and proximity sorter that
// every listing screen applies to data fetched from the backend.
package feed

import (
	"github.com/mealbridge/mealcli/internal/geo"
	"github.com/mealbridge/mealcli/internal/models"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// Query holds the parameters of one feed view. A query is owned by the
// screen presenting the feed, recreated per view and never persisted.
type Query struct {
	// Category keeps only listings of this category; CategoryAll keeps
	// everything.
	Category string
	// Reference is the point distances are measured from. Nil means no
	// reference point is available.
	Reference *models.Coordinate
	// SortByDistance orders the feed by ascending distance when true.
	// It reflects the user's "Near Me" toggle; the feed never sorts
	// without it.
	SortByDistance bool
}

// Apply filters and orders items per the query. Items without a
// coordinate are kept (they are listings like any other) but sort last
// when distance ordering is on.
func Apply[T models.Listing](q Query, items []T) []T {
	filtered := filterByCategory(q.Category, items)
	return geo.SortByDistance(filtered, q.Reference, q.SortByDistance)
}

func filterByCategory[T models.Listing](category string, items []T) []T {
	if category == "" || category == CategoryAll {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	var out []T
	for _, it := range items {
		if it.Category() == category {
			out = append(out, it)
		}
	}
	return out
}

// Distance returns the display distance from the query's reference
// point to an item, and whether it is known.
func Distance(q Query, item models.Locatable) (float64, bool) {
	if q.Reference == nil {
		return 0, false
	}
	d := geo.Distance(item.Coord(), q.Reference)
	return d, geo.Known(d)
}
