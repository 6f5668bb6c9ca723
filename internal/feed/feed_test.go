package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealbridge/mealcli/internal/models"
)

func f(v float64) *float64 { return &v }

func listing(id, foodType string, lat, lng *float64) models.Donation {
	return models.Donation{ID: id, FoodType: foodType, Latitude: lat, Longitude: lng}
}

func ids(ds []models.Donation) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func TestApply_NoFilterNoSort(t *testing.T) {
	items := []models.Donation{
		listing("a", "cooked", f(0), f(5)),
		listing("b", "packaged", f(0), f(1)),
	}

	out := Apply(Query{Category: CategoryAll}, items)

	assert.Equal(t, []string{"a", "b"}, ids(out))
}

func TestApply_CategoryFilter(t *testing.T) {
	items := []models.Donation{
		listing("a", "cooked", nil, nil),
		listing("b", "packaged", nil, nil),
		listing("c", "cooked", nil, nil),
	}

	out := Apply(Query{Category: "cooked"}, items)

	assert.Equal(t, []string{"a", "c"}, ids(out))
}

func TestApply_FilterThenSort(t *testing.T) {
	ref := &models.Coordinate{Latitude: 0, Longitude: 0}
	items := []models.Donation{
		listing("far-cooked", "cooked", f(0), f(9)),
		listing("packaged", "packaged", f(0), f(0.5)),
		listing("near-cooked", "cooked", f(0), f(1)),
		listing("nowhere-cooked", "cooked", nil, nil),
	}

	out := Apply(Query{Category: "cooked", Reference: ref, SortByDistance: true}, items)

	assert.Equal(t, []string{"near-cooked", "far-cooked", "nowhere-cooked"}, ids(out))
}

func TestApply_SortDisabledKeepsServerOrder(t *testing.T) {
	ref := &models.Coordinate{Latitude: 0, Longitude: 0}
	items := []models.Donation{
		listing("far", "cooked", f(0), f(9)),
		listing("near", "cooked", f(0), f(1)),
	}

	out := Apply(Query{Category: CategoryAll, Reference: ref, SortByDistance: false}, items)

	assert.Equal(t, []string{"far", "near"}, ids(out))
}

func TestDistance(t *testing.T) {
	ref := &models.Coordinate{Latitude: 0, Longitude: 0}
	q := Query{Reference: ref}

	d, known := Distance(q, listing("a", "cooked", f(0), f(1)))
	assert.True(t, known)
	assert.InDelta(t, 111.19, d, 0.1)

	_, known = Distance(q, listing("b", "cooked", nil, nil))
	assert.False(t, known)

	_, known = Distance(Query{}, listing("a", "cooked", f(0), f(1)))
	assert.False(t, known)
}
