package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbridge/mealcli/internal/models"
)

func f(v float64) *float64 { return &v }

func donationAt(id string, lat, lng *float64) models.Donation {
	return models.Donation{ID: id, Latitude: lat, Longitude: lng}
}

func ids(ds []models.Donation) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func TestSortByDistance_Disabled(t *testing.T) {
	ref := &models.Coordinate{Latitude: 0, Longitude: 0}
	items := []models.Donation{
		donationAt("far", f(0), f(5)),
		donationAt("near", f(0), f(1)),
	}

	out := SortByDistance(items, ref, false)

	assert.Equal(t, []string{"far", "near"}, ids(out))
}

func TestSortByDistance_NoReference(t *testing.T) {
	items := []models.Donation{
		donationAt("b", f(0), f(5)),
		donationAt("a", f(0), f(1)),
	}

	out := SortByDistance(items, nil, true)

	assert.Equal(t, []string{"b", "a"}, ids(out))
}

func TestSortByDistance_Ascending(t *testing.T) {
	ref := &models.Coordinate{Latitude: 0, Longitude: 0}
	items := []models.Donation{
		donationAt("mid", f(0), f(3)),
		donationAt("far", f(0), f(9)),
		donationAt("near", f(0), f(1)),
	}

	out := SortByDistance(items, ref, true)

	assert.Equal(t, []string{"near", "mid", "far"}, ids(out))
}

func TestSortByDistance_UnknownsLast(t *testing.T) {
	ref := &models.Coordinate{Latitude: 0, Longitude: 0}
	// A at 5km-ish, B with no location, C at 2km-ish.
	items := []models.Donation{
		donationAt("A", f(0), f(0.05)),
		donationAt("B", nil, nil),
		donationAt("C", f(0), f(0.02)),
	}

	out := SortByDistance(items, ref, true)

	assert.Equal(t, []string{"C", "A", "B"}, ids(out))
}

func TestSortByDistance_StableAmongUnknowns(t *testing.T) {
	ref := &models.Coordinate{Latitude: 0, Longitude: 0}
	items := []models.Donation{
		donationAt("u1", nil, nil),
		donationAt("known", f(0), f(1)),
		donationAt("u2", f(1), nil), // partial coordinate is still unknown
		donationAt("u3", nil, nil),
	}

	out := SortByDistance(items, ref, true)

	assert.Equal(t, []string{"known", "u1", "u2", "u3"}, ids(out))
}

func TestSortByDistance_Idempotent(t *testing.T) {
	ref := &models.Coordinate{Latitude: 0, Longitude: 0}
	items := []models.Donation{
		donationAt("a", f(0), f(1)),
		donationAt("b", f(0), f(1)),
		donationAt("c", f(0), f(2)),
		donationAt("d", nil, nil),
	}

	once := SortByDistance(items, ref, true)
	twice := SortByDistance(once, ref, true)

	assert.Equal(t, ids(once), ids(twice))
}

func TestSortByDistance_DoesNotMutateInput(t *testing.T) {
	ref := &models.Coordinate{Latitude: 0, Longitude: 0}
	items := []models.Donation{
		donationAt("far", f(0), f(5)),
		donationAt("near", f(0), f(1)),
	}

	out := SortByDistance(items, ref, true)

	require.Equal(t, []string{"near", "far"}, ids(out))
	assert.Equal(t, []string{"far", "near"}, ids(items))
}
