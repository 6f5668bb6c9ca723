package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/mealbridge/mealcli/internal/feed"
	"github.com/mealbridge/mealcli/internal/models"
)

func coordPtr(v float64) *float64 { return &v }

func testDonations() []models.Donation {
	return []models.Donation{
		{ID: "d1", FoodType: "cooked", Latitude: coordPtr(10), Longitude: coordPtr(10)},
		{ID: "d2", FoodType: "bakery"},
		{ID: "d3", FoodType: "cooked", Latitude: coordPtr(10.01), Longitude: coordPtr(10)},
	}
}

func TestNewDonationsModel(t *testing.T) {
	m := NewDonationsModel(nil, nil)

	assert.Equal(t, DonationsStateLoading, m.state)
	assert.Equal(t, feed.CategoryAll, m.query.Category)
	assert.False(t, m.query.SortByDistance)
}

func TestDonationsModel_Init(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	cmd := m.Init()

	assert.NotNil(t, cmd)
}

func TestDonationsModel_WindowSizeMsg(t *testing.T) {
	m := NewDonationsModel(nil, nil)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 50, m.height)
}

func TestDonationsModel_DonationsLoadedMsg(t *testing.T) {
	m := NewDonationsModel(nil, nil)

	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})

	assert.Equal(t, DonationsStateReady, m.state)
	assert.Len(t, m.donations, 3)
	assert.Len(t, m.visible, 3)
}

func TestDonationsModel_DonationsErrorMsg(t *testing.T) {
	m := NewDonationsModel(nil, nil)

	m, _ = m.Update(DonationsErrorMsg{Err: assert.AnError})

	assert.Equal(t, DonationsStateError, m.state)
	assert.Error(t, m.err)
}

func TestDonationsModel_CategoryCycling(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	assert.Equal(t, "cooked", m.query.Category)
	assert.Len(t, m.visible, 2)

	// Cycling through the whole list comes back to "all".
	for i := 0; i < len(donationCategories)-1; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	}
	assert.Equal(t, feed.CategoryAll, m.query.Category)
	assert.Len(t, m.visible, 3)
}

func TestDonationsModel_NearMeToggleStartsLocating(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})

	assert.True(t, m.locating)
	assert.False(t, m.query.SortByDistance)
	assert.NotNil(t, cmd)
}

func TestDonationsModel_LocatedMsgEnablesSort(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})

	ref := &models.Coordinate{Latitude: 10, Longitude: 10}
	m, _ = m.Update(LocatedMsg{Gen: m.locateGen, Coord: ref})

	assert.False(t, m.locating)
	assert.True(t, m.query.SortByDistance)
	assert.Equal(t, ref, m.query.Reference)
	// d2 has no coordinate, so it sorts last.
	assert.Equal(t, "d2", m.visible[len(m.visible)-1].ID)
}

func TestDonationsModel_StaleLocationDiscarded(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	staleGen := m.locateGen

	// Toggle off before the result arrives.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	assert.False(t, m.locating)

	m, _ = m.Update(LocatedMsg{Gen: staleGen, Coord: &models.Coordinate{Latitude: 1, Longitude: 1}})

	assert.False(t, m.query.SortByDistance)
	assert.Nil(t, m.query.Reference)
}

func TestDonationsModel_LocateErrorRevertsToggle(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})

	m, _ = m.Update(LocateErrorMsg{Gen: m.locateGen, Err: assert.AnError})

	assert.False(t, m.locating)
	assert.False(t, m.query.SortByDistance)
	assert.Nil(t, m.query.Reference)
	assert.NotEmpty(t, m.notice)
}

func TestDonationsModel_NearMeToggleOffClearsReference(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	m, _ = m.Update(LocatedMsg{Gen: m.locateGen, Coord: &models.Coordinate{Latitude: 10, Longitude: 10}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})

	assert.False(t, m.query.SortByDistance)
	assert.Nil(t, m.query.Reference)
	// Server order restored.
	assert.Equal(t, "d1", m.visible[0].ID)
}

func TestDonationsModel_RefreshKey(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	assert.Equal(t, DonationsStateLoading, m.state)
	assert.NotNil(t, cmd)
}

func TestDonationsModel_BackNavigation(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m.state = DonationsStateReady

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.NotNil(t, cmd)
	msg := cmd()
	navMsg, ok := msg.(NavigateMsg)
	assert.True(t, ok)
	assert.Equal(t, "home", navMsg.Screen)
}

func TestDonationsModel_Selected(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})

	sel := m.Selected()
	assert.NotNil(t, sel)
	assert.Equal(t, "d1", sel.ID)

	m.state = DonationsStateLoading
	assert.Nil(t, m.Selected())
}

func TestDonationsModel_View(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m.width = 100
	m.height = 40
	m, _ = m.Update(DonationsLoadedMsg{Donations: testDonations()})

	view := m.View()

	assert.Contains(t, view, "Donations")
	assert.Contains(t, view, "Near Me: off")
	assert.Contains(t, view, "near me")
}

func TestDonationsModel_ViewError(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m.width = 100
	m.height = 40
	m.state = DonationsStateError
	m.err = assert.AnError

	view := m.View()

	assert.Contains(t, view, "Error")
	assert.Contains(t, view, "retry")
}

func TestDonationsModel_ViewEmpty(t *testing.T) {
	m := NewDonationsModel(nil, nil)
	m.width = 100
	m.height = 40
	m, _ = m.Update(DonationsLoadedMsg{Donations: nil})

	view := m.View()

	assert.Contains(t, view, "No donations found")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hi", 3, "hi"},
		{"hello", 5, "hello"},
		// Cuts count runes, never split a multi-byte character.
		{"Рынок Бессарабский, Киев", 10, "Рынок Б..."},
		{"東京都渋谷区道玄坂", 6, "東京都..."},
		{"東京都", 6, "東京都"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, truncate(tt.input, tt.maxLen), "truncate(%q, %d)", tt.input, tt.maxLen)
	}
}
