package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbridge/mealcli/internal/models"
)

func menuTitles(m HomeModel) []string {
	titles := make([]string, len(m.items))
	for i, it := range m.items {
		titles[i] = it.Title
	}
	return titles
}

func TestNewHomeModel_DonorMenu(t *testing.T) {
	m := NewHomeModel(models.RoleDonor)

	titles := menuTitles(m)
	assert.Contains(t, titles, "Donations")
	assert.Contains(t, titles, "Requests")
	assert.Contains(t, titles, "New Donation")
	assert.Contains(t, titles, "Settings")
	assert.NotContains(t, titles, "New Request")
	assert.NotContains(t, titles, "Deliveries")
}

func TestNewHomeModel_RecipientMenu(t *testing.T) {
	m := NewHomeModel(models.RoleRecipient)

	titles := menuTitles(m)
	assert.Contains(t, titles, "New Request")
	assert.NotContains(t, titles, "New Donation")
}

func TestNewHomeModel_VolunteerMenu(t *testing.T) {
	m := NewHomeModel(models.RoleVolunteer)

	titles := menuTitles(m)
	assert.Contains(t, titles, "Deliveries")
	assert.NotContains(t, titles, "New Donation")
	assert.NotContains(t, titles, "New Request")
}

func TestHomeModel_Navigation(t *testing.T) {
	m := NewHomeModel(models.RoleDonor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.cursor)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)

	// Cursor clamps at the top.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor)
}

func TestHomeModel_Select(t *testing.T) {
	m := NewHomeModel(models.RoleDonor)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	navMsg, ok := cmd().(NavigateMsg)
	assert.True(t, ok)
	assert.Equal(t, "donations", navMsg.Screen)
}

func TestHomeModel_View(t *testing.T) {
	m := NewHomeModel(models.RoleVolunteer)
	m.width = 100
	m.height = 40

	view := m.View()

	assert.Contains(t, view, "Signed in as volunteer")
	assert.Contains(t, view, "Deliveries")
}
