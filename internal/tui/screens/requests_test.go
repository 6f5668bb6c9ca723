package screens

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/mealbridge/mealcli/internal/models"
)

func testRequests() []models.Request {
	return []models.Request{
		{ID: "r1", FoodType: "packaged", NumPeople: 40},
		{ID: "r2", FoodType: "cooked", NumPeople: 12, Latitude: coordPtr(20), Longitude: coordPtr(20)},
	}
}

func TestNewRequestsModel(t *testing.T) {
	m := NewRequestsModel(nil, nil)

	assert.Equal(t, RequestsStateLoading, m.state)
	assert.False(t, m.query.SortByDistance)
}

func TestRequestsModel_LoadedMsg(t *testing.T) {
	m := NewRequestsModel(nil, nil)

	m, _ = m.Update(RequestsLoadedMsg{Requests: testRequests()})

	assert.Equal(t, RequestsStateReady, m.state)
	assert.Len(t, m.visible, 2)
}

func TestRequestsModel_CategoryFilter(t *testing.T) {
	m := NewRequestsModel(nil, nil)
	m, _ = m.Update(RequestsLoadedMsg{Requests: testRequests()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	assert.Equal(t, "cooked", m.query.Category)
	assert.Len(t, m.visible, 1)
	assert.Equal(t, "r2", m.visible[0].ID)
}

func TestRequestsModel_LocateErrorRevertsToggle(t *testing.T) {
	m := NewRequestsModel(nil, nil)
	m, _ = m.Update(RequestsLoadedMsg{Requests: testRequests()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})

	m, _ = m.Update(LocateErrorMsg{Gen: m.locateGen, Err: assert.AnError})

	assert.False(t, m.query.SortByDistance)
	assert.Nil(t, m.query.Reference)
	assert.NotEmpty(t, m.notice)
}

func TestRequestsModel_ErrorMsg(t *testing.T) {
	m := NewRequestsModel(nil, nil)

	m, _ = m.Update(RequestsErrorMsg{Err: assert.AnError})

	assert.Equal(t, RequestsStateError, m.state)
	assert.Error(t, m.err)
}

func TestRequestsModel_View(t *testing.T) {
	m := NewRequestsModel(nil, nil)
	m.width = 100
	m.height = 40
	m, _ = m.Update(RequestsLoadedMsg{Requests: testRequests()})

	view := m.View()

	assert.Contains(t, view, "Requests")
	assert.Contains(t, view, "Near Me: off")
}
