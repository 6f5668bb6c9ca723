package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/tui/screens"
)

func TestNewApp(t *testing.T) {
	// Without a stored session the app starts at login; with one it
	// resumes at home. Either way the app must come up.
	app := NewApp(models.EnvDevelopment)

	assert.NotNil(t, app)
	assert.NotNil(t, app.client)
}

func TestApp_WindowSizeMsg(t *testing.T) {
	app := NewApp(models.EnvDevelopment)

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 50})
	updated := model.(*App)

	assert.Equal(t, 100, updated.width)
	assert.Equal(t, 50, updated.height)
	assert.True(t, updated.ready)
}

func TestApp_View_NotReady(t *testing.T) {
	app := NewApp(models.EnvDevelopment)
	app.ready = false

	assert.Equal(t, "Loading...", app.View())
}

func TestApp_LoginSuccessMsg(t *testing.T) {
	app := NewApp(models.EnvDevelopment)
	app.screen = ScreenLogin
	app.ready = true
	app.width = 80
	app.height = 24

	msg := screens.LoginSuccessMsg{
		Session: models.Session{Token: "tok", Role: models.RoleDonor, ActorID: "d1"},
	}

	model, _ := app.Update(msg)
	updated := model.(*App)

	assert.Equal(t, ScreenHome, updated.screen)
	assert.NotNil(t, updated.sess)
	assert.Equal(t, models.RoleDonor, updated.sess.Role)
}

func TestApp_HandleNavigation(t *testing.T) {
	app := NewApp(models.EnvDevelopment)
	app.sess = &models.Session{Token: "tok", Role: models.RoleVolunteer, ActorID: "v1"}
	app.screen = ScreenHome
	app.ready = true
	app.width = 80
	app.height = 24

	tests := []struct {
		screen   string
		expected Screen
	}{
		{"donations", ScreenDonations},
		{"requests", ScreenRequests},
		{"new_donation", ScreenNewDonation},
		{"new_request", ScreenNewRequest},
		{"deliveries", ScreenDeliveries},
		{"settings", ScreenSettings},
		{"register", ScreenRegister},
		{"home", ScreenHome},
	}

	for _, tt := range tests {
		model, _ := app.handleNavigation(tt.screen, nil)
		updated := model.(*App)
		assert.Equal(t, tt.expected, updated.screen, "navigation to %s", tt.screen)
	}
}

func TestApp_HandleNavigation_Back(t *testing.T) {
	app := NewApp(models.EnvDevelopment)
	app.screen = ScreenHome
	app.handleNavigation("donations", nil)

	model, _ := app.handleNavigation("back", nil)
	updated := model.(*App)

	assert.Equal(t, ScreenHome, updated.screen)
}

func TestApp_NavigateMsg(t *testing.T) {
	app := NewApp(models.EnvDevelopment)
	app.screen = ScreenHome
	app.ready = true
	app.width = 80
	app.height = 24

	model, _ := app.Update(screens.NavigateMsg{Screen: "donations"})
	updated := model.(*App)

	assert.Equal(t, ScreenDonations, updated.screen)
}

func TestScreenConstants(t *testing.T) {
	all := []Screen{
		ScreenLogin,
		ScreenRegister,
		ScreenHome,
		ScreenDonations,
		ScreenRequests,
		ScreenNewDonation,
		ScreenNewRequest,
		ScreenDeliveries,
		ScreenSettings,
	}

	seen := make(map[Screen]bool)
	for _, s := range all {
		assert.False(t, seen[s], "duplicate screen constant")
		seen[s] = true
	}
}
