package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealbridge/mealcli/internal/api"
	"github.com/mealbridge/mealcli/internal/geo"
	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/session"
	"github.com/mealbridge/mealcli/internal/tui/screens"
)

// Screen represents the current screen in the TUI.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenHome
	ScreenDonations
	ScreenRequests
	ScreenNewDonation
	ScreenNewRequest
	ScreenDeliveries
	ScreenSettings
)

// App is the main application model.
type App struct {
	screen     Screen
	prevScreen Screen
	width      int
	height     int
	ready      bool

	sess     *models.Session
	env      models.Environment
	client   *api.Client
	locator  geo.Locator
	geocoder geo.ReverseGeocoder

	// Screen models
	loginModel      screens.LoginModel
	registerModel   screens.RegisterModel
	homeModel       screens.HomeModel
	donationsModel  screens.DonationsModel
	requestsModel   screens.RequestsModel
	composeModel    screens.ComposeModel
	deliveriesModel screens.DeliveriesModel
	settingsModel   screens.SettingsModel
}

// NewApp creates a new application instance for the given environment.
func NewApp(env models.Environment) *App {
	baseURL := env.BaseURL()
	app := &App{
		screen:     ScreenLogin,
		env:        env,
		client:     api.NewClient("", api.WithBaseURL(baseURL)),
		locator:    geo.NewIPLocator(),
		geocoder:   geo.NewNominatimGeocoder(),
		loginModel: screens.NewLoginModel(api.NewClient("", api.WithBaseURL(baseURL))),
	}

	// Resume a stored session if one exists and is usable.
	sess, err := session.GetSession()
	if err == nil && sess != nil && sess.IsValid() {
		app.sess = sess
		app.client = api.NewClientFromSession(*sess, api.WithBaseURL(baseURL))
		app.screen = ScreenHome
		app.homeModel = screens.NewHomeModel(sess.Role)
	}

	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		return a.loginModel.Init()
	case ScreenHome:
		return a.homeModel.Init()
	}
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, a.forwardToCurrentScreen(msg)

	case screens.LoginSuccessMsg:
		sess := msg.Session
		a.sess = &sess
		a.client = api.NewClientFromSession(sess, api.WithBaseURL(a.env.BaseURL()))
		a.homeModel = screens.NewHomeModel(sess.Role)
		a.screen = ScreenHome
		return a, a.forwardToCurrentScreen(tea.WindowSizeMsg{
			Width:  a.width,
			Height: a.height,
		})

	case screens.NavigateMsg:
		return a.handleNavigation(msg.Screen, msg.Data)
	}

	return a, a.forwardToCurrentScreen(msg)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	switch a.screen {
	case ScreenLogin:
		return a.loginModel.View()
	case ScreenRegister:
		return a.registerModel.View()
	case ScreenHome:
		return a.homeModel.View()
	case ScreenDonations:
		return a.donationsModel.View()
	case ScreenRequests:
		return a.requestsModel.View()
	case ScreenNewDonation, ScreenNewRequest:
		return a.composeModel.View()
	case ScreenDeliveries:
		return a.deliveriesModel.View()
	case ScreenSettings:
		return a.settingsModel.View()
	default:
		return "Unknown screen"
	}
}

func (a *App) forwardToCurrentScreen(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch a.screen {
	case ScreenLogin:
		a.loginModel, cmd = a.loginModel.Update(msg)
	case ScreenRegister:
		a.registerModel, cmd = a.registerModel.Update(msg)
	case ScreenHome:
		a.homeModel, cmd = a.homeModel.Update(msg)
	case ScreenDonations:
		a.donationsModel, cmd = a.donationsModel.Update(msg)
	case ScreenRequests:
		a.requestsModel, cmd = a.requestsModel.Update(msg)
	case ScreenNewDonation, ScreenNewRequest:
		a.composeModel, cmd = a.composeModel.Update(msg)
	case ScreenDeliveries:
		a.deliveriesModel, cmd = a.deliveriesModel.Update(msg)
	case ScreenSettings:
		a.settingsModel, cmd = a.settingsModel.Update(msg)
	}

	return cmd
}

func (a *App) handleNavigation(screen string, _ interface{}) (tea.Model, tea.Cmd) {
	if screen == "back" {
		a.screen = a.prevScreen
		return a, a.forwardToCurrentScreen(tea.WindowSizeMsg{
			Width:  a.width,
			Height: a.height,
		})
	}

	a.prevScreen = a.screen

	var initCmd tea.Cmd
	sess := models.Session{}
	if a.sess != nil {
		sess = *a.sess
	}

	switch screen {
	case "login":
		a.screen = ScreenLogin
		a.loginModel = screens.NewLoginModel(api.NewClient("", api.WithBaseURL(a.env.BaseURL())))
		initCmd = a.loginModel.Init()
	case "register":
		a.screen = ScreenRegister
		a.registerModel = screens.NewRegisterModel(api.NewClient("", api.WithBaseURL(a.env.BaseURL())))
		initCmd = a.registerModel.Init()
	case "donations":
		a.screen = ScreenDonations
		a.donationsModel = screens.NewDonationsModel(a.client, a.locator)
		initCmd = a.donationsModel.Init()
	case "requests":
		a.screen = ScreenRequests
		a.requestsModel = screens.NewRequestsModel(a.client, a.locator)
		initCmd = a.requestsModel.Init()
	case "new_donation":
		a.screen = ScreenNewDonation
		a.composeModel = screens.NewComposeModel(a.client, screens.ComposeDonation, sess, a.locator, a.geocoder)
		initCmd = a.composeModel.Init()
	case "new_request":
		a.screen = ScreenNewRequest
		a.composeModel = screens.NewComposeModel(a.client, screens.ComposeRequest, sess, a.locator, a.geocoder)
		initCmd = a.composeModel.Init()
	case "deliveries":
		a.screen = ScreenDeliveries
		a.deliveriesModel = screens.NewDeliveriesModel(a.client, sess.ActorID)
		initCmd = a.deliveriesModel.Init()
	case "settings":
		a.screen = ScreenSettings
		a.settingsModel = screens.NewSettingsModel(sess, a.env)
		initCmd = a.settingsModel.Init()
	case "home":
		a.screen = ScreenHome
	}

	sizeCmd := a.forwardToCurrentScreen(tea.WindowSizeMsg{
		Width:  a.width,
		Height: a.height,
	})

	if initCmd != nil {
		return a, tea.Batch(initCmd, sizeCmd)
	}
	return a, sizeCmd
}
