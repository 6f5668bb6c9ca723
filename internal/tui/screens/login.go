package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mealbridge/mealcli/internal/api"
	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/session"
	"github.com/mealbridge/mealcli/internal/tui/common"
)

// LoginState represents the current state of the login screen
type LoginState int

const (
	LoginStateInput LoginState = iota
	LoginStateValidating
	LoginStateSuccess
	LoginStateError
)

// Login messages
type (
	// LoginSuccessMsg is sent when credentials are validated successfully
	LoginSuccessMsg struct {
		Session models.Session
	}

	// LoginErrorMsg is sent when validation fails
	LoginErrorMsg struct {
		Err error
	}
)

// LoginModel is the model for the login screen
type LoginModel struct {
	client        *api.Client
	emailInput    textinput.Model
	passwordInput textinput.Model
	spinner       spinner.Model
	help          help.Model
	keys          common.FormKeyMap

	focusIndex int
	state      LoginState
	err        error

	width  int
	height int
}

// NewLoginModel creates a new login screen model. The client carries no
// token yet; login is the call that obtains one.
func NewLoginModel(client *api.Client) LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.org"
	email.CharLimit = 128
	email.Width = 50
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 50
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorPrimary)

	return LoginModel{
		client:        client,
		emailInput:    email,
		passwordInput: password,
		spinner:       sp,
		help:          help.New(),
		keys:          common.DefaultFormKeyMap(),
		focusIndex:    0,
		state:         LoginStateInput,
	}
}

// Init initializes the login model
func (m LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the login screen
func (m LoginModel) Update(msg tea.Msg) (LoginModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// The submit control is disabled while phase 1 is in flight.
		if m.state == LoginStateValidating {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case msg.String() == "ctrl+r":
			return m, navigateTo("register")

		case key.Matches(msg, m.keys.Tab):
			m.focusIndex = (m.focusIndex + 1) % 3 // 2 inputs + submit button
			m.updateFocus()
			return m, nil

		case key.Matches(msg, m.keys.ShiftTab):
			m.focusIndex--
			if m.focusIndex < 0 {
				m.focusIndex = 2
			}
			m.updateFocus()
			return m, nil

		case key.Matches(msg, m.keys.Submit):
			if m.focusIndex == 2 || m.canSubmit() {
				return m.submit()
			}
			m.focusIndex = (m.focusIndex + 1) % 3
			m.updateFocus()
			return m, nil
		}

	case LoginSuccessMsg:
		m.state = LoginStateSuccess
		return m, nil

	case LoginErrorMsg:
		m.state = LoginStateError
		m.err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.state == LoginStateValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.state == LoginStateInput || m.state == LoginStateError {
		var cmd tea.Cmd
		if m.focusIndex == 0 {
			m.emailInput, cmd = m.emailInput.Update(msg)
			cmds = append(cmds, cmd)
		} else if m.focusIndex == 1 {
			m.passwordInput, cmd = m.passwordInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the login screen
func (m LoginModel) View() string {
	var content strings.Builder

	content.WriteString(common.Logo())
	content.WriteString("\n")
	content.WriteString(common.TitleStyle.Render("Welcome to MealBridge"))
	content.WriteString("\n")
	content.WriteString(common.SubtitleStyle.Render("Sign in to continue"))
	content.WriteString("\n\n")

	switch m.state {
	case LoginStateInput, LoginStateError:
		content.WriteString(m.renderForm())

	case LoginStateValidating:
		content.WriteString(fmt.Sprintf("%s Signing in...", m.spinner.View()))

	case LoginStateSuccess:
		content.WriteString(common.SuccessTextStyle.Render("✓ Signed in!"))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Session saved to keyring."))
	}

	content.WriteString("\n\n")
	content.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content.String(),
	)
}

func (m LoginModel) renderForm() string {
	var b strings.Builder

	emailLabel := "Email"
	if m.focusIndex == 0 {
		emailLabel = common.SelectedStyle.Render(emailLabel)
	} else {
		emailLabel = common.UnselectedStyle.Render(emailLabel)
	}
	b.WriteString(emailLabel)
	b.WriteString("\n")

	inputStyle := common.InputStyle
	if m.focusIndex == 0 {
		inputStyle = common.FocusedInputStyle
	}
	b.WriteString(inputStyle.Render(m.emailInput.View()))
	b.WriteString("\n\n")

	passwordLabel := "Password"
	if m.focusIndex == 1 {
		passwordLabel = common.SelectedStyle.Render(passwordLabel)
	} else {
		passwordLabel = common.UnselectedStyle.Render(passwordLabel)
	}
	b.WriteString(passwordLabel)
	b.WriteString("\n")

	inputStyle = common.InputStyle
	if m.focusIndex == 1 {
		inputStyle = common.FocusedInputStyle
	}
	b.WriteString(inputStyle.Render(m.passwordInput.View()))
	b.WriteString("\n\n")

	buttonText := "  Sign in  "
	if m.focusIndex == 2 {
		b.WriteString(common.ButtonStyle.Render(buttonText))
	} else if m.canSubmit() {
		b.WriteString(common.ButtonStyle.Background(common.ColorBorder).Render(buttonText))
	} else {
		b.WriteString(common.DisabledButtonStyle.Render(buttonText))
	}

	if m.state == LoginStateError && m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(common.ErrorTextStyle.Render("Error: " + api.UserMessage(m.err)))
	}

	b.WriteString("\n\n")
	b.WriteString(common.MutedTextStyle.Render("New here? Press "))
	b.WriteString(common.HelpKeyStyle.Render("ctrl+r"))
	b.WriteString(common.MutedTextStyle.Render(" to register."))

	return b.String()
}

func (m *LoginModel) updateFocus() {
	m.emailInput.Blur()
	m.passwordInput.Blur()

	switch m.focusIndex {
	case 0:
		m.emailInput.Focus()
	case 1:
		m.passwordInput.Focus()
	}
}

func (m LoginModel) canSubmit() bool {
	return strings.TrimSpace(m.emailInput.Value()) != "" &&
		strings.TrimSpace(m.passwordInput.Value()) != ""
}

func (m LoginModel) submit() (LoginModel, tea.Cmd) {
	// Required-field validation happens before any network call.
	if !m.canSubmit() {
		return m, nil
	}

	m.state = LoginStateValidating
	m.err = nil

	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()

	return m, tea.Batch(
		m.spinner.Tick,
		signIn(m.client, email, password),
	)
}

// signIn returns a command that authenticates and persists the session
func signIn(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		s, err := client.Login(context.Background(), email, password)
		if err != nil {
			return LoginErrorMsg{Err: err}
		}

		if err := session.SaveSession(s); err != nil {
			return LoginErrorMsg{Err: fmt.Errorf("failed to save session: %w", err)}
		}

		return LoginSuccessMsg{Session: *s}
	}
}
