package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/session"
	"github.com/mealbridge/mealcli/internal/tui/common"
)

// SettingsState represents the current state of the settings screen
type SettingsState int

const (
	SettingsStateView SettingsState = iota
	SettingsStateConfirmSignOut
	SettingsStateSignedOut
)

// SignedOutMsg is sent after the stored session has been removed.
type SignedOutMsg struct{}

// SettingsModel is the model for the settings screen
type SettingsModel struct {
	sess models.Session
	env  models.Environment

	keys common.MenuKeyMap
	help help.Model

	state SettingsState
	err   error

	width  int
	height int
}

// NewSettingsModel creates the settings screen
func NewSettingsModel(sess models.Session, env models.Environment) SettingsModel {
	return SettingsModel{
		sess:  sess,
		env:   env,
		keys:  common.DefaultMenuKeyMap(),
		help:  help.New(),
		state: SettingsStateView,
	}
}

// Init initializes the settings model
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case SettingsStateView:
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case msg.String() == "esc":
				return m, navigateTo("home")
			case msg.String() == "s":
				m.state = SettingsStateConfirmSignOut
				return m, nil
			}

		case SettingsStateConfirmSignOut:
			switch msg.String() {
			case "y", "Y":
				return m, signOut()
			case "n", "N", "esc":
				m.state = SettingsStateView
				return m, nil
			}

		case SettingsStateSignedOut:
			return m, navigateTo("login")
		}

	case SignedOutMsg:
		m.state = SettingsStateSignedOut
		return m, nil
	}

	return m, nil
}

// View renders the settings screen
func (m SettingsModel) View() string {
	var content strings.Builder

	content.WriteString(common.TitleStyle.Render("Settings"))
	content.WriteString("\n\n")

	switch m.state {
	case SettingsStateView:
		rows := []struct{ label, value string }{
			{"Role", string(m.sess.Role)},
			{"Account ID", m.sess.ActorID},
			{"Environment", string(m.env)},
			{"API endpoint", m.env.BaseURL()},
			{"Token", maskToken(m.sess.Token)},
		}
		for _, r := range rows {
			content.WriteString(common.MutedTextStyle.Width(14).Render(r.label))
			content.WriteString(common.TextStyle.Render(r.value))
			content.WriteString("\n")
		}

		content.WriteString("\n")
		content.WriteString(common.MutedTextStyle.Render("Press "))
		content.WriteString(common.HelpKeyStyle.Render("s"))
		content.WriteString(common.MutedTextStyle.Render(" to sign out, "))
		content.WriteString(common.HelpKeyStyle.Render("esc"))
		content.WriteString(common.MutedTextStyle.Render(" to go back."))

	case SettingsStateConfirmSignOut:
		content.WriteString("Sign out and remove the stored session?")
		content.WriteString("\n\n")
		content.WriteString(common.HelpKeyStyle.Render("y"))
		content.WriteString(common.MutedTextStyle.Render(" yes  "))
		content.WriteString(common.HelpKeyStyle.Render("n"))
		content.WriteString(common.MutedTextStyle.Render(" no"))

	case SettingsStateSignedOut:
		content.WriteString(common.SuccessTextStyle.Render("✓ Signed out."))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press any key to return to sign in."))
	}

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content.String(),
	)
}

// signOut removes the persisted session
func signOut() tea.Cmd {
	return func() tea.Msg {
		session.DeleteSession()
		return SignedOutMsg{}
	}
}

// maskToken shows just enough of the token to recognize it
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("•", len(token))
	}
	return fmt.Sprintf("%s…%s", token[:4], token[len(token)-4:])
}
