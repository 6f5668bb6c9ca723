package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/tui/common"
)

// MenuItem represents a menu option on the home screen
type MenuItem struct {
	Title       string
	Description string
	Icon        string
	Screen      string // Screen identifier to navigate to
}

// HomeModel is the model for the home/menu screen
type HomeModel struct {
	items  []MenuItem
	cursor int
	keys   common.MenuKeyMap
	help   help.Model
	role   models.Role

	width  int
	height int
}

// NewHomeModel creates the home screen for the signed-in role. Each
// role sees only the entries it can act on.
func NewHomeModel(role models.Role) HomeModel {
	items := []MenuItem{
		{Title: "Donations", Description: "Browse surplus food listings", Icon: "🍲", Screen: "donations"},
		{Title: "Requests", Description: "Browse open needs", Icon: "📋", Screen: "requests"},
	}

	switch role {
	case models.RoleDonor:
		items = append(items, MenuItem{
			Title: "New Donation", Description: "Post surplus food", Icon: "➕", Screen: "new_donation",
		})
	case models.RoleRecipient:
		items = append(items, MenuItem{
			Title: "New Request", Description: "Post a need", Icon: "➕", Screen: "new_request",
		})
	case models.RoleVolunteer:
		items = append(items, MenuItem{
			Title: "Deliveries", Description: "Claim and track deliveries", Icon: "🚚", Screen: "deliveries",
		})
	}

	items = append(items, MenuItem{
		Title: "Settings", Description: "Session and preferences", Icon: "⚙", Screen: "settings",
	})

	return HomeModel{
		items: items,
		keys:  common.DefaultMenuKeyMap(),
		help:  help.New(),
		role:  role,
	}
}

// Init initializes the home model
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the home screen
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			item := m.items[m.cursor]
			return m, navigateTo(item.Screen)
		}
	}

	return m, nil
}

// View renders the home screen
func (m HomeModel) View() string {
	var content strings.Builder

	content.WriteString(common.Logo())
	content.WriteString("\n")
	content.WriteString(common.SubtitleStyle.Render(fmt.Sprintf("Signed in as %s", m.role)))
	content.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("%s  %s", item.Icon, item.Title)
		if i == m.cursor {
			content.WriteString(common.MenuItemSelectedStyle.Render("▸ " + line))
			content.WriteString("\n")
			content.WriteString(common.MutedTextStyle.PaddingLeft(6).Render(item.Description))
		} else {
			content.WriteString(common.MenuItemStyle.Render("  " + line))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content.String(),
	)
}
