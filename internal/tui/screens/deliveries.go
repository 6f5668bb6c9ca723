package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mealbridge/mealcli/internal/api"
	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/tui/common"
)

// DeliveriesState represents the current state of the deliveries screen
type DeliveriesState int

const (
	DeliveriesStateLoading DeliveriesState = iota
	DeliveriesStateReady
	DeliveriesStateActing
	DeliveriesStateError
)

// Deliveries screen messages
type (
	// DeliveriesLoadedMsg is sent when the delivery list is fetched
	DeliveriesLoadedMsg struct {
		Deliveries []models.Delivery
	}

	// DeliveriesErrorMsg is sent when fetching fails
	DeliveriesErrorMsg struct {
		Err error
	}

	// DeliveryActedMsg is sent when a claim or status change succeeded;
	// the list is refetched to pick up the server's view.
	DeliveryActedMsg struct{}

	// DeliveryActionErrorMsg is sent when a claim or status change failed
	DeliveryActionErrorMsg struct {
		Err error
	}
)

// DeliveriesModel is the model for the volunteer deliveries screen
type DeliveriesModel struct {
	client      *api.Client
	volunteerID string

	deliveries []models.Delivery

	table   table.Model
	spinner spinner.Model
	help    help.Model
	keys    common.FeedKeyMap

	state  DeliveriesState
	err    error
	notice string

	width  int
	height int
}

// NewDeliveriesModel creates the deliveries screen for a volunteer
func NewDeliveriesModel(client *api.Client, volunteerID string) DeliveriesModel {
	columns := []table.Column{
		{Title: "Pickup", Width: 24},
		{Title: "Dropoff", Width: 24},
		{Title: "Status", Width: 16},
		{Title: "Mine", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(common.ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(common.ColorSecondary)
	s.Selected = s.Selected.
		Foreground(common.ColorForeground).
		Background(common.ColorPrimary).
		Bold(true)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorPrimary)

	return DeliveriesModel{
		client:      client,
		volunteerID: volunteerID,
		table:       t,
		spinner:     sp,
		help:        help.New(),
		keys:        common.DefaultFeedKeyMap(),
		state:       DeliveriesStateLoading,
	}
}

// Init initializes the deliveries model
func (m DeliveriesModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadDeliveries(),
	)
}

// Update handles messages for the deliveries screen
func (m DeliveriesModel) Update(msg tea.Msg) (DeliveriesModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-12, 4))
		return m, nil

	case tea.KeyMsg:
		if m.state == DeliveriesStateActing {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Back):
			return m, navigateTo("home")

		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			if m.state != DeliveriesStateLoading {
				m.state = DeliveriesStateLoading
				m.notice = ""
				return m, tea.Batch(m.spinner.Tick, m.loadDeliveries())
			}

		case key.Matches(msg, m.keys.Select):
			if m.state == DeliveriesStateReady {
				return m.act()
			}
		}

	case DeliveriesLoadedMsg:
		m.state = DeliveriesStateReady
		m.deliveries = msg.Deliveries
		m.refreshRows()
		return m, nil

	case DeliveriesErrorMsg:
		m.state = DeliveriesStateError
		m.err = msg.Err
		return m, nil

	case DeliveryActedMsg:
		m.state = DeliveriesStateLoading
		return m, tea.Batch(m.spinner.Tick, m.loadDeliveries())

	case DeliveryActionErrorMsg:
		m.state = DeliveriesStateReady
		m.notice = api.UserMessage(msg.Err)
		return m, nil

	case spinner.TickMsg:
		if m.state == DeliveriesStateLoading || m.state == DeliveriesStateActing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.state == DeliveriesStateReady {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// act claims the selected delivery, or advances its status if it is
// already this volunteer's.
func (m DeliveriesModel) act() (DeliveriesModel, tea.Cmd) {
	d := m.selected()
	if d == nil {
		return m, nil
	}

	if !d.Claimed() {
		m.state = DeliveriesStateActing
		m.notice = ""
		return m, tea.Batch(m.spinner.Tick, m.claim(d.ID))
	}

	if d.VolunteerID != m.volunteerID {
		m.notice = "Another volunteer has this delivery."
		return m, nil
	}

	next, ok := nextDeliveryStatus(d.Status)
	if !ok {
		m.notice = "This delivery is already completed."
		return m, nil
	}

	m.state = DeliveriesStateActing
	m.notice = ""
	return m, tea.Batch(m.spinner.Tick, m.advance(d.ID, next))
}

// nextDeliveryStatus returns the status a claimed delivery moves to.
func nextDeliveryStatus(current models.Status) (models.Status, bool) {
	for i, s := range models.DeliveryTransitions {
		if s == current {
			if i+1 < len(models.DeliveryTransitions) {
				return models.DeliveryTransitions[i+1], true
			}
			return "", false
		}
	}
	// Freshly claimed deliveries start the chain.
	return models.DeliveryTransitions[0], true
}

func (m DeliveriesModel) selected() *models.Delivery {
	if len(m.deliveries) == 0 {
		return nil
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.deliveries) {
		return nil
	}
	return &m.deliveries[idx]
}

func (m *DeliveriesModel) refreshRows() {
	rows := make([]table.Row, len(m.deliveries))
	for i, d := range m.deliveries {
		mine := ""
		if d.VolunteerID == m.volunteerID && m.volunteerID != "" {
			mine = "✓"
		}
		status := string(d.Status)
		if !d.Claimed() {
			status = "unclaimed"
		}
		rows[i] = table.Row{
			truncate(orDash(d.Pickup), 24),
			truncate(orDash(d.Dropoff), 24),
			status,
			mine,
		}
	}
	m.table.SetRows(rows)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// View renders the deliveries screen
func (m DeliveriesModel) View() string {
	var content strings.Builder

	content.WriteString(common.TitleStyle.Render("Deliveries"))
	content.WriteString("\n")
	content.WriteString(common.SubtitleStyle.Render("Claim a delivery, then press enter to advance its status"))
	content.WriteString("\n\n")

	switch m.state {
	case DeliveriesStateLoading:
		content.WriteString(fmt.Sprintf("%s Loading deliveries...", m.spinner.View()))

	case DeliveriesStateActing:
		content.WriteString(fmt.Sprintf("%s Updating...", m.spinner.View()))

	case DeliveriesStateError:
		content.WriteString(common.ErrorTextStyle.Render("Error: " + api.UserMessage(m.err)))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press 'r' to retry"))

	case DeliveriesStateReady:
		if m.notice != "" {
			content.WriteString(common.WarningTextStyle.Render(m.notice))
			content.WriteString("\n\n")
		}
		if len(m.deliveries) == 0 {
			content.WriteString(common.MutedTextStyle.Render("No deliveries right now."))
		} else {
			content.WriteString(m.table.View())
		}
	}

	content.WriteString("\n\n")
	helpText := []string{
		common.FormatHelp("↑/↓", "navigate"),
		common.FormatHelp("enter", "claim/advance"),
		common.FormatHelp("r", "refresh"),
		common.FormatHelp("esc", "back"),
	}
	content.WriteString(strings.Join(helpText, "  "))

	style := lipgloss.NewStyle().
		Width(m.width).
		Padding(1, 2)

	return style.Render(content.String())
}

func (m DeliveriesModel) loadDeliveries() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		deliveries, err := m.client.ListDeliveries(ctx, "")
		if err != nil {
			return DeliveriesErrorMsg{Err: err}
		}
		return DeliveriesLoadedMsg{Deliveries: deliveries}
	}
}

func (m DeliveriesModel) claim(deliveryID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := m.client.ClaimDelivery(ctx, deliveryID, m.volunteerID); err != nil {
			return DeliveryActionErrorMsg{Err: err}
		}
		return DeliveryActedMsg{}
	}
}

func (m DeliveriesModel) advance(deliveryID string, status models.Status) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := m.client.UpdateDeliveryStatus(ctx, deliveryID, status); err != nil {
			return DeliveryActionErrorMsg{Err: err}
		}
		return DeliveryActedMsg{}
	}
}
