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
	"github.com/mealbridge/mealcli/internal/feed"
	"github.com/mealbridge/mealcli/internal/geo"
	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/tui/common"
)

// DonationsState represents the current state of the donations screen
type DonationsState int

const (
	DonationsStateLoading DonationsState = iota
	DonationsStateReady
	DonationsStateError
)

// Donation feed categories cycled by the category key. "all" disables
// the filter.
var donationCategories = []string{feed.CategoryAll, "cooked", "packaged", "produce", "bakery"}

// Donations screen messages
type (
	// DonationsLoadedMsg is sent when the feed is fetched
	DonationsLoadedMsg struct {
		Donations []models.Donation
	}

	// DonationsErrorMsg is sent when fetching fails
	DonationsErrorMsg struct {
		Err error
	}

	// LocatedMsg is sent when geolocation resolves. Gen ties the result
	// to the request that started it, so a stale result can be dropped.
	LocatedMsg struct {
		Gen   int
		Coord *models.Coordinate
	}

	// LocateErrorMsg is sent when geolocation fails
	LocateErrorMsg struct {
		Gen int
		Err error
	}
)

// DonationsModel is the model for the donations feed screen
type DonationsModel struct {
	client  *api.Client
	locator geo.Locator

	donations []models.Donation
	visible   []models.Donation
	query     feed.Query
	category  int

	table   table.Model
	spinner spinner.Model
	help    help.Model
	keys    common.FeedKeyMap

	state    DonationsState
	err      error
	notice   string
	locating bool
	// locateGen is bumped on every geolocation request and on every
	// toggle-off, so an in-flight result that arrives late is discarded.
	locateGen int

	width  int
	height int
}

// NewDonationsModel creates a new donations feed model
func NewDonationsModel(client *api.Client, locator geo.Locator) DonationsModel {
	columns := []table.Column{
		{Title: "Food", Width: 16},
		{Title: "Qty", Width: 10},
		{Title: "Location", Width: 28},
		{Title: "Status", Width: 12},
		{Title: "Distance", Width: 10},
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

	return DonationsModel{
		client:  client,
		locator: locator,
		table:   t,
		spinner: sp,
		help:    help.New(),
		keys:    common.DefaultFeedKeyMap(),
		state:   DonationsStateLoading,
		query:   feed.Query{Category: feed.CategoryAll},
	}
}

// Init initializes the donations model
func (m DonationsModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadDonations(),
	)
}

// Update handles messages for the donations screen
func (m DonationsModel) Update(msg tea.Msg) (DonationsModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(m.height-14, 4))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, navigateTo("home")

		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			if m.state != DonationsStateLoading {
				m.state = DonationsStateLoading
				m.notice = ""
				return m, tea.Batch(m.spinner.Tick, m.loadDonations())
			}

		case key.Matches(msg, m.keys.Category):
			if m.state == DonationsStateReady {
				m.category = (m.category + 1) % len(donationCategories)
				m.query.Category = donationCategories[m.category]
				m.applyQuery()
				return m, nil
			}

		case key.Matches(msg, m.keys.NearMe):
			if m.state == DonationsStateReady {
				return m.toggleNearMe()
			}
		}

	case DonationsLoadedMsg:
		m.state = DonationsStateReady
		m.donations = msg.Donations
		m.applyQuery()
		return m, nil

	case DonationsErrorMsg:
		// A failed fetch takes down this feed only, never the app.
		m.state = DonationsStateError
		m.err = msg.Err
		return m, nil

	case LocatedMsg:
		// Discard stale results: the user may have toggled Near Me off
		// (or retried) while this request was in flight.
		if msg.Gen != m.locateGen || !m.locating {
			return m, nil
		}
		m.locating = false
		m.query.Reference = msg.Coord
		m.query.SortByDistance = true
		m.applyQuery()
		return m, nil

	case LocateErrorMsg:
		if msg.Gen != m.locateGen || !m.locating {
			return m, nil
		}
		// Revert the toggle and tell the user; the feed itself is fine.
		m.locating = false
		m.query.Reference = nil
		m.query.SortByDistance = false
		m.notice = "Could not determine your location; showing original order."
		m.applyQuery()
		return m, nil

	case spinner.TickMsg:
		if m.state == DonationsStateLoading || m.locating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.state == DonationsStateReady {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// toggleNearMe flips distance sorting. Turning it on starts an
// asynchronous geolocation request; turning it off drops the reference
// point immediately so no stale position lingers.
func (m DonationsModel) toggleNearMe() (DonationsModel, tea.Cmd) {
	if m.query.SortByDistance || m.locating {
		m.locateGen++
		m.locating = false
		m.query.Reference = nil
		m.query.SortByDistance = false
		m.notice = ""
		m.applyQuery()
		return m, nil
	}

	m.locateGen++
	m.locating = true
	m.notice = ""
	return m, tea.Batch(m.spinner.Tick, m.locate(m.locateGen))
}

// applyQuery recomputes the visible slice and table rows
func (m *DonationsModel) applyQuery() {
	m.visible = feed.Apply(m.query, m.donations)

	rows := make([]table.Row, len(m.visible))
	for i, d := range m.visible {
		qty := d.Quantity
		if qty == "" {
			qty = "-"
		}
		loc := d.Location
		if loc == "" {
			loc = d.Addr
		}
		if loc == "" {
			loc = "-"
		}
		status := string(d.Status)
		if status == "" {
			status = "-"
		}
		dist := "-"
		if km, known := feed.Distance(m.query, d); known {
			dist = fmt.Sprintf("%.1f km", km)
		}
		rows[i] = table.Row{d.FoodType, qty, truncate(loc, 28), status, dist}
	}
	m.table.SetRows(rows)
}

// View renders the donations screen
func (m DonationsModel) View() string {
	var content strings.Builder

	content.WriteString(common.TitleStyle.Render("Donations"))
	content.WriteString("\n")
	content.WriteString(common.SubtitleStyle.Render("Surplus food near you"))
	content.WriteString("\n\n")

	switch m.state {
	case DonationsStateLoading:
		content.WriteString(fmt.Sprintf("%s Loading donations...", m.spinner.View()))

	case DonationsStateError:
		content.WriteString(common.ErrorTextStyle.Render("Error: " + api.UserMessage(m.err)))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press 'r' to retry"))

	case DonationsStateReady:
		var status []string
		status = append(status, fmt.Sprintf("Category: %s", m.query.Category))
		switch {
		case m.locating:
			status = append(status, fmt.Sprintf("%s locating...", m.spinner.View()))
		case m.query.SortByDistance:
			status = append(status, common.PrimaryTextStyle.Render("Near Me: on"))
		default:
			status = append(status, "Near Me: off")
		}
		content.WriteString(common.MutedTextStyle.Render(strings.Join(status, "   ")))
		content.WriteString("\n")

		if m.notice != "" {
			content.WriteString(common.WarningTextStyle.Render(m.notice))
			content.WriteString("\n")
		}
		content.WriteString("\n")

		if len(m.visible) == 0 {
			content.WriteString(common.MutedTextStyle.Render("No donations found."))
		} else {
			content.WriteString(common.MutedTextStyle.Render(
				fmt.Sprintf("%d of %d donation(s)", len(m.visible), len(m.donations))))
			content.WriteString("\n\n")
			content.WriteString(m.table.View())
		}
	}

	content.WriteString("\n\n")
	helpText := []string{
		common.FormatHelp("↑/↓", "navigate"),
		common.FormatHelp("m", "near me"),
		common.FormatHelp("c", "category"),
		common.FormatHelp("r", "refresh"),
		common.FormatHelp("esc", "back"),
	}
	content.WriteString(strings.Join(helpText, "  "))

	style := lipgloss.NewStyle().
		Width(m.width).
		Padding(1, 2)

	return style.Render(content.String())
}

// Selected returns the currently highlighted donation, if any
func (m DonationsModel) Selected() *models.Donation {
	if m.state != DonationsStateReady || len(m.visible) == 0 {
		return nil
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}
	return &m.visible[idx]
}

func (m DonationsModel) loadDonations() tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return DonationsErrorMsg{Err: fmt.Errorf("no API client")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		donations, err := m.client.ListDonations(ctx)
		if err != nil {
			return DonationsErrorMsg{Err: err}
		}

		return DonationsLoadedMsg{Donations: donations}
	}
}

func (m DonationsModel) locate(gen int) tea.Cmd {
	return func() tea.Msg {
		if m.locator == nil {
			return LocateErrorMsg{Gen: gen, Err: geo.ErrLocationUnavailable}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		coord, err := m.locator.Current(ctx)
		if err != nil {
			return LocateErrorMsg{Gen: gen, Err: err}
		}
		return LocatedMsg{Gen: gen, Coord: coord}
	}
}

// truncate shortens a string to maxLen runes, adding "..." if needed.
// Cutting on runes keeps multi-byte addresses intact.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
