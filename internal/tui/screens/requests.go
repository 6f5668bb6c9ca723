package screens

import (
	"context"
	"fmt"
	"strconv"
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

// RequestsState represents the current state of the requests screen
type RequestsState int

const (
	RequestsStateLoading RequestsState = iota
	RequestsStateReady
	RequestsStateError
)

// Requests screen messages
type (
	// RequestsLoadedMsg is sent when the feed is fetched
	RequestsLoadedMsg struct {
		Requests []models.Request
	}

	// RequestsErrorMsg is sent when fetching fails
	RequestsErrorMsg struct {
		Err error
	}
)

// RequestsModel is the model for the requests feed screen
type RequestsModel struct {
	client  *api.Client
	locator geo.Locator

	requests []models.Request
	visible  []models.Request
	query    feed.Query
	category int

	table   table.Model
	spinner spinner.Model
	help    help.Model
	keys    common.FeedKeyMap

	state    RequestsState
	err      error
	notice   string
	locating bool
	// locateGen discards geolocation results that arrive after the
	// toggle changed.
	locateGen int

	width  int
	height int
}

// NewRequestsModel creates a new requests feed model
func NewRequestsModel(client *api.Client, locator geo.Locator) RequestsModel {
	columns := []table.Column{
		{Title: "Food", Width: 16},
		{Title: "People", Width: 8},
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

	return RequestsModel{
		client:  client,
		locator: locator,
		table:   t,
		spinner: sp,
		help:    help.New(),
		keys:    common.DefaultFeedKeyMap(),
		state:   RequestsStateLoading,
		query:   feed.Query{Category: feed.CategoryAll},
	}
}

// Init initializes the requests model
func (m RequestsModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadRequests(),
	)
}

// Update handles messages for the requests screen
func (m RequestsModel) Update(msg tea.Msg) (RequestsModel, tea.Cmd) {
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
			if m.state != RequestsStateLoading {
				m.state = RequestsStateLoading
				m.notice = ""
				return m, tea.Batch(m.spinner.Tick, m.loadRequests())
			}

		case key.Matches(msg, m.keys.Category):
			if m.state == RequestsStateReady {
				m.category = (m.category + 1) % len(donationCategories)
				m.query.Category = donationCategories[m.category]
				m.applyQuery()
				return m, nil
			}

		case key.Matches(msg, m.keys.NearMe):
			if m.state == RequestsStateReady {
				return m.toggleNearMe()
			}
		}

	case RequestsLoadedMsg:
		m.state = RequestsStateReady
		m.requests = msg.Requests
		m.applyQuery()
		return m, nil

	case RequestsErrorMsg:
		m.state = RequestsStateError
		m.err = msg.Err
		return m, nil

	case LocatedMsg:
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
		m.locating = false
		m.query.Reference = nil
		m.query.SortByDistance = false
		m.notice = "Could not determine your location; showing original order."
		m.applyQuery()
		return m, nil

	case spinner.TickMsg:
		if m.state == RequestsStateLoading || m.locating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.state == RequestsStateReady {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m RequestsModel) toggleNearMe() (RequestsModel, tea.Cmd) {
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
	return m, tea.Batch(m.spinner.Tick, m.locateRequests(m.locateGen))
}

// applyQuery recomputes the visible slice and table rows
func (m *RequestsModel) applyQuery() {
	m.visible = feed.Apply(m.query, m.requests)

	rows := make([]table.Row, len(m.visible))
	for i, r := range m.visible {
		people := "-"
		if r.NumPeople > 0 {
			people = strconv.Itoa(r.NumPeople)
		}
		loc := r.Location
		if loc == "" {
			loc = r.Addr
		}
		if loc == "" {
			loc = "-"
		}
		status := string(r.Status)
		if status == "" {
			status = "-"
		}
		dist := "-"
		if km, known := feed.Distance(m.query, r); known {
			dist = fmt.Sprintf("%.1f km", km)
		}
		rows[i] = table.Row{r.FoodType, people, truncate(loc, 28), status, dist}
	}
	m.table.SetRows(rows)
}

// View renders the requests screen
func (m RequestsModel) View() string {
	var content strings.Builder

	content.WriteString(common.TitleStyle.Render("Requests"))
	content.WriteString("\n")
	content.WriteString(common.SubtitleStyle.Render("Open needs from recipient organizations"))
	content.WriteString("\n\n")

	switch m.state {
	case RequestsStateLoading:
		content.WriteString(fmt.Sprintf("%s Loading requests...", m.spinner.View()))

	case RequestsStateError:
		content.WriteString(common.ErrorTextStyle.Render("Error: " + api.UserMessage(m.err)))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press 'r' to retry"))

	case RequestsStateReady:
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
			content.WriteString(common.MutedTextStyle.Render("No requests found."))
		} else {
			content.WriteString(common.MutedTextStyle.Render(
				fmt.Sprintf("%d of %d request(s)", len(m.visible), len(m.requests))))
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

// Selected returns the currently highlighted request, if any
func (m RequestsModel) Selected() *models.Request {
	if m.state != RequestsStateReady || len(m.visible) == 0 {
		return nil
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return nil
	}
	return &m.visible[idx]
}

func (m RequestsModel) loadRequests() tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return RequestsErrorMsg{Err: fmt.Errorf("no API client")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		requests, err := m.client.ListRequests(ctx)
		if err != nil {
			return RequestsErrorMsg{Err: err}
		}

		return RequestsLoadedMsg{Requests: requests}
	}
}

func (m RequestsModel) locateRequests(gen int) tea.Cmd {
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
