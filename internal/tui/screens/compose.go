package screens

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mealbridge/mealcli/internal/api"
	"github.com/mealbridge/mealcli/internal/geo"
	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/session"
	"github.com/mealbridge/mealcli/internal/submit"
	"github.com/mealbridge/mealcli/internal/tui/common"
)

// ComposeKind selects which listing type the form creates.
type ComposeKind int

const (
	ComposeDonation ComposeKind = iota
	ComposeRequest
)

// ComposeState represents the current state of the compose screen
type ComposeState int

const (
	// ComposeStateGating runs the posting-permission check before the
	// form is shown. The check always hits the server; cached flags are
	// only a hint.
	ComposeStateGating ComposeState = iota
	ComposeStateDenied
	ComposeStateInput
	ComposeStateSubmitting
	ComposeStateUploadFailed
	// ComposeStateFatal is terminal: the record may exist but its
	// identifier could not be recovered, so resubmitting risks a
	// duplicate. The user has to contact support.
	ComposeStateFatal
	ComposeStateComplete
)

// Compose screen messages
type (
	// GateAllowedMsg is sent when the server-side profile passes the
	// posting gate.
	GateAllowedMsg struct{}

	// GateDeniedMsg carries the specific unmet precondition.
	GateDeniedMsg struct {
		Err error
	}

	// AddressPrefillMsg carries a reverse-geocoded address suggestion.
	AddressPrefillMsg struct {
		Address string
		Coord   *models.Coordinate
	}

	// ComposeDoneMsg is sent when both phases finished.
	ComposeDoneMsg struct {
		EntityID string
	}

	// ComposeFailedMsg is sent when a phase failed. Retryable means the
	// metadata was committed and only uploads remain.
	ComposeFailedMsg struct {
		Err       error
		Retryable bool
	}
)

const composeFieldCount = 6 // food, detail, description, location, photo, submit

// ComposeModel is the model for the new-donation / new-request form
type ComposeModel struct {
	client *api.Client
	kind   ComposeKind
	sess   models.Session

	locator  geo.Locator
	geocoder geo.ReverseGeocoder

	foodInput     textinput.Model
	detailInput   textinput.Model // quantity for donations, people count for requests
	descInput     textinput.Model
	locationInput textinput.Model
	photoInput    textinput.Model

	draft     *submit.Draft
	submitter *submit.Submitter
	coord     *models.Coordinate

	spinner spinner.Model
	help    help.Model
	keys    common.FormKeyMap

	focusIndex int
	state      ComposeState
	err        error

	width  int
	height int
}

// NewComposeModel creates the form for posting a donation or request.
func NewComposeModel(client *api.Client, kind ComposeKind, sess models.Session, locator geo.Locator, geocoder geo.ReverseGeocoder) ComposeModel {
	food := textinput.New()
	food.Placeholder = "e.g. cooked"
	food.CharLimit = 64
	food.Width = 44
	food.Focus()

	detail := textinput.New()
	if kind == ComposeDonation {
		detail.Placeholder = "e.g. 20 servings"
	} else {
		detail.Placeholder = "number of people"
	}
	detail.CharLimit = 64
	detail.Width = 44

	desc := textinput.New()
	desc.Placeholder = "short description"
	desc.CharLimit = 256
	desc.Width = 44

	location := textinput.New()
	location.Placeholder = "pickup address"
	location.CharLimit = 256
	location.Width = 44

	photo := textinput.New()
	photo.Placeholder = "path to photo (optional)"
	photo.CharLimit = 512
	photo.Width = 44

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorPrimary)

	return ComposeModel{
		client:        client,
		kind:          kind,
		sess:          sess,
		locator:       locator,
		geocoder:      geocoder,
		foodInput:     food,
		detailInput:   detail,
		descInput:     desc,
		locationInput: location,
		photoInput:    photo,
		draft:         submit.NewDraft(),
		spinner:       sp,
		help:          help.New(),
		keys:          common.DefaultFormKeyMap(),
		state:         ComposeStateGating,
	}
}

// Init starts the posting-permission check
func (m ComposeModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		m.checkGate(),
		m.prefillAddress(),
	)
}

// Update handles messages for the compose screen
func (m ComposeModel) Update(msg tea.Msg) (ComposeModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		// The whole form is inert while a submit is in flight.
		if m.state == ComposeStateSubmitting || m.state == ComposeStateGating {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			return m, navigateTo("home")

		case msg.String() == "r" && m.state == ComposeStateUploadFailed:
			return m.retryUploads()

		case key.Matches(msg, m.keys.Tab):
			if m.state == ComposeStateInput {
				m.focusIndex = (m.focusIndex + 1) % composeFieldCount
				m.updateFocus()
				return m, nil
			}

		case key.Matches(msg, m.keys.ShiftTab):
			if m.state == ComposeStateInput {
				m.focusIndex--
				if m.focusIndex < 0 {
					m.focusIndex = composeFieldCount - 1
				}
				m.updateFocus()
				return m, nil
			}

		case key.Matches(msg, m.keys.Submit):
			if m.state == ComposeStateInput {
				if m.focusIndex == composeFieldCount-1 {
					return m.submit()
				}
				m.focusIndex = (m.focusIndex + 1) % composeFieldCount
				m.updateFocus()
				return m, nil
			}
		}

	case GateAllowedMsg:
		m.state = ComposeStateInput
		return m, nil

	case GateDeniedMsg:
		m.state = ComposeStateDenied
		m.err = msg.Err
		return m, nil

	case AddressPrefillMsg:
		// A suggestion only; never overwrite what the user typed.
		if m.locationInput.Value() == "" && msg.Address != "" {
			m.locationInput.SetValue(msg.Address)
		}
		m.coord = msg.Coord
		return m, nil

	case ComposeDoneMsg:
		m.state = ComposeStateComplete
		return m, nil

	case ComposeFailedMsg:
		m.err = msg.Err
		switch {
		case msg.Retryable:
			m.state = ComposeStateUploadFailed
		case resolutionFailed(msg.Err):
			m.state = ComposeStateFatal
		default:
			// Phase 1 failed: nothing was created, the form stays
			// editable for a full resubmit.
			m.state = ComposeStateInput
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == ComposeStateSubmitting || m.state == ComposeStateGating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.state == ComposeStateInput {
		var cmd tea.Cmd
		switch m.focusIndex {
		case 0:
			m.foodInput, cmd = m.foodInput.Update(msg)
		case 1:
			m.detailInput, cmd = m.detailInput.Update(msg)
		case 2:
			m.descInput, cmd = m.descInput.Update(msg)
		case 3:
			m.locationInput, cmd = m.locationInput.Update(msg)
		case 4:
			m.photoInput, cmd = m.photoInput.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the compose screen
func (m ComposeModel) View() string {
	var content strings.Builder

	title := "New Donation"
	subtitle := "Post surplus food for pickup"
	if m.kind == ComposeRequest {
		title = "New Request"
		subtitle = "Post a need for your organization"
	}
	content.WriteString(common.TitleStyle.Render(title))
	content.WriteString("\n")
	content.WriteString(common.SubtitleStyle.Render(subtitle))
	content.WriteString("\n\n")

	switch m.state {
	case ComposeStateGating:
		content.WriteString(fmt.Sprintf("%s Checking your account...", m.spinner.View()))

	case ComposeStateDenied:
		content.WriteString(common.ErrorTextStyle.Render(m.err.Error()))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press esc to go back."))

	case ComposeStateInput:
		content.WriteString(m.renderForm())

	case ComposeStateSubmitting:
		content.WriteString(fmt.Sprintf("%s Submitting...", m.spinner.View()))

	case ComposeStateUploadFailed:
		content.WriteString(common.SuccessTextStyle.Render("✓ Listing created"))
		content.WriteString("\n")
		content.WriteString(common.ErrorTextStyle.Render("But the photo upload failed: " + api.UserMessage(m.err)))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press 'r' to retry the upload, esc to leave it without a photo."))

	case ComposeStateFatal:
		content.WriteString(common.ErrorTextStyle.Render("The listing could not be confirmed."))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("It may already exist, so do not resubmit. Please contact support."))

	case ComposeStateComplete:
		content.WriteString(common.SuccessTextStyle.Render("✓ Posted!"))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press esc to go back."))
	}

	content.WriteString("\n\n")
	content.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	style := lipgloss.NewStyle().
		Width(m.width).
		Padding(1, 2)

	return style.Render(content.String())
}

func (m ComposeModel) renderForm() string {
	var b strings.Builder

	detailLabel := "Quantity"
	if m.kind == ComposeRequest {
		detailLabel = "People to feed"
	}

	fields := []struct {
		label string
		input textinput.Model
	}{
		{"Food type", m.foodInput},
		{detailLabel, m.detailInput},
		{"Description", m.descInput},
		{"Location", m.locationInput},
		{"Photo", m.photoInput},
	}

	for i, f := range fields {
		label := f.label
		inputStyle := common.InputStyle
		if m.focusIndex == i {
			label = common.SelectedStyle.Render(label)
			inputStyle = common.FocusedInputStyle
		} else {
			label = common.UnselectedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(inputStyle.Render(f.input.View()))
		b.WriteString("\n\n")
	}

	buttonText := "  Post  "
	if m.focusIndex == composeFieldCount-1 {
		b.WriteString(common.ButtonStyle.Render(buttonText))
	} else if m.canSubmit() {
		b.WriteString(common.ButtonStyle.Background(common.ColorBorder).Render(buttonText))
	} else {
		b.WriteString(common.DisabledButtonStyle.Render(buttonText))
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(common.ErrorTextStyle.Render("Error: " + api.UserMessage(m.err)))
	}

	return b.String()
}

func (m *ComposeModel) updateFocus() {
	inputs := []*textinput.Model{
		&m.foodInput, &m.detailInput, &m.descInput, &m.locationInput, &m.photoInput,
	}
	for i, in := range inputs {
		if i == m.focusIndex {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (m ComposeModel) canSubmit() bool {
	return strings.TrimSpace(m.foodInput.Value()) != "" &&
		strings.TrimSpace(m.locationInput.Value()) != ""
}

func (m ComposeModel) submit() (ComposeModel, tea.Cmd) {
	// Required-field validation happens before phase 1 begins.
	if !m.canSubmit() {
		return m, nil
	}

	if path := strings.TrimSpace(m.photoInput.Value()); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			m.err = fmt.Errorf("cannot read photo: %w", err)
			return m, nil
		}
		m.draft.Attach(models.Attachment{
			Role:     models.RolePhoto,
			Filename: filepath.Base(path),
			Data:     data,
		})
	}

	m.state = ComposeStateSubmitting
	m.err = nil

	m.submitter = m.buildSubmitter()
	draft := m.draft

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := m.submitter.Run(ctx, draft); err != nil {
			return ComposeFailedMsg{Err: err, Retryable: draft.EntityID() != ""}
		}
		return ComposeDoneMsg{EntityID: draft.EntityID()}
	})
}

func (m ComposeModel) retryUploads() (ComposeModel, tea.Cmd) {
	m.state = ComposeStateSubmitting
	m.err = nil

	submitter := m.submitter
	draft := m.draft

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := submitter.RetryUploads(ctx, draft); err != nil {
			return ComposeFailedMsg{Err: err, Retryable: true}
		}
		return ComposeDoneMsg{EntityID: draft.EntityID()}
	})
}

// buildSubmitter wires the draft to the endpoint pair for this listing
// kind. Both create endpoints echo the record, so the echoed resolver
// applies.
func (m ComposeModel) buildSubmitter() *submit.Submitter {
	food := strings.TrimSpace(m.foodInput.Value())
	detail := strings.TrimSpace(m.detailInput.Value())
	desc := strings.TrimSpace(m.descInput.Value())
	location := strings.TrimSpace(m.locationInput.Value())

	var lat, lng *float64
	if m.coord != nil {
		la, ln := m.coord.Latitude, m.coord.Longitude
		lat, lng = &la, &ln
	}

	if m.kind == ComposeDonation {
		commit := func(ctx context.Context) (submit.CommitResult, error) {
			created, err := m.client.CreateDonation(ctx, models.CreateDonationRequest{
				DonorID:     m.sess.ActorID,
				FoodType:    food,
				Description: desc,
				Quantity:    detail,
				Location:    location,
				Latitude:    lat,
				Longitude:   lng,
			})
			if err != nil {
				return submit.CommitResult{}, err
			}
			return submit.CommitResult{ID: created.ID}, nil
		}
		return submit.NewSubmitter(commit, submit.EchoedIdentifierResolver{}, m.client.UploadDonationPhoto)
	}

	commit := func(ctx context.Context) (submit.CommitResult, error) {
		people, _ := strconv.Atoi(detail)
		created, err := m.client.CreateRequest(ctx, models.CreateRequestRequest{
			RecipientID: m.sess.ActorID,
			FoodType:    food,
			Description: desc,
			NumPeople:   people,
			Location:    location,
			Latitude:    lat,
			Longitude:   lng,
		})
		if err != nil {
			return submit.CommitResult{}, err
		}
		return submit.CommitResult{ID: created.ID}, nil
	}
	return submit.NewSubmitter(commit, submit.EchoedIdentifierResolver{}, m.client.UploadRequestPhoto)
}

// resolutionFailed reports whether a submission died recovering the
// identifier of the record it just created. The record may exist, so a
// resubmit could duplicate it; the only safe path is support.
func resolutionFailed(err error) bool {
	return errors.Is(err, submit.ErrNoIdentifier) ||
		errors.Is(err, submit.ErrIdentityNotFound) ||
		errors.Is(err, submit.ErrIdentityAmbiguous)
}

// checkGate fetches the caller's profile and applies the posting gate.
// The fetch is fresh on every form open so a verification or document
// upload done elsewhere takes effect immediately.
func (m ComposeModel) checkGate() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var profile session.Profile
		if m.kind == ComposeDonation {
			donor, err := m.client.GetDonor(ctx, m.sess.ActorID)
			if err != nil {
				return GateDeniedMsg{Err: err}
			}
			profile = session.DonorProfile(*donor)
		} else {
			recipient, err := m.client.GetRecipient(ctx, m.sess.ActorID)
			if err != nil {
				return GateDeniedMsg{Err: err}
			}
			profile = session.RecipientProfile(*recipient)
		}

		if err := session.CanPost(profile); err != nil {
			return GateDeniedMsg{Err: err}
		}
		return GateAllowedMsg{}
	}
}

// prefillAddress suggests the current address via IP geolocation plus
// reverse geocoding. Any failure is silent; the field stays manual.
func (m ComposeModel) prefillAddress() tea.Cmd {
	if m.locator == nil || m.geocoder == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		coord, err := m.locator.Current(ctx)
		if err != nil || coord == nil {
			return nil
		}

		addr, err := m.geocoder.ReverseGeocode(ctx, *coord)
		if err != nil {
			return AddressPrefillMsg{Coord: coord}
		}
		return AddressPrefillMsg{Address: addr, Coord: coord}
	}
}
