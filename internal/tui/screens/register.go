package screens

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mealbridge/mealcli/internal/api"
	"github.com/mealbridge/mealcli/internal/models"
	"github.com/mealbridge/mealcli/internal/submit"
	"github.com/mealbridge/mealcli/internal/tui/common"
)

// RegisterState represents the current state of the registration wizard
type RegisterState int

const (
	RegisterStateRole RegisterState = iota
	RegisterStateInput
	RegisterStateSubmitting
	RegisterStateUploadFailed
	// RegisterStateFatal is terminal: the account may exist but its
	// identifier could not be recovered, so resubmitting risks a
	// duplicate. The user has to contact support.
	RegisterStateFatal
	RegisterStateComplete
)

// Registration messages
type (
	// RegisterDoneMsg is sent when the account and all its documents
	// are in place.
	RegisterDoneMsg struct {
		AccountID string
	}

	// RegisterFailedMsg is sent when a phase failed. Retryable means
	// the account exists and only document uploads remain.
	RegisterFailedMsg struct {
		Err       error
		Retryable bool
	}
)

var registerRoles = []models.Role{models.RoleDonor, models.RoleRecipient, models.RoleVolunteer}

const registerFieldCount = 9 // name..document inputs + submit

// RegisterModel is the model for the registration wizard
type RegisterModel struct {
	client *api.Client

	role       models.Role
	roleCursor int

	nameInput     textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model
	phoneInput    textinput.Model
	extraInput    textinput.Model // donor type / organization / vehicle
	locationInput textinput.Model
	photoInput    textinput.Model
	documentInput textinput.Model // certificate or signature path

	draft     *submit.Draft
	submitter *submit.Submitter

	spinner spinner.Model
	help    help.Model
	keys    common.FormKeyMap

	focusIndex int
	state      RegisterState
	err        error

	width  int
	height int
}

// NewRegisterModel creates the registration wizard. Registration runs
// against an unauthenticated client; the account signs in afterwards.
func NewRegisterModel(client *api.Client) RegisterModel {
	newInput := func(placeholder string) textinput.Model {
		in := textinput.New()
		in.Placeholder = placeholder
		in.CharLimit = 128
		in.Width = 44
		return in
	}

	name := newInput("full name or organization name")
	name.Focus()

	password := newInput("password")
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(common.ColorPrimary)

	return RegisterModel{
		client:        client,
		nameInput:     name,
		emailInput:    newInput("you@example.org"),
		passwordInput: password,
		phoneInput:    newInput("phone (optional)"),
		extraInput:    newInput(""),
		locationInput: newInput("address"),
		photoInput:    newInput("path to profile photo (optional)"),
		documentInput: newInput(""),
		draft:         submit.NewDraft(),
		spinner:       sp,
		help:          help.New(),
		keys:          common.DefaultFormKeyMap(),
		state:         RegisterStateRole,
	}
}

// Init initializes the register model
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the registration wizard
func (m RegisterModel) Update(msg tea.Msg) (RegisterModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.state == RegisterStateSubmitting {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.state == RegisterStateInput {
				m.state = RegisterStateRole
				return m, nil
			}
			return m, navigateTo("login")

		case msg.String() == "r" && m.state == RegisterStateUploadFailed:
			return m.retryUploads()
		}

		switch m.state {
		case RegisterStateRole:
			switch msg.String() {
			case "up", "k":
				if m.roleCursor > 0 {
					m.roleCursor--
				}
			case "down", "j":
				if m.roleCursor < len(registerRoles)-1 {
					m.roleCursor++
				}
			case "enter":
				m.role = registerRoles[m.roleCursor]
				m.configureForRole()
				m.state = RegisterStateInput
				m.focusIndex = 0
				m.updateFocus()
			}
			return m, nil

		case RegisterStateInput:
			switch {
			case key.Matches(msg, m.keys.Tab):
				m.focusIndex = (m.focusIndex + 1) % registerFieldCount
				m.updateFocus()
				return m, nil

			case key.Matches(msg, m.keys.ShiftTab):
				m.focusIndex--
				if m.focusIndex < 0 {
					m.focusIndex = registerFieldCount - 1
				}
				m.updateFocus()
				return m, nil

			case key.Matches(msg, m.keys.Submit):
				if m.focusIndex == registerFieldCount-1 {
					return m.submit()
				}
				m.focusIndex = (m.focusIndex + 1) % registerFieldCount
				m.updateFocus()
				return m, nil
			}
		}

	case RegisterDoneMsg:
		m.state = RegisterStateComplete
		return m, nil

	case RegisterFailedMsg:
		m.err = msg.Err
		switch {
		case msg.Retryable:
			m.state = RegisterStateUploadFailed
		case resolutionFailed(msg.Err):
			m.state = RegisterStateFatal
		default:
			m.state = RegisterStateInput
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == RegisterStateSubmitting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	if m.state == RegisterStateInput {
		var cmd tea.Cmd
		inputs := m.inputs()
		if m.focusIndex < len(inputs) {
			*inputs[m.focusIndex], cmd = inputs[m.focusIndex].Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// configureForRole adjusts the role-specific field prompts
func (m *RegisterModel) configureForRole() {
	switch m.role {
	case models.RoleDonor:
		m.extraInput.Placeholder = "donor type: individual, restaurant, grocery"
		m.documentInput.Placeholder = "path to business certificate (businesses only)"
	case models.RoleRecipient:
		m.extraInput.Placeholder = "organization name"
		m.documentInput.Placeholder = "path to organization certificate"
	case models.RoleVolunteer:
		m.extraInput.Placeholder = "vehicle (e.g. bike, car)"
		m.documentInput.Placeholder = "path to signed consent form"
	}
}

func (m *RegisterModel) inputs() []*textinput.Model {
	return []*textinput.Model{
		&m.nameInput, &m.emailInput, &m.passwordInput, &m.phoneInput,
		&m.extraInput, &m.locationInput, &m.photoInput, &m.documentInput,
	}
}

func (m *RegisterModel) updateFocus() {
	for i, in := range m.inputs() {
		if i == m.focusIndex {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// View renders the registration wizard
func (m RegisterModel) View() string {
	var content strings.Builder

	content.WriteString(common.TitleStyle.Render("Join MealBridge"))
	content.WriteString("\n")

	switch m.state {
	case RegisterStateRole:
		content.WriteString(common.SubtitleStyle.Render("How will you take part?"))
		content.WriteString("\n\n")
		labels := map[models.Role]string{
			models.RoleDonor:     "Donor — share surplus food",
			models.RoleRecipient: "Recipient — receive food for your organization",
			models.RoleVolunteer: "Volunteer — deliver donations",
		}
		for i, role := range registerRoles {
			line := labels[role]
			if i == m.roleCursor {
				content.WriteString(common.MenuItemSelectedStyle.Render("▸ " + line))
			} else {
				content.WriteString(common.MenuItemStyle.Render("  " + line))
			}
			content.WriteString("\n")
		}

	case RegisterStateInput:
		content.WriteString(common.SubtitleStyle.Render(fmt.Sprintf("Registering as %s", m.role)))
		content.WriteString("\n\n")
		content.WriteString(m.renderForm())

	case RegisterStateSubmitting:
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("%s Creating your account...", m.spinner.View()))

	case RegisterStateUploadFailed:
		content.WriteString("\n")
		content.WriteString(common.SuccessTextStyle.Render("✓ Account created"))
		content.WriteString("\n")
		content.WriteString(common.ErrorTextStyle.Render("But a document upload failed: " + api.UserMessage(m.err)))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Press 'r' to retry the upload. Your account is safe; no duplicate will be created."))

	case RegisterStateFatal:
		content.WriteString("\n")
		content.WriteString(common.ErrorTextStyle.Render("Registration could not be completed."))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Your account may already exist, so do not register again. Please contact support."))

	case RegisterStateComplete:
		content.WriteString("\n")
		content.WriteString(common.SuccessTextStyle.Render("✓ Registered!"))
		content.WriteString("\n\n")
		content.WriteString(common.MutedTextStyle.Render("Your account awaits admin verification. Press esc to sign in."))
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

func (m RegisterModel) renderForm() string {
	var b strings.Builder

	extraLabel := "Donor type"
	docLabel := "Certificate"
	switch m.role {
	case models.RoleRecipient:
		extraLabel = "Organization"
	case models.RoleVolunteer:
		extraLabel = "Vehicle"
		docLabel = "Consent form"
	}

	labels := []string{
		"Name", "Email", "Password", "Phone", extraLabel, "Location", "Photo", docLabel,
	}
	inputs := []textinput.Model{
		m.nameInput, m.emailInput, m.passwordInput, m.phoneInput,
		m.extraInput, m.locationInput, m.photoInput, m.documentInput,
	}

	for i := range labels {
		label := labels[i]
		inputStyle := common.InputStyle
		if m.focusIndex == i {
			label = common.SelectedStyle.Render(label)
			inputStyle = common.FocusedInputStyle
		} else {
			label = common.UnselectedStyle.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		b.WriteString(inputStyle.Render(inputs[i].View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	buttonText := "  Create account  "
	if m.focusIndex == registerFieldCount-1 {
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

func (m RegisterModel) canSubmit() bool {
	return strings.TrimSpace(m.nameInput.Value()) != "" &&
		strings.TrimSpace(m.emailInput.Value()) != "" &&
		m.passwordInput.Value() != ""
}

func (m RegisterModel) submit() (RegisterModel, tea.Cmd) {
	if !m.canSubmit() {
		return m, nil
	}

	docRole := models.RoleCertificate
	if m.role == models.RoleVolunteer {
		docRole = models.RoleSignature
	}

	attachments := []struct {
		path string
		role models.AttachmentRole
	}{
		{strings.TrimSpace(m.photoInput.Value()), models.RolePhoto},
		{strings.TrimSpace(m.documentInput.Value()), docRole},
	}
	for _, a := range attachments {
		if a.path == "" {
			continue
		}
		data, err := os.ReadFile(a.path)
		if err != nil {
			m.err = fmt.Errorf("cannot read %s: %w", a.role, err)
			return m, nil
		}
		m.draft.Attach(models.Attachment{
			Role:     a.role,
			Filename: filepath.Base(a.path),
			Data:     data,
		})
	}

	m.state = RegisterStateSubmitting
	m.err = nil

	m.submitter = m.buildSubmitter()
	draft := m.draft

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := m.submitter.Run(ctx, draft); err != nil {
			return RegisterFailedMsg{Err: err, Retryable: draft.EntityID() != ""}
		}
		return RegisterDoneMsg{AccountID: draft.EntityID()}
	})
}

func (m RegisterModel) retryUploads() (RegisterModel, tea.Cmd) {
	m.state = RegisterStateSubmitting
	m.err = nil

	submitter := m.submitter
	draft := m.draft

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := submitter.RetryUploads(ctx, draft); err != nil {
			return RegisterFailedMsg{Err: err, Retryable: true}
		}
		return RegisterDoneMsg{AccountID: draft.EntityID()}
	})
}

// buildSubmitter wires the draft to the role's registration endpoints.
// Donor and recipient registration echo the created record; volunteer
// registration is message-only, so its identifier is recovered by
// searching for the submitted name and matching the email exactly.
func (m RegisterModel) buildSubmitter() *submit.Submitter {
	name := strings.TrimSpace(m.nameInput.Value())
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()
	phone := strings.TrimSpace(m.phoneInput.Value())
	extra := strings.TrimSpace(m.extraInput.Value())
	location := strings.TrimSpace(m.locationInput.Value())

	switch m.role {
	case models.RoleDonor:
		commit := func(ctx context.Context) (submit.CommitResult, error) {
			donor, err := m.client.RegisterDonor(ctx, models.RegisterDonorRequest{
				Name: name, Email: email, Password: password,
				Phone: phone, DonorType: extra, Location: location,
			})
			if err != nil {
				return submit.CommitResult{}, err
			}
			return submit.CommitResult{ID: donor.ID}, nil
		}
		upload := func(ctx context.Context, id string, att models.Attachment) error {
			if att.Role == models.RoleCertificate {
				return m.client.UploadDonorCertificate(ctx, id, att)
			}
			return m.client.UploadDonorPhoto(ctx, id, att)
		}
		return submit.NewSubmitter(commit, submit.EchoedIdentifierResolver{}, upload)

	case models.RoleRecipient:
		commit := func(ctx context.Context) (submit.CommitResult, error) {
			recipient, err := m.client.RegisterRecipient(ctx, models.RegisterRecipientRequest{
				Name: name, Email: email, Password: password,
				Phone: phone, Organization: extra, Location: location,
			})
			if err != nil {
				return submit.CommitResult{}, err
			}
			return submit.CommitResult{ID: recipient.ID}, nil
		}
		upload := func(ctx context.Context, id string, att models.Attachment) error {
			if att.Role == models.RoleCertificate {
				return m.client.UploadRecipientCertificate(ctx, id, att)
			}
			return m.client.UploadRecipientPhoto(ctx, id, att)
		}
		return submit.NewSubmitter(commit, submit.EchoedIdentifierResolver{}, upload)

	default:
		commit := func(ctx context.Context) (submit.CommitResult, error) {
			message, err := m.client.RegisterVolunteer(ctx, models.RegisterVolunteerRequest{
				Name: name, Email: email, Password: password,
				Phone: phone, Vehicle: extra, Location: location,
			})
			if err != nil {
				return submit.CommitResult{}, err
			}
			return submit.CommitResult{Message: message}, nil
		}
		resolver := submit.SearchBasedIdentifierResolver{
			Search: func(ctx context.Context, query string) ([]submit.Candidate, error) {
				volunteers, err := m.client.SearchVolunteers(ctx, query)
				if err != nil {
					return nil, err
				}
				candidates := make([]submit.Candidate, len(volunteers))
				for i, v := range volunteers {
					candidates[i] = submit.Candidate{ID: v.ID, Email: v.Email}
				}
				return candidates, nil
			},
			Name:  name,
			Email: email,
		}
		upload := func(ctx context.Context, id string, att models.Attachment) error {
			if att.Role == models.RoleSignature {
				return m.client.UploadVolunteerSignature(ctx, id, att)
			}
			return m.client.UploadVolunteerPhoto(ctx, id, att)
		}
		return submit.NewSubmitter(commit, resolver, upload)
	}
}
