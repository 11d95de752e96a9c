// Package landing is the marketing-style start screen: a product pitch,
// feature highlights, and a waitlist signup form shown before the
// operational dashboards.
package landing

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/theme"
	"github.com/prepline/prepline/internal/waitlist"
)

// EnterAppMsg is dispatched when the user skips past the landing screen
// into the dashboards.
type EnterAppMsg struct{}

// SubmitResultMsg is dispatched when a waitlist submission finishes.
type SubmitResultMsg struct {
	Entry model.WaitlistEntry
	Err   error
}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name    string
	email   string
	role    string
	message string
}

// Model is the Bubble Tea model for the landing screen.
type Model struct {
	submitter *waitlist.Submitter

	form *huh.Form
	fb   *formBindings

	submitting bool
	submitted  bool
	lastErr    error

	width  int
	height int
}

// New creates the landing screen.
func New(submitter *waitlist.Submitter, width, height int) Model {
	m := Model{
		submitter: submitter,
		fb:        &formBindings{},
		width:     width,
		height:    height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the signup form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the landing screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmitResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.lastErr = msg.Err
			// Rebuild the form so the user can retry with the values
			// they already typed.
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		m.lastErr = nil
		m.submitted = true
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+s" || (m.submitted && msg.String() == "enter") {
			return m, func() tea.Msg { return EnterAppMsg{} }
		}
	}

	if m.form == nil || m.submitting || m.submitted {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.submitting = true
		return m, m.submitCmd()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return EnterAppMsg{} }
	}

	return m, cmd
}

// submitCmd runs the waitlist submission off the UI goroutine.
func (m Model) submitCmd() tea.Cmd {
	entry := model.WaitlistEntry{
		Name:    m.fb.name,
		Email:   m.fb.email,
		Role:    m.fb.role,
		Message: m.fb.message,
	}
	submitter := m.submitter

	return func() tea.Msg {
		err := submitter.Submit(context.Background(), entry)
		return SubmitResultMsg{Entry: entry, Err: err}
	}
}

var (
	heroStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorTeal).
			MarginBottom(1)

	taglineStyle = lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			MarginBottom(1)

	featureStyle = lipgloss.NewStyle().
			Foreground(theme.ColorGray)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorGreen)
)

// features are the landing highlights shown beside the form.
var features = []string{
	"Unified cleaning and production calendar",
	"Drag-free rescheduling from the keyboard",
	"Receiving log with expiry tracking",
	"Works offline with a local cache",
}

// View renders the landing screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(heroStyle.Render("prepline"))
	b.WriteString("\n")
	b.WriteString(taglineStyle.Render("Kitchen operations, one schedule."))
	b.WriteString("\n")
	for _, f := range features {
		b.WriteString(featureStyle.Render("  • " + f))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.submitted:
		b.WriteString(successStyle.Render("You're on the list! Press enter to continue."))
	case m.submitting:
		b.WriteString(theme.NoticeStyle.Render("Submitting…"))
	default:
		if m.lastErr != nil {
			msg := m.lastErr.Error()
			if errors.Is(m.lastErr, waitlist.ErrSubmitFailed) {
				msg = "Something went wrong, please submit again."
			}
			b.WriteString(theme.ErrorStyle.Render(msg))
			b.WriteString("\n\n")
		}
		b.WriteString(m.form.View())
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("ctrl+s skip to dashboards"))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder("Your name").
				Value(&m.fb.name).
				Validate(validateRequired("Name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewSelect[string]().
				Title("Role").
				Options(
					huh.NewOption("Head chef", "head_chef"),
					huh.NewOption("Sous chef", "sous_chef"),
					huh.NewOption("Kitchen manager", "kitchen_manager"),
					huh.NewOption("Other", "other"),
				).
				Value(&m.fb.role),
			huh.NewText().
				Title("Anything else?").
				Placeholder("Optional message...").
				Value(&m.fb.message),
		),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(fieldName + " is required")
		}
		return nil
	}
}

func validateEmail(s string) error {
	if err := waitlist.Validate(model.WaitlistEntry{Name: "x", Email: s}); err != nil {
		return errors.New("a valid email address is required")
	}
	return nil
}
