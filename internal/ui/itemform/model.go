package itemform

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/theme"
)

// ItemCreatedMsg is dispatched when a new cleaning item is submitted.
type ItemCreatedMsg struct {
	Item model.CleaningItem
}

// ItemUpdatedMsg is dispatched when an existing cleaning item is edited.
type ItemUpdatedMsg struct {
	Item model.CleaningItem
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name           string
	description    string
	recurrenceType string
	equipment      string
	assigneeID     string
}

// Model is the Bubble Tea model for the cleaning item create/edit form.
type Model struct {
	form         *huh.Form
	fb           *formBindings
	editMode     bool
	editID       string
	departmentID string
	staff        []model.StaffMember
	width        int
	height       int
}

// New creates a new cleaning item form model. The department is fixed
// at construction: items are always created in the configured
// department.
func New(departmentID string, width, height int) Model {
	return Model{
		fb:           &formBindings{},
		departmentID: departmentID,
		width:        width,
		height:       height,
	}
}

// SetStaff sets the staff members available in the assignee selector.
func (m *Model) SetStaff(staff []model.StaffMember) {
	m.staff = staff
}

// StartCreate initializes the form for creating a new cleaning item.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.name = ""
	m.fb.description = ""
	m.fb.recurrenceType = ""
	m.fb.equipment = ""
	m.fb.assigneeID = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing cleaning item.
func (m *Model) StartEdit(item model.CleaningItem) tea.Cmd {
	m.editMode = true
	m.editID = item.ID
	m.fb.name = item.Name
	m.fb.description = item.Description
	m.fb.recurrenceType = item.RecurrenceType
	m.fb.equipment = item.Equipment
	m.fb.assigneeID = item.AssigneeID
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the item form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the item form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Cleaning Item"
	if m.editMode {
		titleText = "Edit Cleaning Item"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Placeholder("e.g. Degrease fryer station").
			Value(&m.fb.name).
			Validate(validateRequired("Name")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Recurrence").
			Options(
				huh.NewOption("One-off", ""),
				huh.NewOption("Daily", "daily"),
				huh.NewOption("Weekly", "weekly"),
				huh.NewOption("Monthly", "monthly"),
			).
			Value(&m.fb.recurrenceType),
		huh.NewInput().
			Title("Equipment").
			Placeholder("Optional equipment").
			Value(&m.fb.equipment),
	}
	if staffField := m.staffField(); staffField != nil {
		fields = append(fields, staffField)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) staffField() huh.Field {
	if len(m.staff) == 0 {
		return nil
	}
	opts := []huh.Option[string]{
		huh.NewOption("Unassigned", ""),
	}
	for _, s := range m.staff {
		opts = append(opts, huh.NewOption(s.DisplayName(), s.ID))
	}
	return huh.NewSelect[string]().
		Title("Assignee").
		Options(opts...).
		Value(&m.fb.assigneeID)
}

func (m Model) handleSubmit() tea.Cmd {
	item := model.CleaningItem{
		DepartmentID:   m.departmentID,
		Name:           m.fb.name,
		Description:    m.fb.description,
		RecurrenceType: m.fb.recurrenceType,
		Equipment:      m.fb.equipment,
		AssigneeID:     m.fb.assigneeID,
	}

	if m.editMode {
		item.ID = m.editID
		return func() tea.Msg { return ItemUpdatedMsg{Item: item} }
	}
	return func() tea.Msg { return ItemCreatedMsg{Item: item} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(fieldName + " is required")
		}
		return nil
	}
}
