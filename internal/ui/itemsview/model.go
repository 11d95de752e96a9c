// Package itemsview is the cleaning item management screen: list,
// create, edit, and delete the recurring cleaning definitions of the
// configured department.
package itemsview

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/prepline/prepline/internal/api"
	"github.com/prepline/prepline/internal/model"
	"github.com/prepline/prepline/internal/theme"
	"github.com/prepline/prepline/internal/ui/itemform"
)

// ItemsLoadedMsg is sent when the cleaning items have been fetched.
type ItemsLoadedMsg struct {
	Items []model.CleaningItem
	Err   error
}

// ItemSavedMsg is sent after a create or update round-trips.
type ItemSavedMsg struct {
	Item model.CleaningItem
	Err  error
}

// ItemDeletedMsg is sent after a delete round-trips.
type ItemDeletedMsg struct {
	ID  string
	Err error
}

// viewMode selects between the list and the embedded form.
type viewMode int

const (
	modeList viewMode = iota
	modeForm
	modeConfirmDelete
)

const requestTimeout = 30 * time.Second

// Model is the Bubble Tea model for the cleaning items screen.
type Model struct {
	client       *api.Client
	departmentID string

	list list.Model
	form itemform.Model
	mode viewMode

	items     []model.CleaningItem
	deleteID  string
	notice    string
	err       error

	width  int
	height int
}

// New creates the cleaning items screen.
func New(client *api.Client, departmentID string, width, height int) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(theme.ColorTeal).
		BorderLeftForeground(theme.ColorTeal)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(theme.ColorGray).
		BorderLeftForeground(theme.ColorTeal)

	l := list.New(nil, delegate, width, height-2)
	l.Title = "Cleaning Items"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return Model{
		client:       client,
		departmentID: departmentID,
		list:         l,
		form:         itemform.New(departmentID, width, height),
		width:        width,
		height:       height,
	}
}

// Init triggers the initial item fetch.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// SetStaff passes the department staff through to the form's assignee
// selector.
func (m *Model) SetStaff(staff []model.StaffMember) {
	m.form.SetStaff(staff)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.form.SetSize(width, height)
}

// Items exposes the loaded cleaning items for recurrence expansion.
func (m Model) Items() []model.CleaningItem { return m.items }

// CapturesInput reports whether this screen currently owns all key
// input (a form or filter is active), so global shortcuts must not
// intercept keystrokes.
func (m Model) CapturesInput() bool {
	return m.mode != modeList || m.list.FilterState() == list.Filtering
}

// Update handles messages for the items screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.items = msg.Items
		return m, m.list.SetItems(toListItems(msg.Items))

	case ItemSavedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.notice = "saved " + msg.Item.Name
		m.mode = modeList
		return m, m.loadCmd()

	case ItemDeletedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.notice = "deleted"
		return m, m.loadCmd()

	case itemform.ItemCreatedMsg:
		return m, m.createCmd(msg.Item)

	case itemform.ItemUpdatedMsg:
		return m, m.updateCmd(msg.Item)

	case itemform.CancelMsg:
		m.mode = modeList
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	m.notice = ""

	switch m.mode {
	case modeForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case modeConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			m.mode = modeList
			return m, m.deleteCmd(m.deleteID)
		default:
			m.mode = modeList
			m.deleteID = ""
			return m, nil
		}
	}

	// Let the list's fuzzy filter consume keys while active.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "n":
		m.mode = modeForm
		return m, m.form.StartCreate()
	case "e":
		if item, ok := m.selectedItem(); ok {
			m.mode = modeForm
			return m, m.form.StartEdit(item)
		}
		return m, nil
	case "d":
		if item, ok := m.selectedItem(); ok {
			m.mode = modeConfirmDelete
			m.deleteID = item.ID
		}
		return m, nil
	case "R":
		return m, m.loadCmd()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) selectedItem() (model.CleaningItem, bool) {
	wrapped, ok := m.list.SelectedItem().(cleaningListItem)
	if !ok {
		return model.CleaningItem{}, false
	}
	return wrapped.item, true
}

// loadCmd fetches the department's cleaning items.
func (m Model) loadCmd() tea.Cmd {
	client := m.client
	departmentID := m.departmentID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		items, err := client.ListCleaningItems(ctx, departmentID)
		return ItemsLoadedMsg{Items: items, Err: err}
	}
}

// createCmd posts a new cleaning item. The department is validated
// client-side so a misconfigured profile fails fast instead of creating
// orphaned items.
func (m Model) createCmd(item model.CleaningItem) tea.Cmd {
	client := m.client

	return func() tea.Msg {
		if item.DepartmentID == "" {
			return ItemSavedMsg{Err: errors.New("no department configured; set api.department_id in the config file")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		created, err := client.CreateCleaningItem(ctx, item)
		return ItemSavedMsg{Item: created, Err: err}
	}
}

func (m Model) updateCmd(item model.CleaningItem) tea.Cmd {
	client := m.client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		updated, err := client.UpdateCleaningItem(ctx, item)
		return ItemSavedMsg{Item: updated, Err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	client := m.client

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := client.DeleteCleaningItem(ctx, id)
		return ItemDeletedMsg{ID: id, Err: err}
	}
}

// View renders the items screen.
func (m Model) View() string {
	if m.mode == modeForm {
		return m.form.View()
	}

	out := m.list.View()

	if m.mode == modeConfirmDelete {
		out += "\n" + theme.ErrorStyle.Render("delete this item? (y/n)")
	}
	if m.notice != "" {
		out += "\n" + theme.NoticeStyle.Render(m.notice)
	}
	if m.err != nil {
		out += "\n" + theme.ErrorStyle.Render(m.err.Error())
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(out)
}
