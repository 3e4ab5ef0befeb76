package ui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/state"
)

// Form field order.
const (
	fieldName = iota
	fieldAuthor
	fieldCover
	fieldGenres
	fieldStars
	fieldCount
)

var addFields = [fieldCount]struct {
	label       string
	placeholder string
	limit       int
}{
	fieldName:   {"Name", "Dune", 200},
	fieldAuthor: {"Author", "Frank Herbert", 200},
	fieldCover:  {"Cover URL", "https://covers.example/dune.jpg", 500},
	fieldGenres: {"Genres", "Science Fiction, Classic", 300},
	fieldStars:  {"Stars", "0 - 5", 4},
}

// addState holds the add-new form.
type addState struct {
	inputs     []textinput.Model
	focus      int
	token      state.Token // live Create request; zero when none
	submitting bool
	err        error
}

func newAddState() addState {
	inputs := make([]textinput.Model, fieldCount)
	for i, f := range addFields {
		ti := textinput.New()
		ti.Placeholder = f.placeholder
		ti.CharLimit = f.limit
		ti.Prompt = ""
		ti.Width = 48
		inputs[i] = ti
	}
	return addState{inputs: inputs}
}

// draft assembles a catalog draft from the form fields.
func (f addState) draft() catalog.Draft {
	value := func(i int) string {
		return strings.TrimSpace(f.inputs[i].Value())
	}
	return catalog.Draft{
		Name:   value(fieldName),
		Author: value(fieldAuthor),
		Img:    value(fieldCover),
		Genres: catalog.ParseGenres(f.inputs[fieldGenres].Value()),
		Stars:  value(fieldStars),
	}
}

// mountAdd resets the form and focuses its first field.
func (m *Model) mountAdd() tea.Cmd {
	m.form = newAddState()
	return m.form.inputs[fieldName].Focus()
}

// focusField moves focus to field i, wrapping around.
func (m *Model) focusField(i int) tea.Cmd {
	m.form.inputs[m.form.focus].Blur()
	m.form.focus = (i + fieldCount) % fieldCount
	return m.form.inputs[m.form.focus].Focus()
}

// submitAdd validates the draft and sends it. Invalid drafts never leave
// the form.
func (m *Model) submitAdd() tea.Cmd {
	if m.form.submitting {
		return nil
	}
	draft := m.form.draft()
	if err := draft.Validate(); err != nil {
		m.form.err = err
		return nil
	}
	m.form.token = m.takeToken()
	m.form.submitting = true
	m.form.err = nil
	return tea.Batch(m.spinner.Tick, createBookCmd(m.viewCtx, m.client, m.form.token, draft))
}

// handleBookCreated applies a Create result if the form is still mounted.
// Success returns to the catalog, whose fresh mount picks up the new book.
func (m Model) handleBookCreated(msg bookCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.token == 0 || msg.token != m.form.token || !m.form.submitting {
		log.Printf("ui: discarded add result for request %d", msg.token)
		return m, nil
	}
	m.form.submitting = false
	m.form.token = 0
	if msg.err != nil {
		m.form.err = msg.err
		return m, nil
	}
	log.Printf("ui: added book %s (%s)", msg.book.ID, msg.book.Name)
	cmd := m.navigate(Route{Kind: RouteList})
	return m, cmd
}

// handleAddKey processes keyboard input for the add-new form.
func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		cmd := m.navigate(Route{Kind: RouteList})
		return m, cmd
	case key.Matches(msg, m.keys.Submit):
		cmd := m.submitAdd()
		return m, cmd
	case msg.String() == "enter":
		if m.form.focus == fieldCount-1 {
			cmd := m.submitAdd()
			return m, cmd
		}
		cmd := m.focusField(m.form.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.NextField):
		cmd := m.focusField(m.form.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.PrevField):
		cmd := m.focusField(m.form.focus - 1)
		return m, cmd
	}

	if m.form.submitting {
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	m.form.err = nil
	return m, cmd
}

// renderAdd renders the add-new form.
func (m Model) renderAdd(height int) string {
	styles := m.theme.Styles()
	width := min(m.width, 72)

	var b strings.Builder
	for i, f := range addFields {
		label := styles.FaintText.Render(padRight(f.label, 10))
		if i == m.form.focus {
			label = styles.AccentText.Bold(true).Render(padRight(f.label, 10))
		}
		b.WriteString(label)
		b.WriteString(" ")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.form.submitting:
		b.WriteString(m.spinner.View() + " " + styles.MutedText.Render("Saving..."))
	case m.form.err != nil:
		b.WriteString(styles.DangerText.Render(truncate(m.form.err.Error(), width-4)))
	default:
		b.WriteString(styles.FaintText.Render("Genres are comma separated. Stars range 0 to 5."))
	}

	return m.renderBox("Add a Book", b.String(), width, min(height, fieldCount+6))
}
