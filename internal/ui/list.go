package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/state"
)

// listState holds the catalog list view. The collection and its load
// phase live in store; the model keeps only presentation state.
type listState struct {
	store    *state.List
	search   textinput.Model
	selected int
}

func newListState() listState {
	ti := textinput.New()
	ti.Placeholder = "name or author"
	ti.Prompt = "> "
	ti.CharLimit = 100
	ti.Width = 40

	return listState{
		store:  &state.List{},
		search: ti,
	}
}

// mountList starts a fresh load of the whole catalog.
func (m *Model) mountList(ctx context.Context) tea.Cmd {
	token := m.list.store.Mount()
	m.list.search.SetValue("")
	m.list.search.Blur()
	m.list.selected = 0
	return tea.Batch(m.spinner.Tick, fetchBooksCmd(ctx, m.client, token))
}

// handleBooksLoaded applies a fetch result if its mount is still live.
func (m *Model) handleBooksLoaded(msg booksLoadedMsg) {
	var applied bool
	if msg.err != nil {
		applied = m.list.store.Fail(msg.token, msg.err)
	} else {
		applied = m.list.store.Resolve(msg.token, msg.books)
	}
	if !applied {
		log.Printf("ui: discarded catalog result for mount %d", msg.token)
		return
	}
	if msg.err == nil {
		log.Printf("ui: loaded %d books", len(msg.books))
	}
	m.clampSelection()
}

// visibleBooks returns the filtered collection for the current query.
func (m Model) visibleBooks() []catalog.Book {
	return m.list.store.Visible()
}

// clampSelection keeps the selected card inside the visible collection.
func (m *Model) clampSelection() {
	m.list.selected = clamp(m.list.selected, 0, len(m.visibleBooks())-1)
}

// handleListKey processes keyboard input for the catalog list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		cmd := m.list.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		cmd := m.navigate(Route{Kind: RouteList})
		return m, cmd

	case key.Matches(msg, m.keys.AddBook):
		cmd := m.navigate(Route{Kind: RouteAdd})
		return m, cmd

	case key.Matches(msg, m.keys.Escape):
		if m.list.search.Value() != "" {
			m.list.search.SetValue("")
			m.applyQuery()
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		books := m.visibleBooks()
		if len(books) == 0 {
			return m, nil
		}
		book := books[clamp(m.list.selected, 0, len(books)-1)]
		cmd := m.navigate(Route{Kind: RouteDetail, ID: book.ID})
		return m, cmd
	}

	m.moveSelection(msg)
	return m, nil
}

// moveSelection walks the card grid: left/right by one card, up/down by a
// row. Moving down from a short last row lands on the final card.
func (m *Model) moveSelection(msg tea.KeyMsg) {
	n := len(m.visibleBooks())
	if n == 0 {
		return
	}
	cols := gridColumns(m.width)
	sel := m.list.selected

	switch {
	case key.Matches(msg, m.keys.Left):
		sel--
	case key.Matches(msg, m.keys.Right):
		sel++
	case key.Matches(msg, m.keys.Up):
		if sel-cols >= 0 {
			sel -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if sel+cols < n {
			sel += cols
		} else if (n-1)/cols > sel/cols {
			sel = n - 1
		}
	case key.Matches(msg, m.keys.Top):
		sel = 0
	case key.Matches(msg, m.keys.Bottom):
		sel = n - 1
	default:
		return
	}
	m.list.selected = clamp(sel, 0, n-1)
}

// handleSearchKey handles keyboard input while the search field has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.list.search.SetValue("")
		m.list.search.Blur()
		m.applyQuery()
		return m, nil
	case "enter", "tab":
		m.list.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.list.search, cmd = m.list.search.Update(msg)
	m.applyQuery()
	return m, cmd
}

// applyQuery pushes the search text into the list state. Filtering is
// derived on read, so no fetch is involved.
func (m *Model) applyQuery() {
	query := m.list.search.Value()
	if query == m.list.store.Query() {
		return
	}
	m.list.store.SetQuery(query)
	m.list.selected = 0
}

// renderList renders the catalog list view.
func (m Model) renderList(height int) string {
	styles := m.theme.Styles()
	snap := m.list.store.Snapshot()

	var b strings.Builder
	b.WriteString(m.renderSearchBar(styles))
	b.WriteString("\n\n")
	bodyHeight := max(1, height-2)

	switch snap.Phase {
	case state.PhaseFailed:
		b.WriteString(styles.DangerText.Render("Error loading books!"))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(truncate(snap.Message(), max(20, m.width-2))))
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("Press r to try again."))

	case state.PhaseReady:
		switch {
		case len(snap.Visible) > 0:
			b.WriteString(m.renderGrid(snap.Visible, bodyHeight))
		case snap.Query != "":
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("No books match %q.", snap.Query)))
		default:
			b.WriteString(styles.MutedText.Render("The catalog is empty. Press a to add a book."))
		}

	default:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render("Loading books..."))
	}

	return b.String()
}

// renderSearchBar renders the "Search Books" field.
func (m Model) renderSearchBar(styles Styles) string {
	label := styles.MutedText.Render("Search Books")
	if m.list.search.Focused() {
		label = styles.AccentText.Bold(true).Render("Search Books")
	}
	return label + " " + m.list.search.View()
}

// renderGrid lays cards out in rows that wrap at the terminal width,
// scrolled so the selected card stays in view.
func (m Model) renderGrid(books []catalog.Book, height int) string {
	cols := gridColumns(m.width)
	totalRows := (len(books) + cols - 1) / cols
	visibleRows := max(1, height/CardHeight)

	selected := clamp(m.list.selected, 0, len(books)-1)
	first := 0
	if selRow := selected / cols; selRow >= visibleRows {
		first = selRow - visibleRows + 1
	}
	last := min(totalRows, first+visibleRows)

	gap := strings.Repeat(" ", CardGap)
	rows := make([]string, 0, last-first)
	for r := first; r < last; r++ {
		start := r * cols
		end := min(start+cols, len(books))
		cards := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, gap)
			}
			cards = append(cards, m.renderCard(books[i], i == selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
