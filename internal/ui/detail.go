package ui

import (
	"context"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/catalog"
	"github.com/five82/shelf/internal/state"
)

// detailState holds the single-book view for the mounted /book/{id} route.
type detailState struct {
	token state.Token // zero when unmounted
	phase state.Phase
	book  catalog.Book
	err   error
}

// mountDetail fetches one book for this mount.
func (m *Model) mountDetail(ctx context.Context, id catalog.BookID) tea.Cmd {
	token := m.takeToken()
	m.detail = detailState{token: token, phase: state.PhaseLoading}
	return tea.Batch(m.spinner.Tick, fetchBookCmd(ctx, m.client, token, id))
}

// handleBookLoaded applies a detail result if its mount is still live.
func (m *Model) handleBookLoaded(msg bookLoadedMsg) {
	if msg.token == 0 || msg.token != m.detail.token || m.detail.phase != state.PhaseLoading {
		log.Printf("ui: discarded book result for mount %d", msg.token)
		return
	}
	if msg.err != nil {
		m.detail.phase = state.PhaseFailed
		m.detail.err = msg.err
		return
	}
	m.detail.phase = state.PhaseReady
	m.detail.book = msg.book
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		cmd := m.navigate(Route{Kind: RouteList})
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		cmd := m.navigate(m.route)
		return m, cmd
	case key.Matches(msg, m.keys.AddBook):
		cmd := m.navigate(Route{Kind: RouteAdd})
		return m, cmd
	}
	return m, nil
}

// renderDetail renders the detail view.
func (m Model) renderDetail(height int) string {
	styles := m.theme.Styles()
	width := min(m.width, 80)

	var body string
	switch m.detail.phase {
	case state.PhaseFailed:
		msg := "unknown error"
		if m.detail.err != nil {
			msg = m.detail.err.Error()
		}
		body = styles.DangerText.Render("Error loading book!") + "\n" +
			styles.MutedText.Render(truncate(msg, width-4))
	case state.PhaseReady:
		body = m.renderBookFields(m.detail.book, width-4, styles)
	default:
		body = m.spinner.View() + " " + styles.MutedText.Render("Loading book "+m.route.ID.String()+"...")
	}

	return m.renderBox(m.route.Path(), body, width, min(height, 14))
}

// renderBookFields renders every field of a book, one per line.
func (m Model) renderBookFields(book catalog.Book, width int, styles Styles) string {
	label := func(s string) string {
		return styles.FaintText.Render(padRight(s, 8))
	}

	cover := styles.FaintText.Render("no cover")
	if book.HasCover() {
		cover = styles.InfoText.Render(truncate(book.Img, width-9))
	}

	genres := styles.FaintText.Render("none")
	if len(book.Genres) > 0 {
		chips := make([]string, len(book.Genres))
		for i, g := range book.Genres {
			chips[i] = styles.Chip.Render(g)
		}
		genres = lipgloss.NewStyle().Width(width - 9).Render(strings.Join(chips, " "))
	}

	rows := []string{
		styles.Text.Bold(true).Render(truncate(book.Name, width)),
		styles.MutedText.Render(truncate("by "+book.Author, width)),
		"",
		label("Rating") + " " + renderRating(book.Rating(), styles),
		lipgloss.JoinHorizontal(lipgloss.Top, label("Genres")+" ", genres),
		label("Cover") + " " + cover,
		label("ID") + " " + styles.Text.Render(book.ID.String()),
	}
	if !book.Stars.Valid() && book.Stars != "" {
		rows = append(rows, styles.WarningText.Render("unrecognised rating "+truncate(string(book.Stars), 20)))
	}
	return strings.Join(rows, "\n")
}
