package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/shelf/internal/logtail"
)

// logState holds the activity log overlay.
type logState struct {
	viewport viewport.Model
	entries  []logtail.Entry
	err      error
}

type logsLoadedMsg struct {
	entries []logtail.Entry
	err     error
}

func newLogState() logState {
	return logState{viewport: viewport.New(0, 0)}
}

// logPath returns the configured activity log file, if any.
func (m Model) logPath() string {
	if m.config == nil {
		return ""
	}
	return m.config.LogFile
}

// refreshLogs reads the tail of the activity log off the UI goroutine.
func (m *Model) refreshLogs() tea.Cmd {
	path := m.logPath()
	return func() tea.Msg {
		if path == "" {
			return logsLoadedMsg{}
		}
		entries, err := logtail.ReadEntries(path, LogTailLimit)
		return logsLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) handleLogsLoaded(msg logsLoadedMsg) {
	m.logs.entries = msg.entries
	m.logs.err = msg.err
	m.updateLogViewport()
	m.logs.viewport.GotoBottom()
}

// updateLogViewport sizes the viewport to the content area and re-renders it.
func (m *Model) updateLogViewport() {
	// Box border plus padding.
	m.logs.viewport.Width = max(1, m.width-4)
	m.logs.viewport.Height = max(1, m.height-chromeLines-2)
	m.logs.viewport.SetContent(m.renderLogContent())
}

// handleLogsKey processes keyboard input while the log overlay is open.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.ViewLog):
		m.showLogs = false
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.refreshLogs()
	case key.Matches(msg, m.keys.Quit):
		m.unmount()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Top):
		m.logs.viewport.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.logs.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.logs.viewport, cmd = m.logs.viewport.Update(msg)
	return m, cmd
}

// renderLogs renders the activity log overlay.
func (m Model) renderLogs(height int) string {
	title := "Activity Log"
	if path := m.logPath(); path != "" {
		title = fmt.Sprintf("Activity Log · %s", path)
	}
	return m.renderBox(title, m.logs.viewport.View(), m.width, height)
}

// renderLogContent formats log entries, failures highlighted.
func (m Model) renderLogContent() string {
	styles := m.theme.Styles()

	if m.logs.err != nil {
		return styles.DangerText.Render("read log failed: " + m.logs.err.Error())
	}
	if m.logPath() == "" {
		return styles.MutedText.Render("No log file configured.")
	}
	if len(m.logs.entries) == 0 {
		return styles.MutedText.Render("No activity yet.")
	}

	width := max(20, m.logs.viewport.Width)
	lines := make([]string, 0, len(m.logs.entries))
	for _, e := range m.logs.entries {
		stamp := "        "
		if !e.Time.IsZero() {
			stamp = e.Time.Format("15:04:05")
		}
		msgStyle := styles.Text
		if e.IsFailure() {
			msgStyle = styles.DangerText
		}
		source := padRight(truncate(e.Source, 8), 8)
		msgWidth := max(10, width-len(stamp)-len(source)-2)
		lines = append(lines,
			styles.FaintText.Render(stamp)+" "+
				styles.AccentText.Render(source)+" "+
				msgStyle.Render(truncate(e.Message, msgWidth)))
	}
	return strings.Join(lines, "\n")
}
