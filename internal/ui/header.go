package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/state"
)

// renderHeader renders the status bar: logo, route, load status and API.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	title := m.route.Title()
	if m.showLogs {
		title = "Activity Log"
	}

	parts := []string{
		bg.Render("shelf", styles.Logo),
		bg.Render(title, styles.AccentText.Bold(true)),
		bg.Render(m.route.Path(), styles.MutedText),
	}
	if status := m.statusSegment(styles, bg); status != "" {
		parts = append(parts, status)
	}
	if url := m.baseURL(); url != "" && m.width >= LayoutCompactWidth {
		parts = append(parts, bg.Pair("api", truncate(url, 40), styles.FaintText, styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// statusSegment summarises the mounted view's load state.
func (m Model) statusSegment(styles Styles, bg BgStyle) string {
	switch m.route.Kind {
	case RouteDetail:
		return phaseSegment(m.detail.phase, styles, bg)
	case RouteAdd:
		if m.form.submitting {
			return bg.Render("Saving...", styles.WarningText.Bold(true))
		}
		return ""
	}

	snap := m.list.store.Snapshot()
	if snap.Phase != state.PhaseReady {
		return phaseSegment(snap.Phase, styles, bg)
	}
	count := fmt.Sprintf("%d", len(snap.Books))
	if snap.Query != "" {
		count = fmt.Sprintf("%d/%d", len(snap.Visible), len(snap.Books))
	}
	seg := bg.Pair("Books:", count, styles.MutedText, styles.Text)
	if !snap.LoadedAt.IsZero() {
		seg += bg.Space() + bg.Render(snap.LoadedAt.Format("15:04:05"), styles.FaintText)
	}
	return seg
}

func phaseSegment(phase state.Phase, styles Styles, bg BgStyle) string {
	switch phase {
	case state.PhaseLoading:
		return bg.Render("Loading...", styles.WarningText.Bold(true))
	case state.PhaseFailed:
		return bg.Render("● Failed", styles.DangerText)
	case state.PhaseReady:
		return bg.Render("● Ready", styles.SuccessText)
	default:
		return ""
	}
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.showLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"r", "Refresh"},
			{"esc", "Close"},
		}
	case m.route.Kind == RouteAdd:
		commands = []cmd{
			{"tab", "Next"},
			{"shift+tab", "Prev"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}
	case m.route.Kind == RouteDetail:
		commands = []cmd{
			{"esc", "Back"},
			{"r", "Reload"},
			{"a", "Add"},
			{"L", "Log"},
			{"?", "More"},
		}
	case m.list.search.Focused():
		commands = []cmd{
			{"enter", "Done"},
			{"esc", "Clear"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"enter", "Learn More"},
			{"r", "Reload"},
			{"a", "Add"},
			{"L", "Log"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderBox draws content in a rounded border with title set into the top
// edge. width and height include the border.
func (m Model) renderBox(title, content string, width, height int) string {
	width = max(width, 8)
	height = max(height, 3)
	borderColor := lipgloss.Color(m.theme.BorderFocus)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width - 2).
		Height(height - 2).
		Render(content)

	lines := strings.Split(box, "\n")
	edge := lipgloss.NewStyle().Foreground(borderColor)
	label := m.theme.Styles().AccentText.Bold(true).Render(truncate(title, width-6))
	fill := max(0, width-lipgloss.Width(label)-5)
	lines[0] = edge.Render("╭─ ") + label + edge.Render(" "+strings.Repeat("─", fill)+"╮")
	return strings.Join(lines, "\n")
}
