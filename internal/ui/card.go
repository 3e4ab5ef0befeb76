package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/shelf/internal/catalog"
)

const (
	chipLabelLimit = 14
	learnMoreLabel = "[ Learn More ]"
)

// renderCard renders one book as a bordered card of cardLines lines.
func (m Model) renderCard(book catalog.Book, selected bool) string {
	styles := m.theme.Styles()
	inner := CardWidth - 4 // borders and horizontal padding

	lines := []string{
		renderCover(book, inner, styles),
		renderChips(book.Genres, inner, styles),
		styles.Text.Bold(true).Render(truncate(book.Name, inner)),
		styles.MutedText.Render(truncate("by "+book.Author, inner)),
		renderRating(book.Rating(), styles),
		renderLearnMore(selected, styles),
	}

	style := styles.Card
	if selected {
		style = styles.CardSelected
	}
	return style.Width(CardWidth - 2).Render(strings.Join(lines, "\n"))
}

// renderCover renders the media slot. Records without artwork keep the slot
// so every card has the same shape.
func renderCover(book catalog.Book, width int, styles Styles) string {
	if !book.HasCover() {
		return styles.FaintText.Render("[ no cover ]")
	}
	return styles.InfoText.Render(truncate("▣ "+coverLabel(book.Img), width))
}

// renderChips renders genre tags in order, replacing the ones that do not
// fit with a "+N" counter.
func renderChips(genres []string, width int, styles Styles) string {
	parts := make([]string, 0, len(genres))
	used := 0
	for i, genre := range genres {
		chip := styles.Chip.Render(truncate(genre, chipLabelLimit))
		w := lipgloss.Width(chip)
		if len(parts) > 0 {
			w++
		}
		reserve := 0
		if rest := len(genres) - i - 1; rest > 0 {
			reserve = len(fmt.Sprintf(" +%d", rest))
		}
		if used+w+reserve > width {
			parts = append(parts, styles.FaintText.Render(fmt.Sprintf("+%d", len(genres)-i)))
			break
		}
		parts = append(parts, chip)
		used += w
	}
	return strings.Join(parts, " ")
}

// renderRating renders read-only stars followed by the numeric value.
func renderRating(rating float64, styles Styles) string {
	return styles.Star.Render(starGlyphs(rating)) + " " + styles.MutedText.Render(formatRating(rating))
}

// starGlyphs draws a rating rounded to the nearest half star.
func starGlyphs(rating float64) string {
	if math.IsNaN(rating) {
		rating = 0
	}
	rating = math.Max(0, math.Min(catalog.MaxRating, rating))
	halves := int(math.Round(rating * 2))
	full, half := halves/2, halves%2 == 1

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	empty := int(catalog.MaxRating) - full
	if half {
		b.WriteString("½")
		empty--
	}
	b.WriteString(strings.Repeat("☆", empty))
	return b.String()
}

func formatRating(rating float64) string {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		rating = 0
	}
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

func renderLearnMore(selected bool, styles Styles) string {
	if selected {
		return styles.Selected.Render(learnMoreLabel)
	}
	return styles.FaintText.Render(learnMoreLabel)
}
