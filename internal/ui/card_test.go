package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/five82/shelf/internal/catalog"
)

func TestStarGlyphs(t *testing.T) {
	cases := []struct {
		rating float64
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{1, "★☆☆☆☆"},
		{2.2, "★★☆☆☆"},
		{2.3, "★★½☆☆"},
		{4.5, "★★★★½"},
		{5, "★★★★★"},
		{7, "★★★★★"},
		{-1, "☆☆☆☆☆"},
		{math.NaN(), "☆☆☆☆☆"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, starGlyphs(tc.rating), "rating %v", tc.rating)
	}
}

func TestRatingFromStars(t *testing.T) {
	assert.Equal(t, "4.5", formatRating(catalog.Stars("4.5").Rating()))
	assert.Equal(t, "0.0", formatRating(catalog.Stars("abc").Rating()))
	assert.Equal(t, "0.0", formatRating(math.Inf(1)))

	styles := GetTheme("Nightfox").Styles()
	got := renderRating(catalog.Stars("4.5").Rating(), styles)
	assert.Contains(t, got, "★★★★½")
	assert.Contains(t, got, "4.5")

	got = renderRating(catalog.Stars("abc").Rating(), styles)
	assert.Contains(t, got, "☆☆☆☆☆")
	assert.Contains(t, got, "0.0")
}

func TestRenderChips(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()

	assert.Empty(t, renderChips(nil, 30, styles))

	got := renderChips([]string{"Sci-Fi", "Classic"}, 30, styles)
	assert.Contains(t, got, "Sci-Fi")
	assert.Contains(t, got, "Classic")
	assert.Less(t, strings.Index(got, "Sci-Fi"), strings.Index(got, "Classic"), "display order is kept")

	many := []string{"Science Fiction", "Classic", "Space Opera", "Politics", "Ecology"}
	got = renderChips(many, 30, styles)
	assert.LessOrEqual(t, lipgloss.Width(got), 30)
	assert.Contains(t, got, "+")
}

func TestRenderCardHasFixedShape(t *testing.T) {
	m := New(Options{})
	m.width = 120

	books := []catalog.Book{
		{ID: "1", Name: "Dune", Author: "Frank Herbert", Img: "https://covers.example/dune.jpg", Genres: []string{"Science Fiction"}, Stars: "4.5"},
		{ID: "2", Name: strings.Repeat("Very Long Title ", 10), Author: "Someone", Stars: "nope"},
	}
	for _, b := range books {
		card := m.renderCard(b, false)
		assert.Equal(t, CardHeight, lipgloss.Height(card), "card %s", b.ID)
		assert.Equal(t, CardWidth, lipgloss.Width(card), "card %s", b.ID)
		assert.Contains(t, card, learnMoreLabel)
	}
}
