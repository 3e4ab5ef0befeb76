package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleBooks() []Book {
	return []Book{
		{ID: "1", Name: "Dune", Author: "Frank Herbert", Genres: []string{"Sci-Fi"}, Stars: "4.8", Img: "dune.jpg"},
		{ID: "2", Name: "Emma", Author: "Jane Austen", Genres: []string{"Classic"}, Stars: "4.1"},
		{ID: "3", Name: "Children of Dune", Author: "Frank Herbert", Stars: "abc"},
		{ID: "4", Name: "Neuromancer", Author: "William Gibson", Stars: "4"},
		{ID: "4", Name: "Persuasion", Author: "Jane AUSTEN", Stars: "3.9"},
	}
}

func names(books []Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Name)
	}
	return out
}

func TestFilter_EmptyQueryReturnsEverythingInOrder(t *testing.T) {
	books := sampleBooks()
	assert.Equal(t, books, Filter(books, ""))
}

func TestFilter_MatchesNameOrAuthorIgnoringCase(t *testing.T) {
	books := sampleBooks()

	cases := []struct {
		query string
		want  []string
	}{
		{"dun", []string{"Dune", "Children of Dune"}},
		{"DUNE", []string{"Dune", "Children of Dune"}},
		{"austen", []string{"Emma", "Persuasion"}},
		{"her", []string{"Dune", "Children of Dune"}},
		{"gibson", []string{"Neuromancer"}},
		{"xyz", []string{}},
		{" of ", []string{"Children of Dune"}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, names(Filter(books, tc.query)))
		})
	}
}

func TestFilter_ResultIsMatchingSubsetAndIdempotent(t *testing.T) {
	books := sampleBooks()
	for _, q := range []string{"d", "an", "E", "austen", "zzz", "Dune"} {
		got := Filter(books, q)
		lower := strings.ToLower(q)
		for _, b := range got {
			ok := strings.Contains(strings.ToLower(b.Name), lower) || strings.Contains(strings.ToLower(b.Author), lower)
			assert.True(t, ok, "query %q returned non-matching %q", q, b.Name)
			assert.Contains(t, books, b)
		}
		assert.Equal(t, got, Filter(got, q), "filter not idempotent for %q", q)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	books := sampleBooks()
	before := append([]Book(nil), books...)
	_ = Filter(books, "austen")
	assert.Equal(t, before, books)
}

func TestFilter_DuneScenario(t *testing.T) {
	books := []Book{{ID: "1", Name: "Dune", Author: "Herbert", Genres: []string{"Sci-Fi"}, Stars: "4.8", Img: "dune.jpg"}}
	assert.Equal(t, []string{"Dune"}, names(Filter(books, "dun")))
	assert.Empty(t, Filter(books, "xyz"))
}

func TestBookMatches(t *testing.T) {
	b := Book{Name: "Dune", Author: "Herbert"}
	assert.True(t, b.Matches(""))
	assert.True(t, b.Matches("HERB"))
	assert.False(t, b.Matches("austen"))
}
