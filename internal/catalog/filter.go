package catalog

import "strings"

// Matches reports whether the book's name or author contains query,
// ignoring case. An empty query matches every book.
func (b Book) Matches(query string) bool {
	if query == "" {
		return true
	}
	return matchesLower(b, strings.ToLower(query))
}

// Filter returns the books whose name or author contains query, ignoring
// case, in their original order. An empty query returns the collection
// unchanged. The input slice is never modified.
func Filter(books []Book, query string) []Book {
	if query == "" {
		return books
	}
	needle := strings.ToLower(query)
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if matchesLower(b, needle) {
			out = append(out, b)
		}
	}
	return out
}

func matchesLower(b Book, needle string) bool {
	return strings.Contains(strings.ToLower(b.Name), needle) ||
		strings.Contains(strings.ToLower(b.Author), needle)
}
