package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxRating is the upper bound of a book's star rating.
const MaxRating = 5.0

// BookID is the opaque identifier of a catalog entry. The API may send it as a
// JSON string or number; both are normalized to their text form.
type BookID string

// UnmarshalJSON accepts string and numeric identifiers.
func (id *BookID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = BookID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("book id must be a string or number: %w", err)
	}
	*id = BookID(n.String())
	return nil
}

// String returns the identifier text.
func (id BookID) String() string {
	return string(id)
}

// Stars holds the rating exactly as the API sent it. Use Rating to read it.
type Stars string

// UnmarshalJSON keeps strings and numbers as text. Anything else degrades to
// an empty rating instead of failing the record.
func (s *Stars) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		*s = ""
	case trimmed[0] == '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			*s = ""
			return nil
		}
		*s = Stars(text)
	case trimmed[0] == '-' || (trimmed[0] >= '0' && trimmed[0] <= '9'):
		*s = Stars(trimmed)
	default:
		*s = ""
	}
	return nil
}

// Rating returns the numeric rating clamped to [0, MaxRating]. Unparseable
// values yield 0.
func (s Stars) Rating() float64 {
	v, ok := s.parse()
	if !ok {
		return 0
	}
	return clampRating(v)
}

// Valid reports whether the rating parsed and was already within range.
func (s Stars) Valid() bool {
	v, ok := s.parse()
	return ok && v >= 0 && v <= MaxRating
}

func (s Stars) parse() (float64, bool) {
	trimmed := strings.TrimSpace(string(s))
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func clampRating(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > MaxRating:
		return MaxRating
	default:
		return v
	}
}

// Book is one catalog entry.
type Book struct {
	ID     BookID   `json:"id"`
	Name   string   `json:"name"`
	Author string   `json:"author"`
	Img    string   `json:"img"`
	Genres []string `json:"genres"`
	Stars  Stars    `json:"stars"`
}

// UnmarshalJSON decodes a record. Required fields are strict; img and genres
// degrade to empty values when they have the wrong shape.
func (b *Book) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     BookID          `json:"id"`
		Name   string          `json:"name"`
		Author string          `json:"author"`
		Img    json.RawMessage `json:"img"`
		Genres json.RawMessage `json:"genres"`
		Stars  Stars           `json:"stars"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = Book{
		ID:     raw.ID,
		Name:   raw.Name,
		Author: raw.Author,
		Img:    decodeImg(raw.Img),
		Genres: decodeGenres(raw.Genres),
		Stars:  raw.Stars,
	}
	return nil
}

// decodeImg returns the cover reference, or "" when it is not a string.
func decodeImg(data json.RawMessage) string {
	var img string
	if err := json.Unmarshal(data, &img); err != nil {
		return ""
	}
	return img
}

// decodeGenres accepts a list of labels or a single label. Items that are
// not strings are dropped.
func decodeGenres(data json.RawMessage) []string {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	switch trimmed[0] {
	case '"':
		var genre string
		if err := json.Unmarshal(trimmed, &genre); err != nil {
			return nil
		}
		return []string{genre}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		genres := make([]string, 0, len(items))
		for _, item := range items {
			var genre string
			if err := json.Unmarshal(item, &genre); err == nil {
				genres = append(genres, genre)
			}
		}
		return genres
	default:
		return nil
	}
}

// Rating is shorthand for b.Stars.Rating().
func (b Book) Rating() float64 {
	return b.Stars.Rating()
}

// HasCover reports whether the record references cover artwork.
func (b Book) HasCover() bool {
	return strings.TrimSpace(b.Img) != ""
}

var (
	errMissingID     = errors.New("missing id")
	errMissingName   = errors.New("missing name")
	errMissingAuthor = errors.New("missing author")
)

func (b Book) validate() error {
	switch {
	case strings.TrimSpace(string(b.ID)) == "":
		return errMissingID
	case strings.TrimSpace(b.Name) == "":
		return errMissingName
	case strings.TrimSpace(b.Author) == "":
		return errMissingAuthor
	}
	return nil
}

// normalize fills in the zero values the rest of the program relies on.
func (b Book) normalize() Book {
	genres := make([]string, 0, len(b.Genres))
	for _, g := range b.Genres {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	b.Genres = genres
	b.Img = strings.TrimSpace(b.Img)
	return b
}

// decodeBooks builds the collection from an API payload. A record missing a
// required field fails the whole payload; optional fields degrade.
func decodeBooks(data []byte) ([]Book, error) {
	var raw []Book
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	books := make([]Book, 0, len(raw))
	for i, b := range raw {
		if err := b.validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		books = append(books, b.normalize())
	}
	return books, nil
}

func decodeBook(data []byte) (Book, error) {
	var b Book
	if err := json.Unmarshal(data, &b); err != nil {
		return Book{}, err
	}
	if err := b.validate(); err != nil {
		return Book{}, err
	}
	return b.normalize(), nil
}

// Draft is a new catalog entry before the server assigns it an id.
type Draft struct {
	Name   string   `json:"name"`
	Author string   `json:"author"`
	Img    string   `json:"img"`
	Genres []string `json:"genres"`
	Stars  string   `json:"stars"`
}

// ParseGenres splits a comma separated label list, dropping blanks.
func ParseGenres(value string) []string {
	genres := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			genres = append(genres, part)
		}
	}
	return genres
}

// Validate checks the fields a Book requires before the draft is sent.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(d.Author) == "" {
		return errors.New("author is required")
	}
	if stars := strings.TrimSpace(d.Stars); stars != "" && !Stars(stars).Valid() {
		return fmt.Errorf("stars must be a number between 0 and %g", MaxRating)
	}
	return nil
}

func (d Draft) normalize() Draft {
	d.Name = strings.TrimSpace(d.Name)
	d.Author = strings.TrimSpace(d.Author)
	d.Img = strings.TrimSpace(d.Img)
	d.Stars = strings.TrimSpace(d.Stars)
	if d.Genres == nil {
		d.Genres = []string{}
	}
	return d
}
