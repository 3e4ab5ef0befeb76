package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/shelf/internal/catalog"
)

// Phase is where the catalog list is in its load lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Token identifies one mount of the list view. Results carrying a token other
// than the live one are discarded. The zero Token is never live.
type Token uint64

// Snapshot is a copy of the list state at a point in time.
type Snapshot struct {
	Phase    Phase
	Books    []catalog.Book // full collection as fetched
	Visible  []catalog.Book // Books filtered by Query; empty unless ready
	Query    string
	Err      error
	LoadedAt time.Time
}

// Failed reports whether the current mount ended in an error.
func (s Snapshot) Failed() bool {
	return s.Phase == PhaseFailed
}

// Loading reports whether a fetch is outstanding.
func (s Snapshot) Loading() bool {
	return s.Phase == PhaseLoading
}

// Message returns a human-readable description of the failure, if any.
func (s Snapshot) Message() string {
	if s.Phase != PhaseFailed {
		return ""
	}
	if s.Err == nil {
		return "unknown error"
	}
	return s.Err.Error()
}

// List owns the catalog list view's state. Mutations happen only through
// the transition methods.
type List struct {
	mu       sync.RWMutex
	next     Token
	live     Token
	phase    Phase
	books    []catalog.Book
	err      error
	query    string
	loadedAt time.Time
}

// Mount starts a new load: the previous mount is superseded, stored data and
// the search text are dropped, and the list enters PhaseLoading.
func (l *List) Mount() Token {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	l.live = l.next
	l.phase = PhaseLoading
	l.books = nil
	l.err = nil
	l.query = ""
	l.loadedAt = time.Time{}
	return l.live
}

// Dispose marks the view unmounted. Results for any earlier mount are
// discarded from now on.
func (l *List) Dispose() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.live = 0
}

// Mounted reports whether token belongs to the live mount.
func (l *List) Mounted(token Token) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return token != 0 && token == l.live
}

// Resolve stores a fetched collection. It returns false when the result was
// discarded because the mount is stale or already settled.
func (l *List) Resolve(token Token, books []catalog.Book) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.acceptLocked(token) {
		return false
	}
	l.phase = PhaseReady
	l.books = cloneBooks(books)
	l.err = nil
	l.loadedAt = time.Now()
	return true
}

// Fail records a fetch error. The collection stays empty.
func (l *List) Fail(token Token, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.acceptLocked(token) {
		return false
	}
	if err == nil {
		err = fmt.Errorf("fetch failed")
	}
	l.phase = PhaseFailed
	l.books = nil
	l.err = err
	l.loadedAt = time.Now()
	return true
}

func (l *List) acceptLocked(token Token) bool {
	return token != 0 && token == l.live && l.phase == PhaseLoading
}

// Phase returns the current load phase without copying the collection.
func (l *List) Phase() Phase {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.phase
}

// SetQuery replaces the search text. Stored records are never touched.
func (l *List) SetQuery(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = query
}

// Query returns the current search text.
func (l *List) Query() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.query
}

// Visible returns a copy of the records matching the search text. It is
// empty unless the list is ready.
func (l *List) Visible() []catalog.Book {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.phase != PhaseReady {
		return nil
	}
	return cloneBooks(catalog.Filter(l.books, l.query))
}

// Snapshot returns a copy of the current state with the filtered view
// derived from it.
func (l *List) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := Snapshot{
		Phase:    l.phase,
		Books:    cloneBooks(l.books),
		Query:    l.query,
		LoadedAt: l.loadedAt,
	}
	if l.err != nil {
		snap.Err = fmt.Errorf("%w", l.err)
	}
	if l.phase == PhaseReady {
		snap.Visible = catalog.Filter(snap.Books, l.query)
	}
	return snap
}

func cloneBooks(books []catalog.Book) []catalog.Book {
	if len(books) == 0 {
		return nil
	}
	dup := make([]catalog.Book, len(books))
	for i, b := range books {
		if b.Genres != nil {
			b.Genres = append(make([]string, 0, len(b.Genres)), b.Genres...)
		}
		dup[i] = b
	}
	return dup
}
