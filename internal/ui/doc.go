// Package ui provides the terminal user interface for shelf.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model is the root state, Update
// handles messages, and View renders the frame: a header, a command bar and
// the mounted view below them.
//
// # Routes
//
// Three paths map onto views (see ParseRoute):
//
//   - /           catalog list: card grid with client-side search
//   - /book/{id}  detail for one book; {id} is kept verbatim
//   - /addnew     form that creates a book
//
// Unknown paths resolve to the catalog. Navigation unmounts the current view
// (its context is cancelled and its state disposed) and mounts the target,
// which issues its own fetch. Returning to / always fetches the catalog
// again.
//
// # Loading and Stale Results
//
// Fetches run as tea.Cmd functions and report back with a message carrying
// the token of the mount that issued them. The catalog list keeps its tokens
// in state.List; the detail and add views keep theirs on the model. A result
// whose token is no longer live is logged and dropped, so a response that
// arrives after the user has moved on never touches the new view.
//
// # Search
//
// "/" focuses the Search Books field. Every keystroke updates the query in
// state.List, and the visible cards are derived from it on the next render.
// Typing never triggers a fetch. esc clears the query, and every mount of
// the list starts with an empty one.
//
// # Cards
//
// Each card shows the cover slot, genre chips, title, author, a read-only
// star rating and a Learn More control. Unparseable ratings render as zero
// stars. Cards wrap into rows at the terminal width and the grid scrolls to
// keep the selected card visible.
//
// # Key Bindings
//
//	Catalog:  / search, enter learn more, h/j/k/l move, r reload, a add
//	Detail:   esc back, r reload
//	Add:      tab/shift+tab fields, enter on last field or ctrl+s save, esc cancel
//	General:  L activity log, T theme, ? help, q quit
//
// # Themes
//
// Nightfox (default), Kanagawa and Slate. T cycles them and the choice is
// saved to the preferences file.
package ui
