package ui

import (
	"strings"

	"github.com/five82/shelf/internal/catalog"
)

// RouteKind selects which view a route mounts.
type RouteKind int

const (
	RouteList RouteKind = iota
	RouteDetail
	RouteAdd
)

const (
	rootPath   = "/"
	bookPrefix = "/book/"
	addPath    = "/addnew"
)

// Route is a parsed navigation target.
type Route struct {
	Kind RouteKind
	ID   catalog.BookID // set for RouteDetail only
}

// ParseRoute maps a path onto one of the three views. The {id} segment of
// /book/{id} is kept verbatim. Anything unrecognised resolves to the list.
func ParseRoute(path string) Route {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	switch {
	case path == addPath:
		return Route{Kind: RouteAdd}
	case strings.HasPrefix(path, bookPrefix):
		id := strings.TrimPrefix(path, bookPrefix)
		if id == "" || strings.Contains(id, "/") {
			return Route{Kind: RouteList}
		}
		return Route{Kind: RouteDetail, ID: catalog.BookID(id)}
	default:
		return Route{Kind: RouteList}
	}
}

// Path formats the route back to its path.
func (r Route) Path() string {
	switch r.Kind {
	case RouteDetail:
		return DetailPath(r.ID)
	case RouteAdd:
		return addPath
	default:
		return rootPath
	}
}

// DetailPath builds the detail path for a book id.
func DetailPath(id catalog.BookID) string {
	return bookPrefix + id.String()
}

// Title is the short label shown in the header.
func (r Route) Title() string {
	switch r.Kind {
	case RouteDetail:
		return "Book"
	case RouteAdd:
		return "Add Book"
	default:
		return "Catalog"
	}
}
