// Package catalog provides the book model and an HTTP client for the catalog
// REST API.
//
// # Overview
//
// The catalog is served by an external REST API. This package owns the
// boundary with it: it fetches records, coerces the loosely typed JSON into
// Book values, and reports every failure as a single *NetworkError.
//
// # Files
//
//   - types.go: Book, BookID, Stars and Draft, plus payload decoding
//   - client.go: HTTP client and request handling
//   - filter.go: case-insensitive name/author search
//   - errors.go: NetworkError
//
// # API Endpoints
//
//   - GET /books: the whole catalog, unfiltered and unpaginated
//   - GET /books/{id}: one record, used by the detail view
//   - POST /books: create a record, used by the add view
//
// # Record Coercion
//
// Records are built construct-or-fail at the boundary. A record without an
// id, name or author makes the payload malformed. Optional fields degrade
// instead: a missing img leaves the cover slot empty, null genres become an
// empty list, and a rating that is not a number reads as 0.
//
//	books, err := client.FetchAll(ctx)
//	if err != nil {
//		log.Printf("catalog fetch failed: %v", err)
//	}
//	visible := catalog.Filter(books, "herb")
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: shelf/0.1
//   - Carry a fresh X-Request-ID which is also written to the log on failure
//   - Wait on a client-side rate limiter before dialing
//
// There is no retry and no caching; each call is exactly one request.
package catalog
