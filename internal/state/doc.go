// Package state holds the catalog list view's state machine.
//
// # Overview
//
// The list view loads the catalog once per mount and then filters it locally.
// List is the single owner of that state: phase, records, error, search text
// and load time. It changes only through the transition methods below and
// hands out copies through Snapshot.
//
// # Phases
//
//	Idle ──Mount()──→ Loading ──Resolve()──→ Ready
//	                     │
//	                     └────Fail()──────→ Failed
//
// Ready and Failed are terminal for a mount. Nothing retries automatically;
// loading again means mounting again, which drops the previous records so a
// failure never shows a stale list.
//
// # Mount Tokens
//
// Mount returns a Token that the caller attaches to its fetch. Resolve and
// Fail only apply when the token is still live:
//
//	token := list.Mount()
//	go func() {
//		books, err := client.FetchAll(ctx)
//		if err != nil {
//			list.Fail(token, err)
//			return
//		}
//		list.Resolve(token, books)
//	}()
//	...
//	list.Dispose() // view closed: the late result above is discarded
//
// A second Mount supersedes the first the same way.
//
// # Derived View
//
// Snapshot.Visible is catalog.Filter applied to the stored records with the
// current search text. It is recomputed on every Snapshot, is empty unless
// the phase is Ready, and never alters the stored records.
//
// # Concurrency Model
//
// List uses a readers-writer lock. Transitions take the write lock, Snapshot
// and Mounted take the read lock. The lock is never held across network I/O
// or rendering.
package state
