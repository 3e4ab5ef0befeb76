// Package logtail reads the tail of shelf's activity log.
//
// shelf writes its log with the standard library logger to a file (the TUI
// owns the terminal). The log view uses this package to show the most recent
// lines without loading the whole file.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file once,
// so memory stays O(maxLines) regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		log.Printf("ui: read activity log failed: %v", err)
//	}
//
// A missing file is not an error; it yields no lines.
//
// # Parsing
//
// ParseLine understands the standard logger prefix ("2006/01/02 15:04:05")
// followed by an optional "source: " tag, which is how the catalog client and
// the UI label their messages. Lines in any other shape are returned whole.
package logtail
