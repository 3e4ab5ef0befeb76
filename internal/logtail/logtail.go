package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// stdLogLayout matches the prefix written by the standard logger with
// log.LstdFlags.
const stdLogLayout = "2006/01/02 15:04:05"

// Entry is one parsed line of shelf's activity log.
type Entry struct {
	Time    time.Time // zero when the line had no timestamp
	Source  string    // "catalog", "ui", ...; empty when not tagged
	Message string
	Raw     string
}

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	if maxLines <= 0 {
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	total := 0
	for scanner.Scan() {
		ring[total%maxLines] = scanner.Text()
		total++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if total <= maxLines {
		return append(lines, ring[:total]...), nil
	}
	start := total % maxLines
	lines = make([]string, 0, maxLines)
	lines = append(lines, ring[start:]...)
	return append(lines, ring[:start]...), nil
}

// ReadEntries is Read followed by ParseLine on every non-blank line.
func ReadEntries(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, ParseLine(line))
	}
	return entries, nil
}

// ParseLine splits a standard-logger line into timestamp, source tag and
// message. Lines that do not follow the format are kept whole as Message.
func ParseLine(line string) Entry {
	entry := Entry{Raw: line, Message: line}

	rest := line
	if len(rest) >= len(stdLogLayout) {
		if ts, err := time.ParseInLocation(stdLogLayout, rest[:len(stdLogLayout)], time.Local); err == nil {
			entry.Time = ts
			rest = strings.TrimPrefix(rest[len(stdLogLayout):], " ")
		}
	}

	if idx := strings.Index(rest, ": "); idx > 0 && !strings.ContainsAny(rest[:idx], " \t") {
		entry.Source = rest[:idx]
		rest = rest[idx+2:]
	}
	entry.Message = rest
	return entry
}

// IsFailure reports whether the entry records a failed operation.
func (e Entry) IsFailure() bool {
	lower := strings.ToLower(e.Message)
	return strings.Contains(lower, "failed") ||
		strings.Contains(lower, "returned status") ||
		strings.Contains(lower, "error")
}
