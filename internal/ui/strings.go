package ui

import (
	"net/url"
	"path"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// truncate shortens value to at most limit display cells, adding an
// ellipsis when it had to cut. Wide runes count as two cells.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= len(ellipsis) {
		return runewidth.Truncate(value, limit, "")
	}
	return runewidth.Truncate(value, limit, ellipsis)
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// coverLabel is what the cover slot shows for an img reference: the file
// name when there is one, the host otherwise.
func coverLabel(img string) string {
	img = strings.TrimSpace(img)
	if img == "" {
		return ""
	}
	u, err := url.Parse(img)
	if err != nil {
		return path.Base(img)
	}
	if base := path.Base(u.Path); base != "." && base != "/" {
		return base
	}
	if u.Host != "" {
		return u.Host
	}
	return img
}

// clamp keeps v within [lo, hi]; hi below lo yields lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
