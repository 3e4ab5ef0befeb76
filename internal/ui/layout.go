package ui

// Card grid geometry.
const (
	// CardWidth is the outer width of one card, borders included.
	CardWidth = 34

	// CardGap is the number of columns between adjacent cards.
	CardGap = 1

	// cardLines is the number of content lines inside a card border.
	cardLines = 6

	// CardHeight is the outer height of one card.
	CardHeight = cardLines + 2
)

// chromeLines is the header plus the command bar.
const chromeLines = 2

// LayoutCompactWidth is the width below which the header drops the API URL.
const LayoutCompactWidth = 100

// Log view limits.
const (
	// LogTailLimit is the number of activity log lines shown.
	LogTailLimit = 500
)

// gridColumns returns how many cards fit side by side in width.
func gridColumns(width int) int {
	if width <= 0 {
		return 1
	}
	return max(1, (width+CardGap)/(CardWidth+CardGap))
}
