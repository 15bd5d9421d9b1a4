package ui

// Layout constants for the grid screen. The screen is, top to bottom: title
// line, search box, blank line, grid, status line.
const (
	TitleHeight     = 1
	SearchBarHeight = 3 // rounded border around one line
	GridGap         = 1

	// GridTop is the first terminal row of the grid header.
	GridTop = TitleHeight + SearchBarHeight + GridGap

	// Rows of grid chrome around the body: header, two dividers, footer.
	GridChromeHeight = 4
	StatusBarHeight  = 1

	CellPaddingH   = 1
	SeparatorWidth = 1
	PopoverGap     = 2

	PopoverWidth     = 44
	SearchInputWidth = 40

	MinBodyRows = 1
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
	}
}

// BodyRows returns how many user rows fit, or -1 when the terminal size is
// not known yet and every row should be drawn.
func (l LayoutConfig) BodyRows() int {
	if l.TerminalHeight <= 0 {
		return -1
	}
	n := l.TerminalHeight - GridTop - GridChromeHeight - StatusBarHeight
	if n < MinBodyRows {
		return MinBodyRows
	}
	return n
}

// PopoverContentWidth is the text width inside the popover border and padding.
func (l LayoutConfig) PopoverContentWidth() int {
	return PopoverWidth - 4
}

// PopoverMaxHeight caps the popover panel so it stays on screen.
func (l LayoutConfig) PopoverMaxHeight() int {
	if l.TerminalHeight <= 0 {
		return 0
	}
	h := l.TerminalHeight - GridTop - StatusBarHeight
	if h < 3 {
		return 3
	}
	return h
}
