package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Rect is a terminal region; X and Y are inclusive, X+W and Y+H exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Grid lays out a header row, body rows and a footer row with a cursor and a
// scrolling window over the body. Cell text is plain; styling is applied at
// render time so geometry stays stable.
type Grid struct {
	Headers []string
	Rows    [][]string
	Footer  []string

	widths []int
	cursor int
	offset int
	height int // visible body rows, -1 = all
}

// NewGrid creates a grid and measures its columns.
func NewGrid(headers []string, rows [][]string, footer []string) *Grid {
	g := &Grid{Headers: headers, Rows: rows, Footer: footer, height: -1}
	g.measure()
	return g
}

func (g *Grid) measure() {
	g.widths = make([]int, len(g.Headers))
	grow := func(row []string) {
		for i, cell := range row {
			if i < len(g.widths) {
				if w := lipgloss.Width(cell); w > g.widths[i] {
					g.widths[i] = w
				}
			}
		}
	}
	grow(g.Headers)
	for _, row := range g.Rows {
		grow(row)
	}
	grow(g.Footer)
}

// ColumnWidth returns the outer width of column i including padding.
func (g *Grid) ColumnWidth(i int) int {
	return g.widths[i] + 2*CellPaddingH
}

// Width returns the total rendered width.
func (g *Grid) Width() int {
	total := 0
	for i := range g.widths {
		total += g.ColumnWidth(i)
	}
	if n := len(g.widths); n > 1 {
		total += (n - 1) * SeparatorWidth
	}
	return total
}

// SetHeight sets the number of visible body rows; -1 shows every row.
func (g *Grid) SetHeight(h int) {
	g.height = h
	g.clamp()
}

// Cursor returns the selected body row.
func (g *Grid) Cursor() int {
	return g.cursor
}

// SetCursor selects row i, scrolling it into view.
func (g *Grid) SetCursor(i int) {
	g.cursor = i
	g.clamp()
}

// MoveCursor moves the cursor by delta rows.
func (g *Grid) MoveCursor(delta int) {
	g.SetCursor(g.cursor + delta)
}

// PageSize is the number of rows a page key moves.
func (g *Grid) PageSize() int {
	if g.height <= 0 {
		return len(g.Rows)
	}
	return g.height
}

// Offset returns the first visible body row.
func (g *Grid) Offset() int {
	return g.offset
}

// Visible returns the half-open range of body rows on screen.
func (g *Grid) Visible() (from, to int) {
	if g.height < 0 || g.height >= len(g.Rows) {
		return 0, len(g.Rows)
	}
	return g.offset, g.offset + g.height
}

func (g *Grid) clamp() {
	n := len(g.Rows)
	if g.cursor >= n {
		g.cursor = n - 1
	}
	if g.cursor < 0 {
		g.cursor = 0
	}
	if g.height < 0 || g.height >= n {
		g.offset = 0
		return
	}
	if g.cursor < g.offset {
		g.offset = g.cursor
	}
	if g.cursor >= g.offset+g.height {
		g.offset = g.cursor - g.height + 1
	}
	if g.offset > n-g.height {
		g.offset = n - g.height
	}
}

// columnX returns the x offset of column i relative to the grid origin.
func (g *Grid) columnX(i int) int {
	x := 0
	for j := 0; j < i; j++ {
		x += g.ColumnWidth(j) + SeparatorWidth
	}
	return x
}

// CellRect returns the region of body cell (row, col) for a grid drawn at
// (originX, originY). ok is false when the row is scrolled out of view.
func (g *Grid) CellRect(originX, originY, row, col int) (Rect, bool) {
	from, to := g.Visible()
	if row < from || row >= to || col < 0 || col >= len(g.widths) {
		return Rect{}, false
	}
	// header + divider precede the body
	y := originY + 2 + (row - from)
	return Rect{X: originX + g.columnX(col), Y: y, W: g.ColumnWidth(col), H: 1}, true
}

// RowAt maps a terminal y to a body row.
func (g *Grid) RowAt(originY, y int) (int, bool) {
	from, to := g.Visible()
	row := from + (y - originY - 2)
	if y < originY+2 || row >= to {
		return 0, false
	}
	return row, true
}

// ColumnAt maps a terminal x to a column.
func (g *Grid) ColumnAt(originX, x int) (int, bool) {
	for i := range g.widths {
		start := originX + g.columnX(i)
		if x >= start && x < start+g.ColumnWidth(i) {
			return i, true
		}
	}
	return 0, false
}

// CellStyle lets the caller style individual body cells; ok=false keeps the
// row style.
type CellStyle func(row, col int) (lipgloss.Style, bool)

// View renders the grid with lipgloss/table. The footer travels as the last
// data row and gets a copy of the header divider above it. Every cell is
// pinned to its measured width so the hit-test geometry matches the output.
func (g *Grid) View(styles Styles, cellStyle CellStyle) string {
	from, to := g.Visible()
	footerRow := to

	data := make([][]string, 0, to+1)
	data = append(data, g.Rows[:to]...)
	data = append(data, g.Footer)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Separator).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(true).
		Wrap(false).
		Headers(g.Headers...).
		Rows(data...).
		Offset(from).
		StyleFunc(func(row, col int) lipgloss.Style {
			var st lipgloss.Style
			switch {
			case row == table.HeaderRow:
				st = styles.GridHeader
			case row == footerRow:
				st = styles.GridFooter
			case row == g.cursor:
				st = styles.Cursor
			default:
				st = styles.Body
			}
			if cellStyle != nil && row >= 0 && row < footerRow {
				if s, ok := cellStyle(row, col); ok {
					st = s
				}
			}
			return st.Padding(0, CellPaddingH).Width(g.ColumnWidth(col))
		})

	// lipgloss pads every line to the block width, so trailing lines can be
	// blank rather than empty.
	lines := strings.Split(t.Render(), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 3 {
		return strings.Join(lines, "\n")
	}

	divider := lines[1]
	footer := lines[len(lines)-1]
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:len(lines)-1]...)
	out = append(out, divider, footer)
	return strings.Join(out, "\n")
}
