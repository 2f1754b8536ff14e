package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JohnDeved/cinemate/internal/catalog"
	"github.com/JohnDeved/cinemate/internal/session"
	"github.com/JohnDeved/cinemate/internal/util"
)

// Column widths; the title column takes what is left.
const (
	colIndex   = 6
	colRelease = 8
	colRuntime = 8
	colGenre   = 28
	colRating  = 7
	colVotes   = 11
)

// movieTable is a scrollable list of numbered movies. The numbers belong
// to the view being shown, so the same movie can be #3 here and #41 in
// another tab.
type movieTable struct {
	view     session.View
	rows     []catalog.Row
	cursor   int
	offset   int // viewport scroll offset
	height   int // visible area height
	loaded   bool
	emptyMsg string
}

func newMovieTable(emptyMsg string) movieTable {
	return movieTable{height: 20, emptyMsg: emptyMsg}
}

func (t *movieTable) setRows(view session.View, rows []catalog.Row) {
	t.view = view
	t.rows = rows
	t.loaded = true
	t.normalizeViewport()
}

// reset clears the rows and scroll position.
func (t *movieTable) reset() {
	t.rows = nil
	t.cursor = 0
	t.offset = 0
	t.loaded = false
}

func (t *movieTable) normalizeViewport() {
	total := len(t.rows)
	if total <= 0 {
		t.cursor = 0
		t.offset = 0
		return
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	if t.cursor >= total {
		t.cursor = total - 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.height > 0 && t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	maxOffset := total - t.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.offset > maxOffset {
		t.offset = maxOffset
	}
}

// position returns the 1-based number of the selected row, or 0.
func (t *movieTable) position() int {
	if sel := t.selected(); sel != nil {
		return sel.Position
	}
	return 0
}

func (t *movieTable) selected() *catalog.Row {
	t.normalizeViewport()
	if t.cursor >= 0 && t.cursor < len(t.rows) {
		return &t.rows[t.cursor]
	}
	return nil
}

func (t *movieTable) moveUp() {
	if t.cursor > 0 {
		t.cursor--
		if t.cursor < t.offset {
			t.offset = t.cursor
		}
	}
}

func (t *movieTable) moveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
		if t.cursor >= t.offset+t.height {
			t.offset = t.cursor - t.height + 1
		}
	}
}

func (t *movieTable) pageUp() {
	if len(t.rows) == 0 || t.height <= 0 {
		t.normalizeViewport()
		return
	}
	rel := t.cursor - t.offset
	t.offset -= t.height
	if t.offset < 0 {
		t.offset = 0
	}
	t.cursor = t.offset + rel
	t.normalizeViewport()
}

func (t *movieTable) pageDown() {
	if len(t.rows) == 0 || t.height <= 0 {
		t.normalizeViewport()
		return
	}
	rel := t.cursor - t.offset
	t.offset += t.height
	maxOffset := len(t.rows) - t.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.offset > maxOffset {
		t.offset = maxOffset
	}
	t.cursor = t.offset + rel
	t.normalizeViewport()
}

func (t *movieTable) goHome() {
	t.cursor = 0
	t.offset = 0
}

func (t *movieTable) goEnd() {
	t.cursor = len(t.rows) - 1
	t.normalizeViewport()
}

// jumpTo moves the cursor to the 1-based position.
func (t *movieTable) jumpTo(position int) bool {
	if position < 1 || position > len(t.rows) {
		return false
	}
	t.cursor = position - 1
	t.normalizeViewport()
	return true
}

func (t *movieTable) render(width int) string {
	var sb strings.Builder

	if t.view.Label != "" {
		sb.WriteString(viewTitleStyle.Render("  " + t.view.Label))
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d)", len(t.rows))))
		sb.WriteString("\n")
	}

	if len(t.rows) == 0 {
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("  " + t.emptyMsg))
		sb.WriteString("\n")
		return sb.String()
	}

	rowWidth := width - selectedStyle.GetHorizontalFrameSize()
	if rowWidth < 40 {
		rowWidth = 40
	}
	sb.WriteString(headerStyle.Render(padToWidth(renderColumns(rowWidth, "#", "Title", "Release", "Runtime", "Genre", "Rating", "Votes"), rowWidth)))
	sb.WriteString("\n")

	t.normalizeViewport()
	end := t.offset + t.height
	if end > len(t.rows) {
		end = len(t.rows)
	}
	for i := t.offset; i < end; i++ {
		sb.WriteString(renderMovieRow(t.rows[i], rowWidth, i == t.cursor))
		sb.WriteString("\n")
	}

	if len(t.rows) > t.height {
		pct := float64(t.offset) / float64(len(t.rows)-t.height) * 100
		sb.WriteString(helpStyle.Render(
			fmt.Sprintf("  %d/%d movies (%.0f%%)", t.cursor+1, len(t.rows), pct),
		))
		sb.WriteString("\n")
	}

	return sb.String()
}

func titleWidth(rowWidth int) int {
	return max(12, rowWidth-colIndex-colRelease-colRuntime-colGenre-colRating-colVotes)
}

func renderColumns(rowWidth int, index, title, release, runtime, genre, rating, votes string) string {
	return fixed(index, colIndex) +
		fixed(title, titleWidth(rowWidth)) +
		fixed(release, colRelease) +
		fixed(runtime, colRuntime) +
		fixed(genre, colGenre) +
		fixed(rating, colRating) +
		votes
}

func renderMovieRow(r catalog.Row, rowWidth int, isSelected bool) string {
	m := r.Movie
	line := fixed(fmt.Sprintf("%d", r.Position), colIndex) +
		titleColStyle.Render(fixed(m.Title, titleWidth(rowWidth))) +
		fixed(m.Year, colRelease) +
		fixed(util.FormatRuntime(m.Runtime), colRuntime) +
		mutedStyle.Render(fixed(m.GenreString(), colGenre)) +
		ratingStyle.Render(fixed(m.Rating, colRating)) +
		util.FormatVotes(m.Votes)

	if isSelected {
		return selectedStyle.Render(padToWidth(line, rowWidth))
	}
	return normalStyle.Render(padToWidth(line, rowWidth))
}

// fixed truncates or pads s to exactly width cells, keeping one space
// between columns.
func fixed(s string, width int) string {
	return padToWidth(truncateText(s, width-1), width)
}

func truncateText(s string, maxWidth int) string {
	if maxWidth < 4 {
		return s
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return util.Truncate(s, maxWidth)
}

func padToWidth(s string, width int) string {
	pad := width - lipgloss.Width(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
