package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/JohnDeved/cinemate/internal/catalog"
)

type queryKind int

const (
	queryTitle queryKind = iota
	queryYear
)

// queryModel is an input line plus the table of movies it matched. The
// title search and the year filter share it.
type queryModel struct {
	kind  queryKind
	input textinput.Model
	table movieTable
	err   error
}

func newQueryModel(kind queryKind, years catalog.YearRange) queryModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 60
	ti.PromptStyle = searchPromptStyle
	switch kind {
	case queryYear:
		ti.Prompt = "Year: "
		ti.Placeholder = fmt.Sprintf("%d-%d", years.Min, years.Max)
		ti.CharLimit = 8
	default:
		ti.Prompt = "Title: "
		ti.Placeholder = "Search titles..."
	}
	return queryModel{
		kind:  kind,
		input: ti,
		table: newMovieTable("No movies found."),
	}
}

func (q *queryModel) setError(err error) {
	q.err = err
	q.table.reset()
}

func (q *queryModel) view(width int) string {
	var sb strings.Builder
	sb.WriteString(padToWidth(q.input.View(), width))
	sb.WriteString("\n\n")

	if q.err != nil {
		sb.WriteString(padToWidth(errorStyle.Render("  "+describeError(q.err)), width))
		sb.WriteString("\n")
		return sb.String()
	}

	if !q.table.loaded {
		hint := "  Type part of a title and press Enter."
		if q.kind == queryYear {
			hint = "  Type a release year and press Enter."
		}
		sb.WriteString(padToWidth(helpStyle.Render(hint), width))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(q.table.render(width))
	return sb.String()
}
