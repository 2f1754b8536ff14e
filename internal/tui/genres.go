package tui

import (
	"fmt"
	"strings"
)

// genreModel lists the catalog's genres and, once one is picked, the
// movies in it.
type genreModel struct {
	genres  []string
	cursor  int
	offset  int
	height  int
	table   movieTable
	showing bool
}

func newGenreModel() genreModel {
	return genreModel{
		height: 20,
		table:  newMovieTable("No movies in this genre."),
	}
}

func (g *genreModel) setGenres(genres []string) {
	g.genres = genres
	g.cursor = 0
	g.offset = 0
}

func (g *genreModel) selected() string {
	if g.cursor >= 0 && g.cursor < len(g.genres) {
		return g.genres[g.cursor]
	}
	return ""
}

func (g *genreModel) back() {
	g.showing = false
	g.table.reset()
}

func (g *genreModel) moveUp() {
	if g.cursor > 0 {
		g.cursor--
		if g.cursor < g.offset {
			g.offset = g.cursor
		}
	}
}

func (g *genreModel) moveDown() {
	if g.cursor < len(g.genres)-1 {
		g.cursor++
		if g.cursor >= g.offset+g.height {
			g.offset = g.cursor - g.height + 1
		}
	}
}

func (g *genreModel) view(width int) string {
	if g.showing {
		return g.table.render(width)
	}

	var sb strings.Builder
	if len(g.genres) == 0 {
		sb.WriteString(helpStyle.Render("  No genres in the catalog."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(viewTitleStyle.Render("  Genres"))
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  (%d)", len(g.genres))))
	sb.WriteString("\n")

	end := g.offset + g.height
	if end > len(g.genres) {
		end = len(g.genres)
	}
	rowWidth := max(20, width-selectedStyle.GetHorizontalFrameSize())
	for i := g.offset; i < end; i++ {
		line := fmt.Sprintf("  %3d  %s", i+1, genreBadge.Render(g.genres[i]))
		if i == g.cursor {
			sb.WriteString(selectedStyle.Render(padToWidth(line, rowWidth)))
		} else {
			sb.WriteString(normalStyle.Render(padToWidth(line, rowWidth)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
