package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/JohnDeved/cinemate/internal/catalog"
	"github.com/JohnDeved/cinemate/internal/util"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

type movieOut struct {
	Position int      `json:"position"`
	Title    string   `json:"title"`
	Year     string   `json:"year"`
	Runtime  string   `json:"runtime"`
	Genres   []string `json:"genres"`
	Rating   string   `json:"rating"`
	Votes    string   `json:"votes"`
}

// limitRows keeps the first limit rows; limit <= 0 keeps all.
func limitRows(rows []catalog.Row, limit int) []catalog.Row {
	if limit > 0 && limit < len(rows) {
		return rows[:limit]
	}
	return rows
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printMovies prints movies numbered from 1 as a table or JSON.
func printMovies(cmd *cobra.Command, label string, movies []*catalog.Movie) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonMode, _ := cmd.Flags().GetBool("json")
	rows := limitRows(catalog.Number(movies), limit)
	w := cmd.OutOrStdout()

	if jsonMode {
		out := struct {
			View   string     `json:"view"`
			Count  int        `json:"count"`
			Movies []movieOut `json:"movies"`
		}{
			View:   label,
			Count:  len(movies),
			Movies: make([]movieOut, 0, len(rows)),
		}
		for _, r := range rows {
			out.Movies = append(out.Movies, movieOut{
				Position: r.Position,
				Title:    r.Movie.Title,
				Year:     r.Movie.Year,
				Runtime:  r.Movie.Runtime,
				Genres:   r.Movie.Genres,
				Rating:   r.Movie.Rating,
				Votes:    r.Movie.Votes,
			})
		}
		return writeJSON(w, out)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No movies found.")
		return nil
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		m := r.Movie
		data = append(data, []string{
			strconv.Itoa(r.Position),
			util.Truncate(m.Title, 60),
			m.Year,
			util.FormatRuntime(m.Runtime),
			m.GenreString(),
			m.Rating,
			util.FormatVotes(m.Votes),
		})
	}
	fmt.Fprintf(w, "%s (%d)\n", label, len(movies))
	fmt.Fprintln(w, renderTable(
		[]string{"#", "Title", "Release", "Runtime", "Genre", "Rating", "Votes"},
		data,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight},
	))
	return nil
}

func printGenres(cmd *cobra.Command, genres []string, counts []int) error {
	w := cmd.OutOrStdout()
	jsonMode, _ := cmd.Flags().GetBool("json")
	if jsonMode {
		type genreOut struct {
			Genre  string `json:"genre"`
			Movies int    `json:"movies"`
		}
		out := make([]genreOut, 0, len(genres))
		for i, g := range genres {
			out = append(out, genreOut{Genre: g, Movies: counts[i]})
		}
		return writeJSON(w, out)
	}

	if len(genres) == 0 {
		fmt.Fprintln(w, "No genres found.")
		return nil
	}
	rows := make([][]string, 0, len(genres))
	for i, g := range genres {
		rows = append(rows, []string{strconv.Itoa(i + 1), g, humanize.Comma(int64(counts[i]))})
	}
	fmt.Fprintln(w, renderTable([]string{"#", "Genre", "Movies"}, rows, []columnAlignment{alignRight, alignLeft, alignRight}))
	return nil
}

type catalogStats struct {
	DataPath      string `json:"data_path"`
	Movies        int    `json:"movies"`
	Genres        int    `json:"genres"`
	TopN          int    `json:"top_n"`
	YearMin       int    `json:"year_min"`
	YearMax       int    `json:"year_max"`
	IndexSources  int    `json:"index_sources"`
	IndexMovies   int    `json:"index_movies"`
	Database      string `json:"database"`
	DatabaseBytes int64  `json:"database_bytes"`
}

func printStats(cmd *cobra.Command, st catalogStats) error {
	w := cmd.OutOrStdout()
	jsonMode, _ := cmd.Flags().GetBool("json")
	if jsonMode {
		return writeJSON(w, st)
	}

	fmt.Fprintf(w, "Catalog Statistics:\n")
	fmt.Fprintf(w, "  Data file:   %s\n", util.TruncatePath(st.DataPath, 60))
	fmt.Fprintf(w, "  Movies:      %s\n", humanize.Comma(int64(st.Movies)))
	fmt.Fprintf(w, "  Genres:      %d\n", st.Genres)
	fmt.Fprintf(w, "  Top list:    %d\n", st.TopN)
	fmt.Fprintf(w, "  Years:       %d-%d\n", st.YearMin, st.YearMax)
	fmt.Fprintf(w, "Index Statistics:\n")
	fmt.Fprintf(w, "  Sources:     %d\n", st.IndexSources)
	fmt.Fprintf(w, "  Movies:      %s\n", humanize.Comma(int64(st.IndexMovies)))
	fmt.Fprintf(w, "  Database:    %s (%s)\n", util.TruncatePath(st.Database, 60), humanize.Bytes(uint64(st.DatabaseBytes)))
	return nil
}
