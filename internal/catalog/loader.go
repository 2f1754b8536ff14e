package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Column names expected in the header row of the movie file.
const (
	ColTitle   = "primaryTitle"
	ColYear    = "startYear"
	ColRuntime = "runtimeMinutes"
	ColGenres  = "genres"
	ColRating  = "averageRating"
	ColVotes   = "numVotes"
)

var requiredColumns = []string{ColTitle, ColYear, ColRuntime, ColGenres, ColRating, ColVotes}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) ([]*Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DataSourceError{Path: path, Msg: "cannot open", Err: err}
	}
	defer f.Close()

	movies, err := Load(f)
	if err != nil {
		var dsErr *DataSourceError
		if errors.As(err, &dsErr) && dsErr.Path == "" {
			dsErr.Path = path
		}
		return nil, err
	}
	return movies, nil
}

// Load parses tab-separated rows with a header line into movies. Columns
// are located by name; extra columns are ignored. Rating and votes are
// kept as text and only converted when ranked.
//
// Fields are split on tabs without quote handling: IMDb exports contain
// bare double quotes inside titles.
func Load(r io.Reader) ([]*Movie, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, &DataSourceError{Msg: "reading header", Err: err}
		}
		return nil, &DataSourceError{Msg: "missing header row"}
	}
	header := splitLine(sc.Text())
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	idx := make([]int, len(requiredColumns))
	var missing []string
	for i, name := range requiredColumns {
		pos, ok := cols[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[i] = pos
	}
	if len(missing) > 0 {
		return nil, &DataSourceError{Msg: "missing required column(s): " + strings.Join(missing, ", ")}
	}
	width := 0
	for _, pos := range idx {
		if pos+1 > width {
			width = pos + 1
		}
	}

	var movies []*Movie
	line := 1
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		fields := splitLine(text)
		if len(fields) < width {
			return nil, &DataSourceError{Msg: fmt.Sprintf("line %d: expected at least %d fields, got %d", line, width, len(fields))}
		}
		movies = append(movies, &Movie{
			Row:     len(movies) + 1,
			Title:   fields[idx[0]],
			Year:    fields[idx[1]],
			Runtime: fields[idx[2]],
			Genres:  strings.Split(fields[idx[3]], ","),
			Rating:  fields[idx[4]],
			Votes:   fields[idx[5]],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, &DataSourceError{Msg: fmt.Sprintf("reading line %d", line+1), Err: err}
	}
	return movies, nil
}

func splitLine(s string) []string {
	return strings.Split(strings.TrimRight(s, "\r"), "\t")
}
