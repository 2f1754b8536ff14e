package catalog

import (
	"strconv"
	"strings"
)

// Movie is one row of the movie file. Content fields are read-only once
// loaded; several lists may hold the same *Movie.
type Movie struct {
	// Row is the 1-based position of the record in the source file.
	Row     int
	Title   string
	Year    string
	Runtime string // minutes, display only
	Genres  []string
	Rating  string
	Votes   string
}

// ParsedVotes returns the vote count as an integer.
func (m *Movie) ParsedVotes() (int, error) {
	s := strings.TrimSpace(m.Votes)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Field: "votes for " + strconv.Quote(m.Title), Input: s, Err: err}
	}
	return n, nil
}

// ParsedRating returns the average rating as a float.
func (m *Movie) ParsedRating() (float64, error) {
	s := strings.TrimSpace(m.Rating)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Field: "rating for " + strconv.Quote(m.Title), Input: s, Err: err}
	}
	return f, nil
}

// GenreString joins the genres the way they appear in the file, with a
// space after each comma for display.
func (m *Movie) GenreString() string {
	return strings.Join(m.Genres, ", ")
}

// HasGenre reports whether genre is exactly one of the movie's genres.
func (m *Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// SameTitle reports whether two records describe the same movie. Titles
// are the natural key; distinct objects with equal titles match.
func SameTitle(a, b *Movie) bool {
	return a != nil && b != nil && a.Title == b.Title
}

// Row pairs a movie with its 1-based position in whatever list is being
// shown. The same *Movie gets a different Position in each view.
type Row struct {
	Position int
	Movie    *Movie
}

// Number assigns positions 1..n to movies in order.
func Number(movies []*Movie) []Row {
	if len(movies) == 0 {
		return nil
	}
	rows := make([]Row, len(movies))
	for i, m := range movies {
		rows[i] = Row{Position: i + 1, Movie: m}
	}
	return rows
}

// At resolves a 1-based position against movies.
func At(movies []*Movie, position int) (*Movie, error) {
	if position < 1 || position > len(movies) {
		return nil, &IndexError{Position: position, Len: len(movies)}
	}
	return movies[position-1], nil
}
