package catalog

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// YearRange is the inclusive range of years accepted by FilterYear.
type YearRange struct {
	Min int
	Max int
}

// DefaultYears matches the span covered by the bundled dataset.
var DefaultYears = YearRange{Min: 2000, Max: 2023}

// Contains reports whether year lies within the range.
func (yr YearRange) Contains(year int) bool {
	return year >= yr.Min && year <= yr.Max
}

// SearchTitle returns the movies whose title contains query, ignoring
// case. An empty result is not an error.
func SearchTitle(movies []*Movie, query string) []*Movie {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	out := []*Movie{}
	for _, m := range movies {
		if strings.Contains(fold.String(m.Title), q) {
			out = append(out, m)
		}
	}
	return out
}

// FilterGenre returns the movies that list genre exactly. "Action" does
// not match a genre named "Action-Comedy".
func FilterGenre(movies []*Movie, genre string) []*Movie {
	out := []*Movie{}
	for _, m := range movies {
		if m.HasGenre(genre) {
			out = append(out, m)
		}
	}
	return out
}

// ParseYear validates a year typed by the user: it must be plain digits
// (no sign) within yr.
func ParseYear(raw string, yr YearRange) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, &ParseError{Field: "year", Input: s, Err: strconv.ErrSyntax}
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ParseError{Field: "year", Input: s, Err: err}
	}
	if !yr.Contains(year) {
		return 0, &RangeError{Value: year, Min: yr.Min, Max: yr.Max}
	}
	return year, nil
}

// FilterYear validates query with ParseYear and then returns the movies
// whose release year contains the parsed year, so "02021" finds 2021.
// Nothing is scanned when validation fails. The match is a substring
// test, not equality.
func FilterYear(movies []*Movie, query string, yr YearRange) ([]*Movie, error) {
	year, err := ParseYear(query, yr)
	if err != nil {
		return nil, err
	}
	q := strconv.Itoa(year)
	out := []*Movie{}
	for _, m := range movies {
		if strings.Contains(m.Year, q) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Genres collects every distinct genre in first-seen order.
func Genres(movies []*Movie) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, m := range movies {
		for _, g := range m.Genres {
			if seen[g] {
				continue
			}
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}
