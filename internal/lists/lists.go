// Package lists implements the user's custom movie lists (favourites and
// the watch list). Lists hold shared *catalog.Movie pointers and live for
// one session only.
package lists

import (
	"fmt"

	"github.com/JohnDeved/cinemate/internal/catalog"
)

// DuplicateError reports an add of a title the list already holds.
type DuplicateError struct {
	Title string
	List  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s is already in %s", e.Title, e.List)
}

// List is an ordered, user-curated subset of the catalog.
type List struct {
	name   string
	movies []*catalog.Movie
}

// New creates an empty list.
func New(name string) *List {
	return &List{name: name}
}

// Name returns the display name, e.g. "favourites".
func (l *List) Name() string { return l.name }

// Len returns the number of movies in the list.
func (l *List) Len() int { return len(l.movies) }

// Empty reports whether the list has no movies.
func (l *List) Empty() bool { return len(l.movies) == 0 }

// Movies returns the list contents in order. The slice is a copy; the
// movies are shared.
func (l *List) Movies() []*catalog.Movie {
	out := make([]*catalog.Movie, len(l.movies))
	copy(out, l.movies)
	return out
}

// Contains reports whether a movie with this title is in the list.
func (l *List) Contains(title string) bool {
	return l.holds(&catalog.Movie{Title: title})
}

func (l *List) holds(m *catalog.Movie) bool {
	for _, have := range l.movies {
		if catalog.SameTitle(have, m) {
			return true
		}
	}
	return false
}

// Rows numbers the list 1..n for display.
func (l *List) Rows() []catalog.Row {
	return catalog.Number(l.movies)
}

// Add appends the movie at the 1-based position of source, which is
// whatever sequence the user is looking at. The list is unchanged when
// the position is out of range or the title is already present.
func (l *List) Add(source []*catalog.Movie, position int) (*catalog.Movie, error) {
	m, err := catalog.At(source, position)
	if err != nil {
		return nil, err
	}
	if l.holds(m) {
		return nil, &DuplicateError{Title: m.Title, List: l.name}
	}
	l.movies = append(l.movies, m)
	return m, nil
}

// Remove deletes and returns the movie at the 1-based position within
// the list itself.
func (l *List) Remove(position int) (*catalog.Movie, error) {
	m, err := catalog.At(l.movies, position)
	if err != nil {
		return nil, err
	}
	i := position - 1
	l.movies = append(l.movies[:i:i], l.movies[i+1:]...)
	return m, nil
}
