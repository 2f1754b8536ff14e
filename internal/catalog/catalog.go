// Package catalog holds the in-memory movie catalog: loading records from
// a TSV file, the votes-then-rating ranking and the title, genre and year
// filters.
package catalog

// Catalog is the ordered set of movies for one session. It is built once
// and never reordered.
type Catalog struct {
	movies []*Movie
	genres []string
}

// New wraps movies in a Catalog. The slice is owned by the catalog from
// then on.
func New(movies []*Movie) *Catalog {
	return &Catalog{movies: movies, genres: Genres(movies)}
}

// Movies returns the catalog in file order. Callers must not modify the
// returned slice.
func (c *Catalog) Movies() []*Movie {
	return c.movies
}

// Len returns the number of movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

// Genres returns every distinct genre in the order first seen while
// scanning the catalog.
func (c *Catalog) Genres() []string {
	out := make([]string, len(c.genres))
	copy(out, c.genres)
	return out
}
