package session

import (
	"fmt"

	"github.com/JohnDeved/cinemate/internal/catalog"
)

// ViewKind tags which sequence a View refers to.
type ViewKind int

const (
	ViewCatalog ViewKind = iota
	ViewTop
	ViewFilter
)

func (k ViewKind) String() string {
	switch k {
	case ViewCatalog:
		return "catalog"
	case ViewTop:
		return "top"
	case ViewFilter:
		return "filter"
	default:
		return "unknown"
	}
}

// View is the sequence the user is currently looking at and adding
// from: the whole catalog, the top ranking, or a filter result carried
// as payload.
type View struct {
	Kind   ViewKind
	Label  string
	movies []*catalog.Movie
}

// CatalogView refers to the full catalog.
func CatalogView() View {
	return View{Kind: ViewCatalog, Label: "All movies"}
}

// TopView refers to the session's top ranking.
func TopView() View {
	return View{Kind: ViewTop, Label: "Top rated"}
}

// FilterView carries the result of a search or filter.
func FilterView(label string, movies []*catalog.Movie) View {
	if movies == nil {
		movies = []*catalog.Movie{}
	}
	return View{Kind: ViewFilter, Label: label, movies: movies}
}

// Resolve returns the movies behind view, numbered from 1 in the order
// returned.
func (s *Session) Resolve(view View) ([]*catalog.Movie, error) {
	switch view.Kind {
	case ViewCatalog:
		return s.catalog.Movies(), nil
	case ViewTop:
		return s.Top()
	case ViewFilter:
		return view.movies, nil
	default:
		return nil, fmt.Errorf("unknown view kind %d", view.Kind)
	}
}

// Rows resolves view and numbers it for display.
func (s *Session) Rows(view View) ([]catalog.Row, error) {
	movies, err := s.Resolve(view)
	if err != nil {
		return nil, err
	}
	return catalog.Number(movies), nil
}
