// Package session ties one user's catalog, top ranking and custom lists
// together. A Session is not safe for concurrent use; hosts serving more
// than one user create one Session each.
package session

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JohnDeved/cinemate/internal/catalog"
	"github.com/JohnDeved/cinemate/internal/lists"
	"github.com/JohnDeved/cinemate/internal/logging"
)

// ListKind selects one of the session's custom lists.
type ListKind int

const (
	Favourites ListKind = iota
	WatchList
)

func (k ListKind) String() string {
	switch k {
	case Favourites:
		return "favourites"
	case WatchList:
		return "watch list"
	default:
		return "unknown"
	}
}

// Options configures a session.
type Options struct {
	TopN   int
	Years  catalog.YearRange
	Logger *slog.Logger
}

// Session is the state of one interactive run.
type Session struct {
	id      string
	catalog *catalog.Catalog
	opts    Options
	log     *slog.Logger
	top     []*catalog.Movie
	lists   map[ListKind]*lists.List
}

// New starts a session over cat with empty custom lists.
func New(cat *catalog.Catalog, opts Options) *Session {
	if opts.TopN <= 0 {
		opts.TopN = catalog.DefaultTopN
	}
	if opts.Years == (catalog.YearRange{}) {
		opts.Years = catalog.DefaultYears
	}
	id := uuid.NewString()
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("session", id))

	s := &Session{
		id:      id,
		catalog: cat,
		opts:    opts,
		log:     log,
		lists: map[ListKind]*lists.List{
			Favourites: lists.New(Favourites.String()),
			WatchList:  lists.New(WatchList.String()),
		},
	}
	log.Info("session started", slog.Int("movies", cat.Len()), slog.Int("top_n", opts.TopN))
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Catalog returns the session catalog.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Options returns the effective options.
func (s *Session) Options() Options { return s.opts }

// List returns the custom list of the given kind.
func (s *Session) List(kind ListKind) *lists.List {
	l, ok := s.lists[kind]
	if !ok {
		panic(fmt.Sprintf("session: unknown list kind %d", kind))
	}
	return l
}

// Top returns the top-N ranking, computing it on first use. The catalog
// does not change during a session so the result is cached.
func (s *Session) Top() ([]*catalog.Movie, error) {
	if s.top != nil {
		return s.top, nil
	}
	top, err := catalog.TopN(s.catalog.Movies(), s.opts.TopN)
	if err != nil {
		s.log.Warn("ranking failed", logging.Err(err))
		return nil, err
	}
	s.top = top
	return top, nil
}

// Genres returns the distinct genres of the catalog in first-seen order.
func (s *Session) Genres() []string {
	return s.catalog.Genres()
}

// Search filters the catalog by title.
func (s *Session) Search(query string) View {
	res := catalog.SearchTitle(s.catalog.Movies(), query)
	s.log.Debug("title search", slog.String("query", query), slog.Int("matches", len(res)))
	return FilterView(fmt.Sprintf("Title contains %q", query), res)
}

// Genre filters the catalog to movies listing genre.
func (s *Session) Genre(genre string) View {
	res := catalog.FilterGenre(s.catalog.Movies(), genre)
	s.log.Debug("genre filter", slog.String("genre", genre), slog.Int("matches", len(res)))
	return FilterView("Genre "+genre, res)
}

// Year validates raw against the configured range and filters the
// catalog by release year.
func (s *Session) Year(raw string) (View, error) {
	res, err := catalog.FilterYear(s.catalog.Movies(), raw, s.opts.Years)
	if err != nil {
		return View{}, err
	}
	s.log.Debug("year filter", slog.String("year", raw), slog.Int("matches", len(res)))
	return FilterView("Released "+raw, res), nil
}

// Add puts the movie at position of view into the chosen list.
func (s *Session) Add(kind ListKind, view View, position int) (*catalog.Movie, error) {
	src, err := s.Resolve(view)
	if err != nil {
		return nil, err
	}
	m, err := s.List(kind).Add(src, position)
	if err != nil {
		s.log.Debug("add rejected", slog.String("list", kind.String()), slog.Int("position", position), logging.Err(err))
		return nil, err
	}
	s.log.Info("added to list", slog.String("list", kind.String()), slog.String("title", m.Title))
	return m, nil
}

// AddInput is Add for a position typed by the user.
func (s *Session) AddInput(kind ListKind, view View, raw string) (*catalog.Movie, error) {
	pos, err := catalog.ParsePosition(raw)
	if err != nil {
		return nil, err
	}
	return s.Add(kind, view, pos)
}

// Remove deletes the movie at position within the chosen list.
func (s *Session) Remove(kind ListKind, position int) (*catalog.Movie, error) {
	m, err := s.List(kind).Remove(position)
	if err != nil {
		return nil, err
	}
	s.log.Info("removed from list", slog.String("list", kind.String()), slog.String("title", m.Title))
	return m, nil
}

// RemoveInput is Remove for a position typed by the user.
func (s *Session) RemoveInput(kind ListKind, raw string) (*catalog.Movie, error) {
	pos, err := catalog.ParsePosition(raw)
	if err != nil {
		return nil, err
	}
	return s.Remove(kind, pos)
}
