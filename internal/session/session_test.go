package session

import (
	"errors"
	"testing"

	"github.com/JohnDeved/cinemate/internal/catalog"
	"github.com/JohnDeved/cinemate/internal/lists"
	"github.com/JohnDeved/cinemate/internal/logging"
)

func newTestSession(t *testing.T, topN int) *Session {
	t.Helper()
	movies := []*catalog.Movie{
		{Row: 1, Title: "A", Year: "2016", Genres: []string{"Drama"}, Votes: "1000", Rating: "8.0"},
		{Row: 2, Title: "B", Year: "2021", Genres: []string{"Action", "Drama"}, Votes: "2000", Rating: "7.0"},
		{Row: 3, Title: "C", Year: "2021", Genres: []string{"Comedy"}, Votes: "1500", Rating: "9.0"},
	}
	return New(catalog.New(movies), Options{TopN: topN, Logger: logging.Discard()})
}

func TestNew_Defaults(t *testing.T) {
	s := New(catalog.New(nil), Options{Logger: logging.Discard()})
	if s.Options().TopN != catalog.DefaultTopN {
		t.Fatalf("expected default top n, got %d", s.Options().TopN)
	}
	if s.Options().Years != catalog.DefaultYears {
		t.Fatalf("expected default years, got %+v", s.Options().Years)
	}
	if s.ID() == "" {
		t.Fatal("expected session id")
	}
	if !s.List(Favourites).Empty() || !s.List(WatchList).Empty() {
		t.Fatal("lists must start empty")
	}
	if s.List(WatchList).Name() != "watch list" {
		t.Fatalf("unexpected list name %q", s.List(WatchList).Name())
	}
}

func TestTop_CachedRanking(t *testing.T) {
	s := newTestSession(t, 2)
	top, err := s.Top()
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].Title != "C" || top[1].Title != "B" {
		t.Fatalf("unexpected ranking %v", top)
	}
	again, _ := s.Top()
	if &again[0] != &top[0] {
		t.Fatal("expected cached slice")
	}
}

func TestAdd_IndexesActiveView(t *testing.T) {
	s := newTestSession(t, 2)

	// Position 1 means a different movie in each view.
	cases := []struct {
		view View
		want string
	}{
		{CatalogView(), "A"},
		{TopView(), "C"},
		{s.Genre("Action"), "B"},
	}
	for _, tc := range cases {
		m, err := s.Add(WatchList, tc.view, 1)
		if err != nil {
			t.Fatalf("%s: %v", tc.view.Kind, err)
		}
		if m.Title != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.view.Kind, tc.want, m.Title)
		}
	}
	if s.List(WatchList).Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.List(WatchList).Len())
	}
	if s.List(Favourites).Len() != 0 {
		t.Fatal("lists must be independent")
	}
}

func TestAdd_DuplicateAcrossViews(t *testing.T) {
	s := newTestSession(t, 2)
	if _, err := s.Add(Favourites, CatalogView(), 3); err != nil {
		t.Fatal(err)
	}
	_, err := s.Add(Favourites, TopView(), 1)
	var dErr *lists.DuplicateError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if s.List(Favourites).Len() != 1 {
		t.Fatalf("expected one entry, got %d", s.List(Favourites).Len())
	}
}

func TestInputErrors(t *testing.T) {
	s := newTestSession(t, 2)
	var pErr *catalog.ParseError
	if _, err := s.AddInput(Favourites, CatalogView(), "abc"); !errors.As(err, &pErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	var iErr *catalog.IndexError
	if _, err := s.AddInput(Favourites, TopView(), "3"); !errors.As(err, &iErr) {
		t.Fatalf("expected IndexError for top view of 2, got %v", err)
	}
	if _, err := s.RemoveInput(Favourites, "1"); !errors.As(err, &iErr) {
		t.Fatalf("expected IndexError on empty list, got %v", err)
	}
	if _, err := s.RemoveInput(Favourites, "x"); !errors.As(err, &pErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !s.List(Favourites).Empty() {
		t.Fatal("failed operations must not mutate the list")
	}
}

func TestAddRemoveInputRoundTrip(t *testing.T) {
	s := newTestSession(t, 2)
	added, err := s.AddInput(Favourites, CatalogView(), "2")
	if err != nil {
		t.Fatal(err)
	}
	removed, err := s.RemoveInput(Favourites, " 1 ")
	if err != nil {
		t.Fatal(err)
	}
	if added != removed || removed.Title != "B" {
		t.Fatalf("round trip mismatch: %v %v", added, removed)
	}
	if s.Catalog().Len() != 3 {
		t.Fatal("catalog must be unaffected")
	}
}

func TestYear(t *testing.T) {
	s := newTestSession(t, 2)
	v, err := s.Year("2021")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := s.Rows(v)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].Movie.Title != "B" || rows[1].Position != 2 {
		t.Fatalf("unexpected rows %+v", rows)
	}

	var rErr *catalog.RangeError
	if _, err := s.Year("1999"); !errors.As(err, &rErr) {
		t.Fatalf("expected RangeError, got %v", err)
	}
}

func TestSearchAndGenres(t *testing.T) {
	s := newTestSession(t, 2)
	v := s.Search("zzz")
	rows, err := s.Rows(v)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
	if _, err := s.Add(Favourites, v, 1); err == nil {
		t.Fatal("expected error adding from empty result")
	}
	got := s.Genres()
	if len(got) != 3 || got[0] != "Drama" || got[1] != "Action" || got[2] != "Comedy" {
		t.Fatalf("unexpected genres %v", got)
	}
}

func TestTop_ParseErrorIsReported(t *testing.T) {
	movies := []*catalog.Movie{{Title: "bad", Votes: "n/a", Rating: "1"}}
	s := New(catalog.New(movies), Options{Logger: logging.Discard()})
	var pErr *catalog.ParseError
	if _, err := s.Top(); !errors.As(err, &pErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if _, err := s.Add(Favourites, TopView(), 1); !errors.As(err, &pErr) {
		t.Fatalf("expected ParseError from add, got %v", err)
	}
}
