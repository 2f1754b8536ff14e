package catalog

import (
	"errors"
	"strings"
	"testing"
)

func filterFixture() []*Movie {
	return []*Movie{
		{Row: 1, Title: "The Matrix Resurrections", Year: "2021", Genres: []string{"Action", "Sci-Fi"}},
		{Row: 2, Title: "Dune", Year: "2021", Genres: []string{"Action", "Adventure", "Drama"}},
		{Row: 3, Title: "Matrix of Lies", Year: "2016", Genres: []string{"Action-Comedy"}},
		{Row: 4, Title: "Nomadland", Year: "2020", Genres: []string{"Drama"}},
		{Row: 5, Title: "Straße der Ehre", Year: "2019", Genres: []string{"Drama", "Drama"}},
	}
}

func TestSearchTitle_CaseInsensitive(t *testing.T) {
	movies := filterFixture()
	lower := SearchTitle(movies, "matrix")
	upper := SearchTitle(movies, "MATRIX")
	if titles(lower) != titles(upper) {
		t.Fatalf("results differ: %s vs %s", titles(lower), titles(upper))
	}
	if got := titles(lower); got != "The Matrix Resurrections,Matrix of Lies" {
		t.Fatalf("unexpected matches %s", got)
	}
	if got := titles(SearchTitle(movies, "STRASSE")); got != "Straße der Ehre" {
		t.Fatalf("expected folded match, got %q", got)
	}
}

func TestSearchTitle_NoMatches(t *testing.T) {
	res := SearchTitle(filterFixture(), "zzz")
	if res == nil || len(res) != 0 {
		t.Fatalf("expected empty non-nil result, got %v", res)
	}
}

func TestFilterGenre_ExactMembership(t *testing.T) {
	res := FilterGenre(filterFixture(), "Action")
	if got := titles(res); got != "The Matrix Resurrections,Dune" {
		t.Fatalf("unexpected matches %s", got)
	}
	for _, m := range res {
		if !m.HasGenre("Action") {
			t.Fatalf("%s does not list Action", m.Title)
		}
	}
	if got := FilterGenre(filterFixture(), "act"); len(got) != 0 {
		t.Fatalf("partial genre must not match, got %s", titles(got))
	}
}

func TestFilterYear(t *testing.T) {
	movies := filterFixture()
	tests := []struct {
		name    string
		query   string
		want    string
		wantErr any
	}{
		{name: "match", query: "2021", want: "The Matrix Resurrections,Dune"},
		{name: "lower bound", query: "2000", want: ""},
		{name: "upper bound", query: "2023", want: ""},
		{name: "spaces", query: " 2020 ", want: "Nomadland"},
		{name: "below range", query: "1999", wantErr: &RangeError{}},
		{name: "above range", query: "2024", wantErr: &RangeError{}},
		{name: "not a number", query: "twenty", wantErr: &ParseError{}},
		{name: "signed", query: "+2021", wantErr: &ParseError{}},
		{name: "negative", query: "-2021", wantErr: &ParseError{}},
		{name: "empty", query: "  ", wantErr: &ParseError{}},
		{name: "leading zero", query: "02021", want: "The Matrix Resurrections,Dune"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := FilterYear(movies, tt.query, DefaultYears)
			switch tt.wantErr.(type) {
			case *RangeError:
				var rErr *RangeError
				if !errors.As(err, &rErr) {
					t.Fatalf("expected RangeError, got %v", err)
				}
				if res != nil {
					t.Fatalf("expected no result on error, got %v", res)
				}
				return
			case *ParseError:
				var pErr *ParseError
				if !errors.As(err, &pErr) {
					t.Fatalf("expected ParseError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := titles(res); got != tt.want {
				t.Fatalf("expected %q got %q", tt.want, got)
			}
		})
	}
}

func TestFilterYear_SubstringMatch(t *testing.T) {
	movies := []*Movie{{Title: "Odd", Year: "c. 2010 (re-release)"}}
	res, err := FilterYear(movies, "2010", DefaultYears)
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 {
		t.Fatalf("expected substring match, got %d", len(res))
	}
}

func TestParseYear_CustomRange(t *testing.T) {
	yr := YearRange{Min: 1990, Max: 1999}
	if y, err := ParseYear("1995", yr); err != nil || y != 1995 {
		t.Fatalf("expected 1995, got %d %v", y, err)
	}
	_, err := ParseYear("2000", yr)
	var rErr *RangeError
	if !errors.As(err, &rErr) || rErr.Min != 1990 || rErr.Max != 1999 {
		t.Fatalf("expected RangeError with bounds, got %v", err)
	}
}

func TestGenres_FirstSeenOrder(t *testing.T) {
	got := Genres(filterFixture())
	want := "Action,Sci-Fi,Adventure,Drama,Action-Comedy"
	if strings.Join(got, ",") != want {
		t.Fatalf("expected %s got %s", want, strings.Join(got, ","))
	}

	c := New(filterFixture())
	g := c.Genres()
	g[0] = "changed"
	if c.Genres()[0] != "Action" {
		t.Fatal("Catalog.Genres must return a copy")
	}
}

func TestNumberAndAt(t *testing.T) {
	movies := filterFixture()[:2]
	rows := Number(movies)
	if len(rows) != 2 || rows[0].Position != 1 || rows[1].Position != 2 || rows[1].Movie != movies[1] {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if Number(nil) != nil {
		t.Fatal("expected nil rows for empty input")
	}

	if m, err := At(movies, 2); err != nil || m != movies[1] {
		t.Fatalf("At(2) = %v, %v", m, err)
	}
	for _, pos := range []int{0, 3, -1} {
		_, err := At(movies, pos)
		var iErr *IndexError
		if !errors.As(err, &iErr) {
			t.Fatalf("At(%d): expected IndexError, got %v", pos, err)
		}
	}
}

func TestParsePosition(t *testing.T) {
	if n, err := ParsePosition(" 7 "); err != nil || n != 7 {
		t.Fatalf("ParsePosition = %d, %v", n, err)
	}
	_, err := ParsePosition("seven")
	var pErr *ParseError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestSameTitle(t *testing.T) {
	a := &Movie{Row: 1, Title: "Dune", Year: "2021"}
	b := &Movie{Row: 9, Title: "Dune", Year: "1984"}
	c := &Movie{Title: "dune"}
	if !SameTitle(a, b) {
		t.Fatal("equal titles should match regardless of other fields")
	}
	if SameTitle(a, c) {
		t.Fatal("titles compare exactly")
	}
	if SameTitle(a, nil) || SameTitle(nil, nil) {
		t.Fatal("nil never matches")
	}
}
