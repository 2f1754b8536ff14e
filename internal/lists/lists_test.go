package lists

import (
	"errors"
	"testing"

	"github.com/JohnDeved/cinemate/internal/catalog"
)

func source() []*catalog.Movie {
	return []*catalog.Movie{
		{Row: 1, Title: "Dune"},
		{Row: 2, Title: "Nomadland"},
		{Row: 3, Title: "Tenet"},
	}
}

func TestAddRemoveRoundTrip(t *testing.T) {
	src := source()
	fav := New("favourites")

	added, err := fav.Add(src, 2)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if added != src[1] {
		t.Fatalf("expected shared pointer to %s, got %+v", src[1].Title, added)
	}

	removed, err := fav.Remove(1)
	if err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if removed != src[1] {
		t.Fatalf("removed %+v, want %s", removed, src[1].Title)
	}
	if !fav.Empty() {
		t.Fatalf("expected empty list, got %d", fav.Len())
	}
	if len(src) != 3 || src[1].Title != "Nomadland" {
		t.Fatal("removing from a list must not touch the source")
	}
}

func TestAdd_DuplicateTitle(t *testing.T) {
	src := source()
	fav := New("favourites")
	if _, err := fav.Add(src, 1); err != nil {
		t.Fatal(err)
	}

	// A distinct object with the same title counts as the same movie.
	other := []*catalog.Movie{{Title: "Dune"}}
	_, err := fav.Add(other, 1)
	var dErr *DuplicateError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if dErr.Title != "Dune" || dErr.List != "favourites" {
		t.Fatalf("unexpected error fields: %+v", dErr)
	}
	if fav.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", fav.Len())
	}
}

func TestAdd_OutOfRange(t *testing.T) {
	fav := New("favourites")
	for _, pos := range []int{0, 4, -2} {
		_, err := fav.Add(source(), pos)
		var iErr *catalog.IndexError
		if !errors.As(err, &iErr) {
			t.Fatalf("Add(%d): expected IndexError, got %v", pos, err)
		}
	}
	if !fav.Empty() {
		t.Fatal("failed adds must not mutate the list")
	}
}

func TestRemove_UsesListPositions(t *testing.T) {
	src := source()
	watch := New("watch list")
	if _, err := watch.Add(src, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := watch.Add(src, 1); err != nil {
		t.Fatal(err)
	}

	// Position 3 exists in the source but not in the list.
	_, err := watch.Remove(3)
	var iErr *catalog.IndexError
	if !errors.As(err, &iErr) {
		t.Fatalf("expected IndexError, got %v", err)
	}
	if watch.Len() != 2 {
		t.Fatal("failed remove must not shrink the list")
	}

	removed, err := watch.Remove(2)
	if err != nil {
		t.Fatal(err)
	}
	if removed.Title != "Dune" {
		t.Fatalf("expected Dune, got %s", removed.Title)
	}
	if got := watch.Movies(); len(got) != 1 || got[0].Title != "Tenet" {
		t.Fatalf("unexpected contents %+v", got)
	}
}

func TestRemove_KeepsOtherSlicesIntact(t *testing.T) {
	l := New("favourites")
	src := source()
	for i := 1; i <= 3; i++ {
		if _, err := l.Add(src, i); err != nil {
			t.Fatal(err)
		}
	}
	snapshot := l.Movies()
	if _, err := l.Remove(1); err != nil {
		t.Fatal(err)
	}
	if snapshot[0].Title != "Dune" || snapshot[2].Title != "Tenet" {
		t.Fatalf("Movies() snapshot changed: %+v", snapshot)
	}
}

func TestRows_NumberWithinList(t *testing.T) {
	src := source()
	l := New("favourites")
	if l.Rows() != nil {
		t.Fatal("expected no rows for empty list")
	}
	if _, err := l.Add(src, 3); err != nil {
		t.Fatal(err)
	}
	rows := l.Rows()
	if len(rows) != 1 || rows[0].Position != 1 || rows[0].Movie.Row != 3 {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestContains_ByTitle(t *testing.T) {
	watch := New("watch list")
	if _, err := watch.Add(source(), 3); err != nil {
		t.Fatal(err)
	}
	if !watch.Contains("Tenet") {
		t.Fatal("expected Tenet in the list")
	}
	if watch.Contains("tenet") || watch.Contains("Dune") {
		t.Fatal("only the exact title should match")
	}
}
