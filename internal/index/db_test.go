package index

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JohnDeved/cinemate/internal/catalog"
	"github.com/JohnDeved/cinemate/internal/logging"
)

const testTSV = "primaryTitle\tstartYear\truntimeMinutes\tgenres\taverageRating\tnumVotes\n" +
	"Dune\t2021\t155\tAction,Adventure,Drama\t8.0\t700000\n" +
	"Dune: Part Two\t2023\t166\tAction,Adventure\t8.6\t500000\n" +
	"Nomadland\t2020\t107\tDrama\t7.3\t180000\n"

func writeSource(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "movie_data.tsv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("OpenDB returned error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSanitizeFTS5Query(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"dune":            `"dune"`,
		"dune (part two)": `"dune" "part" "two"`,
		`say "hi"`:        `"say" """hi"""`,
		"  ( )  ":         "",
	}
	for in, want := range tests {
		if got := sanitizeFTS5Query(in); got != want {
			t.Errorf("sanitizeFTS5Query(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestImporter_SyncAndLoad(t *testing.T) {
	db := openTestDB(t)
	path := writeSource(t, t.TempDir(), testTSV)
	im := NewImporter(db, logging.Discard())

	res, err := im.Sync(path)
	if err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if !res.Imported || res.Movies != 3 {
		t.Fatalf("unexpected result %+v", res)
	}

	res, err = im.Sync(path)
	if err != nil {
		t.Fatal(err)
	}
	if res.Imported {
		t.Fatal("second sync should use the fresh cache")
	}

	movies, err := im.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(movies) != 3 || movies[1].Title != "Dune: Part Two" || movies[1].Row != 2 {
		t.Fatalf("unexpected movies %+v", movies)
	}
	if strings.Join(movies[0].Genres, "|") != "Action|Adventure|Drama" {
		t.Fatalf("genres not restored: %v", movies[0].Genres)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sources != 1 || stats.Movies != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestImporter_ReimportsChangedFile(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	path := writeSource(t, dir, testTSV)
	im := NewImporter(db, logging.Discard())
	if _, err := im.Sync(path); err != nil {
		t.Fatal(err)
	}

	short := "primaryTitle\tstartYear\truntimeMinutes\tgenres\taverageRating\tnumVotes\n" +
		"Tenet\t2020\t150\tAction\t7.3\t600000\n"
	writeSource(t, dir, short)
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	movies, err := im.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(movies) != 1 || movies[0].Title != "Tenet" {
		t.Fatalf("expected re-imported contents, got %+v", movies)
	}

	im.SetForce(true)
	res, err := im.Sync(path)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Imported {
		t.Fatal("forced sync should re-import")
	}
}

func TestImporter_MissingFile(t *testing.T) {
	db := openTestDB(t)
	im := NewImporter(db, logging.Discard())
	_, err := im.Load(filepath.Join(t.TempDir(), "nope.tsv"))
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*catalog.DataSourceError); !ok {
		t.Fatalf("expected DataSourceError, got %T %v", err, err)
	}
}

func TestSearch(t *testing.T) {
	db := openTestDB(t)
	path := writeSource(t, t.TempDir(), testTSV)
	im := NewImporter(db, logging.Discard())
	res, err := im.Sync(path)
	if err != nil {
		t.Fatal(err)
	}

	movies, err := db.Search(res.Source, "DUNE", 10)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(movies))
	}

	movies, err = db.Search(res.Source, "dune", 1)
	if err != nil || len(movies) != 1 {
		t.Fatalf("expected limit 1 to cap results, got %d %v", len(movies), err)
	}
	movies, err = db.Search(res.Source, "dune", 0)
	if err != nil || len(movies) != 2 {
		t.Fatalf("expected limit 0 to return every match, got %d %v", len(movies), err)
	}

	movies, err = db.Search(res.Source, "()", 10)
	if err != nil || movies != nil {
		t.Fatalf("expected no search for empty query, got %v %v", movies, err)
	}
}
