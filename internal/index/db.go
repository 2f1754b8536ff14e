package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/JohnDeved/cinemate/internal/catalog"
)

// DB wraps the SQLite database that caches parsed movie files.
type DB struct {
	db   *sql.DB
	path string
}

// OpenDB opens or creates the SQLite database at the given path.
func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &DB{db: db, path: dbPath}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL UNIQUE,
		size INTEGER NOT NULL DEFAULT 0,
		mod_time DATETIME,
		imported_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS movies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_id INTEGER NOT NULL REFERENCES sources(id),
		row INTEGER NOT NULL,
		title TEXT NOT NULL,
		year TEXT DEFAULT '',
		runtime TEXT DEFAULT '',
		genres TEXT DEFAULT '',
		rating TEXT DEFAULT '',
		votes TEXT DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_movies_source_row ON movies(source_id, row);

	CREATE VIRTUAL TABLE IF NOT EXISTS movies_fts USING fts5(
		title,
		content=movies,
		content_rowid=id,
		tokenize='unicode61 remove_diacritics 2'
	);

	CREATE TRIGGER IF NOT EXISTS movies_ai AFTER INSERT ON movies BEGIN
		INSERT INTO movies_fts(rowid, title) VALUES (new.id, new.title);
	END;

	CREATE TRIGGER IF NOT EXISTS movies_ad AFTER DELETE ON movies BEGIN
		INSERT INTO movies_fts(movies_fts, rowid, title) VALUES('delete', old.id, old.title);
	END;

	CREATE TRIGGER IF NOT EXISTS movies_au AFTER UPDATE ON movies BEGIN
		INSERT INTO movies_fts(movies_fts, rowid, title) VALUES('delete', old.id, old.title);
		INSERT INTO movies_fts(rowid, title) VALUES (new.id, new.title);
	END;
	`
	_, err := db.Exec(schema)
	return err
}

// Source identifies a movie file by path, size and modification time.
type Source struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatSource describes the file at path. The path is made absolute so
// the same file maps to one cache entry.
func StatSource(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return Source{}, &catalog.DataSourceError{Path: path, Msg: "cannot stat", Err: err}
	}
	return Source{Path: abs, Size: fi.Size(), ModTime: fi.ModTime().UTC()}, nil
}

// sanitizeFTS5Query escapes FTS5 special characters so user input
// does not cause syntax errors. Each word is wrapped in double quotes,
// and embedded double quotes are doubled (FTS5 escaping).
func sanitizeFTS5Query(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	// `dune (part two)` becomes `"dune" "part" "two"`, which FTS5 treats as AND.
	words := strings.Fields(query)
	var quoted []string
	for _, w := range words {
		w = strings.ReplaceAll(w, `"`, `""`)
		w = strings.NewReplacer(
			"(", "",
			")", "",
			"[", "",
			"]", "",
			"{", "",
			"}", "",
			"^", "",
		).Replace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, `"`+w+`"`)
	}
	if len(quoted) == 0 {
		return ""
	}
	return strings.Join(quoted, " ")
}

// IsStale reports whether src has to be (re)imported: it was never
// imported, or its size or modification time changed since.
func (d *DB) IsStale(src Source) (bool, error) {
	var (
		size       int64
		modTime    sql.NullTime
		importedAt sql.NullTime
	)
	err := d.db.QueryRow(
		"SELECT size, mod_time, imported_at FROM sources WHERE path = ?", src.Path,
	).Scan(&size, &modTime, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	if !importedAt.Valid || !modTime.Valid {
		return true, nil
	}
	return size != src.Size || !modTime.Time.Equal(src.ModTime), nil
}

// ReplaceMovies stores movies as the contents of src, replacing any
// earlier import, in a single transaction.
func (d *DB) ReplaceMovies(src Source, movies []*catalog.Movie) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO sources (path, size, mod_time) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET size=excluded.size, mod_time=excluded.mod_time, imported_at=NULL`,
		src.Path, src.Size, src.ModTime,
	); err != nil {
		return err
	}
	var srcID int64
	if err := tx.QueryRow("SELECT id FROM sources WHERE path = ?", src.Path).Scan(&srcID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM movies WHERE source_id = ?", srcID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO movies (source_id, row, title, year, runtime, genres, rating, votes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range movies {
		if _, err := stmt.Exec(srcID, m.Row, m.Title, m.Year, m.Runtime,
			strings.Join(m.Genres, ","), m.Rating, m.Votes); err != nil {
			return err
		}
	}

	if _, err := tx.Exec("UPDATE sources SET imported_at = ? WHERE id = ?", time.Now().UTC(), srcID); err != nil {
		return err
	}
	return tx.Commit()
}

// Movies returns the cached movies of src in file order.
func (d *DB) Movies(src Source) ([]*catalog.Movie, error) {
	rows, err := d.db.Query(`
		SELECT m.row, m.title, m.year, m.runtime, m.genres, m.rating, m.votes
		FROM movies m
		JOIN sources s ON s.id = m.source_id
		WHERE s.path = ?
		ORDER BY m.row
	`, src.Path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovies(rows)
}

// Search performs a full-text title search over the cached movies of src.
// Results are ordered by FTS rank, then file order. A limit <= 0 returns
// every match.
func (d *DB) Search(src Source, query string, limit int) ([]*catalog.Movie, error) {
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means no limit
	}

	sanitized := sanitizeFTS5Query(query)
	if sanitized == "" {
		return nil, nil
	}

	rows, err := d.db.Query(`
		SELECT m.row, m.title, m.year, m.runtime, m.genres, m.rating, m.votes
		FROM movies_fts fts
		JOIN movies m ON m.id = fts.rowid
		JOIN sources s ON s.id = m.source_id
		WHERE movies_fts MATCH ?
		  AND s.path = ?
		ORDER BY rank, m.row
		LIMIT ?
	`, sanitized, src.Path, limit)
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()
	return scanMovies(rows)
}

func scanMovies(rows *sql.Rows) ([]*catalog.Movie, error) {
	var movies []*catalog.Movie
	for rows.Next() {
		var (
			m      catalog.Movie
			genres string
		)
		if err := rows.Scan(&m.Row, &m.Title, &m.Year, &m.Runtime, &genres, &m.Rating, &m.Votes); err != nil {
			return nil, err
		}
		m.Genres = strings.Split(genres, ",")
		movies = append(movies, &m)
	}
	return movies, rows.Err()
}

// Stats returns index statistics.
type Stats struct {
	Sources int
	Movies  int
}

// GetStats returns statistics about the index.
func (d *DB) GetStats() (Stats, error) {
	var s Stats
	if err := d.db.QueryRow("SELECT COUNT(*) FROM sources WHERE imported_at IS NOT NULL").Scan(&s.Sources); err != nil {
		return s, err
	}
	if err := d.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&s.Movies); err != nil {
		return s, err
	}
	return s, nil
}
