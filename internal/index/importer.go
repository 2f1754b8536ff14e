package index

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"

	"github.com/JohnDeved/cinemate/internal/catalog"
	"github.com/JohnDeved/cinemate/internal/logging"
)

// ErrLocked is returned when another process is rebuilding the index.
var ErrLocked = errors.New("index is being rebuilt by another process")

// ImportResult reports what Sync did.
type ImportResult struct {
	Source   Source
	Movies   int
	Imported bool // false when the cache was fresh
}

// Importer keeps the index in step with a movie file.
type Importer struct {
	db    *DB
	force bool
	log   *slog.Logger
}

// NewImporter creates an importer.
func NewImporter(db *DB, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{db: db, log: log}
}

// SetForce controls whether stale checks are skipped.
func (im *Importer) SetForce(force bool) {
	im.force = force
}

// Sync parses path into the index unless the cached copy is current.
func (im *Importer) Sync(path string) (ImportResult, error) {
	src, err := StatSource(path)
	if err != nil {
		return ImportResult{}, err
	}
	res := ImportResult{Source: src}

	if !im.force {
		stale, err := im.db.IsStale(src)
		if err != nil {
			im.log.Warn("stale check failed", slog.String("path", src.Path), logging.Err(err))
		} else if !stale {
			return res, nil
		}
	}

	lock := flock.New(im.db.Path() + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return res, fmt.Errorf("locking index: %w", err)
	}
	if !locked {
		return res, ErrLocked
	}
	defer lock.Unlock()

	movies, err := catalog.LoadFile(path)
	if err != nil {
		return res, err
	}
	if err := im.db.ReplaceMovies(src, movies); err != nil {
		return res, fmt.Errorf("writing index: %w", err)
	}
	im.log.Info("indexed movie file", slog.String("path", src.Path), slog.Int("movies", len(movies)))
	res.Movies = len(movies)
	res.Imported = true
	return res, nil
}

// Load returns the catalog for path, served from the index when it is
// current and re-parsed (and re-indexed) otherwise. Index failures fall
// back to parsing the file directly.
func (im *Importer) Load(path string) ([]*catalog.Movie, error) {
	res, err := im.Sync(path)
	if err != nil {
		var dsErr *catalog.DataSourceError
		if errors.As(err, &dsErr) {
			return nil, err
		}
		im.log.Warn("index unavailable, reading file directly", slog.String("path", path), logging.Err(err))
		return catalog.LoadFile(path)
	}
	movies, err := im.db.Movies(res.Source)
	if err != nil {
		im.log.Warn("reading index failed, reading file directly", logging.Err(err))
		return catalog.LoadFile(path)
	}
	return movies, nil
}
