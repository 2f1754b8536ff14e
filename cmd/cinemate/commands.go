package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/JohnDeved/cinemate/internal/catalog"
	"github.com/JohnDeved/cinemate/internal/config"
	"github.com/JohnDeved/cinemate/internal/index"
	"github.com/JohnDeved/cinemate/internal/logging"
	"github.com/JohnDeved/cinemate/internal/session"
	"github.com/JohnDeved/cinemate/internal/tui"
)

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		cfg.DataPath = p
	}
	if n, _ := cmd.Flags().GetInt("top"); n > 0 {
		cfg.TopN = n
	}
	return cfg, nil
}

// cliLogger logs warnings to stderr for the plain commands.
func cliLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := logging.ParseLevel(cfg.LogLevel)
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	return logging.New(cmd.ErrOrStderr(), level)
}

// loadMovies reads the catalog, through the index when enabled.
func loadMovies(cfg *config.Config, log *slog.Logger) ([]*catalog.Movie, error) {
	if !cfg.UseIndex {
		return catalog.LoadFile(cfg.DataPath)
	}
	db, err := index.OpenDB(config.DBPath())
	if err != nil {
		log.Warn("could not open index, reading file directly", logging.Err(err))
		return catalog.LoadFile(cfg.DataPath)
	}
	defer db.Close()
	return index.NewImporter(db, log).Load(cfg.DataPath)
}

func loadCatalog(cmd *cobra.Command) (*config.Config, *catalog.Catalog, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	movies, err := loadMovies(cfg, cliLogger(cmd, cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, catalog.New(movies), nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !isInteractiveTerminal() {
		return runList(cmd, args)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, f, err := logging.OpenFile(config.LogPath(), logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		log = logging.Discard()
	} else {
		defer f.Close()
	}

	load := func() ([]*catalog.Movie, error) {
		return loadMovies(cfg, log)
	}
	return tui.Run(load, session.Options{
		TopN:   cfg.TopN,
		Years:  cfg.Years(),
		Logger: log,
	})
}

func runList(cmd *cobra.Command, args []string) error {
	_, cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	return printMovies(cmd, "All movies", cat.Movies())
}

func runTop(cmd *cobra.Command, args []string) error {
	cfg, cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	top, err := catalog.TopN(cat.Movies(), cfg.TopN)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}
	return printMovies(cmd, fmt.Sprintf("Top %d", cfg.TopN), top)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	useIndex, _ := cmd.Flags().GetBool("index")
	if !useIndex {
		_, cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}
		return printMovies(cmd, fmt.Sprintf("Title contains %q", query), catalog.SearchTitle(cat.Movies(), query))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := index.OpenDB(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	res, err := index.NewImporter(db, cliLogger(cmd, cfg)).Sync(cfg.DataPath)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")
	results, err := db.Search(res.Source, query, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return printMovies(cmd, fmt.Sprintf("Index matches for %q", query), results)
}

func runGenres(cmd *cobra.Command, args []string) error {
	_, cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		genre := strings.TrimSpace(args[0])
		return printMovies(cmd, "Genre "+genre, catalog.FilterGenre(cat.Movies(), genre))
	}

	genres := cat.Genres()
	counts := make([]int, len(genres))
	for i, g := range genres {
		counts[i] = len(catalog.FilterGenre(cat.Movies(), g))
	}
	return printGenres(cmd, genres, counts)
}

func runYear(cmd *cobra.Command, args []string) error {
	cfg, cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	movies, err := catalog.FilterYear(cat.Movies(), args[0], cfg.Years())
	if err != nil {
		return err
	}
	return printMovies(cmd, "Released "+strings.TrimSpace(args[0]), movies)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := index.OpenDB(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	force, _ := cmd.Flags().GetBool("force")
	im := index.NewImporter(db, cliLogger(cmd, cfg))
	im.SetForce(force)

	errOut := cmd.ErrOrStderr()
	fmt.Fprintf(errOut, "Indexing %s...\n", cfg.DataPath)
	res, err := im.Sync(cfg.DataPath)
	if err != nil {
		return err
	}
	if !res.Imported {
		fmt.Fprintf(errOut, "Index is up to date (%s, modified %s)\n",
			humanize.Bytes(uint64(res.Source.Size)), humanize.Time(res.Source.ModTime))
		return nil
	}
	fmt.Fprintf(errOut, "Done! Indexed %s movies from %s\n",
		humanize.Comma(int64(res.Movies)), humanize.Bytes(uint64(res.Source.Size)))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	// A missing index reports zeros; it is not created just to be read.
	var (
		idx    index.Stats
		dbSize int64
	)
	dbPath := config.DBPath()
	if info, err := os.Stat(dbPath); err == nil {
		dbSize = info.Size()
		db, err := index.OpenDB(dbPath)
		if err != nil {
			return err
		}
		idx, err = db.GetStats()
		db.Close()
		if err != nil {
			return fmt.Errorf("reading index stats: %w", err)
		}
	}

	st := catalogStats{
		DataPath:      absPath(cfg.DataPath),
		Movies:        cat.Len(),
		Genres:        len(cat.Genres()),
		TopN:          cfg.TopN,
		YearMin:       cfg.YearMin,
		YearMax:       cfg.YearMax,
		IndexSources:  idx.Sources,
		IndexMovies:   idx.Movies,
		Database:      dbPath,
		DatabaseBytes: dbSize,
	}
	return printStats(cmd, st)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func isInteractiveTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}
