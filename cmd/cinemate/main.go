package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JohnDeved/cinemate/internal/catalog"
)

func main() {
	// A .env in the working directory may set CINEMATE_DATA or CINEMATE_CONFIG_DIR.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		var dsErr *catalog.DataSourceError
		if errors.As(err, &dsErr) {
			fmt.Fprintln(os.Stderr, "Could not read the movie file. Check the path and the column headers.")
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cinemate",
		Short: "Browse a movie catalog in your terminal",
		Long: `Cinemate - Browse, rank, and filter a tab-separated movie catalog and
keep favourites and a watch list while you do it.`,
		SilenceUsage: true,
		RunE:         runTUI,
	}
	rootCmd.PersistentFlags().String("data", "", "Path to the movie file (overrides config and CINEMATE_DATA)")
	rootCmd.PersistentFlags().Int("top", 0, "Size of the top-rated list (0 = use config)")

	listCmd := &cobra.Command{
		Use:   "ls",
		Short: "List the catalog in plain text",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	addOutputFlags(listCmd, 0)

	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Show the top-rated movies among the most voted",
		Args:  cobra.NoArgs,
		RunE:  runTop,
	}
	addOutputFlags(topCmd, 0)

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find movies whose title contains the query",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	addOutputFlags(searchCmd, 0)
	searchCmd.Flags().Bool("index", false, "Use full-text search on the local index (ranked by relevance)")

	genresCmd := &cobra.Command{
		Use:   "genres [genre]",
		Short: "List genres, or the movies in one genre",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGenres,
	}
	addOutputFlags(genresCmd, 0)

	yearCmd := &cobra.Command{
		Use:   "year <yyyy>",
		Short: "Show movies released in a year",
		Args:  cobra.ExactArgs(1),
		RunE:  runYear,
	}
	addOutputFlags(yearCmd, 0)

	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Parse the movie file into the local index",
		Args:  cobra.NoArgs,
		RunE:  runIndex,
	}
	indexCmd.Flags().Bool("force", false, "Re-import even when the index is current")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog and index statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	statsCmd.Flags().Bool("json", false, "Output JSON")

	rootCmd.AddCommand(listCmd, topCmd, searchCmd, genresCmd, yearCmd, indexCmd, statsCmd)
	return rootCmd
}

func addOutputFlags(cmd *cobra.Command, defaultLimit int) {
	cmd.Flags().Bool("json", false, "Output JSON")
	cmd.Flags().Int("limit", defaultLimit, "Limit number of movies (0 = unlimited)")
}
