package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jacksmith/moviedb/internal/cli"
	"github.com/jacksmith/moviedb/internal/logger"
	"github.com/jacksmith/moviedb/internal/metadata"
	"github.com/jacksmith/moviedb/internal/ops"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a movie, looking it up on OMDb",
	Long: `Add a movie to the collection.

The title is looked up on OMDb and stored under OMDb's spelling together
with its year, IMDb rating and poster. Titles already in the collection are
rejected, ignoring case.

Environment:
  OMDB_API_KEY       API key (required)
  OMDB_URL           API base URL (default http://www.omdbapi.com/)
  OMDB_TIMEOUT_SECS  request timeout in seconds (default 10)

Examples:
  moviedb add The Matrix
  moviedb add "Spirited Away" -u sara`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")

	cfg, err := metadata.LoadConfig()
	if err != nil {
		return err
	}
	provider, err := cfg.NewClient(logger.L())
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	ctx := context.Background()
	if cmd != nil && cmd.Context() != nil {
		ctx = cmd.Context()
	}

	m, err := ops.AddMovie(ctx, s, provider, title)
	if err != nil {
		return err
	}

	fmt.Printf("Added %q (%s), rated %s\n", m.Title, cli.Year(m.Year), cli.Rating(m.Rating))
	return nil
}
