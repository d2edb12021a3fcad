package main

import (
	"fmt"

	"github.com/jacksmith/moviedb/internal/cli"
	"github.com/jacksmith/moviedb/internal/model"
	"github.com/jacksmith/moviedb/internal/ops"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <title> <rating>",
	Short: "Change a movie's rating",
	Long: `Change the rating of a movie.

Ratings run from 0 to 10 and are rounded to one decimal place. Quote titles
that contain spaces.

Examples:
  moviedb update "The Matrix" 9.5`,
	Args:              cobra.ExactArgs(2),
	RunE:              runUpdate,
	ValidArgsFunction: completeTitles,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	rating, err := model.ParseRating(args[1])
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	title, err := ops.ResolveTitle(s, args[0])
	if err != nil {
		return err
	}
	if err := ops.UpdateRating(s, title, rating); err != nil {
		return err
	}

	fmt.Printf("Updated %q to %s\n", title, cli.Rating(rating))
	return nil
}
