package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jacksmith/moviedb/internal/cli"
	"github.com/jacksmith/moviedb/internal/model"
	"github.com/jacksmith/moviedb/internal/ops"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search <term>",
	Aliases: []string{"find"},
	Short:   "Search movies by title",
	Long: `Search movie titles for a term, ignoring case.

Results are listed in collection order.

Examples:
  moviedb search matrix`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter movies by rating and year",
	Long: `List movies matching every given criterion.

  --min-rating  minimum rating, inclusive
  --from        first release year, inclusive
  --to          last release year, inclusive

Omitted criteria are not applied.

Examples:
  moviedb filter --min-rating 8
  moviedb filter --from 1990 --to 1999`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

var (
	filterMinRating string
	filterFrom      string
	filterTo        string
)

func init() {
	filterCmd.Flags().StringVar(&filterMinRating, "min-rating", "", "minimum rating (0-10)")
	filterCmd.Flags().StringVar(&filterFrom, "from", "", "start year")
	filterCmd.Flags().StringVar(&filterTo, "to", "", "end year")
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(filterCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	term := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		return err
	}

	movies, err := ops.Search(s, term)
	if err != nil {
		return err
	}

	if len(movies) == 0 {
		fmt.Printf("No movie found matching %q.\n", term)
		return nil
	}
	cli.MovieTable(movies).Render(os.Stdout)
	return nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	var f ops.MovieFilter
	if filterMinRating != "" {
		r, err := strconv.ParseFloat(strings.TrimSpace(filterMinRating), 64)
		if err != nil {
			return &model.ValidationError{Field: "minimum rating", Message: fmt.Sprintf("%q is not a number", filterMinRating)}
		}
		f.MinRating = &r
	}
	if filterFrom != "" {
		y, err := model.ParseYear(filterFrom)
		if err != nil {
			return err
		}
		f.FromYear = &y
	}
	if filterTo != "" {
		y, err := model.ParseYear(filterTo)
		if err != nil {
			return err
		}
		f.ToYear = &y
	}
	if err := f.Validate(); err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	movies, err := ops.Filter(s, f)
	if err != nil {
		return err
	}

	if len(movies) == 0 {
		fmt.Println("No movies match the filter.")
		return nil
	}
	cli.MovieTable(movies).Render(os.Stdout)
	return nil
}
