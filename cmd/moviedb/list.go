package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/moviedb/internal/cli"
	"github.com/jacksmith/moviedb/internal/ops"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List movies",
	Long: `List every movie in the collection.

Sort keys (unique prefixes are accepted):
  title   A to Z, ignoring case (default)
  rating  highest first
  year    oldest first

--reverse flips the sort order; ties are always listed by title.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listSort    string
	listReverse bool
)

func init() {
	listCmd.Flags().StringVarP(&listSort, "sort", "s", string(ops.SortByTitle), "sort by rating, year or title")
	listCmd.Flags().BoolVarP(&listReverse, "reverse", "r", false, "reverse the sort order")
	listCmd.RegisterFlagCompletionFunc("sort", completeSortKeys)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	key, err := parseSortKey(listSort)
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}

	movies, err := ops.Sort(s, key, listReverse)
	if err != nil {
		return err
	}

	if len(movies) == 0 {
		fmt.Println("No movies in collection.")
		return nil
	}

	fmt.Printf("%d movie(s) in total\n\n", len(movies))
	cli.MovieTable(movies).Render(os.Stdout)
	return nil
}

func parseSortKey(s string) (ops.SortKey, error) {
	choices := make([]string, len(ops.SortKeys))
	for i, k := range ops.SortKeys {
		choices[i] = string(k)
	}
	match, err := cli.MatchChoice("sort key", s, choices)
	if err != nil {
		return "", err
	}
	return ops.SortKey(match), nil
}
