package main

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/jacksmith/moviedb/internal/cli"
	"github.com/jacksmith/moviedb/internal/model"
	"github.com/jacksmith/moviedb/internal/ops"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show rating statistics",
	Long: `Show the average and median rating and the best and worst movies.

Movies tied for best or worst are all listed.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Pick a random movie to watch",
	Args:  cobra.NoArgs,
	RunE:  runRandom,
}

// rng is nil outside tests, selecting the global source.
var rng *rand.Rand

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(randomCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	st, err := ops.ComputeStats(s)
	if err != nil {
		return err
	}

	fmt.Printf("Movies:          %d\n", st.Count)
	fmt.Printf("Average rating:  %.2f\n", st.Average)
	fmt.Printf("Median rating:   %.2f\n", st.Median)
	fmt.Printf("Best movie:      %s, %s\n", joinTitles(st.Best), cli.Rating(st.BestRating()))
	fmt.Printf("Worst movie:     %s, %s\n", joinTitles(st.Worst), cli.Rating(st.WorstRating()))
	return nil
}

func runRandom(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	m, err := ops.RandomMovie(s, rng)
	if err != nil {
		return err
	}

	fmt.Printf("Your movie for tonight: %s (%s), it's rated %s\n", cli.Bold(m.Title), cli.Year(m.Year), cli.Rating(m.Rating))
	return nil
}

func joinTitles(movies []model.Movie) string {
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return strings.Join(titles, "; ")
}
