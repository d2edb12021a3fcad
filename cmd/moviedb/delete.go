package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/moviedb/internal/ops"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <title>",
	Aliases: []string{"rm"},
	Short:   "Delete a movie",
	Long: `Delete a movie from the collection.

The title may be typed in any case; an exact match is preferred.`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runDelete,
	ValidArgsFunction: completeTitles,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	title, err := ops.ResolveTitle(s, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if err := ops.DeleteMovie(s, title); err != nil {
		return err
	}

	fmt.Printf("Deleted %q\n", title)
	return nil
}
