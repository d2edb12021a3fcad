package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jacksmith/moviedb/internal/cli"
	"github.com/jacksmith/moviedb/internal/model"
	"github.com/jacksmith/moviedb/internal/storage"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List configured profiles",
	Long: `List the profiles from the configuration file with their backend,
file and number of movies. The active profile is marked with *.

Without a configuration file the built-in profiles john, sara and jack are
used.`,
	Args: cobra.NoArgs,
	RunE: runProfiles,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify every profile's movie file",
	Long: `Load the movie file of every profile and report problems.

Exits with an error if any file cannot be read or parsed. Missing files
are fine: they hold an empty collection.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(checkCmd)
}

func runProfiles(cmd *cobra.Command, args []string) error {
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return err
	}

	active, err := cfg.Profile(selectedProfile())
	if err != nil {
		return err
	}

	table := cli.NewTable()
	for _, p := range cfg.Profiles {
		marker := " "
		if p.Name == active.Name {
			marker = cli.Green("*")
		}
		table.AddRow(marker, p.Name, string(p.Backend), p.Path, profileCount(p))
	}
	table.Render(os.Stdout)
	return nil
}

func profileCount(p storage.Profile) string {
	b, err := p.Open()
	if err != nil {
		return cli.Red("error")
	}
	c, err := b.ListMovies()
	if err != nil {
		var corrupt *model.CorruptError
		if errors.As(err, &corrupt) {
			return cli.Red("corrupt")
		}
		return cli.Red("unreadable")
	}
	return fmt.Sprintf("%d movie(s)", c.Len())
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return err
	}

	var failed []string
	for _, p := range cfg.Profiles {
		b, err := p.Open()
		if err == nil {
			var c *model.Collection
			if c, err = b.ListMovies(); err == nil {
				status := fmt.Sprintf("%d movie(s)", c.Len())
				if _, statErr := os.Stat(p.Path); os.IsNotExist(statErr) {
					status = "no file yet"
				}
				fmt.Printf("%s %s: %s\n", cli.Green("ok"), p.Name, status)
				continue
			}
		}
		failed = append(failed, p.Name)
		fmt.Printf("%s %s: %v\n", cli.Red("FAIL"), p.Name, err)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d profile(s) failed: %s", len(failed), strings.Join(failed, ", "))
	}
	return nil
}
