// Package main is the entry point for the moviedb CLI.
package main

import (
	"fmt"
	"os"

	"github.com/jacksmith/moviedb/internal/cli"
	"github.com/jacksmith/moviedb/internal/logger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	err := rootCmd.Execute()
	stopLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "moviedb",
	Short: "moviedb - a personal movie collection",
	Long: `moviedb keeps a rated movie collection per user profile.

Each profile stores its collection in one file (JSON, YAML, CSV or SQLite)
named in .moviedb.yaml. New movies are looked up on OMDb, which needs
OMDB_API_KEY in the environment or in a .env file.`,
	Version:           Version,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: startLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopLogging()
	},
	// Show help when no subcommand is provided
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	configPath  string
	profileName string
	filePath    string
	backendName string
	logFile     string
	debug       bool
)

var closeLog func() error

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("moviedb version {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", defaultConfigPath(), "profile configuration file")
	pf.StringVarP(&profileName, "profile", "u", "", "profile to use (default from $MOVIEDB_PROFILE or config)")
	pf.StringVarP(&filePath, "file", "f", "", "use this movie file instead of the profile's")
	pf.StringVar(&backendName, "backend", "", "storage backend for --file (json, yaml, csv, sqlite)")
	pf.StringVar(&logFile, "log-file", os.Getenv("MOVIEDB_LOG_FILE"), "append JSON logs to this file")
	pf.BoolVar(&debug, "debug", false, "log debug events")

	rootCmd.RegisterFlagCompletionFunc("profile", completeProfiles)
	rootCmd.RegisterFlagCompletionFunc("backend", completeBackends)
}

func startLogging(cmd *cobra.Command, args []string) error {
	cleanup, err := logger.Setup(logger.Config{Path: logFile, Debug: debug})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	closeLog = cleanup
	logger.L().Debug("command.start", "command", cmd.CommandPath(), "args", args)
	return nil
}

func stopLogging() {
	if closeLog != nil {
		_ = closeLog()
		closeLog = nil
	}
}
