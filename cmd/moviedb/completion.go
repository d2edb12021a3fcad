package main

import (
	"os"
	"strings"

	"github.com/jacksmith/moviedb/internal/ops"
	"github.com/jacksmith/moviedb/internal/storage"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for moviedb.

To load completions:

Bash:
  $ source <(moviedb completion bash)

Zsh:
  $ moviedb completion zsh > "${fpath[1]}/_moviedb"

Fish:
  $ moviedb completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletionV2(os.Stdout, true)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd)
	completionCmd.AddCommand(completionZshCmd)
	completionCmd.AddCommand(completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeTitles completes the first argument with titles from the active
// collection.
func completeTitles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	s, err := openStore()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	movies, err := ops.ListMovies(s)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	toCompleteLower := strings.ToLower(toComplete)
	for _, m := range movies {
		if strings.HasPrefix(strings.ToLower(m.Title), toCompleteLower) {
			completions = append(completions, m.Title)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeProfiles completes profile names from the configuration file.
func completeProfiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	toCompleteLower := strings.ToLower(toComplete)
	for _, p := range cfg.Profiles {
		if strings.HasPrefix(strings.ToLower(p.Name), toCompleteLower) {
			completions = append(completions, p.Name+"\t"+string(p.Backend)+": "+p.Path)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

func completeSortKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	keys := make([]string, len(ops.SortKeys))
	for i, k := range ops.SortKeys {
		keys[i] = string(k)
	}
	return keys, cobra.ShellCompDirectiveNoFileComp
}

func completeBackends(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	kinds := make([]string, len(storage.Kinds))
	for i, k := range storage.Kinds {
		kinds[i] = string(k)
	}
	return kinds, cobra.ShellCompDirectiveNoFileComp
}
