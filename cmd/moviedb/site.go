package main

import (
	"fmt"

	"github.com/jacksmith/moviedb/internal/ops"
	"github.com/jacksmith/moviedb/internal/site"
	"github.com/spf13/cobra"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate a static web page of the collection",
	Long: `Write index.html and style.css for the collection.

The page template must contain __TEMPLATE_MOVIE_GRID__ and may contain
__TEMPLATE_TITLE__. Built-in defaults are used unless --template or --css
is given. Movies without a poster get a placeholder image.

Examples:
  moviedb site --out public
  moviedb site --title "Sara's Movies" -u sara`,
	Args: cobra.NoArgs,
	RunE: runSite,
}

var (
	siteOut      string
	siteTemplate string
	siteCSS      string
	siteTitle    string
)

func init() {
	siteCmd.Flags().StringVarP(&siteOut, "out", "o", ".", "output directory")
	siteCmd.Flags().StringVar(&siteTemplate, "template", "", "HTML template file")
	siteCmd.Flags().StringVar(&siteCSS, "css", "", "stylesheet to copy next to the page")
	siteCmd.Flags().StringVar(&siteTitle, "title", site.DefaultTitle, "page title")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	movies, err := ops.ListMovies(s)
	if err != nil {
		return err
	}

	path, err := site.Generate(siteOut, movies, site.Options{
		Title:        siteTitle,
		TemplatePath: siteTemplate,
		StylePath:    siteCSS,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Website with %d movie(s) written to %s\n", len(movies), path)
	return nil
}
