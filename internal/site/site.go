// Package site renders a movie collection as a static web page.
package site

import (
	_ "embed"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jacksmith/moviedb/internal/logger"
	"github.com/jacksmith/moviedb/internal/model"
)

const (
	TitlePlaceholder = "__TEMPLATE_TITLE__"
	GridPlaceholder  = "__TEMPLATE_MOVIE_GRID__"

	DefaultTitle = "My Movie App"

	IndexFile = "index.html"
	StyleFile = "style.css"

	emptyItem = "<li>No movies in collection. Add movies first!</li>"
)

var (
	//go:embed templates/index_template.html
	defaultTemplate string

	//go:embed templates/style.css
	defaultStyle string
)

// PlaceholderPoster is shown for movies without a poster.
var PlaceholderPoster = "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(
	`<svg xmlns="http://www.w3.org/2000/svg" width="128" height="193">
  <rect fill="#ddd" width="128" height="193"/>
  <text x="64" y="96" text-anchor="middle" fill="#777">No Poster</text>
</svg>`))

// Options controls page generation. Empty fields use the embedded defaults.
type Options struct {
	Title        string
	TemplatePath string
	StylePath    string
}

// Render substitutes the page title and the movie grid into tmpl.
func Render(tmpl, title string, movies []model.Movie) string {
	page := strings.ReplaceAll(tmpl, TitlePlaceholder, html.EscapeString(title))
	return strings.ReplaceAll(page, GridPlaceholder, Grid(movies))
}

// Grid renders one list item per movie, or a single notice when there are
// none.
func Grid(movies []model.Movie) string {
	if len(movies) == 0 {
		return emptyItem
	}
	items := make([]string, len(movies))
	for i, m := range movies {
		items[i] = item(m)
	}
	return strings.Join(items, "\n")
}

func item(m model.Movie) string {
	poster := PlaceholderPoster
	if m.HasPoster() {
		poster = m.Poster
	}
	title := html.EscapeString(m.Title)

	var b strings.Builder
	b.WriteString("<li>\n")
	b.WriteString("    <div class=\"movie\">\n")
	fmt.Fprintf(&b, "        <img class=\"movie-poster\" src=\"%s\" alt=\"%s\"/>\n", html.EscapeString(poster), title)
	fmt.Fprintf(&b, "        <div class=\"movie-title\">%s</div>\n", title)
	fmt.Fprintf(&b, "        <div class=\"movie-year\">%s</div>\n", strconv.Itoa(m.Year))
	fmt.Fprintf(&b, "        <div class=\"movie-rating\">%s</div>\n", model.FormatRating(m.Rating))
	b.WriteString("    </div>\n")
	b.WriteString("</li>")
	return b.String()
}

// Generate writes index.html and style.css into outDir and returns the
// path of the page.
func Generate(outDir string, movies []model.Movie, opts Options) (string, error) {
	tmpl := defaultTemplate
	if opts.TemplatePath != "" {
		data, err := os.ReadFile(opts.TemplatePath)
		if err != nil {
			return "", fmt.Errorf("failed to read template: %w", err)
		}
		tmpl = string(data)
	}
	if !strings.Contains(tmpl, GridPlaceholder) {
		return "", fmt.Errorf("template has no %s placeholder", GridPlaceholder)
	}

	style := defaultStyle
	if opts.StylePath != "" {
		data, err := os.ReadFile(opts.StylePath)
		if err != nil {
			return "", fmt.Errorf("failed to read stylesheet: %w", err)
		}
		style = string(data)
	}

	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	indexPath := filepath.Join(outDir, IndexFile)
	if err := os.WriteFile(indexPath, []byte(Render(tmpl, title, movies)), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", IndexFile, err)
	}
	if err := os.WriteFile(filepath.Join(outDir, StyleFile), []byte(style), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", StyleFile, err)
	}

	logger.L().Info("site.generated", "path", indexPath, "count", len(movies))
	return indexPath, nil
}
