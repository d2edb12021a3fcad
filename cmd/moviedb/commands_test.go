package main

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacksmith/moviedb/internal/cli"
	"github.com/jacksmith/moviedb/internal/metadata"
	"github.com/jacksmith/moviedb/internal/model"
	"github.com/jacksmith/moviedb/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnv writes a two-profile config into a temp directory and points
// the global flags at it. The "ana" profile (default) is seeded with movies.
func setupTestEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	cfg := `default_profile: ana
profiles:
  - name: ana
    path: ana.json
  - name: ben
    backend: csv
    path: ben.csv
`
	configFile := filepath.Join(dir, storage.DefaultConfigFile)
	require.NoError(t, os.WriteFile(configFile, []byte(cfg), 0644))

	resetFlags()
	configPath = configFile
	t.Setenv("MOVIEDB_PROFILE", "")
	cli.SetColorEnabled(false)

	s := storage.NewJSON(filepath.Join(dir, "ana.json"))
	for _, m := range []model.Movie{
		{Title: "The Matrix", Year: 1999, Rating: 8.7, Poster: "https://img/matrix.jpg"},
		{Title: "alien", Year: 1979, Rating: 8.5},
		{Title: "Cats", Year: 2019, Rating: 2.8, Poster: "N/A"},
		{Title: "Brazil", Year: 1985, Rating: 7.9},
	} {
		require.NoError(t, s.AddMovie(m.Title, m.Year, m.Rating, m.Poster))
	}
	return dir
}

func resetFlags() {
	configPath = storage.DefaultConfigFile
	profileName = ""
	filePath = ""
	backendName = ""
	listSort = "title"
	listReverse = false
	filterMinRating = ""
	filterFrom = ""
	filterTo = ""
	siteOut = "."
	siteTemplate = ""
	siteCSS = ""
	siteTitle = "My Movie App"
	rng = nil
}

// captureOutput runs fn with os.Stdout redirected and returns what it printed.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	os.Stdout = old

	return buf.String(), runErr
}

func loadTitles(t *testing.T, path string) []string {
	t.Helper()
	b, err := storage.Open("", path)
	require.NoError(t, err)
	c, err := b.ListMovies()
	require.NoError(t, err)
	return c.Titles()
}

// assertOrder checks that each string appears after the previous one.
func assertOrder(t *testing.T, output string, items ...string) {
	t.Helper()
	last := -1
	for _, item := range items {
		idx := strings.Index(output, item)
		require.NotEqual(t, -1, idx, "missing %q in output:\n%s", item, output)
		assert.Greater(t, idx, last, "%q out of order in output:\n%s", item, output)
		last = idx
	}
}

func TestListCommand(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		name  string
		flags func()
		order []string
	}{
		{
			name:  "default sorts by title ignoring case",
			flags: func() {},
			order: []string{"alien", "Brazil", "Cats", "The Matrix"},
		},
		{
			name:  "rating",
			flags: func() { listSort = "rating" },
			order: []string{"The Matrix", "alien", "Brazil", "Cats"},
		},
		{
			name:  "year prefix reversed",
			flags: func() { listSort = "y"; listReverse = true },
			order: []string{"Cats", "The Matrix", "Brazil", "alien"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listSort = "title"
			listReverse = false
			tt.flags()

			output, err := captureOutput(t, func() error { return runList(nil, nil) })

			require.NoError(t, err)
			assert.Contains(t, output, "4 movie(s) in total")
			assertOrder(t, output, tt.order...)
		})
	}
}

func TestListCommand_Formatting(t *testing.T) {
	setupTestEnv(t)

	output, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "The Matrix  1999  8.7\n")
	assert.Contains(t, output, "Cats        2019  2.8\n")
}

func TestListCommand_EmptyProfile(t *testing.T) {
	dir := setupTestEnv(t)
	profileName = "ben"

	output, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "No movies in collection.")

	// Listing must not create the file
	assert.NoFileExists(t, filepath.Join(dir, "ben.csv"))
}

func TestListCommand_InvalidSort(t *testing.T) {
	setupTestEnv(t)
	listSort = "length"

	_, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown sort key "length"`)
}

func newOMDbServer(t *testing.T) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.ToLower(r.URL.Query().Get("t")) {
		case "heat":
			fmt.Fprint(w, `{"Title":"Heat","Year":"1995","imdbRating":"8.3","Poster":"https://img/heat.jpg","Response":"True"}`)
		case "matrix":
			fmt.Fprint(w, `{"Title":"The Matrix","Year":"1999","imdbRating":"8.7","Poster":"N/A","Response":"True"}`)
		default:
			fmt.Fprint(w, `{"Response":"False","Error":"Movie not found!"}`)
		}
	}))
	t.Cleanup(srv.Close)

	t.Setenv("OMDB_URL", srv.URL)
	t.Setenv("OMDB_API_KEY", "test-key")
	t.Setenv("OMDB_TIMEOUT_SECS", "")
}

func TestAddCommand(t *testing.T) {
	dir := setupTestEnv(t)
	newOMDbServer(t)

	output, err := captureOutput(t, func() error { return runAdd(nil, []string{"heat"}) })
	require.NoError(t, err)
	assert.Contains(t, output, `Added "Heat" (1995), rated 8.3`)

	b := storage.NewJSON(filepath.Join(dir, "ana.json"))
	c, err := b.ListMovies()
	require.NoError(t, err)
	m, ok := c.Get("Heat")
	require.True(t, ok)
	assert.Equal(t, model.Movie{Title: "Heat", Year: 1995, Rating: 8.3, Poster: "https://img/heat.jpg"}, m)
}

func TestAddCommand_Errors(t *testing.T) {
	dir := setupTestEnv(t)
	newOMDbServer(t)
	before := loadTitles(t, filepath.Join(dir, "ana.json"))

	// Canonical title already present
	_, err := captureOutput(t, func() error { return runAdd(nil, []string{"matrix"}) })
	var exists *model.ExistsError
	assert.True(t, errors.As(err, &exists), "got %v", err)

	// Input already present ignoring case
	_, err = captureOutput(t, func() error { return runAdd(nil, []string{"ALIEN"}) })
	assert.True(t, errors.As(err, &exists), "got %v", err)

	_, err = captureOutput(t, func() error { return runAdd(nil, []string{"No", "Such", "Film"}) })
	assert.ErrorIs(t, err, model.ErrMetadataNotFound)

	assert.Equal(t, before, loadTitles(t, filepath.Join(dir, "ana.json")))
}

func TestAddCommand_MissingAPIKey(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("OMDB_API_KEY", "")

	_, err := captureOutput(t, func() error { return runAdd(nil, []string{"Heat"}) })
	assert.ErrorIs(t, err, metadata.ErrMissingAPIKey)
	assert.Contains(t, cli.FormatError(err), "hint: set OMDB_API_KEY")
}

func TestDeleteCommand(t *testing.T) {
	dir := setupTestEnv(t)

	output, err := captureOutput(t, func() error { return runDelete(nil, []string{"the", "MATRIX"}) })
	require.NoError(t, err)
	assert.Contains(t, output, `Deleted "The Matrix"`)
	assert.Equal(t, []string{"alien", "Cats", "Brazil"}, loadTitles(t, filepath.Join(dir, "ana.json")))

	_, err = captureOutput(t, func() error { return runDelete(nil, []string{"The Matrix"}) })
	var nf *model.NotFoundError
	assert.True(t, errors.As(err, &nf), "got %v", err)
}

func TestUpdateCommand(t *testing.T) {
	dir := setupTestEnv(t)

	output, err := captureOutput(t, func() error { return runUpdate(nil, []string{"brazil", "9.04"}) })
	require.NoError(t, err)
	assert.Contains(t, output, `Updated "Brazil" to 9.0`)

	c, err := storage.NewJSON(filepath.Join(dir, "ana.json")).ListMovies()
	require.NoError(t, err)
	m, _ := c.Get("Brazil")
	assert.Equal(t, 9.0, m.Rating)
	assert.Equal(t, 1985, m.Year)

	tests := []struct {
		args []string
		msg  string
	}{
		{[]string{"Brazil", "11"}, "must be between"},
		{[]string{"Brazil", "great"}, "is not a number"},
		{[]string{"Nope", "5"}, `movie "Nope" not found`},
	}
	for _, tt := range tests {
		_, err := captureOutput(t, func() error { return runUpdate(nil, tt.args) })
		require.Error(t, err, "args %v", tt.args)
		assert.Contains(t, err.Error(), tt.msg)
	}
}

func TestStatsCommand(t *testing.T) {
	setupTestEnv(t)

	output, err := captureOutput(t, func() error { return runStats(nil, nil) })
	require.NoError(t, err)

	assert.Contains(t, output, "Movies:          4")
	assert.Contains(t, output, "Average rating:  6.9")
	assert.Contains(t, output, "Median rating:   8.20")
	assert.Contains(t, output, "Best movie:      The Matrix, 8.7")
	assert.Contains(t, output, "Worst movie:     Cats, 2.8")
}

func TestStatsAndRandom_EmptyCollection(t *testing.T) {
	setupTestEnv(t)
	profileName = "ben"

	_, err := captureOutput(t, func() error { return runStats(nil, nil) })
	assert.ErrorIs(t, err, model.ErrEmptyCollection)

	_, err = captureOutput(t, func() error { return runRandom(nil, nil) })
	assert.ErrorIs(t, err, model.ErrEmptyCollection)
}

func TestRandomCommand(t *testing.T) {
	setupTestEnv(t)
	rng = rand.New(rand.NewPCG(7, 7))

	output, err := captureOutput(t, func() error { return runRandom(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Your movie for tonight: ")

	found := false
	for _, title := range []string{"The Matrix", "alien", "Cats", "Brazil"} {
		if strings.Contains(output, title) {
			found = true
		}
	}
	assert.True(t, found, "output names no movie: %s", output)
}

func TestSearchCommand(t *testing.T) {
	setupTestEnv(t)

	output, err := captureOutput(t, func() error { return runSearch(nil, []string{"A"}) })
	require.NoError(t, err)
	// Collection order, not title order
	assertOrder(t, output, "The Matrix", "alien", "Cats", "Brazil")

	output, err = captureOutput(t, func() error { return runSearch(nil, []string{"zzz"}) })
	require.NoError(t, err)
	assert.Contains(t, output, `No movie found matching "zzz".`)
}

func TestFilterCommand(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		name     string
		flags    func()
		contains []string
		excludes []string
	}{
		{
			name:     "min rating",
			flags:    func() { filterMinRating = "8.5" },
			contains: []string{"The Matrix", "alien"},
			excludes: []string{"Cats", "Brazil"},
		},
		{
			name:     "year range",
			flags:    func() { filterFrom = "1980"; filterTo = "1999" },
			contains: []string{"The Matrix", "Brazil"},
			excludes: []string{"alien", "Cats"},
		},
		{
			name:     "no criteria",
			flags:    func() {},
			contains: []string{"The Matrix", "alien", "Cats", "Brazil"},
		},
		{
			name:     "nothing matches",
			flags:    func() { filterFrom = "2020" },
			contains: []string{"No movies match the filter."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filterMinRating = ""
			filterFrom = ""
			filterTo = ""
			tt.flags()

			output, err := captureOutput(t, func() error { return runFilter(nil, nil) })

			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestFilterCommand_Invalid(t *testing.T) {
	setupTestEnv(t)

	tests := []struct {
		flags func()
		msg   string
	}{
		{func() { filterFrom = "2000"; filterTo = "1990" }, "start year 2000 is after end year 1990"},
		{func() { filterMinRating = "high" }, "is not a number"},
		{func() { filterMinRating = "12" }, "must be between"},
		{func() { filterFrom = "last year" }, "is not a whole number"},
	}
	for _, tt := range tests {
		filterMinRating = ""
		filterFrom = ""
		filterTo = ""
		tt.flags()

		_, err := captureOutput(t, func() error { return runFilter(nil, nil) })
		var verr *model.ValidationError
		require.True(t, errors.As(err, &verr), "got %v", err)
		assert.Contains(t, err.Error(), tt.msg)
	}
}

func TestSiteCommand(t *testing.T) {
	dir := setupTestEnv(t)
	siteOut = filepath.Join(dir, "public")
	siteTitle = "Ana's Movies"

	output, err := captureOutput(t, func() error { return runSite(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Website with 4 movie(s) written to")

	page, err := os.ReadFile(filepath.Join(siteOut, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Ana&#39;s Movies")
	assert.Contains(t, string(page), `src="https://img/matrix.jpg"`)
	assert.Contains(t, string(page), "data:image/svg+xml;base64,")
	assert.FileExists(t, filepath.Join(siteOut, "style.css"))
}

func TestProfileSelection(t *testing.T) {
	dir := setupTestEnv(t)
	require.NoError(t, storage.NewCSV(filepath.Join(dir, "ben.csv")).AddMovie("Heat", 1995, 8.3, ""))

	// Environment selects ben
	t.Setenv("MOVIEDB_PROFILE", "ben")
	output, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Heat")
	assert.NotContains(t, output, "Brazil")

	// Flag overrides the environment
	profileName = "ANA"
	output, err = captureOutput(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Brazil")

	profileName = "carl"
	_, err = captureOutput(t, func() error { return runList(nil, nil) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "carl" not found (known profiles: ana, ben)`)
}

func TestFileFlag(t *testing.T) {
	dir := setupTestEnv(t)
	filePath = filepath.Join(dir, "adhoc.txt")
	backendName = "y"

	// Missing file reads as an empty collection
	_, err := captureOutput(t, func() error { return runUpdate(nil, []string{"x", "1"}) })
	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)

	b := storage.NewYAML(filePath)
	require.NoError(t, b.AddMovie("Heat", 1995, 8.3, ""))

	output, err := captureOutput(t, func() error { return runList(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Heat")

	backendName = "xml"
	_, err = captureOutput(t, func() error { return runList(nil, nil) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown backend "xml" (choices: json, yaml, csv, sqlite)`)
}

func TestProfilesCommand(t *testing.T) {
	setupTestEnv(t)

	output, err := captureOutput(t, func() error { return runProfiles(nil, nil) })
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "*  ana  json"), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "4 movie(s)"), lines[0])
	assert.Contains(t, lines[1], "ben  csv")
	assert.True(t, strings.HasSuffix(lines[1], "0 movie(s)"), lines[1])
}

func TestCheckCommand(t *testing.T) {
	dir := setupTestEnv(t)

	output, err := captureOutput(t, func() error { return runCheck(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "ok ana: 4 movie(s)")
	assert.Contains(t, output, "ok ben: no file yet")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ben.csv"), []byte("name,stars\nHeat,5\n"), 0644))

	output, err = captureOutput(t, func() error { return runCheck(nil, nil) })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 profile(s) failed: ben")
	assert.Contains(t, output, "FAIL ben: corrupt movie file")

	output, err = captureOutput(t, func() error { return runProfiles(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "corrupt")
}

func TestDefaultProfilesWithoutConfig(t *testing.T) {
	setupTestEnv(t)
	configPath = filepath.Join(t.TempDir(), "missing.yaml")

	output, err := captureOutput(t, func() error { return runProfiles(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "john")
	assert.Contains(t, output, "sara")
	assert.Contains(t, output, "jack")
}
