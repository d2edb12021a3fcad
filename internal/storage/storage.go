// Package storage persists a movie collection to a single file.
//
// Every backend implements the same contract: each call loads the whole
// collection from disk, applies one change and writes the whole collection
// back before returning. Nothing is cached between calls.
package storage

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jacksmith/moviedb/internal/logger"
	"github.com/jacksmith/moviedb/internal/model"
)

// Kind names a backend implementation.
type Kind string

const (
	KindJSON   Kind = "json"
	KindYAML   Kind = "yaml"
	KindCSV    Kind = "csv"
	KindSQLite Kind = "sqlite"
)

// Kinds lists every supported backend.
var Kinds = []Kind{KindJSON, KindYAML, KindCSV, KindSQLite}

// extensions maps file extensions to the backend that reads them.
var extensions = map[string]Kind{
	".json":   KindJSON,
	".yaml":   KindYAML,
	".yml":    KindYAML,
	".csv":    KindCSV,
	".db":     KindSQLite,
	".sqlite": KindSQLite,
}

// Backend is the storage contract shared by every implementation.
type Backend interface {
	// ListMovies returns every movie on disk. A missing file is an empty
	// collection; an unparsable one is a *model.CorruptError.
	ListMovies() (*model.Collection, error)
	// AddMovie inserts or overwrites the movie keyed by title.
	AddMovie(title string, year int, rating float64, poster string) error
	// DeleteMovie removes the movie with exactly this title.
	DeleteMovie(title string) error
	// UpdateMovie replaces the rating of an existing movie.
	UpdateMovie(title string, rating float64) error
	// Kind reports which implementation this is.
	Kind() Kind
	// Path returns the backing file.
	Path() string
}

// Open returns the backend of the given kind for path.
// An empty kind is inferred from the file extension.
func Open(kind Kind, path string) (Backend, error) {
	if path == "" {
		return nil, fmt.Errorf("no path given for movie file")
	}
	if kind == "" {
		inferred, err := KindFromPath(path)
		if err != nil {
			return nil, err
		}
		kind = inferred
	}

	switch kind {
	case KindJSON:
		return NewJSON(path), nil
	case KindYAML:
		return NewYAML(path), nil
	case KindCSV:
		return NewCSV(path), nil
	case KindSQLite:
		return NewSQLite(path), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (supported: %s)", kind, kindList())
	}
}

// KindFromPath infers the backend from a file extension.
func KindFromPath(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := extensions[ext]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("cannot infer storage backend from %q (supported extensions: %s)", path, extensionList())
}

// ParseKind validates a backend name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown storage backend %q (supported: %s)", s, kindList())
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func extensionList() string {
	var exts []string
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// loadSaver is the whole-file primitive each backend provides. The
// contract operations are written once on top of it.
type loadSaver interface {
	load() (*model.Collection, error)
	save(c *model.Collection) error
	Kind() Kind
	Path() string
}

func addMovie(ls loadSaver, m model.Movie) error {
	// Validate before touching disk so a bad record never rewrites the file.
	if err := model.ValidateMovie(m); err != nil {
		return err
	}
	c, err := ls.load()
	if err != nil {
		return err
	}
	c.Put(m)
	if err := ls.save(c); err != nil {
		return err
	}
	logger.L().Debug("storage.added", "backend", ls.Kind(), "path", ls.Path(), "title", m.Title)
	return nil
}

func deleteMovie(ls loadSaver, title string) error {
	c, err := ls.load()
	if err != nil {
		return err
	}
	if !c.Remove(title) {
		return &model.NotFoundError{Title: title}
	}
	if err := ls.save(c); err != nil {
		return err
	}
	logger.L().Debug("storage.deleted", "backend", ls.Kind(), "path", ls.Path(), "title", title)
	return nil
}

func updateMovie(ls loadSaver, title string, rating float64) error {
	if err := model.ValidateRating(rating); err != nil {
		return err
	}
	c, err := ls.load()
	if err != nil {
		return err
	}
	m, ok := c.Get(title)
	if !ok {
		return &model.NotFoundError{Title: title}
	}
	m.Rating = rating
	c.Put(m)
	if err := ls.save(c); err != nil {
		return err
	}
	logger.L().Debug("storage.updated", "backend", ls.Kind(), "path", ls.Path(), "title", title, "rating", rating)
	return nil
}

// checkRecord validates a record read from disk with the same rules as a
// write. Any failure makes the whole file corrupt.
func checkRecord(m model.Movie) error {
	if err := model.ValidateMovie(m); err != nil {
		if m.Title == "" {
			return err
		}
		return fmt.Errorf("%q: %w", m.Title, err)
	}
	return nil
}
