package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jacksmith/moviedb/internal/logger"
	"github.com/jacksmith/moviedb/internal/model"
)

// codec converts between a collection and one on-disk encoding.
type codec interface {
	decode(r io.Reader) (*model.Collection, error)
	encode(w io.Writer, c *model.Collection) error
}

// FileBackend stores a collection in one flat file using a codec.
// The JSON, YAML and CSV backends are all FileBackends.
type FileBackend struct {
	path  string
	kind  Kind
	codec codec
}

// NewJSON returns a document-store backend writing JSON to path.
func NewJSON(path string) *FileBackend {
	return &FileBackend{path: path, kind: KindJSON, codec: jsonCodec{}}
}

// NewYAML returns a document-store backend writing YAML to path.
func NewYAML(path string) *FileBackend {
	return &FileBackend{path: path, kind: KindYAML, codec: yamlCodec{}}
}

// NewCSV returns a tabular backend writing CSV to path.
func NewCSV(path string) *FileBackend {
	return &FileBackend{path: path, kind: KindCSV, codec: csvCodec{}}
}

// Kind reports the encoding of the backing file.
func (b *FileBackend) Kind() Kind {
	return b.kind
}

// Path returns the backing file.
func (b *FileBackend) Path() string {
	return b.path
}

// ListMovies loads the full collection from disk.
func (b *FileBackend) ListMovies() (*model.Collection, error) {
	return b.load()
}

// AddMovie inserts or overwrites a movie and rewrites the file.
func (b *FileBackend) AddMovie(title string, year int, rating float64, poster string) error {
	return addMovie(b, model.Movie{Title: title, Year: year, Rating: rating, Poster: poster})
}

// DeleteMovie removes a movie and rewrites the file.
func (b *FileBackend) DeleteMovie(title string) error {
	return deleteMovie(b, title)
}

// UpdateMovie changes a movie's rating and rewrites the file.
func (b *FileBackend) UpdateMovie(title string, rating float64) error {
	return updateMovie(b, title, rating)
}

func (b *FileBackend) load() (*model.Collection, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewCollection(), nil
		}
		return nil, fmt.Errorf("failed to read movie file %s: %w", b.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return model.NewCollection(), nil
	}

	c, err := b.codec.decode(bytes.NewReader(data))
	if err != nil {
		return nil, &model.CorruptError{Path: b.path, Err: err}
	}
	logger.L().Debug("storage.loaded", "backend", b.kind, "path", b.path, "count", c.Len())
	return c, nil
}

// save encodes the whole collection in memory first so that an encoding
// failure leaves the previous file untouched.
func (b *FileBackend) save(c *model.Collection) error {
	var buf bytes.Buffer
	if err := b.codec.encode(&buf, c); err != nil {
		return fmt.Errorf("failed to encode movies for %s: %w", b.path, err)
	}

	if err := ensureDir(b.path); err != nil {
		return err
	}
	if err := os.WriteFile(b.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write movie file %s: %w", b.path, err)
	}
	logger.L().Debug("storage.saved", "backend", b.kind, "path", b.path, "count", c.Len())
	return nil
}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}
