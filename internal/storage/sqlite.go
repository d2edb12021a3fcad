package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"

	"github.com/jacksmith/moviedb/internal/logger"
	"github.com/jacksmith/moviedb/internal/model"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteBackend stores a collection in a single-table SQLite database.
//
// Table:
//
//	movies(position, title, year, rating, poster)  PRIMARY KEY (position)
//
// It follows the same whole-collection load/save cycle as the flat-file
// backends; the database is opened and closed within every call.
type SQLiteBackend struct {
	path string
}

// NewSQLite returns a SQLite backend for path.
func NewSQLite(path string) *SQLiteBackend {
	return &SQLiteBackend{path: path}
}

const sqliteSchema = `CREATE TABLE IF NOT EXISTS movies (
	position INTEGER PRIMARY KEY,
	title    TEXT NOT NULL UNIQUE,
	year     INTEGER NOT NULL,
	rating   REAL NOT NULL,
	poster   TEXT NOT NULL DEFAULT ''
)`

// Kind reports KindSQLite.
func (b *SQLiteBackend) Kind() Kind {
	return KindSQLite
}

// Path returns the database file.
func (b *SQLiteBackend) Path() string {
	return b.path
}

// ListMovies loads the full collection from the database.
func (b *SQLiteBackend) ListMovies() (*model.Collection, error) {
	return b.load()
}

// AddMovie inserts or overwrites a movie and rewrites the table.
func (b *SQLiteBackend) AddMovie(title string, year int, rating float64, poster string) error {
	return addMovie(b, model.Movie{Title: title, Year: year, Rating: rating, Poster: poster})
}

// DeleteMovie removes a movie and rewrites the table.
func (b *SQLiteBackend) DeleteMovie(title string) error {
	return deleteMovie(b, title)
}

// UpdateMovie changes a movie's rating and rewrites the table.
func (b *SQLiteBackend) UpdateMovie(title string, rating float64) error {
	return updateMovie(b, title, rating)
}

func (b *SQLiteBackend) dsn(mode string) string {
	return "file:" + (&url.URL{Path: b.path}).EscapedPath() + "?mode=" + mode
}

func (b *SQLiteBackend) load() (*model.Collection, error) {
	info, err := os.Stat(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewCollection(), nil
		}
		return nil, fmt.Errorf("failed to access movie database %s: %w", b.path, err)
	}
	if info.Size() == 0 {
		return model.NewCollection(), nil
	}

	// Read-only so that listing never creates or modifies the file.
	db, err := sql.Open("sqlite3", b.dsn("ro"))
	if err != nil {
		return nil, &model.CorruptError{Path: b.path, Err: err}
	}
	defer db.Close()

	rows, err := db.Query("SELECT title, year, rating, poster FROM movies ORDER BY position")
	if err != nil {
		return nil, &model.CorruptError{Path: b.path, Err: err}
	}
	defer rows.Close()

	c := model.NewCollection()
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.Title, &m.Year, &m.Rating, &m.Poster); err != nil {
			return nil, &model.CorruptError{Path: b.path, Err: err}
		}
		if err := checkRecord(m); err != nil {
			return nil, &model.CorruptError{Path: b.path, Err: err}
		}
		c.Put(m)
	}
	if err := rows.Err(); err != nil {
		return nil, &model.CorruptError{Path: b.path, Err: err}
	}
	logger.L().Debug("storage.loaded", "backend", KindSQLite, "path", b.path, "count", c.Len())
	return c, nil
}

// save replaces the table contents inside one transaction.
func (b *SQLiteBackend) save(c *model.Collection) error {
	if err := ensureDir(b.path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite3", b.dsn("rwc"))
	if err != nil {
		return fmt.Errorf("failed to open movie database %s: %w", b.path, err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction on %s: %w", b.path, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create movies table in %s: %w", b.path, err)
	}
	if _, err := tx.Exec("DELETE FROM movies"); err != nil {
		return fmt.Errorf("failed to clear movies in %s: %w", b.path, err)
	}

	stmt, err := tx.Prepare("INSERT INTO movies (position, title, year, rating, poster) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert on %s: %w", b.path, err)
	}
	defer stmt.Close()

	for i, m := range c.Movies() {
		if _, err := stmt.Exec(i, m.Title, m.Year, m.Rating, m.Poster); err != nil {
			return fmt.Errorf("failed to insert %q into %s: %w", m.Title, b.path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", b.path, err)
	}
	logger.L().Debug("storage.saved", "backend", KindSQLite, "path", b.path, "count", c.Len())
	return nil
}
