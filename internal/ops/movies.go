package ops

import (
	"context"
	"strings"

	"github.com/jacksmith/moviedb/internal/logger"
	"github.com/jacksmith/moviedb/internal/model"
)

// ListMovies returns every movie in backend order.
func ListMovies(s Store) ([]model.Movie, error) {
	c, err := s.ListMovies()
	if err != nil {
		return nil, err
	}
	return c.Movies(), nil
}

// AddMovie looks up title with the provider and stores the result under the
// provider's canonical title.
//
// A title already in the collection (compared case-insensitively) is
// rejected with *model.ExistsError before and after the lookup, so neither
// "matrix" nor its canonical form "The Matrix" can duplicate an entry.
// Provider failures abort without writing.
func AddMovie(ctx context.Context, s Store, p Provider, title string) (*model.Movie, error) {
	title = strings.TrimSpace(title)
	if err := model.ValidateTitle(title); err != nil {
		return nil, err
	}

	c, err := s.ListMovies()
	if err != nil {
		return nil, err
	}
	if existing, ok := findFold(c, title); ok {
		return nil, &model.ExistsError{Title: existing}
	}

	md, err := p.Lookup(ctx, title)
	if err != nil {
		logger.L().Info("movie.lookup_failed", "title", title, "error", err)
		return nil, err
	}
	if existing, ok := findFold(c, md.Title); ok {
		return nil, &model.ExistsError{Title: existing}
	}

	m := md.Movie()
	if err := s.AddMovie(m.Title, m.Year, m.Rating, m.Poster); err != nil {
		return nil, err
	}

	logger.L().Info("movie.added", "title", m.Title, "query", title, "year", m.Year, "rating", m.Rating)
	return &m, nil
}

// DeleteMovie removes the movie with exactly the given title.
func DeleteMovie(s Store, title string) error {
	if err := s.DeleteMovie(title); err != nil {
		return err
	}
	logger.L().Info("movie.deleted", "title", title)
	return nil
}

// UpdateRating replaces the rating of the movie with exactly the given title.
func UpdateRating(s Store, title string, rating float64) error {
	if err := s.UpdateMovie(title, rating); err != nil {
		return err
	}
	logger.L().Info("movie.updated", "title", title, "rating", rating)
	return nil
}

// ResolveTitle maps user input to the stored title. An exact match wins;
// otherwise the first case-insensitive match in collection order is used.
// Returns *model.NotFoundError when nothing matches.
func ResolveTitle(s Store, input string) (string, error) {
	c, err := s.ListMovies()
	if err != nil {
		return "", err
	}
	if c.Has(input) {
		return input, nil
	}
	if title, ok := findFold(c, input); ok {
		return title, nil
	}
	return "", &model.NotFoundError{Title: input}
}

func findFold(c *model.Collection, title string) (string, bool) {
	if c.Has(title) {
		return title, true
	}
	for _, t := range c.Titles() {
		if strings.EqualFold(t, title) {
			return t, true
		}
	}
	return "", false
}
