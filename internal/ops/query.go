package ops

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jacksmith/moviedb/internal/model"
)

// SortKey selects the primary ordering for Sort.
type SortKey string

const (
	SortByRating SortKey = "rating" // highest first
	SortByYear   SortKey = "year"   // oldest first
	SortByTitle  SortKey = "title"  // case-insensitive A-Z
)

// SortKeys lists the valid sort keys.
var SortKeys = []SortKey{SortByRating, SortByYear, SortByTitle}

// Search returns movies whose title contains term, ignoring case, in
// collection order. An empty term matches every movie.
func Search(s Store, term string) ([]model.Movie, error) {
	movies, err := ListMovies(s)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	var result []model.Movie
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), needle) {
			result = append(result, m)
		}
	}
	return result, nil
}

// Sort returns every movie ordered by key. Reverse flips the primary key
// only; ties are always broken by title ascending.
func Sort(s Store, key SortKey, reverse bool) ([]model.Movie, error) {
	var primary func(a, b model.Movie) int
	switch key {
	case SortByRating:
		primary = func(a, b model.Movie) int { return compareFloat(b.Rating, a.Rating) }
	case SortByYear:
		primary = func(a, b model.Movie) int { return a.Year - b.Year }
	case SortByTitle:
		primary = func(a, b model.Movie) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	default:
		return nil, &model.ValidationError{
			Field:   "sort key",
			Message: fmt.Sprintf("%q is not one of rating, year, title", key),
		}
	}

	movies, err := ListMovies(s)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(movies, func(i, j int) bool {
		c := primary(movies[i], movies[j])
		if reverse {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return movies[i].Title < movies[j].Title
	})
	return movies, nil
}

// MovieFilter specifies filtering criteria. Nil fields are not applied.
type MovieFilter struct {
	MinRating *float64
	FromYear  *int // inclusive
	ToYear    *int // inclusive
}

// Validate checks the filter bounds.
func (f MovieFilter) Validate() error {
	if f.MinRating != nil {
		if err := model.ValidateRating(*f.MinRating); err != nil {
			return err
		}
	}
	if f.FromYear != nil && f.ToYear != nil && *f.FromYear > *f.ToYear {
		return &model.ValidationError{
			Field:   "year range",
			Message: fmt.Sprintf("start year %d is after end year %d", *f.FromYear, *f.ToYear),
		}
	}
	return nil
}

func (f MovieFilter) match(m model.Movie) bool {
	if f.MinRating != nil && m.Rating < *f.MinRating {
		return false
	}
	if f.FromYear != nil && m.Year < *f.FromYear {
		return false
	}
	if f.ToYear != nil && m.Year > *f.ToYear {
		return false
	}
	return true
}

// Filter returns the movies matching every set predicate, in collection order.
func Filter(s Store, f MovieFilter) ([]model.Movie, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	movies, err := ListMovies(s)
	if err != nil {
		return nil, err
	}

	var result []model.Movie
	for _, m := range movies {
		if f.match(m) {
			result = append(result, m)
		}
	}
	return result, nil
}

func sortByTitle(movies []model.Movie) {
	sort.Slice(movies, func(i, j int) bool {
		return movies[i].Title < movies[j].Title
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
