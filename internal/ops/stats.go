package ops

import (
	"math/rand/v2"
	"sort"

	"github.com/jacksmith/moviedb/internal/model"
)

// Stats summarizes the ratings of a collection.
type Stats struct {
	Count   int
	Average float64
	Median  float64

	// Best and Worst hold every movie tied at the extreme rating,
	// ordered by title.
	Best  []model.Movie
	Worst []model.Movie
}

// BestRating returns the highest rating.
func (st *Stats) BestRating() float64 {
	return st.Best[0].Rating
}

// WorstRating returns the lowest rating.
func (st *Stats) WorstRating() float64 {
	return st.Worst[0].Rating
}

// ComputeStats returns rating statistics. An empty collection yields
// model.ErrEmptyCollection rather than NaN values.
func ComputeStats(s Store) (*Stats, error) {
	movies, err := ListMovies(s)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, model.ErrEmptyCollection
	}

	ratings := make([]float64, len(movies))
	sum := 0.0
	for i, m := range movies {
		ratings[i] = m.Rating
		sum += m.Rating
	}
	sort.Float64s(ratings)

	st := &Stats{
		Count:   len(movies),
		Average: sum / float64(len(movies)),
		Median:  median(ratings),
	}

	hi, lo := ratings[len(ratings)-1], ratings[0]
	for _, m := range movies {
		if m.Rating == hi {
			st.Best = append(st.Best, m)
		}
		if m.Rating == lo {
			st.Worst = append(st.Worst, m)
		}
	}
	sortByTitle(st.Best)
	sortByTitle(st.Worst)

	return st, nil
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// RandomMovie picks a movie uniformly at random. A nil rng uses the global
// source.
func RandomMovie(s Store, rng *rand.Rand) (*model.Movie, error) {
	movies, err := ListMovies(s)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, model.ErrEmptyCollection
	}

	var i int
	if rng != nil {
		i = rng.IntN(len(movies))
	} else {
		i = rand.IntN(len(movies))
	}
	m := movies[i]
	return &m, nil
}
