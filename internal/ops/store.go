package ops

import (
	"context"

	"github.com/jacksmith/moviedb/internal/model"
)

// Store defines the persistence interface required by collection operations.
// Every storage.Backend satisfies it; tests may substitute an in-memory
// implementation.
type Store interface {
	ListMovies() (*model.Collection, error)
	AddMovie(title string, year int, rating float64, poster string) error
	DeleteMovie(title string) error
	UpdateMovie(title string, rating float64) error
}

// Provider looks up metadata for a title. The concrete implementation is
// metadata.OMDbClient.
type Provider interface {
	Lookup(ctx context.Context, title string) (*model.Metadata, error)
}
