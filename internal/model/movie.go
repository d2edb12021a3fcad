// Package model defines the core data structures for moviedb.
package model

// NoPoster is the poster value the metadata source uses for a missing image.
const NoPoster = "N/A"

// Movie is a single record in a collection, keyed by Title.
type Movie struct {
	Title  string
	Year   int
	Rating float64
	Poster string
}

// HasPoster reports whether the movie carries a usable poster URL.
// Both "" and "N/A" mean no poster.
func (m Movie) HasPoster() bool {
	return m.Poster != "" && m.Poster != NoPoster
}

// Metadata is what a metadata provider knows about a title.
// Title is the provider's canonical spelling, which may differ from the query.
type Metadata struct {
	Title  string
	Year   int
	Rating float64
	Poster string
}

// Movie converts the metadata into a record.
func (md *Metadata) Movie() Movie {
	return Movie{
		Title:  md.Title,
		Year:   md.Year,
		Rating: md.Rating,
		Poster: md.Poster,
	}
}
