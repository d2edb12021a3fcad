package model

// Collection is the full set of movies for one profile, keyed by title.
// It remembers the order in which titles were first inserted; overwriting
// a title keeps its original position.
type Collection struct {
	movies []Movie
	index  map[string]int
}

// NewCollection returns a collection holding the given movies.
// Later movies with a duplicate title overwrite earlier ones.
func NewCollection(movies ...Movie) *Collection {
	c := &Collection{index: make(map[string]int, len(movies))}
	for _, m := range movies {
		c.Put(m)
	}
	return c
}

// Len returns the number of movies.
func (c *Collection) Len() int {
	return len(c.movies)
}

// Get returns the movie with exactly the given title.
func (c *Collection) Get(title string) (Movie, bool) {
	i, ok := c.index[title]
	if !ok {
		return Movie{}, false
	}
	return c.movies[i], true
}

// Has reports whether a movie with exactly the given title exists.
func (c *Collection) Has(title string) bool {
	_, ok := c.index[title]
	return ok
}

// Put inserts m, or replaces the movie with the same title in place.
func (c *Collection) Put(m Movie) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[m.Title]; ok {
		c.movies[i] = m
		return
	}
	c.index[m.Title] = len(c.movies)
	c.movies = append(c.movies, m)
}

// Remove deletes the movie with exactly the given title.
// Returns false if there was no such movie.
func (c *Collection) Remove(title string) bool {
	i, ok := c.index[title]
	if !ok {
		return false
	}
	c.movies = append(c.movies[:i], c.movies[i+1:]...)
	delete(c.index, title)
	for j := i; j < len(c.movies); j++ {
		c.index[c.movies[j].Title] = j
	}
	return true
}

// Movies returns a copy of all movies in collection order.
func (c *Collection) Movies() []Movie {
	out := make([]Movie, len(c.movies))
	copy(out, c.movies)
	return out
}

// Titles returns all titles in collection order.
func (c *Collection) Titles() []string {
	titles := make([]string, len(c.movies))
	for i, m := range c.movies {
		titles[i] = m.Title
	}
	return titles
}
