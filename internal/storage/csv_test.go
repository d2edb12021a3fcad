package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV_SaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	b := NewCSV(path)
	require.NoError(t, b.AddMovie("Heat", 1995, 8, "N/A"))
	require.NoError(t, b.AddMovie("Crouching Tiger, Hidden Dragon", 2000, 7.85, ""))
	require.NoError(t, b.AddMovie("Say \"Hi\"\nTwice", 2010, 6.5, "http://x/p.jpg"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "title,year,rating,poster\n" +
		"Heat,1995,8,N/A\n" +
		"\"Crouching Tiger, Hidden Dragon\",2000,7.85,\n" +
		"\"Say \"\"Hi\"\"\nTwice\",2010,6.5,http://x/p.jpg\n"
	assert.Equal(t, want, string(data))

	c, err := b.ListMovies()
	require.NoError(t, err)
	assert.Equal(t, []string{"Heat", "Crouching Tiger, Hidden Dragon", "Say \"Hi\"\nTwice"}, c.Titles())
}

func TestCSV_HeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	b := NewCSV(path)
	for _, title := range []string{"A", "B", "C"} {
		require.NoError(t, b.AddMovie(title, 2000, 5, ""))
	}
	require.NoError(t, b.DeleteMovie("B"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title,year,rating,poster\nA,2000,5,\nC,2000,5,\n", string(data))
}

func TestCSV_HeaderOnlyIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte("title,year,rating,poster\n"), 0644))

	c, err := NewCSV(path).ListMovies()
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestCSV_DuplicateRowsLastWins(t *testing.T) {
	content := "title,year,rating,poster\nHeat,1995,8.3,\nAlien,1979,8.5,\nHeat,1995,9.0,\n"
	path := filepath.Join(t.TempDir(), "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := NewCSV(path).ListMovies()
	require.NoError(t, err)
	assert.Equal(t, []string{"Heat", "Alien"}, c.Titles())
	m, _ := c.Get("Heat")
	assert.Equal(t, 9.0, m.Rating)
}

func TestCSV_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong header", "name,year,rating,poster\nHeat,1995,8.3,\n"},
		{"short header", "title,year,rating\nHeat,1995,8.3\n"},
		{"missing column", "title,year,rating,poster\nHeat,1995,8.3\n"},
		{"extra column", "title,year,rating,poster\nHeat,1995,8.3,,x\n"},
		{"year not numeric", "title,year,rating,poster\nHeat,nineteen,8.3,\n"},
		{"empty year", "title,year,rating,poster\nHeat,,8.3,\n"},
		{"year with separator", "title,year,rating,poster\nHeat,\"1,995\",8.3,\n"},
		{"rating not numeric", "title,year,rating,poster\nHeat,1995,great,\n"},
		{"rating out of range", "title,year,rating,poster\nHeat,1995,83,\n"},
		{"empty title", "title,year,rating,poster\n,1995,8.3,\n"},
		{"blank title", "title,year,rating,poster\n   ,1995,8.3,\n"},
		{"bare quote", "title,year,rating,poster\nHe\"at,1995,8.3,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "movies.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := NewCSV(path).ListMovies()
			assertCorrupt(t, err, path)
		})
	}
}
