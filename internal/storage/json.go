package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jacksmith/moviedb/internal/model"
)

// jsonRecord is the per-title object in a JSON movie file:
//
//	{
//	    "The Matrix": {
//	        "rating": 8.7,
//	        "year": 1999,
//	        "poster": "https://..."
//	    }
//	}
type jsonRecord struct {
	Rating *float64    `json:"rating"`
	Year   *int        `json:"year"`
	Poster posterField `json:"poster"`
}

// posterField is a poster that may be omitted but never null.
type posterField string

func (p *posterField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return errors.New("poster must be a string, not null")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = posterField(s)
	return nil
}

type jsonCodec struct{}

// decode streams the top-level object so records keep their file order.
func (jsonCodec) decode(r io.Reader) (*model.Collection, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	c := model.NewCollection()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		title, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected title, got %v", tok)
		}

		var rec jsonRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%q: %w", title, err)
		}
		if rec.Year == nil {
			return nil, fmt.Errorf("%q: missing year", title)
		}
		if rec.Rating == nil {
			return nil, fmt.Errorf("%q: missing rating", title)
		}

		m := model.Movie{Title: title, Year: *rec.Year, Rating: *rec.Rating, Poster: string(rec.Poster)}
		if err := checkRecord(m); err != nil {
			return nil, err
		}
		c.Put(m)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after movie object")
	}
	return c, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// encode writes the object by hand because encoding/json sorts map keys
// and the collection order must survive a save.
func (jsonCodec) encode(w io.Writer, c *model.Collection) error {
	movies := c.Movies()
	if len(movies) == 0 {
		_, err := io.WriteString(w, "{}\n")
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, m := range movies {
		key, err := json.Marshal(m.Title)
		if err != nil {
			return err
		}
		rating, year := m.Rating, m.Year
		rec, err := json.MarshalIndent(jsonRecord{Rating: &rating, Year: &year, Poster: posterField(m.Poster)}, "    ", "    ")
		if err != nil {
			return err
		}
		buf.WriteString("    ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(rec)
		if i < len(movies)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}
