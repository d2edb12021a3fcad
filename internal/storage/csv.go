package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jacksmith/moviedb/internal/model"
)

// csvHeader is the exact first row of every CSV movie file.
var csvHeader = []string{"title", "year", "rating", "poster"}

type csvCodec struct{}

func (csvCodec) decode(r io.Reader) (*model.Collection, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, name := range csvHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected header %v (want %v)", header, csvHeader)
		}
	}

	c := model.NewCollection()
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		year, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: year %q is not an integer", line, row[1])
		}
		rating, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: rating %q is not a number", line, row[2])
		}

		m := model.Movie{Title: row[0], Year: year, Rating: rating, Poster: row[3]}
		if err := checkRecord(m); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		// Older append-only writers could repeat a title; the last row wins.
		c.Put(m)
	}
	return c, nil
}

func (csvCodec) encode(w io.Writer, c *model.Collection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range c.Movies() {
		row := []string{m.Title, strconv.Itoa(m.Year), model.FormatRating(m.Rating), m.Poster}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
