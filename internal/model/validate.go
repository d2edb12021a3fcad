package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	MinRating = 0.0
	MaxRating = 10.0

	// RatingDecimals is the precision user and provider ratings are rounded to.
	RatingDecimals = 1
)

// ValidateTitle checks that a title is not blank and holds no control
// characters other than newline and tab. Carriage returns are refused
// because CSV files read "\r\n" back as "\n".
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if strings.ContainsFunc(title, func(r rune) bool {
		return unicode.IsControl(r) && r != '\n' && r != '\t'
	}) {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("%q contains a control character", title)}
	}
	return nil
}

// ValidatePoster checks that a poster reference is a single line of text.
func ValidatePoster(poster string) error {
	if strings.ContainsFunc(poster, unicode.IsControl) {
		return &ValidationError{Field: "poster", Message: fmt.Sprintf("%q contains a control character", poster)}
	}
	return nil
}

// ValidateYear checks that a year is a non-negative integer.
func ValidateYear(year int) error {
	if year < 0 {
		return &ValidationError{Field: "year", Message: fmt.Sprintf("%d is negative", year)}
	}
	return nil
}

// ValidateRating checks that a rating lies within [MinRating, MaxRating].
func ValidateRating(rating float64) error {
	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return &ValidationError{
			Field:   "rating",
			Message: fmt.Sprintf("%s must be between %.1f and %.1f", FormatRating(rating), MinRating, MaxRating),
		}
	}
	return nil
}

// ValidateMovie runs every field check on m.
func ValidateMovie(m Movie) error {
	if err := ValidateTitle(m.Title); err != nil {
		return err
	}
	if err := ValidateYear(m.Year); err != nil {
		return err
	}
	if err := ValidateRating(m.Rating); err != nil {
		return err
	}
	return ValidatePoster(m.Poster)
}

// ParseRating converts user input to a validated rating rounded to
// RatingDecimals places.
func ParseRating(s string) (float64, error) {
	r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ValidationError{Field: "rating", Message: fmt.Sprintf("%q is not a number", s)}
	}
	if err := ValidateRating(r); err != nil {
		return 0, err
	}
	return RoundRating(r), nil
}

// ParseYear converts user input to a validated year.
func ParseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Field: "year", Message: fmt.Sprintf("%q is not a whole number", s)}
	}
	if err := ValidateYear(y); err != nil {
		return 0, err
	}
	return y, nil
}

// RoundRating rounds r to RatingDecimals places.
func RoundRating(r float64) float64 {
	scale := math.Pow(10, RatingDecimals)
	return math.Round(r*scale) / scale
}

// FormatRating renders a rating as plain decimal text with the shortest
// representation that parses back to the same value (8, 8.5, 7.25).
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
