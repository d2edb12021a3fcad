package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCollection is returned by operations that need at least one movie.
	ErrEmptyCollection = errors.New("no movies in collection")

	// ErrMetadataNotFound is returned when the metadata source has no such title.
	ErrMetadataNotFound = errors.New("movie not found in metadata source")
)

// ValidationError indicates invalid input such as an out of range rating.
type ValidationError struct {
	Field   string // the field that failed validation
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NotFoundError indicates a title is not in the collection.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("movie %q not found", e.Title)
}

// ExistsError indicates a title is already in the collection.
type ExistsError struct {
	Title string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("movie %q already exists", e.Title)
}

// CorruptError indicates the backing file could not be parsed.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt movie file %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// ProviderError indicates the metadata lookup itself failed (transport,
// upstream status, incomplete response). It is distinct from
// ErrMetadataNotFound.
type ProviderError struct {
	Title string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("metadata lookup for %q failed: %v", e.Title, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
