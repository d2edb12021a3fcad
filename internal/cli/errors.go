package cli

import (
	"errors"

	"github.com/jacksmith/moviedb/internal/metadata"
	"github.com/jacksmith/moviedb/internal/model"
)

// Hint returns a suggestion for how to recover from err, or "" if there is
// nothing useful to add.
func Hint(err error) string {
	var corrupt *model.CorruptError
	switch {
	case errors.As(err, &corrupt):
		return "repair or move " + corrupt.Path + " aside; a missing file starts an empty collection"
	case errors.Is(err, metadata.ErrMissingAPIKey):
		return "set OMDB_API_KEY in the environment or in a .env file"
	case errors.Is(err, model.ErrMetadataNotFound):
		return "check the spelling or try the original release title"
	case errors.Is(err, model.ErrEmptyCollection):
		return "add movies first with 'moviedb add <title>'"
	}
	return ""
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output and
// appends a hint line when one applies.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	msg := "error: " + err.Error()
	if hint := Hint(err); hint != "" {
		msg += "\nhint: " + hint
	}
	return msg
}
