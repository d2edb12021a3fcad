// Package cli provides terminal helpers for moviedb.
package cli

import (
	"fmt"
	"strings"
)

// MatchChoice resolves input to one of choices by exact match or unique
// prefix, ignoring case. kind names the choice in error messages, such as
// "sort key" or "backend".
func MatchChoice(kind, input string, choices []string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))

	for _, c := range choices {
		if strings.ToLower(c) == input {
			return c, nil
		}
	}

	var matches []string
	if input != "" {
		for _, c := range choices {
			if strings.HasPrefix(strings.ToLower(c), input) {
				matches = append(matches, c)
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown %s %q (choices: %s)", kind, input, strings.Join(choices, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous %s %q matches: %s", kind, input, strings.Join(matches, ", "))
	}
}
