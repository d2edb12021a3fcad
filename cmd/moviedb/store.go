package main

import (
	"os"
	"strings"

	"github.com/jacksmith/moviedb/internal/cli"
	"github.com/jacksmith/moviedb/internal/storage"
)

// defaultConfigPath honors $MOVIEDB_CONFIG, falling back to the working
// directory.
func defaultConfigPath() string {
	if p := os.Getenv("MOVIEDB_CONFIG"); p != "" {
		return p
	}
	return storage.DefaultConfigFile
}

// selectedProfile applies the precedence --profile, $MOVIEDB_PROFILE, then
// the config default (signalled by "").
func selectedProfile() string {
	if profileName != "" {
		return profileName
	}
	return os.Getenv("MOVIEDB_PROFILE")
}

// parseBackend resolves a backend name or unique prefix.
func parseBackend(name string) (storage.Kind, error) {
	choices := make([]string, len(storage.Kinds))
	for i, k := range storage.Kinds {
		choices[i] = string(k)
	}
	match, err := cli.MatchChoice("backend", name, choices)
	if err != nil {
		return "", err
	}
	return storage.Kind(match), nil
}

// openStore returns the backend for the selected profile, or for --file
// when given.
func openStore() (storage.Backend, error) {
	if filePath != "" {
		var kind storage.Kind
		if strings.TrimSpace(backendName) != "" {
			k, err := parseBackend(backendName)
			if err != nil {
				return nil, err
			}
			kind = k
		}
		return storage.Open(kind, filePath)
	}

	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	p, err := cfg.Profile(selectedProfile())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(backendName) != "" {
		k, err := parseBackend(backendName)
		if err != nil {
			return nil, err
		}
		p.Backend = k
	}
	return p.Open()
}
