package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is the profile configuration read from the working directory.
	DefaultConfigFile = ".moviedb.yaml"

	// DefaultProfile is used when neither the flag, the environment nor the
	// config file names one.
	DefaultProfile = "john"
)

// Profile binds a user to a backend and its file.
type Profile struct {
	Name    string `yaml:"name"`
	Backend Kind   `yaml:"backend,omitempty"` // empty = infer from path extension
	Path    string `yaml:"path"`
}

// Config represents the profile configuration file.
// This file is user-managed and never written by moviedb.
type Config struct {
	// DefaultProfile is the profile used when none is selected.
	DefaultProfile string `yaml:"default_profile"`

	// Profiles lists every known user. Supplying it replaces the defaults.
	Profiles []Profile `yaml:"profiles"`
}

// DefaultConfig returns the built-in profiles.
func DefaultConfig() *Config {
	return &Config{
		DefaultProfile: DefaultProfile,
		Profiles: []Profile{
			{Name: "john", Backend: KindJSON, Path: filepath.Join("data", "john_movies.json")},
			{Name: "sara", Backend: KindCSV, Path: filepath.Join("data", "sara_movies.csv")},
			{Name: "jack", Backend: KindJSON, Path: filepath.Join("data", "jack_movies.json")},
		},
	}
}

// LoadConfig loads the config file at path if it exists, otherwise returns
// defaults. Partial config files are merged with defaults. Relative profile
// paths are resolved against the config file's directory.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file - return defaults
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if file.DefaultProfile != "" {
		cfg.DefaultProfile = file.DefaultProfile
	}
	if len(file.Profiles) > 0 {
		base := filepath.Dir(path)
		cfg.Profiles = file.Profiles
		for i := range cfg.Profiles {
			p := &cfg.Profiles[i]
			if p.Path != "" && !filepath.IsAbs(p.Path) {
				p.Path = filepath.Join(base, p.Path)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks profile names, paths and backends.
func (c *Config) Validate() error {
	seen := make(map[string]bool)
	for i := range c.Profiles {
		p := &c.Profiles[i]
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("profile #%d has no name", i+1)
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return fmt.Errorf("duplicate profile %q", p.Name)
		}
		seen[key] = true

		if p.Path == "" {
			return fmt.Errorf("profile %q has no path", p.Name)
		}
		if p.Backend == "" {
			kind, err := KindFromPath(p.Path)
			if err != nil {
				return fmt.Errorf("profile %q: %w", p.Name, err)
			}
			p.Backend = kind
		} else {
			kind, err := ParseKind(string(p.Backend))
			if err != nil {
				return fmt.Errorf("profile %q: %w", p.Name, err)
			}
			p.Backend = kind
		}
	}
	return nil
}

// Profile returns the named profile, or the default profile if name is
// empty. Lookup is case-insensitive.
func (c *Config) Profile(name string) (*Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	for i := range c.Profiles {
		if strings.EqualFold(c.Profiles[i].Name, name) {
			p := c.Profiles[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("profile %q not found (known profiles: %s)", name, strings.Join(c.ProfileNames(), ", "))
}

// ProfileNames returns profile names in config order.
func (c *Config) ProfileNames() []string {
	names := make([]string, len(c.Profiles))
	for i, p := range c.Profiles {
		names[i] = p.Name
	}
	return names
}

// Open returns the backend for the profile.
func (p *Profile) Open() (Backend, error) {
	return Open(p.Backend, p.Path)
}
