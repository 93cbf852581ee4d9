package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_sources.json
var defaultSourcesFS embed.FS

// Source is one configured feed endpoint.
type Source struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	URL     string `yaml:"url"`
	Enabled *bool  `yaml:"enabled"` // nil means enabled
}

// IsEnabled reports whether the source should be fetched. Sources are
// enabled unless the config explicitly says otherwise.
func (s Source) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Config holds the loaded source list.
type Config struct {
	Sources []Source
}

func (c *Config) EnabledSources() []Source {
	var out []Source
	for _, s := range c.Sources {
		if s.IsEnabled() {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) SourceNames() []string {
	var names []string
	for _, s := range c.EnabledSources() {
		names = append(names, s.Name)
	}
	return names
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "stocks-news", "sources.json")
}

func loadDefaults() (*Config, error) {
	data, err := defaultSourcesFS.ReadFile("default_sources.json")
	if err != nil {
		return nil, fmt.Errorf("reading embedded sources: %w", err)
	}
	return parse(data, "embedded defaults")
}

// parse decodes a sources document. The file format is a JSON array of
// source objects; since JSON is a subset of YAML, decoding through yaml.v3
// also accepts hand-written YAML source lists.
func parse(data []byte, origin string) (*Config, error) {
	var sources []Source
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("parsing sources %s: %w", origin, err)
	}
	return &Config{Sources: sources}, nil
}

// Load reads the sources file at path, or the default XDG location when
// path is empty. On first run the embedded defaults are written to the
// default location so users have a file to edit.
func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal if the write fails: just use embedded defaults
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading sources file: %w", err)
	}

	cfg, err := parse(data, path)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultSourcesFS.ReadFile("default_sources.json")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	validTypes := map[string]bool{"rss": true, "atom": true}
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("source %d: name is required", i)
		}
		if s.URL == "" {
			return fmt.Errorf("source %q: url is required", s.Name)
		}
		u, err := url.Parse(s.URL)
		if err != nil {
			return fmt.Errorf("source %q: invalid url: %w", s.Name, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("source %q: url scheme must be http or https, got %q", s.Name, u.Scheme)
		}
		if !validTypes[s.Type] {
			return fmt.Errorf("source %q: unknown type %q (valid: rss, atom)", s.Name, s.Type)
		}
	}
	return nil
}
