package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for matching and the screen locator.
// Fields may be loaded from a JSON file and overridden programmatically.
type Config struct {
	Debug bool `json:"debug"`

	// Matching parameters
	Threshold float64 `json:"threshold"`
	MaxCount  int     `json:"max_count"`
	Threads   int     `json:"threads"` // 0 = one worker per logical core

	// Decoded-template cache capacity for the locator
	TemplateCacheSize int `json:"template_cache_size"`

	// Selection rectangle persistence for partial-screen searches
	SelectionX int `json:"selection_x"`
	SelectionY int `json:"selection_y"`
	SelectionW int `json:"selection_w"`
	SelectionH int `json:"selection_h"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		Threshold:         0.80,
		MaxCount:          10,
		Threads:           0,
		TemplateCacheSize: 16,
		SelectionX:        0,
		SelectionY:        0,
		SelectionW:        0,
		SelectionH:        0,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = 0.80
	}
	if c.MaxCount < 1 {
		c.MaxCount = 10
	}
	if c.Threads < 0 {
		c.Threads = 0
	}
	if c.TemplateCacheSize < 1 {
		c.TemplateCacheSize = 16
	}
	if c.SelectionW < 0 {
		c.SelectionW = 0
	}
	if c.SelectionH < 0 {
		c.SelectionH = 0
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
