// Package config loads the engine configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
)

// Duration is a time.Duration written as a string ("120s", "50ms") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// NavItem is one entry of the secondary navigation index.
type NavItem struct {
	ID       string `toml:"id"`
	Group    int    `toml:"group"`
	Disabled bool   `toml:"disabled"`
	Width    int    `toml:"width"`
	Label    string `toml:"label"`
	Icon     string `toml:"icon"` // Path to an SVG file, relative to the config file
}

// Config is the engine configuration.
type Config struct {
	Home             string            `toml:"home"`              // Start destination; neutral transitions target it
	GuardTimeout     Duration          `toml:"guard_timeout"`     // Chain-wide unload check timeout
	OrientationRetry Duration          `toml:"orientation_retry"` // Yield before a deferred orientation change
	Orientation      string            `toml:"orientation"`       // "horizontal" or "vertical"
	GuardBypass      []string          `toml:"guard_bypass"`      // Destinations that skip the page guard
	HistoryLimit     int               `toml:"history_limit"`     // Back stack size; 0 is unbounded
	Locale           string            `toml:"locale"`            // BCP 47 tag for nav labels
	LocaleDir        string            `toml:"locale_dir"`        // Directory of active.<tag>.toml message files
	SessionDir       string            `toml:"session_dir"`       // Where the session is persisted; empty disables
	ContentURL       string            `toml:"content_url"`       // Base URL that page addresses resolve against
	LogLevel         string            `toml:"log_level"`
	Routes           map[string]string `toml:"routes"`  // Destination → address overrides
	Masters          map[string]string `toml:"masters"` // Detail → master pairs
	Nav              []NavItem         `toml:"nav"`

	path string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Home:             constants.DefaultHome,
		GuardTimeout:     Duration{constants.DefaultGuardTimeout},
		OrientationRetry: Duration{constants.DefaultOrientationRetry},
		Orientation:      "horizontal",
		Locale:           "en",
		Routes:           map[string]string{},
		Masters:          map[string]string{},
	}
}

// Path returns the file the configuration was loaded from, if any.
func (c Config) Path() string { return c.path }

// DefaultPath returns $WAYPOINT_CONFIG, or ~/.config/waypoint/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv(constants.ConfigPathEnvVar); p != "" {
		return homedir.Expand(p)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home: %w", err)
	}
	return filepath.Join(home, ".config", "waypoint", "config.toml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: expand %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.path = expanded
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", expanded, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", expanded, err)
	}
	cfg.path = expanded
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.Home == "" {
		errs = append(errs, errors.New("home must not be empty"))
	}
	if c.GuardTimeout.Duration < 0 {
		errs = append(errs, errors.New("guard_timeout must not be negative"))
	}
	if c.OrientationRetry.Duration < 0 {
		errs = append(errs, errors.New("orientation_retry must not be negative"))
	}
	if c.Orientation != "horizontal" && c.Orientation != "vertical" {
		errs = append(errs, fmt.Errorf("orientation %q must be horizontal or vertical", c.Orientation))
	}
	if c.HistoryLimit < 0 {
		errs = append(errs, errors.New("history_limit must not be negative"))
	}

	seen := make(map[string]bool, len(c.Nav))
	for i, item := range c.Nav {
		switch {
		case item.ID == "":
			errs = append(errs, fmt.Errorf("nav[%d]: id must not be empty", i))
		case seen[item.ID]:
			errs = append(errs, fmt.Errorf("nav[%d]: duplicate id %q", i, item.ID))
		}
		seen[item.ID] = true
	}
	for detail, master := range c.Masters {
		if detail == master {
			errs = append(errs, fmt.Errorf("masters: %q is paired with itself", detail))
		}
	}
	return errors.Join(errs...)
}

// IconSource reads the SVG of a nav item icon. Relative paths resolve
// against the directory of the config file.
func (c Config) IconSource(item NavItem) (string, error) {
	if item.Icon == "" {
		return "", nil
	}
	p := item.Icon
	if !filepath.IsAbs(p) && c.path != "" {
		p = filepath.Join(filepath.Dir(c.path), p)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("config: icon %s: %w", item.ID, err)
	}
	return string(data), nil
}
