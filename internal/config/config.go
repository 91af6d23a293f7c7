package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/pfrederiksen/acal-sync/internal/reconcile"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSourceURL    = "https://www.sabanciuniv.edu/en/academic-calendar"
	DefaultTimezone     = "Europe/Istanbul"
	DefaultCalendarName = "Sabanci Academic Calendar"
	DefaultDataDir      = "~/.acal-sync"

	credentialsFileName = "credentials.json"
	dotEnvFileName      = ".env"
)

// ErrMissingCredentials is returned when the Google credentials file does not exist.
var ErrMissingCredentials = errors.New("credentials file not found")

// Config is the application configuration.
type Config struct {
	// SourceURL is the academic calendar page.
	SourceURL string `yaml:"source_url"`

	// Timezone is the IANA zone that decides what "today" is.
	Timezone string `yaml:"timezone"`

	// CalendarName is the summary of the dedicated remote calendar.
	CalendarName string `yaml:"calendar_name"`

	// CredentialsFile is a Google service account or authorized user JSON file.
	// Defaults to credentials.json inside DataDir.
	CredentialsFile string `yaml:"credentials_file"`

	// DataDir holds run history. A leading ~ is expanded.
	DataDir string `yaml:"data_dir"`

	// Strict keeps only rows with an undergraduate date cell.
	Strict *bool `yaml:"strict"`

	// Tags are the private metadata keys marking entries as ours.
	Tags reconcile.Tags `yaml:"tags"`
}

// overrides are read from the environment; empty values leave the file
// configuration untouched.
type overrides struct {
	SourceURL       string `env:"ACAL_SOURCE_URL"`
	Timezone        string `env:"ACAL_TIMEZONE"`
	CalendarName    string `env:"ACAL_CALENDAR_NAME"`
	CredentialsFile string `env:"ACAL_CREDENTIALS_FILE"`
	DataDir         string `env:"ACAL_DATA_DIR"`
	Strict          string `env:"ACAL_STRICT"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Normalize()
	return cfg
}

// Normalize fills in missing values with defaults.
func (c *Config) Normalize() {
	if c.SourceURL == "" {
		c.SourceURL = DefaultSourceURL
	}
	if c.Timezone == "" {
		c.Timezone = DefaultTimezone
	}
	if c.CalendarName == "" {
		c.CalendarName = DefaultCalendarName
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = filepath.Join(c.DataDir, credentialsFileName)
	}
	if c.Strict == nil {
		strict := true
		c.Strict = &strict
	}

	def := reconcile.DefaultTags
	if c.Tags.TagKey == "" {
		c.Tags.TagKey = def.TagKey
	}
	if c.Tags.TagValue == "" {
		c.Tags.TagValue = def.TagValue
	}
	if c.Tags.UIDKey == "" {
		c.Tags.UIDKey = def.UIDKey
	}
	if c.Tags.SrcKey == "" {
		c.Tags.SrcKey = def.SrcKey
	}
}

// Validate checks values that Normalize cannot repair.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if !strings.HasPrefix(c.SourceURL, "http://") && !strings.HasPrefix(c.SourceURL, "https://") {
		return fmt.Errorf("invalid source URL %q", c.SourceURL)
	}
	keys := map[string]bool{}
	for _, k := range []string{c.Tags.TagKey, c.Tags.UIDKey, c.Tags.SrcKey} {
		if keys[k] {
			return fmt.Errorf("duplicate metadata key %q", k)
		}
		keys[k] = true
	}
	return nil
}

// StrictMode reports whether strict undergraduate filtering is on.
func (c *Config) StrictMode() bool {
	return c.Strict == nil || *c.Strict
}

// Location returns the configured time zone. Call Validate first.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today returns the calendar date of now in the configured zone.
func (c *Config) Today(now time.Time) civil.Date {
	return civil.DateOf(now.In(c.Location()))
}

// DataPath returns DataDir with a leading ~ expanded.
func (c *Config) DataPath() string {
	return ExpandHome(c.DataDir)
}

// CredentialsPath returns CredentialsFile with a leading ~ expanded.
func (c *Config) CredentialsPath() string {
	return ExpandHome(c.CredentialsFile)
}

// RequireCredentials returns ErrMissingCredentials when the credentials
// file cannot be found.
func (c *Config) RequireCredentials() error {
	path := c.CredentialsPath()
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrMissingCredentials, path)
		}
		return fmt.Errorf("checking credentials file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrMissingCredentials, path)
	}
	return nil
}

// Load builds the configuration in layers: the YAML file at path (skipped
// when path is empty or the file does not exist), then a .env file next to
// it (or in the working directory when path is empty), then ACAL_*
// environment variables. The result is normalized and validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	dotEnv := dotEnvFileName
	if path != "" {
		dotEnv = filepath.Join(filepath.Dir(path), dotEnvFileName)
	}
	if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", dotEnv, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var o overrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parsing environment variables: %w", err)
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.SourceURL, o.SourceURL)
	set(&c.Timezone, o.Timezone)
	set(&c.CalendarName, o.CalendarName)
	set(&c.CredentialsFile, o.CredentialsFile)
	set(&c.DataDir, o.DataDir)

	if o.Strict != "" {
		strict, err := strconv.ParseBool(o.Strict)
		if err != nil {
			return fmt.Errorf("invalid ACAL_STRICT %q: %w", o.Strict, err)
		}
		c.Strict = &strict
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
