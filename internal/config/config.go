// Package config resolves the client configuration from flags, environment
// variables and the per-user config file, in that order of priority.
//
// The resolved Config is built once in main and passed explicitly to the
// components that need it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://sheetdb.io/api/v1"

	configDirName  = ".sheetdb"
	configFileName = "config.json"
	logFileName    = "sheetdb.log"
	localDataFile  = "sheetdb.json"
)

// Environment variable names.
const (
	EnvAPIID     = "SHEETDB_API_ID"
	EnvViteAPIID = "VITE_SHEETDB_API_ID"
	EnvBaseURL   = "SHEETDB_BASE_URL"
	EnvTheme     = "SHEETDB_THEME"
	EnvLog       = "SHEETDB_LOG"
	EnvLogLevel  = "SHEETDB_LOG_LEVEL"
)

// Source tells where the API id came from.
type Source string

const (
	SourceNone Source = ""
	SourceFlag Source = "flag"
	SourceEnv  Source = "env"
	SourceFile Source = "file"
)

// Config holds everything the client needs at start.
type Config struct {
	APIID    string
	BaseURL  string
	Source   Source
	Local    bool   // use the local JSON store instead of SheetDB
	DataPath string // local JSON store path
	Theme    string
	NoColor  bool
	LogPath  string
	LogLevel string
}

// Overrides carries flag values; empty strings mean "not set".
type Overrides struct {
	APIID    string
	BaseURL  string
	Local    bool
	DataPath string
	Theme    string
	NoColor  bool
	LogPath  string
}

// Stored is the on-disk shape of ~/.sheetdb/config.json.
type Stored struct {
	APIID     string    `json:"api_id"`
	BaseURL   string    `json:"base_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidationError lists every problem found by Validate.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Dir returns ~/.sheetdb.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// FilePath returns the config file path.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load resolves the configuration and validates it.
func Load(o Overrides) (*Config, error) {
	cfg, err := Resolve(o)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve applies the sources in priority order without validating the
// result. A missing API id leaves APIID empty and Source SourceNone.
func Resolve(o Overrides) (*Config, error) {
	cfg := &Config{
		Local:    o.Local,
		NoColor:  o.NoColor,
		LogLevel: getEnvOrDefault(EnvLogLevel, "info"),
	}

	stored, err := ReadStored()
	if err != nil {
		return nil, err
	}

	switch {
	case strings.TrimSpace(o.APIID) != "":
		cfg.APIID, cfg.Source = strings.TrimSpace(o.APIID), SourceFlag
	case strings.TrimSpace(os.Getenv(EnvAPIID)) != "":
		cfg.APIID, cfg.Source = strings.TrimSpace(os.Getenv(EnvAPIID)), SourceEnv
	case strings.TrimSpace(os.Getenv(EnvViteAPIID)) != "":
		cfg.APIID, cfg.Source = strings.TrimSpace(os.Getenv(EnvViteAPIID)), SourceEnv
	case stored != nil && stored.APIID != "":
		cfg.APIID, cfg.Source = stored.APIID, SourceFile
	}

	cfg.BaseURL = firstNonEmpty(o.BaseURL, os.Getenv(EnvBaseURL))
	if cfg.BaseURL == "" && stored != nil {
		cfg.BaseURL = stored.BaseURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	cfg.Theme = firstNonEmpty(o.Theme, os.Getenv(EnvTheme), "classic")
	cfg.LogPath = firstNonEmpty(o.LogPath, os.Getenv(EnvLog))

	cfg.DataPath = strings.TrimSpace(o.DataPath)
	if cfg.Local && cfg.DataPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		cfg.DataPath = filepath.Join(wd, localDataFile)
	}
	return cfg, nil
}

// Validate checks that the configuration can reach a record store.
func (c *Config) Validate() error {
	var errs []string

	if !c.Local {
		if c.APIID == "" {
			errs = append(errs, EnvAPIID+" is required (set env var, pass --api-id, run `sheetdb config set <id>`, or use --local)")
		} else if strings.ContainsAny(c.APIID, "/?# ") {
			errs = append(errs, "API id must not contain '/', '?', '#' or spaces")
		}
		u, err := url.Parse(c.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, "base URL must be an absolute http(s) URL: "+c.BaseURL)
		}
	} else if c.DataPath == "" {
		errs = append(errs, "local data path is required with --local")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// DefaultLogPath returns ~/.sheetdb/sheetdb.log.
func DefaultLogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

// ReadStored returns the saved configuration, or nil when none exists.
func ReadStored() (*Stored, error) {
	p, err := FilePath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var s Stored
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	s.APIID = strings.TrimSpace(s.APIID)
	return &s, nil
}

// Save writes the API id (and optional base URL) to the config file with
// owner-only permissions.
func Save(apiID, baseURL string) error {
	apiID = strings.TrimSpace(apiID)
	if apiID == "" {
		return fmt.Errorf("empty api id")
	}
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	s := Stored{
		APIID:     apiID,
		BaseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		CreatedAt: time.Now(),
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	p := filepath.Join(dir, configFileName)
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Clear removes the config file. A missing file is not an error.
func Clear() error {
	p, err := FilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// MaskedAPIID shows only the last four characters of the API id.
func (c *Config) MaskedAPIID() string {
	if len(c.APIID) <= 4 {
		return strings.Repeat("*", len(c.APIID))
	}
	return strings.Repeat("*", len(c.APIID)-4) + c.APIID[len(c.APIID)-4:]
}

func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
