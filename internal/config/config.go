package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains folder and file locations.
type Paths struct {
	SeratoDir        string `toml:"serato_dir"`
	SessionsSubdir   string `toml:"sessions_subdir"`
	SessionExtension string `toml:"session_extension"`
	LogDir           string `toml:"log_dir"`
}

// Display controls the terminal renderer and poll cadence.
type Display struct {
	Count        int    `toml:"count"`
	PollInterval int    `toml:"poll_interval"`
	Style        string `toml:"style"`
	Color        string `toml:"color"`
	ClearScreen  bool   `toml:"clear_screen"`
}

// Parser controls how record fields are turned into text.
type Parser struct {
	Sanitize    bool   `toml:"sanitize"`
	Placeholder string `toml:"placeholder"`
}

// Export configures the now-playing text file.
type Export struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	Format  string `toml:"format"`
}

// History configures the SQLite play log.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Overlay configures the now-playing HTTP endpoint.
type Overlay struct {
	Enabled bool   `toml:"enabled"`
	Bind    string `toml:"bind"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for seratail.
//
// Configuration sections by subsystem:
//   - Paths: Serato folder, session file layout, log directory
//   - Display: renderer style, colour, window size and poll interval
//   - Parser: field sanitizing
//   - Export: now-playing text file for stream overlays
//   - History: SQLite record of every play observed
//   - Overlay: HTTP now-playing endpoint
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Display Display `toml:"display"`
	Parser  Parser  `toml:"parser"`
	Export  Export  `toml:"export"`
	History History `toml:"history"`
	Overlay Overlay `toml:"overlay"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("seratail.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories seratail writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.Export.Enabled {
		dirs = append(dirs, filepath.Dir(c.Export.Path))
	}
	if c.History.Enabled {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SessionsDir returns the folder holding session history files.
func (c *Config) SessionsDir() string {
	return filepath.Join(c.Paths.SeratoDir, filepath.FromSlash(c.Paths.SessionsSubdir))
}

// PollInterval returns the wait between poll cycles.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Display.PollInterval) * time.Second
}

// PlaceholderByte returns the sanitizer placeholder as a single byte.
func (c *Config) PlaceholderByte() byte {
	if c.Parser.Placeholder == "" {
		return defaultPlaceholder[0]
	}
	return c.Parser.Placeholder[0]
}

// LogFilePath returns the log file inside LogDir, or "" when file logging is off.
func (c *Config) LogFilePath() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "seratail.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
