package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDisplay()
	c.normalizeParser()
	if err := c.normalizeExport(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.Overlay.Bind = strings.TrimSpace(c.Overlay.Bind)
	if c.Overlay.Bind == "" {
		c.Overlay.Bind = defaultOverlayBind
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("SERATO_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.SeratoDir = strings.TrimSpace(value)
	}
	var err error
	if c.Paths.SeratoDir, err = expandPath(strings.TrimSpace(c.Paths.SeratoDir)); err != nil {
		return fmt.Errorf("paths.serato_dir: %w", err)
	}
	c.Paths.SessionsSubdir = strings.Trim(strings.TrimSpace(c.Paths.SessionsSubdir), `/\`)
	if c.Paths.SessionsSubdir == "" {
		c.Paths.SessionsSubdir = defaultSessionsSubdir
	}
	c.Paths.SessionExtension = strings.ToLower(strings.TrimSpace(c.Paths.SessionExtension))
	if c.Paths.SessionExtension != "" && !strings.HasPrefix(c.Paths.SessionExtension, ".") {
		c.Paths.SessionExtension = "." + c.Paths.SessionExtension
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.Style = strings.ToLower(strings.TrimSpace(c.Display.Style))
	if c.Display.Style == "" {
		c.Display.Style = defaultDisplayStyle
	}
	c.Display.Color = strings.ToLower(strings.TrimSpace(c.Display.Color))
	if c.Display.Color == "" {
		c.Display.Color = defaultDisplayColor
	}
}

func (c *Config) normalizeParser() {
	if c.Parser.Placeholder == "" {
		c.Parser.Placeholder = defaultPlaceholder
	}
}

func (c *Config) normalizeExport() error {
	if strings.TrimSpace(c.Export.Path) == "" {
		c.Export.Path = defaultExportPath
	}
	var err error
	if c.Export.Path, err = expandPath(strings.TrimSpace(c.Export.Path)); err != nil {
		return fmt.Errorf("export.path: %w", err)
	}
	if strings.TrimSpace(c.Export.Format) == "" {
		c.Export.Format = defaultExportFormat
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	var err error
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("SERATAIL_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
