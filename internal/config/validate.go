package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDisplay(); err != nil {
		return err
	}
	if err := c.validateParser(); err != nil {
		return err
	}
	if err := c.validateOverlay(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SeratoDir) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("paths.serato_dir is required. Pass it as an argument, set SERATO_DIR, or edit %s (create with 'seratail config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateDisplay() error {
	if c.Display.Count <= 0 {
		return errors.New("display.count must be positive")
	}
	if c.Display.PollInterval <= 0 {
		return errors.New("display.poll_interval must be positive (seconds)")
	}
	switch c.Display.Style {
	case "list", "table":
	default:
		return fmt.Errorf("display.style: unsupported value %q (want list or table)", c.Display.Style)
	}
	switch c.Display.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("display.color: unsupported value %q (want auto, always or never)", c.Display.Color)
	}
	return nil
}

func (c *Config) validateParser() error {
	if len(c.Parser.Placeholder) != 1 || c.Parser.Placeholder[0] < 0x20 || c.Parser.Placeholder[0] > 0x7e {
		return fmt.Errorf("parser.placeholder must be a single printable ASCII character, got %q", c.Parser.Placeholder)
	}
	return nil
}

func (c *Config) validateOverlay() error {
	if !c.Overlay.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Overlay.Bind); err != nil {
		return fmt.Errorf("overlay.bind must be host:port: %w", err)
	}
	return nil
}
