package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"seratail/internal/config"
	"seratail/internal/sessionlog"
	"seratail/internal/sessions"
)

type commandContext struct {
	configFlag    *string
	seratoDirFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, seratoDirFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		seratoDirFlag: seratoDirFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.seratoDirFlag != nil && strings.TrimSpace(*c.seratoDirFlag) != "" {
			if err := setSeratoDir(cfg, *c.seratoDirFlag); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func setSeratoDir(cfg *config.Config, dir string) error {
	expanded, err := config.ExpandPath(strings.TrimSpace(dir))
	if err != nil {
		return fmt.Errorf("resolve serato folder: %w", err)
	}
	cfg.Paths.SeratoDir = expanded
	return nil
}

// latestSession picks the newest session file under the configured folder.
func latestSession(cfg *config.Config) (sessions.Entry, error) {
	return sessions.Latest(cfg.SessionsDir(), cfg.Paths.SessionExtension)
}

func parserOptions(cfg *config.Config) sessionlog.Options {
	return sessionlog.Options{
		Sanitize:    cfg.Parser.Sanitize,
		Placeholder: cfg.PlaceholderByte(),
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
