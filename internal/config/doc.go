// Package config loads, normalizes, and validates seratail configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SERATO_DIR. The Config type centralizes every knob the watch loop and CLI
// need: where Serato keeps its session history, how many tracks to show, and
// which optional outputs (export file, play history, overlay endpoint) run.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
