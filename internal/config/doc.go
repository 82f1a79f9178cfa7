// Package config loads and merges ohmyfix configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (OHMYFIX_PROVIDER, OHMYFIX_MODEL, OHMYFIX_FAIL_ON, etc.)
//  3. Config file ($XDG_CONFIG_HOME/ohmyfix/config.json)
//  4. Built-in defaults
//
// [LoadDotEnv] reads a .env file into the process environment first, so
// provider API keys saved by `ohmyfix setup` are visible to every command.
//
// Use [Load] to obtain a merged [Config], [Save] to write the config file,
// and [SetField] to update a single key.
package config
