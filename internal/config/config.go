package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
)

// Config represents the ohmyfix configuration.
type Config struct {
	Provider       string        `json:"provider"`
	Model          string        `json:"model"`
	Format         string        `json:"format"`
	FailOn         string        `json:"failOn"`
	Include        []string      `json:"include"`
	Exclude        []string      `json:"exclude"`
	MaxFileBytes   int           `json:"maxFileBytes"`
	MaxFiles       int           `json:"maxFiles"`
	RulesFile      string        `json:"rulesFile,omitempty"`
	PreserveIndent bool          `json:"preserveIndent"`
	Theme          string        `json:"theme"`
	Cache          CacheConfig   `json:"cache"`
	Privacy        PrivacyConfig `json:"privacy"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool     `json:"redactSecrets"`
	RedactPaths   []string `json:"redactPaths,omitempty"`
}

// FailOn values.
const (
	FailOnNone      = "none"
	FailOnFindings  = "findings"
	FailOnUnmatched = "unmatched"
)

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:       "gemini",
		Model:          "gemini-1.5-flash",
		Format:         "text",
		FailOn:         FailOnNone,
		Include:        []string{},
		Exclude:        []string{"**/*.min.js", "**/*.gen.go", "dist/**"},
		MaxFileBytes:   256 * 1024,
		MaxFiles:       200,
		PreserveIndent: true,
		Theme:          "auto",
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/.env.*", "**/*secrets*", "**/*.pem", "**/*.key"},
		},
	}
}

// DefaultModel returns the default model for a provider.
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		return "gpt-4o-mini"
	case "anthropic":
		return "claude-sonnet-4-20250514"
	case "ollama", "lmstudio":
		return "llama3.1"
	default:
		return "gemini-1.5-flash"
	}
}

// ConfigDir returns the platform-appropriate config directory for ohmyfix.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ohmyfix"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "ohmyfix"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "ohmyfix"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "ohmyfix"), nil
	default:
		return filepath.Join(home, ".config", "ohmyfix"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// fileConfig mirrors Config with pointer booleans so an absent key can be
// told apart from an explicit false.
type fileConfig struct {
	Provider       string   `json:"provider"`
	Model          string   `json:"model"`
	Format         string   `json:"format"`
	FailOn         string   `json:"failOn"`
	Include        []string `json:"include"`
	Exclude        []string `json:"exclude"`
	MaxFileBytes   int      `json:"maxFileBytes"`
	MaxFiles       int      `json:"maxFiles"`
	RulesFile      string   `json:"rulesFile"`
	PreserveIndent *bool    `json:"preserveIndent"`
	Theme          string   `json:"theme"`
	Cache          struct {
		Enabled    *bool  `json:"enabled"`
		Dir        string `json:"dir"`
		TTLSeconds int    `json:"ttlSeconds"`
	} `json:"cache"`
	Privacy struct {
		RedactSecrets *bool    `json:"redactSecrets"`
		RedactPaths   []string `json:"redactPaths"`
	} `json:"privacy"`
}

// loadFile reads the config file. A missing file yields a zero fileConfig.
func loadFile() (fileConfig, error) {
	var fc fileConfig
	path, err := ConfigPath()
	if err != nil {
		return fc, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return fc, nil
}

// LoadFile returns the defaults overlaid with the config file only, ignoring
// the environment. It is what `config set` edits.
func LoadFile() (Config, error) {
	cfg := Default()
	fc, err := loadFile()
	if err != nil {
		return cfg, err
	}
	mergeFile(&cfg, fc)
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fc, err := loadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fc)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	// A provider switch without an explicit model picks that provider's default.
	if cfg.Model == "" || (cfg.Provider != Default().Provider && cfg.Model == Default().Model) {
		cfg.Model = DefaultModel(cfg.Provider)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(dst *Config, src fileConfig) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailOn != "" {
		dst.FailOn = src.FailOn
	}
	if src.Include != nil {
		dst.Include = src.Include
	}
	if src.Exclude != nil {
		dst.Exclude = src.Exclude
	}
	if src.MaxFileBytes > 0 {
		dst.MaxFileBytes = src.MaxFileBytes
	}
	if src.MaxFiles > 0 {
		dst.MaxFiles = src.MaxFiles
	}
	if src.RulesFile != "" {
		dst.RulesFile = src.RulesFile
	}
	if src.PreserveIndent != nil {
		dst.PreserveIndent = *src.PreserveIndent
	}
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.Cache.Enabled != nil {
		dst.Cache.Enabled = *src.Cache.Enabled
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	if src.Privacy.RedactSecrets != nil {
		dst.Privacy.RedactSecrets = *src.Privacy.RedactSecrets
	}
	if src.Privacy.RedactPaths != nil {
		dst.Privacy.RedactPaths = src.Privacy.RedactPaths
	}
}

// envKeys maps environment variables to config keys.
var envKeys = []struct{ env, key string }{
	{"OHMYFIX_PROVIDER", "provider"},
	{"OHMYFIX_MODEL", "model"},
	{"OHMYFIX_FORMAT", "format"},
	{"OHMYFIX_FAIL_ON", "failOn"},
	{"OHMYFIX_MAX_FILE_BYTES", "maxFileBytes"},
	{"OHMYFIX_MAX_FILES", "maxFiles"},
	{"OHMYFIX_THEME", "theme"},
}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for _, key := range sortedKeys(overrides) {
		v := overrides[key]
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("flag %s: %w", key, err)
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Keys lists the names accepted by SetField.
var Keys = []string{
	"provider", "model", "format", "failOn", "include", "exclude",
	"maxFileBytes", "maxFiles", "rulesFile", "preserveIndent", "theme",
	"cache.enabled", "cache.dir", "cache.ttlSeconds",
	"privacy.redactSecrets", "privacy.redactPaths",
}

// SetField sets a single config field by key name. List values are comma
// separated. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "format":
		cfg.Format = value
	case "failOn":
		cfg.FailOn = value
	case "include":
		cfg.Include = splitList(value)
	case "exclude":
		cfg.Exclude = splitList(value)
	case "maxFileBytes":
		return setInt(&cfg.MaxFileBytes, key, value)
	case "maxFiles":
		return setInt(&cfg.MaxFiles, key, value)
	case "rulesFile":
		cfg.RulesFile = value
	case "preserveIndent":
		return setBool(&cfg.PreserveIndent, key, value)
	case "theme":
		cfg.Theme = value
	case "cache.enabled":
		return setBool(&cfg.Cache.Enabled, key, value)
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		return setInt(&cfg.Cache.TTLSeconds, key, value)
	case "privacy.redactSecrets":
		return setBool(&cfg.Privacy.RedactSecrets, key, value)
	case "privacy.redactPaths":
		cfg.Privacy.RedactPaths = splitList(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}
	if n < 0 {
		return fmt.Errorf("%s must not be negative", key)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%s must be true or false: %w", key, err)
	}
	*dst = b
	return nil
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks enumerated fields.
func Validate(cfg Config) error {
	switch cfg.FailOn {
	case FailOnNone, FailOnFindings, FailOnUnmatched:
	default:
		return fmt.Errorf("invalid failOn %q: want none, findings or unmatched", cfg.FailOn)
	}
	switch cfg.Theme {
	case "auto", "none":
	default:
		return fmt.Errorf("invalid theme %q: want auto or none", cfg.Theme)
	}
	if cfg.Provider == "" {
		return fmt.Errorf("provider must not be empty")
	}
	return nil
}
