package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Provider != "gemini" {
		t.Errorf("Provider = %q, want %q", cfg.Provider, "gemini")
	}
	if cfg.Model != "gemini-1.5-flash" {
		t.Errorf("Model = %q, want %q", cfg.Model, "gemini-1.5-flash")
	}
	if cfg.FailOn != FailOnNone {
		t.Errorf("FailOn = %q, want %q", cfg.FailOn, FailOnNone)
	}
	if !cfg.Cache.Enabled || !cfg.Privacy.RedactSecrets || !cfg.PreserveIndent {
		t.Error("cache, redaction and indent preservation should default on")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Default config does not validate: %v", err)
	}
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("OHMYFIX_PROVIDER", "openai")
	t.Setenv("OHMYFIX_MODEL", "gpt-4o")
	t.Setenv("OHMYFIX_FAIL_ON", "unmatched")
	t.Setenv("OHMYFIX_MAX_FILES", "7")

	cfg := Default()
	if err := mergeEnv(&cfg); err != nil {
		t.Fatalf("mergeEnv error: %v", err)
	}
	if cfg.Provider != "openai" || cfg.Model != "gpt-4o" {
		t.Errorf("provider/model = %q/%q", cfg.Provider, cfg.Model)
	}
	if cfg.FailOn != "unmatched" {
		t.Errorf("FailOn = %q", cfg.FailOn)
	}
	if cfg.MaxFiles != 7 {
		t.Errorf("MaxFiles = %d, want 7", cfg.MaxFiles)
	}
}

func TestMergeEnv_InvalidInt(t *testing.T) {
	t.Setenv("OHMYFIX_MAX_FILE_BYTES", "lots")

	cfg := Default()
	if err := mergeEnv(&cfg); err == nil {
		t.Error("expected error for non-integer OHMYFIX_MAX_FILE_BYTES")
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	err := mergeOverrides(&cfg, map[string]string{
		"provider":       "anthropic",
		"format":         "json",
		"include":        "src/**, lib/**",
		"preserveIndent": "false",
		"model":          "",
	})
	if err != nil {
		t.Fatalf("mergeOverrides error: %v", err)
	}
	if cfg.Provider != "anthropic" || cfg.Format != "json" {
		t.Errorf("provider/format = %q/%q", cfg.Provider, cfg.Format)
	}
	if !slices.Equal(cfg.Include, []string{"src/**", "lib/**"}) {
		t.Errorf("Include = %v", cfg.Include)
	}
	if cfg.PreserveIndent {
		t.Error("PreserveIndent should be false")
	}
	if cfg.Model != Default().Model {
		t.Error("empty override should not change the model")
	}

	if err := mergeOverrides(&cfg, nil); err != nil {
		t.Errorf("nil overrides: %v", err)
	}
}

func TestSetField(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(Config) bool
	}{
		{"provider", "ollama", func(c Config) bool { return c.Provider == "ollama" }},
		{"maxFileBytes", "1024", func(c Config) bool { return c.MaxFileBytes == 1024 }},
		{"cache.enabled", "false", func(c Config) bool { return !c.Cache.Enabled }},
		{"cache.ttlSeconds", "60", func(c Config) bool { return c.Cache.TTLSeconds == 60 }},
		{"privacy.redactPaths", "*.pem", func(c Config) bool { return slices.Equal(c.Privacy.RedactPaths, []string{"*.pem"}) }},
		{"theme", "none", func(c Config) bool { return c.Theme == "none" }},
	}
	for _, tt := range tests {
		cfg := Default()
		if err := SetField(&cfg, tt.key, tt.value); err != nil {
			t.Errorf("SetField(%q) error: %v", tt.key, err)
			continue
		}
		if !tt.check(cfg) {
			t.Errorf("SetField(%q, %q) did not apply", tt.key, tt.value)
		}
	}
	for _, key := range Keys {
		cfg := Default()
		err := SetField(&cfg, key, "1")
		if err != nil && err.Error() == "unknown config key: "+key {
			t.Errorf("Keys lists %q but SetField rejects it", key)
		}
	}
}

func TestSetField_Errors(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "nonexistent", "value"); err == nil {
		t.Error("Expected error for unknown key")
	}
	if err := SetField(&cfg, "maxFiles", "abc"); err == nil {
		t.Error("Expected error for non-integer value")
	}
	if err := SetField(&cfg, "maxFiles", "-1"); err == nil {
		t.Error("Expected error for negative value")
	}
	if err := SetField(&cfg, "cache.enabled", "maybe"); err == nil {
		t.Error("Expected error for non-bool value")
	}
}

func TestMergeFile_BoolFields(t *testing.T) {
	f := false
	var src fileConfig
	src.Cache.Enabled = &f
	src.Privacy.RedactSecrets = &f

	dst := Default()
	mergeFile(&dst, src)
	if dst.Cache.Enabled || dst.Privacy.RedactSecrets {
		t.Error("explicit false in the file should win over defaults")
	}

	dst = Default()
	mergeFile(&dst, fileConfig{})
	if !dst.Cache.Enabled || !dst.Privacy.RedactSecrets {
		t.Error("absent keys should keep defaults")
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("OHMYFIX_FORMAT", "markdown")

	cfg := Default()
	cfg.Format = "json"
	cfg.Provider = "anthropic"
	cfg.Model = "claude-x"
	cfg.Cache.Enabled = false
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := Load(map[string]string{"model": "claude-y"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Provider != "anthropic" {
		t.Errorf("Provider = %q, want file value", got.Provider)
	}
	if got.Format != "markdown" {
		t.Errorf("Format = %q, want env value", got.Format)
	}
	if got.Model != "claude-y" {
		t.Errorf("Model = %q, want flag value", got.Model)
	}
	if got.Cache.Enabled {
		t.Error("Cache.Enabled = true, want file value false")
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("OHMYFIX_PROVIDER", "ollama")

	cfg := Default()
	cfg.MaxFiles = 3
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if got.MaxFiles != 3 {
		t.Errorf("MaxFiles = %d, want 3", got.MaxFiles)
	}
	if got.Provider != "gemini" {
		t.Errorf("Provider = %q, env should not leak into LoadFile", got.Provider)
	}
}

func TestLoad_ProviderSwitchPicksModel(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(map[string]string{"provider": "openai"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Model != DefaultModel("openai") {
		t.Errorf("Model = %q, want %q", cfg.Model, DefaultModel("openai"))
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := Load(map[string]string{"failOn": "high"}); err == nil {
		t.Error("expected validation error for failOn")
	}

	path, _ := ConfigPath()
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("{not json"), 0o644)
	if _, err := Load(nil); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "ohmyfix") {
		t.Errorf("ConfigDir = %q", dir)
	}
}
