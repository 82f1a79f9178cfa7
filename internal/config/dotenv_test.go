package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
)

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# comment
GOOGLE_API_KEY=AIzaFromFile
export OHMYFIX_TEST_QUOTED="hello world"
OHMYFIX_TEST_SINGLE='x # y'
OHMYFIX_TEST_INLINE=value # trailing comment
OHMYFIX_TEST_PRESET=from-file

`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GOOGLE_API_KEY", "")
	os.Unsetenv("GOOGLE_API_KEY")
	t.Setenv("OHMYFIX_TEST_PRESET", "from-env")
	for _, k := range []string{"OHMYFIX_TEST_QUOTED", "OHMYFIX_TEST_SINGLE", "OHMYFIX_TEST_INLINE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv error: %v", err)
	}

	want := map[string]string{
		"GOOGLE_API_KEY":      "AIzaFromFile",
		"OHMYFIX_TEST_QUOTED": "hello world",
		"OHMYFIX_TEST_SINGLE": "x # y",
		"OHMYFIX_TEST_INLINE": "value",
		"OHMYFIX_TEST_PRESET": "from-env",
	}
	for k, v := range want {
		if got := os.Getenv(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing file should not error: %v", err)
	}
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("NOT-VALID=1\n"), 0o644)

	err := LoadDotEnv(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("expected error naming %s, got %v", path, err)
	}
}

func TestWriteDotEnvKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	os.WriteFile(path, []byte("OTHER=1\nGOOGLE_API_KEY=old\n"), 0o644)

	if err := WriteDotEnvKey(path, "GOOGLE_API_KEY", "AInew"); err != nil {
		t.Fatalf("WriteDotEnvKey error: %v", err)
	}
	got, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if len(got) != 2 || got["OTHER"] != "1" || got["GOOGLE_API_KEY"] != "AInew" {
		t.Errorf("env = %v", got)
	}
	info, _ := os.Stat(path)
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestWriteDotEnvKey_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := WriteDotEnvKey(path, "GOOGLE_API_KEY", "AIx"); err != nil {
		t.Fatalf("WriteDotEnvKey error: %v", err)
	}
	got, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if got["GOOGLE_API_KEY"] != "AIx" {
		t.Errorf("GOOGLE_API_KEY = %q, want AIx", got["GOOGLE_API_KEY"])
	}
}
