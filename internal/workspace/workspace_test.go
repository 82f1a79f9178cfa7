package workspace

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// setupTree creates a small project with files every lister must skip.
func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n")
	writeFile(t, root, "src/app.js", "console.log(1)\n")
	writeFile(t, root, "src/app_test.js", "test()\n")
	writeFile(t, root, "node_modules/dep/index.js", "module.exports = 1\n")
	writeFile(t, root, "vendor/lib.go", "package lib\n")
	writeFile(t, root, ".cache/x.txt", "cached\n")
	writeFile(t, root, "image.bin", "GIF89a\x00\x01\x02")
	writeFile(t, root, "logo.png", "not really a png\n")
	writeFile(t, root, "empty.txt", "")
	writeFile(t, root, "big.txt", strings.Repeat("x", 2048))
	return root
}

func collect(l Lister, root string) []string {
	var out []string
	for p := range l.Files(context.Background(), root) {
		rel, _ := filepath.Rel(root, p)
		out = append(out, filepath.ToSlash(rel))
	}
	slices.Sort(out)
	return out
}

func TestDirLister(t *testing.T) {
	root := setupTree(t)

	got := collect(&DirLister{Options: Options{MaxFileBytes: 1024}}, root)
	want := []string{"main.go", "src/app.js", "src/app_test.js"}
	if !slices.Equal(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestDirLister_IncludeExclude(t *testing.T) {
	root := setupTree(t)

	l := &DirLister{Options: Options{
		Include:      []string{"**/*.js"},
		Exclude:      []string{"**/*_test.js"},
		MaxFileBytes: 1024,
	}}
	got := collect(l, root)
	want := []string{"src/app.js"}
	if !slices.Equal(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestDirLister_StopsEarly(t *testing.T) {
	root := setupTree(t)

	n := 0
	for range (&DirLister{}).Files(context.Background(), root) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterated %d times, want 1", n)
	}
}

func TestDirLister_CancelledContext(t *testing.T) {
	root := setupTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for p := range (&DirLister{}).Files(ctx, root) {
		t.Errorf("unexpected file %s after cancel", p)
	}
}

func setupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	root := setupTree(t)

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = root
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test",
			"GIT_AUTHOR_EMAIL=test@test.com",
			"GIT_COMMITTER_NAME=test",
			"GIT_COMMITTER_EMAIL=test@test.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("command %v failed: %v\n%s", args, err, out)
		}
	}

	writeFile(t, root, ".gitignore", "ignored/\n")
	writeFile(t, root, "ignored/secret.txt", "hidden\n")
	run("git", "init")
	run("git", "add", "main.go", "src", ".gitignore")
	run("git", "commit", "-m", "init")
	writeFile(t, root, "untracked.py", "print(1)\n")
	return root
}

func TestGitLister(t *testing.T) {
	root := setupTestRepo(t)

	if !IsRepo(root) {
		t.Fatal("expected IsRepo to be true")
	}
	l := NewLister(root, Options{MaxFileBytes: 1024})
	if _, ok := l.(*GitLister); !ok {
		t.Fatalf("NewLister returned %T, want *GitLister", l)
	}

	got := collect(l, root)
	want := []string{"main.go", "src/app.js", "src/app_test.js", "untracked.py"}
	if !slices.Equal(got, want) {
		t.Errorf("Files = %v, want %v", got, want)
	}
}

func TestNewLister_NotRepo(t *testing.T) {
	root := t.TempDir()
	if _, ok := NewLister(root, Options{}).(*DirLister); !ok {
		t.Error("expected DirLister outside a repository")
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"main.go", []string{"*.go"}, true},
		{"src/main.go", []string{"*.go"}, false},
		{"src/main.go", []string{"**/*.go"}, true},
		{"src/deep/a.ts", []string{"src/**"}, true},
		{"other/a.ts", []string{"src/**"}, false},
		{"a.go", nil, false},
	}
	for _, tt := range tests {
		if got := MatchesAny(tt.path, tt.patterns); got != tt.want {
			t.Errorf("MatchesAny(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
}

func TestIsBinary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "hello\n")
	writeFile(t, root, "b.dat", "he\x00llo")

	if bin, err := IsBinary(filepath.Join(root, "a.txt")); err != nil || bin {
		t.Errorf("a.txt: binary=%v err=%v", bin, err)
	}
	if bin, err := IsBinary(filepath.Join(root, "b.dat")); err != nil || !bin {
		t.Errorf("b.dat: binary=%v err=%v", bin, err)
	}
	if _, err := IsBinary(filepath.Join(root, "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
