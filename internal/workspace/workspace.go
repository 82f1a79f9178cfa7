package workspace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultMaxFileBytes is used when Options.MaxFileBytes is zero.
const DefaultMaxFileBytes = 256 << 10

// sniffLen is how much of a file is inspected for NUL bytes.
const sniffLen = 8000

// Options filters the files a Lister yields. Patterns are matched against
// slash-separated paths relative to the root.
type Options struct {
	Include      []string
	Exclude      []string
	MaxFileBytes int64
}

// Lister produces the candidate files under root. The sequence is finite and
// may only be ranged over once.
type Lister interface {
	Files(ctx context.Context, root string) iter.Seq[string]
}

// NewLister returns a GitLister when root is inside a git work tree and a
// DirLister otherwise.
func NewLister(root string, opts Options) Lister {
	if IsRepo(root) {
		return &GitLister{Options: opts}
	}
	return &DirLister{Options: opts}
}

// IsRepo reports whether root is inside a git work tree.
func IsRepo(root string) bool {
	out, err := gitOutput(context.Background(), root, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// GitLister lists files known to git: tracked files plus untracked files that
// are not ignored.
type GitLister struct {
	Options
}

func (l *GitLister) Files(ctx context.Context, root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		out, err := gitOutput(ctx, root, "ls-files", "-z", "--cached", "--others", "--exclude-standard")
		if err != nil {
			// Not usable as a repo after all; fall back to walking.
			(&DirLister{Options: l.Options}).Files(ctx, root)(yield)
			return
		}
		seen := make(map[string]bool)
		for _, rel := range strings.Split(out, "\x00") {
			if rel == "" || seen[rel] || ctx.Err() != nil {
				continue
			}
			seen[rel] = true
			if skipDirPath(rel) {
				continue
			}
			path := filepath.Join(root, filepath.FromSlash(rel))
			info, err := os.Stat(path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if !l.accept(rel, path, info.Size()) {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

// DirLister walks the file system under root.
type DirLister struct {
	Options
}

func (l *DirLister) Files(ctx context.Context, root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil || rel == "." {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if shouldSkipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if !l.accept(rel, path, info.Size()) {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
}

func shouldSkipDir(name string) bool {
	return skipDirs[name] || (strings.HasPrefix(name, ".") && name != ".")
}

// skipDirPath applies the directory rules to a file path from git.
func skipDirPath(rel string) bool {
	parts := strings.Split(rel, "/")
	for _, dir := range parts[:len(parts)-1] {
		if shouldSkipDir(dir) {
			return true
		}
	}
	return false
}

func (o Options) accept(rel, path string, size int64) bool {
	if strings.HasPrefix(filepath.Base(rel), ".") {
		return false
	}
	if len(o.Include) > 0 && !MatchesAny(rel, o.Include) {
		return false
	}
	if len(o.Exclude) > 0 && MatchesAny(rel, o.Exclude) {
		return false
	}
	limit := o.MaxFileBytes
	if limit <= 0 {
		limit = DefaultMaxFileBytes
	}
	if size == 0 || size > limit {
		return false
	}
	if hasBinaryExt(rel) {
		return false
	}
	binary, err := IsBinary(path)
	return err == nil && !binary
}

// MatchesAny returns true if the path matches any of the given glob patterns.
// A leading "**/" matches at any depth.
func MatchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		matched, err := filepath.Match(pattern, path)
		if err == nil && matched {
			return true
		}
		clean := strings.TrimPrefix(pattern, "**/")
		if clean != pattern {
			matched, err = filepath.Match(clean, filepath.Base(path))
			if err == nil && matched {
				return true
			}
			matched, err = filepath.Match(clean, path)
			if err == nil && matched {
				return true
			}
		}
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok && strings.HasPrefix(path, dir+"/") {
			return true
		}
	}
	return false
}

// IsBinary reports whether the start of the file contains a NUL byte.
func IsBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, err
	}
	return bytes.IndexByte(buf[:n], 0) >= 0, nil
}

var binaryExts = map[string]bool{
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true, ".o": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".ico": true, ".webp": true,
	".pdf": true, ".zip": true, ".gz": true, ".tar": true, ".jar": true, ".wasm": true,
	".lock": true, ".sum": true,
}

func hasBinaryExt(path string) bool {
	if strings.HasSuffix(path, ".min.js") {
		return true
	}
	return binaryExts[strings.ToLower(filepath.Ext(path))]
}

func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}
