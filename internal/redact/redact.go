package redact

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Placeholder replaces every detected secret.
const Placeholder = "[REDACTED]"

type pattern struct {
	name string
	re   *regexp.Regexp
}

// patterns run in order; provider-specific shapes come before the generic
// assignment heuristics so a key is counted once.
var patterns = []pattern{
	{"private-key", regexp.MustCompile(`-----BEGIN\s+(?:RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`)},
	{"google-api-key", regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)},
	{"anthropic-key", regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`)},
	{"openai-key", regexp.MustCompile(`sk-(?:proj-)?[A-Za-z0-9]{20,}`)},
	{"aws-access-key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"aws-secret-key", regexp.MustCompile(`(?i)aws[_-]?secret[_-]?access[_-]?key\s*[:=]\s*["']?[A-Za-z0-9/+=]{40}["']?`)},
	{"github-token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`)},
	{"slack-token", regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`)},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`)},
	{"bearer", regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`)},
	{"api-key-assignment", regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?[A-Za-z0-9/+=_-]{20,}["']?`)},
	{"secret-assignment", regexp.MustCompile(`(?i)(?:secret|token|password|passwd|credential)\s*[:=]\s*["'][^"'\n]{8,}["']`)},
	{"hex-secret", regexp.MustCompile(`(?i)(?:key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`)},
}

// Secrets replaces detected secrets in text with Placeholder and returns the
// number of replacements.
func Secrets(text string) (string, int) {
	count := 0
	for _, p := range patterns {
		text = p.re.ReplaceAllStringFunc(text, func(match string) string {
			if match == Placeholder {
				return match
			}
			count++
			return Placeholder
		})
	}
	return text, count
}

// Contains reports whether s carries a redaction placeholder.
func Contains(s string) bool {
	return strings.Contains(s, Placeholder)
}

// ShouldRedactPath reports whether path matches any of the glob patterns.
// A leading "**/" matches at any depth; a trailing "/**" matches everything
// under a directory.
func ShouldRedactPath(path string, globs []string) bool {
	path = filepath.ToSlash(path)
	for _, g := range globs {
		if matchGlob(g, path) {
			return true
		}
	}
	return false
}

func matchGlob(glob, path string) bool {
	if ok, err := filepath.Match(glob, path); err == nil && ok {
		return true
	}
	if dir, found := strings.CutSuffix(glob, "/**"); found {
		if strings.HasPrefix(path, dir+"/") || strings.Contains(path, "/"+dir+"/") {
			return true
		}
	}
	if rest, found := strings.CutPrefix(glob, "**/"); found {
		segs := strings.Split(path, "/")
		for i := range segs {
			if matchGlob(rest, strings.Join(segs[i:], "/")) {
				return true
			}
		}
	}
	return false
}
