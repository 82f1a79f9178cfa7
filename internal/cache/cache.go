package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Entry is one cached model reply.
type Entry struct {
	Key       string    `json:"key"`
	Provider  string    `json:"provider,omitempty"`
	Model     string    `json:"model,omitempty"`
	Response  string    `json:"response"`
	Tokens    int       `json:"tokens"`
	CreatedAt time.Time `json:"createdAt"`
}

// Cache is a directory of Entry files. A disabled Cache misses every lookup
// and drops every store.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// New creates a Cache rooted at dir, or at the default directory when dir
// is empty. ttlSeconds <= 0 means entries never expire.
func New(enabled bool, dir string, ttlSeconds int) (*Cache, error) {
	c := &Cache{
		enabled: enabled,
		ttl:     time.Duration(ttlSeconds) * time.Second,
		now:     time.Now,
	}
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	c.dir = dir
	if !enabled {
		return c, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return c, nil
}

// BuildKey derives the cache key for one review request.
func BuildKey(provider, model, promptVersion, content string) string {
	h := sha256.New()
	for _, part := range []string{provider, model, promptVersion, content} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Lookup returns the cached entry for key.
func (c *Cache) Lookup(key string) (Entry, bool) {
	if !c.enabled {
		return Entry{}, false
	}
	data, err := os.ReadFile(c.entryPath(key))
	if err != nil {
		return Entry{}, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false
	}
	if c.expired(entry) {
		return Entry{}, false
	}
	return entry, true
}

// Store writes entry under its key, stamping CreatedAt.
func (c *Cache) Store(entry Entry) error {
	if !c.enabled {
		return nil
	}
	if entry.Key == "" {
		return fmt.Errorf("cache entry has no key")
	}
	entry.CreatedAt = c.now()
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	tmp := c.entryPath(entry.Key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return os.Rename(tmp, c.entryPath(entry.Key))
}

// Clear removes every entry and reports how many were deleted.
func (c *Cache) Clear() (int, error) {
	names, err := c.entryNames()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, name := range names {
		if err := os.Remove(filepath.Join(c.dir, name)); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Stats describes the contents of the cache directory.
type Stats struct {
	Dir        string `json:"dir"`
	Enabled    bool   `json:"enabled"`
	Entries    int    `json:"entries"`
	TotalBytes int64  `json:"totalBytes"`
	Expired    int    `json:"expired"`
}

// Stats walks the cache directory.
func (c *Cache) Stats() (Stats, error) {
	stats := Stats{Dir: c.dir, Enabled: c.enabled}
	names, err := c.entryNames()
	if err != nil {
		return stats, err
	}
	for _, name := range names {
		path := filepath.Join(c.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalBytes += info.Size()

		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var entry Entry
		if json.Unmarshal(data, &entry) == nil && c.expired(entry) {
			stats.Expired++
		}
	}
	return stats, nil
}

// Dir returns the cache directory path.
func (c *Cache) Dir() string {
	return c.dir
}

// Enabled reports whether lookups and stores are active.
func (c *Cache) Enabled() bool {
	return c.enabled
}

func (c *Cache) expired(e Entry) bool {
	return c.ttl > 0 && c.now().Sub(e.CreatedAt) > c.ttl
}

func (c *Cache) entryNames() ([]string, error) {
	if c.dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cache directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (c *Cache) entryPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// DefaultDir returns the OS-appropriate cache directory.
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "ohmyfix"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "ohmyfix"), nil
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "ohmyfix", "cache"), nil
		}
		return filepath.Join(home, "AppData", "Local", "ohmyfix", "cache"), nil
	default:
		return filepath.Join(home, ".cache", "ohmyfix"), nil
	}
}
