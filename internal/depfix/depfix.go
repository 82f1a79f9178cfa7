// Package depfix finds packages a package.json pins differently in its
// runtime and development dependency sections.
package depfix

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Conflict is a package listed in both sections with different versions.
type Conflict struct {
	Name       string `json:"name"`
	Dependency string `json:"dependency"`
	DevVersion string `json:"devDependency"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("Conflict: %q - dependencies: %q, devDependencies: %q", c.Name, c.Dependency, c.DevVersion)
}

// Result is the outcome of Check.
type Result struct {
	Path      string     `json:"path"`
	Conflicts []Conflict `json:"conflicts"`
	// Empty is set when both sections are missing or empty.
	Empty bool `json:"empty"`
}

type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Check reads the package.json at path. Conflicts are sorted by name.
func Check(path string) (Result, error) {
	res := Result{Path: path, Conflicts: []Conflict{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", path, err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return res, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(m.Dependencies) == 0 && len(m.DevDependencies) == 0 {
		res.Empty = true
		return res, nil
	}
	for name, version := range m.Dependencies {
		dev, ok := m.DevDependencies[name]
		if ok && dev != version {
			res.Conflicts = append(res.Conflicts, Conflict{Name: name, Dependency: version, DevVersion: dev})
		}
	}
	sort.Slice(res.Conflicts, func(i, j int) bool {
		return res.Conflicts[i].Name < res.Conflicts[j].Name
	})
	return res, nil
}
