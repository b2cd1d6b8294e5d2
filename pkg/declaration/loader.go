// Package declaration loads field group declarations from YAML, JSON or
// JSON-with-comments files and turns them into group builders.
package declaration

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DefaultPattern matches every declaration file under the filesystem root.
const DefaultPattern = "**/*.{yaml,yml,json,jsonc}"

// LoadFS parses declaration files matching patterns (DefaultPattern when
// none are given). Files are read in lexical order; a group id declared twice
// is an error. A nil filesystem yields an empty store.
func LoadFS(fsys fs.FS, patterns ...string) (*Store, error) {
	store := &Store{
		configs: make(map[string]GroupConfig),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}

	paths, err := matchFiles(fsys, patterns)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("declaration: read %s: %w", path, err)
		}
		doc, err := Parse(data, path)
		if err != nil {
			return nil, err
		}

		for idx, cfg := range doc.Groups {
			id := strings.TrimSpace(cfg.ID)
			if id == "" {
				return nil, fmt.Errorf("declaration: file %s group %d has an empty id", path, idx)
			}
			if prev, exists := store.sources[id]; exists {
				return nil, fmt.Errorf("declaration: duplicate group %q (files %s and %s)", id, prev, path)
			}
			cfg.ID = id
			store.configs[id] = cfg
			store.sources[id] = path
			store.order = append(store.order, id)
		}
	}

	return store, nil
}

// Parse decodes a single declaration document. JSON (comments and trailing
// commas allowed) is tried first, then YAML.
func Parse(data []byte, source string) (Document, error) {
	var doc Document
	if len(strings.TrimSpace(string(data))) == 0 {
		return Document{}, fmt.Errorf("declaration: file %s is empty", source)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err == nil {
		return doc, nil
	}

	doc = Document{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("declaration: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

// Marshal encodes a document as YAML.
func Marshal(doc Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("declaration: marshal: %w", err)
	}
	return data, nil
}

// IsDeclarationFile reports whether path matches any of the patterns.
func IsDeclarationFile(path string, patterns ...string) bool {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

func matchFiles(fsys fs.FS, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultPattern}
	}
	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range patterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		matches, err := doublestar.Glob(fsys, trimmed, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("declaration: match %q: %w", trimmed, err)
		}
		for _, match := range matches {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
