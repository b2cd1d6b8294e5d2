package declaration

import (
	"github.com/goliatone/go-acfgen/pkg/location"
)

// Document is the on-disk shape of a declaration file.
type Document struct {
	Groups []GroupConfig `json:"groups" yaml:"groups"`
}

// GroupConfig declares a single field group.
type GroupConfig struct {
	ID         string         `json:"id" yaml:"id"`
	Title      string         `json:"title" yaml:"title"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	// LocationRules are AND-ed into the first location.
	LocationRules []location.Rule `json:"location_rules,omitempty" yaml:"location_rules,omitempty"`
	// Locations are additional OR-ed locations.
	Locations [][]location.Rule `json:"locations,omitempty" yaml:"locations,omitempty"`
	Fields    []map[string]any  `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Store keeps the groups parsed from declaration files. It is safe for
// concurrent readers when treated as immutable after construction.
type Store struct {
	order   []string
	configs map[string]GroupConfig
	sources map[string]string
}

// Groups returns the declared groups in load order.
func (s *Store) Groups() []GroupConfig {
	if s == nil {
		return nil
	}
	out := make([]GroupConfig, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.configs[id])
	}
	return out
}

// Group returns the configuration for the supplied group id.
func (s *Store) Group(id string) (GroupConfig, bool) {
	if s == nil {
		return GroupConfig{}, false
	}
	cfg, ok := s.configs[id]
	return cfg, ok
}

// Source returns the file a group was declared in.
func (s *Store) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[id]
}

// Empty reports whether the store holds any groups.
func (s *Store) Empty() bool {
	return s == nil || len(s.order) == 0
}
