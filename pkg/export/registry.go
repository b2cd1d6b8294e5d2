package export

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/go-acfgen/pkg/host"
)

// Built-in format names.
const (
	FormatJSON = "json"
	FormatPHP  = "php"
)

// ErrUnknownFormat is returned when no factory is registered for a format.
var ErrUnknownFormat = errors.New("export: unknown format")

// Writer is a host that persists groups and knows where each one lands.
type Writer interface {
	host.Registrar
	Path(key string) string
}

// Settings carries per-run writer settings. Formats ignore what they do not
// support.
type Settings struct {
	// Combined names a single output file for every group.
	Combined string
	// Modified stamps groups with the time it returns when set.
	Modified func() time.Time
	// Header names the declaration source in generated comments.
	Header string
}

// Factory creates a Writer targeting dir on fsys.
type Factory func(fsys afero.Fs, dir string, settings Settings) Writer

// Registry stores writer factories by format name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding the json and php formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(FormatJSON, func(fsys afero.Fs, dir string, s Settings) Writer {
		var options []JSONOption
		if s.Modified != nil {
			options = append(options, WithModified(s.Modified))
		}
		return NewJSONWriter(fsys, dir, options...)
	})
	r.MustRegister(FormatPHP, func(fsys afero.Fs, dir string, s Settings) Writer {
		options := []PHPOption{WithHeader(s.Header)}
		if s.Combined != "" {
			options = append(options, WithCombinedFile(s.Combined))
		}
		return NewPHPWriter(fsys, dir, options...)
	})
	return r
}

// Register adds a factory. Names are case-insensitive and must be unique.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return errors.New("export: format name is required")
	}
	if factory == nil {
		return fmt.Errorf("export: format %q has no factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("export: format %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Get retrieves a factory by name.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return factory, nil
}

// List returns the registered format names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
