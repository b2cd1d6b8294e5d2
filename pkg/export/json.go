package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/goliatone/go-acfgen/pkg/host"
)

// ModifiedKey is the attribute ACF uses to detect local JSON changes.
const ModifiedKey = "modified"

// JSONOption configures a JSONWriter.
type JSONOption func(*JSONWriter)

// WithModified stamps every exported group with now().Unix() under
// ModifiedKey so ACF offers to sync it.
func WithModified(now func() time.Time) JSONOption {
	return func(w *JSONWriter) {
		w.now = now
	}
}

// WithIndent overrides the indentation used for JSON output.
func WithIndent(indent string) JSONOption {
	return func(w *JSONWriter) {
		w.indent = indent
	}
}

// JSONWriter writes each registered group to <dir>/<key>.json.
type JSONWriter struct {
	fs     afero.Fs
	dir    string
	now    func() time.Time
	indent string
}

var _ host.Registrar = (*JSONWriter)(nil)

// NewJSONWriter creates a writer targeting dir on fsys.
func NewJSONWriter(fsys afero.Fs, dir string, options ...JSONOption) *JSONWriter {
	w := &JSONWriter{
		fs:     fsys,
		dir:    dir,
		indent: "    ",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Path returns the file a group with the given key is written to.
func (w *JSONWriter) Path(key string) string {
	return filepath.Join(w.dir, key+".json")
}

// RegisterGroup writes the group arguments as JSON.
func (w *JSONWriter) RegisterGroup(ctx context.Context, args host.Arguments) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.fs == nil {
		return errors.New("export: json writer has no filesystem")
	}
	key := args.Key()
	if key == "" {
		return errors.New("export: group key is required")
	}

	payload := args.Clone()
	if w.now != nil {
		payload[ModifiedKey] = w.now().Unix()
	}
	data, err := json.MarshalIndent(payload, "", w.indent)
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", key, err)
	}
	data = append(data, '\n')

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", w.dir, err)
	}
	if err := afero.WriteFile(w.fs, w.Path(key), data, 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", w.Path(key), err)
	}
	return nil
}

// ReadJSON loads a previously exported group.
func ReadJSON(fsys afero.Fs, path string) (host.Arguments, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("export: read %s: %w", path, err)
	}
	var args host.Arguments
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", path, err)
	}
	return args, nil
}
