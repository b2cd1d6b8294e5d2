package export

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/spf13/afero"

	"github.com/goliatone/go-acfgen/pkg/host"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const phpTemplateName = "groups.php.tpl"

var (
	phpTemplateOnce sync.Once
	phpTemplate     *pongo2.Template
	phpTemplateErr  error
)

func loadPHPTemplate() (*pongo2.Template, error) {
	phpTemplateOnce.Do(func() {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			phpTemplateErr = fmt.Errorf("export: templates: %w", err)
			return
		}
		set := pongo2.NewSet("acfgen-export", pongo2.NewFSLoader(sub))
		phpTemplate, phpTemplateErr = set.FromFile(phpTemplateName)
		if phpTemplateErr != nil {
			phpTemplateErr = fmt.Errorf("export: parse %s: %w", phpTemplateName, phpTemplateErr)
		}
	})
	return phpTemplate, phpTemplateErr
}

// RenderPHP renders a PHP file registering the given groups. header, when
// set, names the declaration source in the file comment.
func RenderPHP(header string, groups ...host.Arguments) (string, error) {
	tpl, err := loadPHPTemplate()
	if err != nil {
		return "", err
	}

	items := make([]pongo2.Context, 0, len(groups))
	for _, args := range groups {
		literal, err := phpLiteral(args, 2)
		if err != nil {
			return "", fmt.Errorf("export: group %s: %w", args.Key(), err)
		}
		items = append(items, pongo2.Context{
			"key":       commentText(args.Key()),
			"title":     commentText(args.Title()),
			"arguments": literal,
		})
	}

	out, err := tpl.Execute(pongo2.Context{
		"header": commentText(header),
		"groups": items,
	})
	if err != nil {
		return "", fmt.Errorf("export: render php: %w", err)
	}
	return out, nil
}

// commentText flattens s onto one line so it cannot end the PHP comment it
// is written into.
func commentText(s string) string {
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '\n' || r == '\r'
	}), " ")
	s = strings.ReplaceAll(s, "?>", "? >")
	return strings.ReplaceAll(s, "*/", "* /")
}

// PHPOption configures a PHPWriter.
type PHPOption func(*PHPWriter)

// WithCombinedFile writes every group into a single file under the writer
// directory instead of one file per group.
func WithCombinedFile(name string) PHPOption {
	return func(w *PHPWriter) {
		w.combined = name
	}
}

// WithHeader names the declaration source in the generated file comment.
func WithHeader(source string) PHPOption {
	return func(w *PHPWriter) {
		w.header = source
	}
}

// PHPWriter renders registered groups as PHP registration code.
type PHPWriter struct {
	fs       afero.Fs
	dir      string
	combined string
	header   string

	mu     sync.Mutex
	groups []host.Arguments
}

var _ host.Registrar = (*PHPWriter)(nil)

// NewPHPWriter creates a writer targeting dir on fsys.
func NewPHPWriter(fsys afero.Fs, dir string, options ...PHPOption) *PHPWriter {
	w := &PHPWriter{fs: fsys, dir: dir}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w
}

// Path returns the file a group with the given key is written to.
func (w *PHPWriter) Path(key string) string {
	if w.combined != "" {
		return filepath.Join(w.dir, w.combined)
	}
	return filepath.Join(w.dir, key+".php")
}

// RegisterGroup renders the group. In combined mode the whole file is
// rewritten with every group registered so far.
func (w *PHPWriter) RegisterGroup(ctx context.Context, args host.Arguments) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.fs == nil {
		return errors.New("export: php writer has no filesystem")
	}
	key := args.Key()
	if key == "" {
		return errors.New("export: group key is required")
	}

	groups := []host.Arguments{args}
	if w.combined != "" {
		w.mu.Lock()
		w.groups = append(w.groups, args)
		groups = append([]host.Arguments(nil), w.groups...)
		w.mu.Unlock()
	}

	out, err := RenderPHP(w.header, groups...)
	if err != nil {
		return err
	}
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", w.dir, err)
	}
	if err := afero.WriteFile(w.fs, w.Path(key), []byte(out), 0o644); err != nil {
		return fmt.Errorf("export: write %s: %w", w.Path(key), err)
	}
	return nil
}
