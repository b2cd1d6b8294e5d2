package orchestrator

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/goliatone/go-acfgen/pkg/declaration"
	"github.com/goliatone/go-acfgen/pkg/export"
	"github.com/goliatone/go-acfgen/pkg/field"
	"github.com/goliatone/go-acfgen/pkg/group"
	"github.com/goliatone/go-acfgen/pkg/helper"
	"github.com/goliatone/go-acfgen/pkg/host"
	"github.com/goliatone/go-acfgen/pkg/sanitize"
)

// Output formats.
const (
	FormatJSON = export.FormatJSON
	FormatPHP  = export.FormatPHP
)

// ErrUnknownFormat is returned for formats missing from the registry.
var ErrUnknownFormat = export.ErrUnknownFormat

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithOutputFS sets the filesystem generated files are written to.
func WithOutputFS(fsys afero.Fs) Option {
	return func(o *Orchestrator) {
		o.output = fsys
	}
}

// WithLogger sets the logger handed to the helper.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSanitizer cleans labels and instructions before export. Pass nil to
// disable sanitizing.
func WithSanitizer(s *sanitize.Sanitizer) Option {
	return func(o *Orchestrator) {
		o.sanitizer = s
	}
}

// WithFieldDefaults overrides field defaults for every exported group.
func WithFieldDefaults(values map[string]any) Option {
	return func(o *Orchestrator) {
		if len(values) > 0 {
			o.fieldFilters = append(o.fieldFilters, field.Override(values))
		}
	}
}

// WithGroupDefaults overrides group defaults for every exported group.
func WithGroupDefaults(values map[string]any) Option {
	return func(o *Orchestrator) {
		if len(values) > 0 {
			o.groupFilters = append(o.groupFilters, group.OverrideDefaults(values))
		}
	}
}

// WithRegistry replaces the output format registry.
func WithRegistry(registry *export.Registry) Option {
	return func(o *Orchestrator) {
		if registry != nil {
			o.registry = registry
		}
	}
}

// WithClock overrides the time source used for the modified stamp.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Request describes one export run.
type Request struct {
	// Declarations holds declaration files.
	Declarations fs.FS
	// Patterns selects declaration files, declaration.DefaultPattern if empty.
	Patterns []string
	// OutputDir is the directory on the output filesystem.
	OutputDir string
	// Format is FormatJSON or FormatPHP.
	Format string
	// Combined writes every PHP group into this single file.
	Combined string
	// Modified stamps JSON output so ACF offers to sync it.
	Modified bool
}

// Result reports what an export produced.
type Result struct {
	Groups []string
	Files  []string
}

// Orchestrator coordinates declaration loading, normalization and output.
type Orchestrator struct {
	output       afero.Fs
	registry     *export.Registry
	logger       zerolog.Logger
	sanitizer    *sanitize.Sanitizer
	fieldFilters []field.DefaultsFilter
	groupFilters []group.DefaultsFilter
	now          func() time.Time

	mu sync.Mutex
}

// New constructs an Orchestrator. Output goes to the OS filesystem and
// sanitizing is enabled unless options say otherwise.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		output:    afero.NewOsFs(),
		registry:  export.DefaultRegistry(),
		logger:    zerolog.Nop(),
		sanitizer: sanitize.New(nil),
		now:       time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	return o
}

// Export loads declarations and writes every group. Runs are serialized so
// a watcher never interleaves two exports into the same directory.
func (o *Orchestrator) Export(ctx context.Context, req Request) (Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	store, err := declaration.LoadFS(req.Declarations, req.Patterns...)
	if err != nil {
		return Result{}, err
	}
	if store.Empty() {
		o.logger.Warn().Msg("no field group declarations found")
		return Result{}, nil
	}

	writer, err := o.writer(req)
	if err != nil {
		return Result{}, err
	}

	var (
		result Result
		seen   = map[string]bool{}
	)
	collect := host.RegistrarFunc(func(ctx context.Context, args host.Arguments) error {
		if err := writer.RegisterGroup(ctx, args); err != nil {
			return err
		}
		result.Groups = append(result.Groups, args.Key())
		if file := writer.Path(args.Key()); !seen[file] {
			seen[file] = true
			result.Files = append(result.Files, file)
		}
		return nil
	})

	options := []helper.Option{
		helper.WithHost(collect),
		helper.WithLogger(o.logger),
		helper.WithFieldDefaultsFilter(o.fieldFilters...),
		helper.WithGroupDefaultsFilter(o.groupFilters...),
	}
	if o.sanitizer != nil {
		options = append(options, helper.WithArgumentsFilter(o.sanitizer.Arguments))
	}

	h := helper.New(options...).Add(store.Build()...)
	if err := h.Initialize(ctx); err != nil {
		return result, err
	}

	o.logger.Info().
		Int("groups", len(result.Groups)).
		Str("format", req.Format).
		Str("dir", req.OutputDir).
		Msg("exported field groups")
	return result, nil
}

func (o *Orchestrator) writer(req Request) (export.Writer, error) {
	if strings.TrimSpace(req.OutputDir) == "" {
		return nil, errors.New("orchestrator: output directory is required")
	}
	format := req.Format
	if format == "" {
		format = FormatJSON
	}
	factory, err := o.registry.Get(format)
	if err != nil {
		return nil, err
	}
	settings := export.Settings{Combined: req.Combined}
	if req.Modified {
		settings.Modified = o.now
	}
	return factory(o.output, req.OutputDir, settings), nil
}
