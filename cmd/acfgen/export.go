package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-acfgen/pkg/orchestrator"
	"github.com/goliatone/go-acfgen/pkg/sanitize"
)

type exportFlags struct {
	format   string
	out      string
	combined string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format (json|php)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "output directory")
	cmd.Flags().StringVar(&f.combined, "combined", "", "write every PHP group into this file")
}

func (e *env) orchestrator() *orchestrator.Orchestrator {
	var s *sanitize.Sanitizer
	if e.cfg.Sanitize {
		s = sanitize.New(nil)
	}
	return orchestrator.New(
		orchestrator.WithOutputFS(e.fs),
		orchestrator.WithLogger(e.logger),
		orchestrator.WithSanitizer(s),
		orchestrator.WithFieldDefaults(e.cfg.FieldDefaults),
		orchestrator.WithGroupDefaults(e.cfg.GroupDefaults),
	)
}

func (e *env) request(f exportFlags) orchestrator.Request {
	req := orchestrator.Request{
		Declarations: afero.NewIOFS(afero.NewBasePathFs(e.fs, e.cfg.Declarations.Dir)),
		Patterns:     e.cfg.Declarations.Patterns,
		OutputDir:    e.cfg.Export.Dir,
		Format:       e.cfg.Export.Format,
		Combined:     e.cfg.Export.Combined,
		Modified:     e.cfg.Export.Modified,
	}
	if f.format != "" {
		req.Format = f.format
	}
	if f.out != "" {
		req.OutputDir = f.out
	}
	if f.combined != "" {
		req.Combined = f.combined
	}
	return req
}

func newExportCmd(e *env) *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write declared field groups as ACF local JSON or PHP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := e.orchestrator().Export(cmd.Context(), e.request(flags))
			if err != nil {
				return err
			}
			for _, file := range res.Files {
				fmt.Fprintln(cmd.OutOrStdout(), file)
			}
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newWatchCmd(e *env) *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-export field groups whenever declarations change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			e.logger.Info().Str("dir", e.cfg.Declarations.Dir).Msg("watching declarations")
			return e.orchestrator().Watch(ctx, e.cfg.Declarations.Dir, e.request(flags), 0, func(res orchestrator.Result, err error) {
				if err != nil {
					e.logger.Error().Err(err).Msg("export failed")
					return
				}
				for _, file := range res.Files {
					fmt.Fprintln(cmd.OutOrStdout(), file)
				}
			})
		},
	}
	flags.register(cmd)
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
