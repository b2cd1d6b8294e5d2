package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-acfgen/internal/config"
	"github.com/goliatone/go-acfgen/internal/logging"
	"github.com/goliatone/go-acfgen/internal/prompt"
)

// Version is set at build time.
var Version = "dev"

// env carries process dependencies so commands run against an in-memory
// filesystem in tests.
type env struct {
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
	prompt prompt.Driver

	cfg    config.Config
	logger zerolog.Logger

	configured bool
}

func defaultEnv() *env {
	return &env{
		fs:     afero.NewOsFs(),
		stdout: os.Stdout,
		stderr: os.Stderr,
		prompt: prompt.NewSurveyDriver(),
		logger: zerolog.Nop(),
	}
}

func newRootCmd(e *env) *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "acfgen",
		Short: "Generate ACF field groups from declaration files",
		Long: `acfgen normalizes Advanced Custom Fields group declarations written in
YAML or JSON and exports them as ACF local JSON or PHP registration code.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(e.fs, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			e.cfg = cfg
			e.logger = logging.New(logging.Config{
				Level:  logging.ParseLevel(cfg.Log.Level),
				Output: e.stderr,
				Pretty: cfg.Log.Pretty,
			})
			e.configured = true
			return nil
		},
	}
	cmd.SetOut(e.stdout)
	cmd.SetErr(e.stderr)

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./acfgen.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	cmd.AddCommand(
		newExportCmd(e),
		newWatchCmd(e),
		newInitCmd(e),
		newImportOpenAPICmd(e),
	)
	return cmd
}
