package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-acfgen/internal/config"
	"github.com/goliatone/go-acfgen/internal/prompt"
	"github.com/goliatone/go-acfgen/pkg/declaration"
)

const defaultConfigFile = "acfgen.yaml"

func newInitCmd(e *env) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively scaffold a field group declaration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			group, err := prompt.Scaffold(commandContext(cmd), e.prompt)
			if err != nil {
				return err
			}

			data, err := declaration.Marshal(declaration.Document{Groups: []declaration.GroupConfig{group}})
			if err != nil {
				return err
			}
			path := filepath.Join(e.cfg.Declarations.Dir, group.ID+".yaml")
			if err := writeNew(e.fs, path, data, force); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)

			if ok, _ := afero.Exists(e.fs, defaultConfigFile); !ok {
				if err := config.Save(e.fs, defaultConfigFile, e.cfg); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), defaultConfigFile)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing declaration")
	return cmd
}

func writeNew(fs afero.Fs, path string, data []byte, force bool) error {
	if !force {
		if ok, _ := afero.Exists(fs, path); ok {
			return errors.New("acfgen: " + path + " exists, use --force to overwrite")
		}
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("acfgen: mkdir: %w", err)
	}
	return afero.WriteFile(fs, path, data, 0o644)
}
