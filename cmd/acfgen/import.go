package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-acfgen/pkg/declaration"
	"github.com/goliatone/go-acfgen/pkg/openapi"
)

func newImportOpenAPICmd(e *env) *cobra.Command {
	var (
		schemas  []string
		out      string
		readOnly bool
		force    bool
	)
	cmd := &cobra.Command{
		Use:   "import-openapi <document>",
		Short: "Create field group declarations from OpenAPI component schemas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			data, err := afero.ReadFile(e.fs, args[0])
			if err != nil {
				return fmt.Errorf("acfgen: read %s: %w", args[0], err)
			}
			doc, err := openapi.Load(ctx, data)
			if err != nil {
				return err
			}

			explicit := len(schemas) > 0
			if !explicit {
				schemas = openapi.SchemaNames(doc)
			}

			importer := openapi.NewImporter(openapi.WithReadOnly(readOnly))
			var document declaration.Document
			for _, name := range schemas {
				g, err := importer.Group(doc, name)
				if err != nil {
					if !explicit && errors.Is(err, openapi.ErrNotObject) {
						e.logger.Debug().Str("schema", name).Msg("skipping non-object schema")
						continue
					}
					return err
				}
				document.Groups = append(document.Groups, declaration.FromGroup(g))
			}
			if len(document.Groups) == 0 {
				return errors.New("acfgen: no object schemas to import")
			}

			payload, err := declaration.Marshal(document)
			if err != nil {
				return err
			}
			if out == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				out = filepath.Join(e.cfg.Declarations.Dir, base+".yaml")
			}
			if err := writeNew(e.fs, out, payload, force); err != nil {
				return err
			}
			e.logger.Info().Int("groups", len(document.Groups)).Str("file", out).Msg("imported schemas")
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&schemas, "schema", "s", nil, "component schemas to import (default all)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "declaration file to write")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "include readOnly properties")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing declaration")
	return cmd
}
