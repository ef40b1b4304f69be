package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mozaik-cms/mozaik/internal/cli/ui"
)

func newExportCommand(a *app) *cobra.Command {
	var force, printOnly bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the project's schema",
		Long: `Download the project's schema into the schema file.

An existing schema file is only overwritten with --force. With --print the
schema is written to stdout instead.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.SchemaPath
			if !printOnly && !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists. Please delete the file or use --force to override it", path)
				}
			}

			backend, err := a.backend(cmd)
			if err != nil {
				return err
			}
			schema, err := backend.ExportSchema(cmd.Context())
			if err != nil {
				return a.reportBackendError(cmd, "schema export", err)
			}

			if printOnly {
				_, err := io.WriteString(cmd.OutOrStdout(), schema)
				return err
			}

			if err := os.WriteFile(path, []byte(schema), 0o644); err != nil {
				return fmt.Errorf("writing schema: %w", err)
			}
			ui.WriteSuccess(cmd.OutOrStdout(), "Schema exported to "+path, a.noColor)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing schema file")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Write the schema to stdout")
	return cmd
}
