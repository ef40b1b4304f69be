package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mozaik-cms/mozaik/internal/cli/ui"
)

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import the whole schema in one backend call",
		Long: `Compile the schema locally, then let the backend create it in a single
call. Unlike create, nothing is applied when the import fails.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.compile(cmd)
			if err != nil {
				return err
			}
			backend, err := a.backend(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			err = ui.WithSpinner(cmd.ErrOrStderr(), "Importing schema", a.noColor, func() error {
				_, err := backend.ImportSchema(cmd.Context(), out.Source)
				return err
			})
			if err != nil {
				return a.reportBackendError(cmd, "schema import", err)
			}

			ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("Schema import finished in %.3fs", time.Since(start).Seconds()), a.noColor)
			return nil
		},
	}
}
