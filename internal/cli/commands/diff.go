package commands

import (
	"github.com/spf13/cobra"

	"github.com/mozaik-cms/mozaik/internal/cli/ui"
	"github.com/mozaik-cms/mozaik/internal/schemadiff"
)

func newDiffCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show how the schema differs from the project",
		Long: `Compile the schema locally, then ask the backend which changes applying it
would make. Breaking changes are shown in red and dangerous ones in yellow.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, _, err := a.schemaChanges(cmd)
			if err != nil {
				return err
			}
			ui.NewDiffPrinter(cmd.OutOrStdout(), a.noColor).Print(diff)
			return nil
		},
	}
}

// schemaChanges compiles the schema and fetches its diff against the project
func (a *app) schemaChanges(cmd *cobra.Command) (*schemadiff.Result, string, error) {
	out, err := a.compile(cmd)
	if err != nil {
		return nil, "", err
	}
	backend, err := a.backend(cmd)
	if err != nil {
		return nil, "", err
	}

	var diff *schemadiff.Result
	err = ui.WithSpinner(cmd.ErrOrStderr(), "Fetching schema changes", a.noColor, func() error {
		var err error
		diff, err = backend.SchemaChanges(cmd.Context(), out.Source)
		return err
	})
	if err != nil {
		return nil, "", a.reportBackendError(cmd, "schema diff", err)
	}
	return diff, out.Source, nil
}
