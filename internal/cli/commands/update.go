package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozaik-cms/mozaik/internal/apply"
	"github.com/mozaik-cms/mozaik/internal/cli/ui"
)

func newUpdateCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply schema changes to the project",
		Long: `Show the changes the schema would make, then apply them.

Schemas with breaking changes are never applied. Otherwise you are asked to
confirm by typing "yes", unless --force is given.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			diff, source, err := a.schemaChanges(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			ui.NewDiffPrinter(w, a.noColor).Print(diff)

			decision, err := apply.Gate(cmd.Context(), diff, force, a.opts.Confirmer)
			switch {
			case errors.Is(err, apply.ErrBreakingChange):
				return errReported
			case errors.Is(err, apply.ErrNotConfirmed):
				fmt.Fprintln(w, ui.Info("Schema update cancelled.", a.noColor))
				return nil
			case err != nil:
				return err
			case decision == apply.NothingToDo:
				return nil
			}

			backend, err := a.backend(cmd)
			if err != nil {
				return err
			}
			err = ui.WithSpinner(cmd.ErrOrStderr(), "Applying schema changes", a.noColor, func() error {
				_, err := backend.UpdateSchema(cmd.Context(), source, true)
				return err
			})
			if err != nil {
				return a.reportBackendError(cmd, "schema update", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Apply without asking for confirmation")
	return cmd
}
