package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozaik-cms/mozaik/internal/apply"
	"github.com/mozaik-cms/mozaik/internal/cli/ui"
)

func newPlanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the steps `mozaik create` would run",
		Long: `Compile the schema and print the ordered creation steps.

Content types are created first, without fields, in dependency order. Fields
and their validations follow, so types that reference each other can always
be created.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.compile(cmd)
			if err != nil {
				return err
			}

			plan := apply.NewPlan(out.ContentTypes)
			w := cmd.OutOrStdout()

			table := ui.NewTable(w, []string{"#", "STEP", "KIND", "REFERENCED BY"}, a.noColor)
			for i, step := range plan.Steps {
				var referencedBy string
				if step.Kind == apply.StepCreateContentType {
					referencedBy = strings.Join(plan.ReferencedBy(step.ContentType), ", ")
				}
				table.AddRow(strconv.Itoa(i+1), step.String(), string(step.Kind), referencedBy)
			}
			table.Render()

			counts := plan.Count()
			fmt.Fprintf(w, "\n%d step(s): %d content type(s), %d field(s), %d validation(s)\n",
				len(plan.Steps),
				counts[apply.StepCreateContentType],
				counts[apply.StepCreateField],
				counts[apply.StepCreateFieldValidation],
			)

			for _, cycle := range plan.Cycles {
				fmt.Fprintln(w, ui.Info("Reference cycle: "+strings.Join(cycle, " -> "), a.noColor))
			}
			return nil
		},
	}
}
