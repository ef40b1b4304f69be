package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mozaik-cms/mozaik/internal/apply"
	"github.com/mozaik-cms/mozaik/internal/cli/ui"
	"github.com/mozaik-cms/mozaik/internal/journal"
)

func newCreateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the schema in an empty project",
		Long: `Compile the schema and create every content type, field and validation
one call at a time.

The run stops at the first failing step. Steps already applied are kept;
each outcome is recorded in the journal under the run id printed at the end.`,
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

			store, err := a.opts.NewJournal(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer store.Close()

			plan := apply.NewPlan(out.ContentTypes)
			w := cmd.OutOrStdout()
			progress := ui.NewStepProgress(w, len(plan.Steps), a.noColor, journal.NewRecorder(store, a.logger))
			executor := apply.NewExecutor(backend,
				apply.WithRecorder(progress),
				apply.WithLogger(a.logger.With(zap.String("schema_hash", out.Hash))),
			)

			report, err := executor.Execute(cmd.Context(), plan)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.ApplyError(err, report.RunID, report.Applied, a.noColor))
				if blocked := blockedBy(plan, err); len(blocked) > 0 {
					fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(blocked, nil, a.noColor))
				}
				return errReported
			}

			ui.WriteSuccess(w, fmt.Sprintf("Schema created in %.3fs (run %s)", report.Duration.Round(time.Millisecond).Seconds(), report.RunID), a.noColor)
			return nil
		},
	}
}

// blockedBy names the content types left without their reference fields
// when a content type step failed
func blockedBy(plan *apply.Plan, err error) string {
	var stepErr *apply.StepError
	if !errors.As(err, &stepErr) || stepErr.Step.Kind != apply.StepCreateContentType {
		return ""
	}
	blocked := plan.Blocked(stepErr.Step.ContentType)
	if len(blocked) == 0 {
		return ""
	}
	return fmt.Sprintf("%s was not created; fields of %s referencing it cannot be created either",
		stepErr.Step.ContentType, strings.Join(blocked, ", "))
}
