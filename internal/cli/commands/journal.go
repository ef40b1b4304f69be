package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mozaik-cms/mozaik/internal/cli/ui"
	"github.com/mozaik-cms/mozaik/internal/journal"
)

func newJournalCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal [run-id]",
		Short: "Show recorded create runs",
		Long: `Without arguments list the most recent create runs. With a run id show
every step of that run, its outcome and the id the backend assigned.

Runs are only kept across invocations when journal.redis_addr is configured.`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.opts.NewJournal(cmd.Context(), a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			defer store.Close()

			w := cmd.OutOrStdout()
			if len(args) == 0 {
				runs, err := store.Runs(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(w, ui.Info("No runs recorded.", a.noColor))
					return nil
				}
				table := ui.NewTable(w, []string{"RUN", "STARTED"}, a.noColor)
				for _, r := range runs {
					table.AddRow(r.ID, r.Started.Local().Format(time.RFC3339))
				}
				table.Render()
				return nil
			}

			entries, err := store.Entries(cmd.Context(), args[0])
			if errors.Is(err, journal.ErrRunNotFound) {
				return fmt.Errorf("run %s not found", args[0])
			}
			if err != nil {
				return err
			}

			table := ui.NewTable(w, []string{"#", "STATUS", "STEP", "REMOTE ID", "ERROR"}, a.noColor)
			for _, e := range entries {
				table.AddRow(strconv.Itoa(e.Seq+1), string(e.Status), e.Step, e.RemoteID, e.Error)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list")
	return cmd
}
