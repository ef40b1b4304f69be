package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mozaik-cms/mozaik/internal/cli/ui"
	"github.com/mozaik-cms/mozaik/internal/mozaik"
)

func newResetCommand(a *app) *cobra.Command {
	var (
		contentTypes, documents, assets bool
		projectID                       string
		force                           bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the content types, documents or assets of the project",
		Long: `Empty the project so that mozaik create can start from scratch.

Choose what to delete with --content-types, --documents and --assets. The
project is taken from --project, then project_id in mozaik.yaml, then the
access token. You are asked to confirm unless --force is given.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			var types []mozaik.ResetType
			if contentTypes {
				types = append(types, mozaik.ResetContentTypes)
			}
			if documents {
				types = append(types, mozaik.ResetDocuments)
			}
			if assets {
				types = append(types, mozaik.ResetAssets)
			}
			if len(types) == 0 {
				return errors.New("nothing to reset, pass --content-types, --documents or --assets")
			}

			backend, err := a.backend(cmd)
			if err != nil {
				return err
			}

			if projectID == "" {
				projectID = a.cfg.ProjectID
			}
			if projectID == "" {
				if projectID, err = backend.ProjectID(cmd.Context()); err != nil {
					return a.reportBackendError(cmd, "project lookup", err)
				}
			}

			w := cmd.OutOrStdout()
			if !force {
				ok, err := a.opts.Reset.ConfirmReset(cmd.Context(), projectID, types)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(w, ui.Info("Project reset cancelled.", a.noColor))
					return nil
				}
			}

			for _, t := range types {
				a.logger.Debug("resetting project", zap.String("project_id", projectID), zap.String("reset_type", string(t)))
				err := ui.WithSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Resetting %s", t), a.noColor, func() error {
					return backend.ResetProject(cmd.Context(), projectID, t)
				})
				if err != nil {
					return a.reportBackendError(cmd, "project reset", err)
				}
			}

			ui.WriteSuccess(w, fmt.Sprintf("Project %s reset", projectID), a.noColor)
			return nil
		},
	}

	cmd.Flags().BoolVar(&contentTypes, "content-types", false, "Delete every content type")
	cmd.Flags().BoolVar(&documents, "documents", false, "Delete every document")
	cmd.Flags().BoolVar(&assets, "assets", false, "Delete every asset")
	cmd.Flags().StringVar(&projectID, "project", "", "Project id (default: project_id from the config or the token's project)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reset without asking for confirmation")
	return cmd
}
