package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mozaik-cms/mozaik/internal/cli/ui"
	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
	"github.com/mozaik-cms/mozaik/internal/watch"
)

func newCompileCommand(a *app) *cobra.Command {
	var output string
	var watchMode bool

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the schema and print the content type inputs",
		Long: `Compile the schema file without contacting the backend.

All schema errors are reported at once. On success the content type, field
and validation inputs are printed as JSON or YAML. With --watch the schema
is compiled again every time the file is saved.

Examples:
  mozaik compile
  mozaik compile --output yaml
  mozaik compile --watch`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "json" && output != "yaml" {
				return fmt.Errorf("unknown output format %q, expected json or yaml", output)
			}

			run := func() error {
				out, err := a.compile(cmd)
				if err != nil {
					return err
				}
				return writeInputs(cmd.OutOrStdout(), output, out.ContentTypes)
			}

			if !watchMode {
				return run()
			}

			report := func(err error) {
				if err != nil && !errors.Is(err, errReported) {
					fmt.Fprint(cmd.ErrOrStderr(), ui.Warning(err.Error(), nil, a.noColor))
				}
			}
			report(run())

			w, err := watch.New([]string{a.cfg.SchemaPath}, watch.DefaultDelay, a.logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Info(fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", a.cfg.SchemaPath), a.noColor))

			return w.Run(cmd.Context(), func(files []string) {
				a.logger.Debug("recompiling", zap.Strings("files", files))
				report(run())
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Compile again whenever the schema file changes")
	return cmd
}

// writeInputs encodes the compiled inputs in the given format
func writeInputs(w io.Writer, format string, inputs []ir.ContentTypeInput) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(inputs); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(inputs)
}
