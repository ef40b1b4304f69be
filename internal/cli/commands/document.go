package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mozaik-cms/mozaik/internal/cli/ui"
	"github.com/mozaik-cms/mozaik/internal/mozaik"
)

// readInput decodes a YAML or JSON object from path
func readInput(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	var input map[string]interface{}
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	if len(input) == 0 {
		return nil, fmt.Errorf("%s holds no fields", path)
	}
	return input, nil
}

func newDocumentCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Create and publish documents",
	}
	cmd.AddCommand(newDocumentCreateCommand(a))
	cmd.AddCommand(newDocumentPublishCommand(a))
	return cmd
}

func newDocumentCreateCommand(a *app) *cobra.Command {
	var publish bool

	cmd := &cobra.Command{
		Use:     "create <file>",
		Short:   "Create a document from a YAML or JSON DocumentInput",
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			backend, err := a.backend(cmd)
			if err != nil {
				return err
			}

			id, err := backend.CreateDocument(cmd.Context(), mozaik.Document(input))
			if err != nil {
				return a.reportBackendError(cmd, "document create", err)
			}
			w := cmd.OutOrStdout()
			ui.WriteSuccess(w, "Document created: "+id, a.noColor)

			if publish {
				if _, err := backend.PublishDocument(cmd.Context(), id); err != nil {
					return a.reportBackendError(cmd, "document publish", err)
				}
				ui.WriteSuccess(w, "Document published: "+id, a.noColor)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the document once created")
	return cmd
}

func newDocumentPublishCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "publish <document-id>",
		Short:   "Publish a document",
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.backend(cmd)
			if err != nil {
				return err
			}
			id, err := backend.PublishDocument(cmd.Context(), args[0])
			if err != nil {
				return a.reportBackendError(cmd, "document publish", err)
			}
			ui.WriteSuccess(cmd.OutOrStdout(), "Document published: "+id, a.noColor)
			return nil
		},
	}
}

func newAssetCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Register assets",
	}
	cmd.AddCommand(&cobra.Command{
		Use:     "create <file>",
		Short:   "Create an asset from a YAML or JSON AssetInput",
		Args:    cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args[0])
			if err != nil {
				return err
			}
			backend, err := a.backend(cmd)
			if err != nil {
				return err
			}
			id, err := backend.CreateAsset(cmd.Context(), mozaik.Asset(input))
			if err != nil {
				return a.reportBackendError(cmd, "asset create", err)
			}
			ui.WriteSuccess(cmd.OutOrStdout(), "Asset created: "+id, a.noColor)
			return nil
		},
	})
	return cmd
}
