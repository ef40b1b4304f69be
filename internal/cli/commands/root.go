package commands

import (
	"context"
	"errors"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mozaik-cms/mozaik/internal/cli/ui"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(Options{})
}

// NewRootCommandWithOptions creates the root command with replaced collaborators
func NewRootCommandWithOptions(opts Options) *cobra.Command {
	a := newApp(opts)

	rootCmd := &cobra.Command{
		Use:   "mozaik",
		Short: "Manage a Mozaik project's content model from a GraphQL schema",
		Long: `Mozaik CLI

Describe content types in a GraphQL schema file and keep the Mozaik project
in sync with it: compile and validate the schema locally, create it from
scratch, or diff and update an existing project.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: mozaik.yaml in the current directory or a parent)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log requests and steps to stderr")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newInitCommand(a))
	rootCmd.AddCommand(newCompileCommand(a))
	rootCmd.AddCommand(newPlanCommand(a))
	rootCmd.AddCommand(newCreateCommand(a))
	rootCmd.AddCommand(newDiffCommand(a))
	rootCmd.AddCommand(newUpdateCommand(a))
	rootCmd.AddCommand(newImportCommand(a))
	rootCmd.AddCommand(newExportCommand(a))
	rootCmd.AddCommand(newJournalCommand(a))
	rootCmd.AddCommand(newResetCommand(a))
	rootCmd.AddCommand(newDocumentCommand(a))
	rootCmd.AddCommand(newAssetCommand(a))
	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			table := ui.NewKeyValueTable(cmd.OutOrStdout(), color.NoColor)
			table.AddRow("Mozaik CLI version", Version)
			table.AddRow("Git commit", GitCommit)
			table.AddRow("Build date", BuildDate)
			table.AddRow("Go version", runtime.Version())
			table.Render()
		},
	}
}

// Execute runs the root command. Cancelling ctx stops an apply run before
// its next step.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
