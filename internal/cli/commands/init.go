package commands

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/mozaik-cms/mozaik/internal/cli/config"
	"github.com/mozaik-cms/mozaik/internal/cli/ui"
)

// exampleSchema is written by init; every declaration is commented out
const exampleSchema = `# An example
# type Author implements SimpleContentType {
#   name: SinglelineText @config(groupName: "personal", isTitle: true)
#   email: SinglelineText @config(groupName: "personal")
#   twitter: SinglelineText @config(groupName: "social")
# }

# type Category implements SimpleContentType {
#   name: String @config(isTitle: true)
#   subcategories: [Category]
# }

# type Post implements SimpleContentType {
#   title: String! @config(isTitle: true) @validation(minLength: 5, maxLength: 120)
#   body: RichText
#   postAuthor: Author
#   featuredImage: FeaturedImage
#   categories: [Category]
# }

# enum ColorEnum {
#   blue @config(label: "Blue")
#   lightRed @config(label: "Light red")
# }

# type FeaturedImage implements EmbeddableContentType {
#   url: String
#   title: String @config(isTitle: true)
#   background: ColorEnum
# }

# type Homepage implements SingletonContentType {
#   title: String @config(isTitle: true)
#   highlightedPost: [Post]
# }
`

func newInitCommand(a *app) *cobra.Command {
	var endpoint, token string
	var noInput bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an example schema and a config file",
		Long: `Create mozaik-schema.graphql with a commented example and mozaik.yaml with
the project's API endpoint and access token. Existing files are kept.

Examples:
  mozaik init
  mozaik init --endpoint https://api.mozaik.io/graphql --token $TOKEN`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			created := make([]string, 0, 2)

			if _, err := os.Stat(a.cfg.SchemaPath); errors.Is(err, os.ErrNotExist) {
				if err := os.WriteFile(a.cfg.SchemaPath, []byte(exampleSchema), 0o644); err != nil {
					return fmt.Errorf("writing schema: %w", err)
				}
				created = append(created, a.cfg.SchemaPath)
			}

			configPath := a.configPath
			if configPath == "" {
				configPath = a.cfg.File
			}
			if configPath == "" {
				configPath = config.FileName
			}

			if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
				if !noInput {
					if err := promptCredentials(&endpoint, &token); err != nil {
						return err
					}
				}

				cfg := *a.cfg
				if endpoint != "" {
					cfg.APIEndpoint = endpoint
				}
				if token != "" {
					cfg.AccessToken = token
				}
				if err := config.Write(configPath, cfg); err != nil {
					return err
				}
				created = append(created, configPath)
			}

			if len(created) == 0 {
				fmt.Fprintln(w, ui.Info("Nothing to do, the schema and config files already exist.", a.noColor))
				return nil
			}
			for _, path := range created {
				ui.WriteSuccess(w, "Created "+path, a.noColor)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Project API endpoint")
	cmd.Flags().StringVar(&token, "token", "", "Project access token")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Do not prompt for missing values")
	return cmd
}

// promptCredentials asks for the values not given as flags
func promptCredentials(endpoint, token *string) error {
	if *endpoint == "" {
		prompt := &survey.Input{
			Message: "Project API endpoint:",
			Help:    "Found on the project's settings page, e.g. https://api.mozaik.io/graphql",
		}
		if err := survey.AskOne(prompt, endpoint, survey.WithValidator(survey.ComposeValidators(survey.Required, validateEndpoint))); err != nil {
			return err
		}
	}
	if *token == "" {
		prompt := &survey.Password{
			Message: "Project access token:",
		}
		if err := survey.AskOne(prompt, token, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}
	return nil
}

func validateEndpoint(ans interface{}) error {
	s, _ := ans.(string)
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("the endpoint must be an absolute http(s) URL")
	}
	return nil
}
