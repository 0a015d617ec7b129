package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/easyfetch/packages/http"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check request files without sending them",
	Long: `Check request files for parse errors, unsupported methods, missing
URLs and bodies that cannot be encoded, without touching the network.

Examples:
  easyfetch validate create-user.yaml
  easyfetch validate *.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	client := http.NewClient(settings.ClientOptions()...)

	hasErrors := false
	for _, file := range args {
		if err := validateFile(client, file); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", file, err)
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
		}
	}

	if hasErrors {
		return reported(ExitValidationError, fmt.Errorf("validation failed"))
	}

	return nil
}

func validateFile(client *http.Client, file string) error {
	cfg, err := loadRequestFile(file)
	if err != nil {
		return err
	}
	req, err := cfg.RequestConfig()
	if err != nil {
		return err
	}
	return client.Validate(req)
}
