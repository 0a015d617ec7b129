package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/easyfetch/packages/core/config"
	"github.com/spf13/cobra"
)

var forceInit bool

const exampleRequest = `# Send with: easyfetch run example.yaml
url: https://httpbin.org/post
method: POST
headers:
  X-Request-Source: easyfetch
body:
  name: Test Resource
  description: Created by easyfetch
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file and an example request",
	Long: `Create easyfetch files in the current directory.

This creates:
  - .easyfetch.yaml  - Configuration file with the default settings
  - example.yaml     - Example request file

Examples:
  easyfetch init
  easyfetch init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	return initProject(cmd, cwd, forceInit)
}

func initProject(cmd *cobra.Command, dir string, force bool) error {
	configFile := filepath.Join(dir, ".easyfetch.yaml")
	exampleFile := filepath.Join(dir, "example.yaml")

	if !force {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return withExitCode(ExitUsageError, fmt.Errorf("file already exists: %s (use --force to overwrite)", f))
			}
		}
	}

	if err := config.DefaultConfig().SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	if err := os.WriteFile(exampleFile, []byte(exampleRequest), 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\neasyfetch project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'easyfetch run example.yaml' to send the example request.\n")

	return nil
}
