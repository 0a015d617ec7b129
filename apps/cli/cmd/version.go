package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/easyfetch/packages/http"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "easyfetch version %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "Built: %s\n", buildTime)
		fmt.Fprintf(cmd.OutOrStdout(), "User-Agent: %s\n", http.DefaultUserAgent)
	},
}
