package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "easyfetch",
	Short: "One HTTP request, one normalized result.",
	Long: `easyfetch sends a single HTTP or HTTPS request and reports either
{status, data, time} on success or {status: "error", error, statusCode}
on failure. Timeouts, refused connections and unknown hosts are all
reported in the same shape.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !isReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("EASYFETCH_CONFIG", ""), "Path to config file (env: EASYFETCH_CONFIG)")
	rootCmd.PersistentFlags().StringSliceVar(&envFileFlag, "env-file", nil, "Load variables from .env files (default .env)")
	rootCmd.PersistentFlags().StringVar(&timeoutFlag, "timeout", "5s", "Request timeout (e.g., 5s, 500ms) (env: EASYFETCH_TIMEOUT in ms)")
	rootCmd.PersistentFlags().StringVar(&userAgentFlag, "user-agent", "", "User-Agent header value")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "console", "Output format: console, json (env: EASYFETCH_OUTPUT)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output (env: EASYFETCH_NO_COLOR)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v logs outcomes, -vv logs everything)")

	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
