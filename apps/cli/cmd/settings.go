package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/abdul-hamid-achik/easyfetch/packages/core/config"
	"github.com/abdul-hamid-achik/easyfetch/packages/output"
	"github.com/spf13/cobra"
)

var (
	configFlag    string
	envFileFlag   []string
	timeoutFlag   string
	userAgentFlag string
	outputFlag    string
	noColorFlag   bool
	verboseFlag   int // 0=off, 1=-v, 2=-vv
)

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// loadSettings layers defaults, the config file, EASYFETCH_* variables
// (after .env files are loaded) and explicitly set flags, in that order.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(envFileFlag...); err != nil {
		return nil, err
	}

	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}

	envConfig, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	flags := &config.Config{}
	if cmd.Flags().Changed("timeout") {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid timeout value %q (use format like 5s, 500ms)", timeoutFlag)
		}
		flags.Timeout = int(d.Milliseconds())
	}
	if cmd.Flags().Changed("user-agent") {
		flags.UserAgent = userAgentFlag
	}
	if cmd.Flags().Changed("output") {
		flags.Output = outputFlag
	}
	if cmd.Flags().Changed("no-color") {
		flags.NoColor = config.BoolPtr(noColorFlag)
	}
	if verboseFlag > 0 {
		flags.Verbose = config.BoolPtr(true)
	}

	return fileConfig.Merge(envConfig).Merge(flags), nil
}

// newLogger returns the structured logger handed to the fetcher. Without -v
// only errors are logged so the formatter output stays clean.
func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelError
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newFormatter(cmd *cobra.Command, settings *config.Config) (output.Formatter, error) {
	return output.New(settings.Output, cmd.OutOrStdout(), settings.GetNoColor(), settings.GetVerbose())
}
