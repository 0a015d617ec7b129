package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/easyfetch/packages/core/config"
	"github.com/abdul-hamid-achik/easyfetch/packages/core/vars"
	"github.com/abdul-hamid-achik/easyfetch/packages/fetch"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	watchFlag bool
	varFlags  []string
)

var runCmd = &cobra.Command{
	Use:   "run <file>...",
	Short: "Send requests described in YAML or JSON files",
	Long: `Send the request described in each file, one after another.

A request file holds url, method, headers, body and contentType. A
structured body is encoded as JSON before it is sent. String values may
use {{$ENV_VAR}}, {{name}} (set with --var name=value) and functions
such as {{uuid()}}, {{now()}} or {{base64("user:pass")}}.

Examples:
  easyfetch run create-user.yaml
  easyfetch run health.json users.yaml -o json
  easyfetch run get-user.yaml --var id=42
  easyfetch run create-user.yaml --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

func init() {
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-send")
	runCmd.Flags().StringArrayVar(&varFlags, "var", nil, "Set a {{name}} variable as name=value (repeatable)")
	addInspectFlags(runCmd)
}

// isRequestFile checks if a file has a supported request file extension
func isRequestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// loadRequestFile reads a request description from a YAML or JSON file.
func loadRequestFile(path string) (fetch.Config, error) {
	var cfg fetch.Config
	if !isRequestFile(path) {
		return cfg, fmt.Errorf("%s: unsupported file type (use .json, .yaml or .yml)", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if err := config.Unmarshal(path, data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

func runCommand(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	variables, err := vars.ParseAssignments(varFlags)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}
	expander := vars.New(
		vars.WithVariables(variables),
		vars.WithWarnFunc(func(format string, a ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", a...)
		}),
	)

	runErr := runFiles(cmd, settings, expander, args)
	if !watchFlag {
		return runErr
	}
	if runErr != nil && !isReported(runErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", runErr)
	}

	return watchFiles(cmd, settings, expander, args)
}

// runFiles sends every file in order. The error of the last failing file is
// returned so its exit code wins.
func runFiles(cmd *cobra.Command, settings *config.Config, expander *vars.Expander, files []string) error {
	var lastErr error
	for _, file := range files {
		err := runFile(cmd, settings, expander, file)
		if err == nil {
			continue
		}
		// Later files would hide this one, so print it now.
		if len(files) > 1 && !isReported(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			err = reported(exitCode(err), err)
		}
		lastErr = err
	}
	return lastErr
}

func runFile(cmd *cobra.Command, settings *config.Config, expander *vars.Expander, file string) error {
	cfg, err := loadRequestFile(file)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}
	return executeRequest(cmd, settings, cfg.Expand(expander))
}

// watchFiles re-sends a file each time it is written until the command's
// context is cancelled.
func watchFiles(cmd *cobra.Command, settings *config.Config, expander *vars.Expander, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files instead of writing them, so watch the
	// directories and filter by name.
	watched := make(map[string]bool)
	targets := make(map[string]string)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		targets[abs] = file

		dir := filepath.Dir(abs)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	debounce := time.NewTimer(WatchDebounceDelay)
	debounce.Stop()
	pending := make(map[string]bool)

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if file, ok := targets[abs]; ok {
				pending[file] = true
				debounce.Reset(WatchDebounceDelay)
			}

		case <-debounce.C:
			for _, file := range files {
				if !pending[file] {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nFile changed: %s\n", file)
				if err := runFile(cmd, settings, expander, file); err != nil && !isReported(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			}
			clear(pending)
			fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}
