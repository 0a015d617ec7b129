package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/easyfetch/packages/capture"
	"github.com/abdul-hamid-achik/easyfetch/packages/core/config"
	"github.com/abdul-hamid-achik/easyfetch/packages/fetch"
	"github.com/abdul-hamid-achik/easyfetch/packages/http"
	"github.com/abdul-hamid-achik/easyfetch/packages/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var requestCmd = &cobra.Command{
	Use:     "request <url>",
	Aliases: []string{"req", "fetch"},
	Short:   "Send one HTTP request",
	Long: `Send one HTTP request and print the normalized result.

Examples:
  easyfetch request https://example.com
  easyfetch request http://localhost:3000/users -X POST --json -d '{"name": "ada"}'
  easyfetch request http://localhost:3000/users -H "Authorization: Bearer t" -o json
  easyfetch request http://localhost:3000/users/1 --query name
  easyfetch request http://localhost:3000/users/1 --schema user.schema.json`,
	Args: cobra.ExactArgs(1),
	RunE: requestCommand,
}

var (
	methodFlag      string
	headerFlags     []string
	dataFlag        string
	jsonFlag        bool
	contentTypeFlag string
	queryFlag       string
	schemaFlag      string
)

func init() {
	requestCmd.Flags().StringVarP(&methodFlag, "method", "X", http.DefaultMethod, "Request method: GET, POST, PUT, DELETE, PATCH")
	requestCmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, `Request header as "Key: Value" (repeatable)`)
	requestCmd.Flags().StringVarP(&dataFlag, "data", "d", "", "Request body")
	requestCmd.Flags().BoolVar(&jsonFlag, "json", false, "Parse --data as JSON and send it re-encoded")
	requestCmd.Flags().StringVar(&contentTypeFlag, "content-type", http.DefaultContentType, "Content-Type header value")
	addInspectFlags(requestCmd)

	_ = requestCmd.RegisterFlagCompletionFunc("method", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return http.DefaultMethods, cobra.ShellCompDirectiveNoFileComp
	})
}

func addInspectFlags(c *cobra.Command) {
	c.Flags().StringVar(&queryFlag, "query", "", "Print only this value from the response (gjson path, status, time, header.<name>)")
	c.Flags().StringVar(&schemaFlag, "schema", "", "Validate the response body against a JSON schema file")
}

func requestCommand(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return withExitCode(ExitConfigError, err)
	}

	headers, err := parseHeaders(headerFlags)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	cfg := fetch.Config{
		URL:         args[0],
		Method:      methodFlag,
		Headers:     headers,
		ContentType: contentTypeFlag,
	}

	if dataFlag != "" {
		cfg.Body = dataFlag
		if jsonFlag {
			var compacted bytes.Buffer
			if err := json.Compact(&compacted, []byte(dataFlag)); err != nil {
				return withExitCode(ExitUsageError, fmt.Errorf("--data is not valid JSON: %w", err))
			}
			cfg.Body = json.RawMessage(compacted.Bytes())
		}
	}

	return executeRequest(cmd, settings, cfg)
}

// executeRequest sends cfg and prints the outcome, honouring --query and --schema.
func executeRequest(cmd *cobra.Command, settings *config.Config, cfg fetch.Config) error {
	formatter, err := newFormatter(cmd, settings)
	if err != nil {
		return withExitCode(ExitUsageError, err)
	}

	opts := []fetch.Option{
		fetch.WithClient(http.NewClient(settings.ClientOptions()...)),
		fetch.WithLogger(newLogger(cmd.ErrOrStderr(), verboseFlag)),
	}
	// With --query only the extracted value is printed on success.
	if queryFlag == "" {
		opts = append(opts, fetch.WithReporter(formatter))
	} else {
		opts = append(opts, fetch.WithReporter(failureReporter{formatter}))
	}

	resp, err := fetch.New(opts...).Fetch(cmd.Context(), cfg)
	if err != nil {
		return reported(exitCode(err), err)
	}

	if queryFlag != "" {
		value, ok := capture.NewExtractor(resp).QueryString(queryFlag)
		if !ok {
			return withExitCode(ExitRequestFailure, fmt.Errorf("query %q matched nothing in the response", queryFlag))
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
	}

	if schemaFlag != "" {
		violations, err := capture.ValidateSchemaFile(resp, schemaFlag)
		if err != nil {
			return withExitCode(ExitConfigError, err)
		}
		if len(violations) > 0 {
			red := color.New(color.FgRed).SprintFunc()
			for _, v := range violations {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s %s\n", red("→"), v)
			}
			return reported(ExitSchemaMismatch, fmt.Errorf("response does not match schema %s", schemaFlag))
		}
	}

	return nil
}

// failureReporter forwards only failed outcomes.
type failureReporter struct {
	next output.Reporter
}

func (r failureReporter) Report(req http.RequestConfig, outcome http.Outcome) {
	if !outcome.OK() {
		r.next.Report(req, outcome)
	}
}

// parseHeaders turns "Key: Value" flags into a header map.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		key, value, ok := strings.Cut(h, ":")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q (use \"Key: Value\")", h)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}
