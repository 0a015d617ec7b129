package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag back to its default so commands can be run
// more than once per test binary.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	for _, c := range append([]*cobra.Command{rootCmd}, rootCmd.Commands()...) {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func userServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/1":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":1,"name":"ada"}`))
		case "/echo":
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"method": r.Method,
				"body":   string(body),
				"auth":   r.Header.Get("Authorization"),
			})
		case "/slow":
			time.Sleep(300 * time.Millisecond)
			_, _ = w.Write([]byte("late"))
		default:
			http.Error(w, "missing", http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, ExitSuccess},
		{"explicit", withExitCode(ExitConfigError, assert.AnError), ExitConfigError},
		{"reported", reported(ExitSchemaMismatch, assert.AnError), ExitSchemaMismatch},
		{"plain error", assert.AnError, ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, exitCode(tt.err))
		})
	}

	assert.True(t, isReported(reported(1, assert.AnError)))
	assert.False(t, isReported(withExitCode(1, assert.AnError)))
	assert.False(t, isReported(assert.AnError))
}

func TestParseHeaders(t *testing.T) {
	headers, err := parseHeaders([]string{"Authorization: Bearer x", "X-Empty:", " X-Trim :  v "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Authorization": "Bearer x",
		"X-Empty":       "",
		"X-Trim":        "v",
	}, headers)

	headers, err = parseHeaders(nil)
	require.NoError(t, err)
	assert.Nil(t, headers)

	_, err = parseHeaders([]string{"no-colon"})
	assert.Error(t, err)

	_, err = parseHeaders([]string{": value"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()

	quiet := newLogger(io.Discard, 0)
	assert.False(t, quiet.Enabled(ctx, slog.LevelWarn))
	assert.True(t, quiet.Enabled(ctx, slog.LevelError))

	info := newLogger(io.Discard, 1)
	assert.True(t, info.Enabled(ctx, slog.LevelInfo))
	assert.False(t, info.Enabled(ctx, slog.LevelDebug))

	debug := newLogger(io.Discard, 2)
	assert.True(t, debug.Enabled(ctx, slog.LevelDebug))
}

func TestRequestCommand_Success(t *testing.T) {
	server := userServer(t)

	stdout, _, err := execute(t, "request", server.URL+"/users/1", "-o", "json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, float64(200), got["status"])
	assert.Equal(t, `{"id":1,"name":"ada"}`, got["data"])
	assert.Regexp(t, `^\d+ms$`, got["time"])
}

func TestRequestCommand_Console(t *testing.T) {
	server := userServer(t)

	stdout, _, err := execute(t, "request", server.URL+"/users/1", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ GET "+server.URL+"/users/1 200")
	assert.Contains(t, stdout, `{"id":1,"name":"ada"}`)
}

func TestRequestCommand_PostJSON(t *testing.T) {
	server := userServer(t)

	stdout, _, err := execute(t, "request", server.URL+"/echo",
		"-X", "POST",
		"--json", "-d", `{ "a" : 1 }`,
		"-H", "Authorization: Bearer t",
		"--query", "body",
	)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", stdout)
}

func TestRequestCommand_JSONScalarKeepsEncoding(t *testing.T) {
	server := userServer(t)

	stdout, _, err := execute(t, "request", server.URL+"/echo",
		"-X", "POST", "--json", "-d", ` "hello" `, "--query", "body")
	require.NoError(t, err)
	assert.Equal(t, "\"hello\"\n", stdout)
}

func TestRequestCommand_Query(t *testing.T) {
	server := userServer(t)

	stdout, _, err := execute(t, "request", server.URL+"/users/1", "--query", "name")
	require.NoError(t, err)
	assert.Equal(t, "ada\n", stdout)

	_, _, err = execute(t, "request", server.URL+"/users/1", "--query", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitRequestFailure, exitCode(err))
}

func TestRequestCommand_HTTPError(t *testing.T) {
	server := userServer(t)

	stdout, _, err := execute(t, "request", server.URL+"/nope", "-o", "json")
	require.Error(t, err)
	assert.Equal(t, ExitRequestFailure, exitCode(err))
	assert.True(t, isReported(err))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "error", got["status"])
	assert.Equal(t, float64(404), got["statusCode"])
	assert.Equal(t, "HTTP Error: 404 - missing\n", got["error"])
}

func TestRequestCommand_Timeout(t *testing.T) {
	server := userServer(t)

	stdout, _, err := execute(t, "request", server.URL+"/slow", "--timeout", "50ms", "--no-color")
	require.Error(t, err)
	assert.Equal(t, ExitNetworkError, exitCode(err))
	assert.Contains(t, stdout, "(408)")
	assert.Contains(t, stdout, "Request timed out")
}

func TestRequestCommand_UnsupportedMethod(t *testing.T) {
	server := userServer(t)

	_, _, err := execute(t, "request", server.URL+"/users/1", "-X", "TRACE")
	require.Error(t, err)
	assert.Equal(t, ExitValidationError, exitCode(err))
}

func TestRequestCommand_UsageErrors(t *testing.T) {
	_, _, err := execute(t, "request", "http://localhost", "-H", "bad")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))

	_, _, err = execute(t, "request", "http://localhost", "--json", "-d", "{nope")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))

	_, _, err = execute(t, "request", "http://localhost", "--timeout", "soon")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(err))
}

func TestRequestCommand_Schema(t *testing.T) {
	server := userServer(t)

	ok := writeFile(t, "user.schema.json", `{"type":"object","required":["id","name"]}`)
	_, _, err := execute(t, "request", server.URL+"/users/1", "--schema", ok, "-o", "json")
	require.NoError(t, err)

	bad := writeFile(t, "admin.schema.json", `{"type":"object","required":["role"]}`)
	_, stderr, err := execute(t, "request", server.URL+"/users/1", "--schema", bad, "-o", "json")
	require.Error(t, err)
	assert.Equal(t, ExitSchemaMismatch, exitCode(err))
	assert.Contains(t, stderr, "role")
}

func TestRequestCommand_UnreadableSchema(t *testing.T) {
	server := userServer(t)

	_, _, err := execute(t, "request", server.URL+"/users/1",
		"--schema", filepath.Join(t.TempDir(), "missing.json"), "-o", "json")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(err))

	broken := writeFile(t, "broken.schema.json", `{"type": `)
	_, _, err = execute(t, "request", server.URL+"/users/1", "--schema", broken, "-o", "json")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(err))
}

func TestRunCommand(t *testing.T) {
	server := userServer(t)
	t.Setenv("EASYFETCH_TEST_TOKEN", "s3cret")

	file := writeFile(t, "create.yaml", `url: "{{base}}/echo"
method: PUT
headers:
  Authorization: "Bearer {{$EASYFETCH_TEST_TOKEN}}"
body:
  name: ada
`)

	stdout, _, err := execute(t, "run", file, "--var", "base="+server.URL, "-o", "json")
	require.NoError(t, err)

	var got struct {
		Status int    `json:"status"`
		Data   string `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, http.StatusCreated, got.Status)

	var echoed map[string]string
	require.NoError(t, json.Unmarshal([]byte(got.Data), &echoed))
	assert.Equal(t, "PUT", echoed["method"])
	assert.Equal(t, `{"name":"ada"}`, echoed["body"])
	assert.Equal(t, "Bearer s3cret", echoed["auth"])
}

func TestRunCommand_JSONFile(t *testing.T) {
	server := userServer(t)
	file := writeFile(t, "user.json", `{"url": "`+server.URL+`/users/1"}`)

	stdout, _, err := execute(t, "run", file, "--query", "id")
	require.NoError(t, err)
	assert.Equal(t, "1\n", stdout)
}

func TestRunCommand_FileErrors(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(err))

	txt := writeFile(t, "request.txt", "GET /")
	_, _, err = execute(t, "run", txt)
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(err))

	_, _, err = execute(t, "run", writeFile(t, "r.yaml", "url: x"), "--var", "novalue")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))
}

func TestRunCommand_LastFailureWins(t *testing.T) {
	server := userServer(t)
	good := writeFile(t, "good.json", `{"url": "`+server.URL+`/users/1"}`)
	bad := writeFile(t, "bad.json", `{"url": "`+server.URL+`/nope"}`)

	_, _, err := execute(t, "run", bad, good, "-o", "json")
	require.Error(t, err)
	assert.Equal(t, ExitRequestFailure, exitCode(err))
}

func TestValidateCommand(t *testing.T) {
	valid := writeFile(t, "ok.yaml", "url: http://localhost/users\nmethod: POST\nbody: {a: 1}\n")
	stdout, _, err := execute(t, "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Valid: "+valid)

	noURL := writeFile(t, "nourl.yaml", "method: GET\n")
	badMethod := writeFile(t, "trace.json", `{"url": "http://localhost", "method": "TRACE"}`)
	stdout, stderr, err := execute(t, "validate", valid, noURL, badMethod)
	require.Error(t, err)
	assert.Equal(t, ExitValidationError, exitCode(err))
	assert.Contains(t, stdout, "Valid: "+valid)
	assert.Contains(t, stderr, "URL is required")
	assert.Contains(t, stderr, "Unsupported method. Supported methods are: GET, POST, PUT, DELETE, PATCH")
}

func TestInitProject(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	require.NoError(t, initProject(c, dir, false))
	assert.FileExists(t, filepath.Join(dir, ".easyfetch.yaml"))
	assert.FileExists(t, filepath.Join(dir, "example.yaml"))
	assert.Contains(t, out.String(), "easyfetch project initialized!")

	cfg, err := loadRequestFile(filepath.Join(dir, "example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "POST", cfg.Method)

	err = initProject(c, dir, false)
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))

	assert.NoError(t, initProject(c, dir, true))
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "easyfetch version dev")
	assert.Contains(t, stdout, "EasyFetch/1.0.0")
}
