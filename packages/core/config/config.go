package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/easyfetch/packages/http"
	"gopkg.in/yaml.v3"
)

// Config represents the easyfetch configuration
type Config struct {
	Timeout   int               `json:"timeout,omitempty" yaml:"timeout,omitempty"` // milliseconds
	UserAgent string            `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	Methods   []string          `json:"methods,omitempty" yaml:"methods,omitempty"` // Supported request methods
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"` // Default headers for all requests
	Output    string            `json:"output,omitempty" yaml:"output,omitempty"`   // console or json
	NoColor   *bool             `json:"noColor,omitempty" yaml:"noColor,omitempty"`
	Verbose   *bool             `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// TimeoutDuration returns the request timeout as a time.Duration
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// ClientOptions translates the configuration into executor options
func (c *Config) ClientOptions() []http.ClientOption {
	opts := []http.ClientOption{
		http.WithTimeout(c.TimeoutDuration()),
		http.WithUserAgent(c.UserAgent),
	}
	if len(c.Methods) > 0 {
		opts = append(opts, http.WithSupportedMethods(c.Methods...))
	}
	if len(c.Headers) > 0 {
		opts = append(opts, http.WithDefaultHeaders(c.Headers))
	}
	return opts
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".easyfetch.json",
	"easyfetch.json",
	".easyfetch.yaml",
	".easyfetch.yml",
	"easyfetch.yaml",
	"easyfetch.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := Unmarshal(path, data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return config, nil
}

// Unmarshal decodes YAML or JSON depending on the file extension.
func Unmarshal(path string, data []byte, v any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}
	if other.UserAgent != "" {
		result.UserAgent = other.UserAgent
	}
	if len(other.Methods) > 0 {
		result.Methods = other.Methods
	}
	if other.Output != "" {
		result.Output = other.Output
	}

	// Boolean flags - only override if explicitly set in other config
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}

	// Merge headers
	if len(other.Headers) > 0 {
		headers := make(map[string]string, len(c.Headers)+len(other.Headers))
		for k, v := range c.Headers {
			headers[k] = v
		}
		for k, v := range other.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
