package config

import (
	"github.com/abdul-hamid-achik/easyfetch/packages/http"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout:   int(http.DefaultTimeout.Milliseconds()), // 5 seconds
		UserAgent: http.DefaultUserAgent,
		Methods:   append([]string(nil), http.DefaultMethods...),
		Headers:   nil,
		Output:    "console",
		NoColor:   BoolPtr(false),
		Verbose:   BoolPtr(false),
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	if len(c.Methods) != len(defaults.Methods) {
		return false
	}
	for i := range c.Methods {
		if c.Methods[i] != defaults.Methods[i] {
			return false
		}
	}
	return c.Timeout == defaults.Timeout &&
		c.UserAgent == defaults.UserAgent &&
		len(c.Headers) == 0 &&
		c.Output == defaults.Output &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.GetVerbose() == defaults.GetVerbose()
}
