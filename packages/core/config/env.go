package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix is the prefix of every environment variable easyfetch reads
const EnvPrefix = "EASYFETCH_"

// LoadDotEnv loads variables from the given .env files (default ".env") into
// the process environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// FromEnv builds a partial config from EASYFETCH_* variables, suitable for Merge.
func FromEnv() (*Config, error) {
	c := &Config{
		UserAgent: os.Getenv(EnvPrefix + "USER_AGENT"),
		Output:    os.Getenv(EnvPrefix + "OUTPUT"),
	}

	if v := os.Getenv(EnvPrefix + "TIMEOUT"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Timeout = ms
	}

	if v := os.Getenv(EnvPrefix + "METHODS"); v != "" {
		for _, m := range strings.Split(v, ",") {
			if m = strings.TrimSpace(m); m != "" {
				c.Methods = append(c.Methods, m)
			}
		}
	}

	for _, b := range []struct {
		name string
		dst  **bool
	}{
		{"NO_COLOR", &c.NoColor},
		{"VERBOSE", &c.Verbose},
	} {
		v := os.Getenv(EnvPrefix + b.name)
		if v == "" {
			continue
		}
		parsed, err := parseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s%s: %w", EnvPrefix, b.name, err)
		}
		*b.dst = BoolPtr(parsed)
	}

	return c, nil
}

// parseBool accepts everything strconv.ParseBool does plus yes and no.
func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(v))
}
