// Package config handles configuration loading and management for easyfetch.
//
// It provides functionality for:
//   - Loading configuration from .easyfetch.json or .easyfetch.yaml files
//   - Default configuration values
//   - Overrides from EASYFETCH_* environment variables and .env files
package config
