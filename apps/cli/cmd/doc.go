// Package cmd implements the easyfetch CLI commands using Cobra.
//
// Available commands:
//   - request: Send one request built from flags
//   - run: Send the request described in a YAML or JSON file, optionally on every change
//   - validate: Check request files without sending them
//   - init: Create a config file and an example request file
//   - version: Show easyfetch version information
//   - completion: Generate shell completion scripts
package cmd
