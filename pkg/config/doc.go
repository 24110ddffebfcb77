// Package config handles configuration management for setup-project.
// It supports loading configuration from multiple sources including
// the embedded defaults, a TOML file in the repository, environment
// variables, and command-line flags.
package config
