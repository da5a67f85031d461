// Package config provides functionality for loading and managing application configuration.
//
// Settings are read from a YAML file through viper, can be overridden by
// THESLOPE_* environment variables and are validated before use.
package config
