// Package config defines the application configuration structure and
// loading logic. Configuration is read from environment variables and an
// optional YAML file, with environment variables taking precedence, and is
// validated before the application starts.
package config
