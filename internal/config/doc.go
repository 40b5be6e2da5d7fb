// Package config loads the envresolve tool configuration from multiple
// sources (YAML file, environment variables, CLI flags) with precedence:
// CLI flags > YAML config > Environment variables > Defaults.
package config
