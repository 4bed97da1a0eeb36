// Package config loads sink settings from an optional YAML file, LOGGING_*
// environment variables and command-line flags, in increasing order of
// precedence, and turns them into sink options.
package config
