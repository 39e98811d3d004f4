// Package file loads the TOML configuration file and applies
// environment overrides for secrets.
package file
