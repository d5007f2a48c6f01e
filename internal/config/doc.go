// Package config loads and validates the whalewatch YAML configuration.
//
// Configuration is read once at startup and treated as immutable for the
// process lifetime. ${VAR} references in the file are expanded from the
// environment, so secrets (API keys, tokens) never live in the file itself.
package config
