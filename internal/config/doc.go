// Package config loads acal-sync settings from a YAML file, an optional .env
// file and ACAL_* environment variables, in that order of precedence.
package config
