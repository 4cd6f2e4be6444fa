// Package config provides configuration loading and defaults for gitsight.
package config

// DefaultConfigDir is the default location for gitsight configuration.
const DefaultConfigDir = "~/.config/gitsight"

// DefaultDBName is the filename for the run-history SQLite database.
const DefaultDBName = "gitsight.db"

// DefaultOllamaHost is the default local Ollama endpoint.
const DefaultOllamaHost = "http://localhost:11434"

// DefaultOutputDir is where report files land when --out is not given.
const DefaultOutputDir = "."

// DefaultCloneTimeoutSeconds bounds a single shallow clone.
const DefaultCloneTimeoutSeconds = 120

// DefaultConcurrency is the number of repositories analyzed at once. The
// default matches the original sequential pipeline.
const DefaultConcurrency = 1

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
