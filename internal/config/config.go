// Package config provides centralized configuration management for the shell.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"github.com/JonMunkholm/csvnexus/internal/delim"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Shell   ShellConfig
	Dialect DialectConfig
	Export  ExportConfig
	Logging LoggingConfig
}

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	// Dir is the working directory all files are read from and written to (default: .)
	Dir string `env:"CSVNEXUS_DIR" envAlt:"DATA_DIR" default:"."`

	// Prompt is printed before each command (default: "CSV-Nexus: ")
	Prompt string `env:"CSVNEXUS_PROMPT" default:"CSV-Nexus: "`

	// FileExt is the extension offered by add and required by export (default: .csv)
	FileExt string `env:"CSVNEXUS_FILE_EXT" default:".csv"`
}

// DialectConfig holds the delimited text format.
type DialectConfig struct {
	// Delimiter separates fields (default: ,)
	Delimiter string `env:"CSVNEXUS_DELIMITER" default:","`

	// Quote wraps fields containing the delimiter (default: |)
	Quote string `env:"CSVNEXUS_QUOTE" default:"|"`

	// CRLF ends written records with \r\n (default: false)
	CRLF bool `env:"CSVNEXUS_CRLF" default:"false"`
}

// ExportConfig holds export settings.
type ExportConfig struct {
	// ForceOverwrite replaces existing files without asking (default: false)
	ForceOverwrite bool `env:"EXPORT_FORCE_OVERWRITE" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: warn)
	Level string `env:"LOG_LEVEL" default:"warn"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Dialect converts the configured delimiter and quote into a delim.Dialect.
func (c *DialectConfig) Dialect() (delim.Dialect, error) {
	d, err := delim.ParseRune(c.Delimiter)
	if err != nil {
		return delim.Dialect{}, err
	}
	q, err := delim.ParseRune(c.Quote)
	if err != nil {
		return delim.Dialect{}, err
	}
	dialect := delim.Dialect{Delimiter: d, Quote: q, CRLF: c.CRLF}
	if err := dialect.Validate(); err != nil {
		return delim.Dialect{}, err
	}
	return dialect, nil
}
