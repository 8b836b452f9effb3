// Package config defines uniformcheck's configuration and how it is loaded.
//
// Precedence (low -> high): defaults, YAML file, UNIFORMCHECK_* environment
// variables, then explicit command-line flags (applied by internal/cmd).
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls stderr diagnostics: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Format selects the report format: text, json, yaml, markdown, html.
	Format string `koanf:"format"`

	// Backend selects the p-value backend: gonum or none.
	Backend string `koanf:"backend"`

	// MetricsFile, when set, receives run metrics in Prometheus text format.
	MetricsFile string `koanf:"metrics_file"`

	// SmallExpected is the expected-per-category count below which the
	// chi-square approximation is flagged.
	SmallExpected float64 `koanf:"small_expected"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "warn",
		Format:        "text",
		Backend:       "gonum",
		SmallExpected: 5,
	}
}
