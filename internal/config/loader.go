package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. UNIFORMCHECK_BACKEND.
const EnvPrefix = "UNIFORMCHECK_"

// EnvConfigFile names the variable holding a config file path.
const EnvConfigFile = EnvPrefix + "CONFIG"

// Load builds a Config by layering defaults, an optional YAML file, and env
// vars. path takes precedence over UNIFORMCHECK_CONFIG; both may be empty.
func Load(_ context.Context, path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadConfig, path, err)
		}
	}

	// UNIFORMCHECK_SMALL_EXPECTED -> small_expected. Underscores are kept
	// to match the flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be checked by type alone.
func (c *Config) Validate() error {
	if c.SmallExpected <= 0 {
		return fmt.Errorf("%w: small_expected must be positive, got %v", ErrInvalidConfig, c.SmallExpected)
	}
	if strings.TrimSpace(c.Format) == "" {
		return fmt.Errorf("%w: format must not be empty", ErrInvalidConfig)
	}
	return nil
}
