package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/carrental/core/metrics"
	"github.com/kilianp07/carrental/core/rental"
	"github.com/kilianp07/carrental/core/runlog"
	"github.com/kilianp07/carrental/core/solver"
)

// EnvPrefix marks environment overrides. Nested keys are separated by a
// double underscore, e.g. CR_SOLVER__GAMMA=0.95.
const EnvPrefix = "CR_"

type Config struct {
	Problem rental.Config  `json:"problem"`
	Solver  solver.Config  `json:"solver"`
	Logging LoggingConfig  `json:"logging"`
	RunLog  runlog.Config  `json:"runlog"`
	Metrics metrics.Config `json:"metrics"`
	Export  ExportConfig   `json:"export"`
}

// Default returns the reference problem and solver settings with every
// other section at its defaults.
func Default() *Config {
	cfg := &Config{
		Problem: rental.DefaultConfig(),
		Solver:  solver.DefaultConfig(),
	}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills unset sections.
func (c *Config) SetDefaults() {
	c.Logging.SetDefaults()
	c.RunLog.SetDefaults()
	c.Export.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Problem.Validate(); err != nil {
		return fmt.Errorf("problem: %w", err)
	}
	if err := c.Solver.Validate(); err != nil {
		return fmt.Errorf("solver: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.RunLog.Validate(); err != nil {
		return fmt.Errorf("runlog: %w", err)
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Load reads the YAML or JSON file at path over the defaults and applies
// CR_ environment overrides. An empty path loads defaults and environment
// only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := &Config{
		Problem: rental.DefaultConfig(),
		Solver:  solver.DefaultConfig(),
	}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps CR_SOLVER__GAMMA to solver.gamma. Comma separated lists are
// split so CR_EXPORT__FORMATS=json,csv yields two formats.
func envKey(key, value string) (string, any) {
	key = strings.TrimPrefix(strings.ToLower(key), strings.ToLower(EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if key == "export.formats" {
		return key, strings.Split(value, ",")
	}
	return key, value
}
