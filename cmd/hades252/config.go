package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"

	"github.com/aerius-labs/hades252-go/sponge"
)

// Config holds the settings read from the TOML file and the global flags
type Config struct {
	MaxInputs int    `toml:"max_inputs"`
	LogLevel  string `toml:"log_level"`
	JSONLog   bool   `toml:"json_log"`
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		MaxInputs: sponge.DefaultMaxInputs,
		LogLevel:  "info",
	}
}

// loadConfig starts from the defaults, applies the config file if one is
// given, then applies explicitly set flags
func loadConfig(c *cli.Context) (*Config, error) {
	conf := DefaultConfig()
	if path := c.String(configFlag.Name); path != "" {
		if _, err := toml.DecodeFile(path, conf); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	if c.IsSet(maxInputsFlag.Name) {
		conf.MaxInputs = c.Int(maxInputsFlag.Name)
	}
	if c.IsSet(logLevelFlag.Name) {
		conf.LogLevel = c.String(logLevelFlag.Name)
	}
	if c.IsSet(jsonLogFlag.Name) {
		conf.JSONLog = c.Bool(jsonLogFlag.Name)
	}
	if conf.MaxInputs <= 0 {
		return nil, fmt.Errorf("max_inputs must be positive, got %d", conf.MaxInputs)
	}
	return conf, nil
}
