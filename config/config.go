// Package config loads the bot file and applies command-line overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nstehr/anion/brain"
	"github.com/nstehr/anion/rules"
	"github.com/nstehr/anion/utility"
)

// ErrOverride is returned for a free argument not of the form KEY=VALUE.
var ErrOverride = errors.New("invalid extra argument (should be of form KEY=VALUE)")

// Config is the bot file. Every section is optional; missing values keep
// their defaults.
type Config struct {
	Brain    string          `yaml:"brain"`
	Params   utility.Params  `yaml:"params"`
	Doctrine *rules.Doctrine `yaml:"doctrine"`
	Rules    []*rules.Rule   `yaml:"rules"`
	Log      Log             `yaml:"log"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default is the configuration used without a bot file.
func Default() Config {
	return Config{
		Brain:  "utility",
		Params: utility.Defaults(),
		Log:    Log{Level: "info"},
	}
}

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads the bot file at path over the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := loadYAML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyOverrides sets parameters from KEY=VALUE arguments.
func (c *Config) ApplyOverrides(args []string) error {
	for _, arg := range args {
		parts := strings.Split(arg, "=")
		if len(parts) != 2 || parts[0] == "" {
			return fmt.Errorf("%q: %w", arg, ErrOverride)
		}
		if err := c.Params.Set(parts[0], parts[1]); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the brain name, the parameters, the rule set and the
// log level, so a bad file fails before a game is joined.
func (c Config) Validate() error {
	if _, err := brain.Lookup(c.Brain); err != nil {
		return err
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if rs := c.RuleSet(); rs != nil {
		if _, err := rules.NewEngine(rs); err != nil {
			return err
		}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// RuleSet returns the rules for the rule-driven brain: explicit rules
// first, else the compiled doctrine, else nil for the built-in policy.
func (c Config) RuleSet() []*rules.Rule {
	if len(c.Rules) > 0 {
		return c.Rules
	}
	if c.Doctrine != nil {
		return rules.CompileDoctrine(*c.Doctrine)
	}
	return nil
}

// SlogLevel parses the configured level; empty means info.
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", l.Level, err)
	}
	return lvl, nil
}
