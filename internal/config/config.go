// Package config loads the CLI driver's optional .orbitc.yaml (or
// .orbitc.json) project file: diagnostic format, phase toggles, and a
// max-error threshold. YAML is decoded with github.com/goccy/go-yaml;
// a JSON project file is instead read field-by-field with
// github.com/tidwall/gjson, avoiding a struct-tag duplicate of Config
// for the less common format.
package config

import (
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// Config is the decoded shape of .orbitc.yaml.
type Config struct {
	// Format selects the driver's diagnostic rendering: "text" (default)
	// or "json".
	Format string `yaml:"format"`

	// Color enables ANSI caret highlighting in text mode.
	Color bool `yaml:"color"`

	// MaxErrors caps the check command's printed diagnostics at this many
	// Error-or-worse ones; analysis itself still runs to the end. Zero
	// means unbounded.
	MaxErrors int `yaml:"max_errors"`

	// Phases records lex/parse/check toggles from the project file. The
	// driver's subcommands do not read it; each runs its own phases.
	Phases struct {
		Lex   bool `yaml:"lex"`
		Parse bool `yaml:"parse"`
		Check bool `yaml:"check"`
	} `yaml:"phases"`
}

// Default returns the configuration used when no .orbitc.yaml is found.
func Default() *Config {
	c := &Config{Format: "text"}
	c.Phases.Check = true
	return c
}

// Load reads and decodes path. A missing file is not an error; callers
// get Default() back.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if strings.HasSuffix(path, ".json") {
		decodeJSON(cfg, data)
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeJSON reads the handful of fields Config needs out of a JSON
// project file without a parallel json-tagged struct.
func decodeJSON(cfg *Config, data []byte) {
	root := gjson.ParseBytes(data)
	if v := root.Get("format"); v.Exists() {
		cfg.Format = v.String()
	}
	if v := root.Get("color"); v.Exists() {
		cfg.Color = v.Bool()
	}
	if v := root.Get("max_errors"); v.Exists() {
		cfg.MaxErrors = int(v.Int())
	}
	if v := root.Get("phases.lex"); v.Exists() {
		cfg.Phases.Lex = v.Bool()
	}
	if v := root.Get("phases.parse"); v.Exists() {
		cfg.Phases.Parse = v.Bool()
	}
	if v := root.Get("phases.check"); v.Exists() {
		cfg.Phases.Check = v.Bool()
	}
}
