// Package config loads the program configuration: defaults embedded in the
// binary, superimposed with an optional YAML file.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"github.com/revelaction/unseg/reassemble"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ReassemblyConfig struct {
		FillerLabels []string `yaml:"filler_labels" validate:"required,dive,required"`
		TurnPrefix   int      `yaml:"turn_prefix" validate:"min=1"`
		DefaultTag   string   `yaml:"default_tag" validate:"required"`
		LinkRoots    bool     `yaml:"link_roots"`
	}

	Config struct {
		Version    int              `yaml:"version" validate:"eq=1"`
		Reassembly ReassemblyConfig `yaml:"reassembly"`
		Logging    LoggingConfig    `yaml:"logging"`
	}
)

// Options returns the engine options configured.
func (c *ReassemblyConfig) Options() reassemble.Options {
	return reassemble.Options{
		FillerLabels: c.FillerLabels,
		TurnPrefix:   c.TurnPrefix,
		LinkRoots:    c.LinkRoots,
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of the expanded configuration template and
// performs validation. An empty path returns the defaults.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns the default configuration.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
