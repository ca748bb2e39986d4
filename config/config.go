package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type WebConfig struct {
	Addr string `yaml:"addr"`
}

type ImportConfig struct {
	// RestoreFirstAnimation re-activates the first declared animation after
	// all tracks are layered.
	RestoreFirstAnimation bool `yaml:"restore_first_animation"`
	// OnDanglingTarget is "skip" or "abort".
	OnDanglingTarget string `yaml:"on_dangling_target"`
	NameEncoding     string `yaml:"name_encoding"`
}

type RegroupConfig struct {
	Enabled bool `yaml:"enabled"`
	// SkipNameContains lists substrings excluding an object from regrouping.
	SkipNameContains []string `yaml:"skip_name_contains"`
}

type Config struct {
	Web     WebConfig     `yaml:"web"`
	Import  ImportConfig  `yaml:"import"`
	Regroup RegroupConfig `yaml:"regroup"`
}

func Default() *Config {
	return &Config{
		Web: WebConfig{Addr: ":8000"},
		Import: ImportConfig{
			RestoreFirstAnimation: true,
			OnDanglingTarget:      "skip",
		},
		Regroup: RegroupConfig{
			SkipNameContains: []string{"tiles", "type"},
		},
	}
}

func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read config %q", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "Failed to parse config %q", path)
	}

	if cfg.Import.NameEncoding != "" {
		if err := SetEncoding(cfg.Import.NameEncoding); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
