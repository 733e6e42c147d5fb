// Package config defines jsonmap command configuration
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/viant/tagly/format/text"
	"gopkg.in/yaml.v3"
)

// Operations supported by the store section
const (
	OpNone   = "none"
	OpInsert = "insert"
	OpUpdate = "update"
)

type (
	// Config represents jsonmap command configuration
	Config struct {
		Mapping Mapping `yaml:"mapping"`
		Store   Store   `yaml:"store"`
		Report  Report  `yaml:"report"`
	}

	// Mapping controls mapper behavior
	Mapping struct {
		Mode       string `yaml:"mode"`
		CaseFormat string `yaml:"caseFormat"`
		UseNumber  bool   `yaml:"useNumber"`
		MaxDepth   int    `yaml:"maxDepth"`
		Envelope   bool   `yaml:"envelope"`
	}

	// Store controls persistence of mapped items
	Store struct {
		Driver    string `yaml:"driver"`
		DSN       string `yaml:"dsn"`
		Table     string `yaml:"table"`
		Op        string `yaml:"op"`
		BatchSize int    `yaml:"batchSize"`
	}

	// Report controls printed summary
	Report struct {
		Limit    int    `yaml:"limit"`
		Language string `yaml:"language"`
	}
)

// LoadFile loads and parses a YAML configuration file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return Parse(data)
}

// Parse parses YAML data into a Config
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config YAML")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns configuration with defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	switch c.Mapping.Mode {
	case "compat", "strict":
	default:
		return errors.Errorf("unsupported mapping mode: %s", c.Mapping.Mode)
	}
	if !text.NewCaseFormat(c.Mapping.CaseFormat).IsDefined() {
		return errors.Errorf("unsupported mapping case format: %s", c.Mapping.CaseFormat)
	}
	switch c.Store.Op {
	case OpNone:
	case OpInsert, OpUpdate:
		if c.Store.DSN == "" {
			return errors.Errorf("store dsn is required for %s", c.Store.Op)
		}
	default:
		return errors.Errorf("unsupported store op: %s", c.Store.Op)
	}
	return nil
}

// Persist returns true if mapped items are written to the store
func (c *Config) Persist() bool {
	return c.Store.Op == OpInsert || c.Store.Op == OpUpdate
}

func (c *Config) applyDefaults() {
	if c.Mapping.Mode == "" {
		c.Mapping.Mode = "compat"
	}
	if c.Mapping.CaseFormat == "" {
		c.Mapping.CaseFormat = "lowerCamel"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = "mysql"
	}
	if c.Store.Table == "" {
		c.Store.Table = "crypto_data"
	}
	if c.Store.Op == "" {
		c.Store.Op = OpNone
	}
	if c.Report.Limit == 0 {
		c.Report.Limit = 10
	}
	if c.Report.Language == "" {
		c.Report.Language = "en-US"
	}
}
