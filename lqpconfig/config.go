// Package lqpconfig loads and marshals the `.lqp.yaml` config file: the
// field-name alias map, include-library root directories, and
// validation options, shared by the cmd/lqp CLI and any embedder that
// wants these declared instead of built up in Go.
package lqpconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lucene-ql/lqp/resolver"
	"github.com/lucene-ql/lqp/validate"
)

// FieldAlias is one entry of the field map: Alias resolves to Canonical,
// per resolver.FieldMap.Set.
type FieldAlias struct {
	Alias     string `yaml:"alias"`
	Canonical string `yaml:"canonical"`
}

// ValidationConfig mirrors validate.Options in a YAML-friendly shape.
type ValidationConfig struct {
	AllowedFields         []string `yaml:"allowedFields,omitempty"`
	RestrictedFields      []string `yaml:"restrictedFields,omitempty"`
	AllowedOperations     []string `yaml:"allowedOperations,omitempty"`
	RestrictedOperations  []string `yaml:"restrictedOperations,omitempty"`
	AllowLeadingWildcards bool     `yaml:"allowLeadingWildcards"`
	AllowedMaxNodeDepth   int      `yaml:"allowedMaxNodeDepth"`
	ShouldThrow           bool     `yaml:"shouldThrow"`
}

// Options converts c to validate.Options.
func (c ValidationConfig) Options() validate.Options {
	return validate.Options{
		AllowedFields:         c.AllowedFields,
		RestrictedFields:      c.RestrictedFields,
		AllowedOperations:     c.AllowedOperations,
		RestrictedOperations:  c.RestrictedOperations,
		AllowLeadingWildcards: c.AllowLeadingWildcards,
		AllowedMaxNodeDepth:   c.AllowedMaxNodeDepth,
		ShouldThrow:           c.ShouldThrow,
	}
}

// Config is the top-level shape of `.lqp.yaml`.
type Config struct {
	Name         string           `yaml:"name"`
	FieldMap     []FieldAlias     `yaml:"fieldMap"`
	IncludeRoots []string         `yaml:"includeRoots"`
	Validation   ValidationConfig `yaml:"validation"`
}

// Default returns the configuration written by `lqp init`.
func Default() Config {
	return Config{Name: "lqp"}
}

// Load reads and parses the YAML config file at path.
func Load(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("lqpconfig: open %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("lqpconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating or truncating the file.
func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("lqpconfig: create %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("lqpconfig: write %s: %w", path, err)
	}
	return nil
}

// BuildFieldMap builds a resolver.FieldMap from cfg's alias list.
func (c Config) BuildFieldMap() *resolver.FieldMap {
	fm := resolver.NewFieldMap()
	for _, a := range c.FieldMap {
		fm.Set(a.Alias, a.Canonical)
	}
	return fm
}
