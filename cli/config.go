package cli

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tmultani945/log-parser-project/packet/prepeat"
)

type (
	// Config tunes the heuristic parts of record decoding. Every knob is
	// optional; omitted values fall back to the built-in defaults.
	Config struct {
		Policy      PolicyConfig `yaml:"policy"`
		WarningsLog string       `yaml:"warnings_log"`
	}
	PolicyConfig struct {
		DropNameSubstrings         []string `yaml:"drop_name_substrings"`
		DropZeroOffsetAfterNonzero *bool    `yaml:"drop_zero_offset_after_nonzero"`
		CountFieldNames            []string `yaml:"count_field_names"`
	}
)

// LoadConfig reads a YAML config file; an empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := Config{}
	if path == "" {
		return &config, nil
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, `LoadConfig error reading "%s"`, path)
	}
	if err := yaml.Unmarshal(bs, &config); err != nil {
		return nil, errors.Wrapf(err, `LoadConfig error parsing "%s"`, path)
	}
	return &config, nil
}

// ToPolicy merges the config over the default record-decoding policy.
func (r *Config) ToPolicy() prepeat.Policy {
	policy := prepeat.DefaultPolicy()
	if r.Policy.DropNameSubstrings != nil {
		policy.DropNameSubstrings = r.Policy.DropNameSubstrings
	}
	if r.Policy.DropZeroOffsetAfterNonzero != nil {
		policy.DropZeroOffsetAfterNonzero = *r.Policy.DropZeroOffsetAfterNonzero
	}
	if r.Policy.CountFieldNames != nil {
		policy.CountFieldNames = r.Policy.CountFieldNames
	}
	return policy
}
