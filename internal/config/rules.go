package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Dev9710/bot-market/internal/strategy"
)

// LoadRules overlays the YAML file at path onto the default rule tables.
// A network listed in the file replaces that network's whole row; networks
// absent from the file keep their defaults. An empty path yields the defaults.
func LoadRules(path string) (*strategy.Rules, error) {
	rules := strategy.DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read rules")
	}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, errors.Wrapf(err, "parse rules %s", path)
	}
	if err := rules.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid rules %s", path)
	}
	return rules, nil
}
