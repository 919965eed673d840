package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions reads an Options overlay from a YAML file. Fields absent
// from the file keep their defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(opts.SupportedLanguages) == 0 {
		opts.SupportedLanguages = DefaultSupportedLanguages
	}
	return opts, nil
}
