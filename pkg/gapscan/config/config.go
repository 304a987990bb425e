package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of one taxonomy: a name and an ordered category
// list. Category order in the file defines the reporting order.
type File struct {
	Name       string           `yaml:"name"`
	Categories []CategoryConfig `yaml:"categories"`
}

// CategoryConfig is one category with its keyword rules.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// LoadFile reads a taxonomy definition from a YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	return &f, nil
}
