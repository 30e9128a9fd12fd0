package cli

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// errConfigNotFound is returned when no project config file exists.
var errConfigNotFound = errors.New("config file not found")

const configFileName = "edischema.yaml"

type projectConfig struct {
	MaxTypes            int      `yaml:"max_types"`
	SupportedProperties []string `yaml:"supported_properties"`
}

// loadProjectConfig reads edischema.yaml from dir.
func loadProjectConfig(dir string) (*projectConfig, error) {
	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errConfigNotFound
		}
		return nil, err
	}

	var cfg projectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configuredFactoryOptions applies the config file, when present, on top
// of defaults.
func configuredFactoryOptions(dir string) (opts factoryOptions, err error) {
	cfg, err := loadProjectConfig(dir)
	if errors.Is(err, errConfigNotFound) {
		return factoryOptions{}, nil
	}
	if err != nil {
		return factoryOptions{}, err
	}
	return factoryOptions{
		maxTypes:            cfg.MaxTypes,
		supportedProperties: cfg.SupportedProperties,
	}, nil
}

type factoryOptions struct {
	maxTypes            int
	supportedProperties []string
}
