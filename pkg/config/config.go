package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/blang/semver/v4"
	"github.com/go-viper/mapstructure/v2"
	"sigs.k8s.io/yaml"
)

const (
	// DefaultVersion is the settings schema version assumed when none is given.
	DefaultVersion = "1.0.0"

	supportedVersions = ">=1.0.0 <2.0.0"
)

// InstalledApp declares an application and the models it provides.
type InstalledApp struct {
	Name   string   `mapstructure:"name"`
	Label  string   `mapstructure:"label"`
	Models []string `mapstructure:"models"`
}

// Settings is the decoded settings file.
type Settings struct {
	Version              string         `mapstructure:"version"`
	SilencedSystemChecks []string       `mapstructure:"silencedSystemChecks"`
	Databases            []string       `mapstructure:"databases"`
	InstalledApps        []InstalledApp `mapstructure:"installedApps"`
}

// Default returns settings with no apps and the "default" database.
func Default() *Settings {
	return &Settings{
		Version:   DefaultVersion,
		Databases: []string{"default"},
	}
}

// Load reads and validates a YAML settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML settings on top of the defaults and validates them.
// Unknown keys are rejected.
func Parse(data []byte) (*Settings, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}

	settings := Default()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           settings,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating settings decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks the schema version and app declarations.
func (s *Settings) Validate() error {
	v, err := semver.ParseTolerant(s.Version)
	if err != nil {
		return fmt.Errorf("invalid settings version %q: %w", s.Version, err)
	}

	if !semver.MustParseRange(supportedVersions)(v) {
		return fmt.Errorf("unsupported settings version %s (supported: %s)", v, supportedVersions)
	}

	for i, app := range s.InstalledApps {
		if app.Name == "" {
			return fmt.Errorf("installedApps[%d]: %w", i, errors.New("name must not be empty"))
		}
	}

	return nil
}
