package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
	"github.com/AndreyAkinshin/westcheck/internal/schema"
)

// Manifest lists the test directories each check evaluates.
//
// A manifest that has a "checks" section replaces the built-in lists
// entirely: checks it leaves out evaluate no test directories.
type Manifest struct {
	TestsPattern string              `yaml:"tests_pattern"`
	Checks       map[string][]string `yaml:"checks"`
}

// TestDirs returns the test directories of a check.
func (m *Manifest) TestDirs(check string) []string {
	return m.Checks[check]
}

// LoadManifest reads and validates a suite manifest, applying defaults.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.Error{
			Kind:    errors.KindConfig,
			Message: "cannot read manifest",
			File:    path,
			Cause:   err,
		}
	}
	return ParseManifest(path, data)
}

// ParseManifest is LoadManifest for content already in memory.
func ParseManifest(path string, data []byte) (*Manifest, error) {
	if err := schema.ValidateSuite(data); err != nil {
		return nil, configError(path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, configError(path, err)
	}

	applyManifestDefaults(&m)

	if err := validateManifest(&m); err != nil {
		return nil, configError(path, err)
	}
	return &m, nil
}
