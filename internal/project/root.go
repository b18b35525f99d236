// Package project locates a westcheck suite and loads its configuration.
package project

import (
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/westcheck/internal/config"
	"github.com/AndreyAkinshin/westcheck/internal/errors"
)

// ErrNoSuiteRoot is returned when no parameters.json is found.
var ErrNoSuiteRoot = errors.Config("parameters.json not found: not a westcheck suite (or any parent up to the root)")

// FindRoot walks up from the current working directory until it finds parameters.json.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds parameters.json.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		paramsPath := filepath.Join(dir, config.DefaultParametersFile)
		if fi, err := os.Stat(paramsPath); err == nil && !fi.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoSuiteRoot
		}
		dir = parent
	}
}
