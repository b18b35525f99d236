package project

import (
	"os"
	"path/filepath"

	"github.com/AndreyAkinshin/westcheck/internal/config"
)

// Project is a loaded westcheck suite.
type Project struct {
	Root       string
	Parameters *config.Parameters
	Manifest   *config.Manifest
	Warnings   []string
}

// Options overrides the files a project is loaded from. Empty fields use
// the files in the suite root.
type Options struct {
	ParamsPath   string
	ManifestPath string
}

// LoadProject finds and loads a suite from the current directory.
func LoadProject(opts Options) (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root, opts)
}

// LoadProjectFrom loads a suite rooted at root. Without an explicit
// manifest, suite.yaml in root is used if present and the built-in manifest
// otherwise.
func LoadProjectFrom(root string, opts Options) (*Project, error) {
	paramsPath := opts.ParamsPath
	if paramsPath == "" {
		paramsPath = filepath.Join(root, config.DefaultParametersFile)
	}

	params, warnings, err := config.LoadParameters(paramsPath)
	if err != nil {
		return nil, err
	}

	manifest, err := loadManifest(root, opts.ManifestPath)
	if err != nil {
		return nil, err
	}

	return &Project{
		Root:       root,
		Parameters: params,
		Manifest:   manifest,
		Warnings:   warnings,
	}, nil
}

func loadManifest(root, path string) (*config.Manifest, error) {
	if path != "" {
		return config.LoadManifest(path)
	}
	path = filepath.Join(root, config.DefaultManifestFile)
	if _, err := os.Stat(path); err != nil {
		return config.DefaultManifest(), nil
	}
	return config.LoadManifest(path)
}

// TestDir returns the absolute path of a test directory.
func (p *Project) TestDir(name string) string {
	return filepath.Join(p.Root, name)
}
