// Package artifact reads the output files written by the simulation stages
// into typed records and extracts the observables compared by westcheck.
//
// Every reader loads the whole file into memory before decoding it. A file
// that cannot be read yields a resource error; a file whose content lacks a
// required field yields a format error naming the dotted key path.
package artifact

import (
	"encoding/json"
	"os"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
)

// readFile reads an artifact, classifying failures as resource errors.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Resource(path, err)
	}
	return data, nil
}

// readJSON reads and decodes a JSON artifact into v.
func readJSON(path string, v interface{}) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &errors.Error{
			Kind:    errors.KindFormat,
			Message: "invalid JSON",
			File:    path,
			Cause:   err,
		}
	}
	return nil
}

// missing builds the format error for an absent field.
func missing(path, key string) error {
	return errors.Format(path, key, "missing field")
}

func formatEmpty(path, key string) error {
	return errors.Format(path, key, "empty iteration history")
}
