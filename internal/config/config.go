// Package config loads the westcheck tolerance parameters and suite
// manifest.
package config

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
	"github.com/AndreyAkinshin/westcheck/internal/schema"
)

// envPrefix is the environment variable prefix of tolerance overrides.
const envPrefix = "WESTCHECK"

// newViper builds a Viper instance that reads JSON and maps a key such as
// "tolerance.bse" to the environment variable WESTCHECK_TOLERANCE_BSE.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// EnvVar returns the environment variable that overrides a tolerance.
func EnvVar(name string) string {
	return envPrefix + "_TOLERANCE_" + strings.ToUpper(name)
}

// Parameters holds the absolute tolerances of a suite.
type Parameters struct {
	Path       string
	tolerances map[string]float64
}

// NewParameters creates Parameters from explicit values, validating each.
func NewParameters(tolerances map[string]float64) (*Parameters, error) {
	p := &Parameters{tolerances: make(map[string]float64, len(tolerances))}
	for name, tol := range tolerances {
		if err := ValidateTolerance("tolerance."+name, tol); err != nil {
			return nil, configError("", err)
		}
		p.tolerances[name] = tol
	}
	return p, nil
}

// Tolerance returns the named tolerance.
func (p *Parameters) Tolerance(name string) (float64, error) {
	tol, ok := p.tolerances[name]
	if !ok {
		return 0, configError(p.Path, &ValidationError{Field: "tolerance." + name, Message: "is required"})
	}
	return tol, nil
}

// Names returns the names of the tolerances that are set, sorted.
func (p *Parameters) Names() []string {
	names := make([]string, 0, len(p.tolerances))
	for name := range p.tolerances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadParameters reads parameters.json, validates it against the embedded
// schema and applies WESTCHECK_TOLERANCE_* overrides. Unknown fields and
// tolerance names are returned as warnings.
func LoadParameters(path string) (*Parameters, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &errors.Error{
			Kind:    errors.KindConfig,
			Message: "cannot read parameters file",
			File:    path,
			Cause:   err,
		}
	}
	return ParseParameters(path, data)
}

// ParseParameters is LoadParameters for content already in memory. path is
// used only in diagnostics.
func ParseParameters(path string, data []byte) (*Parameters, []string, error) {
	if err := schema.ValidateParameters(data); err != nil {
		return nil, nil, configError(path, err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, nil, configError(path, err)
	}

	p := &Parameters{Path: path, tolerances: make(map[string]float64)}
	for _, name := range ToleranceNames {
		key := "tolerance." + name
		if !v.IsSet(key) {
			continue
		}
		tol, err := parseTolerance(key, v.Get(key))
		if err != nil {
			return nil, nil, configError(path, err)
		}
		p.tolerances[name] = tol
	}

	return p, detectUnknownFields(data), nil
}

func configError(path string, cause error) *errors.Error {
	e := &errors.Error{
		Kind:    errors.KindConfig,
		Message: "invalid configuration",
		File:    path,
		Cause:   cause,
	}
	if ve, ok := cause.(*ValidationError); ok {
		e.Key = ve.Field
		e.Message = ve.Message
		e.Cause = nil
	}
	return e
}
