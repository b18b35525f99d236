package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// parseTolerance converts a tolerance given as a number or a numeric string
// and checks that it is a finite, non-negative value.
func parseTolerance(field string, raw interface{}) (float64, error) {
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
	}
	if _, ok := raw.(bool); ok {
		return 0, &ValidationError{Field: field, Message: "must be a number"}
	}

	tol, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("must be a number, got %v", raw)}
	}
	return tol, ValidateTolerance(field, tol)
}

// ValidateTolerance checks that tol can be used as an absolute tolerance.
func ValidateTolerance(field string, tol float64) error {
	switch {
	case math.IsNaN(tol) || math.IsInf(tol, 0):
		return &ValidationError{Field: field, Message: "must be finite"}
	case tol < 0:
		return &ValidationError{Field: field, Message: "must not be negative"}
	}
	return nil
}

// ValidateCheckName checks that name is a known check.
func ValidateCheckName(name string) error {
	for _, known := range CheckNames {
		if name == known {
			return nil
		}
	}
	return &ValidationError{
		Field:   "check",
		Message: fmt.Sprintf("unknown check %q (known: %s)", name, strings.Join(CheckNames, ", ")),
	}
}

// ValidatePattern checks that pattern is a well-formed filepath.Match glob.
func ValidatePattern(field, pattern string) error {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return &ValidationError{Field: field, Message: fmt.Sprintf("invalid glob %q", pattern)}
	}
	return nil
}

func validateManifest(m *Manifest) error {
	if err := ValidatePattern("tests_pattern", m.TestsPattern); err != nil {
		return err
	}
	for name := range m.Checks {
		if err := ValidateCheckName(name); err != nil {
			return &ValidationError{Field: "checks." + name, Message: "unknown check"}
		}
	}
	return nil
}
