package westcheck_test

import (
	"testing"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
	"github.com/AndreyAkinshin/westcheck/pkg/westcheck"
)

func TestExitCodeValues(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", westcheck.ExitSuccess, 0},
		{"ExitFailure", westcheck.ExitFailure, 1},
		{"ExitConfigError", westcheck.ExitConfigError, 2},
		{"ExitInputError", westcheck.ExitInputError, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("westcheck.%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

// TestExitCodeConsistency keeps the public constants in step with the codes
// the CLI actually returns.
func TestExitCodeConsistency(t *testing.T) {
	tests := []struct {
		name     string
		public   int
		internal int
	}{
		{"Success", westcheck.ExitSuccess, errors.ExitSuccess},
		{"Failure", westcheck.ExitFailure, errors.ExitFailure},
		{"ConfigError", westcheck.ExitConfigError, errors.ExitConfigError},
		{"InputError", westcheck.ExitInputError, errors.ExitInputError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.public != tt.internal {
				t.Errorf("exit code mismatch: westcheck constant = %d, errors constant = %d",
					tt.public, tt.internal)
			}
		})
	}
}
