package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "message only",
			err:      &Error{Message: "something failed"},
			expected: "something failed",
		},
		{
			name:     "with file",
			err:      &Error{File: "ref/wstat.json", Message: "missing field"},
			expected: "ref/wstat.json: missing field",
		},
		{
			name:     "with file and key",
			err:      &Error{File: "ref/wstat.json", Key: "exec.davitr", Message: "missing field"},
			expected: "ref/wstat.json: exec.davitr: missing field",
		},
		{
			name:     "with check",
			err:      &Error{Check: "pdep_eigen", File: "a.json", Message: "bad"},
			expected: "[pdep_eigen] a.json: bad",
		},
		{
			name:     "with cause",
			err:      &Error{File: "a.xml", Message: "cannot read artifact", Cause: errors.New("no such file")},
			expected: "a.xml: cannot read artifact: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &Error{
		Message: "wrapper",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}

	errNoCause := &Error{Message: "no cause"}
	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestError_ExitCode(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrorKind
		expected int
	}{
		{"runtime", KindRuntime, ExitFailure},
		{"config", KindConfig, ExitConfigError},
		{"resource", KindResource, ExitInputError},
		{"format", KindFormat, ExitInputError},
		{"tolerance", KindTolerance, ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &Error{Kind: tt.kind}
			if got := err.ExitCode(); got != tt.expected {
				t.Errorf("ExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestErrorKind_String(t *testing.T) {
	if got := KindFormat.String(); got != "format" {
		t.Errorf("KindFormat.String() = %q, want %q", got, "format")
	}
	if got := ErrorKind(42).String(); got != "runtime" {
		t.Errorf("ErrorKind(42).String() = %q, want %q", got, "runtime")
	}
}

func TestNewf(t *testing.T) {
	err := Newf("error %d: %s", 42, "details")

	if err.Kind != KindRuntime {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRuntime)
	}
	if err.Message != "error 42: details" {
		t.Errorf("Message = %q, want %q", err.Message, "error 42: details")
	}
}

func TestConfigf(t *testing.T) {
	err := Configf("field %q: %s", "tolerance.bse", "is required")

	if err.Kind != KindConfig {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConfig)
	}
	expected := `field "tolerance.bse": is required`
	if err.Message != expected {
		t.Errorf("Message = %q, want %q", err.Message, expected)
	}
}

func TestResource(t *testing.T) {
	cause := errors.New("no such file or directory")
	err := Resource("test001/ref/pw.xml", cause)

	if err.Kind != KindResource {
		t.Errorf("Kind = %v, want %v", err.Kind, KindResource)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the cause")
	}
	if err.ExitCode() != ExitInputError {
		t.Errorf("ExitCode() = %d, want %d", err.ExitCode(), ExitInputError)
	}
}

func TestFormatf(t *testing.T) {
	err := Formatf("wfreq.json", "output.Q.K000002", "missing k-point %d", 2)

	expected := "wfreq.json: output.Q.K000002: missing k-point 2"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestTolerance(t *testing.T) {
	err := Tolerance([]string{"PDEP eigenvalues changed, iq Q1", "PDEP eigenvalues changed, iq Q2"}, 0.5)

	expected := "PDEP eigenvalues changed, iq Q1; PDEP eigenvalues changed, iq Q2 (max diff: 0.5)"
	if err.Message != expected {
		t.Errorf("Message = %q, want %q", err.Message, expected)
	}
	if err.Kind != KindTolerance {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTolerance)
	}
}

func TestWithCheck(t *testing.T) {
	orig := Format("a.json", "exec", "missing field")
	labelled := orig.WithCheck("tddft_forces")

	if orig.Check != "" {
		t.Error("WithCheck() must not mutate the receiver")
	}
	if labelled.Check != "tddft_forces" {
		t.Errorf("Check = %q, want %q", labelled.Check, "tddft_forces")
	}
}

func TestKindPredicates(t *testing.T) {
	wrapped := fmt.Errorf("case test001: %w", Format("a.json", "exec", "missing"))

	if !IsFormat(wrapped) {
		t.Error("IsFormat() should see through fmt.Errorf wrapping")
	}
	if IsResource(wrapped) {
		t.Error("IsResource() = true for a format error")
	}
	if IsTolerance(nil) {
		t.Error("IsTolerance(nil) = true")
	}
	if !IsTolerance(Tolerance([]string{"x"}, 1)) {
		t.Error("IsTolerance() = false for a tolerance error")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"runtime", New("runtime"), ExitFailure},
		{"config", Config("config"), ExitConfigError},
		{"wrapped format", fmt.Errorf("ctx: %w", Format("f", "k", "m")), ExitInputError},
		{"generic error", errors.New("generic"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.expected {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitFailure != 1 {
		t.Errorf("ExitFailure = %d, want 1", ExitFailure)
	}
	if ExitConfigError != 2 {
		t.Errorf("ExitConfigError = %d, want 2", ExitConfigError)
	}
	if ExitInputError != 3 {
		t.Errorf("ExitInputError = %d, want 3", ExitInputError)
	}
}
