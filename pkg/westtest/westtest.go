// Package westtest runs westcheck regression checks from Go tests.
//
// A suite driven by "go test" can replace the CLI with a single call:
//
//	func TestRegression(t *testing.T) {
//	    westtest.Run(t, "testdata/suite", westtest.WithChecks("pdep_eigen"))
//	}
//
// Each (check, test directory) case becomes a subtest named
// "<check>/<testdir>", so "go test -run" can select single cases.
package westtest

import (
	"testing"

	"github.com/AndreyAkinshin/westcheck/internal/compare"
	"github.com/AndreyAkinshin/westcheck/internal/logging"
	"github.com/AndreyAkinshin/westcheck/internal/project"
	"github.com/AndreyAkinshin/westcheck/internal/suite"
)

type options struct {
	project project.Options
	filter  suite.Filter
}

// Option configures Run.
type Option func(*options)

// WithChecks restricts the run to the named checks.
func WithChecks(names ...string) Option {
	return func(o *options) { o.filter.Checks = append(o.filter.Checks, names...) }
}

// WithTests restricts the run to test directories matching a glob pattern.
func WithTests(pattern string) Option {
	return func(o *options) { o.filter.Tests = pattern }
}

// WithParams reads tolerances from path instead of <root>/parameters.json.
func WithParams(path string) Option {
	return func(o *options) { o.project.ParamsPath = path }
}

// WithManifest reads the case list from path instead of <root>/suite.yaml.
func WithManifest(path string) Option {
	return func(o *options) { o.project.ManifestPath = path }
}

// Run evaluates every selected case of the suite rooted at root as a
// subtest. Max differences are logged; a case that fails or cannot be
// evaluated fails its subtest.
func Run(t *testing.T, root string, opts ...Option) {
	t.Helper()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p, err := project.LoadProjectFrom(root, o.project)
	if err != nil {
		t.Fatalf("westtest: %v", err)
	}
	for _, w := range p.Warnings {
		t.Logf("warning: %s", w)
	}

	runner := suite.NewRunner(p.Root, p.Parameters, p.Manifest, nil, logging.NewNop())
	cases, err := runner.Cases(o.filter)
	if err != nil {
		t.Fatalf("westtest: %v", err)
	}
	if len(cases) == 0 {
		t.Logf("no cases selected in %s", p.Root)
		return
	}

	for _, c := range cases {
		t.Run(c.Name(), func(t *testing.T) {
			res := runner.Evaluate(c)
			for _, rep := range res.Reports {
				t.Logf("%s max diff: %v", rep.Label, rep.MaxDiff)
			}
			if res.Err != nil {
				t.Error(res.Err)
			}
		})
	}
}

// AssertWithin compares one candidate artifact with its reference using the
// named check and reports a test error if they differ beyond tol.
func AssertWithin(tb testing.TB, check, candidate, reference string, tol float64) bool {
	tb.Helper()

	c, ok := suite.Lookup(check)
	if !ok {
		tb.Errorf("westtest: unknown check %q", check)
		return false
	}

	cmp := compare.New(logReporter{tb}, nil)
	if _, err := c.Compare(cmp, candidate, reference, tol); err != nil {
		tb.Errorf("%s: %v", check, err)
		return false
	}
	return true
}

type logReporter struct {
	tb testing.TB
}

func (r logReporter) MaxDiff(label string, diff float64) {
	r.tb.Logf("%s max diff: %v", label, diff)
}
