package suite

import (
	"context"
	stderrors "errors"
	"path/filepath"
	"time"

	"github.com/AndreyAkinshin/westcheck/internal/compare"
	"github.com/AndreyAkinshin/westcheck/internal/config"
	"github.com/AndreyAkinshin/westcheck/internal/errors"
	"github.com/AndreyAkinshin/westcheck/internal/logging"
)

// Progress receives the output of a run. Each case is delivered in full,
// in manifest order, once it has been evaluated.
type Progress interface {
	CheckHeading(check string)
	CaseStart(check, testDir string)
	MaxDiff(label string, diff float64)
	CasePassed(check, testDir string)
	CaseFailed(check, testDir string, err error)
}

// Report is one max-diff line produced by a comparison.
type Report struct {
	Label   string
	MaxDiff float64
}

// Status classifies the outcome of a case.
type Status int

const (
	StatusPassed Status = iota
	// StatusFailed means a tolerance was exceeded.
	StatusFailed
	// StatusErrored means the case could not be evaluated.
	StatusErrored
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	default:
		return "errored"
	}
}

// CaseResult is the outcome of one (check, test directory) case.
type CaseResult struct {
	Check    string
	TestDir  string
	Result   *compare.Result
	Reports  []Report
	Err      error
	Duration time.Duration
}

// Status returns the classification of the case.
func (r CaseResult) Status() Status {
	switch {
	case r.Err == nil:
		return StatusPassed
	case errors.IsTolerance(r.Err):
		return StatusFailed
	default:
		return StatusErrored
	}
}

// Name returns "check/testdir".
func (r CaseResult) Name() string {
	return r.Check + "/" + r.TestDir
}

// Summary aggregates the cases of a run.
type Summary struct {
	Cases   []CaseResult
	Passed  int
	Failed  int
	Errored int
}

func (s *Summary) add(r CaseResult) {
	s.Cases = append(s.Cases, r)
	switch r.Status() {
	case StatusPassed:
		s.Passed++
	case StatusFailed:
		s.Failed++
	default:
		s.Errored++
	}
}

// Total returns the number of evaluated cases.
func (s *Summary) Total() int {
	return len(s.Cases)
}

// OK reports whether every case passed.
func (s *Summary) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}

// ExitCode returns the most severe exit code among the cases.
func (s *Summary) ExitCode() int {
	code := errors.ExitSuccess
	for _, c := range s.Cases {
		if ec := errors.GetExitCode(c.Err); ec > code {
			code = ec
		}
	}
	return code
}

// Err joins the errors of every case that did not pass.
func (s *Summary) Err() error {
	var errs []error
	for _, c := range s.Cases {
		if c.Err != nil {
			errs = append(errs, c.Err)
		}
	}
	return stderrors.Join(errs...)
}

// Filter selects the cases of a run.
type Filter struct {
	Checks []string // Check names; empty selects every check
	Tests  string   // filepath.Match glob on test directory names; empty matches all
}

// RunOptions configures execution behaviour.
type RunOptions struct {
	Filter   Filter
	FailFast bool // Stop after the first case that does not pass
}

// Runner evaluates checks over the test directories of a suite.
type Runner struct {
	root     string
	params   *config.Parameters
	manifest *config.Manifest
	progress Progress
	log      logging.Logger
}

// NewRunner creates a Runner for the suite at root. progress and log may be
// nil.
func NewRunner(root string, params *config.Parameters, manifest *config.Manifest, progress Progress, log logging.Logger) *Runner {
	if manifest == nil {
		manifest = config.DefaultManifest()
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Runner{
		root:     root,
		params:   params,
		manifest: manifest,
		progress: progress,
		log:      log.Named("suite"),
	}
}

// Case is one scheduled (check, test directory) pair.
type Case struct {
	Check   Check
	TestDir string
}

// Name returns "check/testdir".
func (c Case) Name() string {
	return c.Check.Name + "/" + c.TestDir
}

// Cases returns the cases selected by f in run order.
func (r *Runner) Cases(f Filter) ([]Case, error) {
	selected, err := selectChecks(f.Checks)
	if err != nil {
		return nil, err
	}
	if f.Tests != "" {
		if err := config.ValidatePattern("tests", f.Tests); err != nil {
			return nil, errors.Configf("%v", err)
		}
	}

	var cases []Case
	for _, c := range selected {
		for _, dir := range r.manifest.TestDirs(c.Name) {
			if !matches(r.manifest.TestsPattern, dir) || !matches(f.Tests, dir) {
				continue
			}
			cases = append(cases, Case{Check: c, TestDir: dir})
		}
	}
	return cases, nil
}

func selectChecks(names []string) ([]Check, error) {
	if len(names) == 0 {
		return Checks(), nil
	}
	want := make(map[string]bool, len(names))
	for _, name := range names {
		if err := config.ValidateCheckName(name); err != nil {
			return nil, errors.Configf("%v", err)
		}
		want[name] = true
	}
	var out []Check
	for _, c := range catalogue {
		if want[c.Name] {
			out = append(out, c)
		}
	}
	return out, nil
}

func matches(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	ok, err := filepath.Match(pattern, name)
	return err == nil && ok
}

// Run evaluates every selected case in order and returns the summary. The
// error is non-nil only when the run could not start or ctx was cancelled;
// case failures are reported through the summary.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	cases, err := r.Cases(opts.Filter)
	if err != nil {
		return nil, err
	}
	r.log.Debug("run planned",
		logging.Int("cases", len(cases)),
		logging.Bool("fail_fast", opts.FailFast),
	)

	summary := &Summary{}
	heading := ""
	for _, c := range cases {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		res := r.Evaluate(c)
		r.emit(&heading, res)
		summary.add(res)
		if opts.FailFast && res.Err != nil {
			break
		}
	}
	return summary, nil
}

// Evaluate runs one case.
func (r *Runner) Evaluate(c Case) CaseResult {
	start := time.Now()
	res := CaseResult{Check: c.Check.Name, TestDir: c.TestDir}

	rec := &recorder{}
	res.Result, res.Err = r.compare(c, rec)
	res.Reports = rec.reports
	res.Duration = time.Since(start)

	fields := []logging.Field{
		logging.String("check", res.Check),
		logging.String("test_dir", res.TestDir),
		logging.String("status", res.Status().String()),
		logging.Duration("duration", res.Duration),
	}
	if res.Err != nil {
		r.log.Info("case finished", append(fields, logging.Err(res.Err))...)
	} else {
		r.log.Debug("case finished", fields...)
	}
	return res
}

func (r *Runner) compare(j Case, rec *recorder) (*compare.Result, error) {
	if r.params == nil {
		return nil, errors.Config("no parameters loaded").WithCheck(j.Check.Name)
	}
	tol, err := r.params.Tolerance(j.Check.Tolerance)
	if err != nil {
		return nil, withCheck(err, j.Check.Name)
	}

	cand, ref := j.Check.Paths(filepath.Join(r.root, j.TestDir))
	cmp := compare.New(rec, r.log)
	result, err := j.Check.Compare(cmp, cand, ref, tol)
	if err != nil {
		return result, withCheck(err, j.Check.Name)
	}
	return result, nil
}

func withCheck(err error, check string) error {
	var we *errors.Error
	if stderrors.As(err, &we) {
		return we.WithCheck(check)
	}
	return err
}

// emit forwards a finished case to the progress sink.
func (r *Runner) emit(heading *string, res CaseResult) {
	if r.progress == nil {
		return
	}
	if *heading != res.Check {
		*heading = res.Check
		r.progress.CheckHeading(res.Check)
	}
	r.progress.CaseStart(res.Check, res.TestDir)
	for _, rep := range res.Reports {
		r.progress.MaxDiff(rep.Label, rep.MaxDiff)
	}
	if res.Err != nil {
		r.progress.CaseFailed(res.Check, res.TestDir, res.Err)
	} else {
		r.progress.CasePassed(res.Check, res.TestDir)
	}
}

// recorder collects the max-diff lines of one comparison.
type recorder struct {
	reports []Report
}

func (rec *recorder) MaxDiff(label string, diff float64) {
	rec.reports = append(rec.reports, Report{Label: label, MaxDiff: diff})
}
