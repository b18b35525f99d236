// Package compare implements the six observable comparisons of westcheck.
//
// Every comparison reads a candidate and a reference artifact, computes the
// elementwise absolute difference of each compared array, reports the
// maximum difference through a Reporter, and then fails if any element
// differs by more than the absolute tolerance. Relative tolerance is zero.
//
// Comparison is per key (momentum point, k-point field, force label). The
// global maximum over all keys is reported before a failure is returned,
// and every violating key is listed in the failure.
package compare

import (
	"fmt"
	"sort"

	"github.com/AndreyAkinshin/westcheck/internal/artifact"
	"github.com/AndreyAkinshin/westcheck/internal/errors"
	"github.com/AndreyAkinshin/westcheck/internal/logging"
)

// Report labels, one per printed max-diff line.
const (
	LabelTotalEnergy    = "Total energy (pwscf)"
	LabelPDEP           = "PDEP eigenvalues (wstat)"
	LabelSingleParticle = "Single-particle energy (wfreq)"
	LabelBSEBeta        = "BSE/TDDFT beta (wbse)"
	LabelBSEZeta        = "BSE/TDDFT zeta (wbse)"
	LabelBSEEigenvalues = "BSE/TDDFT eigenvalues (wbse)"
	LabelForces         = "TDDFT forces (wbse)"
)

// Reporter receives one line per compared array group, whether the
// comparison passes or not.
type Reporter interface {
	MaxDiff(label string, diff float64)
}

// KeyDiff is the outcome for one compared key.
type KeyDiff struct {
	Key     string
	MaxDiff float64
	Passed  bool
}

// Result is the outcome of one comparison.
type Result struct {
	Labels     []string // Report labels, in print order
	Tolerance  float64
	MaxDiff    float64 // Maximum over all keys; NaN if any difference is NaN
	Keys       []KeyDiff
	Violations []string // Failure label of every key beyond tolerance
}

// Passed reports whether every key was within tolerance.
func (r *Result) Passed() bool {
	return len(r.Violations) == 0
}

// Comparator runs comparisons and reports their maximum differences.
type Comparator struct {
	report Reporter
	log    logging.Logger
}

// New creates a Comparator. A nil logger disables logging.
func New(report Reporter, log logging.Logger) *Comparator {
	if log == nil {
		log = logging.NewNop()
	}
	return &Comparator{report: report, log: log}
}

// Func is the signature shared by every comparison method, so callers can
// select one with a method expression such as (*Comparator).TotalEnergy.
type Func func(c *Comparator, candidate, reference string, tol float64) (*Result, error)

// series is one compared array.
type series struct {
	key       string
	failure   string
	candidate []float64
	reference []float64
}

// group is a set of series reported on a single line.
type group struct {
	label  string
	series []series
}

func (c *Comparator) evaluate(tol float64, groups ...group) (*Result, error) {
	res := &Result{Tolerance: tol}
	for _, g := range groups {
		groupMax := 0.0
		for _, s := range g.series {
			d := MaxAbsDiff(s.candidate, s.reference)
			ok := AllClose(s.candidate, s.reference, tol)
			res.Keys = append(res.Keys, KeyDiff{Key: s.key, MaxDiff: d, Passed: ok})
			if !ok {
				res.Violations = append(res.Violations, s.failure)
			}
			groupMax = maxOf(groupMax, d)
		}
		if c.report != nil {
			c.report.MaxDiff(g.label, groupMax)
		}
		res.Labels = append(res.Labels, g.label)
		res.MaxDiff = maxOf(res.MaxDiff, groupMax)
	}

	c.log.Debug("comparison evaluated",
		logging.Float64("max_diff", res.MaxDiff),
		logging.Float64("tolerance", tol),
		logging.Int("keys", len(res.Keys)),
		logging.Int("violations", len(res.Violations)),
	)

	if !res.Passed() {
		return res, errors.Tolerance(res.Violations, res.MaxDiff)
	}
	return res, nil
}

// pair validates that a candidate array can be compared with its reference.
func pair(candidatePath, key, failure string, cand, ref []float64) (series, error) {
	if err := checkShape(cand, ref); err != nil {
		return series{}, errors.Format(candidatePath, key, err.Error())
	}
	return series{key: key, failure: failure, candidate: cand, reference: ref}, nil
}

func (c *Comparator) start(op, candidate, reference string, tol float64) error {
	if !validTolerance(tol) {
		return errors.Configf("%s: tolerance must be a non-negative number, got %v", op, tol)
	}
	c.log.Debug("comparing artifacts",
		logging.String("observable", op),
		logging.String("candidate", candidate),
		logging.String("reference", reference),
	)
	return nil
}

func missingInCandidate(candidatePath, key string) error {
	return errors.Format(candidatePath, key, "missing in candidate")
}

// TotalEnergy compares the ground-state total energies of two XML data files.
func (c *Comparator) TotalEnergy(candidate, reference string, tol float64) (*Result, error) {
	if err := c.start("total energy", candidate, reference, tol); err != nil {
		return nil, err
	}
	cand, err := artifact.ReadTotalEnergy(candidate)
	if err != nil {
		return nil, err
	}
	ref, err := artifact.ReadTotalEnergy(reference)
	if err != nil {
		return nil, err
	}

	return c.evaluate(tol, group{
		label: LabelTotalEnergy,
		series: []series{{
			key:       "etot",
			failure:   "Total energies changed",
			candidate: []float64{cand},
			reference: []float64{ref},
		}},
	})
}

// PDEPEigenvalues compares the converged PDEP eigenvalues of every momentum
// point of two wstat.json files.
func (c *Comparator) PDEPEigenvalues(candidate, reference string, tol float64) (*Result, error) {
	if err := c.start("PDEP eigenvalues", candidate, reference, tol); err != nil {
		return nil, err
	}
	cand, err := artifact.ReadPDEPEigenvalues(candidate)
	if err != nil {
		return nil, err
	}
	ref, err := artifact.ReadPDEPEigenvalues(reference)
	if err != nil {
		return nil, err
	}

	g := group{label: LabelPDEP}
	for _, q := range sortedKeys(ref) {
		cv, ok := cand[q]
		if !ok {
			return nil, missingInCandidate(candidate, q)
		}
		s, err := pair(candidate, q, "PDEP eigenvalues changed, iq "+q, cv, ref[q])
		if err != nil {
			return nil, err
		}
		g.series = append(g.series, s)
	}
	return c.evaluate(tol, g)
}

// SingleParticleEnergies compares every single-particle field of every
// k-point of two wfreq.json files. Values are compared by magnitude, so the
// phase of complex fields is not checked.
func (c *Comparator) SingleParticleEnergies(candidate, reference string, tol float64) (*Result, error) {
	if err := c.start("single-particle energies", candidate, reference, tol); err != nil {
		return nil, err
	}
	cand, err := artifact.ReadSingleParticleEnergies(candidate)
	if err != nil {
		return nil, err
	}
	ref, err := artifact.ReadSingleParticleEnergies(reference)
	if err != nil {
		return nil, err
	}

	g := group{label: LabelSingleParticle}
	for _, ik := range ref.KPoints() {
		label := artifact.KPointLabel(ik)
		cfields, ok := cand[ik]
		if !ok {
			return nil, missingInCandidate(candidate, label)
		}
		for _, name := range sortedKeys(ref[ik]) {
			key := label + "." + name
			cf, ok := cfields[name]
			if !ok {
				return nil, missingInCandidate(candidate, key)
			}
			failure := fmt.Sprintf("Single-particle energies changed, ik %d, field %s", ik, name)
			s, err := pair(candidate, key, failure, fieldMagnitudes(cf), fieldMagnitudes(ref[ik][name]))
			if err != nil {
				return nil, err
			}
			g.series = append(g.series, s)
		}
	}
	return c.evaluate(tol, g)
}

// BSESpectrum compares the Lanczos beta and zeta coefficients of two
// wbse.json files. Beta and zeta are reported on separate lines.
func (c *Comparator) BSESpectrum(candidate, reference string, tol float64) (*Result, error) {
	if err := c.start("BSE Lanczos coefficients", candidate, reference, tol); err != nil {
		return nil, err
	}
	cand, err := artifact.ReadLanczos(candidate)
	if err != nil {
		return nil, err
	}
	ref, err := artifact.ReadLanczos(reference)
	if err != nil {
		return nil, err
	}

	beta, err := pair(candidate, "beta", "BSE/TDDFT beta changed", cand.Beta, ref.Beta)
	if err != nil {
		return nil, err
	}
	zeta, err := pair(candidate, "zeta", "BSE/TDDFT zeta changed", cand.Zeta, ref.Zeta)
	if err != nil {
		return nil, err
	}
	return c.evaluate(tol,
		group{label: LabelBSEBeta, series: []series{beta}},
		group{label: LabelBSEZeta, series: []series{zeta}},
	)
}

// BSEEigenvalues compares the final Davidson eigenvalues of two wbse.json
// files.
func (c *Comparator) BSEEigenvalues(candidate, reference string, tol float64) (*Result, error) {
	if err := c.start("BSE eigenvalues", candidate, reference, tol); err != nil {
		return nil, err
	}
	cand, err := artifact.ReadBSEEigenvalues(candidate)
	if err != nil {
		return nil, err
	}
	ref, err := artifact.ReadBSEEigenvalues(reference)
	if err != nil {
		return nil, err
	}

	s, err := pair(candidate, "ev", "BSE/TDDFT eigenvalues changed", cand, ref)
	if err != nil {
		return nil, err
	}
	return c.evaluate(tol, group{label: LabelBSEEigenvalues, series: []series{s}})
}

// TDDFTForces compares every force entry of two wbse.json files.
func (c *Comparator) TDDFTForces(candidate, reference string, tol float64) (*Result, error) {
	if err := c.start("TDDFT forces", candidate, reference, tol); err != nil {
		return nil, err
	}
	cand, err := artifact.ReadForces(candidate)
	if err != nil {
		return nil, err
	}
	ref, err := artifact.ReadForces(reference)
	if err != nil {
		return nil, err
	}

	g := group{label: LabelForces}
	for _, label := range ref.Labels() {
		cv, ok := cand[label]
		if !ok {
			return nil, missingInCandidate(candidate, label)
		}
		s, err := pair(candidate, label, "TDDFT forces changed, field "+label, cv, ref[label])
		if err != nil {
			return nil, err
		}
		g.series = append(g.series, s)
	}
	return c.evaluate(tol, g)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
