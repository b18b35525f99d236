// Package suite evaluates the regression checks of a westcheck suite over
// its test directories.
package suite

import (
	"path/filepath"

	"github.com/AndreyAkinshin/westcheck/internal/compare"
	"github.com/AndreyAkinshin/westcheck/internal/config"
)

// Check is one regression check: which artifact of a test directory is
// compared with which reference, under which tolerance.
type Check struct {
	Name        string
	Description string
	Tolerance   string // Name of the tolerance in parameters.json
	Candidate   string // Candidate artifact, relative to the test directory
	Reference   string // Reference artifact, relative to the test directory
	Compare     compare.Func
}

// Paths returns the candidate and reference artifact paths of testDir.
func (c Check) Paths(testDir string) (candidate, reference string) {
	return filepath.Join(testDir, filepath.FromSlash(c.Candidate)),
		filepath.Join(testDir, filepath.FromSlash(c.Reference))
}

var catalogue = []Check{
	{
		Name:        config.CheckTotalEnergy,
		Description: "Ground-state total energy",
		Tolerance:   config.ToleranceTotalEnergy,
		Candidate:   "test.save/data-file-schema.xml",
		Reference:   "ref/pw.xml",
		Compare:     (*compare.Comparator).TotalEnergy,
	},
	{
		Name:        config.CheckPDEPEigen,
		Description: "PDEP eigenvalues per momentum point",
		Tolerance:   config.TolerancePDEPEigenvalue,
		Candidate:   "test.wstat.save/wstat.json",
		Reference:   "ref/wstat.json",
		Compare:     (*compare.Comparator).PDEPEigenvalues,
	},
	{
		Name:        config.CheckSingleParticle,
		Description: "Single-particle energies per k-point",
		Tolerance:   config.ToleranceSingleParticle,
		Candidate:   "test.wfreq.save/wfreq.json",
		Reference:   "ref/wfreq.json",
		Compare:     (*compare.Comparator).SingleParticleEnergies,
	},
	{
		Name:        config.CheckBSESpectrum,
		Description: "Lanczos beta and zeta coefficients",
		Tolerance:   config.ToleranceBSE,
		Candidate:   "test.wbse.save/wbse.json",
		Reference:   "ref/wbse.json",
		Compare:     (*compare.Comparator).BSESpectrum,
	},
	{
		Name:        config.CheckBSEEigen,
		Description: "Converged BSE/TDDFT eigenvalues",
		Tolerance:   config.ToleranceBSE,
		Candidate:   "test.wbse.save/wbse.json",
		Reference:   "ref/wbse.json",
		Compare:     (*compare.Comparator).BSEEigenvalues,
	},
	{
		Name:        config.CheckTDDFTForces,
		Description: "TDDFT excited-state forces",
		Tolerance:   config.ToleranceForces,
		Candidate:   "test.wbse.save/wbse.json",
		Reference:   "ref/wbse.json",
		Compare:     (*compare.Comparator).TDDFTForces,
	},
}

// Checks returns every check in run order.
func Checks() []Check {
	return append([]Check(nil), catalogue...)
}

// Lookup returns the check with the given name.
func Lookup(name string) (Check, bool) {
	for _, c := range catalogue {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}
