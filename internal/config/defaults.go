package config

import "fmt"

// Tolerance names read from the "tolerance" object of parameters.json.
const (
	ToleranceTotalEnergy    = "total_energy"
	TolerancePDEPEigenvalue = "pdep_eigenvalue"
	ToleranceSingleParticle = "singleparticle_energy"
	ToleranceBSE            = "bse"
	ToleranceForces         = "forces"
)

// ToleranceNames lists every tolerance name westcheck understands.
var ToleranceNames = []string{
	ToleranceTotalEnergy,
	TolerancePDEPEigenvalue,
	ToleranceSingleParticle,
	ToleranceBSE,
	ToleranceForces,
}

// Default file names and manifest values.
const (
	DefaultParametersFile = "parameters.json"
	DefaultManifestFile   = "suite.yaml"
	DefaultTestsPattern   = "*"
)

// Check names.
const (
	CheckTotalEnergy    = "total_energy"
	CheckPDEPEigen      = "pdep_eigen"
	CheckSingleParticle = "singleparticle_energy"
	CheckBSESpectrum    = "bse_spectrum"
	CheckBSEEigen       = "bse_eigen"
	CheckTDDFTForces    = "tddft_forces"
)

// CheckNames lists every check in run order.
var CheckNames = []string{
	CheckTotalEnergy,
	CheckPDEPEigen,
	CheckSingleParticle,
	CheckBSESpectrum,
	CheckBSEEigen,
	CheckTDDFTForces,
}

// defaultChecks are the test directories each check evaluates when no
// manifest overrides them.
var defaultChecks = map[string][]string{
	CheckTotalEnergy:    testDirs(1, 28),
	CheckPDEPEigen:      concat(testDirs(1, 7), testDirs(9, 14), testDirs(16, 17), testDirs(20, 20)),
	CheckSingleParticle: concat(testDirs(1, 4), testDirs(6, 7), testDirs(9, 14), testDirs(20, 20)),
	CheckBSESpectrum:    {"test016", "test018"},
	CheckBSEEigen:       concat(testDirs(17, 17), testDirs(19, 19), testDirs(21, 28)),
	CheckTDDFTForces:    testDirs(22, 28),
}

func testDirs(from, to int) []string {
	dirs := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		dirs = append(dirs, fmt.Sprintf("test%03d", i))
	}
	return dirs
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// DefaultManifest returns the built-in manifest.
func DefaultManifest() *Manifest {
	m := &Manifest{}
	applyManifestDefaults(m)
	return m
}

func applyManifestDefaults(m *Manifest) {
	if m.TestsPattern == "" {
		m.TestsPattern = DefaultTestsPattern
	}
	if m.Checks == nil {
		m.Checks = make(map[string][]string, len(defaultChecks))
		for name, dirs := range defaultChecks {
			m.Checks[name] = append([]string(nil), dirs...)
		}
	}
}
