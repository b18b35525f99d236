package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func pwXML(etot string) string {
	return `<?xml version="1.0"?><qes:espresso xmlns:qes="http://www.quantum-espresso.org/ns/qes/qes-1.0">` +
		`<output><total_energy><etot>` + etot + `</etot></total_energy></output></qes:espresso>`
}

func energyFixture(t *testing.T, root, dir, candidate, reference string) {
	t.Helper()
	writeFile(t, root, dir+"/test.save/data-file-schema.xml", pwXML(candidate))
	writeFile(t, root, dir+"/ref/pw.xml", pwXML(reference))
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "westcheck", cmd.Use)
	assert.Contains(t, cmd.Long, "parameters.json")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"run", "compare", "checks", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	quiet := cmd.PersistentFlags().Lookup("quiet")
	require.NotNil(t, quiet)
	assert.Equal(t, "q", quiet.Shorthand)

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	for _, name := range []string{"root", "params"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	run, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	for _, name := range []string{"check", "tests", "manifest", "fail-fast"} {
		assert.NotNil(t, run.Flags().Lookup(name), name)
	}
	assert.Equal(t, "false", run.Flags().Lookup("fail-fast").DefValue)
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, errors.ExitSuccess, code)
	assert.Equal(t, "westcheck "+Version+"\n", stdout)

	code, stdout, _ = runCLI(t, "--version")
	assert.Equal(t, errors.ExitSuccess, code)
	assert.Equal(t, "westcheck "+Version+"\n", stdout)
}

func TestChecks(t *testing.T) {
	code, stdout, _ := runCLI(t, "checks")
	require.Equal(t, errors.ExitSuccess, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "CHECK"))
	for i, name := range []string{"total_energy", "pdep_eigen", "singleparticle_energy", "bse_spectrum", "bse_eigen", "tddft_forces"} {
		assert.True(t, strings.HasPrefix(lines[i+2], name+" "), lines[i+2])
	}
	assert.Contains(t, stdout, "test.wfreq.save/wfreq.json")
}

func TestUnknownCommandAndFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "frobnicate")
	assert.Equal(t, errors.ExitConfigError, code)
	assert.Contains(t, stderr, "westcheck:")

	code, _, stderr = runCLI(t, "run", "--no-such-flag")
	assert.Equal(t, errors.ExitConfigError, code)
	assert.Contains(t, stderr, "--help")
}

func TestRun_AllPass(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "parameters.json", `{"tolerance": {"total_energy": "1e-5"}}`)
	writeFile(t, root, "suite.yaml", "checks:\n  total_energy: [test001]\n")
	energyFixture(t, root, "test001", "-100.123456", "-100.123450")

	code, stdout, stderr := runCLI(t, "run", "--root", root)
	assert.Equal(t, errors.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Total energy (pwscf) max diff: 5.99999")
	assert.Contains(t, stdout, "All 1 cases passed.")
}

func TestRun_Interrupted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "parameters.json", `{"tolerance": {"total_energy": "1e-5"}}`)
	writeFile(t, root, "suite.yaml", "checks:\n  total_energy: [test001]\n")
	energyFixture(t, root, "test001", "-1.0", "-1.0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := execute(ctx, []string{"run", "--root", root}, &stdout, &stderr)
	assert.Equal(t, errors.ExitFailure, code)
	assert.Contains(t, stderr.String(), "interrupted after 0 cases")
	assert.NotContains(t, stderr.String(), "--help")
	assert.NotContains(t, stdout.String(), "passed")
}

func TestRun_ErroredCaseExitCode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "parameters.json", `{"tolerance": {"total_energy": 1e-5}}`)
	writeFile(t, root, "suite.yaml", "checks:\n  total_energy: [test001]\n")

	code, stdout, stderr := runCLI(t, "run", "--root", root)
	assert.Equal(t, errors.ExitInputError, code)
	assert.Contains(t, stderr, "cannot read artifact")
	assert.Contains(t, stdout, "Errored: 1")
}

func TestRun_UnknownToleranceWarning(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "parameters.json", `{"tolerance": {"total_energy": 1e-5, "energy": 1}}`)
	writeFile(t, root, "suite.yaml", "checks:\n  total_energy: []\n")

	code, _, stderr := runCLI(t, "run", "--root", root)
	assert.Equal(t, errors.ExitSuccess, code)
	assert.Contains(t, stderr, `warning: unknown tolerance "energy" (ignored)`)
	assert.Contains(t, stderr, "warning: no cases selected")
}

func TestRun_ConfigErrors(t *testing.T) {
	empty := t.TempDir()
	code, _, stderr := runCLI(t, "run", "--root", empty)
	assert.Equal(t, errors.ExitConfigError, code)
	assert.Contains(t, stderr, "cannot read parameters file")

	code, _, _ = runCLI(t, "run", "--root", filepath.Join(empty, "missing"))
	assert.Equal(t, errors.ExitConfigError, code)

	root := t.TempDir()
	writeFile(t, root, "parameters.json", `{"tolerance": {}}`)
	code, _, stderr = runCLI(t, "run", "--root", root, "--check", "band_gap")
	assert.Equal(t, errors.ExitConfigError, code)
	assert.Contains(t, stderr, "band_gap")
}

func TestRun_ExplicitParamsAndManifest(t *testing.T) {
	root := t.TempDir()
	energyFixture(t, root, "test001", "-10.0", "-10.25")
	other := t.TempDir()
	params := writeFile(t, other, "loose.json", `{"tolerance": {"total_energy": 0.5}}`)
	manifest := writeFile(t, other, "smoke.yaml", "checks:\n  total_energy: [test001]\n")

	code, stdout, stderr := runCLI(t, "run", "--root", root, "--params", params, "--manifest", manifest)
	assert.Equal(t, errors.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "max diff: 0.25")
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	cand := writeFile(t, dir, "cand.xml", pwXML("-100.123456"))
	ref := writeFile(t, dir, "ref.xml", pwXML("-100.123450"))

	code, stdout, _ := runCLI(t, "compare", "total_energy", cand, ref, "--tolerance", "1e-5")
	assert.Equal(t, errors.ExitSuccess, code)
	assert.Contains(t, stdout, "Total energy (pwscf) max diff: ")
	assert.Contains(t, stdout, "total_energy passed")

	code, stdout, stderr := runCLI(t, "compare", "total_energy", cand, ref, "--tolerance", "1e-7")
	assert.Equal(t, errors.ExitFailure, code)
	assert.Contains(t, stdout, "Total energy (pwscf) max diff: ")
	assert.Contains(t, stderr, "westcheck: [total_energy] Total energies changed")
}

func TestCompare_ToleranceFromParams(t *testing.T) {
	dir := t.TempDir()
	cand := writeFile(t, dir, "cand.json", `{"exec": {"forces": {"Fx_atom1": [0.01, 0.02]}}}`)
	params := writeFile(t, dir, "parameters.json", `{"tolerance": {"forces": 1e-6}}`)

	code, _, stderr := runCLI(t, "compare", "tddft_forces", cand, cand, "--params", params)
	assert.Equal(t, errors.ExitSuccess, code, stderr)

	code, _, stderr = runCLI(t, "compare", "bse_eigen", cand, cand, "--params", params)
	assert.Equal(t, errors.ExitConfigError, code)
	assert.Contains(t, stderr, "tolerance.bse: is required")
}

func TestCompare_Errors(t *testing.T) {
	dir := t.TempDir()
	ref := writeFile(t, dir, "ref.xml", pwXML("1.0"))

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown check", []string{"compare", "band_gap", ref, ref, "--tolerance", "1"}, errors.ExitConfigError},
		{"negative tolerance", []string{"compare", "total_energy", ref, ref, "--tolerance", "-1"}, errors.ExitConfigError},
		{"missing candidate", []string{"compare", "total_energy", filepath.Join(dir, "absent.xml"), ref, "--tolerance", "1"}, errors.ExitInputError},
		{"wrong arity", []string{"compare", "total_energy", ref}, errors.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, tt.args...)
			assert.Equal(t, tt.code, code)
		})
	}
}
