package artifact

import (
	"sort"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
)

// Fixed location of the Lanczos coefficients compared by westcheck.
const (
	LanczosKPoint       = "K000001"
	LanczosPolarization = "XX"
)

// LanczosTrace holds the beta and zeta recurrence coefficients of one
// Lanczos chain.
type LanczosTrace struct {
	Beta []float64
	Zeta []float64
}

// ForceTable maps a force label to its components.
type ForceTable map[string][]float64

// Labels returns the force labels in sorted order.
func (t ForceTable) Labels() []string {
	labels := make([]string, 0, len(t))
	for label := range t {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// LanczosChain is one polarization entry of output.lanczos.
type LanczosChain struct {
	Beta *Values `json:"beta"`
	Zeta *Values `json:"zeta"`
}

// WbseDocument is the part of wbse.json that westcheck reads. Which fields
// are present depends on the solver that produced the file, so presence is
// checked by the extraction functions rather than at decode time.
type WbseDocument struct {
	Exec *struct {
		Davitr DavidsonHistory      `json:"davitr"`
		Forces map[string]Values `json:"forces"`
	} `json:"exec"`
	Output *struct {
		Lanczos map[string]map[string]LanczosChain `json:"lanczos"`
	} `json:"output"`
}

// ReadWbseDocument parses a wbse.json artifact.
func ReadWbseDocument(path string) (*WbseDocument, error) {
	var doc WbseDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadLanczos returns the beta and zeta coefficients of the first k-point
// and the XX polarization.
func ReadLanczos(path string) (*LanczosTrace, error) {
	doc, err := ReadWbseDocument(path)
	if err != nil {
		return nil, err
	}

	if doc.Output == nil {
		return nil, missing(path, "output")
	}
	if doc.Output.Lanczos == nil {
		return nil, missing(path, "output.lanczos")
	}
	kpoint, ok := doc.Output.Lanczos[LanczosKPoint]
	if !ok {
		return nil, missing(path, "output.lanczos."+LanczosKPoint)
	}
	chain, ok := kpoint[LanczosPolarization]
	key := "output.lanczos." + LanczosKPoint + "." + LanczosPolarization
	if !ok {
		return nil, missing(path, key)
	}
	if chain.Beta == nil {
		return nil, missing(path, key+".beta")
	}
	if chain.Zeta == nil {
		return nil, missing(path, key+".zeta")
	}
	return &LanczosTrace{Beta: []float64(*chain.Beta), Zeta: []float64(*chain.Zeta)}, nil
}

// ReadBSEEigenvalues returns the eigenvalues of the last Davidson iteration.
// Only single-point histories are accepted.
func ReadBSEEigenvalues(path string) ([]float64, error) {
	doc, err := ReadWbseDocument(path)
	if err != nil {
		return nil, err
	}

	if doc.Exec == nil {
		return nil, missing(path, "exec")
	}
	switch doc.Exec.Davitr.Kind {
	case HistoryAbsent:
		return nil, missing(path, "exec.davitr")
	case HistoryMultiPoint:
		return nil, errors.Format(path, "exec.davitr", "expected a single-point history, got a multi-point one")
	}
	return finalEigenvalues(path, "exec.davitr", doc.Exec.Davitr.Single)
}

// ReadForces returns every entry of exec.forces.
func ReadForces(path string) (ForceTable, error) {
	doc, err := ReadWbseDocument(path)
	if err != nil {
		return nil, err
	}

	if doc.Exec == nil {
		return nil, missing(path, "exec")
	}
	if doc.Exec.Forces == nil {
		return nil, missing(path, "exec.forces")
	}
	table := make(ForceTable, len(doc.Exec.Forces))
	for label, components := range doc.Exec.Forces {
		table[label] = []float64(components)
	}
	return table, nil
}
