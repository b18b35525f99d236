package artifact

// EigenvalueSet maps a momentum-point label to the eigenvalues of the final
// Davidson iteration at that point.
type EigenvalueSet map[string][]float64

// WstatDocument is the part of wstat.json that westcheck reads.
type WstatDocument struct {
	Exec *struct {
		Davitr DavidsonHistory `json:"davitr"`
	} `json:"exec"`
}

// ReadWstatDocument parses a wstat.json artifact.
func ReadWstatDocument(path string) (*WstatDocument, error) {
	var doc WstatDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	if doc.Exec == nil {
		return nil, missing(path, "exec")
	}
	if doc.Exec.Davitr.Kind == HistoryAbsent {
		return nil, missing(path, "exec.davitr")
	}
	return &doc, nil
}

// ReadPDEPEigenvalues returns the converged PDEP eigenvalues for every
// momentum point. A history that is not split by momentum point is returned
// under SinglePointLabel.
func ReadPDEPEigenvalues(path string) (EigenvalueSet, error) {
	doc, err := ReadWstatDocument(path)
	if err != nil {
		return nil, err
	}

	hist := doc.Exec.Davitr
	set := make(EigenvalueSet)
	if hist.Kind == HistorySinglePoint {
		ev, err := finalEigenvalues(path, "exec.davitr", hist.Single)
		if err != nil {
			return nil, err
		}
		set[SinglePointLabel] = ev
		return set, nil
	}

	if len(hist.Multi) == 0 {
		return nil, formatEmpty(path, "exec.davitr")
	}
	for _, q := range hist.Points() {
		ev, err := finalEigenvalues(path, "exec.davitr."+q, hist.Multi[q])
		if err != nil {
			return nil, err
		}
		set[q] = ev
	}
	return set, nil
}
