package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// SinglePointLabel is the momentum-point label given to the eigenvalues of a
// history that is not split by momentum point.
const SinglePointLabel = "Q1"

// HistoryKind tags the shape of a Davidson iteration history.
type HistoryKind int

const (
	HistoryAbsent HistoryKind = iota
	// HistorySinglePoint is a flat list of iterations.
	HistorySinglePoint
	// HistoryMultiPoint maps each momentum-point label to its own list.
	HistoryMultiPoint
)

func (k HistoryKind) String() string {
	switch k {
	case HistorySinglePoint:
		return "single-point"
	case HistoryMultiPoint:
		return "multi-point"
	default:
		return "absent"
	}
}

// DavidsonIteration is one entry of a Davidson convergence history.
type DavidsonIteration struct {
	EV *Values `json:"ev"`
}

// DavidsonHistory is the convergence history of a Davidson solver. The
// variant is fixed at decode time by the JSON shape: an array is a
// single-point history, an object is a multi-point one.
type DavidsonHistory struct {
	Kind   HistoryKind
	Single []DavidsonIteration
	Multi  map[string][]DavidsonIteration
}

// UnmarshalJSON implements json.Unmarshaler.
func (h *DavidsonHistory) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*h = DavidsonHistory{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var iters []DavidsonIteration
		if err := json.Unmarshal(trimmed, &iters); err != nil {
			return err
		}
		*h = DavidsonHistory{Kind: HistorySinglePoint, Single: iters}
	case '{':
		var points map[string][]DavidsonIteration
		if err := json.Unmarshal(trimmed, &points); err != nil {
			return err
		}
		*h = DavidsonHistory{Kind: HistoryMultiPoint, Multi: points}
	default:
		return fmt.Errorf("davidson history must be an array or an object, got %s", abbreviate(trimmed))
	}
	return nil
}

// Points returns the momentum-point labels in sorted order.
func (h DavidsonHistory) Points() []string {
	switch h.Kind {
	case HistorySinglePoint:
		return []string{SinglePointLabel}
	case HistoryMultiPoint:
		labels := make([]string, 0, len(h.Multi))
		for label := range h.Multi {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		return labels
	default:
		return nil
	}
}

// finalEigenvalues returns the "ev" array of the last iteration in iters.
// key is the dotted path of iters inside the artifact, used in errors.
func finalEigenvalues(path, key string, iters []DavidsonIteration) ([]float64, error) {
	if len(iters) == 0 {
		return nil, formatEmpty(path, key)
	}
	last := iters[len(iters)-1]
	if last.EV == nil {
		return nil, missing(path, fmt.Sprintf("%s[%d].ev", key, len(iters)-1))
	}
	return []float64(*last.EV), nil
}

func abbreviate(data []byte) string {
	const limit = 16
	if len(data) > limit {
		return string(data[:limit]) + "..."
	}
	return string(data)
}
