package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/AndreyAkinshin/westcheck/internal/errors"
)

// OccupationField is the per-k-point field that is never extracted.
const OccupationField = "occupation"

// KPointLabel returns the label under which k-point ik (1-based) is stored.
func KPointLabel(ik int) string {
	return fmt.Sprintf("K%06d", ik)
}

// Field is one per-k-point array of single-particle data. It is complex
// when the source object carried both "re" and "im" arrays.
type Field struct {
	Real    []float64
	Complex []complex128
}

// IsComplex reports whether the field holds complex values.
func (f Field) IsComplex() bool {
	return f.Complex != nil
}

// Len returns the number of elements.
func (f Field) Len() int {
	if f.IsComplex() {
		return len(f.Complex)
	}
	return len(f.Real)
}

type complexParts struct {
	Re *Values `json:"re"`
	Im *Values `json:"im"`
}

// decodeField decodes one field value: a plain array, or an object with
// paired "re" and "im" arrays.
func decodeField(path, key string, raw json.RawMessage) (Field, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var parts complexParts
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return Field{}, errors.Formatf(path, key, "invalid complex field: %v", err)
		}
		if parts.Re == nil || parts.Im == nil {
			return Field{}, errors.Format(path, key, `object field needs both "re" and "im"`)
		}
		re, im := *parts.Re, *parts.Im
		if len(re) != len(im) {
			return Field{}, errors.Formatf(path, key, "re has %d elements, im has %d", len(re), len(im))
		}
		z := make([]complex128, len(re))
		for i := range re {
			z[i] = complex(re[i], im[i])
		}
		return Field{Complex: z}, nil
	}

	var values Values
	if err := json.Unmarshal(trimmed, &values); err != nil {
		return Field{}, errors.Formatf(path, key, "expected an array of numbers: %v", err)
	}
	return Field{Real: []float64(values)}, nil
}

// SingleParticleEnergyTable maps a 1-based k-point index to its fields.
type SingleParticleEnergyTable map[int]map[string]Field

// KPoints returns the k-point indices in ascending order.
func (t SingleParticleEnergyTable) KPoints() []int {
	iks := make([]int, 0, len(t))
	for ik := range t {
		iks = append(iks, ik)
	}
	sort.Ints(iks)
	return iks
}

// WfreqDocument is the part of wfreq.json that westcheck reads.
type WfreqDocument struct {
	System *struct {
		Electron *struct {
			Nkstot *int `json:"nkstot"`
		} `json:"electron"`
	} `json:"system"`
	Output *struct {
		Q map[string]json.RawMessage `json:"Q"`
	} `json:"output"`
}

// ReadWfreqDocument parses a wfreq.json artifact.
func ReadWfreqDocument(path string) (*WfreqDocument, error) {
	var doc WfreqDocument
	if err := readJSON(path, &doc); err != nil {
		return nil, err
	}
	switch {
	case doc.System == nil:
		return nil, missing(path, "system")
	case doc.System.Electron == nil:
		return nil, missing(path, "system.electron")
	case doc.System.Electron.Nkstot == nil:
		return nil, missing(path, "system.electron.nkstot")
	case *doc.System.Electron.Nkstot < 0:
		return nil, errors.Formatf(path, "system.electron.nkstot", "negative k-point count %d", *doc.System.Electron.Nkstot)
	case doc.Output == nil:
		return nil, missing(path, "output")
	case doc.Output.Q == nil:
		return nil, missing(path, "output.Q")
	}
	return &doc, nil
}

// ReadSingleParticleEnergies returns every field of every k-point except
// the occupation numbers.
func ReadSingleParticleEnergies(path string) (SingleParticleEnergyTable, error) {
	doc, err := ReadWfreqDocument(path)
	if err != nil {
		return nil, err
	}

	nk := *doc.System.Electron.Nkstot
	table := make(SingleParticleEnergyTable, len(doc.Output.Q))
	for ik := 1; ik <= nk; ik++ {
		label := KPointLabel(ik)
		key := "output.Q." + label

		raw, ok := doc.Output.Q[label]
		if !ok {
			return nil, missing(path, key)
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, errors.Formatf(path, key, "expected an object: %v", err)
		}

		table[ik] = make(map[string]Field, len(fields))
		for name, value := range fields {
			if name == OccupationField {
				continue
			}
			f, err := decodeField(path, key+"."+name, value)
			if err != nil {
				return nil, err
			}
			table[ik][name] = f
		}
	}
	return table, nil
}
