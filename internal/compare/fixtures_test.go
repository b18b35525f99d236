package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// recorder captures the max-diff lines a Comparator reports.
type recorder struct {
	labels []string
	diffs  []float64
}

func (r *recorder) MaxDiff(label string, diff float64) {
	r.labels = append(r.labels, label)
	r.diffs = append(r.diffs, diff)
}

func newComparator() (*Comparator, *recorder) {
	rec := &recorder{}
	return New(rec, nil), rec
}

func writeFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeJSON(t testing.TB, dir, name string, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return writeFile(t, dir, name, string(data))
}

func writePW(t testing.TB, dir, name string, etot float64) string {
	t.Helper()
	return writeFile(t, dir, name, fmt.Sprintf(
		"<qes:espresso xmlns:qes=\"urn:qes\"><output><total_energy><etot>%v</etot></total_energy></output></qes:espresso>", etot))
}

func wstatDoc(davitr interface{}) map[string]interface{} {
	return map[string]interface{}{"exec": map[string]interface{}{"davitr": davitr}}
}

func history(evs ...[]float64) []map[string]interface{} {
	iters := make([]map[string]interface{}, len(evs))
	for i, ev := range evs {
		iters[i] = map[string]interface{}{"dav_iter": i + 1, "ev": ev}
	}
	return iters
}

func wfreqDoc(kpoints ...map[string]interface{}) map[string]interface{} {
	q := map[string]interface{}{}
	for i, fields := range kpoints {
		q[fmt.Sprintf("K%06d", i+1)] = fields
	}
	return map[string]interface{}{
		"system": map[string]interface{}{"electron": map[string]interface{}{"nkstot": len(kpoints)}},
		"output": map[string]interface{}{"Q": q},
	}
}

func complexField(z []complex128) map[string]interface{} {
	re := make([]float64, len(z))
	im := make([]float64, len(z))
	for i, v := range z {
		re[i], im[i] = real(v), imag(v)
	}
	return map[string]interface{}{"re": re, "im": im}
}

func lanczosDoc(beta, zeta []float64) map[string]interface{} {
	return map[string]interface{}{
		"output": map[string]interface{}{"lanczos": map[string]interface{}{
			"K000001": map[string]interface{}{"XX": map[string]interface{}{"beta": beta, "zeta": zeta}},
		}},
	}
}

func forcesDoc(forces map[string][]float64) map[string]interface{} {
	return map[string]interface{}{"exec": map[string]interface{}{"forces": forces}}
}
