package artifact

import (
	"encoding/json"
	"math"
)

// Values is a JSON array of reals. A null element decodes to NaN, so it
// never compares close to anything.
type Values []float64

// UnmarshalJSON implements json.Unmarshaler.
func (v *Values) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = nil
		return nil
	}
	out := make(Values, len(raw))
	for i, x := range raw {
		if x == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *x
	}
	*v = out
	return nil
}
