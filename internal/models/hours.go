package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Hours is the hours_worked value of a report. Any number is accepted,
// negative and fractional included. A non-numeric submission is kept as
// an explicit NaN sentinel instead of being coerced to 0; since bare NaN
// is not valid JSON, the sentinel travels as the string "NaN".
type Hours float64

// IsNaN reports whether h holds the not-a-number sentinel.
func (h Hours) IsNaN() bool {
	return math.IsNaN(float64(h))
}

func (h Hours) MarshalJSON() ([]byte, error) {
	if h.IsNaN() {
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(float64(h))
}

func (h *Hours) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) > 1 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*h = Hours(math.NaN())
			return nil
		}
		*h = Hours(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*h = Hours(math.NaN())
		return nil
	}
	*h = Hours(f)
	return nil
}
