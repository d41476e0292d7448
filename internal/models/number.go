package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a JSON scalar that accepts either a number or a decimal
// string ("7" decodes to 7). Clients of the legacy API sent numeric
// fields both ways, so every numeric payload field uses this type.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", raw)
	}
	*n = Number(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(n))
}

// Float64 returns the underlying value.
func (n Number) Float64() float64 {
	return float64(n)
}

// Int returns the value truncated to an integer.
func (n Number) Int() int {
	return int(n)
}
