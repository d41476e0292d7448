package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "integer", input: `7`, want: 7},
		{name: "float", input: `12.5`, want: 12.5},
		{name: "integer string", input: `"7"`, want: 7},
		{name: "float string", input: `"12.5"`, want: 12.5},
		{name: "padded string", input: `" 8 "`, want: 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tc.input), &n))
			assert.Equal(t, tc.want, n.Float64())
		})
	}
}

func TestNumberUnmarshalJSONRejectsNonNumeric(t *testing.T) {
	var n Number
	err := json.Unmarshal([]byte(`"seven"`), &n)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid numeric value")
}

func TestNumberUnmarshalJSONNullLeavesValue(t *testing.T) {
	n := Number(3)
	require.NoError(t, json.Unmarshal([]byte(`null`), &n))
	assert.Equal(t, 3.0, n.Float64())
}

func TestNumberMarshalJSON(t *testing.T) {
	out, err := json.Marshal(Number(12.5))
	require.NoError(t, err)
	assert.Equal(t, `12.5`, string(out))
}

func TestTestPercent(t *testing.T) {
	assert.InDelta(t, 80.0, Test{Mark: 8, OutOf: 10}.Percent(), 0.0001)
	assert.InDelta(t, 75.0, Test{Mark: 15, OutOf: 20}.Percent(), 0.0001)
	assert.Zero(t, Test{Mark: 5, OutOf: 0}.Percent())
}
