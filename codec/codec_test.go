package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precisionlens/cascade/trace"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshal(t *testing.T) {
	b := MustMarshal(nil, map[string]int{"iterations": 42})
	assert.JSONEq(t, `{"iterations":42}`, string(b))

	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}

func TestCodecs_SchemaFieldNames(t *testing.T) {
	doc := trace.Document{
		Metadata: trace.Metadata{
			Algorithm:      "cascading_precision",
			MatrixSize:     3,
			TrueEigenvalue: 3.0,
		},
		Trace: []trace.Record{{Iteration: 0, Precision: "FP64", Eigenvalue: 2.9}},
	}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		b, err := c.Marshal(doc)
		require.NoError(t, err, c.Name())

		// The persisted field names are load-bearing for downstream
		// tooling.
		s := string(b)
		for _, field := range []string{
			`"metadata"`, `"precision_segments"`, `"trace"`, `"summary"`,
			`"true_eigenvalue"`, `"matrix_size"`, `"relative_error"`,
			`"theoretical_bandwidth_gbps"`, `"ops_count"`,
		} {
			assert.Contains(t, s, field, c.Name())
		}

		var back trace.Document
		require.NoError(t, c.Unmarshal(b, &back), c.Name())
		assert.Equal(t, doc.Metadata.TrueEigenvalue, back.Metadata.TrueEigenvalue)
	}
}
