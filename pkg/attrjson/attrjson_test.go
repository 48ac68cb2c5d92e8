package attrjson_test

import (
	"testing"

	"github.com/Ameralajore/PnP-JS-Core/pkg/attrjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	var testcases = []struct {
		name     string
		value    any
		expected string
	}{
		{
			name:     "flat object",
			value:    map[string]any{"id": "x"},
			expected: `&#123;&quot;id&quot;&#58;&quot;x&quot;&#125;`,
		},
		{
			name:     "sorted keys",
			value:    map[string]any{"zoneIndex": 1, "controlIndex": 2},
			expected: `&#123;&quot;controlIndex&quot;&#58;2,&quot;zoneIndex&quot;&#58;1&#125;`,
		},
		{
			name:     "markup characters stay literal",
			value:    map[string]any{"text": "<p>a & b</p>"},
			expected: `&#123;&quot;text&quot;&#58;&quot;<p>a & b</p>&quot;&#125;`,
		},
		{
			name:     "hostile string content",
			value:    map[string]any{"t": `a"b:{c}`},
			expected: `&#123;&quot;t&quot;&#58;&quot;a\&quot;b&#58;&#123;c&#125;&quot;&#125;`,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := attrjson.Encode(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestDecode(t *testing.T) {
	t.Run("typed target", func(t *testing.T) {
		var v struct {
			ZoneIndex    int `json:"zoneIndex"`
			ControlIndex int `json:"controlIndex"`
		}
		err := attrjson.Decode(`&#123;&quot;controlIndex&quot;&#58;2,&quot;zoneIndex&quot;&#58;1&#125;`, &v)
		require.NoError(t, err)
		assert.Equal(t, 1, v.ZoneIndex)
		assert.Equal(t, 2, v.ControlIndex)
	})

	t.Run("untyped bag", func(t *testing.T) {
		v, err := attrjson.DecodeValue(`&#123;&quot;id&quot;&#58;&quot;x&quot;&#125;`)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": "x"}, v)
	})

	t.Run("ill-formed payload", func(t *testing.T) {
		_, err := attrjson.DecodeValue(`&#123;&quot;id&quot;`)
		require.ErrorIs(t, err, attrjson.ErrInvalidPayload)
	})
}

func TestRoundTrip(t *testing.T) {
	// Values survive an encode/decode cycle, and encoded strings survive a
	// decode/encode cycle, including content full of quotes, colons and
	// braces.
	values := []any{
		map[string]any{"id": "f4f5a1d3", "title": `He said: "hi" {sort of}`},
		map[string]any{"position": map[string]any{"zoneIndex": float64(1), "sectionIndex": float64(2)}},
		[]any{"a:b", "{c}", `"d"`},
	}
	for _, value := range values {
		encoded, err := attrjson.Encode(value)
		require.NoError(t, err)

		decoded, err := attrjson.DecodeValue(encoded)
		require.NoError(t, err)
		assert.Equal(t, value, decoded)

		reencoded, err := attrjson.Encode(decoded)
		require.NoError(t, err)
		assert.Equal(t, encoded, reencoded)
	}
}
