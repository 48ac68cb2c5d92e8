package canvas_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
)

func TestNamedValuesMarshal(t *testing.T) {
	values := canvas.NamedValues{
		{Name: "title", Value: "Fall review"},
		{Name: "caption", Value: "All hands"},
	}
	out, err := json.Marshal(values)
	require.NoError(t, err)
	// Entries keep their stored order, they are not re-sorted.
	assert.Equal(t, `{"title":"Fall review","caption":"All hands"}`, string(out))
}

func TestNamedValuesMarshalKeepsMarkup(t *testing.T) {
	values := canvas.NamedValues{
		{Name: "body", Value: "<p>a & b</p>"},
	}
	// Plain json.Marshal would re-escape the markup characters. The
	// wire paths always disable HTML escaping, so the test does too.
	var sb strings.Builder
	encoder := json.NewEncoder(&sb)
	encoder.SetEscapeHTML(false)
	require.NoError(t, encoder.Encode(values))
	assert.Equal(t, `{"body":"<p>a & b</p>"}`+"\n", sb.String())
}

func TestNamedValuesUnmarshal(t *testing.T) {
	var values canvas.NamedValues
	err := json.Unmarshal([]byte(`{"title":"Fall review","caption":"All hands"}`), &values)
	require.NoError(t, err)

	require.Len(t, values, 2)
	assert.Equal(t, canvas.NamedValue{Name: "title", Value: "Fall review"}, values[0])
	assert.Equal(t, canvas.NamedValue{Name: "caption", Value: "All hands"}, values[1])

	value, ok := values.Get("caption")
	require.True(t, ok)
	assert.Equal(t, "All hands", value)

	_, ok = values.Get("missing")
	assert.False(t, ok)
}

func TestNamedValuesUnmarshalRejectsNonStrings(t *testing.T) {
	var values canvas.NamedValues
	err := json.Unmarshal([]byte(`{"count":3}`), &values)
	require.Error(t, err)
}

func TestServerProcessedContentRoundTrip(t *testing.T) {
	content := canvas.ServerProcessedContent{
		ImageSources:         canvas.NamedValues{{Name: "imageSource", Value: "/sites/intra/photo.jpg"}},
		Links:                canvas.NamedValues{{Name: "siteLink", Value: "/sites/intra"}},
		SearchablePlainTexts: canvas.NamedValues{{Name: "caption", Value: "Autumn"}},
	}
	out, err := json.Marshal(content)
	require.NoError(t, err)

	var decoded canvas.ServerProcessedContent
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, content, decoded)
}
