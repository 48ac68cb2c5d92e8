package markup_test

import (
	"strings"
	"testing"

	"github.com/Ameralajore/PnP-JS-Core/pkg/markup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var controlBoundary = markup.Boundary("data-sp-canvascontrol")

func TestFragments(t *testing.T) {
	var testcases = []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []string{},
		},
		{
			name:     "no boundary match",
			input:    `<div><p>plain content</p></div>`,
			expected: []string{},
		},
		{
			name:  "single fragment",
			input: `<div data-sp-canvascontrol="" data-sp-controldata="abc"></div>`,
			expected: []string{
				`<div data-sp-canvascontrol="" data-sp-controldata="abc"></div>`,
			},
		},
		{
			name: "sibling fragments inside a wrapper",
			input: `<div>` +
				`<div data-sp-canvascontrol="" data-sp-controldata="a"></div>` +
				`<div data-sp-canvascontrol="" data-sp-controldata="b"></div>` +
				`</div>`,
			expected: []string{
				`<div data-sp-canvascontrol="" data-sp-controldata="a"></div>`,
				`<div data-sp-canvascontrol="" data-sp-controldata="b"></div>`,
			},
		},
		{
			name: "nested content stays inside its fragment",
			input: `<div data-sp-canvascontrol="" data-sp-controldata="a">` +
				`<div data-sp-rte=""><p>Hello</p></div>` +
				`</div>` +
				`<div data-sp-canvascontrol="" data-sp-controldata="b"></div>`,
			expected: []string{
				`<div data-sp-canvascontrol="" data-sp-controldata="a"><div data-sp-rte=""><p>Hello</p></div></div>`,
				`<div data-sp-canvascontrol="" data-sp-controldata="b"></div>`,
			},
		},
		{
			name: "tabs and line breaks are stripped but spaces survive",
			input: "<div data-sp-canvascontrol=\"\">\n\t<div data-sp-rte=\"\">\r\n<p>Hello World</p></div>\n</div>",
			expected: []string{
				`<div data-sp-canvascontrol=""><div data-sp-rte=""><p>Hello World</p></div></div>`,
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := markup.Fragments(tc.input, controlBoundary)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestFragmentsDeepNesting(t *testing.T) {
	// A few hundred nested divs must still come back as a single fragment.
	const depth = 300
	input := `<div data-sp-canvascontrol="">` +
		strings.Repeat("<div>", depth) + "inner" + strings.Repeat("</div>", depth) +
		`</div>`

	actual, err := markup.Fragments(input, controlBoundary)
	require.NoError(t, err)
	require.Len(t, actual, 1)
	assert.Equal(t, input, actual[0])
}

func TestFragmentsMalformed(t *testing.T) {
	t.Run("unclosed fragment", func(t *testing.T) {
		input := `<div data-sp-canvascontrol=""><div data-sp-rte="">text</div>`
		_, err := markup.Fragments(input, controlBoundary)
		require.ErrorIs(t, err, markup.ErrMalformed)
	})

	t.Run("nesting beyond the bound", func(t *testing.T) {
		input := `<div data-sp-canvascontrol="">` +
			strings.Repeat("<div>", markup.MaxDepth) +
			strings.Repeat("</div>", markup.MaxDepth+1)
		_, err := markup.Fragments(input, controlBoundary)
		require.ErrorIs(t, err, markup.ErrMalformed)
	})
}

func TestAttr(t *testing.T) {
	fragment := `<div data-sp-canvascontrol="" data-sp-canvasdataversion="1.0" ` +
		`data-sp-controldata="&#123;&quot;id&quot;&#58;&quot;x&quot;&#125;">` +
		`<div data-sp-webpart="" data-sp-webpartdataversion="1.4" data-sp-webpartdata="payload"></div>` +
		`</div>`

	var testcases = []struct {
		name     string
		attr     string
		expected string
		found    bool
	}{
		{name: "simple value", attr: "data-sp-canvasdataversion", expected: "1.0", found: true},
		{name: "escaped payload", attr: "data-sp-controldata", expected: `&#123;&quot;id&quot;&#58;&quot;x&quot;&#125;`, found: true},
		{name: "case-insensitive", attr: "DATA-SP-CANVASDATAVERSION", expected: "1.0", found: true},
		{name: "name that prefixes a longer one", attr: "data-sp-webpartdata", expected: "payload", found: true},
		{name: "longer name next to its prefix", attr: "data-sp-webpartdataversion", expected: "1.4", found: true},
		{name: "missing attribute", attr: "data-sp-htmlproperties", expected: "", found: false},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			actual, ok := markup.Attr(fragment, tc.attr)
			require.Equal(t, tc.found, ok)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestStripWrapper(t *testing.T) {
	rte := markup.Boundary("data-sp-rte")

	t.Run("strips wrapper and close", func(t *testing.T) {
		body := markup.StripWrapper(`<div data-sp-rte=""><p>Hello</p></div>`, rte)
		assert.Equal(t, "<p>Hello</p>", body)
	})

	t.Run("leaves non-matching input untouched", func(t *testing.T) {
		body := markup.StripWrapper(`<p>Hello</p>`, rte)
		assert.Equal(t, "<p>Hello</p>", body)
	})
}

func TestClean(t *testing.T) {
	assert.Equal(t, "<div> ab</div>", markup.Clean("<div>\t a\r\nb</div>\n"))
}
