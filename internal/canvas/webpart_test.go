package canvas_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
	"github.com/Ameralajore/PnP-JS-Core/pkg/attrjson"
	"github.com/Ameralajore/PnP-JS-Core/pkg/guid"
)

const (
	embedComponentID = "490d7c76-1824-45b2-9de3-676421c997fa"
	heroComponentID  = "c4bd7b2f-7b6e-4599-8485-16504575f590"
)

func TestNewWebPart(t *testing.T) {
	guid.UseSequence(t)

	part := canvas.NewWebPart(embedComponentID, "Embed")
	assert.Equal(t, canvas.KindWebPart, part.Kind())
	assert.Equal(t, guid.GUID("00000000-0000-4000-8000-000000000001"), part.ID())
	assert.Equal(t, guid.GUID(embedComponentID), part.ComponentID())
	assert.Equal(t, "Embed", part.Title())
	assert.Empty(t, part.Properties())
	assert.Nil(t, part.ServerProcessed())
}

func TestWebPartToHTML(t *testing.T) {
	guid.UseSequence(t)

	part := canvas.NewWebPart(embedComponentID, "Embed")
	part.SetProperties(map[string]any{
		"caption":   "Demo",
		"embedCode": "https://example.com/",
	})

	pos := canvas.Position{ControlIndex: 1, SectionFactor: 12, SectionIndex: 1, ZoneIndex: 1}
	html, err := part.ToHTML(pos, canvas.DefaultFormat())
	require.NoError(t, err)

	expected := `<div data-sp-canvascontrol="" data-sp-canvasdataversion="1.0" data-sp-controldata="&#123;&quot;controlType&quot;&#58;3,&quot;id&quot;&#58;&quot;00000000-0000-4000-8000-000000000001&quot;,&quot;position&quot;&#58;&#123;&quot;controlIndex&quot;&#58;1,&quot;sectionFactor&quot;&#58;12,&quot;sectionIndex&quot;&#58;1,&quot;zoneIndex&quot;&#58;1&#125;&#125;,&quot;webPartId&quot;&#58;&quot;490d7c76-1824-45b2-9de3-676421c997fa&quot;&#125;">` +
		`<div data-sp-webpart="" data-sp-webpartdataversion="1.0" data-sp-webpartdata="&#123;&quot;dataVersion&quot;&#58;&quot;1.0&quot;,&quot;description&quot;&#58;&quot;&quot;,&quot;id&quot;&#58;&quot;490d7c76-1824-45b2-9de3-676421c997fa&quot;,&quot;instanceId&quot;&#58;&quot;00000000-0000-4000-8000-000000000001&quot;,&quot;properties&quot;&#58;&#123;&quot;caption&quot;&#58;&quot;Demo&quot;,&quot;embedCode&quot;&#58;&quot;https&#58;//example.com/&quot;&#125;,&quot;title&quot;&#58;&quot;Embed&quot;&#125;">` +
		`<div data-sp-componentid>490d7c76-1824-45b2-9de3-676421c997fa</div>` +
		`<div data-sp-htmlproperties=""></div>` +
		`</div></div>`
	assert.Equal(t, expected, html)
}

func TestWebPartServerProcessedSynthesis(t *testing.T) {
	guid.UseSequence(t)

	part := canvas.NewWebPart(heroComponentID, "Hero")
	part.SetServerProcessed(&canvas.ServerProcessedContent{
		ImageSources:         canvas.NamedValues{{Name: "imageSource", Value: "/sites/intra/photo.jpg"}},
		Links:                canvas.NamedValues{{Name: "siteLink", Value: "/sites/intra"}},
		SearchablePlainTexts: canvas.NamedValues{{Name: "caption", Value: "Autumn all-hands"}},
	})

	pos := canvas.Position{ControlIndex: 1, SectionFactor: 12, SectionIndex: 1, ZoneIndex: 1}
	html, err := part.ToHTML(pos, canvas.DefaultFormat())
	require.NoError(t, err)

	// Searchable texts come first, then images, then links.
	expected := `<div data-sp-htmlproperties="">` +
		`<div data-sp-prop-name="caption" data-sp-searchableplaintext="true">Autumn all-hands</div>` +
		`<img data-sp-prop-name="imageSource" src="/sites/intra/photo.jpg" />` +
		`<a data-sp-prop-name="siteLink" href="/sites/intra"></a>` +
		`</div>`
	assert.Contains(t, html, expected)
}

// webPartFragment builds a canvas fragment for a web part whose
// webpartdata properties member takes an arbitrary shape.
func webPartFragment(t *testing.T, instanceID string, properties any) string {
	t.Helper()
	control, err := attrjson.Encode(canvas.ControlData{
		ControlType: int(canvas.KindWebPart),
		ID:          instanceID,
		Position:    canvas.Position{ControlIndex: 1, SectionFactor: 12, SectionIndex: 1, ZoneIndex: 1},
		WebPartID:   embedComponentID,
	})
	require.NoError(t, err)
	data, err := attrjson.Encode(map[string]any{
		"dataVersion": "1.0",
		"description": "",
		"id":          embedComponentID,
		"instanceId":  instanceID,
		"properties":  properties,
		"title":       "Embed",
	})
	require.NoError(t, err)
	return fmt.Sprintf(`<div data-sp-canvascontrol="" data-sp-canvasdataversion="1.0" data-sp-controldata="%s">`+
		`<div data-sp-webpart="" data-sp-webpartdataversion="1.0" data-sp-webpartdata="%s">`+
		`<div data-sp-componentid>%s</div>`+
		`<div data-sp-htmlproperties=""></div>`+
		`</div></div>`, control, data, embedComponentID)
}

func TestWebPartPropertyShapes(t *testing.T) {
	tests := []struct {
		name       string
		properties any
		wantBag    map[string]any
		wantSPC    bool
	}{
		{
			name:       "plain bag",
			properties: map[string]any{"embedCode": "https://example.com/"},
			wantBag:    map[string]any{"embedCode": "https://example.com/"},
		},
		{
			name:       "bag nested under properties",
			properties: map[string]any{"properties": map[string]any{"embedCode": "https://example.com/"}},
			wantBag:    map[string]any{"embedCode": "https://example.com/"},
		},
		{
			name: "bag with sibling server content",
			properties: map[string]any{
				"properties": map[string]any{"embedCode": "https://example.com/"},
				"serverProcessedContent": map[string]any{
					"searchablePlainTexts": map[string]any{"caption": "Hello"},
				},
			},
			wantBag: map[string]any{"embedCode": "https://example.com/"},
			wantSPC: true,
		},
		{
			name: "exported definition",
			properties: map[string]any{
				"webPartData": map[string]any{
					"properties": map[string]any{"embedCode": "https://example.com/"},
					"serverProcessedContent": map[string]any{
						"searchablePlainTexts": map[string]any{"caption": "Hello"},
					},
				},
			},
			wantBag: map[string]any{"embedCode": "https://example.com/"},
			wantSPC: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guid.UseSequence(t)

			page := canvas.NewPage()
			input := "<div>" + webPartFragment(t, "05350fd3-0bbe-4cbe-87a9-b1f09bb1f349", tt.properties) + "</div>"
			require.NoError(t, page.FromMarkup(input))

			control, ok := page.FindControlByID("05350fd3-0bbe-4cbe-87a9-b1f09bb1f349")
			require.True(t, ok)
			part := control.(*canvas.WebPart)
			assert.Equal(t, tt.wantBag, part.Properties())
			if tt.wantSPC {
				require.NotNil(t, part.ServerProcessed())
				value, found := part.ServerProcessed().SearchablePlainTexts.Get("caption")
				require.True(t, found)
				assert.Equal(t, "Hello", value)
			} else {
				assert.Nil(t, part.ServerProcessed())
			}
		})
	}
}

func TestQueryProperties(t *testing.T) {
	guid.UseSequence(t)

	part := canvas.NewWebPart(embedComponentID, "Embed")
	part.SetProperties(map[string]any{
		"embedCode": "https://example.com/",
		"settings":  map[string]any{"height": 400.0},
	})

	values, err := part.QueryProperties(".embedCode")
	require.NoError(t, err)
	assert.Equal(t, []any{"https://example.com/"}, values)

	values, err = part.QueryProperties(".settings.height")
	require.NoError(t, err)
	assert.Equal(t, []any{400.0}, values)

	_, err = part.QueryProperties(".[broken")
	require.Error(t, err)
}

func TestCloneWebPart(t *testing.T) {
	guid.UseSequence(t)

	original := canvas.NewWebPart(embedComponentID, "Embed")
	original.SetProperties(map[string]any{
		"settings": map[string]any{"height": 400.0},
	})

	clone, err := original.Clone()
	require.NoError(t, err)

	assert.NotEqual(t, original.ID(), clone.ID())
	assert.Equal(t, original.ComponentID(), clone.ComponentID())
	assert.Equal(t, original.Title(), clone.Title())
	assert.Equal(t, original.Properties(), clone.Properties())

	// The clone owns its bag.
	clone.Properties()["settings"].(map[string]any)["height"] = 600.0
	assert.Equal(t, 400.0, original.Properties()["settings"].(map[string]any)["height"])
}

func TestFromPartDefinition(t *testing.T) {
	guid.UseSequence(t)

	manifest := `{"preconfiguredEntries":[{"title":{"default":"Embed"},"description":{"default":"Embed external content"},"properties":{"embedCode":""}}]}`
	part, err := canvas.FromPartDefinition(canvas.PartDefinition{
		ID:       "{490D7C76-1824-45B2-9DE3-676421C997FA}",
		Name:     "Embed",
		Manifest: manifest,
	})
	require.NoError(t, err)

	assert.Equal(t, guid.GUID(embedComponentID), part.ComponentID())
	assert.Equal(t, "Embed", part.Title())
	assert.Equal(t, "Embed external content", part.Description())
	assert.Equal(t, map[string]any{"embedCode": ""}, part.Properties())
}

func TestFromPartDefinitionWithoutManifest(t *testing.T) {
	guid.UseSequence(t)

	part, err := canvas.FromPartDefinition(canvas.PartDefinition{ID: embedComponentID, Name: "Custom"})
	require.NoError(t, err)
	assert.Equal(t, guid.GUID(embedComponentID), part.ComponentID())
	assert.Empty(t, part.Title())
	assert.Empty(t, part.Properties())
}

func TestFromPartDefinitionErrors(t *testing.T) {
	_, err := canvas.FromPartDefinition(canvas.PartDefinition{ID: "not-a-guid", Name: "Broken"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")

	guid.UseSequence(t)
	_, err = canvas.FromPartDefinition(canvas.PartDefinition{ID: embedComponentID, Name: "Broken", Manifest: "{"})
	require.Error(t, err)
}
