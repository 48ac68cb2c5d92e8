package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Ameralajore/PnP-JS-Core/pkg/attrjson"
	"github.com/Ameralajore/PnP-JS-Core/pkg/guid"
	"github.com/Ameralajore/PnP-JS-Core/pkg/markup"
	"github.com/itchyny/gojq"
	"github.com/jinzhu/copier"
)

// WebPart is a component instance placed on the canvas. The component id
// names the installed component; the instance id names this placement.
type WebPart struct {
	id              guid.GUID
	componentID     guid.GUID
	title           string
	description     string
	version         string
	properties      map[string]any
	htmlProperties  string
	serverProcessed *ServerProcessedContent
}

// NewWebPart creates a placement of the given component with a fresh
// instance id and an empty property bag.
func NewWebPart(componentID guid.GUID, title string) *WebPart {
	return &WebPart{
		id:          guid.New(),
		componentID: componentID,
		title:       title,
		properties:  map[string]any{},
	}
}

func (w *WebPart) Kind() Kind {
	return KindWebPart
}

func (w *WebPart) ID() guid.GUID {
	return w.id
}

func (w *WebPart) ComponentID() guid.GUID {
	return w.componentID
}

func (w *WebPart) Title() string {
	return w.title
}

func (w *WebPart) SetTitle(title string) {
	w.title = title
}

func (w *WebPart) Description() string {
	return w.description
}

func (w *WebPart) SetDescription(description string) {
	w.description = description
}

// Properties returns the live property bag.
func (w *WebPart) Properties() map[string]any {
	return w.properties
}

// SetProperties merges the given entries into the property bag.
func (w *WebPart) SetProperties(props map[string]any) *WebPart {
	if w.properties == nil {
		w.properties = map[string]any{}
	}
	for k, v := range props {
		w.properties[k] = v
	}
	return w
}

// HTMLProperties returns the literal properties body captured on parse.
// It is re-emitted verbatim unless server-processed content is set.
func (w *WebPart) HTMLProperties() string {
	return w.htmlProperties
}

func (w *WebPart) ServerProcessed() *ServerProcessedContent {
	return w.serverProcessed
}

func (w *WebPart) SetServerProcessed(content *ServerProcessedContent) {
	w.serverProcessed = content
}

// Data returns the control data persisted for the given position.
func (w *WebPart) Data(pos Position, format Format) ControlData {
	return ControlData{
		ControlType: int(KindWebPart),
		ID:          w.id.String(),
		Position:    pos,
		WebPartID:   w.componentID.String(),
	}
}

// webPartData mirrors the JSON carried by the web-part data attribute,
// keys in the platform's alphabetical order.
type webPartData struct {
	DataVersion string          `json:"dataVersion"`
	Description string          `json:"description"`
	ID          string          `json:"id"`
	InstanceID  string          `json:"instanceId"`
	Properties  json.RawMessage `json:"properties"`
	Title       string          `json:"title"`
}

func (w *WebPart) ToHTML(pos Position, format Format) (string, error) {
	controlEscaped, err := attrjson.Encode(w.Data(pos, format))
	if err != nil {
		return "", err
	}

	version := w.version
	if version == "" {
		version = format.DataVersion
	}

	properties := w.properties
	if properties == nil {
		properties = map[string]any{}
	}
	rawProperties, err := marshalJSONValue(properties)
	if err != nil {
		return "", fmt.Errorf("web part properties: %w", err)
	}
	dataEscaped, err := attrjson.Encode(webPartData{
		DataVersion: version,
		Description: w.description,
		ID:          w.componentID.String(),
		InstanceID:  w.id.String(),
		Properties:  rawProperties,
		Title:       w.title,
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<div %s="" %s="%s" %s="%s">`,
		format.Attrs.Control, format.Attrs.CanvasVersion, version, format.Attrs.ControlData, controlEscaped)
	fmt.Fprintf(&sb, `<div %s="" %s="%s" %s="%s">`,
		format.Attrs.WebPart, format.Attrs.WebPartVersion, version, format.Attrs.WebPartData, dataEscaped)
	fmt.Fprintf(&sb, `<div %s>`, format.Attrs.ComponentID)
	sb.WriteString(w.componentID.String())
	sb.WriteString("</div>")
	fmt.Fprintf(&sb, `<div %s="">`, format.Attrs.HTMLProperties)
	sb.WriteString(w.propertiesBody(format))
	sb.WriteString("</div></div></div>")
	return sb.String(), nil
}

// propertiesBody synthesizes the html-properties body from server
// processed content when present, field by field in stored order, and
// otherwise passes the captured body through verbatim.
func (w *WebPart) propertiesBody(format Format) string {
	if w.serverProcessed == nil {
		return w.htmlProperties
	}
	var sb strings.Builder
	for _, entry := range w.serverProcessed.SearchablePlainTexts {
		fmt.Fprintf(&sb, `<div %s="%s" %s="true">%s</div>`,
			format.Attrs.PropName, entry.Name, format.Attrs.SearchableText, entry.Value)
	}
	for _, entry := range w.serverProcessed.ImageSources {
		fmt.Fprintf(&sb, `<img %s="%s" src="%s" />`, format.Attrs.PropName, entry.Name, entry.Value)
	}
	for _, entry := range w.serverProcessed.Links {
		fmt.Fprintf(&sb, `<a %s="%s" href="%s"></a>`, format.Attrs.PropName, entry.Name, entry.Value)
	}
	return sb.String()
}

func (w *WebPart) fromHTML(fragment string, format Format) error {
	data, err := decodeControlData(fragment, format)
	if err != nil {
		return err
	}
	if data.ID != "" {
		w.id = guid.GUID(data.ID)
	}
	if data.WebPartID != "" {
		w.componentID = guid.GUID(data.WebPartID)
	}
	if version, ok := markup.Attr(fragment, format.Attrs.CanvasVersion); ok {
		w.version = version
	}

	if escaped, ok := markup.Attr(fragment, format.Attrs.WebPartData); ok {
		var wpd webPartData
		if err := attrjson.Decode(escaped, &wpd); err != nil {
			return fmt.Errorf("web part data: %w", err)
		}
		w.title = wpd.Title
		w.description = wpd.Description
		if wpd.DataVersion != "" {
			w.version = wpd.DataVersion
		}
		if wpd.ID != "" {
			w.componentID = guid.GUID(wpd.ID)
		}
		if wpd.InstanceID != "" {
			w.id = guid.GUID(wpd.InstanceID)
		}
		bag, serverProcessed, err := parseProperties(wpd.Properties)
		if err != nil {
			return err
		}
		w.properties = bag
		if serverProcessed != nil {
			w.serverProcessed = serverProcessed
		}
	}

	bodies, err := markup.Fragments(fragment, format.htmlPropertiesBoundary())
	if err != nil {
		return fmt.Errorf("html properties: %w", err)
	}
	if len(bodies) > 0 {
		w.htmlProperties = markup.StripWrapper(bodies[0], format.htmlPropertiesBoundary())
	}
	return nil
}

// parseProperties applies the property-bag priority rule. Exported
// definitions nest the real bag under webPartData.properties (alongside
// any server-processed content), older exports under properties with the
// server-processed content as a sibling, and a plain bag is taken as is.
func parseProperties(raw json.RawMessage) (map[string]any, *ServerProcessedContent, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil, nil
	}
	var probe struct {
		WebPartData            json.RawMessage         `json:"webPartData"`
		Properties             json.RawMessage         `json:"properties"`
		ServerProcessedContent *ServerProcessedContent `json:"serverProcessedContent"`
	}
	if isJSONObject(raw) {
		// A non-object bag skips straight to the fallback decode below.
		_ = json.Unmarshal(raw, &probe)
	}
	if isJSONObject(probe.WebPartData) {
		var exported struct {
			Properties             map[string]any          `json:"properties"`
			ServerProcessedContent *ServerProcessedContent `json:"serverProcessedContent"`
		}
		if err := json.Unmarshal(probe.WebPartData, &exported); err == nil && exported.Properties != nil {
			return exported.Properties, exported.ServerProcessedContent, nil
		}
	}
	if isJSONObject(probe.Properties) {
		var bag map[string]any
		if err := json.Unmarshal(probe.Properties, &bag); err == nil {
			return bag, probe.ServerProcessedContent, nil
		}
	}
	var bag map[string]any
	if err := json.Unmarshal(raw, &bag); err != nil {
		return nil, nil, fmt.Errorf("web part properties: %w", err)
	}
	return bag, nil, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// QueryProperties evaluates a jq expression against the property bag and
// returns every produced value.
func (w *WebPart) QueryProperties(expr string) ([]any, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	properties := w.properties
	if properties == nil {
		properties = map[string]any{}
	}
	var results []any
	iter := query.Run(properties)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("query %q: %w", expr, err)
		}
		results = append(results, v)
	}
	return results, nil
}

// Clone returns a deep copy under a fresh instance id, so the copy can
// be placed elsewhere without sharing property state.
func (w *WebPart) Clone() (*WebPart, error) {
	clone := &WebPart{
		id:             guid.New(),
		componentID:    w.componentID,
		title:          w.title,
		description:    w.description,
		version:        w.version,
		htmlProperties: w.htmlProperties,
		properties:     map[string]any{},
	}
	if len(w.properties) > 0 {
		if err := copier.CopyWithOption(&clone.properties, w.properties, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("clone properties: %w", err)
		}
	}
	if w.serverProcessed != nil {
		var content ServerProcessedContent
		if err := copier.CopyWithOption(&content, w.serverProcessed, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("clone server content: %w", err)
		}
		clone.serverProcessed = &content
	}
	return clone, nil
}
