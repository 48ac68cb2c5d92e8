package canvas

import (
	"fmt"
	"strings"

	"github.com/Ameralajore/PnP-JS-Core/pkg/attrjson"
	"github.com/Ameralajore/PnP-JS-Core/pkg/guid"
	"github.com/Ameralajore/PnP-JS-Core/pkg/markup"
	"github.com/Ameralajore/PnP-JS-Core/pkg/richtext"
)

// TextControl is a rich text fragment.
type TextControl struct {
	id      guid.GUID
	text    string
	version string
}

// NewText creates a text control with a fresh instance id. The body is
// wrapped in a paragraph tag when not already.
func NewText(text string) *TextControl {
	control := &TextControl{id: guid.New()}
	control.SetText(text)
	return control
}

// NewTextFromMarkdown renders Markdown into the control body.
func NewTextFromMarkdown(md string) *TextControl {
	return NewText(richtext.ToHTML(md))
}

func (t *TextControl) Kind() Kind {
	return KindText
}

func (t *TextControl) ID() guid.GUID {
	return t.id
}

func (t *TextControl) Text() string {
	return t.text
}

// SetText stores the body, wrapped in a paragraph tag when not already.
func (t *TextControl) SetText(text string) {
	t.text = richtext.EnsureParagraph(text)
}

// Data returns the control data persisted for the given position.
func (t *TextControl) Data(pos Position, format Format) ControlData {
	return ControlData{
		ControlType: int(KindText),
		EditorType:  format.TextEditor,
		ID:          t.id.String(),
		Position:    pos,
	}
}

func (t *TextControl) ToHTML(pos Position, format Format) (string, error) {
	escaped, err := attrjson.Encode(t.Data(pos, format))
	if err != nil {
		return "", err
	}
	version := t.version
	if version == "" {
		version = format.DataVersion
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<div %s="" %s="%s" %s="%s">`,
		format.Attrs.Control, format.Attrs.CanvasVersion, version, format.Attrs.ControlData, escaped)
	fmt.Fprintf(&sb, `<div %s="">`, format.Attrs.RichText)
	sb.WriteString(t.text)
	sb.WriteString("</div></div>")
	return sb.String(), nil
}

func (t *TextControl) fromHTML(fragment string, format Format) error {
	data, err := decodeControlData(fragment, format)
	if err != nil {
		return err
	}
	if data.ID != "" {
		t.id = guid.GUID(data.ID)
	}
	if version, ok := markup.Attr(fragment, format.Attrs.CanvasVersion); ok {
		t.version = version
	}

	bodies, err := markup.Fragments(fragment, format.richTextBoundary())
	if err != nil {
		return fmt.Errorf("text body: %w", err)
	}
	if len(bodies) > 0 {
		t.SetText(markup.StripWrapper(bodies[0], format.richTextBoundary()))
	} else {
		// A fragment without a rich text wrapper is an empty control, not
		// an error.
		t.SetText("")
	}
	return nil
}
