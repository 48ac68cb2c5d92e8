// Package canvas models the layout tree of a modern page: sections
// holding columns holding controls, persisted as a single flattened
// markup string in which every control is a div fragment carrying its
// JSON metadata in escaped attributes.
//
// The package round-trips that markup: parsing rebuilds the tree from
// the flat positional metadata each fragment carries, and rendering
// re-emits markup the host platform accepts byte for byte.
package canvas

import (
	"regexp"

	"github.com/Ameralajore/PnP-JS-Core/pkg/markup"
)

// AttrNames groups the attribute names used on the wire. The zero value
// of any field falls back to the platform default.
type AttrNames struct {
	Control        string
	CanvasVersion  string
	ControlData    string
	RichText       string
	WebPart        string
	WebPartVersion string
	WebPartData    string
	ComponentID    string
	HTMLProperties string
	PropName       string
	SearchableText string
}

// DefaultAttrNames returns the attribute names the platform uses.
func DefaultAttrNames() AttrNames {
	return AttrNames{
		Control:        "data-sp-canvascontrol",
		CanvasVersion:  "data-sp-canvasdataversion",
		ControlData:    "data-sp-controldata",
		RichText:       "data-sp-rte",
		WebPart:        "data-sp-webpart",
		WebPartVersion: "data-sp-webpartdataversion",
		WebPartData:    "data-sp-webpartdata",
		ComponentID:    "data-sp-componentid",
		HTMLProperties: "data-sp-htmlproperties",
		PropName:       "data-sp-prop-name",
		SearchableText: "data-sp-searchableplaintext",
	}
}

// Format carries the wire constants a page serializes with. Values are
// fixed at page construction; the zero value of any field means the
// platform default.
type Format struct {
	DataVersion string
	TextEditor  string
	Attrs       AttrNames
}

// DefaultFormat returns the platform defaults.
func DefaultFormat() Format {
	return Format{
		DataVersion: "1.0",
		TextEditor:  "CKEditor",
		Attrs:       DefaultAttrNames(),
	}
}

// withDefaults fills every zero field with its platform default.
func (f Format) withDefaults() Format {
	def := DefaultFormat()
	if f.DataVersion == "" {
		f.DataVersion = def.DataVersion
	}
	if f.TextEditor == "" {
		f.TextEditor = def.TextEditor
	}
	fillAttr(&f.Attrs.Control, def.Attrs.Control)
	fillAttr(&f.Attrs.CanvasVersion, def.Attrs.CanvasVersion)
	fillAttr(&f.Attrs.ControlData, def.Attrs.ControlData)
	fillAttr(&f.Attrs.RichText, def.Attrs.RichText)
	fillAttr(&f.Attrs.WebPart, def.Attrs.WebPart)
	fillAttr(&f.Attrs.WebPartVersion, def.Attrs.WebPartVersion)
	fillAttr(&f.Attrs.WebPartData, def.Attrs.WebPartData)
	fillAttr(&f.Attrs.ComponentID, def.Attrs.ComponentID)
	fillAttr(&f.Attrs.HTMLProperties, def.Attrs.HTMLProperties)
	fillAttr(&f.Attrs.PropName, def.Attrs.PropName)
	fillAttr(&f.Attrs.SearchableText, def.Attrs.SearchableText)
	return f
}

func fillAttr(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func (f Format) controlBoundary() *regexp.Regexp {
	return markup.Boundary(f.Attrs.Control)
}

func (f Format) richTextBoundary() *regexp.Regexp {
	return markup.Boundary(f.Attrs.RichText)
}

func (f Format) htmlPropertiesBoundary() *regexp.Regexp {
	return markup.Boundary(f.Attrs.HTMLProperties)
}
