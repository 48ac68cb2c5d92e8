package canvas

import (
	"fmt"

	"github.com/Ameralajore/PnP-JS-Core/pkg/attrjson"
	"github.com/Ameralajore/PnP-JS-Core/pkg/guid"
	"github.com/Ameralajore/PnP-JS-Core/pkg/markup"
)

// Kind is the control discriminant persisted in control data. A fragment
// whose control data carries no discriminant is a column marker.
type Kind int

const (
	KindColumn  Kind = 0
	KindWebPart Kind = 3
	KindText    Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindColumn:
		return "column"
	case KindWebPart:
		return "web part"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("unknown (%d)", int(k))
}

// ControlData mirrors the JSON carried by the control-data attribute.
// Field order matters: the platform emits keys alphabetically and so does
// this struct.
type ControlData struct {
	ControlType int      `json:"controlType,omitempty"`
	DisplayMode int      `json:"displayMode,omitempty"`
	EditorType  string   `json:"editorType,omitempty"`
	ID          string   `json:"id,omitempty"`
	Position    Position `json:"position"`
	WebPartID   string   `json:"webPartId,omitempty"`
}

// Position locates a control on the canvas: the section (zoneIndex), the
// column within it (sectionIndex, with the column's width factor), and
// the slot within the column (controlIndex). Column markers leave
// controlIndex at zero and it is omitted from their JSON.
type Position struct {
	ControlIndex  int `json:"controlIndex,omitempty"`
	SectionFactor int `json:"sectionFactor"`
	SectionIndex  int `json:"sectionIndex"`
	ZoneIndex     int `json:"zoneIndex"`
}

// Control is a piece of page content living inside a column. The set of
// implementations is closed: text controls and web parts.
type Control interface {
	Kind() Kind
	ID() guid.GUID

	// Data returns the control data the control persists when rendered
	// at the given position.
	Data(pos Position, format Format) ControlData

	// ToHTML renders the control's fragment for the given position.
	ToHTML(pos Position, format Format) (string, error)

	// fromHTML loads the control from one scanned fragment. Keeping it
	// unexported seals the variant set.
	fromHTML(fragment string, format Format) error
}

// decodeControlData reads and decodes the control-data attribute of a
// fragment. A fragment without the attribute yields the zero value, which
// classifies as a column marker.
func decodeControlData(fragment string, format Format) (ControlData, error) {
	var data ControlData
	escaped, ok := markup.Attr(fragment, format.Attrs.ControlData)
	if !ok {
		return data, nil
	}
	if err := attrjson.Decode(escaped, &data); err != nil {
		return data, fmt.Errorf("control data: %w", err)
	}
	return data, nil
}
