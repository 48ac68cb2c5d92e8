package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ameralajore/PnP-JS-Core/pkg/attrjson"
	"github.com/Ameralajore/PnP-JS-Core/pkg/markup"
	"golang.org/x/exp/slices"
)

// ColumnFactor is the width weight of a column. Factors of the columns
// of a section conventionally add up to twelve.
type ColumnFactor int

// FullWidth is the factor of a column spanning the whole canvas.
const FullWidth ColumnFactor = 12

var validFactors = []ColumnFactor{0, 2, 4, 6, 8, 12}

// ErrInvalidFactor reports a column factor outside the supported set.
var ErrInvalidFactor = errors.New("invalid column factor")

func (f ColumnFactor) Valid() bool {
	return slices.Contains(validFactors, f)
}

func (f ColumnFactor) validationError() error {
	return fmt.Errorf("%w: %d", ErrInvalidFactor, int(f))
}

// Column holds a vertical slice of a section and the controls inside it.
type Column struct {
	Factor   ColumnFactor
	Controls []Control

	order   int
	version string
}

// Order returns the column's 1-based position, refreshed on render.
func (c *Column) Order() int {
	return c.order
}

// AddControl appends a control, preserving document order.
func (c *Column) AddControl(control Control) {
	c.Controls = append(c.Controls, control)
}

// ToHTML renders the column's controls in order. A column without
// controls renders its self-closing marker so empty columns survive a
// round trip.
func (c *Column) ToHTML(zoneIndex int, format Format) (string, error) {
	if len(c.Controls) == 0 {
		return c.markerHTML(zoneIndex, format)
	}
	var sb strings.Builder
	for i, control := range c.Controls {
		pos := Position{
			ControlIndex:  i + 1,
			SectionFactor: int(c.Factor),
			SectionIndex:  c.order,
			ZoneIndex:     zoneIndex,
		}
		html, err := control.ToHTML(pos, format)
		if err != nil {
			return "", err
		}
		sb.WriteString(html)
	}
	return sb.String(), nil
}

// A marker always advertises the edit display mode.
const markerDisplayMode = 2

func (c *Column) markerHTML(zoneIndex int, format Format) (string, error) {
	data := ControlData{
		DisplayMode: markerDisplayMode,
		Position: Position{
			SectionFactor: int(c.Factor),
			SectionIndex:  c.order,
			ZoneIndex:     zoneIndex,
		},
	}
	escaped, err := attrjson.Encode(data)
	if err != nil {
		return "", err
	}
	version := c.version
	if version == "" {
		version = format.DataVersion
	}
	return fmt.Sprintf(`<div %s="" %s="%s" %s="%s"></div>`,
		format.Attrs.Control, format.Attrs.CanvasVersion, version, format.Attrs.ControlData, escaped), nil
}

// parseColumnMarker materializes a column from a marker fragment and
// returns it with the section order the marker points at.
func parseColumnMarker(fragment string, format Format) (*Column, int, error) {
	data, err := decodeControlData(fragment, format)
	if err != nil {
		return nil, 0, err
	}
	column := &Column{
		Factor: ColumnFactor(data.Position.SectionFactor),
		order:  data.Position.SectionIndex,
	}
	if version, ok := markup.Attr(fragment, format.Attrs.CanvasVersion); ok {
		column.version = version
	}
	return column, data.Position.ZoneIndex, nil
}

func nextColumnOrder(columns []*Column) int {
	max := 0
	for _, column := range columns {
		if column.order > max {
			max = column.order
		}
	}
	return max + 1
}
