package canvas

import (
	"strings"
)

// Section is a horizontal band of the canvas, split into columns.
type Section struct {
	Columns []*Column

	order int
}

// Order returns the section's 1-based position, refreshed on render.
func (s *Section) Order() int {
	return s.order
}

// AddColumn appends a column with the given width factor.
func (s *Section) AddColumn(factor ColumnFactor) (*Column, error) {
	if !factor.Valid() {
		return nil, factor.validationError()
	}
	column := &Column{
		Factor: factor,
		order:  nextColumnOrder(s.Columns),
	}
	s.Columns = append(s.Columns, column)
	return column, nil
}

// AddControl places the control in the section's default column, which
// is created full width the first time it is needed.
func (s *Section) AddControl(control Control) {
	s.defaultColumn().AddControl(control)
}

func (s *Section) defaultColumn() *Column {
	if len(s.Columns) < 1 {
		column, _ := s.AddColumn(FullWidth)
		return column
	}
	return s.Columns[0]
}

// ToHTML renders the section's columns back to back. Sections have no
// wrapper of their own on the wire.
func (s *Section) ToHTML(format Format) (string, error) {
	var sb strings.Builder
	for _, column := range s.Columns {
		html, err := column.ToHTML(s.order, format)
		if err != nil {
			return "", err
		}
		sb.WriteString(html)
	}
	return sb.String(), nil
}

func nextSectionOrder(sections []*Section) int {
	max := 0
	for _, section := range sections {
		if section.order > max {
			max = section.order
		}
	}
	return max + 1
}
