package canvas

// Placement walks fragments in document order and files each one under
// the section and column its position names, creating tree nodes on
// first reference. Orders are taken verbatim here and renumbered to a
// contiguous 1..N by reindex once the whole canvas is placed.

func (p *Page) placeColumn(column *Column, zoneIndex int) {
	section := p.sectionWithOrder(zoneIndex)
	section.Columns = append(section.Columns, column)
}

func (p *Page) placeControl(control Control, pos Position) {
	section := p.sectionWithOrder(pos.ZoneIndex)
	column := section.columnWithOrder(pos.SectionIndex, ColumnFactor(pos.SectionFactor))
	column.Controls = append(column.Controls, control)
}

func (p *Page) sectionWithOrder(order int) *Section {
	for _, section := range p.Sections {
		if section.order == order {
			return section
		}
	}
	section := &Section{order: order}
	p.Sections = append(p.Sections, section)
	return section
}

func (s *Section) columnWithOrder(order int, factor ColumnFactor) *Column {
	for _, column := range s.Columns {
		if column.order == order {
			return column
		}
	}
	column := &Column{Factor: factor, order: order}
	s.Columns = append(s.Columns, column)
	return column
}

// reindex renumbers sections and columns 1..N in slice order. Slice
// order reflects first reference in the source markup, so gaps close
// while relative order survives.
func (p *Page) reindex() {
	for i, section := range p.Sections {
		section.order = i + 1
		for j, column := range section.Columns {
			column.order = j + 1
		}
	}
}
