package canvas

import (
	"fmt"
	"strings"

	"github.com/Ameralajore/PnP-JS-Core/pkg/guid"
	"github.com/Ameralajore/PnP-JS-Core/pkg/markup"
	"github.com/Ameralajore/PnP-JS-Core/pkg/richtext"
)

// PageLayout classifies how the host presents a page.
type PageLayout string

const (
	LayoutArticle          PageLayout = "Article"
	LayoutHome             PageLayout = "Home"
	LayoutSingleWebPartApp PageLayout = "SingleWebPartAppPage"
)

// PromotedState records whether a page is promoted as news.
type PromotedState int

const (
	NotPromoted      PromotedState = 0
	PromoteOnPublish PromotedState = 1
	Promoted         PromotedState = 2
)

// Page is the document aggregate: the section tree plus the metadata
// carried next to the canvas. The zero number of sections is valid and
// renders an empty wrapper.
type Page struct {
	Sections []*Section

	Title            string
	CommentsDisabled bool
	Layout           PageLayout
	Promoted         PromotedState
	BannerImageURL   string

	format Format
}

// Option configures a page at construction.
type Option func(*Page)

// WithFormat overrides the wire constants the page serializes with.
// Zero fields keep their platform defaults.
func WithFormat(format Format) Option {
	return func(p *Page) {
		p.format = format.withDefaults()
	}
}

// NewPage returns an empty article page using the platform wire format.
func NewPage(options ...Option) *Page {
	page := &Page{
		Layout: LayoutArticle,
		format: DefaultFormat(),
	}
	for _, option := range options {
		option(page)
	}
	return page
}

// Format returns the wire constants the page serializes with.
func (p *Page) Format() Format {
	return p.format
}

// AddSection appends an empty section and returns it.
func (p *Page) AddSection() *Section {
	section := &Section{order: nextSectionOrder(p.Sections)}
	p.Sections = append(p.Sections, section)
	return section
}

// FromMarkup resets the section tree and rebuilds it from canvas markup.
// Fragments with an unknown discriminant are dropped, matching the
// platform's tolerant reader.
func (p *Page) FromMarkup(markupText string) error {
	p.Sections = nil

	fragments, err := markup.Fragments(markupText, p.format.controlBoundary())
	if err != nil {
		return fmt.Errorf("scan canvas: %w", err)
	}
	for i, fragment := range fragments {
		if err := p.placeFragment(fragment); err != nil {
			return fmt.Errorf("fragment %d: %w", i+1, err)
		}
	}

	p.reindex()
	return nil
}

func (p *Page) placeFragment(fragment string) error {
	data, err := decodeControlData(fragment, p.format)
	if err != nil {
		return err
	}
	switch Kind(data.ControlType) {
	case KindColumn:
		column, zoneIndex, err := parseColumnMarker(fragment, p.format)
		if err != nil {
			return err
		}
		p.placeColumn(column, zoneIndex)
	case KindText:
		control := &TextControl{id: guid.New()}
		if err := control.fromHTML(fragment, p.format); err != nil {
			return err
		}
		p.placeControl(control, data.Position)
	case KindWebPart:
		control := &WebPart{id: guid.New(), properties: map[string]any{}}
		if err := control.fromHTML(fragment, p.format); err != nil {
			return err
		}
		p.placeControl(control, data.Position)
	}
	return nil
}

// ToMarkup renders the canvas. The tree is renumbered first, so orders
// come out contiguous and rendering twice yields the same string.
func (p *Page) ToMarkup() (string, error) {
	p.reindex()

	var sb strings.Builder
	sb.WriteString("<div>")
	for _, section := range p.Sections {
		html, err := section.ToHTML(p.format)
		if err != nil {
			return "", err
		}
		sb.WriteString(html)
	}
	sb.WriteString("</div>")
	return sb.String(), nil
}

// FindControl returns the first control satisfying the predicate, in
// depth-first document order.
func (p *Page) FindControl(predicate func(Control) bool) (Control, bool) {
	for _, section := range p.Sections {
		for _, column := range section.Columns {
			for _, control := range column.Controls {
				if predicate(control) {
					return control, true
				}
			}
		}
	}
	return nil, false
}

// FindControlByID returns the control carrying the given instance id.
func (p *Page) FindControlByID(id guid.GUID) (Control, bool) {
	return p.FindControl(func(control Control) bool {
		return control.ID() == id
	})
}

// PlainText returns the searchable text of the page: text control bodies
// stripped of markup and the searchable entries of web parts.
func (p *Page) PlainText() string {
	var parts []string
	for _, section := range p.Sections {
		for _, column := range section.Columns {
			for _, control := range column.Controls {
				switch c := control.(type) {
				case *TextControl:
					if txt := richtext.PlainText(c.Text()); txt != "" {
						parts = append(parts, txt)
					}
				case *WebPart:
					if c.serverProcessed == nil {
						continue
					}
					for _, entry := range c.serverProcessed.SearchablePlainTexts {
						if entry.Value != "" {
							parts = append(parts, entry.Value)
						}
					}
				}
			}
		}
	}
	return strings.Join(parts, "\n")
}
