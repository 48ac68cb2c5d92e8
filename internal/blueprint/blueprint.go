// Package blueprint reads and writes declarative page definitions. A
// blueprint is the YAML source a page is materialized from, and the
// shape pages are projected back into for inspection.
package blueprint

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Ameralajore/PnP-JS-Core/internal/canvas"
	"github.com/Ameralajore/PnP-JS-Core/pkg/guid"
)

// Definition is the document root.
type Definition struct {
	Title            string    `yaml:"title,omitempty"`
	Layout           string    `yaml:"layout,omitempty"`
	CommentsDisabled bool      `yaml:"commentsDisabled,omitempty"`
	BannerImageURL   string    `yaml:"bannerImageUrl,omitempty"`
	Sections         []Section `yaml:"sections"`
}

type Section struct {
	Columns []Column `yaml:"columns"`
}

type Column struct {
	Factor   int       `yaml:"factor"`
	Controls []Control `yaml:"controls,omitempty"`
}

// Control declares one piece of content. Exactly one member is set:
// a literal rich text body, a Markdown body, or a web part.
type Control struct {
	Text     string      `yaml:"text,omitempty"`
	Markdown string      `yaml:"markdown,omitempty"`
	WebPart  *WebPartDef `yaml:"webPart,omitempty"`
}

type WebPartDef struct {
	ID         string         `yaml:"id"`
	Title      string         `yaml:"title,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// Parse decodes a YAML blueprint.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse blueprint: %w", err)
	}
	return &def, nil
}

// Load reads and decodes a YAML blueprint file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Marshal renders the definition back to YAML.
func (d *Definition) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Materialize builds a page from the definition through the canvas API.
// Controls get fresh instance ids.
func (d *Definition) Materialize(options ...canvas.Option) (*canvas.Page, error) {
	page := canvas.NewPage(options...)
	page.Title = d.Title
	if d.Layout != "" {
		page.Layout = canvas.PageLayout(d.Layout)
	}
	page.CommentsDisabled = d.CommentsDisabled
	page.BannerImageURL = d.BannerImageURL

	for si, sectionDef := range d.Sections {
		section := page.AddSection()
		for ci, columnDef := range sectionDef.Columns {
			column, err := section.AddColumn(canvas.ColumnFactor(columnDef.Factor))
			if err != nil {
				return nil, fmt.Errorf("section %d column %d: %w", si+1, ci+1, err)
			}
			for ki, controlDef := range columnDef.Controls {
				control, err := controlDef.materialize()
				if err != nil {
					return nil, fmt.Errorf("section %d column %d control %d: %w", si+1, ci+1, ki+1, err)
				}
				column.AddControl(control)
			}
		}
	}
	return page, nil
}

func (c Control) materialize() (canvas.Control, error) {
	set := 0
	if c.Text != "" {
		set++
	}
	if c.Markdown != "" {
		set++
	}
	if c.WebPart != nil {
		set++
	}
	if set != 1 {
		return nil, fmt.Errorf("exactly one of text, markdown or webPart must be set")
	}

	switch {
	case c.Text != "":
		return canvas.NewText(c.Text), nil
	case c.Markdown != "":
		return canvas.NewTextFromMarkdown(c.Markdown), nil
	default:
		componentID, err := guid.Parse(c.WebPart.ID)
		if err != nil {
			return nil, fmt.Errorf("web part id: %w", err)
		}
		part := canvas.NewWebPart(componentID, c.WebPart.Title)
		if len(c.WebPart.Properties) > 0 {
			part.SetProperties(c.WebPart.Properties)
		}
		return part, nil
	}
}

// Snapshot projects a page back into a definition. Text controls come
// out as literal text, instance ids are not part of the projection.
func Snapshot(page *canvas.Page) *Definition {
	def := &Definition{
		Title:            page.Title,
		Layout:           string(page.Layout),
		CommentsDisabled: page.CommentsDisabled,
		BannerImageURL:   page.BannerImageURL,
	}
	for _, section := range page.Sections {
		sectionDef := Section{}
		for _, column := range section.Columns {
			columnDef := Column{Factor: int(column.Factor)}
			for _, control := range column.Controls {
				switch c := control.(type) {
				case *canvas.TextControl:
					columnDef.Controls = append(columnDef.Controls, Control{Text: c.Text()})
				case *canvas.WebPart:
					columnDef.Controls = append(columnDef.Controls, Control{WebPart: &WebPartDef{
						ID:         c.ComponentID().String(),
						Title:      c.Title(),
						Properties: c.Properties(),
					}})
				}
			}
			sectionDef.Columns = append(sectionDef.Columns, columnDef)
		}
		def.Sections = append(def.Sections, sectionDef)
	}
	return def
}
