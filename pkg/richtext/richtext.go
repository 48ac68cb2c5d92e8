// Package richtext converts between the rich text bodies of canvas text
// controls and friendlier authoring formats.
package richtext

import (
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
)

// ToHTML renders Markdown to the HTML accepted by rich text bodies.
func ToHTML(md string) string {
	html := markdown.ToHTML([]byte(md), nil, nil)
	return strings.TrimSpace(string(html))
}

// EnsureParagraph applies the storage rule for rich text content: a body
// that does not already start with a paragraph tag is wrapped in one.
func EnsureParagraph(s string) string {
	if !strings.HasPrefix(s, "<p>") {
		return "<p>" + s + "</p>"
	}
	return s
}

var (
	reTag    = regexp.MustCompile(`<[^>]*>`)
	reSpaces = regexp.MustCompile(`\s+`)

	entities = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
	)
)

// PlainText strips tags and common entities from an HTML body, squashing
// runs of whitespace. Used to surface the searchable text of a page.
func PlainText(html string) string {
	txt := reTag.ReplaceAllString(html, " ")
	txt = entities.Replace(txt)
	txt = reSpaces.ReplaceAllString(txt, " ")
	return strings.TrimSpace(txt)
}
