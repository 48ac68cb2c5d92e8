// Package markup locates balanced div fragments inside the flattened
// markup strings used by page canvases. It is not an HTML parser: tags
// are matched positionally with a nesting counter, which is exactly how
// the host platform delimits canvas fragments.
package markup

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed reports markup the scanner cannot delimit, either because
// an opening tag is never closed or because nesting runs past MaxDepth.
var ErrMalformed = errors.New("malformed markup")

// MaxDepth bounds the nesting followed inside a single fragment.
const MaxDepth = 1000

var (
	openTag  = regexp.MustCompile(`(?i)<div[^>]*>`)
	closeTag = regexp.MustCompile(`(?i)</div>`)

	cleaner = strings.NewReplacer("\t", "", "\r", "", "\n", "")
)

const closeTagLen = len("</div>")

// Boundary compiles the fragment-start pattern for a div carrying the
// given attribute.
func Boundary(attr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)<div\b[^>]*` + regexp.QuoteMeta(attr) + `[^>]*?>`)
}

// Clean strips the whitespace characters that carry no meaning on the
// wire. Spaces are preserved.
func Clean(s string) string {
	return cleaner.Replace(s)
}

// Fragments returns every balanced fragment in s that starts with a match
// of boundary, in document order. The input is cleaned first. Each
// fragment spans the boundary tag through its matching close, inclusive;
// the search for the next fragment resumes after that close. An input
// without any boundary match yields an empty result and no error.
func Fragments(s string, boundary *regexp.Regexp) ([]string, error) {
	fragments := []string{}

	cleaned := Clean(s)

	start := indexFrom(boundary, cleaned, 0)
	for start >= 0 {
		end, err := closeIndex(cleaned, start)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, cleaned[start:end])
		start = indexFrom(boundary, cleaned, end)
	}

	return fragments, nil
}

// closeIndex scans forward from the boundary tag at start and returns the
// offset just past the close tag that balances it.
func closeIndex(s string, start int) (int, error) {
	// The boundary tag itself is the first open.
	depth := 1
	searchIndex := start + 1

	for {
		nextOpen := indexFrom(openTag, s, searchIndex)
		nextClose := indexFrom(closeTag, s, searchIndex)
		if nextClose < 0 {
			return 0, fmt.Errorf("%w: unclosed tag at offset %d", ErrMalformed, start)
		}
		if nextOpen >= 0 && nextOpen < nextClose {
			depth++
			if depth > MaxDepth {
				return 0, fmt.Errorf("%w: nesting exceeds %d at offset %d", ErrMalformed, MaxDepth, nextOpen)
			}
			searchIndex = nextOpen + 1
			continue
		}
		depth--
		searchIndex = nextClose + 1
		if depth == 0 {
			return nextClose + closeTagLen, nil
		}
	}
}

// Attr returns the value of the first name="value" occurrence in the
// fragment, matched case-insensitively.
func Attr(fragment string, name string) (string, bool) {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `="([^"]*?)"`)
	match := re.FindStringSubmatch(fragment)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// StripWrapper removes the leading wrapper tag matched by boundary and the
// trailing close tag, returning the literal inner body. The fragment is
// returned unchanged when it does not start with the boundary.
func StripWrapper(fragment string, boundary *regexp.Regexp) string {
	loc := boundary.FindStringIndex(fragment)
	if loc == nil || loc[0] != 0 {
		return fragment
	}
	body := fragment[loc[1]:]
	if strings.EqualFold(lastN(body, closeTagLen), "</div>") {
		body = body[:len(body)-closeTagLen]
	}
	return body
}

func indexFrom(re *regexp.Regexp, s string, from int) int {
	if from >= len(s) {
		return -1
	}
	loc := re.FindStringIndex(s[from:])
	if loc == nil {
		return -1
	}
	return from + loc[0]
}

func lastN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[len(s)-n:]
}
