// Package attrjson encodes JSON payloads into the escaped form the page
// canvas stores inside HTML attribute values, and back.
package attrjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPayload reports a value that cannot be carried as an escaped
// attribute, or escaped text that does not decode to valid JSON.
var ErrInvalidPayload = errors.New("invalid attribute payload")

// The four substitutions cover exactly the characters that would break an
// attribute value or be misread as markup. Nothing else is rewritten.
var (
	escaper = strings.NewReplacer(
		`"`, "&quot;",
		":", "&#58;",
		"{", "&#123;",
		"}", "&#125;",
	)
	unescaper = strings.NewReplacer(
		"&quot;", `"`,
		"&#58;", ":",
		"&#123;", "{",
		"&#125;", "}",
	)
)

// Encode marshals v to canonical JSON and escapes it for use as an
// attribute value. Map keys come out sorted, so encoding the same value
// always yields the same string.
func Encode(v any) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	// The platform stores markup characters literally inside the JSON.
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	raw := strings.TrimSuffix(buf.String(), "\n")
	return escaper.Replace(raw), nil
}

// Decode reverses the escaping and unmarshals the resulting JSON into v.
func Decode(s string, v any) error {
	if err := json.Unmarshal([]byte(unescaper.Replace(s)), v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

// DecodeValue decodes an escaped payload into untyped JSON values, for
// callers that carry bags of unknown shape.
func DecodeValue(s string) (any, error) {
	var v any
	if err := Decode(s, &v); err != nil {
		return nil, err
	}
	return v, nil
}
