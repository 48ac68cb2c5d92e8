package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NamedValue is one entry of an order-significant JSON object.
type NamedValue struct {
	Name  string
	Value string
}

// NamedValues marshals as a JSON object while preserving entry order in
// both directions. The platform stores these bags as plain objects but
// re-emits their entries in the order it received them.
type NamedValues []NamedValue

func (v NamedValues) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := marshalJSONValue(entry.Name)
		if err != nil {
			return nil, err
		}
		value, err := marshalJSONValue(entry.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (v *NamedValues) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	opening, err := decoder.Token()
	if err != nil {
		return err
	}
	if opening != json.Delim('{') {
		return fmt.Errorf("expected an object, got %v", opening)
	}
	entries := NamedValues{}
	for decoder.More() {
		key, err := decoder.Token()
		if err != nil {
			return err
		}
		var value string
		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("entry %q: %w", key, err)
		}
		entries = append(entries, NamedValue{Name: key.(string), Value: value})
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	*v = entries
	return nil
}

// Get returns the value stored under name.
func (v NamedValues) Get(name string) (string, bool) {
	for _, entry := range v {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return "", false
}

// ServerProcessedContent is the auxiliary content the host renders on the
// server's behalf: searchable text snippets, image sources and link
// targets, each keyed by property name.
type ServerProcessedContent struct {
	ImageSources         NamedValues `json:"imageSources,omitempty"`
	Links                NamedValues `json:"links,omitempty"`
	SearchablePlainTexts NamedValues `json:"searchablePlainTexts,omitempty"`
}

// marshalJSONValue encodes a value without the HTML escaping the
// standard marshaler applies, since bags carry URLs and markup.
func marshalJSONValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
