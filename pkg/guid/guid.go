// Package guid produces and normalizes the component and instance
// identifiers carried in canvas control data.
package guid

import (
	"fmt"

	"github.com/google/uuid"
)

type GUID string

const Nil = GUID("")

func (g GUID) IsNil() bool {
	return string(g) == ""
}

// String returns the GUID as a string.
func (g GUID) String() string {
	return string(g)
}

/* Constructors */

func New() GUID {
	return generator.New()
}

/* Parser */

// Parse normalizes an identifier to its canonical lower-case form.
// Component descriptors wrap ids in braces ("{A4F...}"); both the braced
// and the plain forms are accepted.
func Parse(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("invalid guid %q: %w", s, err)
	}
	return GUID(u.String()), nil
}

// MustParse parses a GUID or panics if the format is not valid.
func MustParse(s string) GUID {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}
