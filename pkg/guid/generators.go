package guid

import (
	"fmt"

	"github.com/google/uuid"
)

var generator Generator = &UniqueGenerator{}

/* Generator */

type Generator interface {
	New() GUID
}

// Reset restores the original unique GUID generator.
// Useful in tests with a defer after overriding the default generator.
func Reset() {
	generator = &UniqueGenerator{}
}

/*
 * UniqueGenerator
 */

// UniqueGenerator is a production-grade Generator returning random v4
// GUIDs in the canonical lower-case form the platform stores.
type UniqueGenerator struct{}

func NewUniqueGenerator() *UniqueGenerator {
	return &UniqueGenerator{}
}

func (g *UniqueGenerator) New() GUID {
	return GUID(uuid.New().String())
}

/*
 * SuiteGenerator
 */

// SuiteGenerator returns a predefined suite of GUIDs.
// This generator is useful for tests when ids are relevant for the test case.
type SuiteGenerator struct {
	nextGUIDs []string
}

func NewSuiteGenerator(nextGUIDs ...string) *SuiteGenerator {
	return &SuiteGenerator{nextGUIDs: nextGUIDs}
}

func (g *SuiteGenerator) New() GUID {
	if len(g.nextGUIDs) > 0 {
		next, remaining := g.nextGUIDs[0], g.nextGUIDs[1:]
		g.nextGUIDs = remaining
		return GUID(next)
	}
	panic("No more GUIDs")
}

/*
 * FixedGenerator
 */

// FixedGenerator returns always the same GUID.
type FixedGenerator struct {
	guid GUID
}

func NewFixedGenerator(guid GUID) *FixedGenerator {
	return &FixedGenerator{guid: guid}
}

func (g *FixedGenerator) New() GUID {
	return g.guid
}

/*
 * SequenceGenerator
 */

// SequenceGenerator returns GUID-shaped values ending in an increasing
// counter, which keeps golden files readable.
type SequenceGenerator struct {
	count int
}

func NewSequenceGenerator() *SequenceGenerator {
	return &SequenceGenerator{}
}

func (g *SequenceGenerator) New() GUID {
	g.count++
	return GUID(fmt.Sprintf("00000000-0000-4000-8000-%012d", g.count))
}
