package guid

import "testing"

// UseNext configures a predefined list of GUIDs.
func UseNext(t *testing.T, guids ...string) {
	generator = NewSuiteGenerator(guids...)
	t.Cleanup(Reset)
}

// UseFixed configures a fixed GUID value.
func UseFixed(t *testing.T, value GUID) {
	generator = NewFixedGenerator(value)
	t.Cleanup(Reset)
}

// UseSequence configures a predefined sequence.
func UseSequence(t *testing.T) {
	generator = NewSequenceGenerator()
	t.Cleanup(Reset)
}
