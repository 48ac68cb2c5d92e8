// Package console renders a single-line progress log for commands that
// walk many pages. Output goes to stderr so the page markup printed on
// stdout stays clean.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type ProgressLog struct {
	output        io.Writer
	showBar       bool
	showPercent   bool
	maxSteps      int
	maxCharacters int
	step          int
}

func NewProgressLog(maxSteps int, options ...func(*ProgressLog)) *ProgressLog {
	result := &ProgressLog{
		output:        os.Stderr,
		showPercent:   false,
		showBar:       true,
		maxSteps:      maxSteps,
		maxCharacters: 80,
	}
	for _, option := range options {
		option(result)
	}
	return result
}

func ToWriter(w io.Writer) func(*ProgressLog) {
	return func(l *ProgressLog) {
		l.output = w
	}
}

func HideBar() func(*ProgressLog) {
	return func(l *ProgressLog) {
		l.showBar = false
	}
}

func ShowPercent() func(*ProgressLog) {
	return func(l *ProgressLog) {
		l.showPercent = true
	}
}

func LineLength(characters int) func(*ProgressLog) {
	return func(l *ProgressLog) {
		l.maxCharacters = characters
	}
}

// Advance moves to the next step and rewrites the progress line.
func (l *ProgressLog) Advance(message string) {
	l.Log(l.step+1, message)
}

// Log rewrites the progress line for the given step.
func (l *ProgressLog) Log(currentStep int, message string) {
	l.step = currentStep
	percent := currentStep * 100 / l.maxSteps

	var sb strings.Builder
	if l.showBar {
		// Between 0 and 10 '#' depending on the percent
		filled := percent / 10
		sb.WriteString(strings.Repeat("#", filled))
		sb.WriteString(strings.Repeat(" ", 10-filled))
		sb.WriteRune(' ')
	}
	if l.showPercent {
		sb.WriteString(fmt.Sprintf("(%3d%%) ", percent))
	} else {
		sb.WriteString(fmt.Sprintf("(%d/%d) ", currentStep, l.maxSteps))
	}
	sb.WriteString(message)

	fmt.Fprint(l.output, l.pad(sb.String()), "\r")
}

// Clear rewrites the line a final time. An empty message leaves the
// cursor at the start of a blank line, otherwise the message stays.
func (l *ProgressLog) Clear(newMessage string) {
	fmt.Fprint(l.output, l.pad(newMessage))
	if newMessage == "" {
		fmt.Fprint(l.output, "\r")
	} else {
		fmt.Fprint(l.output, "\n")
	}
}

// pad truncates or right-pads so every rewrite covers the previous line.
func (l *ProgressLog) pad(line string) string {
	if len(line) > l.maxCharacters {
		return line[:l.maxCharacters]
	}
	return line + strings.Repeat(" ", l.maxCharacters-len(line))
}
