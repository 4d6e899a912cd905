// Package domain defines core business entities and value objects for aibridge.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures.
package domain

import (
	"strconv"
	"strings"
	"unicode"
)

// Statement is an ordered sequence of textual instructions in the target
// BASIC dialect. A Statement may span multiple lines (a FOR/NEXT body, for
// example) and may or may not carry line numbers.
type Statement struct {
	Lines []string
}

// NewStatement splits raw text into trimmed, non-empty lines.
func NewStatement(text string) Statement {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return Statement{Lines: lines}
}

// Text renders the statement as newline-joined source.
func (s Statement) Text() string {
	return strings.Join(s.Lines, "\n")
}

// IsEmpty reports whether the statement carries no instructions.
func (s Statement) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Numbered returns a copy with sequential line numbers applied, replacing any
// existing ones. Interpreters in the target family require numbered program
// lines; immediate-mode statements do not.
func (s Statement) Numbered(start, step int) Statement {
	if start <= 0 {
		start = 10
	}
	if step <= 0 {
		step = 10
	}
	out := Statement{Lines: make([]string, 0, len(s.Lines))}
	n := start
	for _, line := range s.Lines {
		out.Lines = append(out.Lines, joinNumber(n, stripLineNumber(line)))
		n += step
	}
	return out
}

func stripLineNumber(line string) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsDigit)
	if trimmed == line {
		return line
	}
	return strings.TrimSpace(trimmed)
}

func joinNumber(n int, line string) string {
	return strconv.Itoa(n) + " " + line
}
