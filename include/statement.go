package include

import "strings"

const (
	userPrefix   = `#include "`
	systemPrefix = `#include <`
)

// Statement is one include directive as written in a source file.
type Statement struct {
	// Path is the text between the delimiters, exactly as written.
	Path string
	// System reports whether the directive used angle brackets.
	System bool
	// File is the path of the source file containing the directive.
	File string
}

// Directive is a recognised include line split into its parts.
type Directive struct {
	Statement
	// Trailing is everything after the closing delimiter.
	Trailing string
}

// ParseLine recognises an include directive at the start of line. System
// includes are only recognised when processSystem is set. A line with no
// closing delimiter is not a directive.
func ParseLine(line, file string, processSystem bool) (Directive, bool) {
	var prefix, closing string
	switch {
	case strings.HasPrefix(line, userPrefix):
		prefix, closing = userPrefix, `"`
	case processSystem && strings.HasPrefix(line, systemPrefix):
		prefix, closing = systemPrefix, ">"
	default:
		return Directive{}, false
	}

	rest := line[len(prefix):]
	end := strings.Index(rest, closing)
	if end < 0 {
		return Directive{}, false
	}

	return Directive{
		Statement: Statement{
			Path:   rest[:end],
			System: closing == ">",
			File:   file,
		},
		Trailing: rest[end+1:],
	}, true
}

// Render formats the directive with a new path and bracket style, keeping the
// trailing text.
func (d Directive) Render(path string, system bool) string {
	if system {
		return "#include <" + path + ">" + d.Trailing
	}
	return `#include "` + path + `"` + d.Trailing
}
