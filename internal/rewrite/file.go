package rewrite

import (
	"strings"

	"github.com/LegacyCodeHQ/incfix/include"
)

// ChangeKind classifies what happened to one include line.
type ChangeKind int

const (
	ChangeUntouched ChangeKind = iota
	ChangeReplaced
	ChangeRetyped
	ChangeFailed
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeUntouched:
		return "untouched"
	case ChangeReplaced:
		return "replaced"
	case ChangeRetyped:
		return "retyped"
	case ChangeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Change records the decision taken for one include line.
type Change struct {
	Line int
	Kind ChangeKind

	From       string
	FromSystem bool
	To         string
	ToSystem   bool

	// Alternatives are the other candidates, best first.
	Alternatives []string
}

// FileResult is the outcome of rewriting one source file.
type FileResult struct {
	Path    string
	Stats   Stats
	Changes []Change
	// Written reports whether the file on disk was replaced.
	Written bool
}

// RewriteContent fixes every include directive in content and returns the new
// content. Lines that are not directives, and directives that cannot be
// resolved, are copied unchanged. Line endings are preserved.
func RewriteContent(file string, content []byte, resolver *include.Resolver) ([]byte, FileResult) {
	result := FileResult{Path: file}
	policy := resolver.Policy()

	var out strings.Builder
	out.Grow(len(content))

	for i, raw := range strings.SplitAfter(string(content), "\n") {
		line, ending := splitEnding(raw)

		d, ok := include.ParseLine(line, file, policy.ProcessSystem)
		if !ok {
			out.WriteString(raw)
			continue
		}

		change := fixLine(d, resolver)
		change.Line = i + 1
		result.Changes = append(result.Changes, change)
		result.Stats = result.Stats.Add(statsFor(change))

		if change.Kind == ChangeFailed {
			out.WriteString(raw)
			continue
		}
		out.WriteString(d.Render(change.To, change.ToSystem))
		out.WriteString(ending)
	}

	return []byte(out.String()), result
}

func fixLine(d include.Directive, resolver *include.Resolver) Change {
	change := Change{
		From:       d.Path,
		FromSystem: d.System,
	}

	outcome, ok := resolver.Fix(d.Statement)
	if !ok {
		change.Kind = ChangeFailed
		return change
	}

	change.To = outcome.Path
	change.ToSystem = outcome.System
	for _, alt := range outcome.Alternatives {
		change.Alternatives = append(change.Alternatives, alt.Header)
	}

	switch {
	case outcome.ChangedPath:
		change.Kind = ChangeReplaced
	case outcome.ChangedType:
		change.Kind = ChangeRetyped
	default:
		change.Kind = ChangeUntouched
	}
	return change
}

func statsFor(c Change) Stats {
	s := Stats{Total: 1}
	switch c.Kind {
	case ChangeFailed:
		s.Failed = 1
		return s
	case ChangeReplaced:
		s.Replaced = 1
	case ChangeUntouched:
		s.Untouched = 1
	}
	if c.FromSystem != c.ToSystem {
		if c.ToSystem {
			s.UserToSystem = 1
		} else {
			s.SystemToUser = 1
		}
	}
	return s
}

func splitEnding(raw string) (string, string) {
	switch {
	case strings.HasSuffix(raw, "\r\n"):
		return raw[:len(raw)-2], "\r\n"
	case strings.HasSuffix(raw, "\n"):
		return raw[:len(raw)-1], "\n"
	default:
		return raw, ""
	}
}
