package include

// Policy holds the rules that decide how a resolved include is written.
type Policy struct {
	// ProcessSystem enables rewriting of <...> includes.
	ProcessSystem bool
	// SystemToUser turns <...> includes that resolve to a user root into
	// "..." includes. Ignored unless ProcessSystem is set.
	SystemToUser bool
	// UserToSystem turns "..." includes that resolve to a system root into
	// <...> includes.
	UserToSystem bool
	// PreferRelativeToRoot prefers root-relative paths over paths relative to
	// the including file.
	PreferRelativeToRoot bool
}

// Resolution is the decision for one include statement.
type Resolution struct {
	Path   string
	System bool

	ChangedPath bool
	ChangedType bool
}

// Resolve decides the emitted path and bracket style for stmt given the
// winning candidate.
func Resolve(stmt Statement, winner Candidate, policy Policy) Resolution {
	system := bracketStyle(stmt.System, winner.Root.System, policy)
	return Resolution{
		Path:        winner.Header,
		System:      system,
		ChangedPath: winner.Header != stmt.Path,
		ChangedType: system != stmt.System,
	}
}

func bracketStyle(written, rootIsSystem bool, policy Policy) bool {
	switch {
	case written && rootIsSystem:
		return true
	case !written && rootIsSystem:
		return policy.UserToSystem
	case written && !rootIsSystem:
		// A system include can only be downgraded when explicitly asked to.
		return !(policy.ProcessSystem && policy.SystemToUser)
	default:
		return false
	}
}
