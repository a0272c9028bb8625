package include

// Config is the immutable configuration shared by every resolution.
type Config struct {
	Fuzzy  int
	Policy Policy

	// FileExists probes the filesystem for headers next to the including
	// file. See Options.FileExists.
	FileExists func(path string) bool
}

// Outcome is a successful resolution with the ranking that produced it.
type Outcome struct {
	Resolution
	Winner       Candidate
	Alternatives []Candidate
}

// Resolver resolves include statements against a fixed index. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	index *Index
	cfg   Config
}

// NewResolver returns a resolver over idx.
func NewResolver(idx *Index, cfg Config) *Resolver {
	return &Resolver{index: idx, cfg: cfg}
}

// Index returns the header index the resolver reads from.
func (r *Resolver) Index() *Index {
	return r.index
}

// Policy returns the resolution policy.
func (r *Resolver) Policy() Policy {
	return r.cfg.Policy
}

// Candidates returns the ranked candidates for stmt.
func (r *Resolver) Candidates(stmt Statement) []Candidate {
	return Rank(Generate(stmt, r.index, Options{
		Fuzzy:                r.cfg.Fuzzy,
		PreferRelativeToRoot: r.cfg.Policy.PreferRelativeToRoot,
		FileExists:           r.cfg.FileExists,
	}))
}

// Fix resolves stmt. It reports false when no candidate exists.
func (r *Resolver) Fix(stmt Statement) (Outcome, bool) {
	ranked := r.Candidates(stmt)
	if len(ranked) == 0 {
		return Outcome{}, false
	}

	return Outcome{
		Resolution:   Resolve(stmt, ranked[0], r.cfg.Policy),
		Winner:       ranked[0],
		Alternatives: ranked[1:],
	}, true
}
