package rewrite

// Stats counts the include statements seen while rewriting.
type Stats struct {
	Total        int
	Replaced     int
	SystemToUser int
	UserToSystem int
	Untouched    int
	Failed       int
}

// Add returns the sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Total:        s.Total + o.Total,
		Replaced:     s.Replaced + o.Replaced,
		SystemToUser: s.SystemToUser + o.SystemToUser,
		UserToSystem: s.UserToSystem + o.UserToSystem,
		Untouched:    s.Untouched + o.Untouched,
		Failed:       s.Failed + o.Failed,
	}
}

// Converted is the number of include type changes in either direction.
func (s Stats) Converted() int {
	return s.SystemToUser + s.UserToSystem
}
