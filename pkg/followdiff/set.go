package followdiff

// Set is a set of account identifiers
type Set map[string]struct{}

// NewSet builds a set from the given usernames, dropping duplicates
func NewSet(usernames ...string) Set {
	s := make(Set, len(usernames))
	s.Add(usernames...)
	return s
}

// Add inserts usernames into the set
func (s Set) Add(usernames ...string) {
	for _, u := range usernames {
		s[u] = struct{}{}
	}
}

// Has reports whether username is in the set
func (s Set) Has(username string) bool {
	_, ok := s[username]
	return ok
}

// Len returns the number of identifiers
func (s Set) Len() int {
	return len(s)
}

// Union adds every identifier of other to s
func (s Set) Union(other Set) {
	for u := range other {
		s[u] = struct{}{}
	}
}

// Minus returns the identifiers of s that are not in other, unsorted
func (s Set) Minus(other Set) []string {
	var out []string
	for u := range s {
		if !other.Has(u) {
			out = append(out, u)
		}
	}
	return out
}

// Sorted returns the identifiers in case-insensitive order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	SortUsernames(out)
	return out
}
