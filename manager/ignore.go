package manager

// IgnoreList holds the noise process names dropped before any processing.
type IgnoreList struct {
	names map[string]struct{} // map for O(1) lookups
}

func NewIgnoreList(names []string) *IgnoreList {
	il := &IgnoreList{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		il.names[name] = struct{}{}
	}
	return il
}

// IsIgnored is an exact, case-sensitive match.
func (il *IgnoreList) IsIgnored(name string) bool {
	if il == nil {
		return false
	}
	_, ok := il.names[name]
	return ok
}

func (il *IgnoreList) Len() int {
	if il == nil {
		return 0
	}
	return len(il.names)
}
