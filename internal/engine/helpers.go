package engine

import "sort"

type rendered struct {
	out string
	err error
}

// BlockNames returns the captured block names in sorted order.
func (r *Result) BlockNames() []string {
	names := make([]string, 0, len(r.Blocks))
	for name := range r.Blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
