package model

import "sort"

// ComparePaths orders module paths lexicographically, segment by segment.
// A path that is a strict prefix of another sorts first. Equal paths compare
// as 0, so the order is a strict weak ordering consistent with path equality.
func ComparePaths(a, b []string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// SortModules sorts modules into canonical path order. The sort is stable:
// modules with identical paths keep their relative order. Navigation order is
// the 1-based position within the sorted sequence.
func SortModules(modules []Module) {
	sort.SliceStable(modules, func(i, j int) bool {
		return ComparePaths(modules[i].Path, modules[j].Path) < 0
	})
}
