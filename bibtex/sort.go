package bibtex

import (
	"sort"
	"strconv"
	"strings"
)

// SortBy stably orders entries by the given tag names. A leading '-' on a
// name sorts that tag descending. Values that both parse as integers
// compare numerically; entries missing a tag sort after those that have it.
func SortBy(entries []*Entry, tags ...string) {
	if len(tags) == 0 {
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		for _, tag := range tags {
			desc := strings.HasPrefix(tag, "-")
			name := strings.TrimPrefix(tag, "-")
			vi, oki := entries[i].Get(name)
			vj, okj := entries[j].Get(name)
			if oki != okj {
				return oki
			}
			if !oki || vi == vj {
				continue
			}
			if desc {
				return lessValue(vj, vi)
			}
			return lessValue(vi, vj)
		}
		return false
	})
}

func lessValue(a, b string) bool {
	if na, err := strconv.Atoi(a); err == nil {
		if nb, err := strconv.Atoi(b); err == nil {
			return na < nb
		}
	}
	return a < b
}
