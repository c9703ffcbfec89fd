// Package nav holds the navigation entries shown in the side drawers and
// the grouped, filterable views over them.
package nav

import (
	"strings"
)

// Entry is one navigable content item.
type Entry struct {
	ID       string
	Title    string
	Slug     string
	Path     string // e.g. "/getting-started"
	Category string
	Tags     []string
	Type     string
}

// Group is a named bucket of entries, usually one category.
type Group struct {
	Name    string
	Entries []Entry
}

// GroupSet is an ordered sequence of groups.
type GroupSet []Group

// Predicate selects entries for a filtered view.
type Predicate func(Entry) bool

// Build groups entries by category, keeping the order in which each
// category first appears. Uncategorized entries form the group "".
func Build(entries []Entry) GroupSet {
	var set GroupSet
	index := make(map[string]int)
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			i = len(set)
			index[e.Category] = i
			set = append(set, Group{Name: e.Category})
		}
		set[i].Entries = append(set[i].Entries, e)
	}
	return set
}

// Filter returns the subset of entries matching pred. Groups left empty are
// dropped. The receiver is not modified.
func (s GroupSet) Filter(pred Predicate) GroupSet {
	var out GroupSet
	for _, g := range s {
		var kept []Entry
		for _, e := range g.Entries {
			if pred(e) {
				kept = append(kept, e)
			}
		}
		if len(kept) > 0 {
			out = append(out, Group{Name: g.Name, Entries: kept})
		}
	}
	return out
}

// Entries flattens the set in display order.
func (s GroupSet) Entries() []Entry {
	var out []Entry
	for _, g := range s {
		out = append(out, g.Entries...)
	}
	return out
}

// Len returns the number of entries across all groups.
func (s GroupSet) Len() int {
	n := 0
	for _, g := range s {
		n += len(g.Entries)
	}
	return n
}

// SubsetOf reports whether every entry of s is present in full.
func (s GroupSet) SubsetOf(full GroupSet) bool {
	ids := make(map[string]bool, full.Len())
	for _, e := range full.Entries() {
		ids[e.ID] = true
	}
	for _, e := range s.Entries() {
		if !ids[e.ID] {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold the same groups and entries in the
// same order.
func (s GroupSet) Equal(o GroupSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i].Name != o[i].Name || len(s[i].Entries) != len(o[i].Entries) {
			return false
		}
		for j := range s[i].Entries {
			if s[i].Entries[j].ID != o[i].Entries[j].ID {
				return false
			}
		}
	}
	return true
}

// Find returns the entry with the given slug.
func (s GroupSet) Find(slug string) (Entry, bool) {
	for _, e := range s.Entries() {
		if e.Slug == slug {
			return e, true
		}
	}
	return Entry{}, false
}

// ByCategory matches entries in the named category.
func ByCategory(name string) Predicate {
	return func(e Entry) bool { return e.Category == name }
}

// ByTag matches entries carrying the named tag.
func ByTag(name string) Predicate {
	return func(e Entry) bool {
		for _, t := range e.Tags {
			if t == name {
				return true
			}
		}
		return false
	}
}

// ByKeyword matches entries whose title contains q, ignoring case. An
// empty query matches everything.
func ByKeyword(q string) Predicate {
	q = strings.ToLower(strings.TrimSpace(q))
	return func(e Entry) bool {
		return q == "" || strings.Contains(strings.ToLower(e.Title), q)
	}
}

// GroupTitle converts a category name to its display form. Multi-word
// slugs are title-cased; "" becomes fallback.
func GroupTitle(name, fallback string) string {
	if name == "" {
		return fallback
	}
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// IsActive reports whether itemPath is the current path or one of its
// ancestors.
func IsActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}
