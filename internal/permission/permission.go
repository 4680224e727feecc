// Package permission models the capability tags carried by admin users.
package permission

import (
	"fmt"
	"sort"
	"strings"
)

// Permission is a capability tag gating one admin area.
type Permission string

const (
	Blog     Permission = "blog"
	Projects Permission = "projects"
	Services Permission = "services"
	Sections Permission = "sections"
	SEO      Permission = "seo"
	Settings Permission = "settings"
	Users    Permission = "users"

	// All is the superuser sentinel. It grants every capability, including
	// ones added after the user was created, and is stored as-is rather
	// than expanded into the individual tags.
	All Permission = "all"
)

// Capabilities lists every grantable tag except the sentinel.
var Capabilities = []Permission{Blog, Projects, Services, Sections, SEO, Settings, Users}

// Valid reports whether p is a known tag or the sentinel.
func (p Permission) Valid() bool {
	if p == All {
		return true
	}
	for _, candidate := range Capabilities {
		if p == candidate {
			return true
		}
	}
	return false
}

// Set is an immutable collection of granted tags.
type Set struct {
	super bool
	tags  map[Permission]struct{}
}

// Parse normalizes raw tags into a Set and rejects unknown tags.
func Parse(raw []string) (Set, error) {
	set := Set{tags: make(map[Permission]struct{}, len(raw))}
	for _, item := range raw {
		tag := Permission(strings.ToLower(strings.TrimSpace(item)))
		if tag == "" {
			continue
		}
		if !tag.Valid() {
			return Set{}, fmt.Errorf("unknown permission %q", item)
		}
		if tag == All {
			set.super = true
		}
		set.tags[tag] = struct{}{}
	}
	return set, nil
}

// FromStored builds a Set from persisted tags, ignoring anything unknown.
func FromStored(raw []string) Set {
	set := Set{tags: make(map[Permission]struct{}, len(raw))}
	for _, item := range raw {
		tag := Permission(strings.ToLower(strings.TrimSpace(item)))
		if !tag.Valid() {
			continue
		}
		if tag == All {
			set.super = true
		}
		set.tags[tag] = struct{}{}
	}
	return set
}

// Allows reports whether the set grants p. The empty set grants nothing.
func (s Set) Allows(p Permission) bool {
	if s.super {
		return true
	}
	_, ok := s.tags[p]
	return ok
}

// IsSuper reports whether the set carries the All sentinel.
func (s Set) IsSuper() bool {
	return s.super
}

// Empty reports whether nothing is granted.
func (s Set) Empty() bool {
	return len(s.tags) == 0
}

// Strings returns the tags sorted, ready to persist.
func (s Set) Strings() []string {
	out := make([]string, 0, len(s.tags))
	for tag := range s.tags {
		out = append(out, string(tag))
	}
	sort.Strings(out)
	return out
}

// Effective expands the sentinel into every capability, for UIs that
// render one checkbox per area.
func (s Set) Effective() []Permission {
	out := make([]Permission, 0, len(Capabilities))
	for _, p := range Capabilities {
		if s.Allows(p) {
			out = append(out, p)
		}
	}
	return out
}
