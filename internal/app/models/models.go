package models

import (
	"encoding/json"
	"strings"
)

// Role identifies which portal a caller belongs to. The college role keeps the
// historical "collage" spelling because persisted documents and cookies use it.
type Role string

const (
	RoleAlumni   Role = "alumni"
	RoleStudents Role = "students"
	RoleAdmin    Role = "admin"
	RoleCollege  Role = "collage"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleAlumni, RoleStudents, RoleAdmin, RoleCollege}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAlumni, RoleStudents, RoleAdmin, RoleCollege:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole converts a raw value into a Role, ignoring case and surrounding space.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	return r, r.Valid()
}

// Patch is a shallow merge-patch: each top-level key replaces the stored field.
type Patch map[string]json.RawMessage

// Without returns a copy of the patch minus the given keys.
func (p Patch) Without(keys ...string) Patch {
	out := make(Patch, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
