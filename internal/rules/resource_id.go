package rules

import (
	"strings"
)

const scopeSeparator = `\`

// ResourceId identifies a rule by the module (scope) that declares it and its name.
type ResourceId struct {
	Scope string
	Name  string
}

func NewResourceId(scope, name string) ResourceId {
	return ResourceId{Scope: scope, Name: name}
}

// ParseResourceId splits "scope\name". Input without a separator is a bare name.
func ParseResourceId(s string) ResourceId {
	s = strings.TrimSpace(s)
	if idx := strings.LastIndex(s, scopeSeparator); idx != -1 {
		return ResourceId{Scope: s[:idx], Name: s[idx+1:]}
	}
	return ResourceId{Name: s}
}

func (id ResourceId) String() string {
	if id.Scope == "" {
		return id.Name
	}
	return id.Scope + scopeSeparator + id.Name
}

// Equal compares both parts case-insensitively.
func (id ResourceId) Equal(other ResourceId) bool {
	return strings.EqualFold(id.Scope, other.Scope) && strings.EqualFold(id.Name, other.Name)
}

func (id ResourceId) IsZero() bool {
	return id.Scope == "" && id.Name == ""
}
