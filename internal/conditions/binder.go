package conditions

import (
	"maps"
	"slices"
	"strings"

	"psrule/internal/rules"
)

// Binder resolves a field of a target object.
type Binder interface {
	GetField(target any, name string, caseSensitive bool) (any, bool)
}

// MapBinder resolves top-level keys of map[string]any targets.
type MapBinder struct{}

func (MapBinder) GetField(target any, name string, caseSensitive bool) (any, bool) {
	if to, ok := target.(rules.TargetObject); ok {
		target = to.Value
	}
	m, ok := target.(map[string]any)
	if !ok {
		return nil, false
	}
	if v, ok := m[name]; ok {
		return v, true
	}
	if caseSensitive {
		return nil, false
	}
	// Keys differing only by case resolve to the first in sorted order.
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if strings.EqualFold(k, name) {
			return m[k], true
		}
	}
	return nil, false
}
