package fragment

import (
	"fmt"
	"sort"
)

// ValidationResult lists identifiers in a fragment that are not canonical.
type ValidationResult struct {
	Valid    bool
	Problems []string
}

// IDCheck reports whether an identifier is canonical.
type IDCheck func(id string) bool

// ValidateFilter checks every identifier in f with isCanonical.
func ValidateFilter(f Filter, isCanonical IDCheck) ValidationResult {
	v := &validator{check: isCanonical}
	for i, id := range f.SpaceIDs {
		v.checkID(fmt.Sprintf("spaceId.in[%d]", i), id)
	}

	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.checkID("filter key", k)
		v.checkID(fmt.Sprintf("filter.%s.is", k), f.Fields[k].Is)
	}

	for _, alias := range Aliases() {
		if cond, ok := f.Relation[alias]; ok {
			v.checkID(fmt.Sprintf("filter._relation.%s.is", alias.Key()), cond.Is)
		}
	}
	return v.result()
}

// ValidateSelector checks every identifier in sel with isCanonical.
func ValidateSelector(sel Selector, isCanonical IDCheck) ValidationResult {
	v := &validator{check: isCanonical}
	for _, id := range identifiers(sel) {
		v.checkID("selector key", id)
	}
	return v.result()
}

type validator struct {
	check    IDCheck
	problems []string
}

func (v *validator) checkID(where, id string) {
	if !v.check(id) {
		v.problems = append(v.problems, fmt.Sprintf("%s: %q is not a canonical identifier", where, id))
	}
}

func (v *validator) result() ValidationResult {
	return ValidationResult{Valid: len(v.problems) == 0, Problems: v.problems}
}
