package queryir

import (
	"fmt"
	"regexp"
	"slices"
)

// ValidationResult lists problems found in a query.
type ValidationResult struct {
	Valid    bool
	Problems []string
}

// Validate checks that a query stays inside the fragment: identifiers are
// plain lowercase names (they are interpolated into SQL), every Select has
// bindings, union members agree on their outputs, and order keys name
// output columns.
//
// Validate is a pure function.
func Validate(q Query) ValidationResult {
	v := &validator{ident: regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)}
	v.validateQuery(q)
	return ValidationResult{Valid: len(v.problems) == 0, Problems: v.problems}
}

type validator struct {
	ident    *regexp.Regexp
	problems []string
}

func (v *validator) addProblem(format string, args ...any) {
	v.problems = append(v.problems, fmt.Sprintf(format, args...))
}

func (v *validator) checkIdent(kind, name string) {
	if !v.ident.MatchString(name) {
		v.addProblem("invalid %s identifier %q", kind, name)
	}
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case nil:
		v.addProblem("nil query")
	case Select:
		v.validateSelect(query)
		v.validateOrder(query.OrderBy, query.Outputs())
	case Union:
		v.validateUnion(query)
	default:
		v.addProblem("unknown query type: %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	v.checkIdent("table", sel.From)
	if len(sel.Bindings) == 0 {
		v.addProblem("select from %s has no bindings", sel.From)
	}
	for _, b := range sel.Bindings {
		v.checkIdent("column", b.Field)
		v.checkIdent("alias", b.As)
		if b.Cast != "" && b.Cast != "TEXT" {
			v.addProblem("unsupported cast %q on %s", b.Cast, b.Field)
		}
	}
	if sel.Limit < 0 {
		v.addProblem("negative limit on %s", sel.From)
	}
	v.validatePredicate(sel.Filter)
}

func (v *validator) validateUnion(u Union) {
	if len(u.Queries) == 0 {
		v.addProblem("empty union")
		return
	}
	outputs := u.Queries[0].Outputs()
	for i, sel := range u.Queries {
		v.validateSelect(sel)
		if !slices.Equal(outputs, sel.Outputs()) {
			v.addProblem("union member %d outputs %v, want %v", i, sel.Outputs(), outputs)
		}
	}
	v.validateOrder(u.OrderBy, outputs)
}

func (v *validator) validateOrder(order, outputs []string) {
	for _, key := range order {
		if !slices.Contains(outputs, key) {
			v.addProblem("order key %q is not an output column", key)
		}
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case nil:
	case Equals:
		v.checkIdent("column", pred.Field)
		if pred.Value == nil {
			v.addProblem("%s compared to nil value", pred.Field)
		}
	case In:
		v.checkIdent("column", pred.Field)
	case Not:
		if pred.Predicate == nil {
			v.addProblem("negation of nil predicate")
		}
		v.validatePredicate(pred.Predicate)
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	default:
		v.addProblem("unknown predicate type: %T", p)
	}
}
