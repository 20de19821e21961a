package queryir

import "github.com/roach88/geomigrate/internal/ir"

// Query is a sealed interface; only Select and Union implement it.
type Query interface {
	queryNode()
}

// Predicate is a sealed interface over filter conditions.
type Predicate interface {
	predicateNode()
}

// Binding selects one source column under an output name.
//
// Cast, when set, converts the column (CAST(field AS cast)) so both
// dialects scan it into the same Go type.
type Binding struct {
	Field string
	As    string
	Cast  string
}

// Col binds field under its own name.
func Col(field string) Binding {
	return Binding{Field: field, As: field}
}

// Select reads rows from one table.
//
//	SELECT [DISTINCT] <bindings> FROM <from> WHERE <filter> ORDER BY <order_by> LIMIT <limit>
//
// OrderBy names output columns. It defaults to the first binding's output
// name. Limit zero means no limit.
type Select struct {
	From     string
	Distinct bool
	Bindings []Binding
	Filter   Predicate
	OrderBy  []string
	Limit    int
}

func (Select) queryNode() {}

// Outputs returns the output column names in order.
func (s Select) Outputs() []string {
	out := make([]string, len(s.Bindings))
	for i, b := range s.Bindings {
		out[i] = b.As
	}
	return out
}

// Union combines Selects with identical output columns, removing
// duplicate rows. Member OrderBy and Limit are ignored.
type Union struct {
	Queries []Select
	OrderBy []string
}

func (Union) queryNode() {}

// Equals is field = value.
type Equals struct {
	Field string
	Value ir.IRValue
}

func (Equals) predicateNode() {}

// Eq is shorthand for an Equals on a string value.
func Eq(field, value string) Equals {
	return Equals{Field: field, Value: ir.IRString(value)}
}

// In is field IN (values). An empty list matches nothing.
type In struct {
	Field  string
	Values []ir.IRValue
}

func (In) predicateNode() {}

// InStrings is shorthand for an In over string values.
func InStrings(field string, values []string) In {
	vals := make([]ir.IRValue, len(values))
	for i, v := range values {
		vals[i] = ir.IRString(v)
	}
	return In{Field: field, Values: vals}
}

// Not negates a predicate.
type Not struct {
	Predicate Predicate
}

func (Not) predicateNode() {}

// And is a conjunction. An empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// All is shorthand for And.
func All(preds ...Predicate) And {
	return And{Predicates: preds}
}
