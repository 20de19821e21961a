// Package querysql compiles queryir queries to parameterized SQL.
package querysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/geomigrate/internal/ir"
	"github.com/roach88/geomigrate/internal/queryir"
)

// Dialect selects placeholder and collation syntax.
type Dialect int

const (
	// SQLite uses ? placeholders and COLLATE BINARY.
	SQLite Dialect = iota
	// Postgres uses $n placeholders and COLLATE "C".
	Postgres
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case SQLite:
		return "sqlite"
	case Postgres:
		return "postgres"
	default:
		return "unknown"
	}
}

// SQLCompiler compiles queryir to SQL for one dialect.
//
// Every query is wrapped so that its ORDER BY applies to named output
// columns with a byte-wise collation; results are deterministic on both
// backends. Values are always parameters, never interpolated.
type SQLCompiler struct {
	Dialect Dialect
}

// NewSQLCompiler returns a compiler for d.
func NewSQLCompiler(d Dialect) *SQLCompiler {
	return &SQLCompiler{Dialect: d}
}

// Compile returns the SQL text and its parameters.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if q == nil {
		return "", nil, fmt.Errorf("cannot compile nil query")
	}
	if res := queryir.Validate(q); !res.Valid {
		return "", nil, fmt.Errorf("invalid query: %s", strings.Join(res.Problems, "; "))
	}

	cc := &compilation{dialect: c.Dialect}
	switch query := q.(type) {
	case queryir.Select:
		inner, err := cc.selectSQL(query)
		if err != nil {
			return "", nil, err
		}
		return cc.wrap(inner, query.Outputs(), query.OrderBy, query.Limit), cc.params, nil
	case queryir.Union:
		parts := make([]string, len(query.Queries))
		for i, sel := range query.Queries {
			sql, err := cc.selectSQL(sel)
			if err != nil {
				return "", nil, fmt.Errorf("union member %d: %w", i, err)
			}
			parts[i] = sql
		}
		inner := strings.Join(parts, " UNION ")
		return cc.wrap(inner, query.Queries[0].Outputs(), query.OrderBy, 0), cc.params, nil
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

// compilation accumulates parameters so Postgres placeholders number
// correctly across the whole statement.
type compilation struct {
	dialect Dialect
	params  []any
}

func (cc *compilation) placeholder(v any) string {
	cc.params = append(cc.params, v)
	if cc.dialect == Postgres {
		return "$" + strconv.Itoa(len(cc.params))
	}
	return "?"
}

func (cc *compilation) collation() string {
	if cc.dialect == Postgres {
		return `COLLATE "C"`
	}
	return "COLLATE BINARY"
}

// wrap applies output selection, ordering, and limit around inner.
func (cc *compilation) wrap(inner string, outputs, order []string, limit int) string {
	if len(order) == 0 {
		order = outputs[:1]
	}
	cols := make([]string, len(outputs))
	for i, o := range outputs {
		cols[i] = quote(o)
	}
	keys := make([]string, len(order))
	for i, k := range order {
		keys[i] = quote(k) + " " + cc.collation() + " ASC"
	}

	sql := fmt.Sprintf("SELECT %s FROM (%s) AS q ORDER BY %s",
		strings.Join(cols, ", "), inner, strings.Join(keys, ", "))
	if limit > 0 {
		sql += " LIMIT " + strconv.Itoa(limit)
	}
	return sql
}

func (cc *compilation) selectSQL(sel queryir.Select) (string, error) {
	cols := make([]string, len(sel.Bindings))
	for i, b := range sel.Bindings {
		expr := quote(b.Field)
		if b.Cast != "" {
			expr = fmt.Sprintf("CAST(%s AS %s)", expr, b.Cast)
		}
		cols[i] = expr + " AS " + quote(b.As)
	}

	distinct := ""
	if sel.Distinct {
		distinct = "DISTINCT "
	}
	sql := fmt.Sprintf("SELECT %s%s FROM %s", distinct, strings.Join(cols, ", "), quote(sel.From))
	if sel.Filter != nil {
		where, err := cc.predicate(sel.Filter)
		if err != nil {
			return "", fmt.Errorf("compile filter: %w", err)
		}
		sql += " WHERE " + where
	}
	return sql, nil
}

func (cc *compilation) predicate(p queryir.Predicate) (string, error) {
	switch pred := p.(type) {
	case queryir.Equals:
		param, err := irValueToParam(pred.Value)
		if err != nil {
			return "", fmt.Errorf("convert value for %s: %w", pred.Field, err)
		}
		return quote(pred.Field) + " = " + cc.placeholder(param), nil
	case queryir.In:
		if len(pred.Values) == 0 {
			return "1 = 0", nil
		}
		marks := make([]string, len(pred.Values))
		for i, v := range pred.Values {
			param, err := irValueToParam(v)
			if err != nil {
				return "", fmt.Errorf("convert value for %s: %w", pred.Field, err)
			}
			marks[i] = cc.placeholder(param)
		}
		return quote(pred.Field) + " IN (" + strings.Join(marks, ", ") + ")", nil
	case queryir.Not:
		inner, err := cc.predicate(pred.Predicate)
		if err != nil {
			return "", err
		}
		return "NOT (" + inner + ")", nil
	case queryir.And:
		if len(pred.Predicates) == 0 {
			return "1 = 1", nil
		}
		parts := make([]string, len(pred.Predicates))
		for i, sub := range pred.Predicates {
			sql, err := cc.predicate(sub)
			if err != nil {
				return "", err
			}
			parts[i] = sql
		}
		return strings.Join(parts, " AND "), nil
	default:
		return "", fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// quote double-quotes an identifier. Identifiers are validated before
// compilation, so no escaping is needed.
func quote(ident string) string {
	return `"` + ident + `"`
}

// irValueToParam converts a scalar IR value to a driver parameter.
func irValueToParam(v ir.IRValue) (any, error) {
	switch val := v.(type) {
	case ir.IRString:
		return string(val), nil
	case ir.IRInt:
		return int64(val), nil
	case ir.IRBool:
		return bool(val), nil
	case ir.IRArray, ir.IRObject:
		return nil, fmt.Errorf("%T cannot be used as a SQL parameter", v)
	default:
		return nil, fmt.Errorf("unsupported IRValue type for SQL parameter: %T", v)
	}
}
