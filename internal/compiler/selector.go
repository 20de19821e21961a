package compiler

import (
	"github.com/roach88/geomigrate/internal/fragment"
)

// Production is one form of the selector grammar.
type Production int

// Productions in priority order. Bracketed tokens are one or more non-]
// characters.
const (
	// ProdSingleHop is ->[E] as the whole input.
	ProdSingleHop Production = iota
	// ProdEntityProperty is ->[E]->.[P] anywhere in the input.
	ProdEntityProperty
	// ProdEntityRelation is ->[E]->[R]->[E2] anywhere in the input.
	ProdEntityRelation
	// ProdProperty is .[P] as the whole input.
	ProdProperty
	// ProdRelation is ->[R]->[E] as the whole input.
	ProdRelation
)

// Productions lists every production in the order they are tried.
func Productions() []Production {
	return []Production{ProdSingleHop, ProdEntityProperty, ProdEntityRelation, ProdProperty, ProdRelation}
}

// String returns the production name.
func (p Production) String() string {
	switch p {
	case ProdSingleHop:
		return "single_hop"
	case ProdEntityProperty:
		return "entity_property"
	case ProdEntityRelation:
		return "entity_relation"
	case ProdProperty:
		return "property"
	case ProdRelation:
		return "relation"
	default:
		return "unknown"
	}
}

func (p Production) expr() string {
	const tok = `([^\]]+)`
	switch p {
	case ProdSingleHop:
		return `^->\[[^\]]+\]$`
	case ProdEntityProperty:
		return `->\[` + tok + `\]->\.\[` + tok + `\]`
	case ProdEntityRelation:
		return `->\[` + tok + `\]->\[` + tok + `\]->\[` + tok + `\]`
	case ProdProperty:
		return `^\.\[` + tok + `\]$`
	case ProdRelation:
		return `^->\[` + tok + `\]->\[` + tok + `\]$`
	default:
		panic("compiler: unknown selector production")
	}
}

// TranslateSelector parses a legacy selector into a fragment.Selector.
// Input matching no production is an ErrCodeUnrecognizedSelector error.
func (c *Compiler) TranslateSelector(src string) (fragment.Selector, error) {
	sel, _, err := c.MatchSelector(src)
	return sel, err
}

// MatchSelector is TranslateSelector that also reports which production
// produced the result.
func (c *Compiler) MatchSelector(src string) (fragment.Selector, Production, error) {
	for _, cp := range c.productions {
		m := cp.re.FindStringSubmatch(src)
		if m == nil {
			continue
		}
		if sel, ok := c.reduce(cp.prod, m); ok {
			return sel, cp.prod, nil
		}
	}
	return nil, 0, &TranslateError{
		Code:    ErrCodeUnrecognizedSelector,
		Message: "unrecognized selector format: " + src,
		Input:   src,
	}
}

// reduce builds the selector for a matched production. A false result
// means the match does not apply and later productions should be tried.
func (c *Compiler) reduce(p Production, m []string) (fragment.Selector, bool) {
	switch p {
	case ProdSingleHop:
		return fragment.Empty{}, true
	case ProdEntityProperty:
		switch m[1] {
		case c.vocab.ToEntity:
			return fragment.Property{Property: c.canon.Canonicalize(m[2])}, true
		case c.vocab.FromEntity:
			return fragment.FromProperty{Property: c.canon.Canonicalize(m[2])}, true
		}
		return nil, false
	case ProdEntityRelation:
		if m[1] == c.vocab.ToEntity || m[3] == c.vocab.ToEntity {
			return fragment.Relation{Relation: c.canon.Canonicalize(m[2])}, true
		}
		return nil, false
	case ProdProperty, ProdRelation:
		return fragment.RelationEntity{Key: c.canon.Canonicalize(m[1])}, true
	default:
		panic("compiler: unknown selector production")
	}
}
