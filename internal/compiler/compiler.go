package compiler

import (
	"regexp"

	"github.com/roach88/geomigrate/internal/fragment"
)

// Canonicalizer maps legacy identifiers to canonical ones.
type Canonicalizer interface {
	Canonicalize(id string) string
	CanonicalizeAll(ids []string) []string
}

// Vocabulary holds the legacy attribute ids the translators reinterpret.
// Comparisons use the raw legacy token, before canonicalization.
type Vocabulary struct {
	ToEntity     string `json:"to_entity" yaml:"to_entity"`
	FromEntity   string `json:"from_entity" yaml:"from_entity"`
	RelationType string `json:"relation_type" yaml:"relation_type"`
}

// DefaultVocabulary returns the production legacy ids.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		ToEntity:     "Qx8dASiTNsxxP3rJbd4Lzd",
		FromEntity:   "RERshk4JoYoMC17r1qAo9J",
		RelationType: "3WxYoAVreE4qFhkDUs5J3q",
	}
}

// LegacyID returns the legacy attribute id that maps to alias.
func (v Vocabulary) LegacyID(alias fragment.RelationAlias) string {
	switch alias {
	case fragment.AliasToEntity:
		return v.ToEntity
	case fragment.AliasFromEntity:
		return v.FromEntity
	case fragment.AliasType:
		return v.RelationType
	default:
		panic("compiler: unknown relation alias")
	}
}

// Compiler translates legacy filters and selectors. It is immutable after
// New and safe for concurrent use.
type Compiler struct {
	canon       Canonicalizer
	vocab       Vocabulary
	productions []compiledProduction
}

type compiledProduction struct {
	prod Production
	re   *regexp.Regexp
}

// New returns a Compiler.
func New(c Canonicalizer, vocab Vocabulary) *Compiler {
	comp := &Compiler{canon: c, vocab: vocab}
	for _, p := range Productions() {
		comp.productions = append(comp.productions, compiledProduction{prod: p, re: regexp.MustCompile(p.expr())})
	}
	return comp
}

// Vocabulary returns the compiler's vocabulary.
func (c *Compiler) Vocabulary() Vocabulary {
	return c.vocab
}

// aliasFor looks up a raw legacy attribute id in the vocabulary.
func (c *Compiler) aliasFor(attribute string) (fragment.RelationAlias, bool) {
	for _, alias := range fragment.Aliases() {
		if c.vocab.LegacyID(alias) == attribute {
			return alias, true
		}
	}
	return 0, false
}
