package builder

import (
	"github.com/roach88/geomigrate/internal/canon"
	"github.com/roach88/geomigrate/internal/compiler"
	"github.com/roach88/geomigrate/internal/textnorm"
)

// Attributes holds the legacy attribute ids whose text values are query
// expressions rather than prose.
type Attributes struct {
	Filter   string `json:"filter" yaml:"filter"`
	Selector string `json:"selector" yaml:"selector"`
}

// DefaultAttributes returns the production legacy ids.
func DefaultAttributes() Attributes {
	return Attributes{
		Filter:   "3YqoLJ7uAPmthXyXmXKoSa",
		Selector: "7zvaXnZVY9z5oCoYqciroz",
	}
}

// Config wires a Builder. Zero fields get production defaults.
type Config struct {
	Canonicalizer *canon.Canonicalizer
	Compiler      *compiler.Compiler
	Normalizer    *textnorm.Normalizer
	Attributes    Attributes
	IDs           canon.Generator
	Observer      Observer
}

// Builder turns legacy rows into canonical entries.
type Builder struct {
	canon    *canon.Canonicalizer
	compiler *compiler.Compiler
	text     *textnorm.Normalizer
	attrs    Attributes
	ids      canon.Generator
	observer Observer
}

// New returns a Builder for cfg.
func New(cfg Config) *Builder {
	c := cfg.Canonicalizer
	if c == nil {
		c = canon.New()
	}
	b := &Builder{
		canon:    c,
		compiler: cfg.Compiler,
		text:     cfg.Normalizer,
		attrs:    cfg.Attributes,
		ids:      cfg.IDs,
		observer: cfg.Observer,
	}
	if b.compiler == nil {
		b.compiler = compiler.New(c, compiler.DefaultVocabulary())
	}
	if b.text == nil {
		b.text = textnorm.New(c)
	}
	if b.attrs == (Attributes{}) {
		b.attrs = DefaultAttributes()
	}
	if b.ids == nil {
		b.ids = canon.RandomGenerator{}
	}
	if b.observer == nil {
		b.observer = LogObserver{}
	}
	return b
}
