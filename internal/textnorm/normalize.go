// Package textnorm rewrites legacy identifiers embedded in free text.
//
// Only identifiers inside a fixed set of link and parameter patterns are
// touched; every other byte of the input is preserved.
package textnorm

import (
	"regexp"
	"strings"
)

// Canonicalizer is the identifier mapping applied to captured ids.
type Canonicalizer interface {
	Canonicalize(id string) string
}

// Pattern names one embedded-identifier form.
type Pattern int

const (
	// PatternSpaceURL matches geobrowser.io/space/<ID>[/<ID2>].
	PatternSpaceURL Pattern = iota
	// PatternTabID matches tabId=<ID>.
	PatternTabID
	// PatternProposalID matches proposalId=<ID>.
	PatternProposalID
	// PatternGraphURI matches graph://<ID>.
	PatternGraphURI
)

// Patterns lists every pattern in application order.
func Patterns() []Pattern {
	return []Pattern{PatternSpaceURL, PatternTabID, PatternProposalID, PatternGraphURI}
}

// String returns the pattern name.
func (p Pattern) String() string {
	switch p {
	case PatternSpaceURL:
		return "space_url"
	case PatternTabID:
		return "tab_id"
	case PatternProposalID:
		return "proposal_id"
	case PatternGraphURI:
		return "graph_uri"
	default:
		return "unknown"
	}
}

// expr returns the pattern's expression. Identifier groups are exactly 21
// or 22 word characters.
func (p Pattern) expr() string {
	const id = `(\w{21,22})`
	switch p {
	case PatternSpaceURL:
		return `geobrowser\.io/space/` + id + `(?:/` + id + `)?`
	case PatternTabID:
		return `tabId=` + id
	case PatternProposalID:
		return `proposalId=` + id
	case PatternGraphURI:
		return `graph://` + id
	default:
		panic("textnorm: unknown pattern")
	}
}

type rule struct {
	pattern Pattern
	re      *regexp.Regexp
}

// Normalizer applies every Pattern to a string.
type Normalizer struct {
	canon Canonicalizer
	rules []rule
}

// New builds a Normalizer that canonicalizes captured ids with c.
func New(c Canonicalizer) *Normalizer {
	n := &Normalizer{canon: c}
	for _, p := range Patterns() {
		n.rules = append(n.rules, rule{pattern: p, re: regexp.MustCompile(p.expr())})
	}
	return n
}

// Normalize rewrites every embedded identifier in s.
func (n *Normalizer) Normalize(s string) string {
	for _, r := range n.rules {
		s = n.apply(r.re, s)
	}
	return s
}

// Matches reports which patterns occur in s.
func (n *Normalizer) Matches(s string) []Pattern {
	var out []Pattern
	for _, r := range n.rules {
		if r.re.MatchString(s) {
			out = append(out, r.pattern)
		}
	}
	return out
}

// apply replaces each captured group of every match with its canonical
// form, copying the text between groups unchanged.
func (n *Normalizer) apply(re *regexp.Regexp, s string) string {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return s
	}

	var b strings.Builder
	last := 0
	for _, loc := range locs {
		for g := 2; g+1 < len(loc); g += 2 {
			start, end := loc[g], loc[g+1]
			if start < 0 {
				continue
			}
			b.WriteString(s[last:start])
			b.WriteString(n.canon.Canonicalize(s[start:end]))
			last = end
		}
	}
	b.WriteString(s[last:])
	return b.String()
}
