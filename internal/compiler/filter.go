package compiler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/geomigrate/internal/fragment"
)

// jsonObject is one level of a legacy filter. Keys are matched exactly,
// so "Where" or "and" never stand in for "where" or "AND".
type jsonObject map[string]json.RawMessage

// field returns the raw value stored under key. A key that differs from
// key only by case is rejected. A JSON null counts as absent.
func (o jsonObject) field(src, path, key string) (json.RawMessage, bool, error) {
	for k := range o {
		if k != key && strings.EqualFold(k, key) {
			return nil, false, malformed(src, path, fmt.Sprintf("unknown key %q (expected %q)", k, key), nil)
		}
	}
	raw, ok := o[key]
	if !ok || string(raw) == "null" {
		return nil, false, nil
	}
	return raw, true, nil
}

func decodeObject(src string, raw []byte) (jsonObject, error) {
	var obj jsonObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, malformed(src, "", "invalid filter JSON: "+err.Error(), err)
	}
	return obj, nil
}

func decodeString(src, path string, raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", malformed(src, "", "invalid filter JSON at "+path+": "+err.Error(), err)
	}
	return s, nil
}

// TranslateFilter parses a legacy JSON filter into a fragment.Filter.
//
// Conditions whose attribute is one of the vocabulary's relation ids are
// filed under _relation by alias; all others are keyed by the canonical
// attribute id. Every id is canonicalized.
func (c *Compiler) TranslateFilter(src string) (fragment.Filter, error) {
	root, err := decodeObject(src, []byte(src))
	if err != nil {
		return fragment.Filter{}, err
	}
	rawWhere, ok, err := root.field(src, "where", "where")
	if err != nil {
		return fragment.Filter{}, err
	}
	if !ok {
		return fragment.Filter{}, malformed(src, "where", "missing", nil)
	}
	where, err := decodeObject(src, rawWhere)
	if err != nil {
		return fragment.Filter{}, err
	}

	out := fragment.NewFilter()

	rawSpaces, ok, err := where.field(src, "where.spaces", "spaces")
	if err != nil {
		return fragment.Filter{}, err
	}
	if ok {
		var spaces []string
		if err := json.Unmarshal(rawSpaces, &spaces); err != nil {
			return fragment.Filter{}, malformed(src, "", "invalid filter JSON at where.spaces: "+err.Error(), err)
		}
		if len(spaces) > 0 {
			out.SpaceIDs = c.canon.CanonicalizeAll(spaces)
		}
	}

	rawAND, ok, err := where.field(src, "where.AND", "AND")
	if err != nil {
		return fragment.Filter{}, err
	}
	var conds []json.RawMessage
	if ok {
		if err := json.Unmarshal(rawAND, &conds); err != nil {
			return fragment.Filter{}, malformed(src, "", "invalid filter JSON at where.AND: "+err.Error(), err)
		}
	}

	for i, rawCond := range conds {
		path := fmt.Sprintf("where.AND[%d]", i)
		cond, err := decodeObject(src, rawCond)
		if err != nil {
			return fragment.Filter{}, err
		}
		attribute, err := conditionString(src, path, "attribute", cond)
		if err != nil {
			return fragment.Filter{}, err
		}
		value, err := conditionString(src, path, "is", cond)
		if err != nil {
			return fragment.Filter{}, err
		}

		is := fragment.Condition{Is: c.canon.Canonicalize(value)}
		if alias, ok := c.aliasFor(attribute); ok {
			out.Relation[alias] = is
			continue
		}
		out.Fields[c.canon.Canonicalize(attribute)] = is
	}
	return out, nil
}

func conditionString(src, path, key string, cond jsonObject) (string, error) {
	raw, ok, err := cond.field(src, path+"."+key, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", malformed(src, path+"."+key, "missing", nil)
	}
	return decodeString(src, path+"."+key, raw)
}
