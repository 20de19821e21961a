package builder

import (
	"math"
	"strconv"
	"strings"

	"github.com/roach88/geomigrate/internal/fragment"
	"github.com/roach88/geomigrate/internal/ir"
)

// BuildValues returns one entry per row whose encoded value is non-empty,
// in row order.
func (b *Builder) BuildValues(rows []ir.AttributeRow) []ir.ValueEntry {
	out := make([]ir.ValueEntry, 0, len(rows))
	for _, row := range rows {
		if entry, ok := b.BuildValue(row); ok {
			out = append(out, entry)
		}
	}
	return out
}

// BuildValue encodes a single row. The boolean is false when the row has
// no value or its value encodes to the empty string.
func (b *Builder) BuildValue(row ir.AttributeRow) (ir.ValueEntry, bool) {
	value, ok := b.encodeValue(row)
	if !ok || value == "" {
		return ir.ValueEntry{}, false
	}
	return ir.ValueEntry{
		Property: b.canon.Canonicalize(row.AttributeID),
		Value:    value,
		Options:  b.options(row),
	}, true
}

// encodeValue picks text over number over boolean.
func (b *Builder) encodeValue(row ir.AttributeRow) (string, bool) {
	switch {
	case row.TextValue != nil:
		return b.encodeText(row), true
	case row.NumberValue != nil:
		return FormatNumber(*row.NumberValue), true
	case row.BooleanValue != nil:
		return strconv.FormatBool(*row.BooleanValue), true
	default:
		return "", false
	}
}

func (b *Builder) encodeText(row ir.AttributeRow) string {
	text := *row.TextValue
	switch row.AttributeID {
	case b.attrs.Filter:
		f, err := b.compiler.TranslateFilter(text)
		if err != nil {
			return b.degrade(row, TranslatorFilter, err)
		}
		data, err := ir.MarshalCanonical(f.ToIR())
		if err != nil {
			return b.degrade(row, TranslatorFilter, err)
		}
		return string(data)
	case b.attrs.Selector:
		sel, err := b.compiler.TranslateSelector(text)
		if err != nil {
			return b.degrade(row, TranslatorSelector, err)
		}
		obj, ok := fragment.Encode(sel)
		if !ok {
			return ""
		}
		data, err := ir.MarshalCanonical(obj)
		if err != nil {
			return b.degrade(row, TranslatorSelector, err)
		}
		return string(data)
	default:
		return b.text.Normalize(text)
	}
}

func (b *Builder) degrade(row ir.AttributeRow, t Translator, err error) string {
	b.observer.OnDegraded(DegradedValue{
		EntityID:    row.EntityID,
		AttributeID: row.AttributeID,
		Translator:  t,
		Text:        *row.TextValue,
		Err:         err,
	})
	return *row.TextValue
}

// options returns qualifiers only when a unit or language option is set.
// A unit is kept for numbers and a language for text; other kinds get no
// options even when an option is set.
func (b *Builder) options(row ir.AttributeRow) *ir.ValueOptions {
	if row.UnitOption == "" && row.LanguageOption == "" {
		return nil
	}
	switch row.ValueType {
	case ir.KindNumber:
		opts := &ir.ValueOptions{Kind: ir.KindNumber}
		if row.UnitOption != "" {
			opts.Unit = b.canon.Canonicalize(row.UnitOption)
		}
		return opts
	case ir.KindText:
		return &ir.ValueOptions{Kind: ir.KindText, Language: row.LanguageOption}
	default:
		return nil
	}
}

// FormatNumber renders f the way the legacy store's clients printed
// numbers: shortest round-trip digits, with exponent notation below 1e-6
// and from 1e21 up.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
