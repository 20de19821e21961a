package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"
)

// IRValue is a sealed interface over the JSON values the migrator emits.
// Only IRString, IRInt, IRBool, IRArray, and IRObject implement it.
// There is no float and no null: every number leaving the migrator is
// rendered as a string, and absent fields are omitted.
type IRValue interface {
	irValue()
}

// IRString is a JSON string.
type IRString string

func (IRString) irValue() {}

// IRInt is a JSON integer.
type IRInt int64

func (IRInt) irValue() {}

// IRBool is a JSON boolean.
type IRBool bool

func (IRBool) irValue() {}

// IRArray is an ordered list of values.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject maps keys to values. Use SortedKeys for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// EmptyObject returns the `{}` leaf used by structured selectors.
func EmptyObject() IRObject {
	return IRObject{}
}

// IRPair is a key/value pair for NewIRObjectFromPairs.
type IRPair struct {
	Key   string
	Value IRValue
}

// O is shorthand for IRPair.
func O(key string, value IRValue) IRPair {
	return IRPair{Key: key, Value: value}
}

// NewIRObjectFromPairs builds an IRObject from pairs. Later pairs win.
func NewIRObjectFromPairs(pairs ...IRPair) IRObject {
	obj := make(IRObject, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// Go's native string ordering compares UTF-8 bytes, which differs for
// characters outside the BMP.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// MarshalJSON implements json.Marshaler using canonical encoding so that
// values embedded in larger json.Marshal output stay deterministic.
func (obj IRObject) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(obj)
}

// MarshalJSON implements json.Marshaler for IRArray.
func (arr IRArray) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(arr)
}

// UnmarshalJSON implements json.Unmarshaler for IRObject.
func (obj *IRObject) UnmarshalJSON(data []byte) error {
	v, err := UnmarshalIRValue(data)
	if err != nil {
		return err
	}
	o, ok := v.(IRObject)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	*obj = o
	return nil
}

// UnmarshalIRValue decodes JSON into an IRValue.
// Null and non-integer numbers are rejected.
func UnmarshalIRValue(data []byte) (IRValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return toIRValue(raw)
}

// toIRValue converts decoded JSON or plain Go values into an IRValue.
func toIRValue(v any) (IRValue, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is not representable")
	case IRValue:
		return val, nil
	case string:
		return IRString(val), nil
	case bool:
		return IRBool(val), nil
	case int:
		return IRInt(val), nil
	case int64:
		return IRInt(val), nil
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return nil, fmt.Errorf("non-integer number %s is not representable", val)
		}
		return IRInt(n), nil
	case float32, float64:
		return nil, fmt.Errorf("floats are not representable: %v", val)
	case []string:
		arr := make(IRArray, len(val))
		for i, s := range val {
			arr[i] = IRString(s)
		}
		return arr, nil
	case []any:
		arr := make(IRArray, len(val))
		for i, elem := range val {
			irElem, err := toIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = irElem
		}
		return arr, nil
	case map[string]any:
		obj := make(IRObject, len(val))
		for k, elem := range val {
			irElem, err := toIRValue(elem)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = irElem
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}
