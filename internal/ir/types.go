package ir

import "strconv"

// ValueKind classifies the value stored on a legacy attribute row.
type ValueKind int

// Legacy value-type codes. Zero means the row carried no recognised code.
const (
	KindUnknown  ValueKind = 0
	KindText     ValueKind = 1
	KindNumber   ValueKind = 2
	KindCheckbox ValueKind = 3
	KindURL      ValueKind = 4
	KindTime     ValueKind = 5
	KindPoint    ValueKind = 6
)

var kindNames = map[ValueKind]string{
	KindText:     "text",
	KindNumber:   "number",
	KindCheckbox: "checkbox",
	KindURL:      "url",
	KindTime:     "time",
	KindPoint:    "point",
}

// String returns the lowercase name used in value options.
func (k ValueKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseValueKind maps a legacy value-type code ("1".."6") to a ValueKind.
// Anything else yields KindUnknown.
func ParseValueKind(code string) ValueKind {
	n, err := strconv.Atoi(code)
	if err != nil {
		return KindUnknown
	}
	k := ValueKind(n)
	if _, ok := kindNames[k]; !ok {
		return KindUnknown
	}
	return k
}

// AttributeRow is one legacy value for an (entity, attribute) pair.
// At most one of TextValue, NumberValue, BooleanValue is expected to be set.
type AttributeRow struct {
	ID             string    `json:"id" yaml:"id"`
	EntityID       string    `json:"entity_id" yaml:"entity_id"`
	SpaceID        string    `json:"space_id" yaml:"space_id"`
	AttributeID    string    `json:"attribute_id" yaml:"attribute_id"`
	TextValue      *string   `json:"text_value,omitempty" yaml:"text_value,omitempty"`
	NumberValue    *float64  `json:"number_value,omitempty" yaml:"number_value,omitempty"`
	BooleanValue   *bool     `json:"boolean_value,omitempty" yaml:"boolean_value,omitempty"`
	ValueType      ValueKind `json:"value_type,omitempty" yaml:"value_type,omitempty"`
	UnitOption     string    `json:"unit_option,omitempty" yaml:"unit_option,omitempty"`
	LanguageOption string    `json:"language_option,omitempty" yaml:"language_option,omitempty"`
	FormatOption   string    `json:"format_option,omitempty" yaml:"format_option,omitempty"` // read but never emitted
}

// RelationRow is one legacy edge.
type RelationRow struct {
	ID           string `json:"id" yaml:"id"`
	TypeID       string `json:"type_id" yaml:"type_id"`
	FromEntityID string `json:"from_entity_id" yaml:"from_entity_id"`
	ToEntityID   string `json:"to_entity_id" yaml:"to_entity_id"`
	ToSpaceID    string `json:"to_space_id,omitempty" yaml:"to_space_id,omitempty"`
	Index        string `json:"index,omitempty" yaml:"index,omitempty"`
	SpaceID      string `json:"space_id" yaml:"space_id"`
}

// ValueOptions qualifies a value. Unit is set only for numbers and
// Language only for text.
type ValueOptions struct {
	Kind     ValueKind
	Unit     string
	Language string
}

// ToIR encodes the options as {"type": ..., "unit"?: ..., "language"?: ...}.
func (o ValueOptions) ToIR() IRObject {
	obj := IRObject{"type": IRString(o.Kind.String())}
	if o.Unit != "" {
		obj["unit"] = IRString(o.Unit)
	}
	if o.Language != "" {
		obj["language"] = IRString(o.Language)
	}
	return obj
}

// ValueEntry is a canonical value for one property of an entity.
type ValueEntry struct {
	Property string
	Value    string
	Options  *ValueOptions
}

// ToIR encodes the entry as {"property", "value", "options"?}.
func (v ValueEntry) ToIR() IRObject {
	obj := IRObject{
		"property": IRString(v.Property),
		"value":    IRString(v.Value),
	}
	if v.Options != nil {
		obj["options"] = v.Options.ToIR()
	}
	return obj
}

// RelationEntry is a canonical edge grouped under its relation type.
type RelationEntry struct {
	ID       string // freshly generated edge id
	ToEntity string
	EntityID string // canonical form of the legacy edge id
	ToSpace  string
	Position string
}

// ToIR encodes the entry as {"id", "toEntity", "entityId", "toSpace"?, "position"?}.
func (r RelationEntry) ToIR() IRObject {
	obj := IRObject{
		"id":       IRString(r.ID),
		"toEntity": IRString(r.ToEntity),
		"entityId": IRString(r.EntityID),
	}
	if r.ToSpace != "" {
		obj["toSpace"] = IRString(r.ToSpace)
	}
	if r.Position != "" {
		obj["position"] = IRString(r.Position)
	}
	return obj
}

// RelationMap groups relation entries by canonical relation-type id.
// Lists keep the order of the rows they were built from.
type RelationMap map[string][]RelationEntry

// ToIR encodes the map as an object of arrays.
func (m RelationMap) ToIR() IRObject {
	obj := make(IRObject, len(m))
	for typeID, entries := range m {
		arr := make(IRArray, len(entries))
		for i, e := range entries {
			arr[i] = e.ToIR()
		}
		obj[typeID] = arr
	}
	return obj
}
