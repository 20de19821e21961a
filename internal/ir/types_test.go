package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValueKind(t *testing.T) {
	tests := []struct {
		code string
		want ValueKind
	}{
		{"1", KindText},
		{"2", KindNumber},
		{"3", KindCheckbox},
		{"4", KindURL},
		{"5", KindTime},
		{"6", KindPoint},
		{"7", KindUnknown},
		{"", KindUnknown},
		{"text", KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseValueKind(tt.code), "code %q", tt.code)
	}
}

func TestValueEntryToIR(t *testing.T) {
	plain := ValueEntry{Property: "p", Value: "v"}
	assert.Equal(t, IRObject{"property": IRString("p"), "value": IRString("v")}, plain.ToIR())

	withUnit := ValueEntry{Property: "p", Value: "3", Options: &ValueOptions{Kind: KindNumber, Unit: "u"}}
	assert.Equal(t, IRObject{
		"property": IRString("p"),
		"value":    IRString("3"),
		"options":  IRObject{"type": IRString("number"), "unit": IRString("u")},
	}, withUnit.ToIR())
}

func TestRelationEntryToIROmitsEmptyOptionals(t *testing.T) {
	r := RelationEntry{ID: "new", ToEntity: "to", EntityID: "edge"}
	assert.Equal(t, IRObject{
		"id":       IRString("new"),
		"toEntity": IRString("to"),
		"entityId": IRString("edge"),
	}, r.ToIR())

	r.ToSpace = "space"
	r.Position = "a0"
	obj := r.ToIR()
	assert.Equal(t, IRString("space"), obj["toSpace"])
	assert.Equal(t, IRString("a0"), obj["position"])
}

func TestRelationMapToIR(t *testing.T) {
	m := RelationMap{"t": {{ID: "1", ToEntity: "a", EntityID: "x"}, {ID: "2", ToEntity: "b", EntityID: "y"}}}

	arr, ok := m.ToIR()["t"].(IRArray)
	assert.True(t, ok)
	assert.Len(t, arr, 2)
	assert.Equal(t, IRString("1"), arr[0].(IRObject)["id"])
}
