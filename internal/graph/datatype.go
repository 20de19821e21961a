package graph

import "fmt"

// DataType is the declared type of a property in the target model.
type DataType string

const (
	DataTypeText     DataType = "TEXT"
	DataTypeNumber   DataType = "NUMBER"
	DataTypeTime     DataType = "TIME"
	DataTypePoint    DataType = "POINT"
	DataTypeCheckbox DataType = "CHECKBOX"
	DataTypeRelation DataType = "RELATION"
)

// DataTypes lists every data type.
func DataTypes() []DataType {
	return []DataType{DataTypeText, DataTypeNumber, DataTypeTime, DataTypePoint, DataTypeCheckbox, DataTypeRelation}
}

// ParseDataType validates s.
func ParseDataType(s string) (DataType, error) {
	for _, dt := range DataTypes() {
		if string(dt) == s {
			return dt, nil
		}
	}
	return "", fmt.Errorf("unknown data type %q", s)
}
