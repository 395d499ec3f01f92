package provider

// FieldType is the column type of a collection field.
type FieldType string

const (
	FieldString    FieldType = "String"
	FieldInteger32 FieldType = "Integer32"
	FieldInteger64 FieldType = "Integer64"
	FieldFloat     FieldType = "Float"
	FieldVector    FieldType = "Vector"
	FieldBoolean   FieldType = "Boolean"
	FieldImage     FieldType = "Image"
)

// FieldProperties are optional column settings.
type FieldProperties struct {
	IsPrimary     bool `json:"isPrimary,omitempty"`
	Default       any  `json:"default,omitempty"`
	Dimension     int  `json:"dimension,omitempty" validate:"gte=0"`
	AutoIncrement bool `json:"autoIncrement,omitempty"`
}

// Field describes one column of a collection.
type Field struct {
	Name       string           `json:"name" validate:"required"`
	Type       FieldType        `json:"type" validate:"required,oneof=String Integer32 Integer64 Float Vector Boolean Image"`
	Properties *FieldProperties `json:"properties,omitempty"`
}

// Primary reports whether the field is the collection's primary key.
func (f Field) Primary() bool {
	return f.Properties != nil && f.Properties.IsPrimary
}
