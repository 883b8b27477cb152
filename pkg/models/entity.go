package models

// RawObject is one business-object record as produced by the external
// metadata ETL. Older exporters emit objectName instead of object_name;
// both collapse into ObjectName during decoding so downstream code never
// branches on input shape.
type RawObject struct {
	ObjectID   string   `json:"object_id" yaml:"object_id"`
	ObjectName string   `json:"object_name" yaml:"object_name"`
	Synonyms   []string `json:"object_synonyms,omitempty" yaml:"object_synonyms,omitempty"`
}

// RawField is one field record from the metadata ETL. A field is owned by
// exactly one object, referenced by ObjectID.
type RawField struct {
	LayoutFieldID string   `json:"layout_field_id" yaml:"layout_field_id"`
	FieldID       string   `json:"field_id,omitempty" yaml:"field_id,omitempty"`
	FieldName     string   `json:"field_name" yaml:"field_name"`
	DataType      string   `json:"data_type,omitempty" yaml:"data_type,omitempty"`
	ObjectID      string   `json:"object_id" yaml:"object_id"`
	ObjectName    string   `json:"object_name,omitempty" yaml:"object_name,omitempty"`
	Synonyms      []string `json:"field_synonyms,omitempty" yaml:"field_synonyms,omitempty"`
}

// SchemaSnapshot is the complete raw metadata catalog read from a snapshot
// source (file or database). It is the input to one index build.
type SchemaSnapshot struct {
	Objects []RawObject `json:"objects" yaml:"objects"`
	Fields  []RawField  `json:"fields" yaml:"fields"`
}

// ObjectInfo is the normalized, indexable form of a business object.
// Synonyms are deduplicated with original case preserved; matching is
// always case-insensitive.
type ObjectInfo struct {
	ObjectID   string
	ObjectName string
	Synonyms   []string
}

// FieldInfo is the normalized, indexable form of a field. ObjectName is a
// denormalized copy of the owner's name, kept in sync at build time.
type FieldInfo struct {
	LayoutFieldID string
	FieldID       string
	FieldName     string
	DataType      string
	ObjectID      string
	ObjectName    string
	Synonyms      []string
}
