package models

// EntitySummary describes one matched business object in a context payload.
// Fields holds the layout field IDs of the object's fields that survived
// filtering, in ranked order.
type EntitySummary struct {
	ObjectID       string   `json:"object_id"`
	ObjectName     string   `json:"object_name"`
	ObjectSynonyms []string `json:"object_synonyms"`
	Fields         []string `json:"fields"`
}

// FieldDetail describes one field exposed to the downstream prompt-building
// layer. Key names follow the wire format that layer consumes.
type FieldDetail struct {
	ParentID      string   `json:"parentId"`
	ParentName    string   `json:"parentName"`
	FieldID       string   `json:"field_id"`
	FieldName     string   `json:"field_name"`
	FieldLabel    string   `json:"fieldLabel"`
	LayoutFieldID string   `json:"layout_field_id"`
	FieldSynonyms []string `json:"field_synonyms"`
}

// ContextPayload is the externally consumed result of one context query.
// On internal failure the payload degrades: Error is set, FallbackMode is
// true and the maps are empty, but the shape is always well formed.
type ContextPayload struct {
	Entities        map[string]*EntitySummary `json:"entities"`
	AvailableFields map[string]*FieldDetail   `json:"available_fields"`
	FieldMappings   map[string]string         `json:"field_mappings"`
	Query           string                    `json:"query"`
	Timestamp       string                    `json:"timestamp,omitempty"`

	Error        string `json:"error,omitempty"`
	FallbackMode bool   `json:"fallback_mode,omitempty"`
	GeneratedAt  string `json:"generated_at,omitempty"`
}
