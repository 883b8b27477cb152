package models

import (
	"encoding/json"

	"github.com/crmlens/context-engine/pkg/jsonutil"
)

// rawObjectJSON accepts both snake_case and camelCase key spellings and
// identifiers emitted as numbers. Real exports mix all of these.
type rawObjectJSON struct {
	ObjectID      json.RawMessage `json:"object_id"`
	ObjectIDAlt   json.RawMessage `json:"objectId"`
	ObjectName    string          `json:"object_name"`
	ObjectNameAlt string          `json:"objectName"`
	Synonyms      []string        `json:"object_synonyms"`
	SynonymsAlt   []string        `json:"objectSynonyms"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *RawObject) UnmarshalJSON(data []byte) error {
	var aux rawObjectJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	o.ObjectID = firstNonEmpty(
		jsonutil.FlexibleStringValue(aux.ObjectID),
		jsonutil.FlexibleStringValue(aux.ObjectIDAlt))
	o.ObjectName = firstNonEmpty(aux.ObjectName, aux.ObjectNameAlt)
	o.Synonyms = aux.Synonyms
	if o.Synonyms == nil {
		o.Synonyms = aux.SynonymsAlt
	}
	return nil
}

type rawFieldJSON struct {
	LayoutFieldID    json.RawMessage `json:"layout_field_id"`
	LayoutFieldIDAlt json.RawMessage `json:"layoutFieldId"`
	FieldID          json.RawMessage `json:"field_id"`
	FieldIDAlt       json.RawMessage `json:"fieldId"`
	FieldName        string          `json:"field_name"`
	FieldNameAlt     string          `json:"fieldName"`
	DataType         string          `json:"data_type"`
	DataTypeAlt      string          `json:"dataType"`
	ObjectID         json.RawMessage `json:"object_id"`
	ObjectIDAlt      json.RawMessage `json:"objectId"`
	ObjectName       string          `json:"object_name"`
	ObjectNameAlt    string          `json:"objectName"`
	Synonyms         []string        `json:"field_synonyms"`
	SynonymsAlt      []string        `json:"fieldSynonyms"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *RawField) UnmarshalJSON(data []byte) error {
	var aux rawFieldJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	f.LayoutFieldID = firstNonEmpty(
		jsonutil.FlexibleStringValue(aux.LayoutFieldID),
		jsonutil.FlexibleStringValue(aux.LayoutFieldIDAlt))
	f.FieldID = firstNonEmpty(
		jsonutil.FlexibleStringValue(aux.FieldID),
		jsonutil.FlexibleStringValue(aux.FieldIDAlt))
	f.FieldName = firstNonEmpty(aux.FieldName, aux.FieldNameAlt)
	f.DataType = firstNonEmpty(aux.DataType, aux.DataTypeAlt)
	f.ObjectID = firstNonEmpty(
		jsonutil.FlexibleStringValue(aux.ObjectID),
		jsonutil.FlexibleStringValue(aux.ObjectIDAlt))
	f.ObjectName = firstNonEmpty(aux.ObjectName, aux.ObjectNameAlt)
	f.Synonyms = aux.Synonyms
	if f.Synonyms == nil {
		f.Synonyms = aux.SynonymsAlt
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
