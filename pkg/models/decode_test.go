package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawObjectDecodeVariants(t *testing.T) {
	// Numeric ids and camelCase keys both appear in real exports.
	var obj RawObject
	require.NoError(t, json.Unmarshal([]byte(`{
		"objectId": 42,
		"objectName": "Lead",
		"objectSynonyms": ["prospect"]
	}`), &obj))

	assert.Equal(t, "42", obj.ObjectID)
	assert.Equal(t, "Lead", obj.ObjectName)
	assert.Equal(t, []string{"prospect"}, obj.Synonyms)
}

func TestRawFieldDecodeVariants(t *testing.T) {
	var field RawField
	require.NoError(t, json.Unmarshal([]byte(`{
		"layout_field_id": "le_email_1",
		"fieldId": 101,
		"field_name": "Email",
		"objectId": 42
	}`), &field))

	assert.Equal(t, "le_email_1", field.LayoutFieldID)
	assert.Equal(t, "101", field.FieldID)
	assert.Equal(t, "Email", field.FieldName)
	assert.Equal(t, "42", field.ObjectID)
}

func TestRawFieldDecodeSnakeCaseWins(t *testing.T) {
	var field RawField
	require.NoError(t, json.Unmarshal([]byte(`{
		"field_name": "Email",
		"fieldName": "Legacy Email",
		"object_id": "1"
	}`), &field))

	assert.Equal(t, "Email", field.FieldName)
}
