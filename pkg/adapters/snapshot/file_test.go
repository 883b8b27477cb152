package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlens/context-engine/pkg/apperrors"
)

func writeSnapshotFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileSourceJSON(t *testing.T) {
	path := writeSnapshotFile(t, "schema.json", `{
		"objects": [
			{"object_id": "1", "object_name": "Lead", "object_synonyms": ["prospect"]}
		],
		"fields": [
			{"layout_field_id": "le_email_1", "field_name": "Email", "object_id": "1"}
		]
	}`)

	snap, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Objects, 1)
	require.Len(t, snap.Fields, 1)
	assert.Equal(t, "Lead", snap.Objects[0].ObjectName)
	assert.Equal(t, []string{"prospect"}, snap.Objects[0].Synonyms)
	assert.Equal(t, "le_email_1", snap.Fields[0].LayoutFieldID)
}

func TestFileSourceYAML(t *testing.T) {
	path := writeSnapshotFile(t, "schema.yaml", `
objects:
  - object_id: "1"
    object_name: Account
fields:
  - layout_field_id: ac_name_1
    field_name: Account Name
    object_id: "1"
    field_synonyms:
      - company name
`)

	snap, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Objects, 1)
	assert.Equal(t, "Account", snap.Objects[0].ObjectName)
	require.Len(t, snap.Fields, 1)
	assert.Equal(t, []string{"company name"}, snap.Fields[0].Synonyms)
}

func TestFileSourceEmptySnapshot(t *testing.T) {
	path := writeSnapshotFile(t, "schema.json", `{"objects": [], "fields": []}`)

	_, err := NewFileSource(path).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmptySnapshot)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Load(context.Background())
	assert.Error(t, err)
}

func TestFileSourceMalformedJSON(t *testing.T) {
	path := writeSnapshotFile(t, "schema.json", `{"objects": [`)

	_, err := NewFileSource(path).Load(context.Background())
	assert.Error(t, err)
}
