package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/crmlens/context-engine/pkg/models"
)

func buildTestIndex(t *testing.T) *SchemaIndex {
	t.Helper()
	n := NewSchemaNormalizer(zap.NewNop())
	objects, fields := n.Normalize(
		[]models.RawObject{
			{ObjectID: "1", ObjectName: "Lead"},
			{ObjectID: "2", ObjectName: "Account"},
		},
		[]models.RawField{
			{LayoutFieldID: "le_email_1", FieldName: "Email", ObjectID: "1", Synonyms: []string{"email", "e-mail"}},
			{LayoutFieldID: "le_status_1", FieldName: "Status", ObjectID: "1"},
			{LayoutFieldID: "ac_status_1", FieldName: "Status", ObjectID: "2"},
		},
	)
	return BuildIndex(objects, fields, zap.NewNop())
}

func TestBuildIndexLookups(t *testing.T) {
	idx := buildTestIndex(t)

	assert.Equal(t, 2, idx.ObjectCount())
	assert.Equal(t, 3, idx.FieldCount())

	lead, ok := idx.Object("Lead")
	require.True(t, ok)
	assert.Equal(t, "1", lead.ObjectID)

	byID, ok := idx.ObjectByID("2")
	require.True(t, ok)
	assert.Equal(t, "Account", byID.ObjectName)

	email, ok := idx.Field("le_email_1")
	require.True(t, ok)
	assert.Equal(t, "Lead", email.ObjectName)
}

func TestBuildIndexOwnership(t *testing.T) {
	idx := buildTestIndex(t)

	assert.Equal(t, []string{"le_email_1", "le_status_1"}, idx.FieldsOf("Lead"))
	assert.Equal(t, []string{"ac_status_1"}, idx.FieldsOf("Account"))
	assert.Empty(t, idx.FieldsOf("Unknown"))
}

func TestBuildIndexTermFanOut(t *testing.T) {
	idx := buildTestIndex(t)

	// Both Lead.Status and Account.Status index the term "status".
	assert.Equal(t, []string{"ac_status_1", "le_status_1"}, idx.FieldsMatching("status"))

	// Synonym terms resolve to the owning field.
	assert.Equal(t, []string{"le_email_1"}, idx.FieldsMatching("mail"))

	// Object names and their variants are indexed.
	assert.Equal(t, []string{"Lead"}, idx.ObjectsMatching("lead"))
	assert.Equal(t, []string{"Lead"}, idx.ObjectsMatching("prospects"))
	assert.Empty(t, idx.ObjectsMatching("xyznotfound"))
}

func TestBuildIndexDeterministic(t *testing.T) {
	a := buildTestIndex(t)
	b := buildTestIndex(t)

	assert.Equal(t, a.FieldsMatching("status"), b.FieldsMatching("status"))
	assert.Equal(t, a.FieldsOf("Lead"), b.FieldsOf("Lead"))
	assert.Equal(t, a.FieldTerms("le_email_1"), b.FieldTerms("le_email_1"))
	assert.NotEqual(t, a.BuildID, b.BuildID)
}

func TestFieldTermsIncludeLayoutIDVariants(t *testing.T) {
	idx := buildTestIndex(t)

	terms := idx.FieldTerms("le_status_1")
	assert.Contains(t, terms, "status")
	assert.Contains(t, terms, "le")
	assert.Contains(t, terms, "le status 1", "phrase term from layout id")
}
