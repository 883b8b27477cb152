package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crmlens/context-engine/pkg/models"
)

func scoredField(layoutID, fieldName, objectName string, score float64, synonyms ...string) ScoredField {
	return ScoredField{
		Field: &models.FieldInfo{
			LayoutFieldID: layoutID,
			FieldName:     fieldName,
			ObjectID:      "1",
			ObjectName:    objectName,
			Synonyms:      synonyms,
		},
		Score: score,
	}
}

func TestSelectiveFilterThreshold(t *testing.T) {
	f := NewSelectiveFilter()
	analysis := models.QueryAnalysis{
		QueryType: models.QueryTypeGeneral,
		Intent:    models.IntentGeneralInformation,
	}

	fields := []ScoredField{
		scoredField("a", "Email", "Lead", 0.9),
		scoredField("b", "Phone", "Lead", 0.5),
		scoredField("c", "Fax", "Lead", 0.49),
	}

	got := f.Apply(fields, nil, analysis)
	require.Len(t, got, 2, "default threshold is 0.5")
	for _, sf := range got {
		assert.GreaterOrEqual(t, sf.Score, 0.5)
	}
}

func TestSelectiveFilterRetrievalClasses(t *testing.T) {
	tests := []struct {
		name      string
		analysis  models.QueryAnalysis
		wantClass string
		wantMin   float64
	}{
		{
			name:      "specific retrieval",
			analysis:  models.QueryAnalysis{QueryType: models.QueryTypeRetrieval, Scope: models.ScopeSpecific},
			wantClass: models.RetrievalClassSpecific,
			wantMin:   0.7,
		},
		{
			name:      "comprehensive retrieval",
			analysis:  models.QueryAnalysis{QueryType: models.QueryTypeRetrieval, Scope: models.ScopeComprehensive},
			wantClass: models.RetrievalClassComprehensive,
			wantMin:   0.4,
		},
		{
			name:      "targeted search",
			analysis:  models.QueryAnalysis{QueryType: models.QueryTypeSearch, Scope: models.ScopeModerate},
			wantClass: models.RetrievalClassTargeted,
			wantMin:   0.6,
		},
		{
			name:      "moderate retrieval uses default",
			analysis:  models.QueryAnalysis{QueryType: models.QueryTypeRetrieval, Scope: models.ScopeModerate},
			wantClass: models.RetrievalClassDefault,
			wantMin:   0.5,
		},
		{
			name:      "aggregation uses default",
			analysis:  models.QueryAnalysis{QueryType: models.QueryTypeAggregation, Scope: models.ScopeSpecific},
			wantClass: models.RetrievalClassDefault,
			wantMin:   0.5,
		},
	}

	f := NewSelectiveFilter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantClass, retrievalClass(tt.analysis))

			fields := []ScoredField{
				scoredField("hi", "Email", "Lead", 0.95),
				scoredField("lo", "Phone", "Lead", tt.wantMin-0.01),
			}
			got := f.Apply(fields, nil, tt.analysis)
			require.Len(t, got, 1)
			assert.Equal(t, "hi", got[0].Field.LayoutFieldID)
		})
	}
}

func TestSelectiveFilterCap(t *testing.T) {
	f := NewSelectiveFilter()
	analysis := models.QueryAnalysis{
		QueryType: models.QueryTypeRetrieval,
		Scope:     models.ScopeSpecific, // cap 50
	}

	fields := make([]ScoredField, 0, 60)
	for i := 0; i < 60; i++ {
		fields = append(fields, scoredField(fmt.Sprintf("f%03d", i), "Email", "Lead", 0.9))
	}

	got := f.Apply(fields, nil, analysis)
	assert.Len(t, got, 50)
}

func TestSelectiveFilterIntentGate(t *testing.T) {
	f := NewSelectiveFilter()
	analysis := models.QueryAnalysis{
		QueryType: models.QueryTypeGeneral,
		Intent:    models.IntentContactInformation,
	}

	fields := []ScoredField{
		scoredField("a", "Email", "Lead", 0.9),
		scoredField("b", "Annual Revenue", "Account", 0.9),
		scoredField("c", "Mobile", "Lead", 0.9, "phone", "contact number"),
	}

	got := f.Apply(fields, nil, analysis)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Field.LayoutFieldID, "field name contains intent keyword")
	assert.Equal(t, "c", got[1].Field.LayoutFieldID, "synonym contains intent keyword")
}

func TestSelectiveFilterUnknownIntentPasses(t *testing.T) {
	f := NewSelectiveFilter()
	analysis := models.QueryAnalysis{
		QueryType: models.QueryTypeGeneral,
		Intent:    models.IntentGeneralInformation,
	}

	fields := []ScoredField{
		scoredField("a", "Anything", "Lead", 0.9),
	}
	assert.Len(t, f.Apply(fields, nil, analysis), 1)
}
