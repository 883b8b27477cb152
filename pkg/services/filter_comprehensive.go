package services

import (
	"sort"
	"strings"

	"github.com/crmlens/context-engine/pkg/models"
)

// ComprehensiveFilter includes every indexed field owned by a candidate
// object, with no threshold and no cap. Output is sorted by object name
// then field name so the full context reads like a schema listing rather
// than a ranking. A filter instance is bound to one index snapshot and is
// created per query by the context service.
type ComprehensiveFilter struct {
	idx *SchemaIndex
}

// NewComprehensiveFilter creates the comprehensive strategy over the given
// index snapshot.
func NewComprehensiveFilter(idx *SchemaIndex) *ComprehensiveFilter {
	return &ComprehensiveFilter{idx: idx}
}

var _ FilterStrategy = (*ComprehensiveFilter)(nil)

// Name implements FilterStrategy.
func (f *ComprehensiveFilter) Name() string { return models.StrategyComprehensive }

// Apply returns all fields belonging to the candidate objects, matched by
// object id with a case-insensitive object-name fallback for records whose
// owner id never resolved. Scored candidates keep their score; fields the
// scorer dropped come back with a neutral score of 1.0.
func (f *ComprehensiveFilter) Apply(fields []ScoredField, objects []ScoredObject, _ models.QueryAnalysis) []ScoredField {
	if len(objects) == 0 {
		return nil
	}

	candidateIDs := make(map[string]bool, len(objects))
	candidateNames := make(map[string]bool, len(objects))
	for _, so := range objects {
		if so.Object.ObjectID != "" {
			candidateIDs[so.Object.ObjectID] = true
		}
		candidateNames[strings.ToLower(so.Object.ObjectName)] = true
	}

	scoreByID := make(map[string]float64, len(fields))
	for _, sf := range fields {
		scoreByID[sf.Field.LayoutFieldID] = sf.Score
	}

	var complete []ScoredField
	for _, so := range objects {
		for _, layoutID := range f.idx.FieldsOf(so.Object.ObjectName) {
			field, ok := f.idx.Field(layoutID)
			if !ok {
				continue
			}
			if !candidateIDs[field.ObjectID] && !candidateNames[strings.ToLower(field.ObjectName)] {
				continue
			}
			score, scored := scoreByID[layoutID]
			if !scored {
				score = 1.0
			}
			complete = append(complete, ScoredField{Field: field, Score: score})
		}
	}

	sort.SliceStable(complete, func(i, j int) bool {
		a, b := complete[i].Field, complete[j].Field
		if a.ObjectName != b.ObjectName {
			return a.ObjectName < b.ObjectName
		}
		if a.FieldName != b.FieldName {
			return a.FieldName < b.FieldName
		}
		return a.LayoutFieldID < b.LayoutFieldID
	})
	return complete
}
