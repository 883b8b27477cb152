package services

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/crmlens/context-engine/pkg/models"
	"github.com/crmlens/context-engine/pkg/tokenize"
)

// Scoring weights and thresholds. Object scores accumulate unbounded and
// are thresholded; field scores are capped at 1.0.
const (
	objectNameWeight    = 2.0
	objectSynonymWeight = 1.5
	objectTermWeight    = 1.0
	minObjectScore      = 0.5

	fieldNameWeight      = 1.0
	fieldSynonymWeight   = 0.8
	fieldPartialWeight   = 0.5
	fieldContainedWeight = 0.3
	coverageBonusWeight  = 0.2
	parentBoostWeight    = 0.2
	minFieldScore        = 0.3
	minContainedTermLen  = 3
)

// ScoredObject is a candidate object with its per-query relevance score.
// Scores are transient: valid only within one query evaluation.
type ScoredObject struct {
	Object *models.ObjectInfo
	Score  float64
}

// ScoredField is a candidate field with its per-query relevance score.
type ScoredField struct {
	Field *models.FieldInfo
	Score float64
}

// RelevanceScorer ranks objects and fields against a query using the term
// indices of one immutable schema index. A scorer is cheap to construct
// and holds no mutable state, so one is created per query evaluation.
type RelevanceScorer struct {
	idx    *SchemaIndex
	logger *zap.Logger
}

// NewRelevanceScorer creates a scorer over the given index snapshot.
func NewRelevanceScorer(idx *SchemaIndex, logger *zap.Logger) *RelevanceScorer {
	return &RelevanceScorer{idx: idx, logger: logger.Named("scorer")}
}

// ScoreObjects returns the objects relevant to the query, ranked by score
// descending with ties broken by object name ascending. An empty query
// (after stop-word removal) yields no candidates.
func (s *RelevanceScorer) ScoreObjects(query string) []ScoredObject {
	terms := tokenize.QueryTerms(query)
	if len(terms) == 0 {
		return nil
	}

	scores := make(map[string]float64)
	for _, term := range terms {
		for _, name := range s.idx.ObjectsMatching(term) {
			obj, ok := s.idx.Object(name)
			if !ok {
				continue
			}
			switch {
			case strings.EqualFold(term, obj.ObjectName):
				scores[name] += objectNameWeight
			case hasSynonym(obj.Synonyms, term):
				scores[name] += objectSynonymWeight
			default:
				scores[name] += objectTermWeight
			}
		}
	}

	ranked := make([]ScoredObject, 0, len(scores))
	for name, score := range scores {
		if score < minObjectScore {
			continue
		}
		obj, _ := s.idx.Object(name)
		ranked = append(ranked, ScoredObject{Object: obj, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Object.ObjectName < ranked[j].Object.ObjectName
	})
	return ranked
}

// ScoreFields returns the fields relevant to the query, ranked descending.
// When candidate objects exist, scoring is entity-scoped: only fields owned
// by a candidate object are considered, and each inherits a boost from its
// parent's score. With no candidate objects the whole field-term index is
// searched directly.
func (s *RelevanceScorer) ScoreFields(query string, objects []ScoredObject) []ScoredField {
	terms := tokenize.QueryTerms(query)
	if len(terms) == 0 {
		return nil
	}

	if len(objects) == 0 {
		return s.scoreFieldsUnscoped(terms)
	}

	var ranked []ScoredField
	for _, candidate := range objects {
		for _, layoutID := range s.idx.FieldsOf(candidate.Object.ObjectName) {
			field, ok := s.idx.Field(layoutID)
			if !ok || field.ObjectID != candidate.Object.ObjectID {
				// Ownership boundary: a field never surfaces under an
				// object it does not belong to.
				continue
			}

			// Fields with no term match of their own can still surface
			// on the strength of their parent object's score.
			score := s.fieldScore(field, terms)
			score += candidate.Score * parentBoostWeight
			if score > 1.0 {
				score = 1.0
			}
			if score < minFieldScore {
				continue
			}
			ranked = append(ranked, ScoredField{Field: field, Score: score})
		}
	}

	sortFields(ranked)
	return ranked
}

// scoreFieldsUnscoped is the full-catalog fallback used when no object
// matched: every field reachable through the term index is scored, with no
// ownership restriction and no parent boost.
func (s *RelevanceScorer) scoreFieldsUnscoped(terms []string) []ScoredField {
	candidates := make(map[string]bool)
	for _, term := range terms {
		for _, layoutID := range s.idx.FieldsMatching(term) {
			candidates[layoutID] = true
		}
	}

	ranked := make([]ScoredField, 0, len(candidates))
	for layoutID := range candidates {
		field, ok := s.idx.Field(layoutID)
		if !ok {
			continue
		}
		score := s.fieldScore(field, terms)
		if score < minFieldScore {
			continue
		}
		ranked = append(ranked, ScoredField{Field: field, Score: score})
	}

	sortFields(ranked)
	return ranked
}

// fieldScore accumulates the match score of one field against the query
// terms: exact field-name match, exact synonym match, then containment in
// either direction, plus a coverage bonus. Capped at 1.0.
func (s *RelevanceScorer) fieldScore(field *models.FieldInfo, terms []string) float64 {
	fieldTerms := s.idx.FieldTerms(field.LayoutFieldID)

	score := 0.0
	matched := 0
	for _, term := range terms {
		switch {
		case strings.EqualFold(term, field.FieldName):
			score += fieldNameWeight
			matched++
		case hasSynonym(field.Synonyms, term):
			score += fieldSynonymWeight
			matched++
		case containsTerm(fieldTerms, term):
			score += fieldPartialWeight
			matched++
		case containedInTerm(fieldTerms, term):
			score += fieldContainedWeight
			matched++
		}
	}
	if matched > 0 {
		score += float64(matched) / float64(len(terms)) * coverageBonusWeight
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// hasSynonym reports whether term equals one of the synonyms, ignoring case.
func hasSynonym(synonyms []string, term string) bool {
	for _, syn := range synonyms {
		if strings.EqualFold(syn, term) {
			return true
		}
	}
	return false
}

// containsTerm reports whether the query term is a substring of any
// indexed field term.
func containsTerm(fieldTerms []string, term string) bool {
	for _, ft := range fieldTerms {
		if strings.Contains(ft, term) {
			return true
		}
	}
	return false
}

// containedInTerm reports whether any indexed field term of useful length
// is a substring of the query term.
func containedInTerm(fieldTerms []string, term string) bool {
	for _, ft := range fieldTerms {
		if len(ft) >= minContainedTermLen && strings.Contains(term, ft) {
			return true
		}
	}
	return false
}

// sortFields orders by score descending, breaking ties by layout field id
// so repeated evaluations return identical orderings.
func sortFields(fields []ScoredField) {
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Score != fields[j].Score {
			return fields[i].Score > fields[j].Score
		}
		return fields[i].Field.LayoutFieldID < fields[j].Field.LayoutFieldID
	})
}
