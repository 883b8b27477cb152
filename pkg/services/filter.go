package services

import (
	"github.com/crmlens/context-engine/pkg/models"
)

// FilterStrategy reduces the scored field candidates to the subset exposed
// to the caller. Strategies are selected by configuration on the context
// service, never by the scorer.
type FilterStrategy interface {
	// Name returns the strategy's configuration name.
	Name() string

	// Apply filters the scored candidate fields for one query.
	Apply(fields []ScoredField, objects []ScoredObject, analysis models.QueryAnalysis) []ScoredField
}
