package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/crmlens/context-engine/pkg/adapters/snapshot"
	"github.com/crmlens/context-engine/pkg/apperrors"
	"github.com/crmlens/context-engine/pkg/logging"
	"github.com/crmlens/context-engine/pkg/models"
)

// ContextService is the engine's public surface: it answers context
// queries against the current index snapshot and rebuilds the index when
// the underlying schema snapshot changes.
type ContextService interface {
	// GetContext evaluates a query with the configured filter strategy.
	GetContext(ctx context.Context, query string) *models.ContextPayload

	// GetContextWithStrategy evaluates a query with an explicit strategy
	// ("selective" or "comprehensive"); unrecognized values fall back to
	// selective.
	GetContextWithStrategy(ctx context.Context, query, strategy string) *models.ContextPayload

	// Rebuild loads the schema snapshot, builds a fresh index and swaps
	// it in atomically. On failure the previous index keeps serving.
	Rebuild(ctx context.Context) error

	// Stats reports the object/field counts of the serving index.
	Stats() (objects, fields int, ok bool)
}

type contextService struct {
	source     snapshot.Source
	normalizer *SchemaNormalizer
	strategy   string
	index      atomic.Pointer[SchemaIndex]
	logger     *zap.Logger
}

// NewContextService creates the service. No index is resident until the
// first successful Rebuild; queries before that degrade to the fallback
// payload.
func NewContextService(source snapshot.Source, strategy string, logger *zap.Logger) ContextService {
	if strategy != models.StrategySelective && strategy != models.StrategyComprehensive {
		logger.Warn("Unrecognized filter strategy, using selective",
			zap.String("strategy", strategy))
		strategy = models.StrategySelective
	}
	return &contextService{
		source:     source,
		normalizer: NewSchemaNormalizer(logger),
		strategy:   strategy,
		logger:     logger.Named("context"),
	}
}

var _ ContextService = (*contextService)(nil)

// Rebuild loads raw records from the snapshot source, normalizes them and
// builds a brand-new index. The swap is a single atomic pointer store:
// in-flight queries keep reading the index they started with.
func (s *contextService) Rebuild(ctx context.Context) error {
	snap, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrSchemaUnavailable, err)
	}

	objects, fields := s.normalizer.Normalize(snap.Objects, snap.Fields)
	idx := BuildIndex(objects, fields, s.logger)
	s.index.Store(idx)

	s.logger.Info("Schema index swapped in",
		zap.String("build_id", idx.BuildID.String()),
		zap.Int("objects", idx.ObjectCount()),
		zap.Int("fields", idx.FieldCount()))
	return nil
}

// Stats implements ContextService.
func (s *contextService) Stats() (int, int, bool) {
	idx := s.index.Load()
	if idx == nil {
		return 0, 0, false
	}
	return idx.ObjectCount(), idx.FieldCount(), true
}

// GetContext implements ContextService.
func (s *contextService) GetContext(ctx context.Context, query string) *models.ContextPayload {
	return s.GetContextWithStrategy(ctx, query, s.strategy)
}

// GetContextWithStrategy implements ContextService. Per-query failures
// never propagate: the caller always receives a well-formed payload, in
// the worst case a fallback-mode one.
func (s *contextService) GetContextWithStrategy(_ context.Context, query, strategy string) (payload *models.ContextPayload) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Context evaluation panicked",
				zap.Any("panic", r),
				zap.String("query", logging.SanitizeQuery(query)))
			payload = fallbackPayload(query, fmt.Sprintf("internal scoring failure: %v", r))
		}
	}()

	idx := s.index.Load()
	if idx == nil {
		return fallbackPayload(query, apperrors.ErrIndexNotBuilt.Error())
	}

	analysis := AnalyzeQuery(query)
	scorer := NewRelevanceScorer(idx, s.logger)
	objects := scorer.ScoreObjects(query)
	fields := scorer.ScoreFields(query, objects)
	filtered := s.strategyFor(idx, strategy).Apply(fields, objects, analysis)

	s.logger.Debug("Evaluated context query",
		zap.String("query", logging.SanitizeQuery(query)),
		zap.String("query_type", analysis.QueryType),
		zap.String("intent", analysis.Intent),
		zap.Float64("specificity", analysis.Specificity),
		zap.Int("candidate_objects", len(objects)),
		zap.Int("candidate_fields", len(fields)),
		zap.Int("filtered_fields", len(filtered)))

	return assemblePayload(query, objects, filtered)
}

// strategyFor resolves the per-query filter strategy against the current
// index snapshot.
func (s *contextService) strategyFor(idx *SchemaIndex, strategy string) FilterStrategy {
	switch strategy {
	case models.StrategyComprehensive:
		return NewComprehensiveFilter(idx)
	case models.StrategySelective:
		return NewSelectiveFilter()
	default:
		s.logger.Warn("Unrecognized filter strategy, using selective",
			zap.String("strategy", strategy))
		return NewSelectiveFilter()
	}
}

// assemblePayload transforms filtered candidates into the externally
// consumed shape: per-object summaries with owned-field id lists,
// per-field detail records and the flat id-to-name lookup map.
func assemblePayload(query string, objects []ScoredObject, fields []ScoredField) *models.ContextPayload {
	payload := &models.ContextPayload{
		Entities:        make(map[string]*models.EntitySummary, len(objects)),
		AvailableFields: make(map[string]*models.FieldDetail, len(fields)),
		FieldMappings:   make(map[string]string, len(fields)),
		Query:           query,
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	for _, so := range objects {
		obj := so.Object
		payload.Entities[obj.ObjectName] = &models.EntitySummary{
			ObjectID:       obj.ObjectID,
			ObjectName:     obj.ObjectName,
			ObjectSynonyms: obj.Synonyms,
			Fields:         []string{},
		}
	}

	for _, sf := range fields {
		field := sf.Field
		payload.AvailableFields[field.LayoutFieldID] = &models.FieldDetail{
			ParentID:      field.ObjectID,
			ParentName:    field.ObjectName,
			FieldID:       field.FieldID,
			FieldName:     field.FieldName,
			FieldLabel:    fieldLabel(field),
			LayoutFieldID: field.LayoutFieldID,
			FieldSynonyms: field.Synonyms,
		}
		payload.FieldMappings[field.LayoutFieldID] = field.FieldName

		if entity, ok := payload.Entities[field.ObjectName]; ok {
			entity.Fields = append(entity.Fields, field.LayoutFieldID)
		}
	}

	return payload
}

// fieldLabel renders the deterministic display label consumed by the
// prompt-building layer.
func fieldLabel(field *models.FieldInfo) string {
	return fmt.Sprintf("SN_%s_%s",
		strings.ToUpper(field.ObjectName),
		strings.ToUpper(field.FieldName))
}

// fallbackPayload is the degraded, well-formed response returned when a
// query cannot be evaluated.
func fallbackPayload(query, reason string) *models.ContextPayload {
	return &models.ContextPayload{
		Entities:        map[string]*models.EntitySummary{},
		AvailableFields: map[string]*models.FieldDetail{},
		FieldMappings:   map[string]string{},
		Query:           query,
		Error:           reason,
		FallbackMode:    true,
		GeneratedAt:     time.Now().Format(time.RFC3339),
	}
}
