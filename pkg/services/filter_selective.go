package services

import (
	"strings"

	"github.com/crmlens/context-engine/pkg/models"
)

// filterLimits is one row of the selective threshold/cap table.
type filterLimits struct {
	minScore   float64
	maxResults int
}

// selectiveLimits maps a retrieval class to its threshold and cap.
var selectiveLimits = map[string]filterLimits{
	models.RetrievalClassSpecific:      {minScore: 0.7, maxResults: 50},
	models.RetrievalClassComprehensive: {minScore: 0.4, maxResults: 100},
	models.RetrievalClassTargeted:      {minScore: 0.6, maxResults: 75},
	models.RetrievalClassDefault:       {minScore: 0.5, maxResults: 80},
}

// intentKeywords gates fields per detected intent: a field passes when its
// name, object name or synonyms contain at least one keyword. Intents
// absent from this table pass everything through.
var intentKeywords = map[string][]string{
	models.IntentContactInformation:   {"contact", "email", "phone", "address", "communication"},
	models.IntentIdentification:       {"name", "title", "id", "identifier"},
	models.IntentStatusInquiry:        {"status", "stage", "state", "condition"},
	models.IntentLocationInquiry:      {"address", "location", "territory", "region"},
	models.IntentFinancialData:        {"revenue", "amount", "price", "cost", "financial", "money"},
	models.IntentTemporalData:         {"date", "time", "created", "modified", "due", "start", "end"},
	models.IntentCommunicationHistory: {"activity", "communication", "email", "call", "meeting", "history"},
	models.IntentLeadManagement:       {"lead", "source", "campaign", "conversion", "tracking"},
	models.IntentSalesForecasting:     {"forecast", "pipeline", "prediction", "probability"},
}

// SelectiveFilter keeps only fields that clear an adaptive relevance
// threshold and match the detected intent, capped to a bounded result set
// for a clean downstream prompt.
type SelectiveFilter struct{}

// NewSelectiveFilter creates the selective strategy.
func NewSelectiveFilter() *SelectiveFilter {
	return &SelectiveFilter{}
}

var _ FilterStrategy = (*SelectiveFilter)(nil)

// Name implements FilterStrategy.
func (f *SelectiveFilter) Name() string { return models.StrategySelective }

// Apply thresholds by retrieval class, drops intent mismatches, and
// truncates to the class cap. Input ordering (score descending) is
// preserved.
func (f *SelectiveFilter) Apply(fields []ScoredField, _ []ScoredObject, analysis models.QueryAnalysis) []ScoredField {
	limits := selectiveLimits[retrievalClass(analysis)]
	keywords := intentKeywords[analysis.Intent]

	filtered := make([]ScoredField, 0, len(fields))
	for _, sf := range fields {
		if sf.Score < limits.minScore {
			continue
		}
		if len(keywords) > 0 && !matchesIntent(sf.Field, keywords) {
			continue
		}
		filtered = append(filtered, sf)
		if len(filtered) == limits.maxResults {
			break
		}
	}
	return filtered
}

// retrievalClass folds the analyzed query type and scope into the
// threshold-table key: retrieval queries split by scope, search queries
// are targeted, everything else uses the default limits.
func retrievalClass(analysis models.QueryAnalysis) string {
	switch analysis.QueryType {
	case models.QueryTypeRetrieval:
		switch analysis.Scope {
		case models.ScopeComprehensive:
			return models.RetrievalClassComprehensive
		case models.ScopeSpecific:
			return models.RetrievalClassSpecific
		}
	case models.QueryTypeSearch:
		return models.RetrievalClassTargeted
	}
	return models.RetrievalClassDefault
}

// matchesIntent reports whether the field's combined text contains any of
// the intent keywords.
func matchesIntent(field *models.FieldInfo, keywords []string) bool {
	var b strings.Builder
	b.WriteString(field.FieldName)
	b.WriteByte(' ')
	b.WriteString(field.ObjectName)
	for _, syn := range field.Synonyms {
		b.WriteByte(' ')
		b.WriteString(syn)
	}
	text := strings.ToLower(b.String())

	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
