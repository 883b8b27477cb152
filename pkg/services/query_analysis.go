package services

import (
	"strings"

	"github.com/crmlens/context-engine/pkg/models"
)

// actionPatterns vote on the query type. The type with the most keyword
// hits wins; zero hits means a general query.
var actionPatterns = map[string][]string{
	models.QueryTypeRetrieval:   {"show", "display", "list", "get", "retrieve", "view", "provide"},
	models.QueryTypeFilter:      {"filter", "where", "with", "having", "only", "specific", "matching"},
	models.QueryTypeAggregation: {"count", "sum", "total", "average", "calculate", "measure"},
	models.QueryTypeSearch:      {"find", "search", "look", "locate", "seek", "identify"},
}

// queryTypePriority breaks vote ties deterministically.
var queryTypePriority = []string{
	models.QueryTypeRetrieval,
	models.QueryTypeFilter,
	models.QueryTypeAggregation,
	models.QueryTypeSearch,
}

// intentGroup pairs an intent with its trigger keywords. Groups are
// checked in order; the first hit wins, so communication_history shadows
// contact_information for queries mentioning emails in a history sense.
type intentGroup struct {
	intent   string
	keywords []string
}

var intentGroups = []intentGroup{
	{models.IntentCommunicationHistory, []string{"communication", "history", "emails", "calls", "meetings"}},
	{models.IntentContactInformation, []string{"contact", "email", "phone"}},
	{models.IntentIdentification, []string{"name", "title", "who"}},
	{models.IntentStatusInquiry, []string{"status", "stage", "condition"}},
	{models.IntentLocationInquiry, []string{"address", "location", "where"}},
	{models.IntentFinancialData, []string{"revenue", "amount", "value", "financial"}},
	{models.IntentTemporalData, []string{"date", "time", "when"}},
	{models.IntentLeadManagement, []string{"lead", "conversion", "source", "tracking"}},
	{models.IntentSalesForecasting, []string{"forecast", "prediction", "pipeline"}},
}

// genericWords penalize specificity: a query dominated by them says little.
var genericWords = map[string]bool{
	"the": true, "and": true, "or": true, "a": true, "an": true,
	"is": true, "are": true, "with": true, "for": true, "to": true,
}

// AnalyzeQuery derives the per-query characteristics consumed by the
// filter strategies. Pure and total; an empty query analyzes to a general,
// specific-scope query with baseline specificity.
func AnalyzeQuery(query string) models.QueryAnalysis {
	return models.QueryAnalysis{
		QueryLength: len(query),
		WordCount:   len(strings.Fields(query)),
		QueryType:   detectQueryType(query),
		Intent:      detectIntent(query),
		Scope:       detectScope(query),
		Specificity: calculateSpecificity(query),
	}
}

// detectQueryType counts action-keyword hits per type and returns the
// majority, preferring earlier types in queryTypePriority on ties.
func detectQueryType(query string) string {
	words := strings.Fields(strings.ToLower(query))

	scores := make(map[string]int, len(actionPatterns))
	for queryType, keywords := range actionPatterns {
		for _, word := range words {
			for _, kw := range keywords {
				if word == kw {
					scores[queryType]++
				}
			}
		}
	}

	best, bestScore := models.QueryTypeGeneral, 0
	for _, queryType := range queryTypePriority {
		if scores[queryType] > bestScore {
			best, bestScore = queryType, scores[queryType]
		}
	}
	return best
}

// detectIntent returns the first intent group with a keyword occurring in
// the query, or general_information.
func detectIntent(query string) string {
	lower := strings.ToLower(query)
	for _, group := range intentGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.intent
			}
		}
	}
	return models.IntentGeneralInformation
}

// detectScope classifies how much of the catalog the query reaches for.
func detectScope(query string) string {
	lower := strings.ToLower(query)
	for _, kw := range []string{"all", "every", "complete"} {
		if strings.Contains(lower, kw) {
			return models.ScopeComprehensive
		}
	}
	if len(strings.Fields(query)) <= 3 {
		return models.ScopeSpecific
	}
	return models.ScopeModerate
}

// calculateSpecificity scores how specific the query is in [0,1]: longer
// queries with more unique words score higher, generic filler words lower.
func calculateSpecificity(query string) float64 {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return 0.5
	}

	unique := make(map[string]bool, len(words))
	generic := 0
	for _, w := range words {
		unique[w] = true
		if genericWords[w] {
			generic++
		}
	}

	score := 0.5
	lengthFactor := float64(len(words)) / 10.0
	if lengthFactor > 0.3 {
		lengthFactor = 0.3
	}
	score += lengthFactor
	score += float64(len(unique)) / float64(len(words)) * 0.2
	score -= float64(generic) / float64(len(words)) * 0.1

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
