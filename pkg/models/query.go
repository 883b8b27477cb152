package models

// QueryAnalysis captures per-query characteristics used by the filter
// strategies. It is ephemeral: created fresh for each call and discarded
// once the response is produced.
type QueryAnalysis struct {
	QueryLength int     `json:"query_length"`
	WordCount   int     `json:"word_count"`
	QueryType   string  `json:"query_type"`
	Intent      string  `json:"intent"`
	Scope       string  `json:"scope"`
	Specificity float64 `json:"specificity"`
}

// Query types, chosen by majority vote over action-keyword hits.
const (
	QueryTypeRetrieval   = "retrieval"
	QueryTypeFilter      = "filter"
	QueryTypeAggregation = "aggregation"
	QueryTypeSearch      = "search"
	QueryTypeGeneral     = "general"
)

// Intent categories. Detection checks the groups in a fixed priority
// order; the first group with a keyword hit wins.
const (
	IntentCommunicationHistory = "communication_history"
	IntentContactInformation   = "contact_information"
	IntentIdentification       = "identification"
	IntentStatusInquiry        = "status_inquiry"
	IntentLocationInquiry      = "location_inquiry"
	IntentFinancialData        = "financial_data"
	IntentTemporalData         = "temporal_data"
	IntentLeadManagement       = "lead_management"
	IntentSalesForecasting     = "sales_forecasting"
	IntentGeneralInformation   = "general_information"
)

// Query scopes, from word count and presence of all/every/complete.
const (
	ScopeComprehensive = "comprehensive"
	ScopeSpecific      = "specific"
	ScopeModerate      = "moderate"
)

// Retrieval classes drive the selective filter's threshold/cap table.
const (
	RetrievalClassSpecific      = "specific_retrieval"
	RetrievalClassComprehensive = "comprehensive_retrieval"
	RetrievalClassTargeted      = "targeted_search"
	RetrievalClassDefault       = "default"
)

// Filter strategy names accepted by the context service. Unrecognized
// values fall back to selective.
const (
	StrategySelective     = "selective"
	StrategyComprehensive = "comprehensive"
)
