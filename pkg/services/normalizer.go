package services

import (
	"sort"
	"strings"

	"github.com/jinzhu/inflection"
	"go.uber.org/zap"

	"github.com/crmlens/context-engine/pkg/models"
)

// Known field-name prefixes and suffixes added by the CRM layout exporter.
// Stripping them yields the business term users actually type.
var (
	fieldPrefixes = []string{"case_", "ac_", "le_", "op_"}
	fieldSuffixes = []string{"_code", "_id", "_name"}
)

// objectSynonymTable maps lowercased object names to common business
// synonyms. Keyed by plural form; lookup tries both the name and its
// plural so "Account" and "Accounts" resolve identically.
var objectSynonymTable = map[string][]string{
	"accounts":      {"customers", "clients", "companies", "organizations"},
	"leads":         {"prospects", "potential customers"},
	"opportunities": {"deals", "sales", "revenue opportunities"},
	"cases":         {"tickets", "issues", "problems", "support requests"},
	"contacts":      {"people", "individuals", "persons"},
}

// fieldSemanticMap expands field-name tokens into the alternate wordings
// users reach for in natural language.
var fieldSemanticMap = map[string][]string{
	"name":    {"title", "label", "identifier"},
	"email":   {"mail", "e-mail", "electronic mail", "contact email"},
	"phone":   {"telephone", "mobile", "contact number"},
	"address": {"location", "street", "residence"},
	"status":  {"state", "condition", "stage"},
	"amount":  {"value", "price", "cost", "revenue"},
}

// SchemaNormalizer converts raw ETL records into normalized, searchable
// objects and fields with expanded synonym sets.
type SchemaNormalizer struct {
	logger *zap.Logger
}

// NewSchemaNormalizer creates a normalizer.
func NewSchemaNormalizer(logger *zap.Logger) *SchemaNormalizer {
	return &SchemaNormalizer{logger: logger.Named("normalizer")}
}

// Normalize produces the object and field record families for one index
// build. Records missing their required key (object name, layout field id)
// are skipped with a logged warning; they never fail the build. Output
// ordering is not significant.
func (n *SchemaNormalizer) Normalize(rawObjects []models.RawObject, rawFields []models.RawField) ([]models.ObjectInfo, []models.FieldInfo) {
	objects := make([]models.ObjectInfo, 0, len(rawObjects))
	objectNameByID := make(map[string]string, len(rawObjects))

	for _, raw := range rawObjects {
		if strings.TrimSpace(raw.ObjectName) == "" {
			n.logger.Warn("Skipping object record with empty name",
				zap.String("object_id", raw.ObjectID))
			continue
		}
		objects = append(objects, models.ObjectInfo{
			ObjectID:   raw.ObjectID,
			ObjectName: raw.ObjectName,
			Synonyms:   n.objectSynonyms(raw),
		})
		objectNameByID[raw.ObjectID] = raw.ObjectName
	}

	fields := make([]models.FieldInfo, 0, len(rawFields))
	for _, raw := range rawFields {
		if strings.TrimSpace(raw.LayoutFieldID) == "" {
			n.logger.Warn("Skipping field record with empty layout field id",
				zap.String("field_name", raw.FieldName),
				zap.String("object_id", raw.ObjectID))
			continue
		}

		// Keep the denormalized owner name in sync with the owning
		// object when it resolves; fields with unresolvable owners are
		// still indexed.
		objectName := raw.ObjectName
		if name, ok := objectNameByID[raw.ObjectID]; ok {
			objectName = name
		}

		fields = append(fields, models.FieldInfo{
			LayoutFieldID: raw.LayoutFieldID,
			FieldID:       raw.FieldID,
			FieldName:     raw.FieldName,
			DataType:      raw.DataType,
			ObjectID:      raw.ObjectID,
			ObjectName:    objectName,
			Synonyms:      n.fieldSynonyms(raw),
		})
	}

	n.logger.Info("Normalized schema snapshot",
		zap.Int("objects", len(objects)),
		zap.Int("fields", len(fields)),
		zap.Int("objects_skipped", len(rawObjects)-len(objects)),
		zap.Int("fields_skipped", len(rawFields)-len(fields)))

	return objects, fields
}

// objectSynonyms derives the synonym set for an object: declared synonyms,
// the lowercased name, its singular/plural variant, and the domain
// synonym table lookup.
func (n *SchemaNormalizer) objectSynonyms(raw models.RawObject) []string {
	var synonyms []string
	synonyms = append(synonyms, raw.Synonyms...)

	lower := strings.ToLower(raw.ObjectName)
	synonyms = append(synonyms, lower)
	synonyms = append(synonyms, inflection.Singular(lower), inflection.Plural(lower))

	if extra, ok := objectSynonymTable[lower]; ok {
		synonyms = append(synonyms, extra...)
	} else if extra, ok := objectSynonymTable[inflection.Plural(lower)]; ok {
		synonyms = append(synonyms, extra...)
	}

	return dedupeSynonyms(synonyms)
}

// fieldSynonyms derives the synonym set for a field: declared synonyms,
// field-name variants (prefix/suffix stripped, delimiter split), semantic
// expansions per token and layout-id variants.
func (n *SchemaNormalizer) fieldSynonyms(raw models.RawField) []string {
	var synonyms []string
	synonyms = append(synonyms, raw.Synonyms...)
	synonyms = append(synonyms, fieldNameVariants(raw.FieldName)...)
	synonyms = append(synonyms, layoutIDVariants(raw.LayoutFieldID)...)
	return dedupeSynonyms(synonyms)
}

// fieldNameVariants generates matchable variants of a field name.
func fieldNameVariants(fieldName string) []string {
	if fieldName == "" {
		return nil
	}
	lower := strings.ToLower(fieldName)
	variants := []string{lower}

	cleaned := lower
	for _, p := range fieldPrefixes {
		cleaned = strings.TrimPrefix(cleaned, p)
	}
	for _, s := range fieldSuffixes {
		cleaned = strings.TrimSuffix(cleaned, s)
	}
	if cleaned != lower && cleaned != "" {
		variants = append(variants, cleaned)
	}

	parts := splitDelimiters(lower)
	variants = append(variants, parts...)
	for _, part := range parts {
		if extra, ok := fieldSemanticMap[part]; ok {
			variants = append(variants, extra...)
		}
	}

	return variants
}

// layoutIDVariants generates matchable variants of a layout field id:
// the id itself, its underscore-separated parts and the tail with the
// object prefix removed.
func layoutIDVariants(layoutID string) []string {
	if layoutID == "" {
		return nil
	}
	lower := strings.ToLower(layoutID)
	variants := []string{lower}

	parts := strings.Split(lower, "_")
	for _, part := range parts {
		if len(part) > 1 {
			variants = append(variants, part)
		}
	}
	if len(parts) > 1 {
		variants = append(variants, strings.Join(parts[1:], "_"))
	}

	return variants
}

// splitDelimiters splits on underscores, hyphens and whitespace.
func splitDelimiters(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '\t'
	})
}

// dedupeSynonyms removes case-insensitive duplicates. When two synonyms
// collide, the lexicographically smallest original-case spelling wins, so
// a rebuild from the same snapshot always yields the same set. Output is
// sorted by the lowercased form.
func dedupeSynonyms(synonyms []string) []string {
	byLower := make(map[string]string, len(synonyms))
	for _, syn := range synonyms {
		syn = strings.TrimSpace(syn)
		if syn == "" {
			continue
		}
		key := strings.ToLower(syn)
		if existing, ok := byLower[key]; !ok || syn < existing {
			byLower[key] = syn
		}
	}

	keys := make([]string, 0, len(byLower))
	for k := range byLower {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, byLower[k])
	}
	return out
}
