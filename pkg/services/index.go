package services

import (
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crmlens/context-engine/pkg/models"
	"github.com/crmlens/context-engine/pkg/tokenize"
)

// SchemaIndex holds the inverted term indices over one normalized schema
// snapshot. An index is built once and is read-only afterwards; rebuilds
// construct a brand-new value and swap it in atomically, so any number of
// queries may read one concurrently without locking.
type SchemaIndex struct {
	// BuildID identifies this build in logs across rebuilds.
	BuildID uuid.UUID

	objects     map[string]*models.ObjectInfo // object_name -> object
	objectsByID map[string]*models.ObjectInfo // object_id -> object
	fields      map[string]*models.FieldInfo  // layout_field_id -> field

	objectFields map[string][]string // object_name -> owned layout field ids
	objectTerms  map[string][]string // term -> object names, sorted
	fieldTerms   map[string][]string // term -> layout field ids, sorted

	fieldTermSets map[string][]string // layout_field_id -> own terms, sorted
}

// BuildIndex constructs the index for a normalized snapshot. It is a total
// function over normalized records: malformed records were already dropped
// by the normalizer, so nothing here can fail.
func BuildIndex(objects []models.ObjectInfo, fields []models.FieldInfo, logger *zap.Logger) *SchemaIndex {
	idx := &SchemaIndex{
		BuildID:       uuid.New(),
		objects:       make(map[string]*models.ObjectInfo, len(objects)),
		objectsByID:   make(map[string]*models.ObjectInfo, len(objects)),
		fields:        make(map[string]*models.FieldInfo, len(fields)),
		objectFields:  make(map[string][]string),
		objectTerms:   make(map[string][]string),
		fieldTerms:    make(map[string][]string),
		fieldTermSets: make(map[string][]string, len(fields)),
	}

	objectTerms := make(map[string]map[string]bool)
	for i := range objects {
		obj := &objects[i]
		idx.objects[obj.ObjectName] = obj
		if obj.ObjectID != "" {
			idx.objectsByID[obj.ObjectID] = obj
		}

		terms := entityTerms(obj.ObjectName, obj.Synonyms, "")
		for _, term := range terms {
			if objectTerms[term] == nil {
				objectTerms[term] = make(map[string]bool)
			}
			objectTerms[term][obj.ObjectName] = true
		}
	}

	fieldTerms := make(map[string]map[string]bool)
	for i := range fields {
		f := &fields[i]
		idx.fields[f.LayoutFieldID] = f
		if f.ObjectName != "" {
			idx.objectFields[f.ObjectName] = append(idx.objectFields[f.ObjectName], f.LayoutFieldID)
		}

		terms := entityTerms(f.FieldName, f.Synonyms, f.LayoutFieldID)
		idx.fieldTermSets[f.LayoutFieldID] = terms
		for _, term := range terms {
			if fieldTerms[term] == nil {
				fieldTerms[term] = make(map[string]bool)
			}
			fieldTerms[term][f.LayoutFieldID] = true
		}
	}

	idx.objectTerms = flattenTermIndex(objectTerms)
	idx.fieldTerms = flattenTermIndex(fieldTerms)

	// Ownership lists sorted for deterministic iteration across rebuilds.
	for name := range idx.objectFields {
		sort.Strings(idx.objectFields[name])
	}

	logger.Named("index").Info("Built schema index",
		zap.String("build_id", idx.BuildID.String()),
		zap.Int("objects", len(idx.objects)),
		zap.Int("fields", len(idx.fields)),
		zap.Int("object_terms", len(idx.objectTerms)),
		zap.Int("field_terms", len(idx.fieldTerms)))

	return idx
}

// Object returns the object with the given canonical name.
func (idx *SchemaIndex) Object(name string) (*models.ObjectInfo, bool) {
	obj, ok := idx.objects[name]
	return obj, ok
}

// ObjectByID returns the object with the given stable id.
func (idx *SchemaIndex) ObjectByID(id string) (*models.ObjectInfo, bool) {
	obj, ok := idx.objectsByID[id]
	return obj, ok
}

// Field returns the field with the given layout field id.
func (idx *SchemaIndex) Field(layoutFieldID string) (*models.FieldInfo, bool) {
	f, ok := idx.fields[layoutFieldID]
	return f, ok
}

// FieldsOf returns the layout field ids owned by the named object, sorted.
func (idx *SchemaIndex) FieldsOf(objectName string) []string {
	return idx.objectFields[objectName]
}

// ObjectsMatching returns the names of objects indexed under term.
func (idx *SchemaIndex) ObjectsMatching(term string) []string {
	return idx.objectTerms[term]
}

// FieldsMatching returns the layout field ids indexed under term.
func (idx *SchemaIndex) FieldsMatching(term string) []string {
	return idx.fieldTerms[term]
}

// FieldTerms returns the field's own indexed terms, sorted. Used for
// containment scoring.
func (idx *SchemaIndex) FieldTerms(layoutFieldID string) []string {
	return idx.fieldTermSets[layoutFieldID]
}

// ObjectCount returns the number of indexed objects.
func (idx *SchemaIndex) ObjectCount() int { return len(idx.objects) }

// FieldCount returns the number of indexed fields.
func (idx *SchemaIndex) FieldCount() int { return len(idx.fields) }

// entityTerms tokenizes an entity's name, synonyms and identifier into
// one deduplicated, sorted term set.
func entityTerms(name string, synonyms []string, id string) []string {
	seen := make(map[string]bool)
	for _, term := range tokenize.Terms(name) {
		seen[term] = true
	}
	for _, syn := range synonyms {
		for _, term := range tokenize.Terms(syn) {
			seen[term] = true
		}
	}
	if id != "" {
		for _, term := range tokenize.Terms(id) {
			seen[term] = true
		}
	}

	terms := make([]string, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return terms
}

// flattenTermIndex converts term -> member sets into term -> sorted slices
// so lookups iterate in a stable order.
func flattenTermIndex(index map[string]map[string]bool) map[string][]string {
	out := make(map[string][]string, len(index))
	for term, members := range index {
		list := make([]string, 0, len(members))
		for m := range members {
			list = append(list, m)
		}
		sort.Strings(list)
		out[term] = list
	}
	return out
}
