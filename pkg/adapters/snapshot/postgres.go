package snapshot

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crmlens/context-engine/pkg/models"
)

// PostgresSource loads the schema snapshot from the CRM metadata tables.
// Synonyms are stored as text[] columns and scanned straight into the
// slice fields.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a Postgres-backed snapshot source over an
// existing connection pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

var _ Source = (*PostgresSource)(nil)

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) (*models.SchemaSnapshot, error) {
	objects, err := s.loadObjects(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := s.loadFields(ctx)
	if err != nil {
		return nil, err
	}
	return &models.SchemaSnapshot{Objects: objects, Fields: fields}, nil
}

func (s *PostgresSource) loadObjects(ctx context.Context) ([]models.RawObject, error) {
	query := `
		SELECT object_id, object_name, COALESCE(synonyms, '{}')
		FROM crm_objects
		ORDER BY object_name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query objects: %w", err)
	}
	defer rows.Close()

	var objects []models.RawObject
	for rows.Next() {
		var obj models.RawObject
		if err := rows.Scan(&obj.ObjectID, &obj.ObjectName, &obj.Synonyms); err != nil {
			return nil, fmt.Errorf("failed to scan object row: %w", err)
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read object rows: %w", err)
	}
	return objects, nil
}

func (s *PostgresSource) loadFields(ctx context.Context) ([]models.RawField, error) {
	query := `
		SELECT layout_field_id, field_id, field_name, COALESCE(data_type, ''),
		       object_id, COALESCE(object_name, ''), COALESCE(synonyms, '{}')
		FROM crm_fields
		ORDER BY layout_field_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	var fields []models.RawField
	for rows.Next() {
		var f models.RawField
		if err := rows.Scan(&f.LayoutFieldID, &f.FieldID, &f.FieldName, &f.DataType,
			&f.ObjectID, &f.ObjectName, &f.Synonyms); err != nil {
			return nil, fmt.Errorf("failed to scan field row: %w", err)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read field rows: %w", err)
	}
	return fields, nil
}
