// Package snapshot provides the sources a schema snapshot can be loaded
// from (flat files for development, Postgres for deployments) and a file
// watcher that triggers index rebuilds when a snapshot file changes.
package snapshot

import (
	"context"

	"github.com/crmlens/context-engine/pkg/models"
)

// Source loads the raw CRM schema snapshot the index is built from.
type Source interface {
	Load(ctx context.Context) (*models.SchemaSnapshot, error)
}
