package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crmlens/context-engine/pkg/apperrors"
	"github.com/crmlens/context-engine/pkg/models"
)

// FileSource reads a schema snapshot from a JSON or YAML file. The format
// is picked by extension; anything that is not .yaml/.yml is parsed as
// JSON.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed snapshot source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

var _ Source = (*FileSource)(nil)

// Path returns the snapshot file path, for watching.
func (s *FileSource) Path() string { return s.path }

// Load implements Source.
func (s *FileSource) Load(_ context.Context) (*models.SchemaSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file %s: %w", s.path, err)
	}

	var snap models.SchemaSnapshot
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse YAML snapshot %s: %w", s.path, err)
		}
	default:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to parse JSON snapshot %s: %w", s.path, err)
		}
	}

	if len(snap.Objects) == 0 && len(snap.Fields) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrEmptySnapshot, s.path)
	}
	return &snap, nil
}
