package apperrors

import "errors"

var (
	ErrSchemaUnavailable = errors.New("schema snapshot unavailable")
	ErrIndexNotBuilt     = errors.New("schema index not built")
	ErrEmptySnapshot     = errors.New("schema snapshot contains no records")
)
