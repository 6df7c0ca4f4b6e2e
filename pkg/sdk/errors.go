package folio

import "github.com/kailas-cloud/folio/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound   = domain.ErrNotFound
	ErrValidation = domain.ErrValidation
	ErrIntegrity  = domain.ErrIntegrity
)
