package aadb

import "github.com/aadb-project/aadb/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound      = domain.ErrNotFound
	ErrAlreadyExists = domain.ErrAlreadyExists
	ErrValidation    = domain.ErrValidation
	ErrInvalidField  = domain.ErrInvalidField
)
