package domain

import "errors"

// Shared domain errors returned by repositories and services
var (
	// ErrNotFound is returned when a requested record does not exist or
	// is soft deleted
	ErrNotFound = errors.New("record not found")

	// ErrSoldOut is returned when a package's stock is exhausted
	ErrSoldOut = errors.New("package sold out")
)
