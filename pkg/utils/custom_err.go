package utils

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidPage          = errors.New("invalid page parameter")
	ErrInvalidPageSize      = errors.New("invalid page size parameter")
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrOverlappingLocks     = errors.New("overlapping locks on the same day")
	ErrNoFeasiblePlan       = errors.New("no feasible plan")
	ErrVerificationFailed   = errors.New("transfer verification failed")
	ErrTooManyActivities    = errors.New("day exceeds maximum activity count")
	ErrPOINotFound          = errors.New("poi not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCatalogRecord = errors.New("invalid catalog record")
	ErrDatabaseError        = errors.New("database error")
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
