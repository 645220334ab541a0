package services

import "errors"

// Service-level outcomes the handlers map to HTTP statuses. Everything else
// that bubbles up is treated as an internal error.
var (
	// ErrNotFound means the slug was never issued (or the record is purged).
	ErrNotFound = errors.New("wish not found")
	// ErrGone means the wish existed but has expired or been deleted.
	ErrGone = errors.New("wish has expired or already been viewed")
	// ErrValidation covers malformed payloads and bad image types/extensions.
	ErrValidation = errors.New("validation failed")
	// ErrPayloadTooLarge means an upload exceeded the file size ceiling.
	ErrPayloadTooLarge = errors.New("file too large")
	// ErrQuotaExceeded means the per-wish image ceiling or the daily
	// per-IP creation ceiling was hit.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrStorageExhausted means free disk space fell below the floor.
	ErrStorageExhausted = errors.New("insufficient storage space")
	// ErrProcessing means a well-typed image failed to decode or encode.
	ErrProcessing = errors.New("image processing failed")
	// ErrSlugExhausted means the generator could not find a free slug.
	// Operational condition, not a user error.
	ErrSlugExhausted = errors.New("unable to generate unique slug after maximum attempts")
)
