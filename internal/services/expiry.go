package services

import (
	"fmt"
	"time"

	"github.com/Thejackcode565/Wish-A-Day/internal/models"
)

// ExpiryKind tells which rule expired a wish.
type ExpiryKind string

const (
	ExpiryTime  ExpiryKind = "time"
	ExpiryViews ExpiryKind = "views"
	ExpiryNone  ExpiryKind = "none"
)

// ExpiryResult is produced fresh on every evaluation and never persisted.
type ExpiryResult struct {
	Expired bool
	Kind    ExpiryKind
	Reason  string
}

// Evaluate checks whether a wish has expired at the given instant.
// The time-based rule is checked first, so when both rules hold the
// result is attributed to time.
func Evaluate(wish *models.Wish, now time.Time) ExpiryResult {
	if wish.ExpiresAt != nil && now.After(*wish.ExpiresAt) {
		return ExpiryResult{
			Expired: true,
			Kind:    ExpiryTime,
			Reason:  fmt.Sprintf("Wish expired at %s", wish.ExpiresAt.UTC().Format(time.RFC3339)),
		}
	}

	if wish.MaxViews != nil && wish.CurrentViews >= *wish.MaxViews {
		return ExpiryResult{
			Expired: true,
			Kind:    ExpiryViews,
			Reason:  fmt.Sprintf("Maximum views reached (%d/%d)", wish.CurrentViews, *wish.MaxViews),
		}
	}

	return ExpiryResult{Expired: false, Kind: ExpiryNone}
}

// ShouldSoftDelete reports whether a wish must be marked deleted.
//
// This deliberately re-derives the same two conditions as Evaluate instead
// of calling it: Evaluate is consulted before a view is counted, this
// predicate after. Keep both code paths; their truth tables must match.
func ShouldSoftDelete(wish *models.Wish, now time.Time) bool {
	if wish.MaxViews != nil && wish.CurrentViews >= *wish.MaxViews {
		return true
	}

	if wish.ExpiresAt != nil && now.After(*wish.ExpiresAt) {
		return true
	}

	return false
}

// RemainingViews returns how many views are left, or nil when the wish
// has no view ceiling.
func RemainingViews(wish *models.Wish) *int {
	if wish.MaxViews == nil {
		return nil
	}
	remaining := *wish.MaxViews - wish.CurrentViews
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}
