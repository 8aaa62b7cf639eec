package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Engine operations
// are validators: on any of these the returned record is byte-for-byte the
// input record, never a partially applied transition. Idempotent no-ops
// (completing a completed mission, re-unlocking a badge) are NOT errors.

var (
	// ErrInvalidAmount rejects negative XP awards.
	ErrInvalidAmount = errors.New("xp amount must not be negative")

	// ErrValidation rejects negative, NaN, or infinite numeric input.
	ErrValidation = errors.New("invalid numeric input")

	// ErrMissionNotFound means the mission id is not a live instance.
	ErrMissionNotFound = errors.New("mission not found")

	// ErrBadgeNotFound means the badge id is not in the catalog.
	ErrBadgeNotFound = errors.New("badge not found")

	// ErrInvalidCategory means the weekly counter name is unknown.
	ErrInvalidCategory = errors.New("unknown weekly counter category")
)
