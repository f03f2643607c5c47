package domain

import "errors"

// Sentinel errors returned by the service layer. The HTTP layer translates
// these into response codes; nothing below it formats responses.
var (
	// ErrNotFound: referenced entity absent or not visible to the actor.
	ErrNotFound = errors.New("not_found")
	// ErrInvalidRole: actor or target lacks the required capability.
	ErrInvalidRole = errors.New("invalid_role")
	// ErrForbidden: actor does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrSlotUnavailable: booking conflict, including serialization aborts.
	ErrSlotUnavailable = errors.New("slot_unavailable")
	// ErrInvalidTransition: disallowed session status change.
	ErrInvalidTransition = errors.New("invalid_transition")
	// ErrNotCompletable: completion attempted on a non-accepted or future session.
	ErrNotCompletable = errors.New("not_completable")

	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrAccountDisabled    = errors.New("account_disabled")
	ErrSelfMessage        = errors.New("self_message")
	ErrAlreadyReviewed    = errors.New("already_reviewed")
	ErrNotReviewable      = errors.New("not_reviewable")
)
