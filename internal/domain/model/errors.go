package model

import "errors"

// Sentinel errors for the decision core. Callers classify failures with
// errors.Is; usecases wrap these with request context.
var (
	// ErrInvalidInput marks malformed request data (negative amounts, scores
	// outside [0,1], missing identifiers). Rejected before any computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrScoreUnavailable marks a scoring collaborator failure or timeout.
	// The whole request fails closed; no disposition is guessed.
	ErrScoreUnavailable = errors.New("risk scores unavailable")

	// ErrNoCompliantOptions marks the terminal outcome where the optimizer
	// found zero options satisfying the expected-loss cap. Decision responses
	// report it as a flag; callers that need an error value use this one.
	ErrNoCompliantOptions = errors.New("no compliant credit term options")

	// ErrComplianceViolation marks an internal-consistency failure: the
	// monitor rejected options the optimizer had already cap-checked.
	ErrComplianceViolation = errors.New("credit term options failed compliance")

	// ErrSessionNotFound marks an operation on an unknown negotiation session.
	ErrSessionNotFound = errors.New("negotiation session not found")

	// ErrMessageGeneration marks a text-phrasing collaborator failure. It is
	// always recovered locally with a templated description and never
	// propagated as a request failure.
	ErrMessageGeneration = errors.New("message generation failed")
)
