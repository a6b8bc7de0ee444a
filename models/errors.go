package models

import "github.com/cockroachdb/errors"

// Base errors, related to default API status codes
var (
	// BadParameterError marks malformed input. The public API surface only
	// exposes 200/401/500, so it is rendered as an internal error.
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401 and the
	// canonical {"error":"unauthorized"} body.
	UnAuthorizedError = errors.New("unauthorized")

	// NotFoundError marks a missing row. It never reaches the API surface
	// as a 404, callers translate it per endpoint.
	NotFoundError = errors.New("not found")
)

// Rescue related errors
var (
	// ErrRescueUnavailable is returned by the fallback engine when the
	// configuration yields no eligible meal. Callers render a distinct
	// "Rescue unavailable" state, never a meal with zero steps.
	ErrRescueUnavailable = errors.New("rescue unavailable")

	ErrUnknownTriggerReason = errors.Wrap(BadParameterError, "unknown trigger reason")
	ErrUnknownUserAction    = errors.Wrap(BadParameterError, "unknown user action")
)
