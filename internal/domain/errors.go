package domain

import "errors"

// Sentinel errors returned by the decision core and its collaborators.
// Callers branch with errors.Is; wrapped messages carry the offending values.
var (
	// ErrInvalidObservation marks a malformed weather observation (NaN,
	// negative rainfall or wind, humidity outside 0–100).
	ErrInvalidObservation = errors.New("invalid weather observation")

	// ErrInvalidQuery marks a malformed disaster query, e.g. a non-positive
	// land size. The caller should surface a corrective message.
	ErrInvalidQuery = errors.New("invalid disaster query")

	// ErrCatalogUnavailable distinguishes "could not evaluate" from "zero
	// eligible schemes". It is never folded into an empty result list.
	ErrCatalogUnavailable = errors.New("scheme catalog unavailable")

	// ErrUnavailable marks a collaborator failure (weather API, geocoder).
	// Callers fall back to deterministic estimates where one exists.
	ErrUnavailable = errors.New("service unavailable")
)
