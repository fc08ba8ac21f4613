package errors

import "errors"

var (
	// ErrInvalidRiderID indicates a missing or empty rider identifier
	ErrInvalidRiderID = errors.New("rider id is required")

	// ErrRiderNotFound indicates that no local mapping exists for the rider
	ErrRiderNotFound = errors.New("rider not found")

	// ErrNoPaymentMethod indicates that the rider has no saved payment method
	ErrNoPaymentMethod = errors.New("no saved payment method found for rider")

	// ErrRiderMappingMissing indicates a webhook referenced a provider
	// customer ID with no local rider. The reconciler guarantees a mapping
	// exists before any setup intent is issued, so this is an invariant
	// violation rather than a client error.
	ErrRiderMappingMissing = errors.New("no rider found for provider customer id")
)
