package agency

import "errors"

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateShortCode is returned when a short code is already used by another customer.
	ErrDuplicateShortCode = errors.New("duplicate short code")
	// ErrInvalidShortCode is returned for short codes that are not plain decimal numbers.
	ErrInvalidShortCode = errors.New("invalid short code")
	// ErrInvalidCustomer is returned for customers missing mandatory fields.
	ErrInvalidCustomer = errors.New("invalid customer")
	// ErrInvalidAmount is returned for negative amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidSettings is returned by AppSettings.Validate.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrPersist is returned when the ledger could not be written to its KV.
	//
	// The in-memory ledger has been updated regardless, and the returned
	// record, if any, is valid.
	ErrPersist = errors.New("cannot persist ledger")
)
