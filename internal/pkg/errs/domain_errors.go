package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Registry lookups
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrStationNotFound = errors.New("fuel station not found")

	// Ledger errors
	ErrQuotaNotFound       = errors.New("no active quota allocation")
	ErrTransactionNotFound = errors.New("fuel transaction not found")
	ErrInsufficientQuota   = errors.New("insufficient quota")
	ErrQuotaExpired        = errors.New("quota period expired")

	// Dispense validation errors
	ErrStationInactive     = errors.New("station is inactive")
	ErrFuelTypeUnsupported = errors.New("fuel type not supported")
	ErrAmountOutOfRange    = errors.New("amount out of range")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrDispenseInProgress     = errors.New("dispense in progress")
	ErrDuplicateSubmission    = errors.New("duplicate submission")
	ErrIdempotencyCheckFailed = errors.New("idempotency check failed")

	// Infrastructure errors
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrStorageUnavailable  = errors.New("storage unavailable")

	// Session errors
	ErrSessionExpired = errors.New("session expired")
)
