// Package errs provides standardized error types for the water delivery engine.
//
// Validation errors (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError) and ObjectNotFoundError follow one pattern: a sentinel
// variable, a struct with the details, constructors with and without a cause,
// and Unwrap returning the sentinel.
//
// Domain failures are grouped under two roots, ErrStateConflict and
// ErrResourceConflict, so that callers classify them with errors.Is or the
// IsValidation, IsStateConflict, IsResourceConflict and IsNotFound helpers.
package errs
