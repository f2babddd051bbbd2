// Package errs provides the typed errors shared across the food-ordering core.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrObjectNotFound, ErrValueIsInvalid, ...)
//   - a struct carrying the offending parameter and an optional cause
//   - New...Error and New...ErrorWithCause constructors
//   - Unwrap returning the sentinel, so callers classify with errors.Is
//
// The HTTP adapter maps sentinels to status codes; nothing below the adapter
// layer needs to know about transport.
package errs
