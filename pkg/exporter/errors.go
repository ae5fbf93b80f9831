package exporter

import "errors"

var (
	// ErrNotInitialized is returned when an operation requires a prior
	// successful Initialize.
	ErrNotInitialized = errors.New("exporter: service not initialized")

	// ErrDisposed is returned after Dispose.
	ErrDisposed = errors.New("exporter: service disposed")

	// ErrValidation covers malformed export requests.
	ErrValidation = errors.New("exporter: invalid export request")

	// ErrDiscontinuity is returned when the batch plan does not cover the
	// frame range contiguously and the abort policy is in effect.
	ErrDiscontinuity = errors.New("exporter: batch discontinuity")
)
