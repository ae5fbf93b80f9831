package framestore

import "errors"

var (
	// ErrValidation is returned for malformed frame dimensions or payloads.
	// Caller bug; never retried.
	ErrValidation = errors.New("framestore: invalid frame data")

	// ErrFrameWrite is returned when encoding or writing a frame fails after
	// exhausting retries. The partial artifact is removed before returning.
	ErrFrameWrite = errors.New("framestore: frame write failed")

	// ErrVerification is returned when a written frame fails the post-write
	// integrity check. The file is deleted before returning.
	ErrVerification = errors.New("framestore: frame verification failed")

	// ErrSessionNotFound is returned for operations on an unknown session id.
	ErrSessionNotFound = errors.New("framestore: session not found")
)
