package pms

import "errors"

var (
	// ErrRemoteUnavailable covers transport failures, timeouts and 5xx
	// responses. Transient: the caller may retry with backoff.
	ErrRemoteUnavailable = errors.New("pms unavailable")

	// ErrRemoteRejected covers 4xx application responses. Terminal for the
	// current pass: retrying the same request will not succeed.
	ErrRemoteRejected = errors.New("pms rejected request")
)
