package secretshare

import "errors"

// The package reports every failure as one of the sentinel errors below,
// wrapped with context. Callers branch on the kind with errors.Is rather
// than matching message text.
var (
	// ErrInvalidParameters covers split preconditions: empty secret,
	// n < 2, k < 2, k > n, or n >= the field prime.
	ErrInvalidParameters = errors.New("secretshare: invalid parameters")

	// ErrEmptyShareSet is returned when reconstruction is invoked with no
	// shares at all.
	ErrEmptyShareSet = errors.New("secretshare: no shares provided")

	// ErrInconsistentShares is returned when supplied shares carry value
	// sequences of different lengths.
	ErrInconsistentShares = errors.New("secretshare: shares have mismatched lengths")

	// ErrDuplicateShareIndex is returned when two supplied shares evaluate
	// the same x-coordinate, which makes an interpolation divisor zero.
	ErrDuplicateShareIndex = errors.New("secretshare: duplicate share index")

	// ErrInvalidShareIndex is returned for a share index below 1. Index 0
	// is the recovery point itself and is never a valid evaluation point.
	ErrInvalidShareIndex = errors.New("secretshare: share index must be positive")

	// ErrMalformedShare is returned when share text fails to parse. The
	// wrapped message carries the offending text.
	ErrMalformedShare = errors.New("secretshare: malformed share")

	// ErrInvalidEncoding is returned by ReconstructText when the recovered
	// bytes are not valid UTF-8.
	ErrInvalidEncoding = errors.New("secretshare: reconstructed bytes are not valid UTF-8")
)
