package secretshare

import (
	"fmt"
	"unicode/utf8"
)

// SplitText splits a UTF-8 string secret. It is a convenience over Split;
// the engine itself is encoding-agnostic and callers with binary payloads
// should use Split directly.
func (e *Engine) SplitText(secret string, n, k int) ([]Share, error) {
	return e.Split([]byte(secret), n, k)
}

// ReconstructText reconstructs and returns the secret as a string. If the
// recovered bytes are not valid UTF-8 it returns ErrInvalidEncoding rather
// than silently substituting replacement characters; that usually means the
// shares were too few, mixed from different splits, or corrupted in
// transit.
func (e *Engine) ReconstructText(shares []Share) (string, error) {
	data, err := e.Reconstruct(shares)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w (wrong, corrupted or insufficient shares?)", ErrInvalidEncoding)
	}
	return string(data), nil
}
