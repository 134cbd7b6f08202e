// Package secretshare splits secrets into threshold shares using Shamir's
// scheme over the prime field GF(257) and reconstructs them by Lagrange
// interpolation. Each byte of the secret is shared independently, which
// keeps the field just above the byte range and the secrecy argument
// per-byte.
//
// Any k of the n produced shares recover the secret exactly; k-1 shares are
// statistically independent of it. Shares carry no record of the threshold
// or of which split produced them, so combining too few shares, or shares
// from different splits, yields well-formed garbage rather than an error.
// Guarding against that is the caller's responsibility.
package secretshare

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/oarkflow/secretshare/field"
)

// DefaultPrime is the default field modulus: the smallest prime above 256,
// so every byte value is a field element.
const DefaultPrime = 257

// Share is one fragment of a split secret: the x-coordinate every per-byte
// polynomial was evaluated at, and one value per secret byte. Shares are
// immutable once produced; the engine keeps no reference to them.
type Share struct {
	Index  int   `json:"index"`
	Values []int `json:"values"`
}

// Config configures an Engine.
type Config struct {
	// Prime is the field modulus. It must be a prime greater than 256 so
	// that byte secrets survive modular reduction. Zero selects
	// DefaultPrime.
	Prime int

	// Rand supplies the random polynomial coefficients. Nil selects
	// crypto/rand.Reader. The original tool this replaces drew
	// coefficients from a general-purpose PRNG; a cryptographically
	// secure source is the default here, and substituting a weaker one
	// weakens the secrecy guarantee to exactly the strength of the
	// source.
	Rand io.Reader
}

// Engine splits and reconstructs secrets over a fixed prime field. It is
// stateless apart from its configuration; methods are safe for concurrent
// use on independent inputs.
type Engine struct {
	fld      *field.Field
	prime    int
	primeBig *big.Int
	rand     io.Reader
}

// New returns an Engine over GF(257) drawing randomness from crypto/rand.
func New() *Engine {
	e, err := NewWithConfig(Config{})
	if err != nil {
		// The default configuration always validates.
		panic(err)
	}
	return e
}

// NewWithConfig returns an Engine for the given configuration. The prime is
// validated so that a misconfigured modulus fails at construction time, not
// as corrupted output later.
func NewWithConfig(cfg Config) (*Engine, error) {
	prime := cfg.Prime
	if prime == 0 {
		prime = DefaultPrime
	}
	if prime <= 256 {
		return nil, fmt.Errorf("%w: prime %d must exceed 256", ErrInvalidParameters, prime)
	}
	primeBig := big.NewInt(int64(prime))
	if !primeBig.ProbablyPrime(20) {
		return nil, fmt.Errorf("%w: modulus %d is not prime", ErrInvalidParameters, prime)
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.Reader
	}
	return &Engine{
		fld:      field.New(prime),
		prime:    prime,
		primeBig: primeBig,
		rand:     rng,
	}, nil
}

// Prime returns the engine's field modulus.
func (e *Engine) Prime() int {
	return e.prime
}

// Split divides secret into n shares of which any k reconstruct it. Shares
// are indexed 1..n; index 0 is reserved as the recovery point and is never
// emitted. Each secret byte gets its own fresh random polynomial, so shares
// from different Split calls never combine meaningfully.
func (e *Engine) Split(secret []byte, n, k int) ([]Share, error) {
	switch {
	case len(secret) == 0:
		return nil, fmt.Errorf("%w: secret is empty", ErrInvalidParameters)
	case n < 2:
		return nil, fmt.Errorf("%w: need at least 2 shares, got n=%d", ErrInvalidParameters, n)
	case k < 2:
		return nil, fmt.Errorf("%w: threshold must be at least 2, got k=%d", ErrInvalidParameters, k)
	case k > n:
		return nil, fmt.Errorf("%w: threshold k=%d exceeds share count n=%d", ErrInvalidParameters, k, n)
	case n >= e.prime:
		return nil, fmt.Errorf("%w: n=%d must be below the field prime %d", ErrInvalidParameters, n, e.prime)
	}

	shares := make([]Share, n)
	for i := range shares {
		shares[i].Index = i + 1
		shares[i].Values = make([]int, len(secret))
	}

	coeffs := make([]int, k)
	for pos, b := range secret {
		// Degree k-1 polynomial with the secret byte as constant term.
		coeffs[0] = int(b)
		for j := 1; j < k; j++ {
			c, err := e.randomCoefficient()
			if err != nil {
				return nil, err
			}
			coeffs[j] = c
		}
		for i := range shares {
			shares[i].Values[pos] = e.evaluate(coeffs, shares[i].Index)
		}
	}
	return shares, nil
}

// Reconstruct recovers the secret from k or more shares of one split. It
// validates share structure (equal lengths, positive and distinct indices)
// but cannot detect too few shares or shares from different splits: both
// produce a well-formed wrong byte sequence by construction.
func (e *Engine) Reconstruct(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrEmptyShareSet
	}
	length := len(shares[0].Values)
	seen := make(map[int]int, len(shares))
	for _, s := range shares {
		if len(s.Values) != length {
			return nil, fmt.Errorf("%w: share %d has %d values, share %d has %d",
				ErrInconsistentShares, shares[0].Index, length, s.Index, len(s.Values))
		}
		if s.Index < 1 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidShareIndex, s.Index)
		}
		// Indices congruent mod p collide as x-coordinates just as
		// literal duplicates do.
		x := s.Index % e.prime
		if prev, ok := seen[x]; ok {
			return nil, fmt.Errorf("%w: indices %d and %d", ErrDuplicateShareIndex, prev, s.Index)
		}
		seen[x] = s.Index
	}

	secret := make([]byte, length)
	for pos := 0; pos < length; pos++ {
		v, err := e.interpolateAtZero(shares, pos)
		if err != nil {
			return nil, err
		}
		// The field holds one residue (256) beyond the byte range; a
		// valid constant term is always a byte, so fold mod 256.
		secret[pos] = byte(v % 256)
	}
	return secret, nil
}

// evaluate computes coeffs[0] + coeffs[1]*x + ... + coeffs[k-1]*x^(k-1) in
// the field, accumulating powers of x as it goes.
func (e *Engine) evaluate(coeffs []int, x int) int {
	y := coeffs[0]
	xPow := 1
	for _, c := range coeffs[1:] {
		xPow = e.fld.Mul(xPow, x)
		y = e.fld.Add(y, e.fld.Mul(c, xPow))
	}
	return y
}

// interpolateAtZero evaluates the Lagrange interpolation of the points
// (share.Index, share.Values[pos]) at x = 0, recovering the constant term
// of the polynomial the values were sampled from.
func (e *Engine) interpolateAtZero(shares []Share, pos int) (int, error) {
	total := 0
	for i, si := range shares {
		term := si.Values[pos]
		for j, sj := range shares {
			if i == j {
				continue
			}
			inv, err := e.fld.Inverse(e.fld.Sub(si.Index, sj.Index))
			if err != nil {
				// Unreachable after the duplicate-index check,
				// kept so a zero divisor can never pass
				// silently.
				return 0, fmt.Errorf("%w: indices %d and %d", ErrDuplicateShareIndex, si.Index, sj.Index)
			}
			term = e.fld.Mul(term, e.fld.Mul(e.fld.Sub(0, sj.Index), inv))
		}
		total = e.fld.Add(total, term)
	}
	return total, nil
}

// randomCoefficient draws one uniform field element from the configured
// source.
func (e *Engine) randomCoefficient() (int, error) {
	v, err := rand.Int(e.rand, e.primeBig)
	if err != nil {
		return 0, fmt.Errorf("secretshare: drawing random coefficient: %w", err)
	}
	return int(v.Int64()), nil
}
