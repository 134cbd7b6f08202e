// Package field implements arithmetic over the field of integers modulo a
// small prime. Every operation returns a canonical representative in
// [0, p-1]; inputs outside that range, including negatives, are normalized
// before use.
package field

import "errors"

// ErrDivisionByZero is returned by Inverse when the operand reduces to zero.
// During secret reconstruction this only happens when two shares carry the
// same x-coordinate.
var ErrDivisionByZero = errors.New("field: division by zero")

// Field performs arithmetic modulo a fixed odd prime.
type Field struct {
	prime int
}

// New returns a Field over the integers modulo prime. The caller is
// responsible for supplying an actual prime; Engine constructors validate
// primality before reaching here.
func New(prime int) *Field {
	return &Field{prime: prime}
}

// Prime returns the field modulus.
func (f *Field) Prime() int {
	return f.prime
}

// reduce maps any integer onto its canonical representative in [0, p-1].
func (f *Field) reduce(a int) int {
	a %= f.prime
	if a < 0 {
		a += f.prime
	}
	return a
}

// Add returns (a + b) mod p.
func (f *Field) Add(a, b int) int {
	return f.reduce(f.reduce(a) + f.reduce(b))
}

// Sub returns (a - b) mod p.
func (f *Field) Sub(a, b int) int {
	return f.reduce(f.reduce(a) - f.reduce(b))
}

// Mul returns (a * b) mod p.
func (f *Field) Mul(a, b int) int {
	return f.reduce(f.reduce(a) * f.reduce(b))
}

// Pow returns base^exp mod p for exp >= 0, by binary exponentiation.
func (f *Field) Pow(base, exp int) int {
	result := 1
	base = f.reduce(base)
	for exp > 0 {
		if exp&1 == 1 {
			result = f.Mul(result, base)
		}
		base = f.Mul(base, base)
		exp >>= 1
	}
	return result
}

// Inverse returns the multiplicative inverse of a mod p, computed as
// a^(p-2) by Fermat's little theorem. Returns ErrDivisionByZero when a
// reduces to zero.
func (f *Field) Inverse(a int) (int, error) {
	a = f.reduce(a)
	if a == 0 {
		return 0, ErrDivisionByZero
	}
	return f.Pow(a, f.prime-2), nil
}
