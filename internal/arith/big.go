//go:build !gmp

// Package arith selects the arbitrary-precision integer backend.
// The default build uses math/big; building with -tags gmp switches to libgmp
// through github.com/ncw/gmp, which mirrors the math/big method set.
package arith

import "math/big"

// Backend names the compiled integer implementation.
const Backend = "math/big"

// Int is the integer type used by every search component.
type Int = big.Int

// NewInt allocates an Int set to x.
func NewInt(x int64) *Int { return big.NewInt(x) }

// Sqrt returns floor(sqrt(x)), or 0 when x is not positive.
func Sqrt(x *Int) *Int {
	if x.Sign() <= 0 {
		return new(big.Int)
	}
	return new(big.Int).Sqrt(x)
}

// squareMod64 marks the quadratic residues modulo 64.
var squareMod64 [64]bool

func init() {
	for i := 0; i < 64; i++ {
		squareMod64[(i*i)%64] = true
	}
}

// IsSquare reports whether x is a perfect square.
func IsSquare(x *Int) bool {
	switch x.Sign() {
	case -1:
		return false
	case 0:
		return true
	}
	if low := x.Bits()[0]; !squareMod64[uint(low)&63] {
		return false
	}
	r := new(big.Int).Sqrt(x)
	return r.Mul(r, r).Cmp(x) == 0
}

// Parse reads a base-10 integer. A leading '+' is rejected.
func Parse(s string) (*Int, bool) {
	if s == "" || s[0] == '+' {
		return nil, false
	}
	return new(big.Int).SetString(s, 10)
}
