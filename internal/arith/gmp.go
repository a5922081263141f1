//go:build gmp

package arith

import "github.com/ncw/gmp"

// Backend names the compiled integer implementation.
const Backend = "gmp"

// Int is the integer type used by every search component.
type Int = gmp.Int

// NewInt allocates an Int set to x.
func NewInt(x int64) *Int { return gmp.NewInt(x) }

// Sqrt returns floor(sqrt(x)), or 0 when x is not positive.
func Sqrt(x *Int) *Int {
	if x.Sign() <= 0 {
		return gmp.NewInt(0)
	}
	return new(gmp.Int).Sqrt(x)
}

// IsSquare reports whether x is a perfect square.
func IsSquare(x *Int) bool {
	switch x.Sign() {
	case -1:
		return false
	case 0:
		return true
	}
	r := new(gmp.Int).Sqrt(x)
	return r.Mul(r, r).Cmp(x) == 0
}

// Parse reads a base-10 integer. A leading '+' is rejected.
func Parse(s string) (*Int, bool) {
	if s == "" || s[0] == '+' {
		return nil, false
	}
	return new(gmp.Int).SetString(s, 10)
}
