package generator

import "svw.info/magicsquares/internal/arith"

// Sink receives progressions x < y < z of squares with y-x = z-y.
type Sink interface {
	Insert(x, y, z *arith.Int) bool
}

// Pythagorean derives progressions of three squares from Pythagorean triples
// whose hypotenuse is p1*p2.
type Pythagorean struct{}

// NewPythagorean returns a stateless generator.
func NewPythagorean() *Pythagorean { return &Pythagorean{} }
