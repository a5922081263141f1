package generator

import "svw.info/magicsquares/internal/arith"

// Generate searches m > n >= 1 with m²+n² = p1, starting from m = floor(sqrt(p1)),
// n = 1. Each hit gives the triple (m²-n², 2mn, p1) which is scaled by p2 and turned
// into the progression (x2-x1)², x3², (x1+x2)². Returns how many the sink accepted.
func (g *Pythagorean) Generate(sink Sink, p1, p2 *arith.Int) int {
	one := arith.NewInt(1)
	two := arith.NewInt(2)

	m := arith.Sqrt(p1)
	n := arith.NewInt(1)
	mm := new(arith.Int).Mul(m, m)
	nn := new(arith.Int).Mul(n, n)
	sum := new(arith.Int)

	accepted := 0
	for m.Cmp(n) > 0 {
		sum.Add(mm, nn)
		switch sum.Cmp(p1) {
		case -1:
			n.Add(n, one)
			nn.Mul(n, n)
		case 1:
			m.Sub(m, one)
			mm.Mul(m, m)
		default:
			x1 := new(arith.Int).Sub(mm, nn)
			x2 := new(arith.Int).Mul(m, n)
			x2.Mul(x2, two)
			x3 := new(arith.Int).Set(sum)

			x1.Mul(x1, p2)
			x2.Mul(x2, p2)
			x3.Mul(x3, p2)

			a1 := new(arith.Int).Sub(x2, x1)
			a1.Mul(a1, a1)
			a2 := new(arith.Int).Mul(x3, x3)
			a3 := new(arith.Int).Add(x1, x2)
			a3.Mul(a3, a3)

			if sink.Insert(a1, a2, a3) {
				accepted++
			}

			m.Sub(m, one)
			mm.Mul(m, m)
		}
	}
	return accepted
}
