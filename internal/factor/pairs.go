// Package factor enumerates factor pairs by trial division.
package factor

import (
	"context"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
)

// ctxEvery is how many trial divisors are tested between context checks.
const ctxEvery = 4096

// Pairs returns every (f1, f2) with f1*f2 = n and f1 <= sqrt(n), ascending by f1.
func Pairs(ctx context.Context, n *arith.Int) ([]domain.FactorPair, error) {
	if n.Sign() <= 0 {
		return nil, nil
	}
	limit := arith.Sqrt(n)
	one := arith.NewInt(1)
	rem := new(arith.Int)

	var out []domain.FactorPair
	f := arith.NewInt(1)
	for i := 0; f.Cmp(limit) <= 0; i++ {
		if i%ctxEvery == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if rem.Rem(n, f).Sign() == 0 {
			out = append(out, domain.FactorPair{
				F1: new(arith.Int).Set(f),
				F2: new(arith.Int).Quo(n, f),
			})
		}
		f.Add(f, one)
	}
	return out, nil
}
