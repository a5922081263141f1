package validator

import (
	"context"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
)

// MagicValidator checks that every line of a grid sums to three times the center
// and that the nine cells are distinct.
type MagicValidator struct{}

func New() *MagicValidator { return &MagicValidator{} }

// Validate returns the offending lines. A repeated cell value is reported on every
// line that contains it.
func (v *MagicValidator) Validate(ctx context.Context, g domain.Grid) (bool, []domain.Line, error) {
	for _, c := range g {
		if c == nil {
			return false, nil, errNilCell
		}
	}
	target := new(arith.Int).Mul(g.Center(), arith.NewInt(3))

	conf := make([]domain.Line, 0, 8)
	sum := new(arith.Int)
	for _, l := range domain.Lines {
		cells := l.Cells()
		sum.SetInt64(0)
		for _, i := range cells {
			sum.Add(sum, g[i])
		}
		if sum.Cmp(target) != 0 || repeated(g, cells) {
			conf = append(conf, l)
		}
	}
	return len(conf) == 0, conf, nil
}

// repeated reports whether any cell on the line equals another cell of the grid.
func repeated(g domain.Grid, cells [3]int) bool {
	for _, i := range cells {
		for j := range g {
			if j != i && g[i].Cmp(g[j]) == 0 {
				return true
			}
		}
	}
	return false
}
