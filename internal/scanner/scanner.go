// Package scanner combines pairs of progressions sharing a middle square into
// 3x3 grids and classifies them.
//
// For progressions P (distance a) and Q (distance b) around the middle square c
// the grid is
//
//	c-b      c+(a+b)  c-a
//	c-(a-b)  c        c+(a-b)
//	c+a      c-(a+b)  c+b
//
// which is magic with sum 3c. Five cells come from P, Q and c; the four cells
// built from a+b and a-b are tested separately.
package scanner

import (
	"context"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
	"svw.info/magicsquares/internal/progression"
)

// DefaultThreshold is the perfect-square count a grid must exceed to be reported.
const DefaultThreshold = 6

// guaranteed counts the cells that are squares by construction.
const guaranteed = 5

// DistanceIndex answers whether a distance occurs among the progressions.
type DistanceIndex interface {
	HasDistance(d *arith.Int) bool
}

// Stats summarises one scan.
type Stats struct {
	Pairs   int // evaluated pairs
	Skipped int // pairs rejected by b = 2a or a+b >= c
}

// Scanner walks every pair of a collection.
type Scanner struct {
	Threshold int
}

func New(threshold int) *Scanner { return &Scanner{Threshold: threshold} }

// Emit receives one report; an evaluation can produce two.
type Emit func(e domain.Evaluation, class domain.Class) error

// Scan evaluates every pair (i, j), i < j, in collection order. The collection
// is only read. Returns the first error from emit or the context.
func (s *Scanner) Scan(ctx context.Context, c *progression.Collection, emit Emit) (Stats, error) {
	var st Stats
	n := c.Len()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		p := c.At(i)
		for j := i + 1; j < n; j++ {
			e, ok := Evaluate(p, c.At(j), c)
			if !ok {
				st.Skipped++
				continue
			}
			st.Pairs++
			for _, class := range e.Classes(s.Threshold) {
				if err := emit(e, class); err != nil {
					return st, err
				}
			}
		}
	}
	return st, nil
}

// Evaluate builds and classifies the grid for p and q. The second result is false
// when the pair is skipped: b = 2a gives a degenerate grid and a+b >= c would put
// a non-positive value in the grid. Grid cells taken from p and q share their
// storage and must not be modified.
func Evaluate(p, q domain.Progression, idx DistanceIndex) (domain.Evaluation, bool) {
	a, b, c := p.D, q.D, p.Y

	twoA := new(arith.Int).Add(a, a)
	if b.Cmp(twoA) == 0 {
		return domain.Evaluation{}, false
	}
	sum := new(arith.Int).Add(a, b)
	if sum.Cmp(c) >= 0 {
		return domain.Evaluation{}, false
	}
	// Negative whenever b > a.
	diff := new(arith.Int).Sub(a, b)

	e := domain.Evaluation{
		Sum:  sum,
		Diff: diff,
		Grid: domain.Grid{
			q.X, new(arith.Int).Add(c, sum), p.X,
			new(arith.Int).Sub(c, diff), c, new(arith.Int).Add(c, diff),
			p.Z, new(arith.Int).Sub(c, sum), q.Z,
		},
	}
	e.Count = guaranteed
	for i, cell := range e.Grid.Derived() {
		if arith.IsSquare(cell) {
			e.Squares[i] = true
			e.Count++
		}
	}
	e.Recurrence = Classify(idx.HasDistance(sum), idx.HasDistance(diff))
	return e, true
}

// Classify maps the recurrence of a+b and a-b among the distances to a class.
func Classify(sumFound, diffFound bool) domain.Class {
	switch {
	case sumFound && diffFound:
		return domain.ClassHeureka
	case sumFound:
		return domain.ClassSemiHeureka1
	case diffFound:
		return domain.ClassSemiHeureka2
	default:
		return domain.ClassNone
	}
}
