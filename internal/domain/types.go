package domain

import (
	"fmt"
	"strings"

	"svw.info/magicsquares/internal/arith"
)

// Value is one input of the search: the generator number is 6*Input±1.
type Value struct {
	Input *arith.Int
	Sign  Sign
}

// Number returns the generator number 6*Input+1 or 6*Input-1.
func (v Value) Number() *arith.Int {
	n := new(arith.Int).Mul(v.Input, arith.NewInt(6))
	if v.Sign == Minus {
		return n.Sub(n, arith.NewInt(1))
	}
	return n.Add(n, arith.NewInt(1))
}

// Label renders the input with its sign marker, e.g. "5P".
func (v Value) Label() string { return v.Input.String() + v.Sign.Suffix() }

func (v Value) String() string { return v.Input.String() + v.Sign.String() }

// FactorPair holds F1*F2 = N with F1 <= F2.
type FactorPair struct {
	F1, F2 *arith.Int
}

// Progression is three squares X < Y < Z with Y-X = Z-Y = D.
type Progression struct {
	X, Y, Z, D *arith.Int
}

func (p Progression) String() string {
	return fmt.Sprintf("%s, %s, %s | %s", p.X, p.Y, p.Z, p.D)
}

// Grid holds the nine cells s1..s9 row-major.
type Grid [9]*arith.Int

// Center is s5, the shared middle square.
func (g Grid) Center() *arith.Int { return g[4] }

// Derived returns s2, s4, s6, s8: the cells not squares by construction.
func (g Grid) Derived() [4]*arith.Int { return [4]*arith.Int{g[1], g[3], g[5], g[7]} }

// String lays the grid out as "s1 s2 s3 | s4 s5 s6 | s7 s8 s9".
func (g Grid) String() string {
	var b strings.Builder
	for i, c := range g {
		if i > 0 {
			if i%3 == 0 {
				b.WriteString(" | ")
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// Evaluation is the classified outcome of one progression pair.
type Evaluation struct {
	Grid Grid
	// Squares flags s2, s4, s6, s8.
	Squares    [4]bool
	Count      int
	Sum, Diff  *arith.Int
	Recurrence Class
}

// Classes lists the reports this evaluation produces, in emission order.
func (e Evaluation) Classes(threshold int) []Class {
	var out []Class
	if e.Count > threshold {
		out = append(out, ClassPerfectSquares)
	}
	if e.Recurrence != ClassNone {
		out = append(out, e.Recurrence)
	}
	return out
}

// SquareMask renders the square flags as "1 a 1 | b 1 c | 1 d 1".
func (e Evaluation) SquareMask() string {
	f := func(ok bool) int {
		if ok {
			return 1
		}
		return 0
	}
	return fmt.Sprintf("1 %d 1 | %d 1 %d | 1 %d 1",
		f(e.Squares[0]), f(e.Squares[1]), f(e.Squares[2]), f(e.Squares[3]))
}

// Find is a reported grid ready to persist.
type Find struct {
	Value         Value
	Number        *arith.Int
	NumberSquared *arith.Int
	Class         Class
	Evaluation    Evaluation
	// Seq counts reports for the same value, starting at 1.
	Seq int
}

// Name is the artifact base name: <tag>,<count>,<label>,<seq>.result
func (f *Find) Name() string {
	return fmt.Sprintf("%s,%d,%s,%d.result", f.Class.Tag(), f.Evaluation.Count, f.Value.Label(), f.Seq)
}

// FindMeta is a lightweight ledger listing entry.
type FindMeta struct {
	RunID     string `json:"runId"`
	Label     string `json:"label"`
	Number    string `json:"number"`
	Class     string `json:"class"`
	Count     int    `json:"count"`
	Seq       int    `json:"seq"`
	Artifact  string `json:"artifact"`
	Grid      string `json:"grid"`
	CreatedAt int64  `json:"createdAt"`
}
