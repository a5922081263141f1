package domain

import "fmt"

// Sign selects 6k+1 or 6k-1 for a generator value.
type Sign int

const (
	Plus Sign = iota
	Minus
)

// Suffix is the artifact-name marker for the sign.
func (s Sign) Suffix() string {
	if s == Minus {
		return "M"
	}
	return "P"
}

func (s Sign) String() string {
	if s == Minus {
		return "-"
	}
	return "+"
}

// Class labels why a candidate grid was reported.
type Class int

const (
	ClassNone           Class = iota
	ClassPerfectSquares       // more perfect-square cells than the threshold
	ClassHeureka              // both sum and diff recur as distances
	ClassSemiHeureka1         // only sum recurs
	ClassSemiHeureka2         // only diff recurs
)

var classTags = map[Class]string{
	ClassPerfectSquares: "ps",
	ClassHeureka:        "fh",
	ClassSemiHeureka1:   "sh1",
	ClassSemiHeureka2:   "sh2",
}

// Tag is the short name used in artifact file names.
func (c Class) Tag() string { return classTags[c] }

func (c Class) String() string {
	switch c {
	case ClassPerfectSquares:
		return "perfect-squares"
	case ClassHeureka:
		return "heureka"
	case ClassSemiHeureka1:
		return "semi-heureka-1"
	case ClassSemiHeureka2:
		return "semi-heureka-2"
	default:
		return "none"
	}
}

// ParseClass maps an artifact tag back to its Class.
func ParseClass(tag string) (Class, error) {
	for c, t := range classTags {
		if t == tag {
			return c, nil
		}
	}
	return ClassNone, fmt.Errorf("unknown class tag %q", tag)
}

// Line identifies one of the eight sums of a 3x3 grid.
type Line int

const (
	Row1 Line = iota
	Row2
	Row3
	Col1
	Col2
	Col3
	Diag
	AntiDiag
)

// Cells returns the row-major cell indexes on the line.
func (l Line) Cells() [3]int {
	switch l {
	case Row1:
		return [3]int{0, 1, 2}
	case Row2:
		return [3]int{3, 4, 5}
	case Row3:
		return [3]int{6, 7, 8}
	case Col1:
		return [3]int{0, 3, 6}
	case Col2:
		return [3]int{1, 4, 7}
	case Col3:
		return [3]int{2, 5, 8}
	case Diag:
		return [3]int{0, 4, 8}
	default:
		return [3]int{2, 4, 6}
	}
}

// Lines lists every line in a fixed order.
var Lines = [...]Line{Row1, Row2, Row3, Col1, Col2, Col3, Diag, AntiDiag}
