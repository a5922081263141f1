// Package progression holds the ordered set of arithmetic progressions of squares
// found for one generator number.
package progression

import (
	"iter"
	"slices"

	"svw.info/magicsquares/internal/arith"
	"svw.info/magicsquares/internal/domain"
)

// Collection is sorted ascending by distance and holds at most one entry per X.
// A Collection is owned by a single search and is not safe for concurrent use.
type Collection struct {
	items []domain.Progression
}

func New() *Collection { return &Collection{} }

// Insert adds (x, y, z) with distance y-x. The caller guarantees x < y < z and
// y-x = z-y; neither is checked. An entry whose X is already present is dropped.
// Reports whether the collection changed.
func (c *Collection) Insert(x, y, z *arith.Int) bool {
	d := new(arith.Int).Sub(y, x)
	p := domain.Progression{
		X: new(arith.Int).Set(x),
		Y: new(arith.Int).Set(y),
		Z: new(arith.Int).Set(z),
		D: d,
	}

	if len(c.items) == 0 || d.Cmp(c.items[0].D) < 0 {
		c.items = slices.Insert(c.items, 0, p)
		return true
	}

	// Walk forward looking for the first successor with a distance >= d.
	// Duplicates are only detected on the entries visited before that point.
	for i := 0; i < len(c.items); i++ {
		if x.Cmp(c.items[i].X) == 0 {
			return false
		}
		if i == len(c.items)-1 {
			c.items = append(c.items, p)
			return true
		}
		next := c.items[i+1]
		if x.Cmp(next.X) == 0 {
			return false
		}
		if next.D.Cmp(d) >= 0 {
			c.items = slices.Insert(c.items, i+1, p)
			return true
		}
	}
	return false
}

func (c *Collection) Len() int { return len(c.items) }

// At returns the i-th progression in distance order.
func (c *Collection) At(i int) domain.Progression { return c.items[i] }

// All iterates the progressions in distance order.
func (c *Collection) All() iter.Seq2[int, domain.Progression] {
	return func(yield func(int, domain.Progression) bool) {
		for i, p := range c.items {
			if !yield(i, p) {
				return
			}
		}
	}
}

// HasDistance reports whether any progression has distance d.
func (c *Collection) HasDistance(d *arith.Int) bool {
	_, found := slices.BinarySearchFunc(c.items, d, func(p domain.Progression, t *arith.Int) int {
		return p.D.Cmp(t)
	})
	return found
}

// Clear drops every progression, keeping the backing array for reuse.
func (c *Collection) Clear() {
	clear(c.items)
	c.items = c.items[:0]
}
