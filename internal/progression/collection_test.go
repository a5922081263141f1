package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/magicsquares/internal/arith"
)

func ins(c *Collection, x, y, z int64) bool {
	return c.Insert(arith.NewInt(x), arith.NewInt(y), arith.NewInt(z))
}

func distances(c *Collection) []string {
	var out []string
	for _, p := range c.All() {
		out = append(out, p.D.String())
	}
	return out
}

func xs(c *Collection) []string {
	var out []string
	for _, p := range c.All() {
		out = append(out, p.X.String())
	}
	return out
}

func TestInsertKeepsDistanceOrder(t *testing.T) {
	c := New()
	require.True(t, ins(c, 2209, 4225, 6241)) // d=2016
	require.True(t, ins(c, 169, 4225, 8281))  // d=4056
	require.True(t, ins(c, 1225, 4225, 7225)) // d=3000
	require.True(t, ins(c, 529, 4225, 7921))  // d=3696
	require.True(t, ins(c, 4201, 4225, 4249)) // d=24, new head

	assert.Equal(t, []string{"24", "2016", "3000", "3696", "4056"}, distances(c))
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, "4201", c.At(0).X.String())
}

func TestInsertDuplicateIsIgnored(t *testing.T) {
	c := New()
	ins(c, 1, 25, 49)
	ins(c, 289, 625, 961)
	ins(c, 25, 625, 1225)
	before := xs(c)

	assert.False(t, ins(c, 289, 625, 961))
	assert.False(t, ins(c, 25, 625, 1225))
	assert.Equal(t, before, xs(c))
	assert.Equal(t, 3, c.Len())
}

func TestInsertDuplicateKeyedOnX(t *testing.T) {
	c := New()
	ins(c, 10, 20, 30)  // d=10
	ins(c, 40, 70, 100) // d=30
	// Same x as the tail but a different shape: still treated as a duplicate.
	assert.False(t, ins(c, 40, 90, 140))
	assert.Equal(t, []string{"10", "30"}, distances(c))
}

func TestInsertEqualDistanceGoesFirst(t *testing.T) {
	c := New()
	ins(c, 10, 20, 30)   // d=10
	ins(c, 50, 70, 90)   // d=20
	ins(c, 80, 100, 120) // d=20, placed before the existing d=20 entry
	assert.Equal(t, []string{"10", "80", "50"}, xs(c))
}

func TestInsertEqualHeadDistance(t *testing.T) {
	c := New()
	ins(c, 10, 20, 30)
	// Equal to the head distance: not a new head, lands right after it.
	ins(c, 5, 15, 25)
	assert.Equal(t, []string{"10", "5"}, xs(c))
}

func TestHasDistanceAndClear(t *testing.T) {
	c := New()
	ins(c, 1, 25, 49)
	ins(c, 289, 625, 961)
	assert.True(t, c.HasDistance(arith.NewInt(24)))
	assert.True(t, c.HasDistance(arith.NewInt(336)))
	assert.False(t, c.HasDistance(arith.NewInt(100)))
	assert.False(t, c.HasDistance(arith.NewInt(-24)))

	c.Clear()
	assert.Zero(t, c.Len())
	assert.False(t, c.HasDistance(arith.NewInt(24)))
	ins(c, 1, 25, 49)
	assert.Equal(t, 1, c.Len())
}

func TestInsertCopiesArguments(t *testing.T) {
	c := New()
	x, y, z := arith.NewInt(1), arith.NewInt(25), arith.NewInt(49)
	c.Insert(x, y, z)
	x.SetInt64(7)
	y.SetInt64(8)
	assert.Equal(t, "1", c.At(0).X.String())
	assert.Equal(t, "24", c.At(0).D.String())
}
