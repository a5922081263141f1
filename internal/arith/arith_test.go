package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSquare(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"1", true},
		{"2", false},
		{"49", true},
		{"50", false},
		{"-4", false},
		{"-1", false},
		{"1000000000000000000000000000000000000", true},
		{"1000000000000000000000000000000000001", false},
		{"152415787532388367504942236884722755800955129", true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			x, ok := Parse(tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.want, IsSquare(x))
		})
	}
}

func TestSqrt(t *testing.T) {
	assert.Equal(t, "2", Sqrt(NewInt(5)).String())
	assert.Equal(t, "8", Sqrt(NewInt(65)).String())
	assert.Equal(t, "0", Sqrt(NewInt(0)).String())
	assert.Equal(t, "0", Sqrt(NewInt(-9)).String())
}

func TestParse(t *testing.T) {
	for _, bad := range []string{"", "+5", "abc", "5x", "1.5"} {
		_, ok := Parse(bad)
		assert.False(t, ok, "Parse(%q) should fail", bad)
	}
	x, ok := Parse("-42")
	require.True(t, ok)
	assert.Equal(t, "-42", x.String())
}
