package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtilda/chipin/internal/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"12.34", 1234},
		{"0.01", 1},
		{"9", 900},
		{"9.0", 900},
		{"0", 0},
		{"-3.50", -350},
		{"1000000.00", 100000000},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := money.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := money.Parse("abc")
	assert.Error(t, err)

	_, err = money.Parse("1.005")
	assert.ErrorIs(t, err, money.ErrTooPrecise)

	_, err = money.Parse("99999999999999999999.00")
	assert.ErrorIs(t, err, money.ErrOutOfRange)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.34", money.Format(1234))
	assert.Equal(t, "0.01", money.Format(1))
	assert.Equal(t, "0.00", money.Format(0))
	assert.Equal(t, "-3.50", money.Format(-350))
}

func TestSplitEqually(t *testing.T) {
	assert.Equal(t, []int64{300, 300, 300}, money.SplitEqually(900, 3))
	assert.Equal(t, []int64{334, 333, 333}, money.SplitEqually(1000, 3))
	assert.Equal(t, []int64{1}, money.SplitEqually(1, 1))
	assert.Nil(t, money.SplitEqually(100, 0))

	// Shares always sum back to the total.
	for _, n := range []int{1, 2, 3, 7, 11} {
		shares := money.SplitEqually(9999, n)
		var sum int64
		for _, s := range shares {
			sum += s
		}
		assert.Equal(t, int64(9999), sum)
	}
}
