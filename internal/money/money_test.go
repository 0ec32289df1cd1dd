package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse(" 30000 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(30000)))

	d, err = Parse("-5000")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(-5000)))

	d, err = Parse("12.50")
	require.NoError(t, err)
	assert.Equal(t, "12.50", Wire(d))

	// Trailing zeros beyond the scale are still exact.
	_, err = Parse("1.500")
	require.NoError(t, err)

	_, err = Parse("1.005")
	assert.Error(t, err)

	_, err = Parse("abc")
	assert.Error(t, err)
}

func TestWire(t *testing.T) {
	assert.Equal(t, "46000.00", Wire(decimal.NewFromInt(46000)))
	assert.Equal(t, "-2000.00", Wire(decimal.NewFromInt(-2000)))
	assert.Equal(t, "0.00", Wire(Zero))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "Rp 0"},
		{"500", "Rp 500"},
		{"8000", "Rp 8.000"},
		{"30000", "Rp 30.000"},
		{"1234567", "Rp 1.234.567"},
		{"12500.5", "Rp 12.500,50"},
		{"-5000", "-Rp 5.000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(MustParse(tt.in)))
		})
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "No extra cost", FormatDelta(Zero))
	assert.Equal(t, "+Rp 8.000", FormatDelta(MustParse("8000")))
	assert.Equal(t, "-Rp 5.000", FormatDelta(MustParse("-5000")))
	assert.Equal(t, "+Rp 2.500,50", FormatDelta(MustParse("2500.50")))
	assert.Equal(t, "-Rp 0,05", FormatDelta(MustParse("-0.05")))
}
