package price

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNumbers(t *testing.T) {
	tests := []struct {
		name  string
		raw   any
		value float64
		valid bool
	}{
		{"plain float", 15.5, 15.5, true},
		{"integer", 42, 42, true},
		{"zero", 0.0, 0, true},
		{"negative clamps to zero", -3.25, 0, true},
		{"NaN", math.NaN(), 0, false},
		{"positive infinity", math.Inf(1), 0, false},
		{"negative infinity", math.Inf(-1), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(tt.raw)
			assert.Equal(t, tt.value, n.Value)
			assert.Equal(t, tt.valid, n.Valid)
		})
	}
}

func TestNormalizeStrings(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		value float64
		valid bool
	}{
		{"numeric string", "29.99", 29.99, true},
		{"currency symbol", "$49.99", 49.99, true},
		{"symbol and grouping", "$1,299.00", 1299, true},
		{"euro symbol", "€15.50", 15.5, true},
		{"currency code", "USD 20", 20, true},
		{"whitespace", "  12.00  ", 12, true},
		{"negative string clamps", "-5.00", 0, true},
		{"garbage", "not-a-price", 0, false},
		{"empty", "", 0, false},
		{"only symbol", "$", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(tt.raw)
			assert.Equal(t, tt.value, n.Value)
			assert.Equal(t, tt.valid, n.Valid)
		})
	}
}

func TestNormalizeMissingAndUnsupported(t *testing.T) {
	n := Normalize(nil)
	assert.False(t, n.Valid)
	assert.Zero(t, n.Value)
	assert.NotEmpty(t, n.Err)

	n = Normalize(struct{}{})
	assert.False(t, n.Valid)
	assert.Zero(t, n.Value)
}

func TestNormalizeNeverNegative(t *testing.T) {
	inputs := []any{nil, -1, -99.5, "-42", "$-3.00", math.NaN(), "junk", 17.25}
	for _, raw := range inputs {
		require.GreaterOrEqual(t, Normalize(raw).Value, 0.0)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$29.99", Format("29.99"))
	assert.Equal(t, "$1,234.50", Format(1234.5))
	assert.Equal(t, "$1,234,567.80", Format(1234567.8))
	assert.Equal(t, "$0.00", Format("not-a-price"))
	assert.Equal(t, "$0.00", Format(nil))
}

func TestFormatWithOptions(t *testing.T) {
	assert.Equal(t, "€10.00", FormatWith(10, Options{Symbol: "€"}))
	assert.Equal(t, "n/a", FormatWith("bogus", Options{Fallback: "n/a"}))
}

func TestSum(t *testing.T) {
	lines := []Line{
		{Price: "29.99", Quantity: 2},
		{Price: 15.5, Quantity: 1},
	}
	total := Sum(lines)
	assert.Equal(t, 75.48, total.Value)
	assert.True(t, total.Valid)
	assert.Equal(t, "$75.48", total.Formatted)
}

func TestSumInvalidLinesAreNonFatal(t *testing.T) {
	lines := []Line{
		{Price: "19.99", Quantity: 1},
		{Price: "broken", Quantity: 3},
		{Price: nil, Quantity: 2},
	}
	total := Sum(lines)
	assert.Equal(t, 19.99, total.Value)
	assert.False(t, total.Valid)
}

func TestSumClampsBadQuantities(t *testing.T) {
	total := Sum([]Line{
		{Price: 10.0, Quantity: -4},
		{Price: 5.0, Quantity: 2},
	})
	assert.Equal(t, 10.0, total.Value)
	assert.True(t, total.Valid)
}

func TestSumEmpty(t *testing.T) {
	total := Sum(nil)
	assert.Zero(t, total.Value)
	assert.True(t, total.Valid)
	assert.Equal(t, "$0.00", total.Formatted)
}

func TestMultiply(t *testing.T) {
	res := Multiply("29.99", 3)
	assert.Equal(t, 89.97, res.Value)
	assert.True(t, res.Valid)

	res = Multiply(10.0, -2)
	assert.Zero(t, res.Value)

	res = Multiply("junk", 5)
	assert.Zero(t, res.Value)
	assert.False(t, res.Valid)
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, Compare("9.99", 10))
	assert.Equal(t, 1, Compare("$20", "19.99"))
	assert.Equal(t, 0, Compare("15.00", 15.0))
	// invalid sorts as zero
	assert.Equal(t, 0, Compare("junk", nil))
	assert.Equal(t, -1, Compare("junk", "0.01"))
}

func TestRange(t *testing.T) {
	assert.Equal(t, "$10.00 - $20.00", Range(10, 20))
	assert.Equal(t, "$15.00", Range("15.00", 15.0))
}

// TestSumLargeCartIsConsistent runs the aggregate over a large synthetic
// cart and cross-checks it against a line-by-line accumulation.
func TestSumLargeCartIsConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	lines := make([]Line, 1000)
	var want float64
	for i := range lines {
		cents := rng.Intn(100000)
		qty := 1 + rng.Intn(5)
		value := float64(cents) / 100
		lines[i] = Line{Price: value, Quantity: qty}
		want += value * float64(qty)
	}
	total := Sum(lines)
	require.True(t, total.Valid)
	require.InDelta(t, want, total.Value, 0.01)
}
