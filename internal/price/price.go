// Package price normalizes monetary values of unknown representation. The
// catalog feed does not guarantee a price type: values arrive as numbers,
// numeric strings, or strings decorated with a currency symbol and grouping
// separators. Every consumer (cart totals, display, sorting) goes through
// this package so malformed input degrades the same way everywhere — to a
// zero value with an explicit validity flag, never to a panic or a NaN
// leaking into a total.
package price

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Error strings surfaced in Normalized.Err.
const (
	errMissing     = "missing price value"
	errBadFormat   = "unparsable price format"
	errNotFinite   = "non-finite price value"
	errUnsupported = "unsupported price type"
)

// Normalized is the result of normalizing a raw price. Value is always
// finite and non-negative. Valid reports whether the raw input parsed;
// invalid input normalizes to Value 0 rather than failing the caller.
type Normalized struct {
	Value    float64
	Valid    bool
	Original any
	Err      string
}

// Line pairs a raw price with a quantity for aggregation.
type Line struct {
	Price    any
	Quantity int
}

// Total is an aggregate price result. Valid is false when any contributing
// price failed normalization, even though Value still includes the lines
// that did parse.
type Total struct {
	Value     float64
	Formatted string
	Valid     bool
}

// Options controls Format output.
type Options struct {
	Symbol   string // currency symbol, default "$"
	Fallback string // returned for invalid input, default "$0.00"
}

func (o Options) withDefaults() Options {
	if o.Symbol == "" {
		o.Symbol = "$"
	}
	if o.Fallback == "" {
		o.Fallback = "$0.00"
	}
	return o
}

// currency symbols stripped before parsing string prices.
var symbols = []string{"$", "€", "£", "¥", "₹", "USD", "EUR", "GBP"}

// Normalize converts a raw price into a definite non-negative amount.
// Negative numeric input clamps to 0 but stays valid; everything that fails
// to parse comes back as Value 0, Valid false.
func Normalize(raw any) Normalized {
	switch v := raw.(type) {
	case nil:
		return Normalized{Valid: false, Err: errMissing}
	case float64:
		return fromFloat(raw, v)
	case float32:
		return fromFloat(raw, float64(v))
	case int:
		return fromFloat(raw, float64(v))
	case int32:
		return fromFloat(raw, float64(v))
	case int64:
		return fromFloat(raw, float64(v))
	case json.Number:
		return fromString(raw, v.String())
	case string:
		return fromString(raw, v)
	default:
		return Normalized{Original: raw, Err: errUnsupported}
	}
}

func fromFloat(raw any, v float64) Normalized {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Normalized{Original: raw, Err: errNotFinite}
	}
	if v < 0 {
		v = 0
	}
	return Normalized{Value: roundCents(v), Valid: true, Original: raw}
}

func fromString(raw any, s string) Normalized {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return Normalized{Original: raw, Err: errMissing}
	}
	for _, sym := range symbols {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	// Grouping separators. Commas only: a decimal comma ("29,99") is not a
	// format the upstream feed produces.
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Normalized{Original: raw, Err: errBadFormat}
	}
	if v < 0 {
		v = 0
	}
	return Normalized{Value: roundCents(v), Valid: true, Original: raw}
}

// Format renders a raw price as currency text with two decimals and
// thousands grouping. It never fails: invalid input yields the fallback.
func Format(raw any) string {
	return FormatWith(raw, Options{})
}

// FormatWith is Format with explicit options.
func FormatWith(raw any, opts Options) string {
	opts = opts.withDefaults()
	n := Normalize(raw)
	if !n.Valid {
		return opts.Fallback
	}
	return opts.Symbol + group(strconv.FormatFloat(n.Value, 'f', 2, 64))
}

// group inserts comma separators into the integer part of a fixed-point
// decimal string ("1234567.80" -> "1,234,567.80").
func group(s string) string {
	intPart, frac, _ := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return intPart + "." + frac
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + "." + frac
}

// Sum aggregates price*quantity over all lines. Lines with a negative or
// invalid quantity contribute 0. Lines whose price fails normalization also
// contribute 0 and flip Valid to false, without aborting the sum.
func Sum(lines []Line) Total {
	var total float64
	valid := true
	for _, l := range lines {
		n := Normalize(l.Price)
		if !n.Valid {
			valid = false
			continue
		}
		qty := l.Quantity
		if qty < 0 {
			qty = 0
		}
		total += n.Value * float64(qty)
	}
	total = roundCents(total)
	return Total{Value: total, Formatted: Format(total), Valid: valid}
}

// Multiply computes price*quantity with the same clamping policy as Sum.
func Multiply(raw any, quantity int) Total {
	n := Normalize(raw)
	if quantity < 0 {
		quantity = 0
	}
	v := roundCents(n.Value * float64(quantity))
	return Total{Value: v, Formatted: Format(v), Valid: n.Valid}
}

// Compare orders two raw prices. Invalid prices sort as zero.
func Compare(a, b any) int {
	av := Normalize(a).Value
	bv := Normalize(b).Value
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

// Range renders a "min - max" label, collapsing to a single value when the
// two normalize to the same amount.
func Range(min, max any) string {
	lo := Format(min)
	hi := Format(max)
	if Compare(min, max) == 0 {
		return lo
	}
	return fmt.Sprintf("%s - %s", lo, hi)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
