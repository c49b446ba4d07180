package agency

import (
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultCurrency is the currency of a fresh installation.
const DefaultCurrency = "INR"

// Money represents a monetary value in a given currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates Money from any numeric value.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	}
	return decimal.Zero
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String formats the value with the currency symbol and separators, e.g.
// "$1,250.00". Rupees use the Indian grouping, e.g. "₹1,00,000.00".
func (m Money) String() string {
	cur := m.currency()
	minor := m.value.Shift(int32(cur.Fraction)).Round(0).IntPart()
	if cur.Code == money.INR {
		return formatLakh(cur, minor)
	}
	return cur.Formatter().Format(minor)
}

// formatLakh formats an amount of minor units like money.Formatter does, but
// groups the integer part by the last three digits then by pairs.
func formatLakh(cur money.Currency, minor int64) string {
	sa := strconv.FormatInt(minor, 10)
	sa = strings.TrimPrefix(sa, "-")
	if len(sa) <= cur.Fraction {
		sa = strings.Repeat("0", cur.Fraction-len(sa)+1) + sa
	}
	units, frac := sa[:len(sa)-cur.Fraction], sa[len(sa)-cur.Fraction:]

	if cur.Thousand != "" && len(units) > 3 {
		head, groups := units[:len(units)-3], []string{units[len(units)-3:]}
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		units = strings.Join(append([]string{head}, groups...), cur.Thousand)
	}
	if cur.Fraction > 0 {
		units += cur.Decimal + frac
	}
	sa = strings.Replace(cur.Template, "1", units, 1)
	sa = strings.Replace(sa, "$", cur.Grapheme, 1)
	if minor < 0 {
		sa = "-" + sa
	}
	return sa
}

// Plain formats the value with the currency code instead of its symbol, e.g. "INR 1250.00".
// It is meant for outputs that cannot render currency symbols.
func (m Money) Plain() string {
	return m.cur + " " + m.value.StringFixed(int32(m.currency().Fraction))
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) IsZero() bool             { return m.value.IsZero() }

// KnownCurrency reports whether code is an ISO 4217 code known to the formatter.
func KnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
