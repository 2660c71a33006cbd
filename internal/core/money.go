// Package core holds the domain model shared by the storage, service and
// HTTP layers: entities, money handling and the error taxonomy.
//
// Amounts are stored internally as integer cents so that sums, balance
// updates and percentage math stay exact. Conversion to and from the
// 2-decimal representation used on the wire goes through
// github.com/shopspring/decimal with half-up rounding.
package core

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a signed monetary value with two fractional digits, held as
// integer cents. Positive values are income, negative values are expenses.
type Amount struct {
	Cents int64
}

var centsFactor = decimal.NewFromInt(100)

// ParseAmount converts a decimal string to an Amount, rounding the third
// fractional digit half-up (away from zero). It fails closed: anything that
// is not a plain finite decimal number (NaN, Infinity, exponents of
// non-numeric garbage) is rejected.
//
//	ParseAmount("200.005") -> 200.01
//	ParseAmount("-3.5")    -> -3.50
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, Validationf("amount must be a valid number")
	}
	return amountFromDecimal(d), nil
}

func amountFromDecimal(d decimal.Decimal) Amount {
	return Amount{Cents: d.Round(2).Mul(centsFactor).IntPart()}
}

// Decimal returns the exact 2-decimal representation of the amount.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.Cents, -2)
}

// Abs returns the magnitude of the amount.
func (a Amount) Abs() Amount {
	if a.Cents < 0 {
		return Amount{Cents: -a.Cents}
	}
	return a
}

// Add returns a + b. Integer cents never accumulate rounding drift.
func (a Amount) Add(b Amount) Amount {
	return Amount{Cents: a.Cents + b.Cents}
}

func (a Amount) String() string {
	return a.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a bare JSON number with two decimal
// places, e.g. 200.01.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
// Parsing operates on the raw token, so values like 200.005 round correctly
// instead of passing through float64 first.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return Validationf("amount must be a valid number")
	}
	if data[0] == '"' {
		var err error
		data, err = unquote(data)
		if err != nil {
			return err
		}
	}
	parsed, err := ParseAmount(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func unquote(data []byte) ([]byte, error) {
	if len(data) < 2 || data[len(data)-1] != '"' {
		return nil, Validationf("amount must be a valid number")
	}
	return data[1 : len(data)-1], nil
}

// Percentage returns part/whole*100 as a float, or 0 when whole is zero.
// Aggregation output never divides by zero and never yields null.
func Percentage(part, whole Amount) float64 {
	if whole.Cents == 0 {
		return 0
	}
	v, _ := decimal.New(part.Cents, 0).
		Div(decimal.New(whole.Cents, 0)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return v
}

var _ fmt.Stringer = Amount{}
