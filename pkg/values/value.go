package values

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// Unit fixes the canonical scale of a token kind.
type Unit interface {
	// Scale is the number of fractional digits carried on the wire.
	Scale() int32
	// Symbol is the ticker used in logs and CLI output.
	Symbol() string
}

// HNTUnit is the Helium network token.
type HNTUnit struct{}

func (HNTUnit) Scale() int32   { return 8 }
func (HNTUnit) Symbol() string { return "HNT" }

// HSTUnit is the Helium security token.
type HSTUnit struct{}

func (HSTUnit) Scale() int32   { return 8 }
func (HSTUnit) Symbol() string { return "HST" }

// IOTUnit is the IoT subnetwork token.
type IOTUnit struct{}

func (IOTUnit) Scale() int32   { return 8 }
func (IOTUnit) Symbol() string { return "IOT" }

// MobileUnit is the MOBILE subnetwork token.
type MobileUnit struct{}

func (MobileUnit) Scale() int32   { return 8 }
func (MobileUnit) Symbol() string { return "MOBILE" }

// TokenUnit is a generic 8-decimal token amount.
type TokenUnit struct{}

func (TokenUnit) Scale() int32   { return 8 }
func (TokenUnit) Symbol() string { return "TOKEN" }

// USDUnit is an oracle price in US dollars.
type USDUnit struct{}

func (USDUnit) Scale() int32   { return 8 }
func (USDUnit) Symbol() string { return "USD" }

// DbiUnit is antenna gain in dBi, carried on the wire in tenths.
type DbiUnit struct{}

func (DbiUnit) Scale() int32   { return 1 }
func (DbiUnit) Symbol() string { return "dBi" }

// Concrete token kinds.
type (
	HNT    = Value[HNTUnit]
	HST    = Value[HSTUnit]
	IOT    = Value[IOTUnit]
	Mobile = Value[MobileUnit]
	Token  = Value[TokenUnit]
	USD    = Value[USDUnit]
	Dbi    = Value[DbiUnit]
)

// Value is an exact decimal amount of unit U. The zero Value is zero.
type Value[U Unit] struct {
	d decimal.Decimal
}

// Scale returns the canonical scale of U.
func Scale[U Unit]() int32 {
	var u U
	return u.Scale()
}

// Parse parses standard ("1.6") or scientific ("16e-1") decimal notation.
// It fails with ErrInvalidScale when the parsed value carries more fractional
// digits than U allows; precision is never silently truncated.
func Parse[U Unit](s string) (Value[U], error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value[U]{}, fmt.Errorf("%w %q: %v", ErrInvalidDecimal, s, err)
	}
	return fromDecimal[U](d, s)
}

// New wraps an existing decimal, validating its scale against U.
func New[U Unit](d decimal.Decimal) (Value[U], error) {
	return fromDecimal[U](d, d.String())
}

func fromDecimal[U Unit](d decimal.Decimal, input string) (Value[U], error) {
	max := Scale[U]()
	if scale := decimalScale(d); scale > max {
		return Value[U]{}, &ScaleError{Input: input, Scale: scale, Max: max}
	}
	return Value[U]{d: d}, nil
}

// FromWire converts a wire integer (bones) into a Value. The conversion only
// moves the decimal point, so it is exact for every uint64.
func FromWire[U Unit](bones uint64) Value[U] {
	return Value[U]{d: decimal.NewFromBigInt(new(big.Int).SetUint64(bones), -Scale[U]())}
}

// Wire converts the value to its wire integer (value * 10^scale), rounding to
// the nearest integer. Negative or too large results return ErrOverflow.
func (v Value[U]) Wire() (uint64, error) {
	scaled := v.d.Shift(Scale[U]()).Round(0)
	if scaled.IsNegative() {
		return 0, fmt.Errorf("%w: %s is negative", ErrOverflow, v.d.String())
	}
	n := scaled.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("%w: %s exceeds uint64", ErrOverflow, v.d.String())
	}
	return n.Uint64(), nil
}

// Scalar returns 10^scale, the factor between the decimal and wire forms.
func (v Value[U]) Scalar() decimal.Decimal {
	return decimal.New(1, Scale[U]())
}

// Decimal returns the underlying decimal.
func (v Value[U]) Decimal() decimal.Decimal {
	return v.d
}

// Symbol returns the ticker of U.
func (v Value[U]) Symbol() string {
	var u U
	return u.Symbol()
}

// String returns the canonical decimal form with trailing zeros trimmed.
func (v Value[U]) String() string {
	return v.d.String()
}

// Equal compares by numeric value, so 1.6 equals 1.60.
func (v Value[U]) Equal(o Value[U]) bool {
	return v.d.Equal(o.d)
}

// Cmp returns -1, 0 or +1 depending on whether v is less than, equal to or
// greater than o.
func (v Value[U]) Cmp(o Value[U]) int {
	return v.d.Cmp(o.d)
}

// LessThan reports whether v < o.
func (v Value[U]) LessThan(o Value[U]) bool {
	return v.d.LessThan(o.d)
}

// IsZero reports whether the value is zero.
func (v Value[U]) IsZero() bool {
	return v.d.IsZero()
}

// Add returns v + o. The sum of two valid values is always valid.
func (v Value[U]) Add(o Value[U]) Value[U] {
	return Value[U]{d: v.d.Add(o.d)}
}

// MarshalJSON encodes the value as its wire integer.
func (v Value[U]) MarshalJSON() ([]byte, error) {
	bones, err := v.Wire()
	if err != nil {
		return nil, err
	}
	return strconv.AppendUint(nil, bones, 10), nil
}

// UnmarshalJSON decodes a wire integer. A JSON null leaves the value unchanged.
func (v *Value[U]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	bones, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("%w: wire amount %s", ErrOverflow, data)
		}
		return fmt.Errorf("%w: wire amount %s", ErrInvalidDecimal, data)
	}
	*v = FromWire[U](bones)
	return nil
}

// decimalScale is the number of fractional digits d carries.
func decimalScale(d decimal.Decimal) int32 {
	if exp := d.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}
