// Package values provides exact fixed-point token amounts for the Helium
// explorer API.
//
// Amounts travel over the wire as plain unsigned integers ("bones", the value
// multiplied by 10^scale) and are held in memory as arbitrary-precision
// decimals, so no floating-point rounding is ever introduced.
//
// Every token kind is the same generic type parameterized by a Unit that fixes
// its canonical scale:
//
//	hnt := values.FromWire[values.HNTUnit](160000000)
//	fmt.Println(hnt) // 1.6
//
//	v, err := values.Parse[values.HNTUnit]("1.6")
//	bones, err := v.Wire() // 160000000
//
// Parsing text with more fractional digits than the unit's scale fails with
// ErrInvalidScale. Converting to the wire form fails with ErrOverflow instead
// of panicking when the result does not fit an unsigned 64-bit integer.
package values
