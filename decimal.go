// SPDX-FileCopyrightText: 2023 The binio Authors
//
// SPDX-License-Identifier: MIT

package binio

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// MaxDecimalScale is the largest power-of-ten divisor a Decimal can carry.
const MaxDecimalScale = 28

// Decimal is a 128-bit fixed-scale decimal: a 96-bit unsigned mantissa held
// as three 32-bit words, a scale selecting a power-of-ten divisor, and a sign.
// The value is (-1)^sign * mantissa / 10^scale.
//
// This is the canonical wire layout; two Decimals are equal only when their
// words match bit for bit, so 1.0 and 1.00 are distinct representations of
// the same number.
type Decimal struct {
	Lo, Mid, Hi uint32
	Scale       uint8
	Negative    bool
}

// NewDecimal builds a Decimal from its mantissa words, sign and scale.
func NewDecimal(lo, mid, hi uint32, negative bool, scale uint8) (Decimal, error) {
	if scale > MaxDecimalScale {
		return Decimal{}, errors.Errorf("decimal scale %d out of range", scale)
	}
	return Decimal{Lo: lo, Mid: mid, Hi: hi, Scale: scale, Negative: negative}, nil
}

// flags packs the sign and scale into the fourth wire word.
func (d Decimal) flags() uint32 {
	f := uint32(d.Scale) << 16
	if d.Negative {
		f |= 1 << 31
	}
	return f
}

// decimalFromWords rebuilds a Decimal from its four wire words.
func decimalFromWords(lo, mid, hi, flags uint32) (Decimal, error) {
	if flags&^uint32(1<<31|0x00ff0000) != 0 {
		return Decimal{}, errors.Errorf("invalid decimal flags %#08x", flags)
	}
	scale := uint8(flags >> 16)
	if scale > MaxDecimalScale {
		return Decimal{}, errors.Errorf("decimal scale %d out of range", scale)
	}
	return Decimal{Lo: lo, Mid: mid, Hi: hi, Scale: scale, Negative: flags&(1<<31) != 0}, nil
}

func (d Decimal) mantissa() *big.Int {
	m := new(big.Int).SetUint64(uint64(d.Hi))
	m.Lsh(m, 32)
	m.Or(m, new(big.Int).SetUint64(uint64(d.Mid)))
	m.Lsh(m, 32)
	return m.Or(m, new(big.Int).SetUint64(uint64(d.Lo)))
}

// Rat returns the exact value as a big rational.
func (d Decimal) Rat() *big.Rat {
	num := d.mantissa()
	if d.Negative {
		num.Neg(num)
	}
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Scale)), nil)
	return new(big.Rat).SetFrac(num, den)
}

// Float64 returns the nearest float64. The conversion is lossy for most
// decimals; the wire codec never uses it.
func (d Decimal) Float64() float64 {
	f, _ := d.Rat().Float64()
	return f
}

func (d Decimal) String() string {
	digits := d.mantissa().String()
	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	if d.Scale == 0 {
		b.WriteString(digits)
		return b.String()
	}
	if pad := int(d.Scale) + 1 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	cut := len(digits) - int(d.Scale)
	b.WriteString(digits[:cut])
	b.WriteByte('.')
	b.WriteString(digits[cut:])
	return b.String()
}

var maxMantissa = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1))

// ParseDecimal parses a plain decimal literal like "-12.50". The scale is
// taken from the number of fractional digits, so trailing zeros survive a
// round-trip through String.
func ParseDecimal(s string) (Decimal, error) {
	in := s
	var negative bool
	switch {
	case strings.HasPrefix(in, "-"):
		negative = true
		in = in[1:]
	case strings.HasPrefix(in, "+"):
		in = in[1:]
	}

	intPart, fracPart, _ := strings.Cut(in, ".")
	if intPart == "" && fracPart == "" {
		return Decimal{}, errors.Errorf("invalid decimal %q", s)
	}
	if len(fracPart) > MaxDecimalScale {
		return Decimal{}, errors.Errorf("decimal %q has more than %d fractional digits", s, MaxDecimalScale)
	}

	m, ok := new(big.Int).SetString(zeroIfEmpty(intPart)+fracPart, 10)
	if !ok || m.Sign() < 0 {
		return Decimal{}, errors.Errorf("invalid decimal %q", s)
	}
	if m.Cmp(maxMantissa) > 0 {
		return Decimal{}, errors.Errorf("decimal %q does not fit in 96 bits", s)
	}

	lo64 := m.Uint64()
	hi := new(big.Int).Rsh(m, 64).Uint64()
	return Decimal{
		Lo:       uint32(lo64),
		Mid:      uint32(lo64 >> 32),
		Hi:       uint32(hi),
		Scale:    uint8(len(fracPart)),
		Negative: negative,
	}, nil
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
