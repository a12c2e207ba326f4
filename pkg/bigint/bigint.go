// Package bigint implements arbitrary-precision unsigned integers as
// little-endian arrays of fixed-width limbs. Signs are not stored here;
// callers pair a Magnitude with their own sign bit.
package bigint

import (
	"errors"
	"math/bits"
)

// Digit is one limb of a magnitude.
type Digit = uint32

const (
	// DigitBits is the width of one limb. All carry and multiply steps
	// use uint64 intermediates, so the width must stay at most 32.
	DigitBits = 32

	// DigitBytes is the byte size of one limb.
	DigitBytes = DigitBits / 8

	// DefaultMaxSize is the default allocation limit in bytes.
	DefaultMaxSize = 0x10000
)

// MaxSize bounds the byte length of any magnitude. Operations that would
// grow past it fail with ErrSizeExceeded. It is meant to be set once at
// startup; the runtime is single threaded.
var MaxSize uint32 = DefaultMaxSize

var (
	ErrSizeExceeded   = errors.New("bigint: maximum size exceeded")
	ErrDivisionByZero = errors.New("bigint: division by zero")
	ErrSyntax         = errors.New("bigint: invalid digit string")
)

// Magnitude is the unsigned value of a big integer. The least significant
// limb comes first. Canonical form has no leading zero limb; the value
// zero is the unique empty magnitude. Magnitudes are immutable once
// returned from this package.
type Magnitude struct {
	digits []Digit
}

// Zero is the shared canonical zero magnitude. Every operation that
// produces zero returns this exact instance.
var Zero = &Magnitude{}

// New allocates a zeroed magnitude of size bytes. size must be a multiple
// of the limb width.
func New(size uint32) (*Magnitude, error) {
	if size%DigitBytes != 0 {
		panic("bigint: size must be a multiple of the limb width")
	}
	if size > MaxSize {
		return nil, ErrSizeExceeded
	}
	return &Magnitude{digits: make([]Digit, size/DigitBytes)}, nil
}

// Size returns the byte length of the magnitude.
func (m *Magnitude) Size() uint32 {
	return uint32(len(m.digits)) * DigitBytes
}

// Len returns the limb count of the magnitude.
func (m *Magnitude) Len() int {
	return len(m.digits)
}

func (m *Magnitude) IsZero() bool {
	return len(m.digits) == 0
}

// Clone returns a copy with identical digits. Zero stays shared.
func (m *Magnitude) Clone() *Magnitude {
	if m.IsZero() {
		return Zero
	}
	digits := make([]Digit, len(m.digits))
	copy(digits, m.digits)
	return &Magnitude{digits: digits}
}

// trim strips leading zero limbs, collapsing a zero result to the shared
// Zero instance. Only called on magnitudes this package still owns.
func (m *Magnitude) trim() *Magnitude {
	digits := m.digits
	for len(digits) > 0 && digits[len(digits)-1] == 0 {
		digits = digits[:len(digits)-1]
	}
	if len(digits) == 0 {
		return Zero
	}
	m.digits = digits
	return m
}

// Extend returns a copy of m one limb wider, with digit as the new most
// significant limb.
func (m *Magnitude) Extend(digit Digit) (*Magnitude, error) {
	if m.Size()+DigitBytes > MaxSize {
		return nil, ErrSizeExceeded
	}
	digits := make([]Digit, len(m.digits)+1)
	copy(digits, m.digits)
	digits[len(digits)-1] = digit
	return (&Magnitude{digits: digits}).trim(), nil
}

// Compare returns -1, 0 or 1 as a is less than, equal to or greater than
// b by unsigned order. Canonical form makes the limb count the primary key.
func Compare(a, b *Magnitude) int {
	if len(a.digits) != len(b.digits) {
		if len(a.digits) < len(b.digits) {
			return -1
		}
		return 1
	}
	for i := len(a.digits) - 1; i >= 0; i-- {
		if a.digits[i] != b.digits[i] {
			if a.digits[i] < b.digits[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// MulDigit multiplies every limb of m by mul, then adds add into the
// least significant limb, propagating the double-width carry throughout.
// The result may be one limb wider than m. This is the building block of
// both schoolbook multiplication and radix conversion.
func (m *Magnitude) MulDigit(mul, add Digit) (*Magnitude, error) {
	carry := uint64(add)
	digits := make([]Digit, len(m.digits), len(m.digits)+1)
	for i, d := range m.digits {
		cur := uint64(d)*uint64(mul) + carry
		digits[i] = Digit(cur)
		carry = cur >> DigitBits
	}
	out := &Magnitude{digits: digits}
	if carry != 0 {
		if out.Size()+DigitBytes > MaxSize {
			return nil, ErrSizeExceeded
		}
		out.digits = append(out.digits, Digit(carry))
	}
	return out.trim(), nil
}

// Add returns the unsigned sum a+b.
func Add(a, b *Magnitude) (*Magnitude, error) {
	if len(a.digits) < len(b.digits) {
		a, b = b, a
	}
	digits := make([]Digit, len(a.digits), len(a.digits)+1)
	var carry Digit
	for i, d := range a.digits {
		var bd Digit
		if i < len(b.digits) {
			bd = b.digits[i]
		}
		digits[i], carry = bits.Add32(d, bd, carry)
	}
	out := &Magnitude{digits: digits}
	if carry != 0 {
		if out.Size()+DigitBytes > MaxSize {
			return nil, ErrSizeExceeded
		}
		out.digits = append(out.digits, carry)
	}
	return out.trim(), nil
}

// Sub returns the unsigned difference a-b. The caller must order the
// operands so that a >= b; the dispatcher does this via Compare and flips
// the result sign instead.
func Sub(a, b *Magnitude) *Magnitude {
	if len(a.digits) < len(b.digits) {
		panic("bigint: subtrahend is larger than the minuend")
	}
	digits := make([]Digit, len(a.digits))
	var borrow Digit
	for i, d := range a.digits {
		var bd Digit
		if i < len(b.digits) {
			bd = b.digits[i]
		}
		digits[i], borrow = bits.Sub32(d, bd, borrow)
	}
	if borrow != 0 {
		panic("bigint: subtrahend is larger than the minuend")
	}
	return (&Magnitude{digits: digits}).trim()
}

// Mul returns the unsigned product a*b by schoolbook multiplication. The
// result is up to len(a)+len(b) limbs wide.
func Mul(a, b *Magnitude) (*Magnitude, error) {
	if a.IsZero() || b.IsZero() {
		return Zero, nil
	}
	if a.Size()+b.Size() > MaxSize {
		return nil, ErrSizeExceeded
	}
	digits := make([]Digit, len(a.digits)+len(b.digits))
	for i, bd := range b.digits {
		if bd == 0 {
			continue
		}
		var carry uint64
		for j, ad := range a.digits {
			cur := uint64(ad)*uint64(bd) + uint64(digits[i+j]) + carry
			digits[i+j] = Digit(cur)
			carry = cur >> DigitBits
		}
		digits[i+len(a.digits)] = Digit(carry)
	}
	return (&Magnitude{digits: digits}).trim(), nil
}

// ShiftLeft returns m shifted left by the given bit count. Whole-limb and
// sub-limb shifts are combined; the result may be wider than m.
func (m *Magnitude) ShiftLeft(count uint32) (*Magnitude, error) {
	if m.IsZero() || count == 0 {
		return m, nil
	}
	limbShift := int(count / DigitBits)
	bitShift := count % DigitBits

	width := len(m.digits) + limbShift
	if bitShift != 0 && m.digits[len(m.digits)-1]>>(DigitBits-bitShift) != 0 {
		width++
	}
	if uint32(width)*DigitBytes > MaxSize {
		return nil, ErrSizeExceeded
	}

	digits := make([]Digit, width)
	if bitShift == 0 {
		copy(digits[limbShift:], m.digits)
	} else {
		var carry Digit
		for i, d := range m.digits {
			digits[i+limbShift] = d<<bitShift | carry
			carry = Digit(uint64(d) >> (DigitBits - bitShift))
		}
		if carry != 0 {
			digits[len(m.digits)+limbShift] = carry
		}
	}
	return (&Magnitude{digits: digits}).trim(), nil
}

// ShiftRight returns m shifted right by the given bit count, dropping
// bits shifted out and canonicalizing the (possibly zero) result.
func (m *Magnitude) ShiftRight(count uint32) *Magnitude {
	if m.IsZero() || count == 0 {
		return m
	}
	limbShift := int(count / DigitBits)
	bitShift := count % DigitBits
	if limbShift >= len(m.digits) {
		return Zero
	}

	src := m.digits[limbShift:]
	digits := make([]Digit, len(src))
	if bitShift == 0 {
		copy(digits, src)
	} else {
		for i := range src {
			d := src[i] >> bitShift
			if i+1 < len(src) {
				d |= src[i+1] << (DigitBits - bitShift)
			}
			digits[i] = d
		}
	}
	return (&Magnitude{digits: digits}).trim()
}

// FromUint64 builds a magnitude from a native unsigned integer.
func FromUint64(v uint64) *Magnitude {
	switch {
	case v == 0:
		return Zero
	case v>>DigitBits == 0:
		return &Magnitude{digits: []Digit{Digit(v)}}
	default:
		return &Magnitude{digits: []Digit{Digit(v), Digit(v >> DigitBits)}}
	}
}

// Uint64 returns the magnitude as a uint64 when it fits.
func (m *Magnitude) Uint64() (uint64, bool) {
	switch len(m.digits) {
	case 0:
		return 0, true
	case 1:
		return uint64(m.digits[0]), true
	case 2:
		return uint64(m.digits[1])<<DigitBits | uint64(m.digits[0]), true
	}
	return 0, false
}
