package bigint

import "math/bits"

// DivMod divides the unsigned magnitudes and returns the quotient, or the
// remainder when isMod is set. Signs are applied by the caller. A zero
// divisor fails with ErrDivisionByZero.
func DivMod(dividend, divisor *Magnitude, isMod bool) (*Magnitude, error) {
	if divisor.IsZero() {
		return nil, ErrDivisionByZero
	}
	if Compare(dividend, divisor) < 0 {
		if isMod {
			return dividend.Clone(), nil
		}
		return Zero, nil
	}
	if len(divisor.digits) == 1 {
		quotient, remainder := divModDigit(dividend, divisor.digits[0])
		if isMod {
			return FromUint64(uint64(remainder)), nil
		}
		return quotient, nil
	}
	return divModLarge(dividend, divisor, isMod), nil
}

// divModDigit divides by a single limb, walking the dividend from the
// most significant limb with a double-width running remainder.
func divModDigit(dividend *Magnitude, divisor Digit) (*Magnitude, Digit) {
	digits := make([]Digit, len(dividend.digits))
	var remainder uint64
	for i := len(dividend.digits) - 1; i >= 0; i-- {
		cur := remainder<<DigitBits | uint64(dividend.digits[i])
		digits[i] = Digit(cur / uint64(divisor))
		remainder = cur % uint64(divisor)
	}
	return (&Magnitude{digits: digits}).trim(), Digit(remainder)
}

// divModLarge is schoolbook long division (Knuth's algorithm D) for
// divisors wider than one limb. Both operands are normalized so the top
// divisor limb has its high bit set, which keeps every quotient-digit
// estimate within one or two of the true value.
func divModLarge(dividend, divisor *Magnitude, isMod bool) *Magnitude {
	const base = uint64(1) << DigitBits

	n := len(divisor.digits)
	m := len(dividend.digits) - n
	shift := uint(bits.LeadingZeros32(divisor.digits[n-1]))

	// Normalized copies. un carries one extra limb for the shifted-out
	// high bits of the dividend.
	vn := make([]Digit, n)
	for i := n - 1; i > 0; i-- {
		vn[i] = divisor.digits[i]<<shift | Digit(uint64(divisor.digits[i-1])>>(DigitBits-shift))
	}
	vn[0] = divisor.digits[0] << shift

	un := make([]Digit, len(dividend.digits)+1)
	un[len(dividend.digits)] = Digit(uint64(dividend.digits[len(dividend.digits)-1]) >> (DigitBits - shift))
	for i := len(dividend.digits) - 1; i > 0; i-- {
		un[i] = dividend.digits[i]<<shift | Digit(uint64(dividend.digits[i-1])>>(DigitBits-shift))
	}
	un[0] = dividend.digits[0] << shift

	quotient := make([]Digit, m+1)
	for j := m; j >= 0; j-- {
		// Estimate the quotient digit from the top two dividend limbs.
		num := uint64(un[j+n])<<DigitBits | uint64(un[j+n-1])
		qhat := num / uint64(vn[n-1])
		rhat := num % uint64(vn[n-1])
		for qhat >= base || qhat*uint64(vn[n-2]) > rhat<<DigitBits+uint64(un[j+n-2]) {
			qhat--
			rhat += uint64(vn[n-1])
			if rhat >= base {
				break
			}
		}

		// Multiply and subtract qhat*vn from the current window of un.
		var borrow uint64
		var t int64
		for i := 0; i < n; i++ {
			p := qhat * uint64(vn[i])
			t = int64(uint64(un[i+j])) - int64(borrow) - int64(p&(base-1))
			un[i+j] = Digit(t)
			borrow = p>>DigitBits - uint64(t>>DigitBits)
		}
		t = int64(uint64(un[j+n])) - int64(borrow)
		un[j+n] = Digit(t)

		quotient[j] = Digit(qhat)
		if t < 0 {
			// Estimate was one too large: add the divisor back.
			quotient[j]--
			var carry uint64
			for i := 0; i < n; i++ {
				sum := uint64(un[i+j]) + uint64(vn[i]) + carry
				un[i+j] = Digit(sum)
				carry = sum >> DigitBits
			}
			un[j+n] = Digit(uint64(un[j+n]) + carry)
		}
	}

	if !isMod {
		return (&Magnitude{digits: quotient}).trim()
	}

	// Undo the normalization shift on the remainder limbs.
	remainder := make([]Digit, n)
	for i := 0; i < n-1; i++ {
		remainder[i] = un[i]>>shift | Digit(uint64(un[i+1])<<(DigitBits-shift))
	}
	remainder[n-1] = un[n-1] >> shift
	return (&Magnitude{digits: remainder}).trim()
}
