package bigint

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// maxChunk returns the largest power of radix fitting in one limb, and
// how many radix digits it spans.
func maxChunk(radix uint32) (Digit, int) {
	chunk, width := radix, 1
	for uint64(chunk)*uint64(radix) <= 1<<DigitBits-1 {
		chunk *= radix
		width++
	}
	return Digit(chunk), width
}

// AppendText appends the base-radix digits of m to dst, most significant
// digit first, and returns the extended buffer. The radix must be in
// [2, 36]. The caller supplies (and may pre-size) the buffer; this
// mirrors the strconv.Append* contract.
func (m *Magnitude) AppendText(dst []byte, radix uint32) []byte {
	if radix < 2 || radix > 36 {
		panic("bigint: radix must be in [2, 36]")
	}
	if m.IsZero() {
		return append(dst, '0')
	}

	// Peel off one limb-sized chunk of digits per division pass. Inner
	// chunks are zero-padded to full width; the leading chunk is not.
	chunk, width := maxChunk(radix)
	start := len(dst)
	for cur := m; !cur.IsZero(); {
		quotient, remainder := divModDigit(cur, chunk)
		if quotient.IsZero() {
			for remainder > 0 {
				dst = append(dst, digitChars[remainder%radix])
				remainder /= radix
			}
		} else {
			for i := 0; i < width; i++ {
				dst = append(dst, digitChars[remainder%radix])
				remainder /= radix
			}
		}
		cur = quotient
	}

	// Digits were produced least significant first.
	out := dst[start:]
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return dst
}

// Text renders the magnitude in the given radix.
func (m *Magnitude) Text(radix uint32) string {
	return string(m.AppendText(nil, radix))
}

// FromString parses an unsigned digit string in the given radix by
// repeated multiply-by-radix-and-add-digit steps, the same MulDigit
// primitive the output conversion builds on. Letter digits may be in
// either case.
func FromString(s string, radix uint32) (*Magnitude, error) {
	if radix < 2 || radix > 36 {
		panic("bigint: radix must be in [2, 36]")
	}
	if s == "" {
		return nil, ErrSyntax
	}
	m := Zero
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case c >= 'a' && c <= 'z':
			d = uint32(c-'a') + 10
		case c >= 'A' && c <= 'Z':
			d = uint32(c-'A') + 10
		default:
			return nil, ErrSyntax
		}
		if d >= radix {
			return nil, ErrSyntax
		}
		var err error
		m, err = m.MulDigit(Digit(radix), Digit(d))
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}
