package vm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unsafe"

	"cinder/pkg/bigint"
)

type ValueType uint8

const (
	TypeUndefined ValueType = iota
	TypeNull

	TypeString
	TypeSymbol

	TypeFloatNumber
	TypeBigInt

	TypeBoolean

	TypeObject
	TypeNativeFunction
)

// String returns a human-readable string representation of the ValueType
func (vt ValueType) String() string {
	switch vt {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeString:
		return "string"
	case TypeSymbol:
		return "symbol"
	case TypeFloatNumber:
		return "number"
	case TypeBigInt:
		return "bigint"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	case TypeNativeFunction:
		return "native function"
	default:
		return "unknown"
	}
}

type StringObject struct {
	value string
}

type SymbolObject struct {
	value string
}

// BigIntObject pairs a sign with an unsigned magnitude. The sign lives
// here, not in the magnitude; a zero magnitude never carries a sign.
type BigIntObject struct {
	negative  bool
	magnitude *bigint.Magnitude
}

// Negative reports the sign bit.
func (b *BigIntObject) Negative() bool { return b.negative }

// Magnitude returns the unsigned digits of the value.
func (b *BigIntObject) Magnitude() *bigint.Magnitude { return b.magnitude }

type Value struct {
	typ     ValueType
	payload uint64
	obj     unsafe.Pointer
}

var (
	Undefined = Value{typ: TypeUndefined}
	Null      = Value{typ: TypeNull}
	True      = Value{typ: TypeBoolean, payload: 1}
	False     = Value{typ: TypeBoolean, payload: 0}
	NaN       = Value{typ: TypeFloatNumber, payload: math.Float64bits(math.NaN())}
)

// zeroBigInt is the canonical shared BigInt zero. Negating zero and every
// zero-producing BigInt operation hand back this exact value, so pointer
// identity holds for the zero fast path.
var zeroBigInt = Value{typ: TypeBigInt, obj: unsafe.Pointer(&BigIntObject{magnitude: bigint.Zero})}

func NumberValue(value float64) Value {
	return Value{typ: TypeFloatNumber, payload: math.Float64bits(value)}
}

func BooleanValue(value bool) Value {
	if value {
		return True
	}
	return False
}

func NewString(value string) Value {
	return Value{typ: TypeString, obj: unsafe.Pointer(&StringObject{value: value})}
}

func NewSymbol(value string) Value {
	return Value{typ: TypeSymbol, obj: unsafe.Pointer(&SymbolObject{value: value})}
}

// NewBigInt wraps a sign and magnitude as a BigInt value. A zero
// magnitude collapses to the shared zero regardless of the sign argument.
func NewBigInt(negative bool, magnitude *bigint.Magnitude) Value {
	if magnitude.IsZero() {
		return zeroBigInt
	}
	return Value{typ: TypeBigInt, obj: unsafe.Pointer(&BigIntObject{negative: negative, magnitude: magnitude})}
}

// ZeroBigInt returns the shared BigInt zero value.
func ZeroBigInt() Value {
	return zeroBigInt
}

func (v Value) Type() ValueType {
	return v.typ
}

func (v Value) IsString() bool {
	return v.typ == TypeString
}

func (v Value) IsBigInt() bool {
	return v.typ == TypeBigInt
}

func (v Value) IsObject() bool {
	return v.typ == TypeObject
}

func (v Value) IsNumber() bool {
	return v.typ == TypeFloatNumber
}

func (v Value) AsFloat() float64 {
	if v.typ != TypeFloatNumber {
		panic(fmt.Sprintf("AsFloat called on %s value", v.typ))
	}
	return math.Float64frombits(v.payload)
}

func (v Value) AsBoolean() bool {
	if v.typ != TypeBoolean {
		panic(fmt.Sprintf("AsBoolean called on %s value", v.typ))
	}
	return v.payload != 0
}

func (v Value) AsString() string {
	if v.typ != TypeString {
		panic(fmt.Sprintf("AsString called on %s value", v.typ))
	}
	return (*StringObject)(v.obj).value
}

func (v Value) AsBigInt() *BigIntObject {
	if v.typ != TypeBigInt {
		panic(fmt.Sprintf("AsBigInt called on %s value", v.typ))
	}
	return (*BigIntObject)(v.obj)
}

func (v Value) AsPlainObject() *PlainObject {
	if v.typ != TypeObject {
		return nil
	}
	return (*PlainObject)(v.obj)
}

func (v Value) AsNativeFunction() *NativeFunctionObject {
	if v.typ != TypeNativeFunction {
		return nil
	}
	return (*NativeFunctionObject)(v.obj)
}

// cleanExponentialFormat removes leading zeros from exponent to match JS format
// e.g., "1e-07" -> "1e-7", "1e+25" -> "1e+25"
func cleanExponentialFormat(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == 'e' || s[i] == 'E' {
			if i+1 < len(s) && (s[i+1] == '+' || s[i+1] == '-') {
				sign := s[i+1]
				expStart := i + 2
				j := expStart
				for j < len(s) && s[j] == '0' {
					j++
				}
				if j >= len(s) {
					return s[:i+2] + "0"
				}
				return s[:i+1] + string(sign) + s[j:]
			}
			break
		}
	}
	return s
}

// formatNumber renders a double per the ECMAScript ToString rules
// (7.1.12.1): fixed notation in the middle range, exponential notation
// below 1e-6 and from 1e21 upward.
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == 0 {
		return "0" // covers -0 as well
	}
	absF := math.Abs(f)
	if absF < 1e-6 || absF >= 1e21 {
		return cleanExponentialFormat(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v Value) ToString() string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeString:
		return (*StringObject)(v.obj).value
	case TypeSymbol:
		return fmt.Sprintf("Symbol(%s)", (*SymbolObject)(v.obj).value)
	case TypeFloatNumber:
		return formatNumber(v.AsFloat())
	case TypeBigInt:
		b := v.AsBigInt()
		if b.negative {
			return "-" + b.magnitude.Text(10)
		}
		return b.magnitude.Text(10)
	case TypeBoolean:
		if v.AsBoolean() {
			return "true"
		}
		return "false"
	case TypeObject:
		return "[object Object]"
	case TypeNativeFunction:
		fn := (*NativeFunctionObject)(v.obj)
		if fn.Name != "" {
			return fmt.Sprintf("<native function %s>", fn.Name)
		}
		return "<native function>"
	}
	return fmt.Sprintf("<unknown type %d>", v.typ)
}

// parseStringToNumber converts a string to a number following ECMAScript rules
// Handles hex (0x), octal (0o), binary (0b), and decimal (including scientific notation)
func parseStringToNumber(s string) float64 {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0
	}

	if len(str) >= 2 && (strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X")) {
		if i, err := strconv.ParseInt(str[2:], 16, 64); err == nil {
			return float64(i)
		}
		return math.NaN()
	}

	if len(str) >= 2 && (strings.HasPrefix(str, "0b") || strings.HasPrefix(str, "0B")) {
		if i, err := strconv.ParseInt(str[2:], 2, 64); err == nil {
			return float64(i)
		}
		return math.NaN()
	}

	if len(str) >= 2 && (strings.HasPrefix(str, "0o") || strings.HasPrefix(str, "0O")) {
		if i, err := strconv.ParseInt(str[2:], 8, 64); err == nil {
			return float64(i)
		}
		return math.NaN()
	}

	// "Infinity" is case-sensitive in ECMAScript, unlike Go's ParseFloat.
	if str == "Infinity" || str == "+Infinity" {
		return math.Inf(1)
	}
	if str == "-Infinity" {
		return math.Inf(-1)
	}
	strLower := strings.ToLower(str)
	if strLower == "infinity" || strLower == "+infinity" || strLower == "-infinity" {
		return math.NaN()
	}

	if f, err := strconv.ParseFloat(str, 64); err == nil {
		return f
	}
	return math.NaN()
}
