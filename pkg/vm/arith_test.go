package vm

import (
	"math"
	"strings"
	"testing"

	"cinder/pkg/bigint"
)

// bigIntValue builds a BigInt value from an optionally signed decimal
// string.
func bigIntValue(t *testing.T, s string) Value {
	t.Helper()
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	mag, err := bigint.FromString(s, 10)
	if err != nil {
		t.Fatalf("FromString(%q) failed: %v", s, err)
	}
	return NewBigInt(negative, mag)
}

// expectThrown checks that err carries a thrown error object with the
// given name whose message contains the given fragment.
func expectThrown(t *testing.T, err error, name, fragment string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a thrown %s, got no error", name)
	}
	exc, ok := ExceptionValue(err)
	if !ok {
		t.Fatalf("error %v is not a thrown value", err)
	}
	obj := exc.AsPlainObject()
	if obj == nil {
		t.Fatalf("thrown value is not an error object: %s", exc.ToString())
	}
	gotName, _ := obj.GetOwn("name")
	if gotName.ToString() != name {
		t.Errorf("thrown %s, want %s (message %v)", gotName.ToString(), name, err)
	}
	message, _ := obj.GetOwn("message")
	if fragment != "" && !strings.Contains(message.ToString(), fragment) {
		t.Errorf("message %q does not contain %q", message.ToString(), fragment)
	}
}

// expectNumberBits compares results bit-for-bit so that NaN payloads and
// signed zeros are checked exactly.
func expectNumberBits(t *testing.T, got Value, want float64, msg string) {
	t.Helper()
	if !got.IsNumber() {
		t.Fatalf("%s: got %s value, want number", msg, got.Type())
	}
	gotF := got.AsFloat()
	if math.IsNaN(want) && math.IsNaN(gotF) {
		return
	}
	if math.Float64bits(gotF) != math.Float64bits(want) {
		t.Errorf("%s: got %v, want %v", msg, gotF, want)
	}
}

func expectBigInt(t *testing.T, got Value, want string, msg string) {
	t.Helper()
	if !got.IsBigInt() {
		t.Fatalf("%s: got %s value, want bigint", msg, got.Type())
	}
	if got.ToString() != want {
		t.Errorf("%s: got %s, want %s", msg, got.ToString(), want)
	}
}

func TestBinaryDoubleArithmetic(t *testing.T) {
	vm := New()
	tests := []struct {
		op   ArithmeticOp
		a, b float64
		want float64
	}{
		{OpSubtract, 7, 2.5, 4.5},
		{OpSubtract, 0, 0, 0},
		{OpMultiply, 3, -4, -12},
		{OpMultiply, 1e308, 10, math.Inf(1)},
		{OpDivide, 1, 0, math.Inf(1)},
		{OpDivide, -1, 0, math.Inf(-1)},
		{OpDivide, 0, 0, math.NaN()},
		{OpDivide, 10, 4, 2.5},
		{OpRemainder, 5, 0, math.NaN()},
		{OpRemainder, 5, 3, 2},
		{OpRemainder, -5, 3, -2},
		{OpRemainder, math.Inf(1), 3, math.NaN()},
		{OpExponent, 2, 10, 1024},
		{OpExponent, 0, -1, math.Inf(1)},
		{OpExponent, 1, math.Inf(1), math.NaN()},
		{OpExponent, -1, math.Inf(-1), math.NaN()},
		{OpExponent, 2, math.NaN(), math.NaN()},
		{OpExponent, math.NaN(), 0, 1},
	}
	for _, tt := range tests {
		got, err := vm.EvaluateBinary(tt.op, NumberValue(tt.a), NumberValue(tt.b))
		if err != nil {
			t.Fatalf("%v %s %v failed: %v", tt.a, tt.op, tt.b, err)
		}
		expectNumberBits(t, got, tt.want, tt.op.String())
	}
}

func TestBinaryCoercesNonNumbers(t *testing.T) {
	vm := New()
	got, err := vm.EvaluateBinary(OpSubtract, NewString("10"), True)
	if err != nil {
		t.Fatalf("subtract failed: %v", err)
	}
	expectNumberBits(t, got, 9, `"10" - true`)

	got, err = vm.EvaluateBinary(OpMultiply, Null, NewString("5"))
	if err != nil {
		t.Fatalf("multiply failed: %v", err)
	}
	expectNumberBits(t, got, 0, `null * "5"`)

	got, err = vm.EvaluateBinary(OpDivide, Undefined, NumberValue(2))
	if err != nil {
		t.Fatalf("divide failed: %v", err)
	}
	expectNumberBits(t, got, math.NaN(), "undefined / 2")
}

func TestBinaryBigIntArithmetic(t *testing.T) {
	vm := New()
	tests := []struct {
		op   ArithmeticOp
		a, b string
		want string
	}{
		{OpSubtract, "5", "3", "2"},
		{OpSubtract, "3", "5", "-2"},
		{OpSubtract, "-3", "5", "-8"},
		{OpSubtract, "5", "5", "0"},
		{OpMultiply, "12345678901234567890", "98765432109876543210", "1219326311370217952237463801111263526900"},
		{OpMultiply, "-4", "5", "-20"},
		{OpMultiply, "-4", "-5", "20"},
		{OpDivide, "7", "2", "3"},
		{OpDivide, "-7", "2", "-3"},
		{OpDivide, "7", "-2", "-3"},
		{OpDivide, "-7", "-2", "3"},
		{OpRemainder, "7", "2", "1"},
		{OpRemainder, "-7", "2", "-1"},
		{OpRemainder, "7", "-2", "1"},
		{OpRemainder, "123456789012345678901234567890", "9876543210", "1562499990"},
	}
	for _, tt := range tests {
		got, err := vm.EvaluateBinary(tt.op, bigIntValue(t, tt.a), bigIntValue(t, tt.b))
		if err != nil {
			t.Fatalf("%sn %s %sn failed: %v", tt.a, tt.op, tt.b, err)
		}
		expectBigInt(t, got, tt.want, tt.a+"n "+tt.op.String()+" "+tt.b+"n")
	}
}

func TestBigIntSubtractionToZeroSharesZero(t *testing.T) {
	vm := New()
	got, err := vm.EvaluateBinary(OpSubtract, bigIntValue(t, "42"), bigIntValue(t, "42"))
	if err != nil {
		t.Fatalf("subtract failed: %v", err)
	}
	if got.obj != zeroBigInt.obj {
		t.Errorf("42n - 42n did not return the shared zero value")
	}
}

func TestBigIntDivisionByZero(t *testing.T) {
	vm := New()
	_, err := vm.EvaluateBinary(OpDivide, bigIntValue(t, "1"), ZeroBigInt())
	expectThrown(t, err, "ArithmeticError", "Division by zero")
	_, err = vm.EvaluateBinary(OpRemainder, bigIntValue(t, "1"), ZeroBigInt())
	expectThrown(t, err, "ArithmeticError", "Division by zero")
}

func TestBigIntExponentUnsupported(t *testing.T) {
	vm := New()
	_, err := vm.EvaluateBinary(OpExponent, bigIntValue(t, "2"), bigIntValue(t, "3"))
	expectThrown(t, err, "Error", "Not supported BigInt operation")
}

func TestBigIntGrowthPastMaxSize(t *testing.T) {
	saved := bigint.MaxSize
	bigint.MaxSize = 64
	defer func() { bigint.MaxSize = saved }()

	vm := New()
	// Repeated squaring doubles the width each round and must hit the
	// size ceiling instead of truncating.
	value := bigIntValue(t, "340282366920938463463374607431768211456")
	var err error
	for i := 0; i < 8; i++ {
		value, err = vm.EvaluateBinary(OpMultiply, value, value)
		if err != nil {
			break
		}
	}
	expectThrown(t, err, "RangeError", "BigInt value is too large")
}

func TestMixedBigIntIsTypeError(t *testing.T) {
	vm := New()
	ops := []ArithmeticOp{OpSubtract, OpMultiply, OpDivide, OpRemainder, OpExponent}
	one := bigIntValue(t, "1")
	for _, op := range ops {
		_, err := vm.EvaluateBinary(op, one, NumberValue(1))
		expectThrown(t, err, "TypeError", "Cannot mix BigInt")
		_, err = vm.EvaluateBinary(op, NumberValue(1), one)
		expectThrown(t, err, "TypeError", "Cannot mix BigInt")
		// Strings do not rescue the numeric operators either.
		_, err = vm.EvaluateBinary(op, one, NewString("1"))
		expectThrown(t, err, "TypeError", "Cannot mix BigInt")
	}
	_, err := vm.EvaluateAddition(one, NumberValue(1))
	expectThrown(t, err, "TypeError", "Cannot mix BigInt")
	_, err = vm.EvaluateAddition(True, one)
	expectThrown(t, err, "TypeError", "Cannot mix BigInt")
}

func TestAdditionNumbers(t *testing.T) {
	vm := New()
	got, err := vm.EvaluateAddition(NumberValue(1.5), NumberValue(2.25))
	if err != nil {
		t.Fatalf("addition failed: %v", err)
	}
	expectNumberBits(t, got, 3.75, "1.5 + 2.25")

	got, err = vm.EvaluateAddition(True, Null)
	if err != nil {
		t.Fatalf("addition failed: %v", err)
	}
	expectNumberBits(t, got, 1, "true + null")

	got, err = vm.EvaluateAddition(Undefined, NumberValue(1))
	if err != nil {
		t.Fatalf("addition failed: %v", err)
	}
	expectNumberBits(t, got, math.NaN(), "undefined + 1")
}

func TestAdditionConcatenation(t *testing.T) {
	vm := New()
	tests := []struct {
		left, right Value
		want        string
	}{
		{NewString("x"), NumberValue(5), "x5"},
		{NumberValue(5), NewString("x"), "5x"},
		{NewString("a"), NewString("b"), "ab"},
		{NewString(""), Undefined, "undefined"},
		{NewString("n="), bigIntValue(t, "123"), "n=123"},
		{bigIntValue(t, "-7"), NewString("!"), "-7!"},
		{NewString("b="), True, "b=true"},
	}
	for _, tt := range tests {
		got, err := vm.EvaluateAddition(tt.left, tt.right)
		if err != nil {
			t.Fatalf("addition failed: %v", err)
		}
		if !got.IsString() || got.AsString() != tt.want {
			t.Errorf("concatenation: got %q, want %q", got.ToString(), tt.want)
		}
	}
}

func TestAdditionSymbolConcatThrows(t *testing.T) {
	vm := New()
	_, err := vm.EvaluateAddition(NewString("tag: "), NewSymbol("s"))
	expectThrown(t, err, "TypeError", "Symbol")
	_, err = vm.EvaluateAddition(NewSymbol("s"), NewString("!"))
	expectThrown(t, err, "TypeError", "Symbol")
}

func TestAdditionBigInt(t *testing.T) {
	vm := New()
	tests := []struct {
		a, b, want string
	}{
		{"1", "2", "3"},
		{"-1", "-2", "-3"},
		{"5", "-3", "2"},
		{"-5", "3", "-2"},
		{"3", "-5", "-2"},
		{"-3", "3", "0"},
		{"18446744073709551615", "1", "18446744073709551616"},
	}
	for _, tt := range tests {
		got, err := vm.EvaluateAddition(bigIntValue(t, tt.a), bigIntValue(t, tt.b))
		if err != nil {
			t.Fatalf("%sn + %sn failed: %v", tt.a, tt.b, err)
		}
		expectBigInt(t, got, tt.want, tt.a+"n + "+tt.b+"n")
	}
}

func TestUnaryNumbers(t *testing.T) {
	vm := New()
	got, err := vm.EvaluateUnary(NumberValue(3), false)
	if err != nil {
		t.Fatalf("unary minus failed: %v", err)
	}
	expectNumberBits(t, got, -3, "-3.0")

	got, err = vm.EvaluateUnary(NaN, false)
	if err != nil {
		t.Fatalf("unary minus failed: %v", err)
	}
	expectNumberBits(t, got, math.NaN(), "-NaN")

	got, err = vm.EvaluateUnary(NumberValue(0), false)
	if err != nil {
		t.Fatalf("unary minus failed: %v", err)
	}
	if !math.Signbit(got.AsFloat()) {
		t.Errorf("-0.0 lost its sign bit")
	}

	got, err = vm.EvaluateUnary(NewString("12"), true)
	if err != nil {
		t.Fatalf("unary plus failed: %v", err)
	}
	expectNumberBits(t, got, 12, `+"12"`)
}

func TestUnaryBigInt(t *testing.T) {
	vm := New()
	_, err := vm.EvaluateUnary(bigIntValue(t, "5"), true)
	expectThrown(t, err, "TypeError", "Unary operation plus is not allowed for BigInt numbers")

	got, err := vm.EvaluateUnary(bigIntValue(t, "5"), false)
	if err != nil {
		t.Fatalf("unary minus failed: %v", err)
	}
	expectBigInt(t, got, "-5", "-5n")

	got, err = vm.EvaluateUnary(got, false)
	if err != nil {
		t.Fatalf("unary minus failed: %v", err)
	}
	expectBigInt(t, got, "5", "-(-5n)")
}

func TestUnaryNegateZeroSharesZero(t *testing.T) {
	vm := New()
	got, err := vm.EvaluateUnary(ZeroBigInt(), false)
	if err != nil {
		t.Fatalf("negate of zero failed: %v", err)
	}
	if got.obj != zeroBigInt.obj {
		t.Errorf("negating the BigInt zero did not return the shared zero instance")
	}
}

func TestUnaryNegateCopiesDigits(t *testing.T) {
	vm := New()
	operand := bigIntValue(t, "123456789012345678901234567890")
	got, err := vm.EvaluateUnary(operand, false)
	if err != nil {
		t.Fatalf("unary minus failed: %v", err)
	}
	if got.obj == operand.obj {
		t.Errorf("negation returned the operand itself")
	}
	if bigint.Compare(got.AsBigInt().Magnitude(), operand.AsBigInt().Magnitude()) != 0 {
		t.Errorf("negation changed the magnitude")
	}
	if got.AsBigInt().Negative() == operand.AsBigInt().Negative() {
		t.Errorf("negation did not flip the sign")
	}
}

// coercibleObject builds an object whose valueOf records the call and
// returns result, or throws err when err is non-nil.
func coercibleObject(log *[]string, tag string, result Value, err error) Value {
	obj := NewObject().AsPlainObject()
	obj.SetOwn("valueOf", NewNativeFunction(0, "valueOf", func(this Value, args []Value) (Value, error) {
		*log = append(*log, tag)
		if err != nil {
			return Undefined, err
		}
		return result, nil
	}))
	return NewValueFromPlainObject(obj)
}

func TestCoercionOrderLeftThenRight(t *testing.T) {
	vm := New()
	var log []string
	left := coercibleObject(&log, "left", NumberValue(10), nil)
	right := coercibleObject(&log, "right", NumberValue(4), nil)

	got, err := vm.EvaluateBinary(OpSubtract, left, right)
	if err != nil {
		t.Fatalf("subtract failed: %v", err)
	}
	expectNumberBits(t, got, 6, "object - object")
	if len(log) != 2 || log[0] != "left" || log[1] != "right" {
		t.Errorf("coercion order = %v, want [left right]", log)
	}
}

func TestCoercionLeftFailureSkipsRight(t *testing.T) {
	vm := New()
	var log []string
	boom := vm.NewTypeError("left exploded")
	left := coercibleObject(&log, "left", Undefined, boom)
	right := coercibleObject(&log, "right", NumberValue(4), nil)

	_, err := vm.EvaluateBinary(OpMultiply, left, right)
	if err == nil {
		t.Fatalf("expected the left coercion error")
	}
	expectThrown(t, err, "TypeError", "left exploded")
	if len(log) != 1 || log[0] != "left" {
		t.Errorf("right operand was coerced after a left failure: %v", log)
	}
}

func TestCoercionRightFailurePropagates(t *testing.T) {
	vm := New()
	var log []string
	boom := vm.NewRangeError("right exploded")
	left := coercibleObject(&log, "left", NumberValue(1), nil)
	right := coercibleObject(&log, "right", Undefined, boom)

	_, err := vm.EvaluateAddition(left, right)
	expectThrown(t, err, "RangeError", "right exploded")
	if len(log) != 2 {
		t.Errorf("coercion calls = %v, want both operands", log)
	}
}

func TestCoercionErrorPassesThroughUnchanged(t *testing.T) {
	vm := New()
	thrown := NewString("user defined throw")
	obj := NewObject().AsPlainObject()
	obj.SetOwn("valueOf", NewNativeFunction(0, "valueOf", func(this Value, args []Value) (Value, error) {
		return Undefined, Throw(thrown)
	}))

	_, err := vm.EvaluateUnary(NewValueFromPlainObject(obj), false)
	exc, ok := ExceptionValue(err)
	if !ok {
		t.Fatalf("propagated error lost its thrown value: %v", err)
	}
	if exc.obj != thrown.obj {
		t.Errorf("thrown value was wrapped instead of passed through")
	}
}

func TestToPrimitiveFallsBackToToString(t *testing.T) {
	vm := New()
	obj := NewObject().AsPlainObject()
	obj.SetOwn("toString", NewNativeFunction(0, "toString", func(this Value, args []Value) (Value, error) {
		return NewString("25"), nil
	}))

	got, err := vm.EvaluateBinary(OpSubtract, NewValueFromPlainObject(obj), NumberValue(5))
	if err != nil {
		t.Fatalf("subtract failed: %v", err)
	}
	expectNumberBits(t, got, 20, "object(toString) - 5")
}

func TestToPrimitiveRejectsOpaqueObject(t *testing.T) {
	vm := New()
	_, err := vm.EvaluateBinary(OpSubtract, NewObject(), NumberValue(1))
	expectThrown(t, err, "TypeError", "Cannot convert object to primitive value")
}

func TestAdditionObjectUsesValueOf(t *testing.T) {
	vm := New()
	var log []string
	obj := coercibleObject(&log, "obj", NumberValue(2), nil)
	got, err := vm.EvaluateAddition(obj, NumberValue(3))
	if err != nil {
		t.Fatalf("addition failed: %v", err)
	}
	expectNumberBits(t, got, 5, "object + 3")
}

func TestWithoutBigIntNumberPathsUnchanged(t *testing.T) {
	vm := New(WithoutBigInt())
	if vm.BigIntEnabled() {
		t.Fatalf("WithoutBigInt did not disable the feature")
	}
	got, err := vm.EvaluateBinary(OpDivide, NumberValue(1), NumberValue(0))
	if err != nil {
		t.Fatalf("divide failed: %v", err)
	}
	expectNumberBits(t, got, math.Inf(1), "1 / 0 without BigInt")

	got, err = vm.EvaluateAddition(NewString("x"), NumberValue(5))
	if err != nil {
		t.Fatalf("addition failed: %v", err)
	}
	if got.AsString() != "x5" {
		t.Errorf("concatenation without BigInt: %q", got.AsString())
	}
}

func TestWithoutBigIntRejectsBigIntOperands(t *testing.T) {
	vm := New(WithoutBigInt())
	one := bigIntValue(t, "1")
	_, err := vm.EvaluateBinary(OpSubtract, one, one)
	expectThrown(t, err, "TypeError", "BigInt is not supported")
	_, err = vm.EvaluateAddition(one, one)
	expectThrown(t, err, "TypeError", "BigInt is not supported")
	_, err = vm.EvaluateUnary(one, false)
	expectThrown(t, err, "TypeError", "BigInt is not supported")
}
