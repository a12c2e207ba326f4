package vm

import (
	"math"

	"cinder/pkg/bigint"
)

// ArithmeticOp identifies a binary numeric operator handled by
// EvaluateBinary. Addition has its own entry point because of string
// concatenation.
type ArithmeticOp uint8

const (
	OpSubtract ArithmeticOp = iota
	OpMultiply
	OpDivide
	OpRemainder
	OpExponent
)

func (op ArithmeticOp) String() string {
	switch op {
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpRemainder:
		return "%"
	case OpExponent:
		return "**"
	default:
		return "?"
	}
}

const mixedBigIntMessage = "Cannot mix BigInt and other types, use explicit conversions"

// EvaluateBinary applies a numeric binary operator. Object operands are
// coerced to primitives with a number hint, left first, failing fast.
// After coercion the operand pair is classified exactly once: two BigInt
// operands route to the BigInt engine, two non-BigInt operands to double
// arithmetic, and a lone BigInt is a TypeError before any arithmetic.
func (vm *VM) EvaluateBinary(op ArithmeticOp, left, right Value) (Value, error) {
	var err error
	if left, err = vm.ToPrimitive(left, HintNumber); err != nil {
		return Undefined, err
	}
	if right, err = vm.ToPrimitive(right, HintNumber); err != nil {
		return Undefined, err
	}

	if left.IsBigInt() || right.IsBigInt() {
		if !vm.bigIntEnabled {
			return Undefined, vm.NewTypeError("BigInt is not supported")
		}
		if !left.IsBigInt() || !right.IsBigInt() {
			// A lone BigInt operand must never fall through into the
			// ToNumber path below.
			return Undefined, vm.NewTypeError(mixedBigIntMessage)
		}
		return vm.bigIntBinary(op, left.AsBigInt(), right.AsBigInt())
	}

	numLeft, err := vm.ToNumber(left)
	if err != nil {
		return Undefined, err
	}
	numRight, err := vm.ToNumber(right)
	if err != nil {
		return Undefined, err
	}

	var result float64
	switch op {
	case OpSubtract:
		result = numLeft - numRight
	case OpMultiply:
		result = numLeft * numRight
	case OpDivide:
		result = numLeft / numRight
	case OpRemainder:
		result = math.Mod(numLeft, numRight)
	case OpExponent:
		result = numberPow(numLeft, numRight)
	}
	return NumberValue(result), nil
}

// numberPow matches the ECMAScript exponentiation table (6.1.6.1.3),
// which differs from math.Pow for NaN exponents and for ±1 raised to an
// infinite exponent.
func numberPow(base, exponent float64) float64 {
	if math.IsNaN(exponent) {
		return math.NaN()
	}
	if math.IsInf(exponent, 0) && (base == 1 || base == -1) {
		return math.NaN()
	}
	return math.Pow(base, exponent)
}

// EvaluateAddition implements the `+` operator: default-hint coercion,
// then string concatenation when either side is a string, BigInt addition
// when both sides are BigInt, and double addition otherwise.
func (vm *VM) EvaluateAddition(left, right Value) (Value, error) {
	var err error
	if left, err = vm.ToPrimitive(left, HintNone); err != nil {
		return Undefined, err
	}
	if right, err = vm.ToPrimitive(right, HintNone); err != nil {
		return Undefined, err
	}

	if left.IsString() || right.IsString() {
		strLeft, err := vm.ToStringValue(left)
		if err != nil {
			return Undefined, err
		}
		strRight, err := vm.ToStringValue(right)
		if err != nil {
			return Undefined, err
		}
		return NewString(strLeft + strRight), nil
	}

	if left.IsBigInt() || right.IsBigInt() {
		if !vm.bigIntEnabled {
			return Undefined, vm.NewTypeError("BigInt is not supported")
		}
		if !left.IsBigInt() || !right.IsBigInt() {
			return Undefined, vm.NewTypeError(mixedBigIntMessage)
		}
		return vm.bigIntAddSub(left.AsBigInt(), right.AsBigInt(), true)
	}

	numLeft, err := vm.ToNumber(left)
	if err != nil {
		return Undefined, err
	}
	numRight, err := vm.ToNumber(right)
	if err != nil {
		return Undefined, err
	}
	return NumberValue(numLeft + numRight), nil
}

// EvaluateUnary implements the unary `+` and `-` operators. Unary plus is
// plain ToNumber, which makes it a TypeError on BigInt operands; unary
// minus on the BigInt zero returns the shared zero value itself.
func (vm *VM) EvaluateUnary(operand Value, isPlus bool) (Value, error) {
	operand, err := vm.ToPrimitive(operand, HintNumber)
	if err != nil {
		return Undefined, err
	}

	if operand.IsBigInt() {
		if !vm.bigIntEnabled {
			return Undefined, vm.NewTypeError("BigInt is not supported")
		}
		if isPlus {
			return Undefined, vm.NewTypeError("Unary operation plus is not allowed for BigInt numbers")
		}
		b := operand.AsBigInt()
		if b.magnitude.IsZero() {
			return operand, nil
		}
		return NewBigInt(!b.negative, b.magnitude.Clone()), nil
	}

	num, err := vm.ToNumber(operand)
	if err != nil {
		return Undefined, err
	}
	if !isPlus {
		num = -num
	}
	return NumberValue(num), nil
}

// bigIntBinary routes a binary operator to the magnitude engine and
// applies the sign rules: product and quotient signs are the XOR of the
// operand signs, the remainder keeps the dividend sign.
func (vm *VM) bigIntBinary(op ArithmeticOp, left, right *BigIntObject) (Value, error) {
	switch op {
	case OpSubtract:
		return vm.bigIntAddSub(left, right, false)
	case OpMultiply:
		magnitude, err := bigint.Mul(left.magnitude, right.magnitude)
		if err != nil {
			return Undefined, vm.bigIntError(err)
		}
		return NewBigInt(left.negative != right.negative, magnitude), nil
	case OpDivide:
		magnitude, err := bigint.DivMod(left.magnitude, right.magnitude, false)
		if err != nil {
			return Undefined, vm.bigIntError(err)
		}
		return NewBigInt(left.negative != right.negative, magnitude), nil
	case OpRemainder:
		magnitude, err := bigint.DivMod(left.magnitude, right.magnitude, true)
		if err != nil {
			return Undefined, vm.bigIntError(err)
		}
		return NewBigInt(left.negative, magnitude), nil
	default:
		return Undefined, vm.NewError("Not supported BigInt operation")
	}
}

// bigIntAddSub implements signed addition (isAdd) and subtraction over
// sign/magnitude pairs. Equal effective signs add the magnitudes;
// differing signs subtract the smaller magnitude from the larger one and
// take the larger operand's sign.
func (vm *VM) bigIntAddSub(left, right *BigIntObject, isAdd bool) (Value, error) {
	rightNegative := right.negative
	if !isAdd {
		rightNegative = !rightNegative
	}

	if left.negative == rightNegative {
		magnitude, err := bigint.Add(left.magnitude, right.magnitude)
		if err != nil {
			return Undefined, vm.bigIntError(err)
		}
		return NewBigInt(left.negative, magnitude), nil
	}

	switch bigint.Compare(left.magnitude, right.magnitude) {
	case 0:
		return zeroBigInt, nil
	case 1:
		return NewBigInt(left.negative, bigint.Sub(left.magnitude, right.magnitude)), nil
	default:
		return NewBigInt(rightNegative, bigint.Sub(right.magnitude, left.magnitude)), nil
	}
}

// bigIntError maps magnitude engine failures onto thrown error kinds.
func (vm *VM) bigIntError(err error) error {
	switch err {
	case bigint.ErrDivisionByZero:
		return vm.NewArithmeticError("Division by zero")
	case bigint.ErrSizeExceeded:
		return vm.NewRangeError("BigInt value is too large")
	}
	return vm.NewError(err.Error())
}
