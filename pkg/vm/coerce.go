package vm

import "math"

// PrimitiveHint selects the preferred result kind of to-primitive
// coercion. HintNone is the default hint used by the addition operator.
type PrimitiveHint uint8

const (
	HintNone PrimitiveHint = iota
	HintNumber
)

// ToPrimitive converts an object to a primitive by calling its valueOf
// and toString own properties in OrdinaryToPrimitive order. The default
// hint behaves like a number hint for ordinary objects, so both hints
// try valueOf first. Non-object input is returned unchanged; errors
// thrown by the callbacks propagate unchanged.
func (vm *VM) ToPrimitive(v Value, hint PrimitiveHint) (Value, error) {
	if v.typ != TypeObject {
		return v, nil
	}
	obj := v.AsPlainObject()
	for _, name := range [2]string{"valueOf", "toString"} {
		method, ok := obj.GetOwn(name)
		if !ok || method.AsNativeFunction() == nil {
			continue
		}
		result, err := vm.Call(method, v, nil)
		if err != nil {
			return Undefined, err
		}
		if result.typ != TypeObject {
			return result, nil
		}
	}
	return Undefined, vm.NewTypeError("Cannot convert object to primitive value")
}

// ToNumber implements the ToNumber coercion. Objects are first converted
// with a number hint; BigInt and Symbol values never convert implicitly.
func (vm *VM) ToNumber(v Value) (float64, error) {
	switch v.typ {
	case TypeFloatNumber:
		return v.AsFloat(), nil
	case TypeUndefined:
		return math.NaN(), nil
	case TypeNull:
		return 0, nil
	case TypeBoolean:
		if v.AsBoolean() {
			return 1, nil
		}
		return 0, nil
	case TypeString:
		return parseStringToNumber(v.AsString()), nil
	case TypeSymbol:
		return 0, vm.NewTypeError("Cannot convert a Symbol value to a number")
	case TypeBigInt:
		return 0, vm.NewTypeError("Cannot convert a BigInt value to a number")
	case TypeObject:
		prim, err := vm.ToPrimitive(v, HintNumber)
		if err != nil {
			return 0, err
		}
		return vm.ToNumber(prim)
	default:
		return math.NaN(), nil
	}
}

// ToStringValue implements the ToString coercion used by string
// concatenation. Symbols cannot be implicitly converted to strings.
func (vm *VM) ToStringValue(v Value) (string, error) {
	switch v.typ {
	case TypeSymbol:
		return "", vm.NewTypeError("Cannot convert a Symbol value to a string")
	case TypeObject:
		prim, err := vm.ToPrimitive(v, HintNone)
		if err != nil {
			return "", err
		}
		return vm.ToStringValue(prim)
	default:
		return v.ToString(), nil
	}
}
