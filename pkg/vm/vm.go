// Package vm implements the runtime value model and the arithmetic
// dispatcher of the cinder scripting core. Operator evaluation follows
// the ECMAScript ordering: to-primitive coercion left-to-right with
// fail-fast error propagation, then string concatenation, BigInt
// arithmetic, or IEEE-754 double arithmetic.
package vm

// VM evaluates arithmetic over runtime values. The runtime is single
// threaded and every operation runs to completion; the only re-entrant
// calls are the to-primitive callbacks into objects.
type VM struct {
	bigIntEnabled bool
}

type Option func(*VM)

// WithoutBigInt disables the BigInt value kind. The number paths are
// unchanged; any BigInt operand raises a TypeError instead.
func WithoutBigInt() Option {
	return func(vm *VM) { vm.bigIntEnabled = false }
}

func New(opts ...Option) *VM {
	vm := &VM{bigIntEnabled: true}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// BigIntEnabled reports whether the BigInt value kind is available.
func (vm *VM) BigIntEnabled() bool {
	return vm.bigIntEnabled
}

// Call invokes a callable value. Only native functions are callable in
// this core; everything else is a TypeError.
func (vm *VM) Call(fn Value, this Value, args []Value) (Value, error) {
	native := fn.AsNativeFunction()
	if native == nil {
		return Undefined, vm.NewTypeError("Value is not callable")
	}
	return native.Fn(this, args)
}
