package vm

import (
	"errors"
	"fmt"
)

// exceptionError carries a thrown runtime value through Go error returns.
// Coercion callbacks and the dispatcher propagate these unchanged; the
// first throw short-circuits all remaining work.
type exceptionError struct {
	exception Value
}

func (e exceptionError) Error() string {
	if obj := e.exception.AsPlainObject(); obj != nil {
		name, hasName := obj.GetOwn("name")
		message, hasMessage := obj.GetOwn("message")
		if hasName && hasMessage {
			return fmt.Sprintf("%s: %s", name.ToString(), message.ToString())
		}
	}
	return "Uncaught " + e.exception.ToString()
}

// Throw wraps a runtime value for propagation as a Go error.
func Throw(exception Value) error {
	return exceptionError{exception: exception}
}

// ExceptionValue extracts the thrown value from an error produced by this
// package. ok is false for foreign errors.
func ExceptionValue(err error) (Value, bool) {
	var ex exceptionError
	if errors.As(err, &ex) {
		return ex.exception, true
	}
	return Undefined, false
}

func (vm *VM) newErrorObject(name, message string) error {
	obj := NewObject().AsPlainObject()
	obj.SetOwn("name", NewString(name))
	obj.SetOwn("message", NewString(message))
	return exceptionError{exception: NewValueFromPlainObject(obj)}
}

// NewTypeError constructs a TypeError exception error for helpers to return
func (vm *VM) NewTypeError(message string) error {
	return vm.newErrorObject("TypeError", message)
}

// NewRangeError constructs a RangeError exception error for helpers to return
func (vm *VM) NewRangeError(message string) error {
	return vm.newErrorObject("RangeError", message)
}

// NewArithmeticError constructs an ArithmeticError exception error for helpers to return
func (vm *VM) NewArithmeticError(message string) error {
	return vm.newErrorObject("ArithmeticError", message)
}

// NewError constructs a generic Error exception error for helpers to return
func (vm *VM) NewError(message string) error {
	return vm.newErrorObject("Error", message)
}
