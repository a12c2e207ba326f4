package vm

import "unsafe"

// PlainObject is the minimal object shape the arithmetic core needs: a
// bag of own properties that to-primitive coercion can look through for
// valueOf/toString callbacks.
type PlainObject struct {
	properties map[string]Value
}

// GetOwn looks up a direct (own) property by name. Returns (value, true) if present.
func (o *PlainObject) GetOwn(name string) (Value, bool) {
	v, ok := o.properties[name]
	return v, ok
}

// SetOwn sets or defines an own property.
func (o *PlainObject) SetOwn(name string, v Value) {
	if o.properties == nil {
		o.properties = make(map[string]Value)
	}
	o.properties[name] = v
}

func NewObject() Value {
	return Value{typ: TypeObject, obj: unsafe.Pointer(&PlainObject{})}
}

func NewValueFromPlainObject(obj *PlainObject) Value {
	return Value{typ: TypeObject, obj: unsafe.Pointer(obj)}
}

// NativeFunctionObject represents a native Go function callable from script values.
type NativeFunctionObject struct {
	Arity int
	Name  string
	Fn    func(this Value, args []Value) (Value, error)
}

func NewNativeFunction(arity int, name string, fn func(this Value, args []Value) (Value, error)) Value {
	return Value{typ: TypeNativeFunction, obj: unsafe.Pointer(&NativeFunctionObject{Arity: arity, Name: name, Fn: fn})}
}
