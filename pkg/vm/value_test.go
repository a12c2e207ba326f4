package vm

import (
	"math"
	"testing"

	"cinder/pkg/bigint"
)

func TestValueTypeString(t *testing.T) {
	tests := []struct {
		typ  ValueType
		want string
	}{
		{TypeUndefined, "undefined"},
		{TypeNull, "null"},
		{TypeString, "string"},
		{TypeSymbol, "symbol"},
		{TypeFloatNumber, "number"},
		{TypeBigInt, "bigint"},
		{TypeBoolean, "boolean"},
		{TypeObject, "object"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("ValueType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestNumberToString(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{-1.5, "-1.5"},
		{123.456, "123.456"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{1e21, "1e+21"},
		{1e25, "1e+25"},
		{1e-7, "1e-7"},
		{2.5e-8, "2.5e-8"},
		{1e20, "100000000000000000000"},
	}
	for _, tt := range tests {
		if got := NumberValue(tt.value).ToString(); got != tt.want {
			t.Errorf("ToString(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestBigIntToString(t *testing.T) {
	mag, err := bigint.FromString("123456789012345678901234567890", 10)
	if err != nil {
		t.Fatalf("FromString failed: %v", err)
	}
	if got := NewBigInt(false, mag).ToString(); got != "123456789012345678901234567890" {
		t.Errorf("positive BigInt ToString = %q", got)
	}
	if got := NewBigInt(true, mag).ToString(); got != "-123456789012345678901234567890" {
		t.Errorf("negative BigInt ToString = %q", got)
	}
	if got := ZeroBigInt().ToString(); got != "0" {
		t.Errorf("zero BigInt ToString = %q", got)
	}
}

func TestNewBigIntCollapsesZero(t *testing.T) {
	// A zero magnitude ignores the requested sign and aliases the shared
	// zero value.
	positive := NewBigInt(false, bigint.Zero)
	negative := NewBigInt(true, bigint.Zero)
	if positive.obj != zeroBigInt.obj || negative.obj != zeroBigInt.obj {
		t.Errorf("NewBigInt with a zero magnitude did not return the shared zero")
	}
	if negative.AsBigInt().Negative() {
		t.Errorf("shared BigInt zero carries a sign")
	}
}

func TestPrimitiveToString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Undefined, "undefined"},
		{Null, "null"},
		{True, "true"},
		{False, "false"},
		{NewString("hi"), "hi"},
		{NewSymbol("tag"), "Symbol(tag)"},
		{NewObject(), "[object Object]"},
	}
	for _, tt := range tests {
		if got := tt.value.ToString(); got != tt.want {
			t.Errorf("ToString(%s) = %q, want %q", tt.value.Type(), got, tt.want)
		}
	}
}

func TestParseStringToNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"   ", 0},
		{"42", 42},
		{"  42  ", 42},
		{"-3.25", -3.25},
		{"1e3", 1000},
		{"0x10", 16},
		{"0XFF", 255},
		{"0b101", 5},
		{"0o17", 15},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{"INFINITY", math.NaN()},
		{"abc", math.NaN()},
		{"0x", math.NaN()},
		{"12px", math.NaN()},
	}
	for _, tt := range tests {
		got := parseStringToNumber(tt.input)
		if math.IsNaN(tt.want) {
			if !math.IsNaN(got) {
				t.Errorf("parseStringToNumber(%q) = %v, want NaN", tt.input, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("parseStringToNumber(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestAccessorPanicsOnWrongType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("AsFloat on a string did not panic")
		}
	}()
	NewString("nope").AsFloat()
}

func TestThrowRoundTrip(t *testing.T) {
	thrown := NewString("boom")
	err := Throw(thrown)
	got, ok := ExceptionValue(err)
	if !ok {
		t.Fatalf("ExceptionValue did not recognize a thrown error")
	}
	if got.obj != thrown.obj {
		t.Errorf("thrown value was not passed through unchanged")
	}
}

func TestErrorObjectMessage(t *testing.T) {
	vm := New()
	err := vm.NewTypeError("bad operand")
	if err.Error() != "TypeError: bad operand" {
		t.Errorf("Error() = %q", err.Error())
	}
	exc, ok := ExceptionValue(err)
	if !ok {
		t.Fatalf("type error is not a thrown value")
	}
	name, _ := exc.AsPlainObject().GetOwn("name")
	if name.ToString() != "TypeError" {
		t.Errorf("name = %q", name.ToString())
	}
}
