// Package ast defines the parsed JSON value tree consumed by the xjson
// mapping engine.
//
// A tree is a closed union of six node kinds mirroring the JSON grammar:
// Null, Bool, Number, String, Array, and Object. Object members preserve
// source order, and numbers preserve their source lexeme so the mapper can
// choose a representation after the fact. Trees are immutable once parsed.
package ast

import "strconv"

// Kind identifies the variant held by a Value.
type Kind int

// Node kinds, one per JSON value production.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a node in a parsed JSON tree.
// The concrete types are Null, Bool, Number, String, Array, and Object.
type Value interface {
	Kind() Kind
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON true or false literal.
type Bool bool

// Number is a JSON number, stored as its source lexeme.
type Number string

// String is a JSON string with escapes already decoded.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Member is a single "key": value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Object is an ordered sequence of members. Member order matches the
// source text; duplicate keys are preserved as parsed.
type Object []Member

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

// Float returns the number as a float64.
func (n Number) Float() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int returns the number as an int64. It fails on fractional lexemes.
func (n Number) Int() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// Uint returns the number as a uint64. It fails on fractional or negative
// lexemes.
func (n Number) Uint() (uint64, error) {
	return strconv.ParseUint(string(n), 10, 64)
}

// Find returns the value of the first member with the given key.
func (o Object) Find(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Has reports whether the object contains a member with the given key.
func (o Object) Has(key string) bool {
	_, ok := o.Find(key)
	return ok
}
