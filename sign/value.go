// Package sign implements the sign domain: a flat lattice per value domain
// classifying numbers as positive, negative, zero or unknown, and booleans
// as true, false or unknown.
package sign

import (
	"fmt"
	"math"
)

type Domain int

const (
	Int Domain = iota
	Float
	Bool
	Invalid
)

func (d Domain) String() string {
	switch d {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	default:
		return "Invalid"
	}
}

// Value is one atom of a domain. Every Value belongs to exactly one domain;
// Illegal is the lone member of Invalid.
type Value int

const (
	Illegal Value = iota

	PosInt
	NegInt
	ZeroInt
	AnyInt

	PosFloat
	NegFloat
	ZeroFloat
	AnyFloat

	TrueBool
	FalseBool
	AnyBool
)

// All lists every legal atom in declaration order.
var All = []Value{
	PosInt, NegInt, ZeroInt, AnyInt,
	PosFloat, NegFloat, ZeroFloat, AnyFloat,
	TrueBool, FalseBool, AnyBool,
}

var names = [...]string{
	Illegal:   "Illegal",
	PosInt:    "PosInt",
	NegInt:    "NegInt",
	ZeroInt:   "ZeroInt",
	AnyInt:    "AnyInt",
	PosFloat:  "PosFloat",
	NegFloat:  "NegFloat",
	ZeroFloat: "ZeroFloat",
	AnyFloat:  "AnyFloat",
	TrueBool:  "TrueBool",
	FalseBool: "FalseBool",
	AnyBool:   "AnyBool",
}

func (v Value) String() string {
	if v < 0 || int(v) >= len(names) {
		return fmt.Sprintf("Value(%d)", int(v))
	}
	return names[v]
}

// Parse is the inverse of String.
func Parse(s string) (Value, bool) {
	for i, name := range names {
		if name == s {
			return Value(i), true
		}
	}
	return Illegal, false
}

func (v Value) Domain() Domain {
	switch {
	case v >= PosInt && v <= AnyInt:
		return Int
	case v >= PosFloat && v <= AnyFloat:
		return Float
	case v >= TrueBool && v <= AnyBool:
		return Bool
	default:
		return Invalid
	}
}

// Top returns the Any atom of d.
func Top(d Domain) Value {
	switch d {
	case Int:
		return AnyInt
	case Float:
		return AnyFloat
	case Bool:
		return AnyBool
	}
	panic("sign: no top for " + d.String())
}

func (v Value) IsTop() bool {
	return v == AnyInt || v == AnyFloat || v == AnyBool
}

// Leq reports whether a is at or below b in the lattice, i.e. whether
// every concrete value described by a is also described by b.
func Leq(a, b Value) bool {
	return a == b || (a.Domain() == b.Domain() && b.IsTop())
}

// Merge is the lattice join.
func Merge(a, b Value) Value {
	mustMatch("merge", a, b)
	if a == b {
		return a
	}
	return Top(a.Domain())
}

func FromInt(i int64) Value {
	switch {
	case i > 0:
		return PosInt
	case i < 0:
		return NegInt
	default:
		return ZeroInt
	}
}

func FromFloat(f float64) Value {
	switch {
	case math.IsNaN(f):
		return AnyFloat
	case f > 0:
		return PosFloat
	case f < 0:
		return NegFloat
	default:
		return ZeroFloat
	}
}

func FromBool(b bool) Value {
	if b {
		return TrueBool
	}
	return FalseBool
}

func mustMatch(op string, a, b Value) {
	if a.Domain() == Invalid || a.Domain() != b.Domain() {
		panic(fmt.Sprintf("sign: %s of %s and %s: mismatched domains", op, a, b))
	}
}
