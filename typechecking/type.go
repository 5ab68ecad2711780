package typechecking

import "signa/ast"

type Type interface {
	Object

	isType()
	String() string
}

type PrimitiveType int

const (
	Int PrimitiveType = iota
	Float
)

func (p PrimitiveType) isObject() {}
func (p PrimitiveType) isType()   {}
func (p PrimitiveType) String() string {
	switch p {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		panic("Bad primitive type")
	}
}
func (p PrimitiveType) ObjectName() string {
	return p.String()
}

var _ Type = PrimitiveType(0)

// TypeOf maps a declared type to its checker type.
func TypeOf(t ast.Type) Type {
	object, found := World.Search(t.String())
	if !found {
		panic("no prelude type for " + t.String())
	}
	return object.(Type)
}
