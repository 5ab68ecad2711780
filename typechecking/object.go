package typechecking

import "signa/ast"

type Object interface {
	isObject()
	ObjectName() string
}

// Variable is a declared program variable.
type Variable struct {
	Name string
	Type Type
	Decl *ast.Decl

	// Depth is the scope depth of the declaration, 0 being global.
	Depth int
}

func (v *Variable) isObject() {}
func (v *Variable) ObjectName() string {
	return v.Name
}

var _ Object = &Variable{}
