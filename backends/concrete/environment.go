package concrete

import "github.com/samber/mo"

type cell struct {
	value mo.Option[Value]
}

// Environment is one lexical scope of variables.
type Environment struct {
	Items map[string]*cell

	Parent *Environment
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{map[string]*cell{}, parent}
}

func (e *Environment) Search(name string) (*cell, bool) {
	if v, ok := e.Items[name]; ok {
		return v, true
	}
	if e.Parent == nil {
		return nil, false
	}
	return e.Parent.Search(name)
}

func (e *Environment) Declare(name string) bool {
	if _, exists := e.Items[name]; exists {
		return false
	}
	e.Items[name] = &cell{mo.None[Value]()}
	return true
}

func (e *Environment) Bind(name string, v Value) bool {
	c, ok := e.Search(name)
	if !ok {
		return false
	}
	c.value = mo.Some(v)
	return true
}

func (e *Environment) Lookup(name string) mo.Option[Value] {
	if c, ok := e.Search(name); ok {
		return c.value
	}
	return mo.None[Value]()
}
