package typechecking

type Environment struct {
	Items map[string]Object

	Parent *Environment
}

func (e *Environment) Search(name string) (Object, bool) {
	if v, ok := e.Items[name]; ok {
		return v, true
	}
	if e.Parent == nil {
		return nil, false
	}
	return e.Parent.Search(name)
}

// Depth counts the environments between e and the prelude.
func (e *Environment) Depth() int {
	if e.Parent == nil {
		return -1
	}
	return e.Parent.Depth() + 1
}

var World = &Environment{
	Items: map[string]Object{
		"int":   Int,
		"float": Float,
	},
}
