package ast

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		for _, u := range n.Units {
			Inspect(u, f)
		}
	case *BlockStmt:
		for _, u := range n.Units {
			Inspect(u, f)
		}
	case *Decl:
		if n.Init != nil {
			Inspect(n.Init, f)
		}
	case *AssignStmt:
		Inspect(n.Value, f)
	case *PrintStmt:
		Inspect(n.Value, f)
	case *IfStmt:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		if n.Else != nil {
			Inspect(n.Else, f)
		}
	case *WhileStmt:
		Inspect(n.Cond, f)
		Inspect(n.Body, f)
	case *BinaryExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *NegExpr:
		Inspect(n.Operand, f)
	case *CompareExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *LogicalExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *NotCond:
		Inspect(n.Operand, f)
	case *IntLit, *FloatLit, *Ident, *ReadIntExpr, *ReadFloatExpr:
	default:
		panic("Unhandled node " + n.GetSpan().String())
	}
}

// Declarations returns every declaration in the program in source order.
func Declarations(p *Program) []*Decl {
	var decls []*Decl
	Inspect(p, func(n Node) bool {
		if d, ok := n.(*Decl); ok {
			decls = append(decls, d)
		}
		return true
	})
	return decls
}
