package ast

import "fmt"

// Point is a zero-based row and byte column in a source file.
type Point struct {
	Row, Column int
}

type Span struct {
	Start, End Point
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Start.Row+1, s.Start.Column+1)
}

// To returns the span from the start of s to the end of o.
func (s Span) To(o Span) Span {
	return Span{s.Start, o.End}
}

type Node interface {
	GetSpan() Span
}

// Unit is anything that may appear in a unit list: a declaration or a
// statement.
type Unit interface {
	Node
	isUnit()
}

type Stmt interface {
	Unit
	isStmt()
}

type Expr interface {
	Node
	isExpr()
}

// Cond is a boolean condition, only valid in if and while headers.
type Cond interface {
	Node
	isCond()
}

type Program struct {
	Units         []Unit
	Documentation string

	Span Span
}

func (p *Program) GetSpan() Span { return p.Span }

type Type int

const (
	IntType Type = iota
	FloatType
)

func (t Type) String() string {
	if t == FloatType {
		return "float"
	}
	return "int"
}

type Decl struct {
	Type Type
	Name string
	Init Expr

	Span Span
}

func (d *Decl) GetSpan() Span { return d.Span }
func (*Decl) isUnit()         {}

type AssignStmt struct {
	Name  string
	Value Expr

	Span Span
}

func (s *AssignStmt) GetSpan() Span { return s.Span }
func (*AssignStmt) isUnit()         {}
func (*AssignStmt) isStmt()         {}

type PrintStmt struct {
	Value Expr

	Span Span
}

func (s *PrintStmt) GetSpan() Span { return s.Span }
func (*PrintStmt) isUnit()         {}
func (*PrintStmt) isStmt()         {}

type BlockStmt struct {
	Units []Unit

	Span Span
}

func (s *BlockStmt) GetSpan() Span { return s.Span }
func (*BlockStmt) isUnit()         {}
func (*BlockStmt) isStmt()         {}

type IfStmt struct {
	Cond Cond
	Then Stmt
	Else Stmt

	Span Span
}

func (s *IfStmt) GetSpan() Span { return s.Span }
func (*IfStmt) isUnit()         {}
func (*IfStmt) isStmt()         {}

type WhileStmt struct {
	Cond Cond
	Body Stmt

	Span Span
}

func (s *WhileStmt) GetSpan() Span { return s.Span }
func (*WhileStmt) isUnit()         {}
func (*WhileStmt) isStmt()         {}

type IntLit struct {
	Value int64

	Span Span
}

func (e *IntLit) GetSpan() Span { return e.Span }
func (*IntLit) isExpr()         {}

type FloatLit struct {
	Value float64
	Text  string

	Span Span
}

func (e *FloatLit) GetSpan() Span { return e.Span }
func (*FloatLit) isExpr()         {}

type Ident struct {
	Name string

	Span Span
}

func (e *Ident) GetSpan() Span { return e.Span }
func (*Ident) isExpr()         {}

type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
)

func (o BinaryOp) String() string {
	return [...]string{"+", "-", "*", "/"}[o]
}

type BinaryExpr struct {
	Op          BinaryOp
	Left, Right Expr

	Span Span
}

func (e *BinaryExpr) GetSpan() Span { return e.Span }
func (*BinaryExpr) isExpr()         {}

type NegExpr struct {
	Operand Expr

	Span Span
}

func (e *NegExpr) GetSpan() Span { return e.Span }
func (*NegExpr) isExpr()         {}

type ReadIntExpr struct {
	Span Span
}

func (e *ReadIntExpr) GetSpan() Span { return e.Span }
func (*ReadIntExpr) isExpr()         {}

type ReadFloatExpr struct {
	Span Span
}

func (e *ReadFloatExpr) GetSpan() Span { return e.Span }
func (*ReadFloatExpr) isExpr()         {}

type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Gt
	Le
	Ge
)

func (o CompareOp) String() string {
	return [...]string{"==", "!=", "<", ">", "<=", ">="}[o]
}

type CompareExpr struct {
	Op          CompareOp
	Left, Right Expr

	Span Span
}

func (c *CompareExpr) GetSpan() Span { return c.Span }
func (*CompareExpr) isCond()         {}

type LogicalOp int

const (
	And LogicalOp = iota
	Or
)

func (o LogicalOp) String() string {
	if o == Or {
		return "||"
	}
	return "&&"
}

type LogicalExpr struct {
	Op          LogicalOp
	Left, Right Cond

	Span Span
}

func (c *LogicalExpr) GetSpan() Span { return c.Span }
func (*LogicalExpr) isCond()         {}

type NotCond struct {
	Operand Cond

	Span Span
}

func (c *NotCond) GetSpan() Span { return c.Span }
func (*NotCond) isCond()         {}
