package sign

import "fmt"

// class is the sign of a numeric atom with its domain stripped, so Int and
// Float share one set of tables.
type class int

const (
	pos class = iota
	neg
	zero
	top
	bad
)

func classOf(v Value) class {
	switch v.Domain() {
	case Int:
		return class(v - PosInt)
	case Float:
		return class(v - PosFloat)
	}
	panic(fmt.Sprintf("sign: %s is not numeric", v))
}

func (c class) in(d Domain) Value {
	if c == bad {
		return Illegal
	}
	switch d {
	case Int:
		return PosInt + Value(c)
	case Float:
		return PosFloat + Value(c)
	}
	panic("sign: " + d.String() + " is not numeric")
}

// Rows are the left operand, columns the right, both ordered pos, neg, zero, top.

var addTable = [4][4]class{
	pos:  {pos, top, pos, top},
	neg:  {top, neg, neg, top},
	zero: {pos, neg, zero, top},
	top:  {top, top, top, top},
}

var subTable = [4][4]class{
	pos:  {top, pos, pos, top},
	neg:  {neg, top, neg, top},
	zero: {neg, pos, zero, top},
	top:  {top, top, top, top},
}

var mulTable = [4][4]class{
	pos:  {pos, neg, zero, top},
	neg:  {neg, pos, zero, top},
	zero: {zero, zero, zero, zero},
	top:  {top, top, zero, top},
}

// Float products of nonzero operands may underflow to zero, so only a zero
// factor decides the result.
var floatMulTable = [4][4]class{
	pos:  {top, top, zero, top},
	neg:  {top, top, zero, top},
	zero: {zero, zero, zero, zero},
	top:  {top, top, zero, top},
}

// Any divisor that may be zero is bad. Quotient signs are not tracked
// because integer division truncates toward zero.
var divTable = [4][4]class{
	pos:  {top, top, bad, bad},
	neg:  {top, top, bad, bad},
	zero: {zero, zero, bad, bad},
	top:  {top, top, bad, bad},
}

var negTable = [4]class{
	pos:  neg,
	neg:  pos,
	zero: zero,
	top:  top,
}

func arith(op string, table *[4][4]class, a, b Value) Value {
	mustMatch(op, a, b)
	return table[classOf(a)][classOf(b)].in(a.Domain())
}

func Add(a, b Value) Value { return arith("+", &addTable, a, b) }
func Sub(a, b Value) Value { return arith("-", &subTable, a, b) }

func Mul(a, b Value) Value {
	if a.Domain() == Float {
		return arith("*", &floatMulTable, a, b)
	}
	return arith("*", &mulTable, a, b)
}

// Div returns Illegal whenever the divisor may denote zero.
func Div(a, b Value) Value { return arith("/", &divTable, a, b) }

func Neg(a Value) Value {
	return negTable[classOf(a)].in(a.Domain())
}
