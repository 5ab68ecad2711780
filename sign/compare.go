package sign

import "fmt"

type truth int

const (
	yes truth = iota
	no
	maybe
)

func truthOf(v Value) truth {
	if v.Domain() != Bool {
		panic(fmt.Sprintf("sign: %s is not a Bool", v))
	}
	return truth(v - TrueBool)
}

func (t truth) value() Value {
	return TrueBool + Value(t)
}

var eqTable = [4][4]truth{
	pos:  {maybe, no, no, maybe},
	neg:  {no, maybe, no, maybe},
	zero: {no, no, yes, maybe},
	top:  {maybe, maybe, maybe, maybe},
}

var ltTable = [4][4]truth{
	pos:  {maybe, no, no, maybe},
	neg:  {yes, maybe, yes, maybe},
	zero: {yes, no, no, maybe},
	top:  {maybe, maybe, maybe, maybe},
}

var leTable = [4][4]truth{
	pos:  {maybe, no, no, maybe},
	neg:  {yes, maybe, yes, maybe},
	zero: {yes, no, yes, maybe},
	top:  {maybe, maybe, maybe, maybe},
}

func compare(op string, table *[4][4]truth, a, b Value) Value {
	mustMatch(op, a, b)
	return table[classOf(a)][classOf(b)].value()
}

func Eq(a, b Value) Value { return compare("==", &eqTable, a, b) }
func Ne(a, b Value) Value { return Not(Eq(a, b)) }
func Lt(a, b Value) Value { return compare("<", &ltTable, a, b) }
func Le(a, b Value) Value { return compare("<=", &leTable, a, b) }
func Gt(a, b Value) Value { return compare(">", &ltTable, b, a) }
func Ge(a, b Value) Value { return compare(">=", &leTable, b, a) }

var notTable = [3]truth{
	yes:   no,
	no:    yes,
	maybe: maybe,
}

// Rows and columns are ordered yes, no, maybe. A definite operand that
// decides the result on its own wins over an unknown one.
var andTable = [3][3]truth{
	yes:   {yes, no, maybe},
	no:    {no, no, no},
	maybe: {maybe, no, maybe},
}

var orTable = [3][3]truth{
	yes:   {yes, yes, yes},
	no:    {yes, no, maybe},
	maybe: {yes, maybe, maybe},
}

func Not(a Value) Value {
	return notTable[truthOf(a)].value()
}

func And(a, b Value) Value {
	return andTable[truthOf(a)][truthOf(b)].value()
}

func Or(a, b Value) Value {
	return orTable[truthOf(a)][truthOf(b)].value()
}
