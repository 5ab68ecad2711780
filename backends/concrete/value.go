package concrete

import (
	"math"
	"strconv"
	"strings"

	"signa/sign"
)

type Kind int

const (
	IntKind Kind = iota
	FloatKind
	BoolKind
)

type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
}

func IntValue(i int64) Value     { return Value{Kind: IntKind, Int: i} }
func FloatValue(f float64) Value { return Value{Kind: FloatKind, Float: f} }
func BoolValue(b bool) Value     { return Value{Kind: BoolKind, Bool: b} }

// Abstract returns the sign atom describing v.
func (v Value) Abstract() sign.Value {
	switch v.Kind {
	case IntKind:
		return sign.FromInt(v.Int)
	case FloatKind:
		return sign.FromFloat(v.Float)
	default:
		return sign.FromBool(v.Bool)
	}
}

func (v Value) String() string {
	switch v.Kind {
	case IntKind:
		return strconv.FormatInt(v.Int, 10)
	case FloatKind:
		return formatFloat(v.Float)
	default:
		return strconv.FormatBool(v.Bool)
	}
}

// formatFloat prints floats the way the language always has: plain
// decimals with at least one fractional digit between 10^-3 and 10^7,
// scientific notation like 1.0E10 outside that range.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	if abs := math.Abs(f); abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}

	s := strconv.FormatFloat(f, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	e, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(e)
}
