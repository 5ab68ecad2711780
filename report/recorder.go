package report

import (
	"signa/ast"
	"signa/backends/abstract"
	"signa/sign"
)

type BranchVerdict struct {
	Stmt    *ast.IfStmt
	Verdict sign.Value
}

type LoopRound struct {
	Round   int
	Verdict sign.Value
	Stable  bool
}

type Loop struct {
	Stmt   *ast.WhileStmt
	Rounds []LoopRound
}

type Printed struct {
	Stmt  *ast.PrintStmt
	Value sign.Value
}

// Recorder keeps everything an analysis reports, in the order it was
// reported. A branch inside a loop is reported once per round, and loop
// entries appear when their first round ends, so an inner loop is listed
// before the loop around it.
type Recorder struct {
	Branches []BranchVerdict
	Loops    []*Loop
	Prints   []Printed

	open map[*ast.WhileStmt]*Loop
}

var _ abstract.Tracer = &Recorder{}

func (r *Recorder) Branch(s *ast.IfStmt, verdict sign.Value) {
	r.Branches = append(r.Branches, BranchVerdict{s, verdict})
}

// Round starts a new Loop at round 1, so a loop analyzed once per round of
// an enclosing loop gets one entry per analysis.
func (r *Recorder) Round(s *ast.WhileStmt, round int, verdict sign.Value, stable bool) {
	if r.open == nil {
		r.open = map[*ast.WhileStmt]*Loop{}
	}
	l, ok := r.open[s]
	if !ok || round == 1 {
		l = &Loop{Stmt: s}
		r.open[s] = l
		r.Loops = append(r.Loops, l)
	}
	l.Rounds = append(l.Rounds, LoopRound{round, verdict, stable})
}

func (r *Recorder) Print(s *ast.PrintStmt, value sign.Value) {
	r.Prints = append(r.Prints, Printed{s, value})
}

// Describe words a condition verdict for people.
func Describe(verdict sign.Value) string {
	switch verdict {
	case sign.TrueBool:
		return "always true"
	case sign.FalseBool:
		return "always false"
	}
	return "either"
}
