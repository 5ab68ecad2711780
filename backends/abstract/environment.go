package abstract

import (
	"fmt"

	"signa/sign"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

type slot struct {
	domain sign.Domain
	value  mo.Option[sign.Value]
}

type scope struct {
	names []string
	slots map[string]*slot
}

func newScope() *scope {
	return &scope{slots: map[string]*slot{}}
}

func (s *scope) clone() *scope {
	c := &scope{
		names: append([]string(nil), s.names...),
		slots: make(map[string]*slot, len(s.slots)),
	}
	for name, sl := range s.slots {
		dup := *sl
		c.slots[name] = &dup
	}
	return c
}

// Environment is a stack of scopes mapping variable names to sign values.
// A variable is declared before it is bound; declared but unbound
// variables are invisible to Lookup, Join and Identical.
type Environment struct {
	scopes []*scope

	// stashed holds the states saved by outstanding forks, innermost last.
	stashed [][]*scope
}

func NewEnvironment() *Environment {
	return &Environment{scopes: []*scope{newScope()}}
}

func (e *Environment) current() *scope {
	return e.scopes[len(e.scopes)-1]
}

func (e *Environment) Depth() int {
	return len(e.scopes)
}

func (e *Environment) NewScope() {
	e.scopes = append(e.scopes, newScope())
}

// ExitScope pops the innermost scope. It refuses to pop the global scope.
func (e *Environment) ExitScope() bool {
	if len(e.scopes) <= 1 {
		return false
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
	return true
}

// Declare adds an unbound variable to the innermost scope, reporting false
// if the scope already has one with that name.
func (e *Environment) Declare(name string, domain sign.Domain) bool {
	s := e.current()
	if _, exists := s.slots[name]; exists {
		return false
	}
	s.names = append(s.names, name)
	s.slots[name] = &slot{domain: domain, value: mo.None[sign.Value]()}
	return true
}

func (e *Environment) find(name string) *slot {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if sl, ok := e.scopes[i].slots[name]; ok {
			return sl
		}
	}
	return nil
}

// Bind sets the nearest variable called name.
func (e *Environment) Bind(name string, value sign.Value) {
	sl := e.find(name)
	if sl == nil {
		panic(fmt.Sprintf("abstract: bind of undeclared variable %s", name))
	}
	if value.Domain() != sl.domain {
		panic(fmt.Sprintf("abstract: cannot bind %s to %s variable %s", value, sl.domain, name))
	}
	sl.value = mo.Some(value)
}

// Lookup returns the innermost bound value of name.
func (e *Environment) Lookup(name string) mo.Option[sign.Value] {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if sl, ok := e.scopes[i].slots[name]; ok && sl.value.IsPresent() {
			return sl.value
		}
	}
	return mo.None[sign.Value]()
}

// Fork switches the environment to a deep copy of itself, keeping the
// saved state aside until the matching Restore. Forks nest; each Restore
// undoes the most recent outstanding Fork.
func (e *Environment) Fork() {
	e.stashed = append(e.stashed, e.scopes)
	e.scopes = lo.Map(e.scopes, func(s *scope, _ int) *scope {
		return s.clone()
	})
}

// Restore switches back to the state saved by the last Fork and returns
// the forked copy as an independent environment.
func (e *Environment) Restore() *Environment {
	if len(e.stashed) == 0 {
		panic("abstract: restore without fork")
	}
	branch := &Environment{scopes: e.scopes}
	e.scopes = e.stashed[len(e.stashed)-1]
	e.stashed = e.stashed[:len(e.stashed)-1]
	return branch
}

// Forks counts the outstanding forks.
func (e *Environment) Forks() int {
	return len(e.stashed)
}

// Join merges other into e and reports whether e changed. Every variable
// bound in both takes the join of the two values; everything else in e is
// left alone. Scopes are matched by position, so both environments must
// share the same shape.
func (e *Environment) Join(other *Environment) bool {
	changed := false
	e.each(other, func(mine, theirs *slot) {
		before := mine.value.MustGet()
		after := sign.Merge(before, theirs.value.MustGet())
		if after != before {
			mine.value = mo.Some(after)
			changed = true
		}
	})
	return changed
}

// Identical reports whether every variable bound in e is bound to the same
// value in other.
func (e *Environment) Identical(other *Environment) bool {
	same := true
	for i, s := range e.scopes {
		for _, name := range s.names {
			mine := s.slots[name]
			if mine.value.IsAbsent() {
				continue
			}
			theirs := other.slotAt(i, name)
			if theirs == nil || theirs.value.IsAbsent() || theirs.value.MustGet() != mine.value.MustGet() {
				same = false
			}
		}
	}
	return same
}

func (e *Environment) slotAt(depth int, name string) *slot {
	if depth >= len(e.scopes) {
		return nil
	}
	return e.scopes[depth].slots[name]
}

// each calls f for every variable bound in both e and other.
func (e *Environment) each(other *Environment, f func(mine, theirs *slot)) {
	for i, s := range e.scopes {
		for _, name := range s.names {
			mine := s.slots[name]
			theirs := other.slotAt(i, name)
			if mine.value.IsAbsent() || theirs == nil || theirs.value.IsAbsent() {
				continue
			}
			f(mine, theirs)
		}
	}
}

type Binding struct {
	Depth  int
	Name   string
	Domain sign.Domain
	Value  mo.Option[sign.Value]
}

func (b Binding) String() string {
	if v, ok := b.Value.Get(); ok {
		return fmt.Sprintf("%s: %s", b.Name, v)
	}
	return fmt.Sprintf("%s: unbound %s", b.Name, b.Domain)
}

// Snapshot lists every variable, outermost scope first and in declaration
// order within a scope.
func (e *Environment) Snapshot() []Binding {
	var out []Binding
	for i, s := range e.scopes {
		out = append(out, lo.Map(s.names, func(name string, _ int) Binding {
			sl := s.slots[name]
			return Binding{i, name, sl.domain, sl.value}
		})...)
	}
	return out
}

// Bound returns the visible bound value of each name.
func (e *Environment) Bound() map[string]sign.Value {
	out := map[string]sign.Value{}
	for _, b := range e.Snapshot() {
		if v, ok := b.Value.Get(); ok {
			out[b.Name] = v
		}
	}
	return out
}
