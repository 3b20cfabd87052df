package folrules

import (
	"fmt"
	"strings"
)

// Term is a lazy sequence of symbolic terms: a variable, a named constant,
// a function application, or a matcher-binding placeholder. Terms are
// immutable; rewriting always produces a new Term rather than mutating one
// in place, so sharing a Term by reference carries no aliasing concerns.
//
// Term is a closed sum type over VarTerm, ConstTerm, FunTerm and RefTerm,
// the way the teacher's Term interface closes over *Var, *Atom and *Pair
// (core.go) — pattern matching on the concrete type replaces the teacher's
// virtual String/Equal/IsVar/Clone dispatch.
type Term interface {
	termNode()
	String() string
	// IsIdenticalTo is strict structural equality: no AC, no alpha-renaming.
	IsIdenticalTo(other Term) bool
}

// VarTerm is a bound or free variable occurrence.
type VarTerm struct {
	V Variable
}

func (VarTerm) termNode() {}

func (t VarTerm) String() string { return t.V.Name }

func (t VarTerm) IsIdenticalTo(other Term) bool {
	o, ok := other.(VarTerm)
	return ok && o.V == t.V
}

// ConstTerm is a named constant.
type ConstTerm struct {
	C Constant
}

func (ConstTerm) termNode() {}

func (t ConstTerm) String() string { return t.C.Name }

func (t ConstTerm) IsIdenticalTo(other Term) bool {
	o, ok := other.(ConstTerm)
	return ok && o.C == t.C
}

// FunTerm is a function application f(children...). Children is ordered:
// argument position is part of the term's identity.
type FunTerm struct {
	F        Function
	Children []Term
}

func (FunTerm) termNode() {}

func (t FunTerm) String() string {
	parts := make([]string, len(t.Children))
	for i, c := range t.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s(%s)", t.F.Name, strings.Join(parts, ", "))
}

func (t FunTerm) IsIdenticalTo(other Term) bool {
	o, ok := other.(FunTerm)
	if !ok || o.F != t.F || len(o.Children) != len(t.Children) {
		return false
	}
	for i := range t.Children {
		if !t.Children[i].IsIdenticalTo(o.Children[i]) {
			return false
		}
	}
	return true
}

// RefTerm is a placeholder used by the matcher to carry a binding while a
// rewrite is in flight. It is invisible to rules after substitution: once a
// replacer has resolved every RefTerm to the term it stands for, no RefTerm
// remains in the produced formula.
type RefTerm struct {
	T Term
}

func (RefTerm) termNode() {}

func (t RefTerm) String() string {
	if t.T == nil {
		return "<ref>"
	}
	return t.T.String()
}

func (t RefTerm) IsIdenticalTo(other Term) bool {
	return resolveRef(t).IsIdenticalTo(resolveRef(other))
}

// resolveRef unwraps any chain of RefTerm wrappers, returning the first
// non-RefTerm term reached (or the innermost unresolved RefTerm if the chain
// bottoms out on a nil binding).
func resolveRef(t Term) Term {
	for {
		ref, ok := t.(RefTerm)
		if !ok || ref.T == nil {
			return t
		}
		t = ref.T
	}
}

// termVariables accumulates the free variables occurring in t into out.
func termVariables(t Term, out map[Variable]struct{}) {
	switch n := resolveRef(t).(type) {
	case VarTerm:
		out[n.V] = struct{}{}
	case FunTerm:
		for _, c := range n.Children {
			termVariables(c, out)
		}
	}
}

// termConstants accumulates the multiset of constants occurring in t into out.
func termConstants(t Term, out map[Constant]int) {
	switch n := resolveRef(t).(type) {
	case ConstTerm:
		out[n.C]++
	case FunTerm:
		for _, c := range n.Children {
			termConstants(c, out)
		}
	}
}

// mapTerm rewrites t bottom-up: f is applied to every child first, then to
// the rebuilt node itself. This is the term-level primitive that Formula's
// RecurMapTerm uses at each of a formula's term positions.
func mapTerm(t Term, f func(Term) Term) Term {
	switch n := resolveRef(t).(type) {
	case FunTerm:
		children := make([]Term, len(n.Children))
		for i, c := range n.Children {
			children[i] = mapTerm(c, f)
		}
		return f(FunTerm{F: n.F, Children: children})
	default:
		return f(n)
	}
}

// replaceVarInTerm substitutes free variables in t per repl, leaving any
// variable not present in repl untouched.
func replaceVarInTerm(t Term, repl map[Variable]Term) Term {
	return mapTerm(t, func(leaf Term) Term {
		if v, ok := leaf.(VarTerm); ok {
			if r, found := repl[v.V]; found {
				return r
			}
		}
		return leaf
	})
}

// termOrdinal imposes a total order across term kinds, used only to break
// ties in FormulaComparator; it carries no semantic meaning on its own.
func termOrdinal(t Term) int {
	switch t.(type) {
	case VarTerm:
		return 0
	case ConstTerm:
		return 1
	case FunTerm:
		return 2
	default:
		return 3
	}
}

// compareTerms is a deterministic total order over Term, consistent with
// IsIdenticalTo, used to key sorted structures and to canonicalize AND/OR
// children in regular form.
func compareTerms(a, b Term) int {
	a, b = resolveRef(a), resolveRef(b)
	if oa, ob := termOrdinal(a), termOrdinal(b); oa != ob {
		return oa - ob
	}
	switch ta := a.(type) {
	case VarTerm:
		return strings.Compare(ta.V.Name, b.(VarTerm).V.Name)
	case ConstTerm:
		return strings.Compare(ta.C.Name, b.(ConstTerm).C.Name)
	case FunTerm:
		tb := b.(FunTerm)
		if ta.F.Name != tb.F.Name {
			return strings.Compare(ta.F.Name, tb.F.Name)
		}
		if len(ta.Children) != len(tb.Children) {
			return len(ta.Children) - len(tb.Children)
		}
		for i := range ta.Children {
			if c := compareTerms(ta.Children[i], tb.Children[i]); c != 0 {
				return c
			}
		}
		return 0
	default:
		return 0
	}
}
