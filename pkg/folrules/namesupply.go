package folrules

import "fmt"

// NameSupply is a deterministic fresh-variable-name generator seeded from
// the union of every variable name (bound or free) already in use across a
// set of formulas. It is the freshNameSource referenced throughout the
// spec by regularizeQualifiedVar and nextVar.
//
// Determinism here matters for the same reason it matters in the teacher's
// Fresh (term_utils.go): two invocations over structurally identical input
// must pick identical fresh names, or regular-form canonicalization and
// search determinism both break.
type NameSupply struct {
	used    map[string]struct{}
	counter int
	prefix  string
}

// NewNameSupply seeds a NameSupply from every variable name (bound and
// free) occurring anywhere in seeds, so names it produces cannot collide
// with anything already present.
func NewNameSupply(prefix string, seeds ...Formula) *NameSupply {
	used := make(map[string]struct{})
	for _, f := range seeds {
		collectAllVariableNames(f, used)
	}
	return &NameSupply{used: used, prefix: prefix}
}

// Next returns a fresh Variable guaranteed not to collide with any name
// this supply has seen, including names it has itself produced.
func (ns *NameSupply) Next() Variable {
	for {
		ns.counter++
		name := fmt.Sprintf("%s%d", ns.prefix, ns.counter)
		if _, clash := ns.used[name]; !clash {
			ns.used[name] = struct{}{}
			return Variable{Name: name}
		}
	}
}

// collectAllVariableNames walks every variable occurrence in f, bound or
// free, unlike Formula.Variables (which is free-variables only per spec).
func collectAllVariableNames(f Formula, out map[string]struct{}) {
	switch n := f.(type) {
	case PredicateFormula:
		for _, t := range n.Args {
			collectTermVarNames(t, out)
		}
	case NamedFormula:
		for _, t := range n.Parameters {
			collectTermVarNames(t, out)
		}
	case NotFormula:
		collectAllVariableNames(n.Child, out)
	case AndFormula:
		for _, c := range n.Children {
			collectAllVariableNames(c, out)
		}
	case OrFormula:
		for _, c := range n.Children {
			collectAllVariableNames(c, out)
		}
	case ImplyFormula:
		collectAllVariableNames(n.P, out)
		collectAllVariableNames(n.Q, out)
	case EquivFormula:
		collectAllVariableNames(n.P, out)
		collectAllVariableNames(n.Q, out)
	case ForAllFormula:
		out[n.V.Name] = struct{}{}
		collectAllVariableNames(n.Body, out)
	case ExistFormula:
		out[n.V.Name] = struct{}{}
		collectAllVariableNames(n.Body, out)
	}
}

func collectTermVarNames(t Term, out map[string]struct{}) {
	switch n := resolveRef(t).(type) {
	case VarTerm:
		out[n.V.Name] = struct{}{}
	case FunTerm:
		for _, c := range n.Children {
			collectTermVarNames(c, out)
		}
	}
}

// nextVar produces a variable guaranteed not to occur (bound or free)
// anywhere in f. It is the spec's nextVar(f) operation.
func nextVar(f Formula) Variable {
	return NewNameSupply("_v", f).Next()
}
