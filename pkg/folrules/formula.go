package folrules

import (
	"fmt"
	"sort"
	"strings"
)

// Formula is a first-order-logic formula tree. Leaves are predicate or
// named-schema atoms; internal nodes are logical connectives or quantifiers.
//
// Formula is a closed sum type over the nine node kinds below, the way
// Term closes over four term kinds — pattern matching on the concrete type
// replaces virtual dispatch, per the teacher's Term/Atom/Pair split in
// core.go generalized to a richer alphabet of node kinds.
type Formula interface {
	formulaNode()
	String() string

	// IsIdenticalTo is strict structural equality: AC is not applied, and
	// bound variables must match by name (no alpha-renaming).
	IsIdenticalTo(other Formula) bool

	// Flatten collapses nested AND into AND and nested OR into OR,
	// one level, non-recursively into other node kinds.
	Flatten() Formula

	// Variables returns the set of free variables of the formula.
	Variables() map[Variable]struct{}

	// AllConstants returns the multiset of constants appearing in the
	// formula's terms.
	AllConstants() map[Constant]int

	// RecurMapTerm rewrites every term position bottom-up via f, preserving
	// the formula's logical structure.
	RecurMapTerm(f func(Term) Term) Formula

	// RegularizeBoundVars alpha-renames every bound variable using fresh,
	// top-down, to avoid capture before a substitution is applied.
	RegularizeBoundVars(fresh *NameSupply) Formula

	// ReplaceVar substitutes free variable occurrences per repl.
	ReplaceVar(repl map[Variable]Term) Formula

	// ReplaceNamed substitutes named-formula atoms per repl, keyed by name.
	ReplaceNamed(repl map[string]Formula) Formula

	// RegularForm returns the canonical representative of this formula's
	// equivalence class under AND/OR associativity, commutativity, bound
	// variable alpha-renaming, and duplicate-conjunct/disjunct removal.
	RegularForm() Formula
}

// PredicateFormula is an atomic predicate application p(args...).
type PredicateFormula struct {
	P    Predicate
	Args []Term
}

func (PredicateFormula) formulaNode() {}

func (f PredicateFormula) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.P.Name, strings.Join(parts, ", "))
}

func (f PredicateFormula) IsIdenticalTo(other Formula) bool {
	o, ok := other.(PredicateFormula)
	if !ok || o.P != f.P || len(o.Args) != len(f.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].IsIdenticalTo(o.Args[i]) {
			return false
		}
	}
	return true
}

func (f PredicateFormula) Flatten() Formula { return f }

func (f PredicateFormula) Variables() map[Variable]struct{} {
	out := make(map[Variable]struct{})
	for _, a := range f.Args {
		termVariables(a, out)
	}
	return out
}

func (f PredicateFormula) AllConstants() map[Constant]int {
	out := make(map[Constant]int)
	for _, a := range f.Args {
		termConstants(a, out)
	}
	return out
}

func (f PredicateFormula) RecurMapTerm(mf func(Term) Term) Formula {
	args := make([]Term, len(f.Args))
	for i, a := range f.Args {
		args[i] = mapTerm(a, mf)
	}
	return PredicateFormula{P: f.P, Args: args}
}

func (f PredicateFormula) RegularizeBoundVars(*NameSupply) Formula { return f }

func (f PredicateFormula) ReplaceVar(repl map[Variable]Term) Formula {
	args := make([]Term, len(f.Args))
	for i, a := range f.Args {
		args[i] = replaceVarInTerm(a, repl)
	}
	return PredicateFormula{P: f.P, Args: args}
}

func (f PredicateFormula) ReplaceNamed(map[string]Formula) Formula { return f }

func (f PredicateFormula) RegularForm() Formula { return regularForm(f) }

// NamedFormula is a named-schema atom, e.g. a hole standing for an arbitrary
// sub-formula parameterized by the given terms (used by schematic rules as
// a placeholder for "phi(x)"-style holes).
type NamedFormula struct {
	Name       string
	Parameters []Term
}

func (NamedFormula) formulaNode() {}

func (f NamedFormula) String() string {
	if len(f.Parameters) == 0 {
		return f.Name
	}
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s[%s]", f.Name, strings.Join(parts, ", "))
}

func (f NamedFormula) IsIdenticalTo(other Formula) bool {
	o, ok := other.(NamedFormula)
	if !ok || o.Name != f.Name || len(o.Parameters) != len(f.Parameters) {
		return false
	}
	for i := range f.Parameters {
		if !f.Parameters[i].IsIdenticalTo(o.Parameters[i]) {
			return false
		}
	}
	return true
}

func (f NamedFormula) Flatten() Formula { return f }

func (f NamedFormula) Variables() map[Variable]struct{} {
	out := make(map[Variable]struct{})
	for _, p := range f.Parameters {
		termVariables(p, out)
	}
	return out
}

func (f NamedFormula) AllConstants() map[Constant]int {
	out := make(map[Constant]int)
	for _, p := range f.Parameters {
		termConstants(p, out)
	}
	return out
}

func (f NamedFormula) RecurMapTerm(mf func(Term) Term) Formula {
	params := make([]Term, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = mapTerm(p, mf)
	}
	return NamedFormula{Name: f.Name, Parameters: params}
}

func (f NamedFormula) RegularizeBoundVars(*NameSupply) Formula { return f }

func (f NamedFormula) ReplaceVar(repl map[Variable]Term) Formula {
	params := make([]Term, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = replaceVarInTerm(p, repl)
	}
	return NamedFormula{Name: f.Name, Parameters: params}
}

func (f NamedFormula) ReplaceNamed(repl map[string]Formula) Formula {
	if r, ok := repl[f.Name]; ok {
		return r
	}
	return f
}

func (f NamedFormula) RegularForm() Formula { return regularForm(f) }

// NotFormula is a negation.
type NotFormula struct {
	Child Formula
}

func (NotFormula) formulaNode() {}

func (f NotFormula) String() string { return fmt.Sprintf("not(%s)", f.Child.String()) }

func (f NotFormula) IsIdenticalTo(other Formula) bool {
	o, ok := other.(NotFormula)
	return ok && f.Child.IsIdenticalTo(o.Child)
}

func (f NotFormula) Flatten() Formula { return f }

func (f NotFormula) Variables() map[Variable]struct{} { return f.Child.Variables() }

func (f NotFormula) AllConstants() map[Constant]int { return f.Child.AllConstants() }

func (f NotFormula) RecurMapTerm(mf func(Term) Term) Formula {
	return NotFormula{Child: f.Child.RecurMapTerm(mf)}
}

func (f NotFormula) RegularizeBoundVars(fresh *NameSupply) Formula {
	return NotFormula{Child: f.Child.RegularizeBoundVars(fresh)}
}

func (f NotFormula) ReplaceVar(repl map[Variable]Term) Formula {
	return NotFormula{Child: f.Child.ReplaceVar(repl)}
}

func (f NotFormula) ReplaceNamed(repl map[string]Formula) Formula {
	return NotFormula{Child: f.Child.ReplaceNamed(repl)}
}

func (f NotFormula) RegularForm() Formula { return regularForm(f) }

// AndFormula is an n-ary conjunction. Children is stored as a slice, the
// spec's "multiset" represented as an order-insensitive sequence: the
// regular-form invariant (duplicate removal + canonical ordering) is what
// makes two children slices with the same elements compare equal via
// IsIdenticalTo on their regular forms, so no dedicated multiset type is
// needed.
type AndFormula struct {
	Children []Formula
}

func (AndFormula) formulaNode() {}

func (f AndFormula) String() string { return joinConnective(f.Children, "and") }

func (f AndFormula) IsIdenticalTo(other Formula) bool {
	o, ok := other.(AndFormula)
	if !ok || len(o.Children) != len(f.Children) {
		return false
	}
	for i := range f.Children {
		if !f.Children[i].IsIdenticalTo(o.Children[i]) {
			return false
		}
	}
	return true
}

func (f AndFormula) Flatten() Formula {
	return AndFormula{Children: flattenAndChildren(f.Children)}
}

func (f AndFormula) Variables() map[Variable]struct{} {
	return unionVariables(f.Children)
}

func (f AndFormula) AllConstants() map[Constant]int {
	return unionConstants(f.Children)
}

func (f AndFormula) RecurMapTerm(mf func(Term) Term) Formula {
	return AndFormula{Children: mapChildren(f.Children, mf)}
}

func (f AndFormula) RegularizeBoundVars(fresh *NameSupply) Formula {
	return AndFormula{Children: regularizeChildren(f.Children, fresh)}
}

func (f AndFormula) ReplaceVar(repl map[Variable]Term) Formula {
	return AndFormula{Children: replaceVarChildren(f.Children, repl)}
}

func (f AndFormula) ReplaceNamed(repl map[string]Formula) Formula {
	return AndFormula{Children: replaceNamedChildren(f.Children, repl)}
}

func (f AndFormula) RegularForm() Formula { return regularForm(f) }

// OrFormula is an n-ary disjunction; see AndFormula for the representation note.
type OrFormula struct {
	Children []Formula
}

func (OrFormula) formulaNode() {}

func (f OrFormula) String() string { return joinConnective(f.Children, "or") }

func (f OrFormula) IsIdenticalTo(other Formula) bool {
	o, ok := other.(OrFormula)
	if !ok || len(o.Children) != len(f.Children) {
		return false
	}
	for i := range f.Children {
		if !f.Children[i].IsIdenticalTo(o.Children[i]) {
			return false
		}
	}
	return true
}

func (f OrFormula) Flatten() Formula {
	return OrFormula{Children: flattenOrChildren(f.Children)}
}

func (f OrFormula) Variables() map[Variable]struct{} {
	return unionVariables(f.Children)
}

func (f OrFormula) AllConstants() map[Constant]int {
	return unionConstants(f.Children)
}

func (f OrFormula) RecurMapTerm(mf func(Term) Term) Formula {
	return OrFormula{Children: mapChildren(f.Children, mf)}
}

func (f OrFormula) RegularizeBoundVars(fresh *NameSupply) Formula {
	return OrFormula{Children: regularizeChildren(f.Children, fresh)}
}

func (f OrFormula) ReplaceVar(repl map[Variable]Term) Formula {
	return OrFormula{Children: replaceVarChildren(f.Children, repl)}
}

func (f OrFormula) ReplaceNamed(repl map[string]Formula) Formula {
	return OrFormula{Children: replaceNamedChildren(f.Children, repl)}
}

func (f OrFormula) RegularForm() Formula { return regularForm(f) }

// ImplyFormula is a material implication p -> q.
type ImplyFormula struct {
	P, Q Formula
}

func (ImplyFormula) formulaNode() {}

func (f ImplyFormula) String() string {
	return fmt.Sprintf("(%s -> %s)", f.P.String(), f.Q.String())
}

func (f ImplyFormula) IsIdenticalTo(other Formula) bool {
	o, ok := other.(ImplyFormula)
	return ok && f.P.IsIdenticalTo(o.P) && f.Q.IsIdenticalTo(o.Q)
}

func (f ImplyFormula) Flatten() Formula { return f }

func (f ImplyFormula) Variables() map[Variable]struct{} {
	return unionVariables([]Formula{f.P, f.Q})
}

func (f ImplyFormula) AllConstants() map[Constant]int {
	return unionConstants([]Formula{f.P, f.Q})
}

func (f ImplyFormula) RecurMapTerm(mf func(Term) Term) Formula {
	return ImplyFormula{P: f.P.RecurMapTerm(mf), Q: f.Q.RecurMapTerm(mf)}
}

func (f ImplyFormula) RegularizeBoundVars(fresh *NameSupply) Formula {
	return ImplyFormula{P: f.P.RegularizeBoundVars(fresh), Q: f.Q.RegularizeBoundVars(fresh)}
}

func (f ImplyFormula) ReplaceVar(repl map[Variable]Term) Formula {
	return ImplyFormula{P: f.P.ReplaceVar(repl), Q: f.Q.ReplaceVar(repl)}
}

func (f ImplyFormula) ReplaceNamed(repl map[string]Formula) Formula {
	return ImplyFormula{P: f.P.ReplaceNamed(repl), Q: f.Q.ReplaceNamed(repl)}
}

func (f ImplyFormula) RegularForm() Formula { return regularForm(f) }

// EquivFormula is a material biconditional p <-> q.
type EquivFormula struct {
	P, Q Formula
}

func (EquivFormula) formulaNode() {}

func (f EquivFormula) String() string {
	return fmt.Sprintf("(%s <-> %s)", f.P.String(), f.Q.String())
}

func (f EquivFormula) IsIdenticalTo(other Formula) bool {
	o, ok := other.(EquivFormula)
	return ok && f.P.IsIdenticalTo(o.P) && f.Q.IsIdenticalTo(o.Q)
}

func (f EquivFormula) Flatten() Formula { return f }

func (f EquivFormula) Variables() map[Variable]struct{} {
	return unionVariables([]Formula{f.P, f.Q})
}

func (f EquivFormula) AllConstants() map[Constant]int {
	return unionConstants([]Formula{f.P, f.Q})
}

func (f EquivFormula) RecurMapTerm(mf func(Term) Term) Formula {
	return EquivFormula{P: f.P.RecurMapTerm(mf), Q: f.Q.RecurMapTerm(mf)}
}

func (f EquivFormula) RegularizeBoundVars(fresh *NameSupply) Formula {
	return EquivFormula{P: f.P.RegularizeBoundVars(fresh), Q: f.Q.RegularizeBoundVars(fresh)}
}

func (f EquivFormula) ReplaceVar(repl map[Variable]Term) Formula {
	return EquivFormula{P: f.P.ReplaceVar(repl), Q: f.Q.ReplaceVar(repl)}
}

func (f EquivFormula) ReplaceNamed(repl map[string]Formula) Formula {
	return EquivFormula{P: f.P.ReplaceNamed(repl), Q: f.Q.ReplaceNamed(repl)}
}

func (f EquivFormula) RegularForm() Formula { return regularForm(f) }

// ForAllFormula is a universally quantified formula: for all V, Body holds.
type ForAllFormula struct {
	Body Formula
	V    Variable
}

func (ForAllFormula) formulaNode() {}

func (f ForAllFormula) String() string {
	return fmt.Sprintf("forall(%s, %s)", f.V.Name, f.Body.String())
}

func (f ForAllFormula) IsIdenticalTo(other Formula) bool {
	o, ok := other.(ForAllFormula)
	return ok && f.V == o.V && f.Body.IsIdenticalTo(o.Body)
}

func (f ForAllFormula) Flatten() Formula { return f }

func (f ForAllFormula) Variables() map[Variable]struct{} {
	out := f.Body.Variables()
	delete(out, f.V)
	return out
}

func (f ForAllFormula) AllConstants() map[Constant]int { return f.Body.AllConstants() }

func (f ForAllFormula) RecurMapTerm(mf func(Term) Term) Formula {
	return ForAllFormula{Body: f.Body.RecurMapTerm(mf), V: f.V}
}

func (f ForAllFormula) RegularizeBoundVars(fresh *NameSupply) Formula {
	nv := fresh.Next()
	body := f.Body.ReplaceVar(map[Variable]Term{f.V: VarTerm{V: nv}})
	return ForAllFormula{Body: body.RegularizeBoundVars(fresh), V: nv}
}

func (f ForAllFormula) ReplaceVar(repl map[Variable]Term) Formula {
	inner := withoutKey(repl, f.V)
	return ForAllFormula{Body: f.Body.ReplaceVar(inner), V: f.V}
}

func (f ForAllFormula) ReplaceNamed(repl map[string]Formula) Formula {
	return ForAllFormula{Body: f.Body.ReplaceNamed(repl), V: f.V}
}

func (f ForAllFormula) RegularForm() Formula { return regularForm(f) }

// ExistFormula is an existentially quantified formula: there exists V such
// that Body holds.
type ExistFormula struct {
	Body Formula
	V    Variable
}

func (ExistFormula) formulaNode() {}

func (f ExistFormula) String() string {
	return fmt.Sprintf("exist(%s, %s)", f.V.Name, f.Body.String())
}

func (f ExistFormula) IsIdenticalTo(other Formula) bool {
	o, ok := other.(ExistFormula)
	return ok && f.V == o.V && f.Body.IsIdenticalTo(o.Body)
}

func (f ExistFormula) Flatten() Formula { return f }

func (f ExistFormula) Variables() map[Variable]struct{} {
	out := f.Body.Variables()
	delete(out, f.V)
	return out
}

func (f ExistFormula) AllConstants() map[Constant]int { return f.Body.AllConstants() }

func (f ExistFormula) RecurMapTerm(mf func(Term) Term) Formula {
	return ExistFormula{Body: f.Body.RecurMapTerm(mf), V: f.V}
}

func (f ExistFormula) RegularizeBoundVars(fresh *NameSupply) Formula {
	nv := fresh.Next()
	body := f.Body.ReplaceVar(map[Variable]Term{f.V: VarTerm{V: nv}})
	return ExistFormula{Body: body.RegularizeBoundVars(fresh), V: nv}
}

func (f ExistFormula) ReplaceVar(repl map[Variable]Term) Formula {
	inner := withoutKey(repl, f.V)
	return ExistFormula{Body: f.Body.ReplaceVar(inner), V: f.V}
}

func (f ExistFormula) ReplaceNamed(repl map[string]Formula) Formula {
	return ExistFormula{Body: f.Body.ReplaceNamed(repl), V: f.V}
}

func (f ExistFormula) RegularForm() Formula { return regularForm(f) }

// --- shared helpers for the AC connectives and quantifiers ---

func flattenAndChildren(children []Formula) []Formula {
	out := make([]Formula, 0, len(children))
	for _, c := range children {
		if nested, ok := c.(AndFormula); ok {
			out = append(out, flattenAndChildren(nested.Children)...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

func flattenOrChildren(children []Formula) []Formula {
	out := make([]Formula, 0, len(children))
	for _, c := range children {
		if nested, ok := c.(OrFormula); ok {
			out = append(out, flattenOrChildren(nested.Children)...)
		} else {
			out = append(out, c)
		}
	}
	return out
}

func joinConnective(children []Formula, op string) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s(%s)", op, strings.Join(parts, ", "))
}

func unionVariables(children []Formula) map[Variable]struct{} {
	out := make(map[Variable]struct{})
	for _, c := range children {
		for v := range c.Variables() {
			out[v] = struct{}{}
		}
	}
	return out
}

func unionConstants(children []Formula) map[Constant]int {
	out := make(map[Constant]int)
	for _, c := range children {
		for k, n := range c.AllConstants() {
			out[k] += n
		}
	}
	return out
}

func mapChildren(children []Formula, mf func(Term) Term) []Formula {
	out := make([]Formula, len(children))
	for i, c := range children {
		out[i] = c.RecurMapTerm(mf)
	}
	return out
}

func regularizeChildren(children []Formula, fresh *NameSupply) []Formula {
	out := make([]Formula, len(children))
	for i, c := range children {
		out[i] = c.RegularizeBoundVars(fresh)
	}
	return out
}

func replaceVarChildren(children []Formula, repl map[Variable]Term) []Formula {
	out := make([]Formula, len(children))
	for i, c := range children {
		out[i] = c.ReplaceVar(repl)
	}
	return out
}

func replaceNamedChildren(children []Formula, repl map[string]Formula) []Formula {
	out := make([]Formula, len(children))
	for i, c := range children {
		out[i] = c.ReplaceNamed(repl)
	}
	return out
}

func withoutKey(repl map[Variable]Term, key Variable) map[Variable]Term {
	if _, present := repl[key]; !present {
		return repl
	}
	out := make(map[Variable]Term, len(repl))
	for k, v := range repl {
		if k != key {
			out[k] = v
		}
	}
	return out
}

// CompareFormulas is the process-wide FormulaComparator: a deterministic
// total order over Formula, consistent with IsIdenticalTo, used to key
// sorted sets (FormulaContext's sorted view, the meta-rule's frontier) and
// to canonicalize AND/OR children in regular form. Any order satisfying
// this contract is permitted; ordinal-then-lexicographic is chosen for
// determinism and cheap computation, mirroring the teacher's reliance on a
// single comparator threaded through sorted containers rather than ad hoc
// comparisons at each call site.
func CompareFormulas(a, b Formula) int {
	if oa, ob := formulaOrdinal(a), formulaOrdinal(b); oa != ob {
		return oa - ob
	}
	switch fa := a.(type) {
	case PredicateFormula:
		fb := b.(PredicateFormula)
		if fa.P.Name != fb.P.Name {
			return strings.Compare(fa.P.Name, fb.P.Name)
		}
		return compareTermSlices(fa.Args, fb.Args)
	case NamedFormula:
		fb := b.(NamedFormula)
		if fa.Name != fb.Name {
			return strings.Compare(fa.Name, fb.Name)
		}
		return compareTermSlices(fa.Parameters, fb.Parameters)
	case NotFormula:
		return CompareFormulas(fa.Child, b.(NotFormula).Child)
	case AndFormula:
		return compareFormulaSlices(fa.Children, b.(AndFormula).Children)
	case OrFormula:
		return compareFormulaSlices(fa.Children, b.(OrFormula).Children)
	case ImplyFormula:
		fb := b.(ImplyFormula)
		if c := CompareFormulas(fa.P, fb.P); c != 0 {
			return c
		}
		return CompareFormulas(fa.Q, fb.Q)
	case EquivFormula:
		fb := b.(EquivFormula)
		if c := CompareFormulas(fa.P, fb.P); c != 0 {
			return c
		}
		return CompareFormulas(fa.Q, fb.Q)
	case ForAllFormula:
		fb := b.(ForAllFormula)
		if fa.V.Name != fb.V.Name {
			return strings.Compare(fa.V.Name, fb.V.Name)
		}
		return CompareFormulas(fa.Body, fb.Body)
	case ExistFormula:
		fb := b.(ExistFormula)
		if fa.V.Name != fb.V.Name {
			return strings.Compare(fa.V.Name, fb.V.Name)
		}
		return CompareFormulas(fa.Body, fb.Body)
	default:
		return 0
	}
}

func formulaOrdinal(f Formula) int {
	switch f.(type) {
	case PredicateFormula:
		return 0
	case NamedFormula:
		return 1
	case NotFormula:
		return 2
	case AndFormula:
		return 3
	case OrFormula:
		return 4
	case ImplyFormula:
		return 5
	case EquivFormula:
		return 6
	case ForAllFormula:
		return 7
	case ExistFormula:
		return 8
	default:
		return 9
	}
}

func compareTermSlices(a, b []Term) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	for i := range a {
		if c := compareTerms(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareFormulaSlices(a, b []Formula) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	for i := range a {
		if c := CompareFormulas(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func sortFormulas(fs []Formula) {
	sort.Slice(fs, func(i, j int) bool { return CompareFormulas(fs[i], fs[j]) < 0 })
}
