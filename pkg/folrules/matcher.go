package folrules

// Bindings is the per-match binding context a FormulaMatcher produces:
// named holes (P, Q, R, ...) resolve to Formula, and named holes (x, y,
// z, ...) resolve to Term. Term bindings are stored wrapped in RefTerm —
// the placeholder that carries a matched subject term while a rewrite is
// in flight — and resolved back to the underlying term when a replacer is
// instantiated, so no RefTerm ever survives into a produced formula.
type Bindings struct {
	Formulas map[string]Formula
	Terms    map[string]Term
}

// NewBindings returns an empty Bindings ready to accumulate matches.
func NewBindings() Bindings {
	return Bindings{Formulas: make(map[string]Formula), Terms: make(map[string]Term)}
}

func (b Bindings) clone() Bindings {
	nb := NewBindings()
	for k, v := range b.Formulas {
		nb.Formulas[k] = v
	}
	for k, v := range b.Terms {
		nb.Terms[k] = v
	}
	return nb
}

// FormulaHole is a pattern-only formula node: it matches any subject
// formula and binds it to Name. It never occurs in a formula obtained from
// the builder or from a rule's output — only inside a rule's stored
// pattern/replacer trees.
type FormulaHole struct {
	Name string
}

func (FormulaHole) formulaNode() {}
func (h FormulaHole) String() string { return h.Name }
func (h FormulaHole) IsIdenticalTo(other Formula) bool {
	o, ok := other.(FormulaHole)
	return ok && o.Name == h.Name
}
func (h FormulaHole) Flatten() Formula                                { return h }
func (h FormulaHole) Variables() map[Variable]struct{}                { return map[Variable]struct{}{} }
func (h FormulaHole) AllConstants() map[Constant]int                  { return map[Constant]int{} }
func (h FormulaHole) RecurMapTerm(func(Term) Term) Formula            { return h }
func (h FormulaHole) RegularizeBoundVars(*NameSupply) Formula         { return h }
func (h FormulaHole) ReplaceVar(map[Variable]Term) Formula            { return h }
func (h FormulaHole) ReplaceNamed(map[string]Formula) Formula         { return h }
func (h FormulaHole) RegularForm() Formula                            { return h }

// TermHole is a pattern-only term node: it matches any subject term and
// binds it to Name.
type TermHole struct {
	Name string
}

func (TermHole) termNode()            {}
func (h TermHole) String() string     { return h.Name }
func (h TermHole) IsIdenticalTo(other Term) bool {
	o, ok := other.(TermHole)
	return ok && o.Name == h.Name
}

// FormulaMatcher is the pattern-to-subject matching surface schematic
// rules are built from: match finds the bindings under which pattern
// matches subject; replaceOneWith rewrites each matching subtree of a
// formula.
// The spec treats the matcher engine as an external collaborator; this is
// the minimal, idiomatic implementation the core needs to be runnable,
// grounded on the teacher's unify/Walk loop (primitives.go) generalized
// from term-only unification to formula-and-term pattern matching, and on
// pattern.go's PatternClause for the hole/binding bookkeeping.
type FormulaMatcher struct {
	Pattern Formula
}

// FromFormula builds a matcher whose pattern is exactly example. When
// strict is false, callers typically build example out of FormulaHole/
// TermHole nodes directly; strict is accepted for interface parity with
// the spec (`fromFormula(f, strict)`) and currently has no additional
// effect beyond documenting intent, since every pattern produced by this
// package's rule constructors is already hole-explicit.
func FromFormula(example Formula, strict bool) FormulaMatcher {
	_ = strict
	return FormulaMatcher{Pattern: example}
}

// Match finds the bindings under which m.Pattern matches subject. For
// AND/OR it tries subject child permutations in turn (subject-side
// commutativity, since AND/OR are regular-form-equivalent regardless of
// child order) and keeps the bindings of the first permutation that
// matches; bindings reachable only through a later permutation are not
// returned.
func (m FormulaMatcher) Match(subject Formula) []Bindings {
	var out []Bindings
	tryMatchFormula(m.Pattern, subject, NewBindings(), func(b Bindings) {
		out = append(out, b)
	})
	return out
}

// ReplaceOneWith finds every matching subtree of subject (at any depth)
// and returns the whole-formula result of rewriting that one subtree via
// transform, one result per matching position.
func (m FormulaMatcher) ReplaceOneWith(subject Formula, transform func(Bindings) Formula) []Formula {
	return rewriteSubtrees(subject, func(node Formula) []Formula {
		matches := m.Match(node)
		out := make([]Formula, len(matches))
		for i, b := range matches {
			out[i] = transform(b)
		}
		return out
	})
}

// rewriteSubtrees visits every subtree of f (preorder, including f itself)
// and, for each position where tryMatch yields one or more replacements,
// returns a whole copy of f with that single subtree swapped in — one
// output Formula per (position, replacement) pair. This is the "at any
// subtree" search spec §4.2 requires of applyOne.
func rewriteSubtrees(f Formula, tryMatch func(Formula) []Formula) []Formula {
	var results []Formula
	results = append(results, tryMatch(f)...)

	switch n := f.(type) {
	case NotFormula:
		for _, childRepl := range rewriteSubtrees(n.Child, tryMatch) {
			results = append(results, NotFormula{Child: childRepl})
		}
	case AndFormula:
		for i := range n.Children {
			for _, childRepl := range rewriteSubtrees(n.Children[i], tryMatch) {
				children := append([]Formula(nil), n.Children...)
				children[i] = childRepl
				results = append(results, AndFormula{Children: children})
			}
		}
	case OrFormula:
		for i := range n.Children {
			for _, childRepl := range rewriteSubtrees(n.Children[i], tryMatch) {
				children := append([]Formula(nil), n.Children...)
				children[i] = childRepl
				results = append(results, OrFormula{Children: children})
			}
		}
	case ImplyFormula:
		for _, childRepl := range rewriteSubtrees(n.P, tryMatch) {
			results = append(results, ImplyFormula{P: childRepl, Q: n.Q})
		}
		for _, childRepl := range rewriteSubtrees(n.Q, tryMatch) {
			results = append(results, ImplyFormula{P: n.P, Q: childRepl})
		}
	case EquivFormula:
		for _, childRepl := range rewriteSubtrees(n.P, tryMatch) {
			results = append(results, EquivFormula{P: childRepl, Q: n.Q})
		}
		for _, childRepl := range rewriteSubtrees(n.Q, tryMatch) {
			results = append(results, EquivFormula{P: n.P, Q: childRepl})
		}
	case ForAllFormula:
		for _, childRepl := range rewriteSubtrees(n.Body, tryMatch) {
			results = append(results, ForAllFormula{Body: childRepl, V: n.V})
		}
	case ExistFormula:
		for _, childRepl := range rewriteSubtrees(n.Body, tryMatch) {
			results = append(results, ExistFormula{Body: childRepl, V: n.V})
		}
	}
	return results
}

// tryMatchFormula attempts to match pattern against subject, invoking emit
// once per successful full binding (AND/OR try every child permutation).
func tryMatchFormula(pattern, subject Formula, b Bindings, emit func(Bindings)) {
	if h, ok := pattern.(FormulaHole); ok {
		if existing, bound := b.Formulas[h.Name]; bound {
			if existing.IsIdenticalTo(subject) {
				emit(b)
			}
			return
		}
		nb := b.clone()
		nb.Formulas[h.Name] = subject
		emit(nb)
		return
	}

	switch p := pattern.(type) {
	case PredicateFormula:
		s, ok := subject.(PredicateFormula)
		if !ok || s.P != p.P || len(s.Args) != len(p.Args) {
			return
		}
		matchTermSeq(p.Args, s.Args, b, emit)
	case NamedFormula:
		s, ok := subject.(NamedFormula)
		if !ok || s.Name != p.Name || len(s.Parameters) != len(p.Parameters) {
			return
		}
		matchTermSeq(p.Parameters, s.Parameters, b, emit)
	case NotFormula:
		s, ok := subject.(NotFormula)
		if !ok {
			return
		}
		tryMatchFormula(p.Child, s.Child, b, emit)
	case AndFormula:
		s, ok := subject.(AndFormula)
		if !ok || len(s.Children) != len(p.Children) {
			return
		}
		matchPermuted(p.Children, s.Children, b, emit)
	case OrFormula:
		s, ok := subject.(OrFormula)
		if !ok || len(s.Children) != len(p.Children) {
			return
		}
		matchPermuted(p.Children, s.Children, b, emit)
	case ImplyFormula:
		s, ok := subject.(ImplyFormula)
		if !ok {
			return
		}
		tryMatchFormula(p.P, s.P, b, func(b1 Bindings) {
			tryMatchFormula(p.Q, s.Q, b1, emit)
		})
	case EquivFormula:
		s, ok := subject.(EquivFormula)
		if !ok {
			return
		}
		tryMatchFormula(p.P, s.P, b, func(b1 Bindings) {
			tryMatchFormula(p.Q, s.Q, b1, emit)
		})
	case ForAllFormula:
		s, ok := subject.(ForAllFormula)
		if !ok {
			return
		}
		body := s.Body.ReplaceVar(map[Variable]Term{s.V: VarTerm{V: p.V}})
		tryMatchFormula(p.Body, body, b, emit)
	case ExistFormula:
		s, ok := subject.(ExistFormula)
		if !ok {
			return
		}
		body := s.Body.ReplaceVar(map[Variable]Term{s.V: VarTerm{V: p.V}})
		tryMatchFormula(p.Body, body, b, emit)
	}
}

// matchPermuted tries permutations of subject children against pattern
// children in order, stopping after the first permutation that matches —
// the AC-aware matching spec §4.3 requires for AND/OR patterns, since
// subject children may appear in any order.
func matchPermuted(pattern, subject []Formula, b Bindings, emit func(Bindings)) {
	permute(len(subject), func(order []int) bool {
		matched := false
		matchSeqInOrder(pattern, subject, order, 0, b, func(b1 Bindings) {
			matched = true
			emit(b1)
		})
		return matched
	})
}

func matchSeqInOrder(pattern, subject []Formula, order []int, i int, b Bindings, emit func(Bindings)) {
	if i == len(pattern) {
		emit(b)
		return
	}
	tryMatchFormula(pattern[i], subject[order[i]], b, func(b1 Bindings) {
		matchSeqInOrder(pattern, subject, order, i+1, b1, emit)
	})
}

// permute calls visit with every permutation of [0,n) (as an index
// ordering), stopping early once visit reports it found a use for one.
// n is always small here (AND/OR patterns in this package have at most
// three children), so the factorial cost is immaterial.
func permute(n int, visit func(order []int) bool) {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	var rec func(k int) bool
	rec = func(k int) bool {
		if k == n {
			return visit(append([]int(nil), order...))
		}
		for i := k; i < n; i++ {
			order[k], order[i] = order[i], order[k]
			if rec(k + 1) {
				order[k], order[i] = order[i], order[k]
				return true
			}
			order[k], order[i] = order[i], order[k]
		}
		return false
	}
	rec(0)
}

func matchTermSeq(pattern, subject []Term, b Bindings, emit func(Bindings)) {
	matchTermSeqAt(pattern, subject, 0, b, emit)
}

func matchTermSeqAt(pattern, subject []Term, i int, b Bindings, emit func(Bindings)) {
	if i == len(pattern) {
		emit(b)
		return
	}
	tryMatchTerm(pattern[i], subject[i], b, func(b1 Bindings) {
		matchTermSeqAt(pattern, subject, i+1, b1, emit)
	})
}

func tryMatchTerm(pattern, subject Term, b Bindings, emit func(Bindings)) {
	if h, ok := pattern.(TermHole); ok {
		if existing, bound := b.Terms[h.Name]; bound {
			// existing is a RefTerm; IsIdenticalTo resolves it against the
			// raw subject, so a repeated hole must see the same term twice.
			if existing.IsIdenticalTo(subject) {
				emit(b)
			}
			return
		}
		nb := b.clone()
		nb.Terms[h.Name] = RefTerm{T: subject}
		emit(nb)
		return
	}

	switch p := pattern.(type) {
	case VarTerm:
		if s, ok := subject.(VarTerm); ok && s.V == p.V {
			emit(b)
		}
	case ConstTerm:
		if s, ok := subject.(ConstTerm); ok && s.C == p.C {
			emit(b)
		}
	case FunTerm:
		s, ok := subject.(FunTerm)
		if !ok || s.F != p.F || len(s.Children) != len(p.Children) {
			return
		}
		matchTermSeqAt(p.Children, s.Children, 0, b, emit)
	}
}

// instantiateFormula builds a concrete Formula from a replacer pattern and
// a completed Bindings, resolving every FormulaHole/TermHole.
func instantiateFormula(pattern Formula, b Bindings) Formula {
	if h, ok := pattern.(FormulaHole); ok {
		f, bound := b.Formulas[h.Name]
		if !bound {
			panicProgrammerErrorf("replacer references formula hole %q the pattern never bound", h.Name)
		}
		return f
	}
	switch p := pattern.(type) {
	case PredicateFormula:
		return PredicateFormula{P: p.P, Args: instantiateTermSeq(p.Args, b)}
	case NamedFormula:
		return NamedFormula{Name: p.Name, Parameters: instantiateTermSeq(p.Parameters, b)}
	case NotFormula:
		return NotFormula{Child: instantiateFormula(p.Child, b)}
	case AndFormula:
		return AndFormula{Children: instantiateFormulaSeq(p.Children, b)}
	case OrFormula:
		return OrFormula{Children: instantiateFormulaSeq(p.Children, b)}
	case ImplyFormula:
		return ImplyFormula{P: instantiateFormula(p.P, b), Q: instantiateFormula(p.Q, b)}
	case EquivFormula:
		return EquivFormula{P: instantiateFormula(p.P, b), Q: instantiateFormula(p.Q, b)}
	case ForAllFormula:
		return ForAllFormula{Body: instantiateFormula(p.Body, b), V: p.V}
	case ExistFormula:
		return ExistFormula{Body: instantiateFormula(p.Body, b), V: p.V}
	default:
		return p
	}
}

func instantiateFormulaSeq(fs []Formula, b Bindings) []Formula {
	out := make([]Formula, len(fs))
	for i, f := range fs {
		out[i] = instantiateFormula(f, b)
	}
	return out
}

func instantiateTerm(pattern Term, b Bindings) Term {
	if h, ok := pattern.(TermHole); ok {
		t, bound := b.Terms[h.Name]
		if !bound {
			panicProgrammerErrorf("replacer references term hole %q the pattern never bound", h.Name)
		}
		// Unwrap the RefTerm placeholder: rules only ever see the term the
		// binding stands for, never the placeholder itself.
		return resolveRef(t)
	}
	if ft, ok := pattern.(FunTerm); ok {
		return FunTerm{F: ft.F, Children: instantiateTermSeq(ft.Children, b)}
	}
	return pattern
}

func instantiateTermSeq(ts []Term, b Bindings) []Term {
	out := make([]Term, len(ts))
	for i, t := range ts {
		out[i] = instantiateTerm(t, b)
	}
	return out
}
