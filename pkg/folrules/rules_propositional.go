package folrules

// ruleDoubleNegate is the built-in not(not(P)) <-> P equivalence. It has
// fixed arity and no AC structure beyond what FormulaMatcher already
// handles, so it is expressed schematically rather than procedurally.
var ruleDoubleNegate = MatcherEquivRule{
	name:        NewQualifiedName("DoubleNegate"),
	description: "not(not(P)) is equivalent to P",
	Left:        NotFormula{Child: NotFormula{Child: FormulaHole{Name: "P"}}},
	Right:       FormulaHole{Name: "P"},
}

// FlattenRule collapses nested AND-in-AND and OR-in-OR structure one level,
// the structural simplification Formula.Flatten performs; the rule makes
// that simplification available to the search as an ordinary derivation
// step, per the spec's Flatten entry.
type FlattenRule struct{}

func (FlattenRule) Name() QualifiedName { return NewQualifiedName("Flatten") }
func (FlattenRule) Description() string {
	return "collapses nested and/and or or/or structure one level"
}

func (r FlattenRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r FlattenRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r FlattenRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		switch f.(type) {
		case AndFormula, OrFormula:
		default:
			continue
		}
		flat := f.Flatten()
		if flat.IsIdenticalTo(f) {
			continue
		}
		d := Deduction{Rule: r.Name(), Produced: flat, Dependencies: []Formula{f}}
		if goalReached(desired, flat) {
			return Reached(d)
		}
		candidates = append(candidates, d)
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// IdentityAndRule removes structurally duplicate conjuncts from an AND,
// collapsing a singleton result to its one remaining child — the sense in
// which "P and P" and "P" are the same fact, distinct from regular form's
// narrower AC+alpha+dedup contract (see regular.go).
type IdentityAndRule struct{}

func (IdentityAndRule) Name() QualifiedName { return NewQualifiedName("IdentityAnd") }
func (IdentityAndRule) Description() string {
	return "removes duplicate conjuncts from an and, unwrapping a singleton result"
}

func (r IdentityAndRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r IdentityAndRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r IdentityAndRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		and, ok := f.Flatten().(AndFormula)
		if !ok {
			continue
		}
		deduped := dedupByRegularForm(and.Children)
		if len(deduped) == len(and.Children) {
			continue
		}
		produced := unwrapSingleton(deduped, func(cs []Formula) Formula { return AndFormula{Children: cs} })
		if produced.IsIdenticalTo(f) {
			continue
		}
		d := Deduction{Rule: r.Name(), Produced: produced, Dependencies: []Formula{f}}
		if goalReached(desired, produced) {
			return Reached(d)
		}
		candidates = append(candidates, d)
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// IdentityOrRule is IdentityAndRule's dual over OR.
type IdentityOrRule struct{}

func (IdentityOrRule) Name() QualifiedName { return NewQualifiedName("IdentityOr") }
func (IdentityOrRule) Description() string {
	return "removes duplicate disjuncts from an or, unwrapping a singleton result"
}

func (r IdentityOrRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r IdentityOrRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r IdentityOrRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		or, ok := f.Flatten().(OrFormula)
		if !ok {
			continue
		}
		deduped := dedupByRegularForm(or.Children)
		if len(deduped) == len(or.Children) {
			continue
		}
		produced := unwrapSingleton(deduped, func(cs []Formula) Formula { return OrFormula{Children: cs} })
		if produced.IsIdenticalTo(f) {
			continue
		}
		d := Deduction{Rule: r.Name(), Produced: produced, Dependencies: []Formula{f}}
		if goalReached(desired, produced) {
			return Reached(d)
		}
		candidates = append(candidates, d)
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// AbsorptionAndRule removes a conjunct that is itself an OR subsuming
// another conjunct already present: P and (P or Q) simplifies to P.
type AbsorptionAndRule struct{}

func (AbsorptionAndRule) Name() QualifiedName { return NewQualifiedName("AbsorptionAnd") }
func (AbsorptionAndRule) Description() string {
	return "P and (P or Q) simplifies to P"
}

func (r AbsorptionAndRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r AbsorptionAndRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r AbsorptionAndRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		and, ok := f.Flatten().(AndFormula)
		if !ok || len(and.Children) < 2 {
			continue
		}
		for i, ci := range and.Children {
			or, ok := ci.Flatten().(OrFormula)
			if !ok {
				continue
			}
			if !anyDisjunctMatchesOtherConjunct(or.Children, and.Children, i) {
				continue
			}
			rest := removeAt(and.Children, i)
			produced := unwrapSingleton(rest, func(cs []Formula) Formula { return AndFormula{Children: cs} })
			d := Deduction{Rule: r.Name(), Produced: produced, Dependencies: []Formula{f}}
			if goalReached(desired, produced) {
				return Reached(d)
			}
			candidates = append(candidates, d)
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// AbsorptionOrRule removes a disjunct that is itself an AND subsuming
// another disjunct already present: P or (P and Q) simplifies to P.
type AbsorptionOrRule struct{}

func (AbsorptionOrRule) Name() QualifiedName { return NewQualifiedName("AbsorptionOr") }
func (AbsorptionOrRule) Description() string {
	return "P or (P and Q) simplifies to P"
}

func (r AbsorptionOrRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r AbsorptionOrRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r AbsorptionOrRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		or, ok := f.Flatten().(OrFormula)
		if !ok || len(or.Children) < 2 {
			continue
		}
		for i, ci := range or.Children {
			and, ok := ci.Flatten().(AndFormula)
			if !ok {
				continue
			}
			if !anyDisjunctMatchesOtherConjunct(and.Children, or.Children, i) {
				continue
			}
			rest := removeAt(or.Children, i)
			produced := unwrapSingleton(rest, func(cs []Formula) Formula { return OrFormula{Children: cs} })
			d := Deduction{Rule: r.Name(), Produced: produced, Dependencies: []Formula{f}}
			if goalReached(desired, produced) {
				return Reached(d)
			}
			candidates = append(candidates, d)
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// AndProjectRule derives each individual conjunct of a known conjunction.
type AndProjectRule struct{}

func (AndProjectRule) Name() QualifiedName { return NewQualifiedName("AndProject") }
func (AndProjectRule) Description() string {
	return "derives each conjunct of a known and"
}

func (r AndProjectRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r AndProjectRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r AndProjectRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		and, ok := f.Flatten().(AndFormula)
		if !ok {
			continue
		}
		for _, c := range and.Children {
			d := Deduction{Rule: r.Name(), Produced: c, Dependencies: []Formula{f}}
			if goalReached(desired, c) {
				return Reached(d)
			}
			candidates = append(candidates, d)
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// AndConstructRule closes a conjunctive goal when every conjunct is
// already known. It is goal-only — with no desired formula there is
// nothing for it to construct. Its ApplyIncremental entry point folds the
// frontier into a context copy first (see context.go's projected), so a
// conjunct counts as known when it is in the context or in the current
// frontier, and the goal-check logic itself only ever consults a
// FormulaContext; on the non-incremental path the frontier is the whole
// context, so both paths run the same check.
type AndConstructRule struct{}

func (AndConstructRule) Name() QualifiedName { return NewQualifiedName("AndConstruct") }
func (AndConstructRule) Description() string {
	return "constructs P and Q and ... from individually known conjuncts"
}

func (r AndConstructRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r AndConstructRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r AndConstructRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	if desired == nil {
		return NotReached(nil)
	}
	and, ok := desired.Flatten().(AndFormula)
	if !ok {
		return NotReached(nil)
	}
	working := projected(ctx, obtained)
	deps := make([]Formula, 0, len(and.Children))
	for _, c := range and.Children {
		rep, ok := working.Lookup(regularKey(c))
		if !ok {
			return NotReached(nil)
		}
		deps = append(deps, rep)
	}
	return Reached(Deduction{Rule: r.Name(), Produced: desired, Dependencies: deps})
}

// ExcludeMiddleRule closes any goal of the shape P or not(P): the law of
// the excluded middle holds unconditionally, with no dependencies.
type ExcludeMiddleRule struct{}

func (ExcludeMiddleRule) Name() QualifiedName { return NewQualifiedName("ExcludeMiddle") }
func (ExcludeMiddleRule) Description() string {
	return "P or not(P) holds unconditionally"
}

func (r ExcludeMiddleRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r ExcludeMiddleRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r ExcludeMiddleRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	if desired == nil {
		return NotReached(nil)
	}
	or, ok := desired.Flatten().(OrFormula)
	if !ok || len(or.Children) != 2 {
		return NotReached(nil)
	}
	a, b := or.Children[0], or.Children[1]
	if isNegationOf(a, b) || isNegationOf(b, a) {
		return Reached(Deduction{Rule: r.Name(), Produced: desired})
	}
	return NotReached(nil)
}

func isNegationOf(not, of Formula) bool {
	n, ok := not.(NotFormula)
	return ok && n.Child.RegularForm().IsIdenticalTo(of.RegularForm())
}

// --- shared helpers for the propositional rules ---

func dedupByRegularForm(fs []Formula) []Formula {
	seen := make(map[string]struct{}, len(fs))
	out := make([]Formula, 0, len(fs))
	for _, f := range fs {
		key := regularKey(f)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, f)
	}
	return out
}

func unwrapSingleton(fs []Formula, wrap func([]Formula) Formula) Formula {
	if len(fs) == 1 {
		return fs[0]
	}
	return wrap(fs)
}

func removeAt(fs []Formula, i int) []Formula {
	out := make([]Formula, 0, len(fs)-1)
	out = append(out, fs[:i]...)
	out = append(out, fs[i+1:]...)
	return out
}

// anyDisjunctMatchesOtherConjunct reports whether any formula in
// candidates structurally matches (by regular form) some sibling[j] with
// j != skip.
func anyDisjunctMatchesOtherConjunct(candidates, siblings []Formula, skip int) bool {
	for _, cand := range candidates {
		for j, sib := range siblings {
			if j == skip {
				continue
			}
			if cand.RegularForm().IsIdenticalTo(sib.RegularForm()) {
				return true
			}
		}
	}
	return false
}
