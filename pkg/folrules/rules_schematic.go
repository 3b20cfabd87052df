package folrules

// MatcherRule is a unidirectional schematic rewrite rule: it rewrites one
// subtree of a formula matching Left into the corresponding instantiation
// of Right, anywhere in any obtained/context formula. It is the built-in
// rule implementation strategy for rules whose pattern is fixed-arity and
// has no AC or higher-order structure to account for, grounded on the
// teacher's PatternClause (pattern.go) generalized from goal-resolution
// clauses to formula rewrite rules.
type MatcherRule struct {
	name        QualifiedName
	description string
	Left, Right Formula
}

func (r MatcherRule) Name() QualifiedName { return r.name }
func (r MatcherRule) Description() string { return r.description }

func (r MatcherRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r MatcherRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r MatcherRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	matcher := FromFormula(r.Left, true)
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		rewrites := matcher.ReplaceOneWith(f, func(b Bindings) Formula {
			return instantiateFormula(r.Right, b)
		})
		for _, rw := range rewrites {
			d := Deduction{Rule: r.name, Produced: rw, Dependencies: []Formula{f}}
			if goalReached(desired, rw) {
				return Reached(d)
			}
			candidates = append(candidates, d)
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// MatcherEquivRule is MatcherRule's bidirectional counterpart: Left and
// Right are tried as rewrite sources against each other, since the rule
// it implements (e.g. double negation, material-implication definition)
// is a genuine equivalence, not a one-way simplification.
type MatcherEquivRule struct {
	name        QualifiedName
	description string
	Left, Right Formula
}

func (r MatcherEquivRule) Name() QualifiedName { return r.name }
func (r MatcherEquivRule) Description() string { return r.description }

func (r MatcherEquivRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r MatcherEquivRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r MatcherEquivRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	forward := FromFormula(r.Left, true)
	backward := FromFormula(r.Right, true)
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		rewrites := forward.ReplaceOneWith(f, func(b Bindings) Formula {
			return instantiateFormula(r.Right, b)
		})
		rewrites = append(rewrites, backward.ReplaceOneWith(f, func(b Bindings) Formula {
			return instantiateFormula(r.Left, b)
		})...)
		for _, rw := range rewrites {
			d := Deduction{Rule: r.name, Produced: rw, Dependencies: []Formula{f}}
			if goalReached(desired, rw) {
				return Reached(d)
			}
			candidates = append(candidates, d)
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}
