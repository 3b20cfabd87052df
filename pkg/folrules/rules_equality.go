package folrules

// EqPredicate is the fixed predicate symbol equality atoms use: x = y is
// represented as PredicateFormula{P: EqPredicate, Args: []Term{x, y}}.
var EqPredicate = Predicate{Name: "Eq", Arity: 2}

// Eq builds the equality atom x = y.
func Eq(x, y Term) Formula {
	return PredicateFormula{P: EqPredicate, Args: []Term{x, y}}
}

func asEquality(f Formula) (x, y Term, ok bool) {
	p, isPred := f.(PredicateFormula)
	if !isPred || p.P != EqPredicate || len(p.Args) != 2 {
		return nil, nil, false
	}
	return p.Args[0], p.Args[1], true
}

// EqualReplaceRule is the substitution property of equality: from x = y
// and any fact containing x as a subterm, derive the fact with (all
// occurrences of) x replaced by y.
type EqualReplaceRule struct{}

func (EqualReplaceRule) Name() QualifiedName { return NewQualifiedName("EqualReplace") }
func (EqualReplaceRule) Description() string {
	return "from x = y and phi(x), derives phi(y)"
}

func (r EqualReplaceRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r EqualReplaceRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r EqualReplaceRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	all := pool(ctx, obtained)
	var candidates []Deduction

	for _, a := range hintFilter(obtained.Formulas(), formulas) {
		for _, b := range all {
			if d, ok := equalReplace(r.Name(), a, b); ok {
				if goalReached(desired, d.Produced) {
					return Reached(d)
				}
				candidates = append(candidates, d)
			}
			if d, ok := equalReplace(r.Name(), b, a); ok {
				if goalReached(desired, d.Produced) {
					return Reached(d)
				}
				candidates = append(candidates, d)
			}
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// equalReplace tries eqFact as an equality atom x = y and host as the fact
// to rewrite, returning the substituted deduction if x actually occurs in
// host.
func equalReplace(name QualifiedName, eqFact, host Formula) (Deduction, bool) {
	x, y, ok := asEquality(eqFact)
	if !ok {
		return Deduction{}, false
	}
	replaced := host.RecurMapTerm(func(t Term) Term {
		if t.IsIdenticalTo(x) {
			return y
		}
		return t
	})
	if replaced.IsIdenticalTo(host) {
		return Deduction{}, false
	}
	return Deduction{Rule: name, Produced: replaced, Dependencies: []Formula{eqFact, host}}, true
}
