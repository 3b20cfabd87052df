package folrules

// ruleDefImply is the built-in (P -> Q) <-> (not(P) or Q) equivalence.
var ruleDefImply = MatcherEquivRule{
	name:        NewQualifiedName("DefImply"),
	description: "(P -> Q) is equivalent to (not(P) or Q)",
	Left:        ImplyFormula{P: FormulaHole{Name: "P"}, Q: FormulaHole{Name: "Q"}},
	Right: OrFormula{Children: []Formula{
		NotFormula{Child: FormulaHole{Name: "P"}},
		FormulaHole{Name: "Q"},
	}},
}

// ruleDefEquivTo is the built-in ((P -> Q) and (Q -> P)) <-> (P <-> Q)
// equivalence.
var ruleDefEquivTo = MatcherEquivRule{
	name:        NewQualifiedName("DefEquivTo"),
	description: "((P -> Q) and (Q -> P)) is equivalent to (P <-> Q)",
	Left: AndFormula{Children: []Formula{
		ImplyFormula{P: FormulaHole{Name: "P"}, Q: FormulaHole{Name: "Q"}},
		ImplyFormula{P: FormulaHole{Name: "Q"}, Q: FormulaHole{Name: "P"}},
	}},
	Right: EquivFormula{P: FormulaHole{Name: "P"}, Q: FormulaHole{Name: "Q"}},
}

// ImplyComposeRule chains two implications sharing a middle term:
// (P -> Q) and (Q -> R) yields (P -> R).
type ImplyComposeRule struct{}

func (ImplyComposeRule) Name() QualifiedName { return NewQualifiedName("ImplyCompose") }
func (ImplyComposeRule) Description() string {
	return "(P -> Q) and (Q -> R) yields (P -> R)"
}

func (r ImplyComposeRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r ImplyComposeRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r ImplyComposeRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	all := pool(ctx, obtained)
	var candidates []Deduction
	for _, a := range hintFilter(obtained.Formulas(), formulas) {
		ai, ok := a.(ImplyFormula)
		if !ok {
			continue
		}
		for _, b := range all {
			bi, ok := b.(ImplyFormula)
			if !ok {
				continue
			}
			if regularKey(ai.Q) == regularKey(bi.P) {
				produced := ImplyFormula{P: ai.P, Q: bi.Q}
				d := Deduction{Rule: r.Name(), Produced: produced, Dependencies: []Formula{a, b}}
				if goalReached(desired, produced) {
					return Reached(d)
				}
				candidates = append(candidates, d)
			}

			// also try a and b with roles swapped, so an old implication
			// composing with a newly obtained one is found even though
			// only one of the two sits in the outer obtained loop.
			if regularKey(bi.Q) == regularKey(ai.P) {
				produced2 := ImplyFormula{P: bi.P, Q: ai.Q}
				d2 := Deduction{Rule: r.Name(), Produced: produced2, Dependencies: []Formula{b, a}}
				if goalReached(desired, produced2) {
					return Reached(d2)
				}
				candidates = append(candidates, d2)
			}
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// ImplyRule is modus ponens: from (P -> Q) and P, derive Q.
type ImplyRule struct{}

func (ImplyRule) Name() QualifiedName { return NewQualifiedName("Imply") }
func (ImplyRule) Description() string {
	return "from (P -> Q) and P, derives Q"
}

func (r ImplyRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r ImplyRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r ImplyRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	all := pool(ctx, obtained)
	var candidates []Deduction
	for _, a := range hintFilter(obtained.Formulas(), formulas) {
		for _, b := range all {
			if d, ok := modusPonens(r.Name(), a, b); ok {
				if goalReached(desired, d.Produced) {
					return Reached(d)
				}
				candidates = append(candidates, d)
			}
			if d, ok := modusPonens(r.Name(), b, a); ok {
				if goalReached(desired, d.Produced) {
					return Reached(d)
				}
				candidates = append(candidates, d)
			}
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

// modusPonens tries implication as the implication and fact as the
// antecedent, returning the derived consequent deduction if it applies.
func modusPonens(name QualifiedName, implication, fact Formula) (Deduction, bool) {
	impl, ok := implication.(ImplyFormula)
	if !ok {
		return Deduction{}, false
	}
	if regularKey(impl.P) != regularKey(fact) {
		return Deduction{}, false
	}
	return Deduction{Rule: name, Produced: impl.Q, Dependencies: []Formula{implication, fact}}, true
}
