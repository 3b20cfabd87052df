package folrules

import "sort"

// sortedConstants returns the keys of cs sorted by name — AllConstants is a
// map, and the rules that range over it must visit constants in a fixed
// order for the meta-rule's search to stay deterministic across runs.
func sortedConstants(cs map[Constant]int) []Constant {
	out := make([]Constant, 0, len(cs))
	for c := range cs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// sortedVariables returns the keys of vs sorted by name, for the same
// determinism reason as sortedConstants.
func sortedVariables(vs map[Variable]struct{}) []Variable {
	out := make([]Variable, 0, len(vs))
	for v := range vs {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ExistConstantRule generalizes a known fact over one of its constants:
// from phi(c) derive exist(x, phi(x)), recording which constant was
// generalized in the deduction's metadata under the "constant" key. When
// terms holds at least one ConstTerm, only constants occurring as one of
// terms' ConstTerm values are generalized — the spec's optional hint
// restricting which constant to generalize over; otherwise every constant
// is.
type ExistConstantRule struct{}

func (ExistConstantRule) Name() QualifiedName { return NewQualifiedName("ExistConstant") }
func (ExistConstantRule) Description() string {
	return "from phi(c) derives exist(x, phi(x)), generalizing over constant c"
}

func (r ExistConstantRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r ExistConstantRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r ExistConstantRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	hint := constantHint(terms)
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		for _, c := range sortedConstants(f.AllConstants()) {
			if hint != nil {
				if _, wanted := hint[c]; !wanted {
					continue
				}
			}
			fresh := nextVar(f)
			body := f.RecurMapTerm(func(t Term) Term {
				if ct, ok := t.(ConstTerm); ok && ct.C == c {
					return VarTerm{V: fresh}
				}
				return t
			})
			produced := ExistFormula{Body: body, V: fresh}
			d := Deduction{
				Rule:         r.Name(),
				Produced:     produced,
				Dependencies: []Formula{f},
				Metadata:     map[string]interface{}{"constant": c},
			}
			if goalReached(desired, produced) {
				return Reached(d)
			}
			candidates = append(candidates, d)
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

func constantHint(terms []Term) map[Constant]struct{} {
	if len(terms) == 0 {
		return nil
	}
	out := make(map[Constant]struct{})
	for _, t := range terms {
		if ct, ok := t.(ConstTerm); ok {
			out[ct.C] = struct{}{}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ForAnyVariableRule is universal introduction: from phi(x), with x free in
// phi, derive forall(x, phi(x)). This is the documented resolution of the
// spec's open question on this rule's direction — generalizing (not
// specializing) a free variable — matching the name's "for any" reading
// and ForAnyAnd's treatment of forall as the primitive quantifier. When
// terms holds at least one VarTerm, only variables occurring as one of
// terms' VarTerm values are generalized; otherwise every free variable is.
type ForAnyVariableRule struct{}

func (ForAnyVariableRule) Name() QualifiedName { return NewQualifiedName("ForAnyVariable") }
func (ForAnyVariableRule) Description() string {
	return "from phi(x) with x free, derives forall(x, phi(x))"
}

func (r ForAnyVariableRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r ForAnyVariableRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r ForAnyVariableRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	hint := variableHint(terms)
	var candidates []Deduction
	for _, f := range hintFilter(obtained.Formulas(), formulas) {
		for _, v := range sortedVariables(f.Variables()) {
			if hint != nil {
				if _, wanted := hint[v]; !wanted {
					continue
				}
			}
			produced := ForAllFormula{Body: f, V: v}
			d := Deduction{
				Rule:         r.Name(),
				Produced:     produced,
				Dependencies: []Formula{f},
				Metadata:     map[string]interface{}{"variable": v},
			}
			if goalReached(desired, produced) {
				return Reached(d)
			}
			candidates = append(candidates, d)
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}

func variableHint(terms []Term) map[Variable]struct{} {
	if len(terms) == 0 {
		return nil
	}
	out := make(map[Variable]struct{})
	for _, t := range terms {
		if vt, ok := t.(VarTerm); ok {
			out[vt.V] = struct{}{}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ForAnyAndRule relates a forall over a conjunction to a conjunction of
// foralls, in both directions: forall(z, phi(z) and psi(z)) is equivalent
// to forall(x, phi(x)) and forall(y, psi(y)). RuleForAnyAnd is kept in the
// catalog alongside ForAnyVariableRule.
type ForAnyAndRule struct{}

func (ForAnyAndRule) Name() QualifiedName { return NewQualifiedName("ForAnyAnd") }
func (ForAnyAndRule) Description() string {
	return "forall(z, phi(z) and psi(z)) is equivalent to forall(x,phi(x)) and forall(y,psi(y))"
}

func (r ForAnyAndRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	return applyForward(r, ctx, formulas, terms)
}

func (r ForAnyAndRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	return applyTowardAll(r, ctx, formulas, terms, desired)
}

func (r ForAnyAndRule) ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult {
	all := pool(ctx, obtained)
	var candidates []Deduction

	for _, a := range hintFilter(obtained.Formulas(), formulas) {
		fa, ok := a.(ForAllFormula)
		if !ok {
			continue
		}
		// split: forall(z, phi(z) and psi(z)) -> forall(x,phi(x)) and forall(y,psi(y))
		if and, ok := fa.Body.Flatten().(AndFormula); ok && len(and.Children) == 2 {
			produced := AndFormula{Children: []Formula{
				ForAllFormula{Body: and.Children[0], V: fa.V},
				ForAllFormula{Body: and.Children[1], V: fa.V},
			}}
			d := Deduction{Rule: r.Name(), Produced: produced, Dependencies: []Formula{a}}
			if goalReached(desired, produced) {
				return Reached(d)
			}
			candidates = append(candidates, d)
		}

		// merge: forall(x,phi(x)) and forall(y,psi(y)) -> forall(z, phi(z) and psi(z))
		for _, b := range all {
			fb, ok := b.(ForAllFormula)
			if !ok || regularKey(a) == regularKey(b) {
				continue
			}
			ns := NewNameSupply("_z", fa.Body, fb.Body)
			z := ns.Next()
			body1 := fa.Body.ReplaceVar(map[Variable]Term{fa.V: VarTerm{V: z}})
			body2 := fb.Body.ReplaceVar(map[Variable]Term{fb.V: VarTerm{V: z}})
			produced := ForAllFormula{Body: AndFormula{Children: []Formula{body1, body2}}, V: z}
			d := Deduction{Rule: r.Name(), Produced: produced, Dependencies: []Formula{a, b}}
			if goalReached(desired, produced) {
				return Reached(d)
			}
			candidates = append(candidates, d)
		}
	}
	return NotReached(dedupDeductions(ctx, candidates))
}
