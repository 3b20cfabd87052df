package folrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormulaMatcherBindsHoles(t *testing.T) {
	p := b.Pred("P")
	pattern := NotFormula{Child: NotFormula{Child: FormulaHole{Name: "P"}}}
	subject := b.Not(b.Not(p))

	m := FromFormula(pattern, true)
	matches := m.Match(subject)
	assert.Len(t, matches, 1)
	assert.True(t, matches[0].Formulas["P"].IsIdenticalTo(p))
}

func TestFormulaMatcherReplaceOneWithFindsNestedSubtree(t *testing.T) {
	p := b.Pred("P")
	q := b.Pred("Q")
	subject := b.And(q, b.Not(b.Not(p)))

	rewrites := ruleDoubleNegate.Apply(NewFormulaContextFrom(subject), nil, nil)
	assert.NotEmpty(t, rewrites)

	found := false
	for _, d := range rewrites {
		if d.Produced.IsIdenticalTo(b.And(q, p)) {
			found = true
		}
	}
	assert.True(t, found, "expected not(not(P)) inside the and to rewrite to P")
}

func TestFormulaMatcherACPermutesAndChildren(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	pattern := AndFormula{Children: []Formula{FormulaHole{Name: "X"}, FormulaHole{Name: "Y"}}}
	subject := b.And(q, p) // reversed order from how a naive matcher might expect

	m := FromFormula(pattern, true)
	matches := m.Match(subject)
	assert.NotEmpty(t, matches)
}

func TestInstantiateFormulaResolvesHoles(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	bindings := NewBindings()
	bindings.Formulas["P"] = p
	bindings.Formulas["Q"] = q

	replacer := OrFormula{Children: []Formula{
		NotFormula{Child: FormulaHole{Name: "P"}},
		FormulaHole{Name: "Q"},
	}}
	got := instantiateFormula(replacer, bindings)
	want := b.Or(b.Not(p), q)
	assert.True(t, got.IsIdenticalTo(want))
}

func TestTermHoleBindsThroughRefTerm(t *testing.T) {
	socrates := Const("socrates")
	mortal := Predicate{Name: "Mortal", Arity: 1}
	pattern := PredicateFormula{P: mortal, Args: []Term{TermHole{Name: "x"}}}
	subject := PredicateFormula{P: mortal, Args: []Term{socrates}}

	m := FromFormula(pattern, true)
	matches := m.Match(subject)
	assert.Len(t, matches, 1)

	ref, ok := matches[0].Terms["x"].(RefTerm)
	assert.True(t, ok, "a term hole binds its subject through a RefTerm placeholder")
	assert.True(t, ref.IsIdenticalTo(socrates))

	human := Predicate{Name: "Human", Arity: 1}
	replacer := PredicateFormula{P: human, Args: []Term{TermHole{Name: "x"}}}
	got := instantiateFormula(replacer, matches[0])
	want := PredicateFormula{P: human, Args: []Term{socrates}}
	assert.True(t, got.IsIdenticalTo(want))

	_, stillRef := got.(PredicateFormula).Args[0].(RefTerm)
	assert.False(t, stillRef, "no RefTerm may survive substitution into a produced formula")
}

func TestRepeatedTermHoleRequiresIdenticalSubjects(t *testing.T) {
	x := TermHole{Name: "x"}
	pattern := PredicateFormula{P: EqPredicate, Args: []Term{x, x}}
	m := FromFormula(pattern, true)

	assert.Len(t, m.Match(Eq(Const("a"), Const("a"))), 1)
	assert.Empty(t, m.Match(Eq(Const("a"), Const("b"))))
}
