package folrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func frontierOf(fs ...Formula) *Frontier {
	fr := NewFrontier()
	for _, f := range fs {
		fr.Add(f)
	}
	return fr
}

func TestFlattenRuleCollapsesNestedAnd(t *testing.T) {
	p, q, r := b.Pred("P"), b.Pred("Q"), b.Pred("R")
	nested := b.And(p, b.And(q, r))
	ctx := NewFormulaContextFrom(nested)

	res := FlattenRule{}.ApplyIncremental(ctx, frontierOf(nested), nil, nil, nil)
	assert.False(t, res.IsReached())
	assert.Len(t, res.Deductions(), 1)
	assert.True(t, res.Deductions()[0].Produced.IsIdenticalTo(b.And(p, q, r)))
}

func TestIdentityAndRemovesDuplicateConjuncts(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	f := AndFormula{Children: []Formula{p, q, p}}
	ctx := NewFormulaContextFrom(f)

	res := IdentityAndRule{}.ApplyIncremental(ctx, frontierOf(f), nil, nil, nil)
	assert.Len(t, res.Deductions(), 1)
	assert.True(t, res.Deductions()[0].Produced.IsIdenticalTo(b.And(p, q)))
}

func TestIdentityAndUnwrapsSingleton(t *testing.T) {
	p := b.Pred("P")
	f := AndFormula{Children: []Formula{p, p}}
	ctx := NewFormulaContextFrom(f)

	res := IdentityAndRule{}.ApplyIncremental(ctx, frontierOf(f), nil, nil, nil)
	assert.Len(t, res.Deductions(), 1)
	assert.True(t, res.Deductions()[0].Produced.IsIdenticalTo(p))
}

func TestAbsorptionAndSimplifies(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	f := b.And(p, b.Or(p, q))
	ctx := NewFormulaContextFrom(f)

	res := AbsorptionAndRule{}.ApplyIncremental(ctx, frontierOf(f), nil, nil, nil)
	assert.Len(t, res.Deductions(), 1)
	assert.True(t, res.Deductions()[0].Produced.IsIdenticalTo(p))
}

func TestAbsorptionOrSimplifies(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	f := b.Or(p, b.And(p, q))
	ctx := NewFormulaContextFrom(f)

	res := AbsorptionOrRule{}.ApplyIncremental(ctx, frontierOf(f), nil, nil, nil)
	assert.Len(t, res.Deductions(), 1)
	assert.True(t, res.Deductions()[0].Produced.IsIdenticalTo(p))
}

func TestAndProjectDerivesEachConjunct(t *testing.T) {
	p, q, r := b.Pred("P"), b.Pred("Q"), b.Pred("R")
	f := b.And(p, q, r)
	ctx := NewFormulaContextFrom(f)

	res := AndProjectRule{}.ApplyIncremental(ctx, frontierOf(f), nil, nil, nil)
	assert.Len(t, res.Deductions(), 3)
}

func TestAndConstructReachesGoalFromKnownConjuncts(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	ctx := NewFormulaContextFrom(p, q)

	res := AndConstructRule{}.ApplyIncremental(ctx, frontierOf(p, q), nil, nil, b.And(p, q))
	assert.True(t, res.IsReached())
	assert.Len(t, res.ReachedDeduction().Dependencies, 2)
}

func TestAndConstructDoesNotReachWithMissingConjunct(t *testing.T) {
	p := b.Pred("P")
	ctx := NewFormulaContextFrom(p)

	res := AndConstructRule{}.ApplyIncremental(ctx, frontierOf(p), nil, nil, b.And(p, b.Pred("Q")))
	assert.False(t, res.IsReached())
}

func TestExcludeMiddleReachesUnconditionally(t *testing.T) {
	p := b.Pred("P")
	ctx := NewFormulaContext()

	res := ExcludeMiddleRule{}.ApplyIncremental(ctx, NewFrontier(), nil, nil, b.Or(p, b.Not(p)))
	assert.True(t, res.IsReached())
	assert.Empty(t, res.ReachedDeduction().Dependencies)
}

func TestImplyRuleIsModusPonens(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	impl := b.Imply(p, q)
	ctx := NewFormulaContextFrom(p, impl)

	res := ImplyRule{}.ApplyIncremental(ctx, frontierOf(p, impl), nil, nil, q)
	assert.True(t, res.IsReached())
	assert.True(t, res.ReachedDeduction().Produced.IsIdenticalTo(q))
}

func TestImplyComposeChainsImplications(t *testing.T) {
	p, q, r := b.Pred("P"), b.Pred("Q"), b.Pred("R")
	pq := b.Imply(p, q)
	qr := b.Imply(q, r)
	ctx := NewFormulaContextFrom(pq, qr)

	res := ImplyComposeRule{}.ApplyIncremental(ctx, frontierOf(pq, qr), nil, nil, b.Imply(p, r))
	assert.True(t, res.IsReached())
}

func TestDefImplyRewritesBothWays(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	impl := b.Imply(p, q)
	ctx := NewFormulaContextFrom(impl)

	res := ruleDefImply.ApplyIncremental(ctx, frontierOf(impl), nil, nil, b.Or(b.Not(p), q))
	assert.True(t, res.IsReached())
}

func TestExistConstantGeneralizes(t *testing.T) {
	socrates := Const("socrates")
	mortal := Predicate{Name: "Mortal", Arity: 1}
	fact := PredicateFormula{P: mortal, Args: []Term{socrates}}
	ctx := NewFormulaContextFrom(fact)

	res := ExistConstantRule{}.ApplyIncremental(ctx, frontierOf(fact), nil, nil, nil)
	assert.Len(t, res.Deductions(), 1)
	exist, ok := res.Deductions()[0].Produced.(ExistFormula)
	assert.True(t, ok)
	assert.Equal(t, socrates.(ConstTerm).C, res.Deductions()[0].Metadata["constant"])
	_, isPred := exist.Body.(PredicateFormula)
	assert.True(t, isPred)
}

func TestForAnyVariableGeneralizes(t *testing.T) {
	x := Var("x")
	likes := Predicate{Name: "Likes", Arity: 1}
	fact := PredicateFormula{P: likes, Args: []Term{x}}
	ctx := NewFormulaContextFrom(fact)

	res := ForAnyVariableRule{}.ApplyIncremental(ctx, frontierOf(fact), nil, nil, nil)
	assert.Len(t, res.Deductions(), 1)
	_, ok := res.Deductions()[0].Produced.(ForAllFormula)
	assert.True(t, ok)
}

func TestForAnyAndSplitsAndMerges(t *testing.T) {
	x := Var("x")
	v := x.(VarTerm).V
	phi := PredicateFormula{P: Predicate{Name: "Phi", Arity: 1}, Args: []Term{x}}
	psi := PredicateFormula{P: Predicate{Name: "Psi", Arity: 1}, Args: []Term{x}}
	forallBoth := ForAllFormula{Body: AndFormula{Children: []Formula{phi, psi}}, V: v}

	ctx := NewFormulaContextFrom(forallBoth)
	res := ForAnyAndRule{}.ApplyIncremental(ctx, frontierOf(forallBoth), nil, nil, nil)
	assert.NotEmpty(t, res.Deductions())

	foundSplit := false
	for _, d := range res.Deductions() {
		if _, ok := d.Produced.(AndFormula); ok {
			foundSplit = true
		}
	}
	assert.True(t, foundSplit)
}

func TestEqualReplaceSubstitutes(t *testing.T) {
	x, y := Var("x"), Var("y")
	eq := Eq(x, y)
	tall := Predicate{Name: "Tall", Arity: 1}
	fact := PredicateFormula{P: tall, Args: []Term{x}}
	ctx := NewFormulaContextFrom(eq, fact)

	res := EqualReplaceRule{}.ApplyIncremental(ctx, frontierOf(eq, fact), nil, nil, nil)
	want := PredicateFormula{P: tall, Args: []Term{y}}
	found := false
	for _, d := range res.Deductions() {
		if d.Produced.IsIdenticalTo(want) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestExistConstantHonorsConstantHint(t *testing.T) {
	alice, carol := Const("alice"), Const("carol")
	knows := Predicate{Name: "Knows", Arity: 2}
	fact := PredicateFormula{P: knows, Args: []Term{alice, carol}}
	ctx := NewFormulaContextFrom(fact)

	res := ExistConstantRule{}.ApplyIncremental(ctx, frontierOf(fact), nil, []Term{carol}, nil)
	assert.Len(t, res.Deductions(), 1)
	assert.Equal(t, Constant{Name: "carol"}, res.Deductions()[0].Metadata["constant"])
}

func TestFormulaHintRestrictsRuleSubjects(t *testing.T) {
	p, q, r, s := b.Pred("P"), b.Pred("Q"), b.Pred("R"), b.Pred("S")
	f1 := b.And(p, q)
	f2 := b.And(r, s)
	ctx := NewFormulaContextFrom(f1, f2)

	res := AndProjectRule{}.ApplyIncremental(ctx, frontierOf(f1, f2), []Formula{f1}, nil, nil)
	assert.Len(t, res.Deductions(), 2)
	for _, d := range res.Deductions() {
		assert.True(t, d.Dependencies[0].IsIdenticalTo(f1))
	}
}
