package folrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllLogicRuleModusPonens(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	ctx := NewFormulaContextFrom(p, b.Imply(p, q))

	meta := NewAllLogicRule()
	node, ok := meta.ProveToward(ctx, nil, nil, q)
	assert.True(t, ok)
	assert.True(t, node.Deduction.Produced.IsIdenticalTo(q))

	leaves := ContextLeaves(node)
	for _, leaf := range leaves {
		assert.True(t, ctx.Contains(leaf))
	}
}

func TestAllLogicRuleExcludeMiddleNeedsNoContext(t *testing.T) {
	p := b.Pred("P")
	ctx := NewFormulaContext()

	meta := NewAllLogicRule()
	node, ok := meta.ProveToward(ctx, nil, nil, b.Or(p, b.Not(p)))
	assert.True(t, ok)
	assert.Empty(t, ContextLeaves(node))
}

func TestAllLogicRuleAndConstruct(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	ctx := NewFormulaContextFrom(p, q)

	meta := NewAllLogicRule()
	_, ok := meta.ProveToward(ctx, nil, nil, b.And(p, q))
	assert.True(t, ok)
}

func TestAllLogicRuleDoubleNegation(t *testing.T) {
	p := b.Pred("P")
	ctx := NewFormulaContextFrom(b.Not(b.Not(p)))

	meta := NewAllLogicRule()
	_, ok := meta.ProveToward(ctx, nil, nil, p)
	assert.True(t, ok)
}

func TestAllLogicRuleImplicationChain(t *testing.T) {
	p, q, r := b.Pred("P"), b.Pred("Q"), b.Pred("R")
	ctx := NewFormulaContextFrom(p, b.Imply(p, q), b.Imply(q, r))

	meta := NewAllLogicRule()
	node, ok := meta.ProveToward(ctx, nil, nil, r)
	assert.True(t, ok)
	assert.True(t, node.Deduction.Produced.IsIdenticalTo(r))
}

func TestAllLogicRuleExistentialGeneralization(t *testing.T) {
	socrates := Const("socrates")
	mortal := Predicate{Name: "Mortal", Arity: 1}
	fact := PredicateFormula{P: mortal, Args: []Term{socrates}}
	ctx := NewFormulaContextFrom(fact)

	x := Var("x")
	goal := ExistFormula{Body: PredicateFormula{P: mortal, Args: []Term{x}}, V: x.(VarTerm).V}

	meta := NewAllLogicRule()
	_, ok := meta.ProveToward(ctx, nil, nil, goal)
	assert.True(t, ok)
}

func TestAllLogicRuleUnreachableGoalExhaustsDepth(t *testing.T) {
	p := b.Pred("P")
	ctx := NewFormulaContextFrom(p)

	meta := AllLogicRule{Catalog: Catalog(), SearchDepth: 1}
	_, ok := meta.ProveToward(ctx, nil, nil, b.Pred("Unrelated"))
	assert.False(t, ok)
}

func TestAllLogicRuleSearchIsDeterministic(t *testing.T) {
	p, q, r := b.Pred("P"), b.Pred("Q"), b.Pred("R")
	ctx := NewFormulaContextFrom(p, b.Imply(p, q), b.Imply(q, r))

	meta := NewAllLogicRule()
	first, ok1 := meta.ProveToward(ctx, nil, nil, r)
	second, ok2 := meta.ProveToward(ctx, nil, nil, r)

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first.Deduction.Rule, second.Deduction.Rule)
	assert.True(t, first.Deduction.Produced.IsIdenticalTo(second.Deduction.Produced))
}

func TestAllLogicRuleReturnsIdentityForContextGoal(t *testing.T) {
	p := b.Pred("P")
	ctx := NewFormulaContextFrom(p)

	meta := NewAllLogicRule()
	node, ok := meta.ProveToward(ctx, nil, nil, p)
	assert.True(t, ok)
	assert.Equal(t, identityRuleName, node.Deduction.Rule)
	assert.Empty(t, node.Children)
}

func TestAllLogicRuleApplyIsDeterministic(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	ctx := NewFormulaContextFrom(p, b.Imply(p, q))

	meta := AllLogicRule{Catalog: Catalog(), SearchDepth: 1}
	first := meta.Apply(ctx, nil, nil)
	second := meta.Apply(ctx, nil, nil)

	assert.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Produced.IsIdenticalTo(second[i].Produced))
	}

	foundQ := false
	for _, d := range first {
		if d.Produced.IsIdenticalTo(q) {
			foundQ = true
		}
	}
	assert.True(t, foundQ, "forward application should derive Q by modus ponens")
}

func TestApplyTowardAttachesDeductionTree(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	ctx := NewFormulaContextFrom(p, b.Imply(p, q))

	res := NewAllLogicRule().ApplyToward(ctx, nil, nil, q)
	assert.True(t, res.IsReached())

	d := res.ReachedDeduction()
	node, ok := d.Metadata["DeductionTree"].(*DeductionNode)
	assert.True(t, ok, "reached deduction must carry the proof tree in its metadata")
	assert.NotNil(t, node)

	for _, dep := range d.Dependencies {
		assert.True(t, ctx.Contains(dep), "flattened dependencies must all be original context facts")
	}
}

func TestCatalogRulesAsMapIndexesByQualifiedName(t *testing.T) {
	m := Catalog().RulesAsMap()
	assert.Len(t, m, len(Catalog().Rules))

	r, ok := m[NewQualifiedName("Imply")]
	assert.True(t, ok)
	assert.Equal(t, "logic::Imply", r.Name().String())
}
