package folrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var b = NewFormulaBuilder()

func TestRegularFormIdempotent(t *testing.T) {
	p := b.Pred("P")
	q := b.Pred("Q")
	r := b.Pred("R")

	cases := []Formula{
		b.And(p, q, r),
		b.Or(r, p, q),
		b.And(b.Or(p, q), b.Not(r)),
		b.ForAll(Variable{Name: "x"}, b.Pred("Likes", Var("x"), Const("pie"))),
		b.Exist(Variable{Name: "y"}, b.Pred("Likes", Var("y"), Const("pie"))),
	}

	for _, f := range cases {
		once := f.RegularForm()
		twice := once.RegularForm()
		assert.True(t, once.IsIdenticalTo(twice), "regular form must be idempotent for %s", f)
	}
}

func TestRegularFormIgnoresAndOrder(t *testing.T) {
	p := b.Pred("P")
	q := b.Pred("Q")
	r := b.Pred("R")

	a := b.And(p, q, r)
	c := b.And(r, p, q)

	assert.True(t, a.RegularForm().IsIdenticalTo(c.RegularForm()))
}

func TestRegularFormDedupesConjuncts(t *testing.T) {
	p := b.Pred("P")
	a := b.And(p, p, p)
	reg, ok := a.RegularForm().(AndFormula)
	assert.True(t, ok)
	assert.Len(t, reg.Children, 1)
}

func TestRegularFormAlphaRenamesBoundVariables(t *testing.T) {
	x := Variable{Name: "x"}
	y := Variable{Name: "y"}

	fx := b.ForAll(x, b.Pred("Likes", Var("x"), Const("pie")))
	fy := b.ForAll(y, b.Pred("Likes", Var("y"), Const("pie")))

	assert.True(t, fx.RegularForm().IsIdenticalTo(fy.RegularForm()))
}

func TestRegularFormDoesNotCollapseSingleton(t *testing.T) {
	p := b.Pred("P")
	singleton := b.And(p)
	assert.False(t, singleton.RegularForm().IsIdenticalTo(p.RegularForm()))
}

func TestRegularFormFlattensNestedAnd(t *testing.T) {
	p, q, r := b.Pred("P"), b.Pred("Q"), b.Pred("R")
	nested := b.And(p, b.And(q, r))
	flat := b.And(p, q, r)
	assert.True(t, nested.RegularForm().IsIdenticalTo(flat.RegularForm()))
}

func TestRegularFormOrderIndependentForQuantifiedSiblings(t *testing.T) {
	y := Variable{Name: "y"}
	z := Variable{Name: "z"}
	forallQ := b.ForAll(y, b.Pred("Q", Var("y")))
	forallR := b.ForAll(z, b.Pred("R", Var("z")))

	a := b.And(forallQ, forallR)
	c := b.And(forallR, forallQ)

	assert.True(t, a.RegularForm().IsIdenticalTo(c.RegularForm()),
		"swapping independently-quantified conjuncts must not change the regular form")
}

func TestRegularFormDedupesAlphaVariantConjuncts(t *testing.T) {
	y := Variable{Name: "y"}
	z := Variable{Name: "z"}
	a := b.And(
		b.ForAll(y, b.Pred("P", Var("y"))),
		b.ForAll(z, b.Pred("P", Var("z"))),
	)

	reg, ok := a.RegularForm().(AndFormula)
	assert.True(t, ok)
	assert.Len(t, reg.Children, 1,
		"alpha-variant conjuncts share a canonical name and must collapse to one")
}

func TestRegularFormNamesBindersByNestingDepth(t *testing.T) {
	x := Variable{Name: "x"}
	y := Variable{Name: "y"}
	nested := b.ForAll(x, b.Exist(y, b.Pred("Knows", Var("x"), Var("y"))))

	outer, ok := nested.RegularForm().(ForAllFormula)
	assert.True(t, ok)
	assert.Equal(t, "#1", outer.V.Name)
	inner, ok := outer.Body.(ExistFormula)
	assert.True(t, ok)
	assert.Equal(t, "#2", inner.V.Name)
}
