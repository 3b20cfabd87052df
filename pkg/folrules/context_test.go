package folrules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var formulaComparer = cmp.Comparer(func(a, b Formula) bool {
	return a.IsIdenticalTo(b)
})

func TestFormulaContextDedupesByRegularForm(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	ctx := NewFormulaContext()
	ctx.Add(b.And(p, q))
	added := ctx.Add(b.And(q, p)) // same equivalence class, different child order

	assert.False(t, added)
	assert.Len(t, ctx.Representatives(), 1)
	assert.Len(t, ctx.Formulas(), 2)
}

func TestFormulaContextCopyIsIndependent(t *testing.T) {
	p := b.Pred("P")
	ctx := NewFormulaContextFrom(p)
	clone := ctx.Copy()

	clone.Add(b.Pred("Q"))

	assert.Len(t, ctx.Representatives(), 1)
	assert.Len(t, clone.Representatives(), 2)
}

func TestFrontierStaysSortedAndDeduped(t *testing.T) {
	p, q, r := b.Pred("P"), b.Pred("Q"), b.Pred("R")
	fr := NewFrontier()
	assert.True(t, fr.Add(r))
	assert.True(t, fr.Add(p))
	assert.True(t, fr.Add(q))
	assert.False(t, fr.Add(p))

	assert.Equal(t, 3, fr.Len())

	formulas := fr.Formulas()
	for i := 1; i < len(formulas); i++ {
		assert.True(t, CompareFormulas(formulas[i-1], formulas[i]) < 0)
	}
}

func TestPoolUnionsContextAndFrontierWithoutDuplicates(t *testing.T) {
	p, q := b.Pred("P"), b.Pred("Q")
	ctx := NewFormulaContextFrom(p)
	fr := NewFrontier()
	fr.Add(p)
	fr.Add(q)

	all := pool(ctx, fr)
	assert.Len(t, all, 2)
}

func TestSortedRepresentativesAreOrderIndependentOfInsertion(t *testing.T) {
	p, q, r := b.Pred("P"), b.Pred("Q"), b.Pred("R")

	first := NewFormulaContextFrom(r, p, q)
	second := NewFormulaContextFrom(q, r, p)

	if diff := cmp.Diff(first.SortedRepresentatives(), second.SortedRepresentatives(), formulaComparer); diff != "" {
		t.Errorf("insertion order leaked into sorted representatives:\n%s", diff)
	}
}
