// Package scenarios holds the built-in example proofs used by the prove
// CLI: a small, named library of
// (context, goal) pairs exercising each of the spec's end-to-end scenarios.
package scenarios

import "github.com/gitrdm/folrules/pkg/folrules"

// Scenario pairs a persistent context of known facts with a goal formula
// to search for.
type Scenario struct {
	Name    string
	Context *folrules.FormulaContext
	Goal    folrules.Formula
}

var b = folrules.NewFormulaBuilder()

func modusPonens() Scenario {
	p := b.Pred("P")
	q := b.Pred("Q")
	ctx := folrules.NewFormulaContextFrom(p, b.Imply(p, q))
	return Scenario{Name: "modus-ponens", Context: ctx, Goal: q}
}

func excludeMiddle() Scenario {
	p := b.Pred("P")
	ctx := folrules.NewFormulaContext()
	return Scenario{Name: "exclude-middle", Context: ctx, Goal: b.Or(p, b.Not(p))}
}

func andConstruct() Scenario {
	p := b.Pred("P")
	q := b.Pred("Q")
	ctx := folrules.NewFormulaContextFrom(p, q)
	return Scenario{Name: "and-construct", Context: ctx, Goal: b.And(p, q)}
}

func doubleNegation() Scenario {
	p := b.Pred("P")
	ctx := folrules.NewFormulaContextFrom(b.Not(b.Not(p)))
	return Scenario{Name: "double-negation", Context: ctx, Goal: p}
}

func implyCompose() Scenario {
	p := b.Pred("P")
	q := b.Pred("Q")
	r := b.Pred("R")
	ctx := folrules.NewFormulaContextFrom(p, b.Imply(p, q), b.Imply(q, r))
	return Scenario{Name: "imply-compose", Context: ctx, Goal: r}
}

func existGeneralize() Scenario {
	c := folrules.Const("socrates")
	mortal := folrules.Predicate{Name: "Mortal", Arity: 1}
	fact := folrules.PredicateFormula{P: mortal, Args: []folrules.Term{c}}
	ctx := folrules.NewFormulaContextFrom(fact)

	x := folrules.Var("x")
	xv := x.(folrules.VarTerm).V
	goal := b.Exist(xv, folrules.PredicateFormula{P: mortal, Args: []folrules.Term{x}})
	return Scenario{Name: "exist-generalize", Context: ctx, Goal: goal}
}

// All returns every built-in scenario, in a fixed display order.
func All() []Scenario {
	return []Scenario{
		modusPonens(),
		excludeMiddle(),
		andConstruct(),
		doubleNegation(),
		implyCompose(),
		existGeneralize(),
	}
}

// ByName returns the scenario with the given name, if any.
func ByName(name string) (Scenario, bool) {
	for _, s := range All() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
