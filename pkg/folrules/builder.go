package folrules

import "strings"

// FormulaBuilder is a fluent constructor surface for assembling Formula
// trees, grounded on the teacher's own preference for small composable
// constructor functions over direct struct literals (primitives.go's Cons/
// Pair helpers) generalized to this package's richer node alphabet.
// Its methods are pure: each returns a new Formula and has no receiver
// state, so a single FormulaBuilder value can be shared freely.
type FormulaBuilder struct{}

// NewFormulaBuilder returns a FormulaBuilder ready to use.
func NewFormulaBuilder() FormulaBuilder { return FormulaBuilder{} }

// And builds an n-ary conjunction.
func (FormulaBuilder) And(fs ...Formula) Formula { return AndFormula{Children: fs} }

// Or builds an n-ary disjunction.
func (FormulaBuilder) Or(fs ...Formula) Formula { return OrFormula{Children: fs} }

// Not builds a negation.
func (FormulaBuilder) Not(f Formula) Formula { return NotFormula{Child: f} }

// Imply builds a material implication p -> q.
func (FormulaBuilder) Imply(p, q Formula) Formula { return ImplyFormula{P: p, Q: q} }

// Equiv builds a material biconditional p <-> q.
func (FormulaBuilder) Equiv(p, q Formula) Formula { return EquivFormula{P: p, Q: q} }

// ForAll builds a universally quantified formula.
func (FormulaBuilder) ForAll(v Variable, body Formula) Formula {
	return ForAllFormula{Body: body, V: v}
}

// Exist builds an existentially quantified formula.
func (FormulaBuilder) Exist(v Variable, body Formula) Formula {
	return ExistFormula{Body: body, V: v}
}

// Pred builds an atomic predicate application.
func (FormulaBuilder) Pred(name string, args ...Term) Formula {
	return PredicateFormula{P: Predicate{Name: name, Arity: len(args)}, Args: args}
}

// Named builds a named-schema atom.
func (FormulaBuilder) Named(name string, params ...Term) Formula {
	return NamedFormula{Name: name, Parameters: params}
}

// Var builds a variable term named name. name must not start with "#": that
// prefix is reserved for the fresh names regular form's canonicalization
// generates (see regular.go's regularFormVarName), and a user-supplied name
// starting with it could otherwise collide with a canonical bound-variable
// name and corrupt regular-form comparisons.
func Var(name string) Term {
	validateName(name)
	return VarTerm{V: Variable{Name: name}}
}

// Const builds a constant term named name, subject to the same naming
// restriction as Var.
func Const(name string) Term {
	validateName(name)
	return ConstTerm{C: Constant{Name: name}}
}

// Fun builds a function application term named name, subject to the same
// naming restriction as Var.
func Fun(name string, args ...Term) Term {
	validateName(name)
	return FunTerm{F: Function{Name: name, Arity: len(args)}, Children: args}
}

func validateName(name string) {
	if strings.HasPrefix(name, "#") {
		panicProgrammerErrorf("name %q is reserved: names starting with \"#\" are generated by regular-form canonicalization", name)
	}
}
