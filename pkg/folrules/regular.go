package folrules

import "strconv"

// regularForm computes the canonical representative of f's equivalence
// class under (i) AND/OR associativity, (ii) AND/OR child-order
// commutativity, (iii) bound-variable alpha-renaming, and (iv) canonical
// removal of duplicate conjuncts/disjuncts — the contract fixed by the
// spec's regular-form invariant.
//
// Alpha-renaming names each binder after its quantifier nesting depth: a
// quantifier under d enclosing quantifiers binds "#"+(d+1), regardless of
// where its subtree sits among AND/OR siblings. The canonical name must
// be a function of the subtree's own structure alone, never of sibling
// encounter order — CompareFormulas orders quantified formulas by binder
// name, so any order-sensitive naming would make the post-rename child
// sort depend on how the input happened to list its conjuncts. Depth
// naming also gives alpha-variant siblings identical names, which is what
// lets the AC dedup below collapse them. Scopes never capture each other:
// sibling quantifiers at the same depth share a name but bind disjoint
// subtrees, and a binder at depth d substitutes "#"+(d+1) into a body
// whose inner binders were all renamed to strictly deeper numbers.
// User-supplied names cannot start with "#" (see validateName in
// builder.go), so the canonical names collide with nothing free.
//
// Singleton AND/OR nodes (a single child after dedup) are NOT collapsed to
// their child: the spec's regular-form invariant is scoped to AC + alpha +
// dedup, not full semantic simplification. AndFormula{[P]} and P are
// therefore distinct regular forms; IdentityAnd/IdentityOr are the rules
// responsible for that simplification, not regular form itself.
func regularForm(f Formula) Formula {
	return regularFormRec(f, 0)
}

func regularFormRec(f Formula, depth int) Formula {
	switch n := f.(type) {
	case PredicateFormula, NamedFormula:
		return f
	case NotFormula:
		return NotFormula{Child: regularFormRec(n.Child, depth)}
	case AndFormula:
		return AndFormula{Children: regularizeACChildren(flattenAndChildren(n.Children), depth)}
	case OrFormula:
		return OrFormula{Children: regularizeACChildren(flattenOrChildren(n.Children), depth)}
	case ImplyFormula:
		return ImplyFormula{P: regularFormRec(n.P, depth), Q: regularFormRec(n.Q, depth)}
	case EquivFormula:
		return EquivFormula{P: regularFormRec(n.P, depth), Q: regularFormRec(n.Q, depth)}
	case ForAllFormula:
		body := regularFormRec(n.Body, depth+1)
		fresh := Variable{Name: regularFormVarName(depth + 1)}
		renamed := body.ReplaceVar(map[Variable]Term{n.V: VarTerm{V: fresh}})
		return ForAllFormula{Body: renamed, V: fresh}
	case ExistFormula:
		body := regularFormRec(n.Body, depth+1)
		fresh := Variable{Name: regularFormVarName(depth + 1)}
		renamed := body.ReplaceVar(map[Variable]Term{n.V: VarTerm{V: fresh}})
		return ExistFormula{Body: renamed, V: fresh}
	default:
		return f
	}
}

func regularFormVarName(depth int) string {
	// "#" is not a legal leading character for names produced by the
	// builder, so these can never collide with a user-supplied variable.
	return "#" + strconv.Itoa(depth)
}

// regularizeACChildren reduces every child to its own regular form, removes
// structural duplicates, and sorts the result with CompareFormulas —
// producing the canonical representation of an AND/OR's multiset of
// children. Children are renamed before sorting; depth naming makes that
// safe (see regularForm).
func regularizeACChildren(children []Formula, depth int) []Formula {
	reduced := make([]Formula, len(children))
	for i, c := range children {
		reduced[i] = regularFormRec(c, depth)
	}
	sortFormulas(reduced)
	out := make([]Formula, 0, len(reduced))
	for _, c := range reduced {
		if len(out) == 0 || !out[len(out)-1].IsIdenticalTo(c) {
			out = append(out, c)
		}
	}
	return out
}
