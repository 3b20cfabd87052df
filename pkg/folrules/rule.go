package folrules

// Rule is the common contract every inference rule satisfies: it names
// itself, documents itself, and can be run forward (Apply, ignoring any
// goal) or toward a specific target (ApplyToward).
//
// The formulas and terms arguments are optional user hints: when non-empty
// they bias or restrict the rule's choice — formulas narrows which known
// facts the rule works from, terms narrows rule-specific term selection
// (e.g. which constant ExistConstant generalizes). Nil or empty hints leave
// the rule unrestricted.
type Rule interface {
	Name() QualifiedName
	Description() string

	// Apply derives everything this rule can derive in one step from the
	// full context, with no goal to check against.
	Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction

	// ApplyToward derives toward desired: it either closes desired in one
	// step (Reached) or returns whatever it could derive along the way
	// (NotReached).
	ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult
}

// LogicRule is a Rule the bounded forward-search meta-rule can drive
// incrementally: ApplyIncremental is given the current frontier (the
// formulas newly obtained in the previous round) in addition to the
// persistent context, so seminaive-style rules can combine "new" against
// "everything known so far" without re-deriving what earlier rounds
// already covered.
type LogicRule interface {
	Rule
	ApplyIncremental(ctx *FormulaContext, obtained *Frontier, formulas []Formula, terms []Term, desired Formula) TowardResult
}

// applyTowardAll runs r against the whole context as a single frontier —
// the ApplyToward behavior every LogicRule implementation delegates to, so
// a rule need only implement ApplyIncremental.
func applyTowardAll(r LogicRule, ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	fr := NewFrontier()
	for _, f := range ctx.Representatives() {
		fr.Add(f)
	}
	return r.ApplyIncremental(ctx, fr, formulas, terms, desired)
}

// applyForward runs r with no goal, returning whatever it could derive —
// the Apply behavior every LogicRule implementation delegates to.
func applyForward(r LogicRule, ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	res := applyTowardAll(r, ctx, formulas, terms, nil)
	if res.IsReached() {
		return []Deduction{res.ReachedDeduction()}
	}
	return res.Deductions()
}

// hintFilter restricts fs to formulas regular-form-equivalent to one of
// hints. An empty hints leaves fs untouched: hints restrict, they never
// add.
func hintFilter(fs []Formula, hints []Formula) []Formula {
	if len(hints) == 0 {
		return fs
	}
	wanted := make(map[string]struct{}, len(hints))
	for _, h := range hints {
		wanted[regularKey(h)] = struct{}{}
	}
	out := make([]Formula, 0, len(fs))
	for _, f := range fs {
		if _, ok := wanted[regularKey(f)]; ok {
			out = append(out, f)
		}
	}
	return out
}

// dedupDeductions drops deductions whose Produced is structurally identical
// to the representative ctx already holds for its equivalence class, or
// that repeat (by regular form) one earlier in ds, preserving order — rules
// emit candidates freely and rely on this to keep their output free of
// noise. A result that is only regular-form-equivalent to a known fact (a
// flattened or deduplicated conjunction, say) is kept; the meta-rule's
// search drops those itself.
func dedupDeductions(ctx *FormulaContext, ds []Deduction) []Deduction {
	seen := make(map[string]struct{})
	out := make([]Deduction, 0, len(ds))
	for _, d := range ds {
		key := regularKey(d.Produced)
		if rep, known := ctx.Lookup(key); known && rep.IsIdenticalTo(d.Produced) {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}
