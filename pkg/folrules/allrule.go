package folrules

import "go.uber.org/zap"

// DefaultSearchDepth bounds how many rounds AllLogicRule.ApplyToward will
// run before giving up — the spec's forward-search depth bound, chosen to
// keep the search from running away on a context where the goal is
// actually unreachable.
const DefaultSearchDepth = 3

// LogicRules is the ordered catalog of built-in rules the meta-rule
// searches with. Order is significant: it is the tie-breaking order in
// which rules are tried within a round, which in turn makes the meta-rule's
// search, and the deduction trees it reconstructs, deterministic.
type LogicRules struct {
	Rules []LogicRule
}

// Catalog returns the built-in rule set, in the fixed order the meta-rule
// tries them.
func Catalog() LogicRules {
	return LogicRules{Rules: []LogicRule{
		FlattenRule{},
		ruleDoubleNegate,
		IdentityAndRule{},
		IdentityOrRule{},
		AbsorptionAndRule{},
		AbsorptionOrRule{},
		AndProjectRule{},
		AndConstructRule{},
		ImplyComposeRule{},
		ruleDefImply,
		ruleDefEquivTo,
		ImplyRule{},
		EqualReplaceRule{},
		ExcludeMiddleRule{},
		ExistConstantRule{},
		ForAnyVariableRule{},
		ForAnyAndRule{},
	}}
}

// RulesAsMap indexes the catalog by qualified name.
func (lr LogicRules) RulesAsMap() map[QualifiedName]LogicRule {
	out := make(map[QualifiedName]LogicRule, len(lr.Rules))
	for _, r := range lr.Rules {
		out[r.Name()] = r
	}
	return out
}

// AllLogicRule is the bounded forward-search meta-rule: given a context and
// a goal, it iteratively applies every rule in the catalog, merging what
// each round derives into the working context, until either the goal is
// reached or the search exhausts its depth bound — the spec's central
// operation, grounded on the teacher's goal-resolution loop
// (control_flow.go's Conj/Disj driving primitives.go's unify) generalized
// from unification search to rule-catalog forward chaining.
type AllLogicRule struct {
	Catalog     LogicRules
	SearchDepth int
}

// NewAllLogicRule returns the meta-rule over the built-in catalog with the
// default search depth.
func NewAllLogicRule() AllLogicRule {
	return AllLogicRule{Catalog: Catalog(), SearchDepth: DefaultSearchDepth}
}

func (r AllLogicRule) Name() QualifiedName { return NewQualifiedName("Logic") }
func (r AllLogicRule) Description() string {
	return "bounded forward search over the built-in rule catalog"
}

// Apply runs the search with no goal: it returns every deduction reachable
// within the depth bound, without trying to close on anything in
// particular, in the deterministic order search discovered them.
func (r AllLogicRule) Apply(ctx *FormulaContext, formulas []Formula, terms []Term) []Deduction {
	_, allDeductions, _ := r.search(ctx, formulas, terms, nil)
	return allDeductions
}

// proveNode is the shared implementation behind ApplyToward and
// ProveToward: it runs the search (short-circuiting on a goal already in
// ctx) and, on success, builds the DeductionNode proof tree rooted at the
// goal-closing deduction by resolving each dependency through childNodesFor.
func (r AllLogicRule) proveNode(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) (*DeductionNode, TowardResult) {
	if ctx.Contains(desired) {
		rep, _ := ctx.Lookup(regularKey(desired))
		d := identityDeduction(rep)
		return &DeductionNode{Deduction: d}, Reached(d)
	}
	nodes, _, result := r.search(ctx, formulas, terms, desired)
	if !result.IsReached() {
		return nil, result
	}
	d := result.ReachedDeduction()
	node := &DeductionNode{Deduction: d, Children: childNodesFor(d, nodes)}
	return node, Reached(d)
}

// ApplyToward searches for a derivation of desired, bounded by
// r.SearchDepth (or DefaultSearchDepth if unset). On success it returns
// Reached with a deduction whose Dependencies has been rewritten to
// ContextLeaves of the full proof tree — the spec's "flat dependency list
// contains only original context facts" — and whose Metadata carries the
// full tree under "DeductionTree" for callers that want more than the
// flattened leaves. On exhaustion it returns NotReached with every
// deduction discovered along the way.
func (r AllLogicRule) ApplyToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) TowardResult {
	node, result := r.proveNode(ctx, formulas, terms, desired)
	if !result.IsReached() {
		return result
	}
	return Reached(attachDeductionTree(result.ReachedDeduction(), node))
}

// ProveToward is like ApplyToward but returns the DeductionNode proof tree
// itself rather than flattening it into a Deduction's Dependencies/Metadata
// — convenient for display, or for checking ContextLeaves against the
// original context directly. ok is false when the search did not reach
// desired within the depth bound.
func (r AllLogicRule) ProveToward(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) (*DeductionNode, bool) {
	node, result := r.proveNode(ctx, formulas, terms, desired)
	return node, result.IsReached()
}

// attachDeductionTree rewrites d's Dependencies to the flattened
// original-context leaves of node and records node itself under the
// "DeductionTree" metadata key of the returned deduction, leaving the rest
// of d untouched.
func attachDeductionTree(d Deduction, node *DeductionNode) Deduction {
	meta := make(map[string]interface{}, len(d.Metadata)+1)
	for k, v := range d.Metadata {
		meta[k] = v
	}
	meta["DeductionTree"] = node
	return Deduction{
		Rule:         d.Rule,
		Produced:     d.Produced,
		Dependencies: ContextLeaves(node),
		Metadata:     meta,
	}
}

// search runs the bounded forward-chaining loop shared by Apply and
// proveNode. It returns the DeductionNode for every reached equivalence
// class (including the input context's own facts, as identity nodes), every
// deduction discovered in deterministic, round-by-round discovery order,
// and the goal TowardResult, if any goal was supplied.
func (r AllLogicRule) search(ctx *FormulaContext, formulas []Formula, terms []Term, desired Formula) (map[string]*DeductionNode, []Deduction, TowardResult) {
	depth := r.SearchDepth
	if depth <= 0 {
		depth = DefaultSearchDepth
	}
	catalog := r.Catalog
	if len(catalog.Rules) == 0 {
		catalog = Catalog()
	}

	working := ctx.Copy()
	reached := make(map[string]*DeductionNode)
	for _, f := range working.Representatives() {
		reached[regularKey(f)] = &DeductionNode{Deduction: identityDeduction(f)}
	}

	obtained := NewFrontier()
	for _, f := range working.Representatives() {
		obtained.Add(f)
	}

	var allDeductions []Deduction

	for round := 0; round < depth; round++ {
		newObtained := NewFrontier()
		applied := false

		for _, rule := range catalog.Rules {
			res := rule.ApplyIncremental(working, obtained, formulas, terms, desired)
			if res.IsReached() {
				d := res.ReachedDeduction()
				recordDeduction(reached, d)
				searchLogger.Debug("meta-rule reached goal",
					zap.String("rule", d.Rule.String()), zap.Int("round", round))
				return reached, allDeductions, Reached(d)
			}
			for _, d := range res.Deductions() {
				key := regularKey(d.Produced)
				if working.ContainsKey(key) || obtained.Has(key) {
					continue
				}
				recordDeduction(reached, d)
				allDeductions = append(allDeductions, d)
				if newObtained.Add(d.Produced) {
					applied = true
				}
			}
		}

		searchLogger.Debug("meta-rule round complete",
			zap.Int("round", round), zap.Int("newly_obtained", newObtained.Len()))

		if !applied {
			break
		}
		working.AddAll(obtained.Formulas())
		obtained = newObtained
	}
	working.AddAll(obtained.Formulas())

	return reached, allDeductions, NotReached(allDeductions)
}

func recordDeduction(reached map[string]*DeductionNode, d Deduction) {
	key := regularKey(d.Produced)
	if _, exists := reached[key]; exists {
		return
	}
	reached[key] = &DeductionNode{Deduction: d}
}

// childNodesFor resolves d's dependency list into the DeductionNode that
// justifies each one, using nodes (the full reached index the search
// built up), recursively wiring grandchildren the same way.
func childNodesFor(d Deduction, nodes map[string]*DeductionNode) []*DeductionNode {
	children := make([]*DeductionNode, 0, len(d.Dependencies))
	for _, dep := range d.Dependencies {
		depNode, ok := nodes[regularKey(dep)]
		if !ok {
			continue
		}
		resolved := &DeductionNode{Deduction: depNode.Deduction}
		resolved.Children = childNodesFor(depNode.Deduction, nodes)
		children = append(children, resolved)
	}
	return children
}
