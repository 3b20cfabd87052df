package folrules

// Deduction records one derivation step: rule justified produced from
// dependencies (formulas already present in the context or frontier),
// with metadata a free-form bag of rule-specific side information (e.g.
// which constant ExistConstant generalized).
type Deduction struct {
	Rule         QualifiedName
	Produced     Formula
	Dependencies []Formula
	Metadata     map[string]interface{}
}

// identityRuleName tags the seed deductions the meta-rule creates for every
// fact already present in the input context — a "this formula just IS a
// known fact" step, the leaf case of every DeductionNode tree.
var identityRuleName = NewQualifiedName("Fact")

// identityDeduction builds the seed Deduction for a context fact: it
// produces itself and depends on nothing further.
func identityDeduction(f Formula) Deduction {
	return Deduction{Rule: identityRuleName, Produced: f}
}

// TowardResult is the tagged result of a goal-directed rule application:
// either Reached (a single deduction whose Produced closes the goal) or
// NotReached (zero or more newly derivable deductions that did not, by
// themselves, reach the goal).
type TowardResult struct {
	reached    bool
	reachedBy  Deduction
	notReached []Deduction
}

// Reached wraps a goal-closing deduction.
func Reached(d Deduction) TowardResult {
	return TowardResult{reached: true, reachedBy: d}
}

// NotReached wraps zero or more newly derived deductions.
func NotReached(ds []Deduction) TowardResult {
	return TowardResult{notReached: ds}
}

// IsReached reports whether this result closes the goal.
func (r TowardResult) IsReached() bool { return r.reached }

// ReachedDeduction returns the goal-closing deduction. Only meaningful
// when IsReached is true.
func (r TowardResult) ReachedDeduction() Deduction { return r.reachedBy }

// Deductions returns the newly derived deductions. Only meaningful when
// IsReached is false; Reached results carry no separate deduction list.
func (r TowardResult) Deductions() []Deduction { return r.notReached }

// DeductionNode links a deduction to the nodes justifying each of its
// dependencies, forming the proof tree/DAG rooted at whatever the meta-rule
// was asked to reach.
type DeductionNode struct {
	Deduction Deduction
	Children  []*DeductionNode
}

// RecurApply performs a pre-order traversal of the tree rooted at n,
// calling visit on each node. Traversal stops as soon as visit returns
// false, and RecurApply itself then returns false; it returns true only if
// every visited node returned true.
func (n *DeductionNode) RecurApply(visit func(*DeductionNode) bool) bool {
	if n == nil {
		return true
	}
	if !visit(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.RecurApply(visit) {
			return false
		}
	}
	return true
}

// ContextLeaves collects, via RecurApply, the flat list of original
// context facts reachable from n — the leaves of the proof tree, i.e.
// every node whose Deduction is an identity step. Order follows traversal
// order; duplicate leaves (the same context fact justifying two branches)
// are included once.
func ContextLeaves(n *DeductionNode) []Formula {
	seen := make(map[string]struct{})
	var out []Formula
	n.RecurApply(func(node *DeductionNode) bool {
		if node.Deduction.Rule == identityRuleName {
			key := regularKey(node.Deduction.Produced)
			if _, dup := seen[key]; !dup {
				seen[key] = struct{}{}
				out = append(out, node.Deduction.Produced)
			}
		}
		return true
	})
	return out
}

// goalReached reports whether produced closes desired, i.e. they share a
// regular form. A nil desired (no goal supplied, as when Rule.Apply is
// used instead of ApplyToward) never closes.
func goalReached(desired, produced Formula) bool {
	if desired == nil || produced == nil {
		return false
	}
	return desired.RegularForm().IsIdenticalTo(produced.RegularForm())
}
