package folrules

import "sort"

// regularKey derives the map key used everywhere a Formula needs to be
// compared up to regular form: the String() of its regular form. Two
// formulas share a key iff they are regular-form-identical, since String()
// is a faithful structural rendering of the node tree it was called on.
func regularKey(f Formula) string {
	return f.RegularForm().String()
}

// FormulaContext is the persistent set of known formulas the rule engine
// works from: an insertion-ordered sequence of facts as they were entered,
// plus a regular-form index that collapses AC/alpha-equivalent duplicates
// to a single representative. Add and AddAll mutate the receiver in place;
// Copy returns an independent snapshot, which is how the meta-rule's search
// extends a context without touching the caller's. Modeled on the teacher's
// pldb.go Database, generalized from fact tuples to formulas keyed by
// regular form instead of by predicate-name-and-arity.
type FormulaContext struct {
	formulas     []Formula
	regularForms map[string]Formula
	keyOrder     []string
}

// NewFormulaContext returns an empty context.
func NewFormulaContext() *FormulaContext {
	return &FormulaContext{regularForms: make(map[string]Formula)}
}

// NewFormulaContextFrom builds a context seeded with facts, in order.
func NewFormulaContextFrom(facts ...Formula) *FormulaContext {
	c := NewFormulaContext()
	c.AddAll(facts)
	return c
}

// Copy returns an independent context with the same contents; further
// mutation of either copy does not affect the other.
func (c *FormulaContext) Copy() *FormulaContext {
	nc := &FormulaContext{
		formulas:     append([]Formula(nil), c.formulas...),
		regularForms: make(map[string]Formula, len(c.regularForms)),
		keyOrder:     append([]string(nil), c.keyOrder...),
	}
	for k, v := range c.regularForms {
		nc.regularForms[k] = v
	}
	return nc
}

// Add records f as entered, and — if no structurally-equivalent formula is
// already known — registers it under its regular-form key. Add reports
// whether f's equivalence class was new to the context.
func (c *FormulaContext) Add(f Formula) bool {
	c.formulas = append(c.formulas, f)
	key := regularKey(f)
	if _, known := c.regularForms[key]; known {
		return false
	}
	c.regularForms[key] = f
	c.keyOrder = append(c.keyOrder, key)
	return true
}

// AddAll adds every fact in facts, in order.
func (c *FormulaContext) AddAll(facts []Formula) {
	for _, f := range facts {
		c.Add(f)
	}
}

// Contains reports whether a formula structurally equivalent to f is
// already known to the context.
func (c *FormulaContext) Contains(f Formula) bool {
	_, ok := c.regularForms[regularKey(f)]
	return ok
}

// ContainsKey reports whether key (a regular-form String(), as produced by
// regularKey or Frontier.Keys) names a known equivalence class.
func (c *FormulaContext) ContainsKey(key string) bool {
	_, ok := c.regularForms[key]
	return ok
}

// Lookup returns the representative formula registered under key, if any.
func (c *FormulaContext) Lookup(key string) (Formula, bool) {
	f, ok := c.regularForms[key]
	return f, ok
}

// Formulas returns every formula as entered, duplicates (by equivalence
// class) included, in insertion order.
func (c *FormulaContext) Formulas() []Formula {
	return c.formulas
}

// Representatives returns one formula per known equivalence class, in the
// order each class was first seen.
func (c *FormulaContext) Representatives() []Formula {
	out := make([]Formula, len(c.keyOrder))
	for i, k := range c.keyOrder {
		out[i] = c.regularForms[k]
	}
	return out
}

// Keys returns the regular-form key of every known equivalence class, in
// first-seen order.
func (c *FormulaContext) Keys() []string {
	return append([]string(nil), c.keyOrder...)
}

// SortedRepresentatives returns one formula per known equivalence class,
// ordered by CompareFormulas — the deterministic iteration order the
// meta-rule's search relies on for reproducible deduction trees.
func (c *FormulaContext) SortedRepresentatives() []Formula {
	out := c.Representatives()
	sortFormulas(out)
	return out
}

// Frontier is a sorted set of formulas keyed by regular form — the
// "obtained" working set the meta-rule threads through one round of rule
// application. Unlike FormulaContext it carries no insertion history: it
// exists only to let seminaive-style rules combine "something new this
// round" against "everything known up to and including this round,"
// without re-deriving facts already folded into the persistent context in
// an earlier round.
type Frontier struct {
	byKey map[string]Formula
	keys  []string
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{byKey: make(map[string]Formula)}
}

// Add registers f under its regular-form key if not already present,
// keeping Keys/Formulas sorted by CompareFormulas. It reports whether f was
// newly added.
func (fr *Frontier) Add(f Formula) bool {
	key := regularKey(f)
	if _, ok := fr.byKey[key]; ok {
		return false
	}
	fr.byKey[key] = f
	fr.keys = append(fr.keys, key)
	sortByFormulaKey(fr.keys, fr.byKey)
	return true
}

// Has reports whether key names a formula already in the frontier.
func (fr *Frontier) Has(key string) bool {
	_, ok := fr.byKey[key]
	return ok
}

// Get returns the formula registered under key, if any.
func (fr *Frontier) Get(key string) (Formula, bool) {
	f, ok := fr.byKey[key]
	return f, ok
}

// Keys returns every key in the frontier, sorted by CompareFormulas on the
// associated formula.
func (fr *Frontier) Keys() []string {
	return append([]string(nil), fr.keys...)
}

// Formulas returns every formula in the frontier, sorted by CompareFormulas.
func (fr *Frontier) Formulas() []Formula {
	out := make([]Formula, len(fr.keys))
	for i, k := range fr.keys {
		out[i] = fr.byKey[k]
	}
	return out
}

// Len reports the number of formulas in the frontier.
func (fr *Frontier) Len() int { return len(fr.keys) }

func sortByFormulaKey(keys []string, byKey map[string]Formula) {
	sort.Slice(keys, func(i, j int) bool {
		return CompareFormulas(byKey[keys[i]], byKey[keys[j]]) < 0
	})
}

// pool returns the union of ctx's representatives and fr's formulas,
// deduplicated by regular-form key — the combined "everything known so
// far, including this round's frontier" set that binary-combination rules
// (Imply, ImplyCompose, EqualReplace, ForAnyAnd) search against.
func pool(ctx *FormulaContext, fr *Frontier) []Formula {
	seen := make(map[string]struct{}, len(ctx.keyOrder)+fr.Len())
	out := make([]Formula, 0, len(ctx.keyOrder)+fr.Len())
	for _, k := range ctx.keyOrder {
		seen[k] = struct{}{}
		out = append(out, ctx.regularForms[k])
	}
	for _, k := range fr.keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, fr.byKey[k])
	}
	return out
}

// projected returns a copy of ctx with every formula in fr merged in —
// used by goal-only rules (AndConstruct) that are specified purely in
// terms of a FormulaContext, so their incremental entry point can fold the
// current round's frontier in before delegating to the same logic the
// non-incremental path uses.
func projected(ctx *FormulaContext, fr *Frontier) *FormulaContext {
	nc := ctx.Copy()
	nc.AddAll(fr.Formulas())
	return nc
}
