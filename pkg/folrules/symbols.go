// Package folrules implements the rule engine and meta-rule at the heart of
// a first-order-logic proof assistant: given a context of known formulas and
// a desired target, it searches for a derivation by iteratively applying a
// catalog of inference rules up to a bounded depth.
package folrules

import "fmt"

// Variable names a bound or free individual variable. Two variables are the
// same variable iff their Name fields compare equal; there is no hidden
// identity beyond the name, which keeps Variable values comparable with ==.
type Variable struct {
	Name string
}

func (v Variable) String() string { return v.Name }

// Constant names an individual constant (a 0-ary, rigid denotation).
type Constant struct {
	Name string
}

func (c Constant) String() string { return c.Name }

// Function names an n-ary function symbol used to build compound terms.
type Function struct {
	Name  string
	Arity int
}

func (f Function) String() string { return f.Name }

// Predicate names an n-ary predicate symbol used to build atomic formulas.
type Predicate struct {
	Name  string
	Arity int
}

func (p Predicate) String() string { return p.Name }

// QualifiedName is a namespace-scoped identifier for a Rule. Every built-in
// rule lives in namespace "logic".
type QualifiedName struct {
	Namespace string
	Local     string
}

func (q QualifiedName) String() string {
	return fmt.Sprintf("%s::%s", q.Namespace, q.Local)
}

// NewQualifiedName builds a QualifiedName in the "logic" namespace, the
// namespace every built-in rule and the meta-rule live in.
func NewQualifiedName(local string) QualifiedName {
	return QualifiedName{Namespace: "logic", Local: local}
}
