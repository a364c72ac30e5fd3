package meta

import (
	"fmt"

	"knobctl/internal/raw"
)

// TypeCheck verifies that v satisfies the model's shape and types. It
// returns an ordered list of path-qualified error strings; an empty list
// means v conforms. The check never stops early: every discrepancy in the
// whole tree is reported.
//
// Ordering matches traversal: mapping keys are visited in document order,
// unknown-key and recursive errors interleave in that order, and missing
// declared fields trail in registration order.
func (m *Model) TypeCheck(v any) []string {
	tc := &typeChecker{data: v}
	_ = m.root.Accept(tc)
	return tc.errs
}

type typeChecker struct {
	data any
	errs []string
}

func (tc *typeChecker) VisitScalar(s *Scalar) error {
	got := raw.TypeName(tc.data)
	if got != s.typ.String() {
		tc.errs = append(tc.errs, fmt.Sprintf("%s: type mismatch (expected: %s got: %s)", s.Path(), s.typ, got))
	}
	return nil
}

func (tc *typeChecker) VisitGroup(g *Group) error {
	mp, ok := tc.data.(*raw.Map)
	if !ok {
		tc.errs = append(tc.errs, fmt.Sprintf("%s: type mismatch (expected: dict got: %s)", g.Path(), raw.TypeName(tc.data)))
		return nil
	}

	for _, key := range mp.Keys() {
		child, known := g.Child(key)
		if !known {
			tc.errs = append(tc.errs, fmt.Sprintf("%s: %q is not a valid key", g.Path(), key))
			continue
		}
		value, _ := mp.Get(key)
		sub := &typeChecker{data: value}
		_ = child.Accept(sub)
		tc.errs = append(tc.errs, sub.errs...)
	}

	for _, child := range g.Children() {
		if !mp.Has(child.Name()) {
			tc.errs = append(tc.errs, fmt.Sprintf("%s: missing %q field [Type = %s]", g.Path(), child.Name(), child.TypeString()))
		}
	}
	return nil
}
