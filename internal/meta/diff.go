package meta

import (
	"fmt"

	"knobctl/internal/raw"
)

// Diff compares two typed values conforming to this model and returns a
// declaration-ordered list of textual differences, one per diverging leaf.
// The caller supplies human-readable labels for the two sides (for example
// "file" and "system"). An empty list means the values are identical.
func (m *Model) Diff(left, right *TypedValue, leftLabel, rightLabel string) []string {
	d := &differ{
		left:       left.Raw(),
		right:      right.Raw(),
		leftLabel:  leftLabel,
		rightLabel: rightLabel,
	}
	_ = m.root.Accept(d)
	return d.diffs
}

type differ struct {
	left, right           any
	leftLabel, rightLabel string
	diffs                 []string
}

func (d *differ) VisitScalar(s *Scalar) error {
	if !raw.Equal(d.left, d.right) {
		d.diffs = append(d.diffs, fmt.Sprintf("%s: %s = %v | %s = %v",
			s.Path(), d.leftLabel, d.left, d.rightLabel, d.right))
	}
	return nil
}

func (d *differ) VisitGroup(g *Group) error {
	// Both sides were type-checked against the same model, so the key sets
	// are identical and recursion per declared child is safe.
	lm := d.left.(*raw.Map)
	rm := d.right.(*raw.Map)
	for _, child := range g.Children() {
		lv, _ := lm.Get(child.Name())
		rv, _ := rm.Get(child.Name())
		sub := &differ{left: lv, right: rv, leftLabel: d.leftLabel, rightLabel: d.rightLabel}
		_ = child.Accept(sub)
		d.diffs = append(d.diffs, sub.diffs...)
	}
	return nil
}
