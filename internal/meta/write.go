package meta

import (
	"fmt"

	"knobctl/internal/adapter"
	"knobctl/internal/raw"
)

// Apply writes a typed value to the live system through the tree's
// adapters. Unless always is set, each write is preceded by a read and
// skipped when the live value already matches (diff-only mode).
//
// Non-applyable nodes are never written regardless of mode; they are
// read-compared and any divergence is reported as an error. Write failures
// do not abort the traversal: application is best-effort, and the returned
// list holds every per-path error. An empty list means full success.
func (m *Model) Apply(tv *TypedValue, always bool) []string {
	w := &systemWriter{value: tv.Raw(), diffOnly: !always}
	_ = m.root.Accept(w)
	return w.errs
}

type systemWriter struct {
	value    any
	diffOnly bool
	errs     []string
}

// store applies the write policy for one adapter-backed node.
func (w *systemWriter) store(path string, ad adapter.Adapter, applyable bool, desired any) {
	if !applyable {
		current, err := ad.Read()
		if err != nil {
			w.errs = append(w.errs, fmt.Sprintf("%s: %v", path, err))
			return
		}
		if !raw.Equal(current, desired) {
			w.errs = append(w.errs, fmt.Sprintf("%s: difference in non-applyable value (current: %v desired: %v)", path, current, desired))
		}
		return
	}

	if w.diffOnly {
		current, err := ad.Read()
		if err != nil {
			w.errs = append(w.errs, fmt.Sprintf("%s: %v", path, err))
			return
		}
		if raw.Equal(current, desired) {
			return
		}
	}

	if err := ad.Write(desired); err != nil {
		w.errs = append(w.errs, fmt.Sprintf("%s: %v", path, err))
	}
}

func (w *systemWriter) VisitScalar(s *Scalar) error {
	if s.ad == nil {
		panic(fmt.Sprintf("meta: scalar %s has no adapter", s.Path()))
	}
	w.store(s.Path(), s.ad, s.applyable, w.value)
	return nil
}

func (w *systemWriter) VisitGroup(g *Group) error {
	if g.ad != nil {
		w.store(g.Path(), g.ad, g.applyable, w.value)
		return nil
	}

	mp, ok := w.value.(*raw.Map)
	if !ok {
		panic(fmt.Sprintf("meta: typed value for %s is not a mapping", g.Path()))
	}
	for _, child := range g.Children() {
		v, present := mp.Get(child.Name())
		if !present {
			panic(fmt.Sprintf("meta: typed value missing %s", g.Path()+"."+child.Name()))
		}
		sub := &systemWriter{value: v, diffOnly: w.diffOnly}
		_ = child.Accept(sub)
		w.errs = append(w.errs, sub.errs...)
	}
	return nil
}
