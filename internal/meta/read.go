package meta

import (
	"fmt"

	"knobctl/internal/raw"
)

// ReadSystem builds a raw value from the live system by reading every leaf
// through its adapter. Groups bound to their own adapter are read as one
// opaque value without recursing. A single failed read aborts the whole
// operation: there are no partial system snapshots.
func (m *Model) ReadSystem() (any, error) {
	r := &systemReader{}
	if err := m.root.Accept(r); err != nil {
		return nil, err
	}
	return r.value, nil
}

type systemReader struct {
	value any
}

func (r *systemReader) VisitScalar(s *Scalar) error {
	if s.ad == nil {
		panic(fmt.Sprintf("meta: scalar %s has no adapter", s.Path()))
	}
	v, err := s.ad.Read()
	if err != nil {
		return fmt.Errorf("%s: %w", s.Path(), err)
	}
	r.value = v
	return nil
}

func (r *systemReader) VisitGroup(g *Group) error {
	if g.ad != nil {
		v, err := g.ad.Read()
		if err != nil {
			return fmt.Errorf("%s: %w", g.Path(), err)
		}
		r.value = v
		return nil
	}

	mp := raw.NewMap()
	for _, child := range g.Children() {
		sub := &systemReader{}
		if err := child.Accept(sub); err != nil {
			return err
		}
		mp.Set(child.Name(), sub.value)
	}
	r.value = mp
	return nil
}
