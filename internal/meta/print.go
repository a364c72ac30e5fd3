package meta

import (
	"fmt"
	"strings"
)

// Tree renders the metamodel as indented branch-drawing text. Output is
// deterministic: children print in registration order.
func (m *Model) Tree() string {
	p := &treePrinter{isTop: true, isLast: true}
	_ = m.root.Accept(p)
	return p.sb.String()
}

// treePrinter renders one node per line with box-drawing branches. The
// prefix accumulates as the traversal descends.
type treePrinter struct {
	sb     strings.Builder
	prefix string
	isTop  bool
	isLast bool
}

func (p *treePrinter) line(n Node, typed bool) {
	p.sb.WriteString(p.prefix)
	if !p.isTop {
		if p.isLast {
			p.sb.WriteString(" └── ")
		} else {
			p.sb.WriteString(" ├── ")
		}
	}
	p.sb.WriteString(n.Name())
	p.sb.WriteString(": ")
	p.sb.WriteString(n.Help())
	if !p.isTop {
		if n.Applyable() {
			p.sb.WriteString(" [Ap]")
		} else {
			p.sb.WriteString(" [RO]")
		}
	}
	if typed {
		p.sb.WriteString(fmt.Sprintf(" [Type = %s]", n.TypeString()))
	}
	p.sb.WriteString("\n")
}

func (p *treePrinter) VisitGroup(g *Group) error {
	p.line(g, false)

	childPrefix := p.prefix
	if !p.isTop {
		if p.isLast {
			childPrefix += "    "
		} else {
			childPrefix += " │  "
		}
	}

	children := g.Children()
	for i, c := range children {
		sub := &treePrinter{prefix: childPrefix, isLast: i == len(children)-1}
		_ = c.Accept(sub)
		p.sb.WriteString(sub.sb.String())
	}
	return nil
}

func (p *treePrinter) VisitScalar(s *Scalar) error {
	p.line(s, true)
	return nil
}
