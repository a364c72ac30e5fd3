// Package meta implements the metamodel tree engine: a typed schema tree of
// groups and scalars, and the generic operations (print, type-check, read,
// write, diff) that traverse it. The engine knows nothing about concrete
// backing stores; leaves reach their live values through adapters bound at
// registration time.
package meta

import (
	"fmt"
	"strings"

	"knobctl/internal/adapter"
)

// ValueType is the primitive type accepted by a Scalar leaf.
type ValueType int

const (
	TypeInt ValueType = iota
	TypeBool
	TypeString
)

// String returns the diagnostic name of the type.
func (t ValueType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeString:
		return "str"
	}
	return "invalid"
}

// Visitor is implemented once per traversal operation. Dispatch is double:
// a Node applies itself to the visitor, so new operations never touch the
// node definitions and a new node variant must implement every operation.
type Visitor interface {
	VisitGroup(g *Group) error
	VisitScalar(s *Scalar) error
}

// Node is a metamodel tree node, either a *Group or a *Scalar.
type Node interface {
	Name() string
	Help() string
	// Applyable reports whether the engine may write this node's value.
	// Non-applyable nodes are observe-only.
	Applyable() bool
	Adapter() adapter.Adapter
	Parent() *Group
	// Path is the dotted root-to-node name sequence, derived from the
	// parent chain.
	Path() string
	// TypeString is the name used for this node in diagnostics ("dict"
	// for groups, the scalar type name otherwise).
	TypeString() string
	Accept(v Visitor) error

	attach(parent *Group)
}

// node carries the state common to both variants.
type node struct {
	name      string
	help      string
	applyable bool
	ad        adapter.Adapter
	parent    *Group
}

func (n *node) Name() string             { return n.name }
func (n *node) Help() string             { return n.help }
func (n *node) Applyable() bool          { return n.applyable }
func (n *node) Adapter() adapter.Adapter { return n.ad }
func (n *node) Parent() *Group           { return n.parent }

func (n *node) attach(parent *Group) {
	if n.parent != nil {
		panic(fmt.Sprintf("meta: node %q already has a parent", n.name))
	}
	n.parent = parent
}

func (n *node) path() string {
	var names []string
	names = append(names, n.name)
	for p := n.parent; p != nil; p = p.parent {
		names = append(names, p.name)
	}
	// reverse into root-first order
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, ".")
}

// Group is a named, fixed-shape collection of child nodes. It has no value
// of its own unless it is bound to an adapter, in which case the whole
// subtree is read and written as one opaque value.
type Group struct {
	node
	children map[string]Node
	order    []string
}

// NewRoot creates a parentless Group to serve as the tree root.
func NewRoot(name, help string) *Group {
	return &Group{
		node:     node{name: name, help: help, applyable: true},
		children: make(map[string]Node),
	}
}

// Register adds a child node. Registering a duplicate name, or a node that
// already has a parent, is a schema-construction bug and panics.
func (g *Group) Register(n Node) {
	if _, ok := g.children[n.Name()]; ok {
		panic(fmt.Sprintf("meta: %q already registered under %q", n.Name(), g.Path()))
	}
	n.attach(g)
	g.children[n.Name()] = n
	g.order = append(g.order, n.Name())
}

// AddGroup registers and returns a new child group.
func (g *Group) AddGroup(name, help string) *Group {
	child := &Group{
		node:     node{name: name, help: help, applyable: true},
		children: make(map[string]Node),
	}
	g.Register(child)
	return child
}

// AddScalar registers and returns a new applyable typed leaf.
func (g *Group) AddScalar(name, help string, typ ValueType, ad adapter.Adapter) *Scalar {
	child := &Scalar{
		node: node{name: name, help: help, applyable: true, ad: ad},
		typ:  typ,
	}
	g.Register(child)
	return child
}

// AddReadOnlyScalar registers a leaf the engine may observe but never write.
func (g *Group) AddReadOnlyScalar(name, help string, typ ValueType, ad adapter.Adapter) *Scalar {
	child := &Scalar{
		node: node{name: name, help: help, applyable: false, ad: ad},
		typ:  typ,
	}
	g.Register(child)
	return child
}

// Bind attaches an adapter to the group, making its subtree opaque: reads
// and writes go through the adapter as one value instead of recursing.
func (g *Group) Bind(ad adapter.Adapter) *Group {
	g.ad = ad
	return g
}

// ObserveOnly marks the group non-applyable.
func (g *Group) ObserveOnly() *Group {
	g.applyable = false
	return g
}

// Child returns the named child, if registered.
func (g *Group) Child(name string) (Node, bool) {
	n, ok := g.children[name]
	return n, ok
}

// Children returns the child nodes in registration order.
func (g *Group) Children() []Node {
	out := make([]Node, len(g.order))
	for i, name := range g.order {
		out[i] = g.children[name]
	}
	return out
}

func (g *Group) Path() string       { return g.path() }
func (g *Group) TypeString() string { return "dict" }

func (g *Group) Accept(v Visitor) error { return v.VisitGroup(g) }

// Scalar is a typed leaf. Every scalar carries the adapter that connects it
// to its live backing value.
type Scalar struct {
	node
	typ ValueType
}

// Type returns the accepted primitive type.
func (s *Scalar) Type() ValueType { return s.typ }

func (s *Scalar) Path() string       { return s.path() }
func (s *Scalar) TypeString() string { return s.typ.String() }

func (s *Scalar) Accept(v Visitor) error { return v.VisitScalar(s) }
