package meta

// Model wraps a fully constructed metamodel tree and exposes the traversal
// operations against it. Models are built once per run by the registry and
// passed explicitly; there is no ambient global tree.
type Model struct {
	root Node
}

// NewModel wraps a root node.
func NewModel(root Node) *Model {
	return &Model{root: root}
}

// Root returns the tree root.
func (m *Model) Root() Node { return m.root }

// TypedValue is a raw value proven to satisfy the model's shape and type
// constraints. It is produced only by Wrap and is immutable.
type TypedValue struct {
	value any
	model *Model
}

// Raw returns the underlying raw value.
func (tv *TypedValue) Raw() any { return tv.value }

// Wrap type-checks v and, if it conforms, returns it as a TypedValue.
// On failure it returns nil and the ordered error list.
func (m *Model) Wrap(v any) (*TypedValue, []string) {
	errs := m.TypeCheck(v)
	if len(errs) > 0 {
		return nil, errs
	}
	return &TypedValue{value: v, model: m}, nil
}
