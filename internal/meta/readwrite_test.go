package meta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knobctl/internal/raw"
)

func TestReadSystem_AssemblesTree(t *testing.T) {
	m, _ := testTree()
	v, err := m.ReadSystem()
	require.NoError(t, err)
	assert.True(t, raw.Equal(goodValue(), v))
}

func TestReadSystem_FailureAborts(t *testing.T) {
	m, ads := testTree()
	ads["name"].readErr = errors.New("permission denied")

	v, err := m.ReadSystem()
	assert.Nil(t, v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top.baz.name")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestReadSystem_ScalarWithoutAdapterPanics(t *testing.T) {
	top := NewRoot("top", "")
	top.AddScalar("x", "", TypeInt, nil)
	m := NewModel(top)

	assert.Panics(t, func() {
		_, _ = m.ReadSystem()
	})
}

func TestApply_DiffOnlyUnchangedWritesNothing(t *testing.T) {
	m, ads := testTree()
	tv, errs := m.Wrap(goodValue())
	require.Empty(t, errs)

	errs = m.Apply(tv, false)
	assert.Empty(t, errs)
	for name, ad := range ads {
		assert.Zero(t, ad.writes, "unexpected write to %s", name)
	}
}

func TestApply_DiffOnlyWritesOnlyChanged(t *testing.T) {
	m, ads := testTree()
	desired := goodValue()
	desired.Set("bar", 7)
	tv, errs := m.Wrap(desired)
	require.Empty(t, errs)

	errs = m.Apply(tv, false)
	assert.Empty(t, errs)
	assert.Equal(t, 1, ads["bar"].writes)
	assert.Equal(t, 7, ads["bar"].value)
	assert.Zero(t, ads["name"].writes)
	assert.Zero(t, ads["soccer"].writes)
	assert.Zero(t, ads["nfl"].writes)
}

func TestApply_AlwaysWritesAllApplyable(t *testing.T) {
	m, ads := testTree()
	tv, errs := m.Wrap(goodValue())
	require.Empty(t, errs)

	errs = m.Apply(tv, true)
	assert.Empty(t, errs)
	assert.Equal(t, 1, ads["bar"].writes)
	assert.Equal(t, 1, ads["name"].writes)
	assert.Equal(t, 1, ads["soccer"].writes)
	assert.Equal(t, 1, ads["nfl"].writes)
	// read-only leaf is compared, never written
	assert.Zero(t, ads["age"].writes)
}

func TestApply_NonApplyableDivergenceReported(t *testing.T) {
	for _, always := range []bool{false, true} {
		m, ads := testTree()
		desired := goodValue()
		baz, _ := desired.Get("baz")
		baz.(*raw.Map).Set("age", 42)
		tv, errs := m.Wrap(desired)
		require.Empty(t, errs)

		errs = m.Apply(tv, always)
		require.Len(t, errs, 1, "always=%v", always)
		assert.Equal(t, "top.baz.age: difference in non-applyable value (current: 37 desired: 42)", errs[0])
		assert.Zero(t, ads["age"].writes)
	}
}

func TestApply_WriteFailureContinues(t *testing.T) {
	m, ads := testTree()
	ads["soccer"].writeErr = errors.New("read-only filesystem")

	desired := raw.NewMap().
		Set("bar", 8).
		Set("baz", raw.NewMap().
			Set("name", "jane").
			Set("age", 37)).
		Set("teams", raw.NewMap().
			Set("soccer", "arsenal").
			Set("nfl", "bears"))
	tv, errs := m.Wrap(desired)
	require.Empty(t, errs)

	errs = m.Apply(tv, false)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "top.teams.soccer")
	assert.Contains(t, errs[0], "read-only filesystem")
	// the failure did not stop the later sibling
	assert.Equal(t, "bears", ads["nfl"].value)
	assert.Equal(t, 8, ads["bar"].value)
}

func TestApply_DiffOnlyReadFailureReported(t *testing.T) {
	m, ads := testTree()
	ads["bar"].readErr = errors.New("unreadable")

	tv, errs := m.Wrap(goodValue())
	require.Empty(t, errs)

	errs = m.Apply(tv, false)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "top.bar")
	assert.Zero(t, ads["bar"].writes)
}

// opaqueTree builds top{pair{a:int, b:int}} where pair is bound to its own
// adapter: the whole subtree reads and writes as one value and the leaf
// nodes carry no adapters of their own.
func opaqueTree(applyable bool) (*Model, *fakeAdapter) {
	ad := &fakeAdapter{value: raw.NewMap().Set("a", 1).Set("b", 2)}
	top := NewRoot("top", "")
	pair := top.AddGroup("pair", "atomic pair").Bind(ad)
	if !applyable {
		pair.ObserveOnly()
	}
	pair.AddScalar("a", "", TypeInt, nil)
	pair.AddScalar("b", "", TypeInt, nil)
	return NewModel(top), ad
}

func TestOpaqueGroup_ReadDoesNotRecurse(t *testing.T) {
	m, ad := opaqueTree(true)
	v, err := m.ReadSystem()
	require.NoError(t, err)
	assert.True(t, raw.Equal(raw.NewMap().Set("pair", raw.NewMap().Set("a", 1).Set("b", 2)), v))
	assert.Equal(t, 1, ad.reads)
}

func TestOpaqueGroup_ApplyWritesWholeSubtree(t *testing.T) {
	m, ad := opaqueTree(true)
	desired := raw.NewMap().Set("pair", raw.NewMap().Set("a", 1).Set("b", 3))
	tv, errs := m.Wrap(desired)
	require.Empty(t, errs)

	errs = m.Apply(tv, false)
	assert.Empty(t, errs)
	assert.Equal(t, 1, ad.writes)
	assert.True(t, raw.Equal(raw.NewMap().Set("a", 1).Set("b", 3), ad.value))
}

func TestOpaqueGroup_DiffOnlySkipsEqualSubtree(t *testing.T) {
	m, ad := opaqueTree(true)
	desired := raw.NewMap().Set("pair", raw.NewMap().Set("a", 1).Set("b", 2))
	tv, errs := m.Wrap(desired)
	require.Empty(t, errs)

	errs = m.Apply(tv, false)
	assert.Empty(t, errs)
	assert.Zero(t, ad.writes)
}

// A non-applyable opaque group behaves like a non-applyable scalar: one
// read-compare over the whole subtree value, one error on divergence, and
// never a write, in either mode.
func TestOpaqueGroup_NonApplyableDivergence(t *testing.T) {
	for _, always := range []bool{false, true} {
		m, ad := opaqueTree(false)
		desired := raw.NewMap().Set("pair", raw.NewMap().Set("a", 1).Set("b", 3))
		tv, errs := m.Wrap(desired)
		require.Empty(t, errs)

		errs = m.Apply(tv, always)
		require.Len(t, errs, 1, "always=%v", always)
		assert.Contains(t, errs[0], "top.pair: difference in non-applyable value")
		assert.Zero(t, ad.writes)
	}
}
