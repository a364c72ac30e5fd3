package meta

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knobctl/internal/raw"
)

func TestTypeCheck_GoodData(t *testing.T) {
	m, _ := testTree()
	errs := m.TypeCheck(goodValue())
	assert.Empty(t, errs, "detected error in good case")
}

// The bad case pins the full diagnostic grammar and its ordering: candidate
// keys in document order with recursion inline, missing declared fields
// trailing.
func TestTypeCheck_BadData(t *testing.T) {
	m, _ := testTree()
	errs := m.TypeCheck(badValue())

	expected := `top.bar: type mismatch (expected: int got: bool)
top.baz.age: type mismatch (expected: int got: str)
top.baz: "hobby" is not a valid key
top.baz: missing "name" field [Type = str]
top.teams: type mismatch (expected: dict got: int)
top: "etc" is not a valid key`
	assert.Equal(t, expected, strings.Join(errs, "\n"))
}

func TestTypeCheck_NonMapAtRoot(t *testing.T) {
	m, _ := testTree()
	errs := m.TypeCheck(42)
	require.Len(t, errs, 1)
	assert.Equal(t, "top: type mismatch (expected: dict got: int)", errs[0])
}

func TestTypeCheck_MissingFieldNamesGroupType(t *testing.T) {
	m, _ := testTree()
	v := raw.NewMap().
		Set("bar", 5).
		Set("teams", raw.NewMap().
			Set("soccer", "a").
			Set("nfl", "b"))

	errs := m.TypeCheck(v)
	require.Len(t, errs, 1)
	assert.Equal(t, `top: missing "baz" field [Type = dict]`, errs[0])
}

func TestWrap_GoodData(t *testing.T) {
	m, _ := testTree()
	tv, errs := m.Wrap(goodValue())
	require.Empty(t, errs)
	require.NotNil(t, tv)
	assert.True(t, raw.Equal(goodValue(), tv.Raw()))
}

func TestWrap_BadData(t *testing.T) {
	m, _ := testTree()
	tv, errs := m.Wrap(badValue())
	assert.Nil(t, tv)
	assert.NotEmpty(t, errs)
}
