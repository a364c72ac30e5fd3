package meta

import (
	"knobctl/internal/raw"
)

// fakeAdapter is an in-memory adapter that counts reads and writes so tests
// can assert on diff-only behavior.
type fakeAdapter struct {
	value    any
	reads    int
	writes   int
	readErr  error
	writeErr error
}

func (f *fakeAdapter) Read() (any, error) {
	f.reads++
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.value, nil
}

func (f *fakeAdapter) Write(v any) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.value = v
	return nil
}

// testTree builds the model shared by the engine tests:
//
//	top{bar:int, baz{name:str, age:int(read-only)}, teams{soccer:str, nfl:str}}
//
// Each leaf is backed by a named fakeAdapter.
func testTree() (*Model, map[string]*fakeAdapter) {
	ads := map[string]*fakeAdapter{
		"bar":    {value: 5},
		"name":   {value: "john"},
		"age":    {value: 37},
		"soccer": {value: "man utd"},
		"nfl":    {value: "tigers"},
	}

	top := NewRoot("top", "i am top")
	top.AddScalar("bar", "i am bar", TypeInt, ads["bar"])
	baz := top.AddGroup("baz", "i am baz")
	baz.AddScalar("name", "person's name", TypeString, ads["name"])
	baz.AddReadOnlyScalar("age", "person's age", TypeInt, ads["age"])
	teams := top.AddGroup("teams", "sports teams")
	teams.AddScalar("soccer", "soccer", TypeString, ads["soccer"])
	teams.AddScalar("nfl", "american football", TypeString, ads["nfl"])

	return NewModel(top), ads
}

// goodValue conforms to testTree and matches the fake adapters' initial
// state.
func goodValue() *raw.Map {
	return raw.NewMap().
		Set("bar", 5).
		Set("baz", raw.NewMap().
			Set("name", "john").
			Set("age", 37)).
		Set("teams", raw.NewMap().
			Set("soccer", "man utd").
			Set("nfl", "tigers"))
}

// badValue violates testTree in every category: wrong-typed leaves, an
// unknown key, a missing field, a group replaced by a scalar, and an
// unknown top-level group.
func badValue() *raw.Map {
	return raw.NewMap().
		Set("bar", false).
		Set("baz", raw.NewMap().
			Set("age", "100").
			Set("hobby", []any{"fishing", "eating"})).
		Set("teams", 619).
		Set("etc", raw.NewMap().
			Set("phone", 123456709))
}
