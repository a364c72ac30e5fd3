// Package adapter bridges metamodel leaves to the backing resources that hold
// their live values. An adapter is a read/write capability over one opaque
// value; adapters compose, so typed adapters (int, bool, option-select) wrap
// an inner string adapter and translate its text representation.
//
// Adapters never cache: every Read reflects the current external state.
package adapter

import "errors"

// ErrReadOnly is returned by Write on adapters whose backing value cannot be
// changed (derived values, fixed constants).
var ErrReadOnly = errors.New("value is read-only")

// Adapter reads and writes one value backed by an external resource.
type Adapter interface {
	// Read returns the current value, or an I/O/format error.
	Read() (any, error)
	// Write durably stores v, or fails with an I/O/permission/format error.
	Write(v any) error
}

// Static is a fixed-value adapter. Read always returns the value it was
// created with; Write always fails with ErrReadOnly.
type Static struct {
	Value any
}

func (s Static) Read() (any, error) { return s.Value, nil }

func (s Static) Write(any) error { return ErrReadOnly }

// Func derives its value from a function at every Read. Writes always fail
// with ErrReadOnly.
type Func struct {
	ReadFn func() (any, error)
}

func (f Func) Read() (any, error) { return f.ReadFn() }

func (f Func) Write(any) error { return ErrReadOnly }
