package adapter

import (
	"fmt"
	"strconv"
	"strings"
)

// Int translates between a base-10 integer and the inner adapter's text
// representation.
type Int struct {
	Inner Adapter
}

func (a Int) Read() (any, error) {
	v, err := a.Inner.Read()
	if err != nil {
		return nil, err
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("integer source is %T, want string", v)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return n, nil
}

func (a Int) Write(v any) error {
	n, ok := v.(int)
	if !ok {
		return fmt.Errorf("cannot write %T as integer", v)
	}
	return a.Inner.Write(strconv.Itoa(n))
}

// Bool translates between a boolean and the inner adapter's text
// representation. Only "true" and "false" are accepted on read, compared
// case-insensitively; any other token is an error rather than a guess.
type Bool struct {
	Inner Adapter
}

func (a Bool) Read() (any, error) {
	v, err := a.Inner.Read()
	if err != nil {
		return nil, err
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("boolean source is %T, want string", v)
	}
	switch strings.ToLower(s) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, fmt.Errorf("ambiguous boolean value: %q", s)
}

func (a Bool) Write(v any) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("cannot write %T as boolean", v)
	}
	return a.Inner.Write(strconv.FormatBool(b))
}
