package adapter

import (
	"fmt"
	"strings"
)

// OptionSelect adapts kernel "choice" files whose text lists every option
// with the active one bracketed, e.g. "always [madvise] never". Read returns
// the bracketed token without its brackets. Write passes the raw option name
// through to the inner adapter; the kernel re-brackets it on the next read.
type OptionSelect struct {
	Inner Adapter
}

func (o OptionSelect) Read() (any, error) {
	v, err := o.Inner.Read()
	if err != nil {
		return nil, err
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("option list is %T, want string", v)
	}
	for _, tok := range strings.Fields(s) {
		if strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]") {
			return strings.TrimSuffix(strings.TrimPrefix(tok, "["), "]"), nil
		}
	}
	return nil, fmt.Errorf("no selected option in %q", s)
}

func (o OptionSelect) Write(v any) error {
	return o.Inner.Write(v)
}
