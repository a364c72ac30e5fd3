package adapter

import (
	"fmt"
	"os"
	"strings"
)

// File reads and writes the full contents of a single backing file as a
// string. Reads trim trailing whitespace, matching the newline-terminated
// single-value convention of kernel tunable files. Writes replace the
// contents verbatim.
type File struct {
	Path string
}

func (f File) Read() (any, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	return strings.TrimRight(string(data), " \t\r\n"), nil
}

func (f File) Write(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("%s: cannot write %T as file contents", f.Path, v)
	}
	return os.WriteFile(f.Path, []byte(s), 0644)
}
