// Package report renders the outcome of a knobctl operation for humans or
// machines. Every failing operation prints one labeled block with its
// itemized, path-qualified problems; JSON mode emits the same data
// structurally.
package report

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Report is the outcome of one operation over the configuration tree.
type Report struct {
	Operation string   `json:"operation"`
	OK        bool     `json:"ok"`
	Heading   string   `json:"-"`
	Items     []string `json:"items"`
}

// New builds a report; it is OK exactly when items is empty.
func New(operation, heading string, items []string) Report {
	if items == nil {
		items = []string{}
	}
	return Report{
		Operation: operation,
		OK:        len(items) == 0,
		Heading:   heading,
		Items:     items,
	}
}

// FormatCLI renders the failure block for terminal output. Successful
// reports render nothing; the caller prints its own success line.
func (r Report) FormatCLI() string {
	if r.OK {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d):\n", r.Heading, len(r.Items)))
	for _, item := range r.Items {
		sb.WriteString("  - ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatJSON renders the report as indented JSON.
func (r Report) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
