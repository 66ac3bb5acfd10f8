package js

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		var m *SOM

		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "parse":
				var err error
				m, err = Parse(d.Input)
				if err != nil {
					var pe *ParseError
					if errors.As(err, &pe) {
						return fmt.Sprintf("error at %d:%d", pe.Line, pe.Column)
					}
					return fmt.Sprintf("error: %s", err)
				}
				return formatTree(m.Structure().Root, "")
			case "findall":
				if m == nil {
					t.Fatalf("%s: parse must succeed first", d.Pos)
				}
				return formatMatches(m.FindAll(d.Input))
			case "find":
				if m == nil {
					t.Fatalf("%s: parse must succeed first", d.Pos)
				}
				e := m.Find(d.Input)
				if e.Empty() {
					return "(empty)"
				}
				return formatMatches([]*Entry{&e})
			case "value":
				if m == nil {
					t.Fatalf("%s: parse must succeed first", d.Pos)
				}
				return m.Value(m.Find(d.Input))
			default:
				t.Fatalf("unknown command: %s", d.Cmd)
				return ""
			}
		})
	})
}

// formatTree renders one entry per line, indented by depth
func formatTree(entries []*Entry, indent string) string {
	if len(entries) == 0 && indent == "" {
		return "(empty)"
	}
	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s%s @%s", indent, e.Key, e.Loc.Lines()))
		if len(e.Children) > 0 {
			lines = append(lines, formatTree(e.Children, indent+"  "))
		}
	}
	return strings.Join(lines, "\n")
}

func formatMatches(entries []*Entry) string {
	if len(entries) == 0 {
		return "(no matches)"
	}
	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s @%s", e.Key, e.Loc.Lines()))
	}
	return strings.Join(lines, "\n")
}
