// Package examples implements example verification: every code example
// embedded in the documented-unit tree is extracted into a standalone
// candidate file, rewritten to import the local source tree, materialized
// into a transient project and handed to the external type checker. The
// transient directory is removed again no matter how the run ends.
package examples

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/apiref/internal/model"
)

// Candidate is one materialized example: a deterministic file name plus the
// (possibly rewritten) source text.
type Candidate struct {
	Name   string
	Source string
}

// Extract walks every module and emits one candidate per example string.
// Names combine module prefix, a role tag, the unit name and the example
// index. Sanitization maps several runes to the same dash, so units whose
// names differ only in such runes can still collide; a trailing counter
// keeps the final set of file names unique.
func Extract(modules []model.Module) []Candidate {
	var out []Candidate
	for _, m := range modules {
		prefix := modulePrefix(m.Path)

		out = appendExamples(out, prefix, "module", m.Name, m.Examples)

		for _, c := range m.Classes {
			out = appendExamples(out, prefix, "class", c.Name, c.Examples)
			for _, sm := range c.StaticMethods {
				out = appendExamples(out, prefix, "class-"+c.Name+"-staticmethod", sm.Name, sm.Examples)
			}
			for _, me := range c.Methods {
				out = appendExamples(out, prefix, "class-"+c.Name+"-method", me.Name, me.Examples)
			}
			for _, p := range c.Properties {
				out = appendExamples(out, prefix, "class-"+c.Name+"-property", p.Name, p.Examples)
			}
		}
		for _, i := range m.Interfaces {
			out = appendExamples(out, prefix, "interface", i.Name, i.Examples)
		}
		for _, f := range m.Functions {
			out = appendExamples(out, prefix, "function", f.Name, f.Examples)
		}
		for _, t := range m.TypeAliases {
			out = appendExamples(out, prefix, "typealias", t.Name, t.Examples)
		}
		for _, c := range m.Constants {
			out = appendExamples(out, prefix, "constant", c.Name, c.Examples)
		}
		for _, e := range m.Exports {
			out = appendExamples(out, prefix, "export", e.Name, e.Examples)
		}
		for _, ns := range m.Namespaces {
			out = extractNamespace(out, prefix, "", ns)
		}
	}
	return disambiguate(out)
}

// disambiguate appends a counter to any candidate whose sanitized name
// already occurred, so two distinct units never share one file.
func disambiguate(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	for i := range candidates {
		name := candidates[i].Name
		base := strings.TrimSuffix(name, ".ts")
		for n := 2; seen[name]; n++ {
			name = fmt.Sprintf("%s-x%d.ts", base, n)
		}
		seen[name] = true
		candidates[i].Name = name
	}
	return candidates
}

// extractNamespace recurses through nested namespaces, qualifying unit names
// with the dotted namespace path so nesting levels cannot collide.
func extractNamespace(out []Candidate, prefix, parent string, ns model.Namespace) []Candidate {
	qualified := ns.Name
	if parent != "" {
		qualified = parent + "." + ns.Name
	}

	out = appendExamples(out, prefix, "namespace", qualified, ns.Examples)
	for _, i := range ns.Interfaces {
		out = appendExamples(out, prefix, "namespace-"+qualified+"-interface", i.Name, i.Examples)
	}
	for _, t := range ns.TypeAliases {
		out = appendExamples(out, prefix, "namespace-"+qualified+"-typealias", t.Name, t.Examples)
	}
	for _, child := range ns.Namespaces {
		out = extractNamespace(out, prefix, qualified, child)
	}
	return out
}

func appendExamples(out []Candidate, prefix, role, name string, examples []string) []Candidate {
	for i, source := range examples {
		out = append(out, Candidate{
			Name:   fmt.Sprintf("%s-%s-%s-%d.ts", prefix, sanitize(role), sanitize(name), i),
			Source: source,
		})
	}
	return out
}

// modulePrefix joins path segments with dashes, dropping the source file
// extension of the final segment.
func modulePrefix(path []string) string {
	segments := make([]string, len(path))
	copy(segments, path)
	if n := len(segments); n > 0 {
		segments[n-1] = strings.TrimSuffix(segments[n-1], ".ts")
	}
	return sanitize(strings.Join(segments, "-"))
}

// sanitize keeps file names portable: anything outside [A-Za-z0-9_-] maps
// to a dash.
func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
