// Package render serializes the documented-unit tree into the markdown
// document set. Rendering is referentially transparent: the same module
// sequence always produces byte-identical documents, which keeps
// regeneration diffs empty when sources have not changed.
package render

import (
	"fmt"
	"sort"
	"strings"

	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
	"git.home.luguber.info/inful/apiref/internal/frontmatter"
	"git.home.luguber.info/inful/apiref/internal/model"
)

// DefaultCategory is the sentinel category for printables that declare none.
// It participates in ordinary alphabetical category ordering.
const DefaultCategory = "utils"

// maxNamespaceNesting is the deepest namespace nesting the renderer accepts:
// a top-level namespace plus two recursive steps. Deeper trees are a
// documentation structure error and fail the run rather than flattening.
const maxNamespaceNesting = 2

// reservedTitles are identifiers the documentation-site templating claims for
// itself; colliding unit names get a disambiguating suffix in headings.
var reservedTitles = map[string]struct{}{
	"index":     {},
	"title":     {},
	"nav_order": {},
	"layout":    {},
}

// Renderer turns modules into documents. It holds no mutable state.
type Renderer struct{}

// NewRenderer constructs a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderModule produces the full document for one module. navOrder is the
// 1-based position of the module in the canonically sorted module sequence.
func (r *Renderer) RenderModule(m model.Module, navOrder int) (string, error) {
	body, err := r.renderBody(m)
	if err != nil {
		return "", aerrors.RenderFailed(err, strings.Join(m.Path, "/"))
	}

	var b strings.Builder
	writeOverview(&b, m)
	b.WriteString("---\n\n")
	b.WriteString(tableOfContents(body))
	b.WriteString("\n---\n\n")
	b.WriteString(body)

	doc, err := frontmatter.Compose(map[string]any{
		"title":     ModuleTitle(m),
		"nav_order": navOrder,
		"parent":    "Modules",
	}, b.String())
	if err != nil {
		return "", aerrors.RenderFailed(err, strings.Join(m.Path, "/"))
	}
	return Normalize(doc), nil
}

// ModuleTitle is the module's output title: the path relative to its leading
// source directory segment.
func ModuleTitle(m model.Module) string {
	if len(m.Path) > 1 {
		return strings.Join(m.Path[1:], "/")
	}
	return strings.Join(m.Path, "/")
}

// writeOverview renders the module's own description and examples.
func writeOverview(b *strings.Builder, m model.Module) {
	fmt.Fprintf(b, "## %s overview\n\n", ModuleTitle(m))
	b.WriteString(m.Description)
	b.WriteString("\n\n")
	for _, example := range m.Examples {
		b.WriteString("**Example**\n\n")
		writeFence(b, example)
	}
	if m.Since != "" {
		fmt.Fprintf(b, "Added in v%s\n\n", m.Since)
	}
}

// renderBody groups the module's printables by category and renders each
// group, categories and names both in plain string order.
func (r *Renderer) renderBody(m model.Module) (string, error) {
	groups := map[string][]model.Printable{}
	for _, p := range m.Printables() {
		category := p.Doc().Category
		if category == "" {
			category = DefaultCategory
		}
		groups[category] = append(groups[category], p)
	}

	categories := make([]string, 0, len(groups))
	for c := range groups {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	var b strings.Builder
	for _, category := range categories {
		printables := groups[category]
		// Stable: printables with equal names keep declaration order.
		sort.SliceStable(printables, func(i, j int) bool {
			return printables[i].Doc().Name < printables[j].Doc().Name
		})

		fmt.Fprintf(&b, "# %s\n\n", category)
		for _, p := range printables {
			if err := writePrintable(&b, p); err != nil {
				return "", err
			}
		}
	}
	return b.String(), nil
}

// writePrintable dispatches over the closed printable union. The default
// branch reports the unknown variant: a new kind must be handled here, never
// silently skipped.
func writePrintable(b *strings.Builder, p model.Printable) error {
	switch v := p.(type) {
	case model.Class:
		writeSection(b, 2, v.Documentable, "class", []string{v.Signature})
		for _, sm := range v.StaticMethods {
			writeSection(b, 3, sm.Documentable, "static method", sm.Signatures)
		}
		for _, m := range v.Methods {
			writeSection(b, 3, m.Documentable, "method", m.Signatures)
		}
		for _, prop := range v.Properties {
			writeSection(b, 3, prop.Documentable, "property", []string{prop.Signature})
		}
		return nil
	case model.Constant:
		writeSection(b, 2, v.Documentable, "constant", []string{v.Signature})
		return nil
	case model.Export:
		writeSection(b, 2, v.Documentable, "export", []string{v.Signature})
		return nil
	case model.Function:
		writeSection(b, 2, v.Documentable, "function", v.Signatures)
		return nil
	case model.Interface:
		writeSection(b, 2, v.Documentable, "interface", []string{v.Signature})
		return nil
	case model.TypeAlias:
		writeSection(b, 2, v.Documentable, "type alias", []string{v.Signature})
		return nil
	case model.Namespace:
		return writeNamespace(b, v, 0)
	default:
		return fmt.Errorf("unhandled printable kind %q", p.PrintableKind())
	}
}

// writeNamespace renders a namespace and recurses into its children.
// nesting is explicit so the depth guard is a tested invariant rather than a
// side effect of stack growth. Heading depth grows by one per level.
func writeNamespace(b *strings.Builder, ns model.Namespace, nesting int) error {
	if nesting > maxNamespaceNesting {
		return fmt.Errorf("namespace %q nested deeper than %d levels", ns.Name, maxNamespaceNesting+1)
	}

	level := 2 + nesting
	writeSection(b, level, ns.Documentable, "namespace", nil)
	for _, i := range ns.Interfaces {
		writeSection(b, level+1, i.Documentable, "interface", []string{i.Signature})
	}
	for _, t := range ns.TypeAliases {
		writeSection(b, level+1, t.Documentable, "type alias", []string{t.Signature})
	}
	for _, child := range ns.Namespaces {
		if err := writeNamespace(b, child, nesting+1); err != nil {
			return err
		}
	}
	return nil
}

// writeSection renders one documented unit: heading, description paragraph,
// signature block, example blocks, since footer. A missing description still
// produces its paragraph slot so heading anchors stay put across
// regenerations.
func writeSection(b *strings.Builder, level int, doc model.Documentable, kindTag string, signatures []string) {
	title := doc.Name
	if _, reserved := reservedTitles[title]; reserved {
		title += "_"
	}
	if doc.Deprecated {
		title = "~~" + title + "~~"
	}
	fmt.Fprintf(b, "%s %s (%s)\n\n", strings.Repeat("#", level), title, kindTag)

	b.WriteString(doc.Description)
	b.WriteString("\n\n")

	if len(signatures) > 0 {
		b.WriteString("**Signature**\n\n")
		writeFence(b, strings.Join(signatures, "\n"))
	}
	for _, example := range doc.Examples {
		b.WriteString("**Example**\n\n")
		writeFence(b, example)
	}
	if doc.Since != "" {
		fmt.Fprintf(b, "Added in v%s\n\n", doc.Since)
	}
}

func writeFence(b *strings.Builder, code string) {
	b.WriteString("```ts\n")
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n\n")
}
