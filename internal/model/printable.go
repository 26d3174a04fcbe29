package model

// Printable is a top-level documented unit that produces its own rendered
// section within a module document. The union is closed: only the types in
// this package implement it, and renderers dispatch with a type switch whose
// default branch reports the unknown variant instead of skipping it.
type Printable interface {
	// Doc returns the shared attribute bundle.
	Doc() Documentable
	// PrintableKind returns the variant tag.
	PrintableKind() Kind

	printable() // seals the union
}

func (c Class) Doc() Documentable   { return c.Documentable }
func (c Class) PrintableKind() Kind { return KindClass }
func (Class) printable()            {}

func (c Constant) Doc() Documentable   { return c.Documentable }
func (c Constant) PrintableKind() Kind { return KindConstant }
func (Constant) printable()            {}

func (e Export) Doc() Documentable   { return e.Documentable }
func (e Export) PrintableKind() Kind { return KindExport }
func (Export) printable()            {}

func (f Function) Doc() Documentable   { return f.Documentable }
func (f Function) PrintableKind() Kind { return KindFunction }
func (Function) printable()            {}

func (i Interface) Doc() Documentable   { return i.Documentable }
func (i Interface) PrintableKind() Kind { return KindInterface }
func (Interface) printable()            {}

func (t TypeAlias) Doc() Documentable   { return t.Documentable }
func (t TypeAlias) PrintableKind() Kind { return KindTypeAlias }
func (TypeAlias) printable()            {}

func (n Namespace) Doc() Documentable   { return n.Documentable }
func (n Namespace) PrintableKind() Kind { return KindNamespace }
func (Namespace) printable()            {}

// Printables gathers every top-level unit of a module into one sequence,
// grouped by variant in a fixed declaration-kind order. Category grouping and
// name sorting happen later in the renderer.
func (m Module) Printables() []Printable {
	out := make([]Printable, 0,
		len(m.Classes)+len(m.Constants)+len(m.Exports)+len(m.Functions)+
			len(m.Interfaces)+len(m.TypeAliases)+len(m.Namespaces))
	for _, c := range m.Classes {
		out = append(out, c)
	}
	for _, c := range m.Constants {
		out = append(out, c)
	}
	for _, e := range m.Exports {
		out = append(out, e)
	}
	for _, f := range m.Functions {
		out = append(out, f)
	}
	for _, i := range m.Interfaces {
		out = append(out, i)
	}
	for _, t := range m.TypeAliases {
		out = append(out, t)
	}
	for _, n := range m.Namespaces {
		out = append(out, n)
	}
	return out
}
