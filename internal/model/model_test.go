package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewModule_KeepsDeclarationOrder(t *testing.T) {
	doc := NewDocumentable("index.ts", "", "", false, nil, "")
	fns := []Function{
		NewFunction(NewDocumentable("zeta", "", "", false, nil, ""), []string{"declare function zeta(): void"}),
		NewFunction(NewDocumentable("alpha", "", "", false, nil, ""), []string{"declare function alpha(): void"}),
	}
	m := NewModule(doc, []string{"src", "index.ts"}, nil, nil, fns, nil, nil, nil, nil)

	require.Equal(t, "zeta", m.Functions[0].Name)
	require.Equal(t, "alpha", m.Functions[1].Name)
}

func TestNewDocumentable_PreservesExampleOrder(t *testing.T) {
	examples := []string{"first()", "second()", "third()"}
	doc := NewDocumentable("foo", "desc", "1.0.0", false, examples, "utils")

	require.Equal(t, examples, doc.Examples)
}

func TestPrintables_CollectsEveryTopLevelKind(t *testing.T) {
	doc := func(name string) Documentable { return NewDocumentable(name, "", "", false, nil, "") }
	m := NewModule(doc("index.ts"), []string{"src", "index.ts"},
		[]Class{NewClass(doc("C"), "declare class C", nil, nil, nil)},
		[]Interface{NewInterface(doc("I"), "interface I {}")},
		[]Function{NewFunction(doc("f"), []string{"declare function f(): void"})},
		[]TypeAlias{NewTypeAlias(doc("T"), "type T = string")},
		[]Constant{NewConstant(doc("k"), "declare const k: number")},
		[]Export{NewExport(doc("e"), "export { e }")},
		[]Namespace{NewNamespace(doc("ns"), nil, nil, nil)},
	)

	ps := m.Printables()
	require.Len(t, ps, 7)

	kinds := make(map[Kind]int)
	for _, p := range ps {
		kinds[p.PrintableKind()]++
	}
	require.Equal(t, map[Kind]int{
		KindClass:     1,
		KindConstant:  1,
		KindExport:    1,
		KindFunction:  1,
		KindInterface: 1,
		KindTypeAlias: 1,
		KindNamespace: 1,
	}, kinds)
}

func TestPrintableDoc_ExposesSharedAttributes(t *testing.T) {
	c := NewClass(NewDocumentable("Widget", "a widget", "2.0.0", true, []string{"new Widget()"}, "constructors"), "declare class Widget", nil, nil, nil)

	var p Printable = c
	require.Equal(t, "Widget", p.Doc().Name)
	require.Equal(t, "constructors", p.Doc().Category)
	require.True(t, p.Doc().Deprecated)
}
