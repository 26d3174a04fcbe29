// Package model defines the documented-unit tree handed to apiref by the
// surface extractor: modules, classes, functions, interfaces, type aliases,
// constants, exports and namespaces, each carrying the shared Documentable
// attribute bundle.
//
// Values are immutable after construction. The parser collaborator builds the
// tree once; the renderer and the example verifier only read it.
package model

// Kind identifies the variant of a documented unit.
type Kind string

const (
	KindModule       Kind = "module"
	KindClass        Kind = "class"
	KindMethod       Kind = "method"
	KindStaticMethod Kind = "staticmethod"
	KindProperty     Kind = "property"
	KindConstant     Kind = "constant"
	KindInterface    Kind = "interface"
	KindTypeAlias    Kind = "typealias"
	KindExport       Kind = "export"
	KindFunction     Kind = "function"
	KindNamespace    Kind = "namespace"
)

// Documentable is the attribute bundle shared by every documented unit.
type Documentable struct {
	Name        string
	Description string // empty when the unit carries no description
	Since       string // version tag, empty when absent
	Deprecated  bool
	Examples    []string // declaration order; never re-sorted
	Category    string   // empty selects the default category at render time
}

// NewDocumentable constructs the shared attribute bundle.
func NewDocumentable(name, description, since string, deprecated bool, examples []string, category string) Documentable {
	return Documentable{
		Name:        name,
		Description: description,
		Since:       since,
		Deprecated:  deprecated,
		Examples:    examples,
		Category:    category,
	}
}

// Method is a class method (instance or static, distinguished by the slice it
// lives in on Class). Signatures holds the overload set in declaration order.
type Method struct {
	Documentable
	Signatures []string
}

// NewMethod constructs a Method.
func NewMethod(doc Documentable, signatures []string) Method {
	return Method{Documentable: doc, Signatures: signatures}
}

// Property is a class property.
type Property struct {
	Documentable
	Signature string
}

// NewProperty constructs a Property.
func NewProperty(doc Documentable, signature string) Property {
	return Property{Documentable: doc, Signature: signature}
}

// Class groups a class signature with its members. Member slices keep
// declaration order; the renderer never re-sorts them.
type Class struct {
	Documentable
	Signature     string
	StaticMethods []Method
	Methods       []Method
	Properties    []Property
}

// NewClass constructs a Class.
func NewClass(doc Documentable, signature string, staticMethods, methods []Method, properties []Property) Class {
	return Class{
		Documentable:  doc,
		Signature:     signature,
		StaticMethods: staticMethods,
		Methods:       methods,
		Properties:    properties,
	}
}

// Constant is a documented constant binding.
type Constant struct {
	Documentable
	Signature string
}

// NewConstant constructs a Constant.
func NewConstant(doc Documentable, signature string) Constant {
	return Constant{Documentable: doc, Signature: signature}
}

// Interface is a documented interface declaration.
type Interface struct {
	Documentable
	Signature string
}

// NewInterface constructs an Interface.
func NewInterface(doc Documentable, signature string) Interface {
	return Interface{Documentable: doc, Signature: signature}
}

// TypeAlias is a documented type alias declaration.
type TypeAlias struct {
	Documentable
	Signature string
}

// NewTypeAlias constructs a TypeAlias.
func NewTypeAlias(doc Documentable, signature string) TypeAlias {
	return TypeAlias{Documentable: doc, Signature: signature}
}

// Export is a documented re-export binding.
type Export struct {
	Documentable
	Signature string
}

// NewExport constructs an Export.
func NewExport(doc Documentable, signature string) Export {
	return Export{Documentable: doc, Signature: signature}
}

// Function is a documented free function. Signatures holds the overload set
// in declaration order.
type Function struct {
	Documentable
	Signatures []string
}

// NewFunction constructs a Function.
func NewFunction(doc Documentable, signatures []string) Function {
	return Function{Documentable: doc, Signatures: signatures}
}

// Namespace is a documented namespace. Namespaces nest to arbitrary depth and
// form a tree; the renderer enforces its own heading-depth limit.
type Namespace struct {
	Documentable
	Interfaces  []Interface
	TypeAliases []TypeAlias
	Namespaces  []Namespace
}

// NewNamespace constructs a Namespace.
func NewNamespace(doc Documentable, interfaces []Interface, typeAliases []TypeAlias, namespaces []Namespace) Namespace {
	return Namespace{
		Documentable: doc,
		Interfaces:   interfaces,
		TypeAliases:  typeAliases,
		Namespaces:   namespaces,
	}
}

// Module is the root documented unit for one source file. Path holds the
// file's path segments relative to the project root (e.g. ["src", "index.ts"]).
// A Module exclusively owns every unit reachable from it.
type Module struct {
	Documentable
	Path        []string
	Classes     []Class
	Interfaces  []Interface
	Functions   []Function
	TypeAliases []TypeAlias
	Constants   []Constant
	Exports     []Export
	Namespaces  []Namespace
}

// NewModule constructs a Module.
func NewModule(doc Documentable, path []string, classes []Class, interfaces []Interface, functions []Function, typeAliases []TypeAlias, constants []Constant, exports []Export, namespaces []Namespace) Module {
	return Module{
		Documentable: doc,
		Path:         path,
		Classes:      classes,
		Interfaces:   interfaces,
		Functions:    functions,
		TypeAliases:  typeAliases,
		Constants:    constants,
		Exports:      exports,
		Namespaces:   namespaces,
	}
}
