// Package manifest is the parser collaborator of the pipeline: it decodes
// API-surface manifests (YAML emitted by an upstream extractor, one per
// source file) into the documented-unit tree. Parse failures are collected
// per file and surfaced as a single aggregated parse error.
package manifest

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
	"git.home.luguber.info/inful/apiref/internal/fsio"
	"git.home.luguber.info/inful/apiref/internal/model"
)

// Parser turns a sequence of source files into modules. Implementations
// return either the full module sequence or an error covering every failing
// file; there is no partial success.
type Parser interface {
	Parse(files []fsio.File) ([]model.Module, error)
}

// YAMLParser decodes API-surface manifests.
type YAMLParser struct{}

var _ Parser = YAMLParser{}

// NewYAMLParser constructs a YAMLParser.
func NewYAMLParser() YAMLParser { return YAMLParser{} }

// Parse decodes every file, in input order. When any file fails, the
// per-file messages are aggregated into one parse error and no modules are
// returned.
func (YAMLParser) Parse(files []fsio.File) ([]model.Module, error) {
	modules := make([]model.Module, 0, len(files))
	var failures [][]string

	for _, f := range files {
		m, errs := decodeModule(f)
		if len(errs) > 0 {
			group := make([]string, len(errs))
			for i, e := range errs {
				group[i] = fmt.Sprintf("%s: %s", f.Path, e)
			}
			failures = append(failures, group)
			continue
		}
		modules = append(modules, m)
	}

	if len(failures) > 0 {
		return nil, aerrors.ParseFailed(failures)
	}
	return modules, nil
}

// Wire representation of a manifest. Field names follow the extractor's
// output format.
type moduleDoc struct {
	docFields   `yaml:",inline"`
	Path        []string       `yaml:"path"`
	Classes     []classDoc     `yaml:"classes"`
	Interfaces  []signatureDoc `yaml:"interfaces"`
	Functions   []overloadDoc  `yaml:"functions"`
	TypeAliases []signatureDoc `yaml:"typeAliases"`
	Constants   []signatureDoc `yaml:"constants"`
	Exports     []signatureDoc `yaml:"exports"`
	Namespaces  []namespaceDoc `yaml:"namespaces"`
}

type docFields struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Since       string   `yaml:"since"`
	Deprecated  bool     `yaml:"deprecated"`
	Examples    []string `yaml:"examples"`
	Category    string   `yaml:"category"`
}

type classDoc struct {
	docFields     `yaml:",inline"`
	Signature     string         `yaml:"signature"`
	StaticMethods []overloadDoc  `yaml:"staticMethods"`
	Methods       []overloadDoc  `yaml:"methods"`
	Properties    []signatureDoc `yaml:"properties"`
}

type signatureDoc struct {
	docFields `yaml:",inline"`
	Signature string `yaml:"signature"`
}

type overloadDoc struct {
	docFields  `yaml:",inline"`
	Signatures []string `yaml:"signatures"`
}

type namespaceDoc struct {
	docFields   `yaml:",inline"`
	Interfaces  []signatureDoc `yaml:"interfaces"`
	TypeAliases []signatureDoc `yaml:"typeAliases"`
	Namespaces  []namespaceDoc `yaml:"namespaces"`
}

func (d docFields) toModel() model.Documentable {
	return model.NewDocumentable(d.Name, d.Description, d.Since, d.Deprecated, d.Examples, d.Category)
}

func decodeModule(f fsio.File) (model.Module, []string) {
	var doc moduleDoc
	if err := yaml.Unmarshal([]byte(f.Content), &doc); err != nil {
		return model.Module{}, []string{err.Error()}
	}

	var errs []string
	if doc.Name == "" {
		errs = append(errs, "manifest is missing a module name")
	}
	path := doc.Path
	if len(path) == 0 {
		path = strings.Split(strings.TrimPrefix(f.Path, "./"), "/")
	}

	classes := make([]model.Class, 0, len(doc.Classes))
	for _, c := range doc.Classes {
		if c.Name == "" {
			errs = append(errs, "class without a name")
			continue
		}
		classes = append(classes, model.NewClass(c.toModel(), c.Signature,
			toMethods(c.StaticMethods), toMethods(c.Methods), toProperties(c.Properties)))
	}

	functions := make([]model.Function, 0, len(doc.Functions))
	for _, fn := range doc.Functions {
		if fn.Name == "" {
			errs = append(errs, "function without a name")
			continue
		}
		functions = append(functions, model.NewFunction(fn.toModel(), fn.Signatures))
	}

	namespaces := make([]model.Namespace, 0, len(doc.Namespaces))
	for _, ns := range doc.Namespaces {
		namespaces = append(namespaces, toNamespace(ns))
	}

	if len(errs) > 0 {
		return model.Module{}, errs
	}

	return model.NewModule(doc.toModel(), path,
		classes,
		toInterfaces(doc.Interfaces),
		functions,
		toTypeAliases(doc.TypeAliases),
		toConstants(doc.Constants),
		toExports(doc.Exports),
		namespaces,
	), nil
}

func toMethods(docs []overloadDoc) []model.Method {
	out := make([]model.Method, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.NewMethod(d.toModel(), d.Signatures))
	}
	return out
}

func toProperties(docs []signatureDoc) []model.Property {
	out := make([]model.Property, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.NewProperty(d.toModel(), d.Signature))
	}
	return out
}

func toInterfaces(docs []signatureDoc) []model.Interface {
	out := make([]model.Interface, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.NewInterface(d.toModel(), d.Signature))
	}
	return out
}

func toTypeAliases(docs []signatureDoc) []model.TypeAlias {
	out := make([]model.TypeAlias, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.NewTypeAlias(d.toModel(), d.Signature))
	}
	return out
}

func toConstants(docs []signatureDoc) []model.Constant {
	out := make([]model.Constant, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.NewConstant(d.toModel(), d.Signature))
	}
	return out
}

func toExports(docs []signatureDoc) []model.Export {
	out := make([]model.Export, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.NewExport(d.toModel(), d.Signature))
	}
	return out
}

func toNamespace(d namespaceDoc) model.Namespace {
	children := make([]model.Namespace, 0, len(d.Namespaces))
	for _, c := range d.Namespaces {
		children = append(children, toNamespace(c))
	}
	return model.NewNamespace(d.toModel(), toInterfaces(d.Interfaces), toTypeAliases(d.TypeAliases), children)
}
