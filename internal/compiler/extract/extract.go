// Package extract parses a user schema against the base schema and sorts
// its declarations into content type categories.
package extract

import (
	"fmt"
	"sort"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
	"github.com/mozaik-cms/mozaik/internal/compiler/parser"
)

// contentInterfaces are the interfaces an object type can implement to
// become a content type, with the category each one selects
var contentInterfaces = []struct {
	name     string
	category ir.Category
}{
	{string(ir.CategorySimple), ir.CategorySimple},
	{string(ir.CategorySingleton), ir.CategorySingleton},
	{string(ir.CategoryEmbeddable), ir.CategoryEmbeddable},
}

// Result is the classified schema
type Result struct {
	// Document holds the base definitions followed by the user's
	Document *ast.Document

	Simple     []*ast.ObjectTypeDefinition
	Singleton  []*ast.ObjectTypeDefinition
	Embeddable []*ast.ObjectTypeDefinition
	Hashmap    []*ast.EnumTypeDefinition

	// Ignored are user object types implementing no content interface
	Ignored []*ast.ObjectTypeDefinition
}

// Declaration is one classified type declaration
type Declaration struct {
	Category   ir.Category
	Definition ast.Definition
}

// Declarations returns every content type declaration, simple types first,
// then singletons, embeddables and hashmaps, each in source order.
func (r *Result) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(r.Simple)+len(r.Singleton)+len(r.Embeddable)+len(r.Hashmap))
	for _, d := range r.Simple {
		decls = append(decls, Declaration{Category: ir.CategorySimple, Definition: d})
	}
	for _, d := range r.Singleton {
		decls = append(decls, Declaration{Category: ir.CategorySingleton, Definition: d})
	}
	for _, d := range r.Embeddable {
		decls = append(decls, Declaration{Category: ir.CategoryEmbeddable, Definition: d})
	}
	for _, d := range r.Hashmap {
		decls = append(decls, Declaration{Category: ir.CategoryHashmap, Definition: d})
	}
	return decls
}

// Names returns the names of all content type declarations
func (r *Result) Names() map[string]ir.Category {
	names := make(map[string]ir.Category)
	for _, d := range r.Declarations() {
		names[d.Definition.DefinitionName()] = d.Category
	}
	return names
}

// Extract parses sdl and classifies its declarations. Syntax errors and
// schema errors are returned as an errors.ErrorList.
func Extract(sdl string) (*Result, error) {
	base, errs := parser.ParseDocument(BaseSchema)
	if len(errs) > 0 {
		return nil, fmt.Errorf("base schema: %w", errs)
	}

	user, errs := parser.ParseDocument(sdl)
	if len(errs) > 0 {
		return nil, errs
	}

	doc := ast.Merge(base, user)
	if errs := checkDocument(doc); len(errs) > 0 {
		return nil, errs
	}

	result := &Result{Document: doc}
	if errs := classify(user, result); len(errs) > 0 {
		return nil, errs
	}
	return result, nil
}

// checkDocument reports duplicate type names and references to undefined types
func checkDocument(doc *ast.Document) cerrors.ErrorList {
	errs := make(cerrors.ErrorList, 0)

	defined := make(map[string]ast.SourceSpan)
	for _, name := range builtinScalars {
		defined[name] = ast.SourceSpan{}
	}
	directives := make(map[string]ast.SourceSpan)

	for _, def := range doc.Definitions {
		seen := defined
		if _, ok := def.(*ast.DirectiveDefinition); ok {
			seen = directives
		}
		name := def.DefinitionName()
		if first, ok := seen[name]; ok {
			errs = append(errs, cerrors.NewDuplicateType(def.Location(), name, first))
			continue
		}
		seen[name] = def.Location()
	}

	candidates := make([]string, 0, len(defined))
	for name := range defined {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	for _, ref := range typeReferences(doc) {
		if _, ok := defined[ref.Name.Value]; !ok {
			similar := cerrors.FindSimilar(ref.Name.Value, candidates)
			errs = append(errs, cerrors.NewUndefinedType(ref.Loc, ref.Name.Value, similar))
		}
	}

	return errs
}

// typeReferences collects every named type used by the document, in source order
func typeReferences(doc *ast.Document) []*ast.NamedType {
	refs := make([]*ast.NamedType, 0)
	addInputs := func(values []*ast.InputValueDefinition) {
		for _, v := range values {
			refs = append(refs, ast.Unwrap(v.Type))
		}
	}

	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.ObjectTypeDefinition:
			refs = append(refs, d.Interfaces...)
			for _, f := range d.Fields {
				addInputs(f.Arguments)
				refs = append(refs, ast.Unwrap(f.Type))
			}
		case *ast.InterfaceTypeDefinition:
			refs = append(refs, d.Interfaces...)
			for _, f := range d.Fields {
				addInputs(f.Arguments)
				refs = append(refs, ast.Unwrap(f.Type))
			}
		case *ast.UnionTypeDefinition:
			refs = append(refs, d.Types...)
		case *ast.InputObjectTypeDefinition:
			addInputs(d.Fields)
		case *ast.DirectiveDefinition:
			addInputs(d.Arguments)
		}
	}

	filtered := refs[:0]
	for _, r := range refs {
		if r != nil {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// classify sorts the user's object and enum types into categories
func classify(user *ast.Document, result *Result) cerrors.ErrorList {
	errs := make(cerrors.ErrorList, 0)

	for _, def := range user.Definitions {
		switch d := def.(type) {
		case *ast.EnumTypeDefinition:
			result.Hashmap = append(result.Hashmap, d)
		case *ast.ObjectTypeDefinition:
			matched := make([]string, 0, 1)
			var category ir.Category
			for _, iface := range contentInterfaces {
				if d.Implements(iface.name) {
					matched = append(matched, iface.name)
					category = iface.category
				}
			}

			switch len(matched) {
			case 0:
				result.Ignored = append(result.Ignored, d)
			case 1:
				switch category {
				case ir.CategorySimple:
					result.Simple = append(result.Simple, d)
				case ir.CategorySingleton:
					result.Singleton = append(result.Singleton, d)
				case ir.CategoryEmbeddable:
					result.Embeddable = append(result.Embeddable, d)
				}
			default:
				errs = append(errs, cerrors.NewAmbiguousContentType(d.Name.Loc, d.Name.Value, matched))
			}
		}
	}

	return errs
}
