// Package contenttype compiles classified schema declarations into content
// type, field and validation inputs.
package contenttype

import (
	"fmt"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
	"github.com/mozaik-cms/mozaik/internal/compiler/extract"
	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
	"github.com/mozaik-cms/mozaik/internal/compiler/resolver"
)

// Compile compiles one classified declaration
func Compile(decl extract.Declaration) (ir.ContentTypeInput, error) {
	switch def := decl.Definition.(type) {
	case *ast.ObjectTypeDefinition:
		return CompileObject(def, decl.Category)
	case *ast.EnumTypeDefinition:
		return CompileEnum(def)
	default:
		return ir.ContentTypeInput{}, cerrors.NewUnknownTypeKind(decl.Definition.Location(), fmt.Sprintf("%T", def))
	}
}

// CompileObject compiles an object type. Compilation stops at the first
// failing field.
func CompileObject(def *ast.ObjectTypeDefinition, category ir.Category) (ir.ContentTypeInput, error) {
	label, err := configLabel(def.Directives, def.Name.Value)
	if err != nil {
		return ir.ContentTypeInput{}, err
	}

	input := ir.ContentTypeInput{
		APIID:         def.Name.Value,
		Name:          label,
		Description:   Description(def.Description),
		IsLandingPage: category == ir.CategorySingleton,
		IsBlockGroup:  category == ir.CategoryEmbeddable,
		Fields:        make([]ir.FieldInput, 0, len(def.Fields)),
	}

	for _, f := range def.Fields {
		field, err := CompileField(f)
		if err != nil {
			return ir.ContentTypeInput{}, err
		}
		input.Fields = append(input.Fields, field)
	}
	return input, nil
}

// CompileEnum compiles an enum into a hashmap content type. Each member
// becomes a key whose value is its non-empty @config label, or the key itself.
func CompileEnum(def *ast.EnumTypeDefinition) (ir.ContentTypeInput, error) {
	label, err := configLabel(def.Directives, def.Name.Value)
	if err != nil {
		return ir.ContentTypeInput{}, err
	}

	input := ir.ContentTypeInput{
		APIID:       def.Name.Value,
		Name:        label,
		Description: Description(def.Description),
		IsHashmap:   true,
		Fields:      []ir.FieldInput{},
		EnumValues:  make([]ir.EnumValue, 0, len(def.Values)),
	}

	for _, v := range def.Values {
		value, ok, err := resolver.ResolveDirectiveArgument(v.Directives, "config", "label", resolver.StringArg, nil)
		if err != nil {
			return ir.ContentTypeInput{}, err
		}
		if !ok || value == "" {
			value = v.Name.Value
		}
		input.EnumValues = append(input.EnumValues, ir.EnumValue{Key: v.Name.Value, Value: value})
	}
	return input, nil
}

// CompileSchema compiles every content type of an extracted schema, in
// declaration order. Fields may only reference types that are themselves
// content types. Each failing declaration contributes only its first error
// in source order; the other declarations are still compiled.
func CompileSchema(result *extract.Result) ([]ir.ContentTypeInput, error) {
	var errs cerrors.ErrorList
	contentTypes := result.Names()
	inputs := make([]ir.ContentTypeInput, 0, len(contentTypes))

	for _, decl := range result.Declarations() {
		var failed cerrors.ErrorList
		if obj, ok := decl.Definition.(*ast.ObjectTypeDefinition); ok {
			failed = checkReferences(obj, contentTypes)
		}

		input, err := Compile(decl)
		if err != nil {
			failed = appendError(failed, err)
		}
		if len(failed) > 0 {
			errs = append(errs, first(failed))
			continue
		}
		inputs = append(inputs, input)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return inputs, nil
}

// first returns the error located earliest in the source
func first(errs cerrors.ErrorList) *cerrors.CompilerError {
	earliest := errs[0]
	for _, e := range errs[1:] {
		if e.Location.Before(earliest.Location) {
			earliest = e
		}
	}
	return earliest
}

// checkReferences reports fields whose type is neither a scalar nor a content type
func checkReferences(obj *ast.ObjectTypeDefinition, contentTypes map[string]ir.Category) cerrors.ErrorList {
	var errs cerrors.ErrorList
	for _, f := range obj.Fields {
		named := ast.Unwrap(f.Type)
		if named == nil {
			continue
		}
		if _, scalar := ir.BackendType(named.Name.Value); scalar {
			continue
		}
		if _, ok := contentTypes[named.Name.Value]; !ok {
			errs = append(errs, cerrors.NewUnknownContentType(named.Loc, f.Name.Value, named.Name.Value))
		}
	}
	return errs
}

// appendError flattens err into the list
func appendError(errs cerrors.ErrorList, err error) cerrors.ErrorList {
	if list := cerrors.Collect(err); len(list) > 0 {
		return append(errs, list...)
	}
	return append(errs, cerrors.NewSemanticValidation(ast.SourceSpan{}, err.Error()))
}
