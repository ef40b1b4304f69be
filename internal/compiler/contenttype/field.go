package contenttype

import (
	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
	"github.com/mozaik-cms/mozaik/internal/compiler/resolver"
)

// CompileField compiles one field definition
func CompileField(field *ast.FieldDefinition) (ir.FieldInput, error) {
	name := field.Name.Value
	if ir.IsReservedFieldName(name) {
		return ir.FieldInput{}, cerrors.NewReservedFieldName(field.Name.Loc, name)
	}

	label, err := configLabel(field.Directives, name)
	if err != nil {
		return ir.FieldInput{}, err
	}

	fieldType, err := resolver.ResolveFieldType(field.Type)
	if err != nil {
		return ir.FieldInput{}, err
	}
	backendType, _ := ir.BackendType(fieldType.BaseType)

	input := ir.FieldInput{
		APIID:             name,
		Label:             label,
		Description:       Description(field.Description),
		Type:              backendType,
		HasMultipleValues: fieldType.IsList,
	}

	groupName, _, err := resolver.ResolveDirectiveArgument(field.Directives, "config", "groupName", resolver.StringArg, resolver.NonEmpty)
	if err != nil {
		return ir.FieldInput{}, err
	}
	input.GroupName = groupName

	isTitle, _, err := resolver.ResolveDirectiveArgument(field.Directives, "config", "isTitle", resolver.BooleanArg, nil)
	if err != nil {
		return ir.FieldInput{}, err
	}
	if isTitle && (fieldType.IsList || !ir.IsSinglelineText(fieldType.BaseType)) {
		arg := resolver.DirectiveArgument(field.Directives, "config", "isTitle")
		return ir.FieldInput{}, cerrors.NewIllegalTitleType(arg.Value.Location(), name, field.Type.String())
	}
	input.IncludeInDisplayName = isTitle

	input.IsDeprecated = resolver.HasDirective(field.Directives, "deprecated")

	validations, err := CompileValidations(field, fieldType)
	if err != nil {
		return ir.FieldInput{}, err
	}
	input.Validations = validations

	return input, nil
}

// configLabel returns @config(label:) when set, otherwise a generated label
func configLabel(directives []*ast.Directive, name string) (string, error) {
	label, ok, err := resolver.ResolveDirectiveArgument(directives, "config", "label", resolver.StringArg, resolver.NonEmpty)
	if err != nil {
		return "", err
	}
	if ok {
		return label, nil
	}
	return GenerateLabel(name), nil
}
