package resolver

import (
	"fmt"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
)

// FieldType is a normalised field type reference
type FieldType struct {
	BaseType   string
	IsList     bool
	IsRequired bool
}

// ResolveFieldType flattens a type reference. Lists may not contain lists,
// also through a non-null wrapper. Only an outer ! makes the field required.
func ResolveFieldType(ref ast.TypeRef) (FieldType, error) {
	return resolveFieldType(ref, true)
}

func resolveFieldType(ref ast.TypeRef, allowList bool) (FieldType, error) {
	switch t := ref.(type) {
	case *ast.NamedType:
		return FieldType{BaseType: t.Name.Value}, nil
	case *ast.ListType:
		if !allowList {
			return FieldType{}, cerrors.NewNestedList(t.Loc)
		}
		inner, err := resolveFieldType(t.Type, false)
		if err != nil {
			return FieldType{}, err
		}
		// [String!] is a list of required items, not a required field
		return FieldType{BaseType: inner.BaseType, IsList: true}, nil
	case *ast.NonNullType:
		inner, err := resolveFieldType(t.Type, allowList)
		if err != nil {
			return FieldType{}, err
		}
		inner.IsRequired = true
		return inner, nil
	default:
		loc := ast.SourceSpan{}
		if ref != nil {
			loc = ref.Location()
		}
		return FieldType{}, cerrors.NewUnknownTypeKind(loc, fmt.Sprintf("%T", ref))
	}
}
