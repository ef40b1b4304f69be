package ast

import "strings"

// TypeRef is a field or argument type reference: NamedType, ListType or NonNullType
type TypeRef interface {
	Node
	String() string
	typeRef()
}

// NamedType references a type by name
type NamedType struct {
	Name *Name
	Loc  SourceSpan
}

func (t *NamedType) node()    {}
func (t *NamedType) typeRef() {}

// Location returns the source location of the type name.
func (t *NamedType) Location() SourceSpan { return t.Loc }

func (t *NamedType) String() string { return t.Name.Value }

// ListType wraps an element type: [T]
type ListType struct {
	Type TypeRef
	Loc  SourceSpan
}

func (t *ListType) node()    {}
func (t *ListType) typeRef() {}

// Location returns the source location of the opening bracket.
func (t *ListType) Location() SourceSpan { return t.Loc }

func (t *ListType) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(t.Type.String())
	b.WriteString("]")
	return b.String()
}

// NonNullType marks the wrapped type as required: T!
type NonNullType struct {
	Type TypeRef
	Loc  SourceSpan
}

func (t *NonNullType) node()    {}
func (t *NonNullType) typeRef() {}

// Location returns the source location of the wrapped type.
func (t *NonNullType) Location() SourceSpan { return t.Loc }

func (t *NonNullType) String() string { return t.Type.String() + "!" }

// Unwrap strips list and non-null wrappers and returns the named type
// underneath, or nil for an unknown node.
func Unwrap(ref TypeRef) *NamedType {
	for {
		switch t := ref.(type) {
		case *NamedType:
			return t
		case *ListType:
			ref = t.Type
		case *NonNullType:
			ref = t.Type
		default:
			return nil
		}
	}
}
