// Package ast defines the Abstract Syntax Tree (AST) node types for the
// Mozaik schema definition language: GraphQL type-system definitions
// (scalars, objects, interfaces, unions, enums, inputs, directives) annotated
// with compiler directives such as @config and @validation.
//
// Every variant set (Definition, TypeRef, Value) is closed: the marker
// methods are unexported, so only this package can add node kinds.
package ast

import "github.com/mozaik-cms/mozaik/internal/compiler/lexer"

// SourceSpan tracks the position of an AST node in source code
type SourceSpan struct {
	Line   int `json:"line" yaml:"line"`     // Line number (1-indexed)
	Column int `json:"column" yaml:"column"` // Column number (1-indexed, in code points)
}

// Before reports whether s comes earlier in the source than other
func (s SourceSpan) Before(other SourceSpan) bool {
	if s.Line != other.Line {
		return s.Line < other.Line
	}
	return s.Column < other.Column
}

// TokenLocation returns the source span of a token
func TokenLocation(tok lexer.Token) SourceSpan {
	return SourceSpan{Line: tok.Line, Column: tok.Column}
}

// Node is the base interface for all AST nodes
type Node interface {
	Location() SourceSpan
	node()
}

// Document is the root node of the AST
type Document struct {
	Definitions []Definition
}

func (d *Document) node() {}

// Location returns the location of the first definition, or 1:1 for an empty document.
func (d *Document) Location() SourceSpan {
	if len(d.Definitions) > 0 {
		return d.Definitions[0].Location()
	}
	return SourceSpan{Line: 1, Column: 1}
}

// Merge returns a new document holding the definitions of all given documents in order.
func Merge(docs ...*Document) *Document {
	merged := &Document{Definitions: make([]Definition, 0)}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		merged.Definitions = append(merged.Definitions, doc.Definitions...)
	}
	return merged
}

// Name is an identifier with its location
type Name struct {
	Value string
	Loc   SourceSpan
}

func (n *Name) node() {}

// Location returns the source location of the name.
func (n *Name) Location() SourceSpan {
	return n.Loc
}

// Definition is a top-level type-system definition
type Definition interface {
	Node
	DefinitionName() string
	definition()
}

// ScalarTypeDefinition represents `scalar Name`
type ScalarTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Loc         SourceSpan
}

func (d *ScalarTypeDefinition) node()       {}
func (d *ScalarTypeDefinition) definition() {}

// Location returns the source location of the scalar definition.
func (d *ScalarTypeDefinition) Location() SourceSpan { return d.Loc }

// DefinitionName returns the declared scalar name.
func (d *ScalarTypeDefinition) DefinitionName() string { return d.Name.Value }

// ObjectTypeDefinition represents `type Name implements A & B @dir { fields }`
type ObjectTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
	Loc         SourceSpan
}

func (d *ObjectTypeDefinition) node()       {}
func (d *ObjectTypeDefinition) definition() {}

// Location returns the source location of the object definition.
func (d *ObjectTypeDefinition) Location() SourceSpan { return d.Loc }

// DefinitionName returns the declared type name.
func (d *ObjectTypeDefinition) DefinitionName() string { return d.Name.Value }

// Implements reports whether the object lists the named interface.
func (d *ObjectTypeDefinition) Implements(iface string) bool {
	for _, i := range d.Interfaces {
		if i.Name.Value == iface {
			return true
		}
	}
	return false
}

// InterfaceTypeDefinition represents `interface Name { fields }`
type InterfaceTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
	Loc         SourceSpan
}

func (d *InterfaceTypeDefinition) node()       {}
func (d *InterfaceTypeDefinition) definition() {}

// Location returns the source location of the interface definition.
func (d *InterfaceTypeDefinition) Location() SourceSpan { return d.Loc }

// DefinitionName returns the declared interface name.
func (d *InterfaceTypeDefinition) DefinitionName() string { return d.Name.Value }

// UnionTypeDefinition represents `union Name = A | B`
type UnionTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Types       []*NamedType
	Loc         SourceSpan
}

func (d *UnionTypeDefinition) node()       {}
func (d *UnionTypeDefinition) definition() {}

// Location returns the source location of the union definition.
func (d *UnionTypeDefinition) Location() SourceSpan { return d.Loc }

// DefinitionName returns the declared union name.
func (d *UnionTypeDefinition) DefinitionName() string { return d.Name.Value }

// EnumTypeDefinition represents `enum Name { VALUES }`
type EnumTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Values      []*EnumValueDefinition
	Loc         SourceSpan
}

func (d *EnumTypeDefinition) node()       {}
func (d *EnumTypeDefinition) definition() {}

// Location returns the source location of the enum definition.
func (d *EnumTypeDefinition) Location() SourceSpan { return d.Loc }

// DefinitionName returns the declared enum name.
func (d *EnumTypeDefinition) DefinitionName() string { return d.Name.Value }

// InputObjectTypeDefinition represents `input Name { fields }`
type InputObjectTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Fields      []*InputValueDefinition
	Loc         SourceSpan
}

func (d *InputObjectTypeDefinition) node()       {}
func (d *InputObjectTypeDefinition) definition() {}

// Location returns the source location of the input definition.
func (d *InputObjectTypeDefinition) Location() SourceSpan { return d.Loc }

// DefinitionName returns the declared input name.
func (d *InputObjectTypeDefinition) DefinitionName() string { return d.Name.Value }

// DirectiveDefinition represents `directive @name(args) repeatable on LOCATIONS`
type DirectiveDefinition struct {
	Description *StringValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Repeatable  bool
	Locations   []*Name
	Loc         SourceSpan
}

func (d *DirectiveDefinition) node()       {}
func (d *DirectiveDefinition) definition() {}

// Location returns the source location of the directive definition.
func (d *DirectiveDefinition) Location() SourceSpan { return d.Loc }

// DefinitionName returns the directive name without the leading @.
func (d *DirectiveDefinition) DefinitionName() string { return d.Name.Value }

// FieldDefinition represents a field of an object or interface
type FieldDefinition struct {
	Description *StringValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Type        TypeRef
	Directives  []*Directive
	Loc         SourceSpan
}

func (f *FieldDefinition) node() {}

// Location returns the source location of the field definition.
func (f *FieldDefinition) Location() SourceSpan { return f.Loc }

// InputValueDefinition represents an argument or input field definition
type InputValueDefinition struct {
	Description  *StringValue
	Name         *Name
	Type         TypeRef
	DefaultValue Value
	Directives   []*Directive
	Loc          SourceSpan
}

func (v *InputValueDefinition) node() {}

// Location returns the source location of the input value definition.
func (v *InputValueDefinition) Location() SourceSpan { return v.Loc }

// EnumValueDefinition represents one member of an enum
type EnumValueDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Loc         SourceSpan
}

func (v *EnumValueDefinition) node() {}

// Location returns the source location of the enum value.
func (v *EnumValueDefinition) Location() SourceSpan { return v.Loc }

// Directive represents an `@name(args)` annotation
type Directive struct {
	Name      *Name
	Arguments []*Argument
	Loc       SourceSpan
}

func (d *Directive) node() {}

// Location returns the source location of the @ sign.
func (d *Directive) Location() SourceSpan { return d.Loc }

// Argument represents `name: value` inside a directive
type Argument struct {
	Name  *Name
	Value Value
	Loc   SourceSpan
}

func (a *Argument) node() {}

// Location returns the source location of the argument name.
func (a *Argument) Location() SourceSpan { return a.Loc }
