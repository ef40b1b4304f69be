package ast

import (
	"strconv"
	"strings"
)

// Value is a literal used as a directive argument or default value
type Value interface {
	Node
	// Kind names the literal kind as it appears in error messages (e.g. "IntValue").
	Kind() string
	String() string
	value()
}

// IntValue is an integer literal; Raw keeps the source text
type IntValue struct {
	Raw string
	Loc SourceSpan
}

func (v *IntValue) node()  {}
func (v *IntValue) value() {}

// Location returns the source location of the literal.
func (v *IntValue) Location() SourceSpan { return v.Loc }

// Kind returns "IntValue".
func (v *IntValue) Kind() string   { return "IntValue" }
func (v *IntValue) String() string { return v.Raw }

// FloatValue is a float literal; Raw keeps the source text
type FloatValue struct {
	Raw string
	Loc SourceSpan
}

func (v *FloatValue) node()  {}
func (v *FloatValue) value() {}

// Location returns the source location of the literal.
func (v *FloatValue) Location() SourceSpan { return v.Loc }

// Kind returns "FloatValue".
func (v *FloatValue) Kind() string   { return "FloatValue" }
func (v *FloatValue) String() string { return v.Raw }

// StringValue is a quoted or block string literal with escapes already processed
type StringValue struct {
	Value string
	Block bool
	Loc   SourceSpan
}

func (v *StringValue) node()  {}
func (v *StringValue) value() {}

// Location returns the source location of the opening quote.
func (v *StringValue) Location() SourceSpan { return v.Loc }

// Kind returns "StringValue".
func (v *StringValue) Kind() string { return "StringValue" }

func (v *StringValue) String() string {
	if v.Block {
		return `"""` + v.Value + `"""`
	}
	return strconv.Quote(v.Value)
}

// BooleanValue is true or false
type BooleanValue struct {
	Value bool
	Loc   SourceSpan
}

func (v *BooleanValue) node()  {}
func (v *BooleanValue) value() {}

// Location returns the source location of the literal.
func (v *BooleanValue) Location() SourceSpan { return v.Loc }

// Kind returns "BooleanValue".
func (v *BooleanValue) Kind() string   { return "BooleanValue" }
func (v *BooleanValue) String() string { return strconv.FormatBool(v.Value) }

// NullValue is the null literal
type NullValue struct {
	Loc SourceSpan
}

func (v *NullValue) node()  {}
func (v *NullValue) value() {}

// Location returns the source location of the literal.
func (v *NullValue) Location() SourceSpan { return v.Loc }

// Kind returns "NullValue".
func (v *NullValue) Kind() string   { return "NullValue" }
func (v *NullValue) String() string { return "null" }

// EnumValue is a bare name used as a value
type EnumValue struct {
	Value string
	Loc   SourceSpan
}

func (v *EnumValue) node()  {}
func (v *EnumValue) value() {}

// Location returns the source location of the literal.
func (v *EnumValue) Location() SourceSpan { return v.Loc }

// Kind returns "EnumValue".
func (v *EnumValue) Kind() string   { return "EnumValue" }
func (v *EnumValue) String() string { return v.Value }

// ListValue is `[v1, v2]`
type ListValue struct {
	Values []Value
	Loc    SourceSpan
}

func (v *ListValue) node()  {}
func (v *ListValue) value() {}

// Location returns the source location of the opening bracket.
func (v *ListValue) Location() SourceSpan { return v.Loc }

// Kind returns "ListValue".
func (v *ListValue) Kind() string { return "ListValue" }

func (v *ListValue) String() string {
	parts := make([]string, 0, len(v.Values))
	for _, item := range v.Values {
		parts = append(parts, item.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectField is one `name: value` pair of an object literal
type ObjectField struct {
	Name  *Name
	Value Value
	Loc   SourceSpan
}

// ObjectValue is `{a: 1, b: 2}`
type ObjectValue struct {
	Fields []*ObjectField
	Loc    SourceSpan
}

func (v *ObjectValue) node()  {}
func (v *ObjectValue) value() {}

// Location returns the source location of the opening brace.
func (v *ObjectValue) Location() SourceSpan { return v.Loc }

// Kind returns "ObjectValue".
func (v *ObjectValue) Kind() string { return "ObjectValue" }

func (v *ObjectValue) String() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.Name.Value+": "+f.Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
