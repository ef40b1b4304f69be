// Package resolver extracts typed values from directive arguments and
// normalises field type references. Every error it returns is a
// *errors.CompilerError located at the offending node.
package resolver

import (
	"math"
	"strconv"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	cerrors "github.com/mozaik-cms/mozaik/internal/compiler/errors"
)

// ArgType coerces a literal to a Go value of type T
type ArgType[T any] struct {
	// Name is the SDL type name used in mismatch errors
	Name   string
	coerce func(ast.Value) (T, bool)
}

// Coerce converts a literal; ok is false when the literal is not of this type
func (a ArgType[T]) Coerce(v ast.Value) (T, bool) {
	return a.coerce(v)
}

// Validator checks a coerced argument value. Its error message is reported
// verbatim at the argument value location.
type Validator[T any] func(T) error

var (
	// IntArg accepts integer literals in the 32-bit signed range
	IntArg = ArgType[int]{Name: "Int", coerce: coerceInt}
	// FloatArg accepts integer and float literals
	FloatArg = ArgType[float64]{Name: "Float", coerce: coerceFloat}
	// StringArg accepts string and block string literals
	StringArg = ArgType[string]{Name: "String", coerce: coerceString}
	// BooleanArg accepts true and false
	BooleanArg = ArgType[bool]{Name: "Boolean", coerce: coerceBoolean}
)

func coerceInt(v ast.Value) (int, bool) {
	iv, ok := v.(*ast.IntValue)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(iv.Raw, 10, 64)
	if err != nil || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}

func coerceFloat(v ast.Value) (float64, bool) {
	var raw string
	switch lit := v.(type) {
	case *ast.IntValue:
		raw = lit.Raw
	case *ast.FloatValue:
		raw = lit.Raw
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceString(v ast.Value) (string, bool) {
	sv, ok := v.(*ast.StringValue)
	if !ok {
		return "", false
	}
	return sv.Value, true
}

func coerceBoolean(v ast.Value) (bool, bool) {
	bv, ok := v.(*ast.BooleanValue)
	if !ok {
		return false, false
	}
	return bv.Value, true
}

// ResolveArgument looks up the first argument called name. An absent
// argument yields ok == false and no error; validate is not called then.
func ResolveArgument[T any](args []*ast.Argument, name string, typ ArgType[T], validate Validator[T]) (T, bool, error) {
	var zero T

	arg := findArgument(args, name)
	if arg == nil {
		return zero, false, nil
	}

	value, ok := typ.Coerce(arg.Value)
	if !ok {
		return zero, false, cerrors.NewTypeMismatch(arg.Value.Location(), typ.Name, arg.Value.Kind())
	}

	if validate != nil {
		if err := validate(value); err != nil {
			return zero, false, cerrors.NewSemanticValidation(arg.Value.Location(), err.Error())
		}
	}

	return value, true, nil
}

// ResolveDirectiveArgument resolves an argument of the first directive
// called directiveName. Later directives with the same name are ignored.
func ResolveDirectiveArgument[T any](
	directives []*ast.Directive,
	directiveName, argName string,
	typ ArgType[T],
	validate Validator[T],
) (T, bool, error) {
	directive := FirstDirective(directives, directiveName)
	if directive == nil {
		var zero T
		return zero, false, nil
	}
	return ResolveArgument(directive.Arguments, argName, typ, validate)
}

// FirstDirective returns the first directive called name, or nil
func FirstDirective(directives []*ast.Directive, name string) *ast.Directive {
	for _, d := range directives {
		if d.Name.Value == name {
			return d
		}
	}
	return nil
}

// Directives returns every directive called name, in source order
func Directives(directives []*ast.Directive, name string) []*ast.Directive {
	matches := make([]*ast.Directive, 0)
	for _, d := range directives {
		if d.Name.Value == name {
			matches = append(matches, d)
		}
	}
	return matches
}

// HasDirective reports whether any directive is called name
func HasDirective(directives []*ast.Directive, name string) bool {
	return FirstDirective(directives, name) != nil
}

func findArgument(args []*ast.Argument, name string) *ast.Argument {
	for _, a := range args {
		if a.Name.Value == name {
			return a
		}
	}
	return nil
}

// DirectiveArgument returns the argument argName of the first directive
// called directiveName, or nil when either is missing
func DirectiveArgument(directives []*ast.Directive, directiveName, argName string) *ast.Argument {
	directive := FirstDirective(directives, directiveName)
	if directive == nil {
		return nil
	}
	return findArgument(directive.Arguments, argName)
}
