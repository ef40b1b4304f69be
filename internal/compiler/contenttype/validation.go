package contenttype

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mozaik-cms/mozaik/internal/compiler/ast"
	"github.com/mozaik-cms/mozaik/internal/compiler/ir"
	"github.com/mozaik-cms/mozaik/internal/compiler/resolver"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339

	requiredMessage = "is required"
)

var (
	errLengthOrder = errors.New("maxLength should be equal or greater than minLength")
	errValueOrder  = errors.New("max should be equal or greater than min")
)

// validationFamily compiles one @validation occurrence for a group of field types
type validationFamily func(directive *ast.Directive, errorMessage string, hasMessage bool) ([]ir.FieldValidationInput, error)

var validationFamilies = map[string]validationFamily{
	"String":         textValidations,
	"ID":             textValidations,
	"SinglelineText": textValidations,
	"MultilineText":  textValidations,
	"RichText":       textValidations,
	"Int":            intValidations,
	"Float":          floatValidations,
	"Date":           dateValidations(dateLayout, "invalid date", dateConfig),
	"DateTime":       dateValidations(dateTimeLayout, "invalid date-time", dateTimeConfig),
	"Image":          imageValidations,
	"File":           fileValidations,
	"Audio":          fileValidations,
	"Video":          fileValidations,
}

// CompileValidations returns the validation inputs of a field. List fields
// never get validations. A required field starts with a REQUIRED entry, then
// every @validation occurrence is compiled on its own, in source order.
func CompileValidations(field *ast.FieldDefinition, fieldType resolver.FieldType) ([]ir.FieldValidationInput, error) {
	inputs := make([]ir.FieldValidationInput, 0)
	if fieldType.IsList {
		return inputs, nil
	}

	if fieldType.IsRequired {
		inputs = append(inputs, ir.FieldValidationInput{
			Type:         ir.ValidationRequired,
			Config:       ir.FieldValidationConfig{},
			ErrorMessage: requiredMessage,
		})
	}

	family, ok := validationFamilies[fieldType.BaseType]
	if !ok {
		return inputs, nil
	}

	for _, directive := range resolver.Directives(field.Directives, "validation") {
		message, hasMessage, err := resolver.ResolveArgument(directive.Arguments, "errorMessage", resolver.StringArg, resolver.NonEmpty)
		if err != nil {
			return nil, err
		}

		entries, err := family(directive, message, hasMessage)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, entries...)
	}

	return inputs, nil
}

// messageOr picks the user's message over the generated one
func messageOr(message string, hasMessage bool, format string, args ...interface{}) string {
	if hasMessage {
		return message
	}
	return fmt.Sprintf(format, args...)
}

func textValidations(d *ast.Directive, message string, hasMessage bool) ([]ir.FieldValidationInput, error) {
	inputs := make([]ir.FieldValidationInput, 0, 2)

	lower, hasMin, err := resolver.ResolveArgument(d.Arguments, "minLength", resolver.IntArg, resolver.NonNegative)
	if err != nil {
		return nil, err
	}
	upper, hasMax, err := resolver.ResolveArgument(d.Arguments, "maxLength", resolver.IntArg, resolver.All[int](
		resolver.NonNegative,
		func(v int) error {
			if hasMin && v < lower {
				return errLengthOrder
			}
			return nil
		},
	))
	if err != nil {
		return nil, err
	}

	switch {
	case hasMin && hasMax:
		inputs = append(inputs, ir.FieldValidationInput{
			Type:         ir.ValidationLengthRange,
			Config:       ir.FieldValidationConfig{LengthMin: ir.Ptr(lower), LengthMax: ir.Ptr(upper)},
			ErrorMessage: messageOr(message, hasMessage, "should be between %d and %d characters long", lower, upper),
		})
	case hasMin:
		inputs = append(inputs, ir.FieldValidationInput{
			Type:         ir.ValidationMinLength,
			Config:       ir.FieldValidationConfig{LengthMin: ir.Ptr(lower)},
			ErrorMessage: messageOr(message, hasMessage, "should be at least %d characters long", lower),
		})
	case hasMax:
		inputs = append(inputs, ir.FieldValidationInput{
			Type:         ir.ValidationMaxLength,
			Config:       ir.FieldValidationConfig{LengthMax: ir.Ptr(upper)},
			ErrorMessage: messageOr(message, hasMessage, "should be at most %d characters long", upper),
		})
	}

	pattern, hasPattern, err := resolver.ResolveArgument(d.Arguments, "pattern", resolver.StringArg, resolver.ValidRegexp)
	if err != nil {
		return nil, err
	}
	if hasPattern {
		inputs = append(inputs, ir.FieldValidationInput{
			Type:         ir.ValidationPattern,
			Config:       ir.FieldValidationConfig{Pattern: ir.Ptr(pattern)},
			ErrorMessage: messageOr(message, hasMessage, "should match the pattern %s", pattern),
		})
	}

	return inputs, nil
}

// valueRange builds MIN_VALUE, MAX_VALUE or VALUE_RANGE entries
func valueRange[T any](
	d *ast.Directive,
	typ resolver.ArgType[T],
	less func(a, b T) bool,
	format func(T) string,
	config func(lower, upper *T) ir.FieldValidationConfig,
	validate resolver.Validator[T],
	message string,
	hasMessage bool,
) ([]ir.FieldValidationInput, error) {
	lower, hasMin, err := resolver.ResolveArgument(d.Arguments, "min", typ, validate)
	if err != nil {
		return nil, err
	}
	upper, hasMax, err := resolver.ResolveArgument(d.Arguments, "max", typ, resolver.All[T](
		validate,
		func(v T) error {
			if hasMin && less(v, lower) {
				return errValueOrder
			}
			return nil
		},
	))
	if err != nil {
		return nil, err
	}

	switch {
	case hasMin && hasMax:
		return []ir.FieldValidationInput{{
			Type:         ir.ValidationValueRange,
			Config:       config(&lower, &upper),
			ErrorMessage: messageOr(message, hasMessage, "should be between %s and %s", format(lower), format(upper)),
		}}, nil
	case hasMin:
		return []ir.FieldValidationInput{{
			Type:         ir.ValidationMinValue,
			Config:       config(&lower, nil),
			ErrorMessage: messageOr(message, hasMessage, "should be at least %s", format(lower)),
		}}, nil
	case hasMax:
		return []ir.FieldValidationInput{{
			Type:         ir.ValidationMaxValue,
			Config:       config(nil, &upper),
			ErrorMessage: messageOr(message, hasMessage, "should be at most %s", format(upper)),
		}}, nil
	}
	return nil, nil
}

func intValidations(d *ast.Directive, message string, hasMessage bool) ([]ir.FieldValidationInput, error) {
	return valueRange(d, resolver.IntArg,
		func(a, b int) bool { return a < b },
		strconv.Itoa,
		func(lower, upper *int) ir.FieldValidationConfig {
			return ir.FieldValidationConfig{ValueMinInt: lower, ValueMaxInt: upper}
		},
		nil, message, hasMessage)
}

func floatValidations(d *ast.Directive, message string, hasMessage bool) ([]ir.FieldValidationInput, error) {
	return valueRange(d, resolver.FloatArg,
		func(a, b float64) bool { return a < b },
		func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) },
		func(lower, upper *float64) ir.FieldValidationConfig {
			return ir.FieldValidationConfig{ValueMinFloat: lower, ValueMaxFloat: upper}
		},
		nil, message, hasMessage)
}

func dateConfig(lower, upper *string) ir.FieldValidationConfig {
	return ir.FieldValidationConfig{DateMin: lower, DateMax: upper}
}

func dateTimeConfig(lower, upper *string) ir.FieldValidationConfig {
	return ir.FieldValidationConfig{DateTimeMin: lower, DateTimeMax: upper}
}

// dateValidations compares bounds as instants; the config keeps them as written
func dateValidations(layout, invalid string, config func(lower, upper *string) ir.FieldValidationConfig) validationFamily {
	parse := func(s string) (time.Time, error) {
		return time.Parse(layout, s)
	}

	return func(d *ast.Directive, message string, hasMessage bool) ([]ir.FieldValidationInput, error) {
		return valueRange(d, resolver.StringArg,
			func(a, b string) bool {
				ta, errA := parse(a)
				tb, errB := parse(b)
				return errA == nil && errB == nil && ta.Before(tb)
			},
			func(s string) string { return s },
			config,
			func(s string) error {
				if _, err := parse(s); err != nil {
					return errors.New(invalid)
				}
				return nil
			},
			message, hasMessage)
	}
}

func imageValidations(d *ast.Directive, message string, hasMessage bool) ([]ir.FieldValidationInput, error) {
	inputs := make([]ir.FieldValidationInput, 0, 4)

	width, hasWidth, err := resolver.ResolveArgument(d.Arguments, "maxWidth", resolver.IntArg, resolver.Positive)
	if err != nil {
		return nil, err
	}
	if hasWidth {
		inputs = append(inputs, ir.FieldValidationInput{
			Type:         ir.ValidationImageWidth,
			Config:       ir.FieldValidationConfig{ImageWidth: ir.Ptr(width)},
			ErrorMessage: messageOr(message, hasMessage, "should be at most %d pixels wide", width),
		})
	}

	height, hasHeight, err := resolver.ResolveArgument(d.Arguments, "maxHeight", resolver.IntArg, resolver.Positive)
	if err != nil {
		return nil, err
	}
	if hasHeight {
		inputs = append(inputs, ir.FieldValidationInput{
			Type:         ir.ValidationImageHeight,
			Config:       ir.FieldValidationConfig{ImageHeight: ir.Ptr(height)},
			ErrorMessage: messageOr(message, hasMessage, "should be at most %d pixels high", height),
		})
	}

	files, err := fileValidations(d, message, hasMessage)
	if err != nil {
		return nil, err
	}
	return append(inputs, files...), nil
}

func fileValidations(d *ast.Directive, message string, hasMessage bool) ([]ir.FieldValidationInput, error) {
	inputs := make([]ir.FieldValidationInput, 0, 2)

	size, hasSize, err := resolver.ResolveArgument(d.Arguments, "maxSize", resolver.IntArg, resolver.Positive)
	if err != nil {
		return nil, err
	}
	if hasSize {
		inputs = append(inputs, ir.FieldValidationInput{
			Type:         ir.ValidationMaxFileSize,
			Config:       ir.FieldValidationConfig{MaxFileSize: ir.Ptr(size)},
			ErrorMessage: messageOr(message, hasMessage, "should be at most %d bytes", size),
		})
	}

	fileType, hasType, err := resolver.ResolveArgument(d.Arguments, "fileType", resolver.StringArg, resolver.NonEmpty)
	if err != nil {
		return nil, err
	}
	if hasType {
		inputs = append(inputs, ir.FieldValidationInput{
			Type:         ir.ValidationFileType,
			Config:       ir.FieldValidationConfig{FileType: ir.Ptr(fileType)},
			ErrorMessage: messageOr(message, hasMessage, "should be a %s file", fileType),
		})
	}

	return inputs, nil
}
