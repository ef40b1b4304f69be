package resolver

import (
	"errors"
	"fmt"
	"regexp"
)

// NonEmpty rejects the empty string
func NonEmpty(s string) error {
	if s == "" {
		return errors.New("should not be empty")
	}
	return nil
}

// Positive rejects zero and negative numbers
func Positive(n int) error {
	if n <= 0 {
		return errors.New("should be a positive number")
	}
	return nil
}

// NonNegative rejects negative numbers
func NonNegative(n int) error {
	if n < 0 {
		return errors.New("should not be negative")
	}
	return nil
}

// ValidRegexp rejects empty and uncompilable patterns
func ValidRegexp(s string) error {
	if s == "" {
		return errors.New("pattern should not be empty")
	}
	if _, err := regexp.Compile(s); err != nil {
		return fmt.Errorf("invalid regular expression: %s", s)
	}
	return nil
}

// All chains validators; the first failure wins
func All[T any](validators ...Validator[T]) Validator[T] {
	return func(v T) error {
		for _, validate := range validators {
			if validate == nil {
				continue
			}
			if err := validate(v); err != nil {
				return err
			}
		}
		return nil
	}
}
